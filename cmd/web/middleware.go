// Copyright © Rantau Kemiding Homestay, 2026.

// This file is part of Homestay.
//
// Homestay is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Homestay is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Homestay.  If not, see <https://www.gnu.org/licenses/>.

package main

import (
	"fmt"
	"net/http"
	"path"

	"github.com/justinas/nosurf"
	"github.com/rs/cors"
)

// HANDLERS.

// ccNoStore sets cache control for pages that are different on every access.
func ccNoStore(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "no-store")
		next.ServeHTTP(w, r)
	})
}

// ccNoCache sets cache control for files that may be replaced, such as the manifest.
func ccNoCache(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "no-cache")
		next.ServeHTTP(w, r)
	})
}

// crossOrigin returns a handler that allows the manifest and images to be fetched from other sites.
func (app *Application) crossOrigin(next http.Handler) http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins: app.cfg.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodHead},
	})
	return c.Handler(next)
}

// logRequest records an HTTP request.
func (app *Application) logRequest(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

		app.infoLog.Printf("%s %s %s", r.Proto, r.Method, r.URL.Path)
		next.ServeHTTP(w, r)
	})
}

// noSurf returns a handler that implements CSRF protection,
func noSurf(next http.Handler) http.Handler {
	csrfHandler := nosurf.New(next)
	csrfHandler.SetBaseCookie(http.Cookie{
		HttpOnly: true,
		Path:     "/",
		SameSite: http.SameSiteLaxMode,
	})

	return csrfHandler
}

// Recover from panic, set in httprouter
func (app *Application) recoverPanic() func(http.ResponseWriter, *http.Request, interface{}) {

	return func(w http.ResponseWriter, r *http.Request, err interface{}) {
		w.Header().Set("Connection", "close")
		app.httpServerError(w, fmt.Errorf("%s", err))
	}
}

// routeNotFound returns a handler that logs HTTP requests to non-existent routes.
// Typically these are intrusion attempts. Not called for non-existent files :-).
func (app *Application) routeNotFound() http.Handler {

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

		// don't report a missing favicon as a threat
		if d, f := path.Split(r.URL.Path); d != "/" || (path.Ext(f) != ".png" && path.Ext(f) != ".ico") {
			app.threat("bad URL", r)
		}
		http.NotFound(w, r)
	})
}

// secureHeaders adds HTTP headers for security against XSS and Clickjacking.
func secureHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-XSS-Protection", "1; mode=block")
		w.Header().Set("X-Frame-Options", "deny")

		next.ServeHTTP(w, r)
	})
}

// timeout limits the time for a page request.
func (app *Application) timeout(next http.Handler) http.Handler {
	return http.TimeoutHandler(next, app.cfg.TimeoutWeb, "Timed out")
}
