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
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/justinas/alice"

	"github.com/rantaukemiding/homestay/internal/site"
)

// For caching we're using a few different patterns.
//
// 0: Specify nothing, leaving it to the browser. Used for images, CSS and JS.
//
// 1: "no-store" for visitor pages, which change on every request.
//
// 2: "no-cache" for the manifest, which may be rebuilt at any time and is always revalidated.

// Register handlers for routes

func (app *Application) Routes() http.Handler {

	commonHs := alice.New(secureHeaders, app.logRequest)
	sessionHs := alice.New(app.session.LoadAndSave, noSurf)
	pageHs := alice.New(app.timeout).Extend(sessionHs).Append(ccNoStore) // visitor pages and requests
	streamHs := sessionHs                                                 // no timeout for event streams
	sharedHs := alice.New(app.timeout, app.crossOrigin)                   // may be fetched by other sites

	// HttpRouter wrapped to allow middleware handlers
	router := httprouter.New()

	// panic handler
	router.PanicHandler = app.recoverPanic()

	// log rejected routes
	router.NotFound = app.routeNotFound()

	// visitor's page
	router.Handler("GET", "/", pageHs.ThenFunc(app.home))
	router.Handler("GET", "/view", pageHs.ThenFunc(app.view))
	router.Handler("GET", "/events", streamHs.ThenFunc(app.events))

	// visitor's requests
	router.Handler("POST", "/next", pageHs.ThenFunc(app.next))
	router.Handler("POST", "/prev", pageHs.ThenFunc(app.prev))
	router.Handler("POST", "/slide/:index", pageHs.ThenFunc(app.slide))
	router.Handler("POST", "/lang/:code", pageHs.ThenFunc(app.lang))

	// file systems that block directory listing
	fsStatic := site.NoDirFileSystem{FileSystem: http.FS(app.staticFS)}
	fsImages := site.NoDirFileSystem{FileSystem: http.FS(app.imagesFS)}

	// manifest and images
	router.Handler("GET", "/gallery.json", sharedHs.Append(ccNoCache).ThenFunc(app.serveManifest))
	router.Handler("GET", "/images/*filepath", sharedHs.Then(http.StripPrefix("/images", http.FileServer(fsImages))))

	// CORS preflight requests are answered by the CORS handler
	router.Handler("OPTIONS", "/gallery.json", sharedHs.Then(http.NotFoundHandler()))
	router.Handler("OPTIONS", "/images/*filepath", sharedHs.Then(http.NotFoundHandler()))

	// serve static files
	router.Handler("GET", "/static/*filepath", alice.New(app.timeout).Then(http.StripPrefix("/static", http.FileServer(fsStatic))))

	// return 'standard' middleware chain followed by router
	return commonHs.Then(router)
}
