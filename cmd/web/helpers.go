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
	"bytes"
	"fmt"
	"net/http"
	"runtime/debug"
	"strings"
)

// The following functions return status code and corresponding description HTTP client.
// They just make the code a bit easier to read.
// ServerError indicates a fault with the Homestay software, and so should be logged.
// A bad slide index or language code from a visitor is not a fault.

func httpNotFound(w http.ResponseWriter) {

	http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
}

func (app *Application) httpServerError(w http.ResponseWriter, err error) {

	app.log(err)
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}

// Log an error for debugging

func (app *Application) log(err error) {
	trace := fmt.Sprintf("%s\n%s", err.Error(), debug.Stack())
	app.errorLog.Output(2, trace)
}

// redirectView returns the visitor to their page, after a change.
func redirectView(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/view", http.StatusSeeOther)
}

// render fetches a template from the cache and writes the result as an HTTP response.
func (app *Application) render(w http.ResponseWriter, r *http.Request, name string, td TemplateData) {

	if td == nil {
		td = &DataCommon{}
	}

	td.addDefaultData(app, r, strings.SplitN(name, ".", 2)[0])

	// Retrieve the appropriate template set from the cache based on the page name
	// (like `home.page.tmpl`).
	ts, ok := app.templateCache[name]
	if !ok {
		app.httpServerError(w, fmt.Errorf("the template %s does not exist", name))
		return
	}

	// write template via buffer, to catch any error instead of sending a part executed page
	buf := new(bytes.Buffer)

	if err := ts.Execute(buf, td); err != nil {
		app.httpServerError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	buf.WriteTo(w)
}

// threat records an attempted intrusion
func (app *Application) threat(event string, r *http.Request) {
	app.threatLog.Printf("%s - %s %s %s %s", r.RemoteAddr, event, r.Proto, r.Method, r.URL.RequestURI())
}
