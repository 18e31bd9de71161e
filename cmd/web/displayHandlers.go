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
	"time"

	"github.com/julienschmidt/httprouter"
	jsoniter "github.com/json-iterator/go"

	"github.com/rantaukemiding/homestay/internal/display"
	"github.com/rantaukemiding/homestay/internal/site"
)

// interval for comments that keep an idle event stream open
var keepAlive = 30 * time.Second

// events streams changes to the visitor's page, as server-sent events.
func (app *Application) events(w http.ResponseWriter, r *http.Request) {

	v := app.viewers.get(r)
	if v == nil {
		// tells the browser to stop reconnecting
		w.WriteHeader(http.StatusNoContent)
		return
	}

	ch, unsubscribe := v.page.Subscribe()
	defer unsubscribe()

	app.viewers.streaming(v, true)
	defer app.viewers.streaming(v, false)

	h := w.Header()
	h.Set("Content-Type", "text/event-stream")
	h.Set("Cache-Control", "no-store")
	h.Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)

	rc := http.NewResponseController(w)

	// the manifest may have arrived after the page was rendered
	if r.URL.Query().Get("loading") != "" {
		if s := v.page.Snapshot(); !s.Loading {
			if err := app.sendEvent(w, display.Event{Name: display.EventState, Data: map[string]interface{}{"error": s.Error}}); err != nil {
				return
			}
		}
	}
	if err := rc.Flush(); err != nil {
		app.log(err)
		return
	}

	tick := time.NewTicker(keepAlive)
	defer tick.Stop()

	for {
		select {
		case ev, ok := <-ch:
			if !ok {
				return // page closed
			}
			if err := app.sendEvent(w, ev); err != nil {
				return
			}

		case <-tick.C:
			if _, err := fmt.Fprint(w, ": keep-alive\n\n"); err != nil {
				return
			}

		case <-r.Context().Done():
			return
		}

		if err := rc.Flush(); err != nil {
			return
		}
	}
}

// home starts a new page for the visitor.
func (app *Application) home(w http.ResponseWriter, r *http.Request) {

	v := app.viewers.open(r)
	app.renderViewer(w, r, v)
}

// lang changes the visitor's language.
func (app *Application) lang(w http.ResponseWriter, r *http.Request) {

	v := app.viewers.get(r)
	if v == nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	code := httprouter.ParamsFromContext(r.Context()).ByName("code")
	if !v.setLanguage(code, app.controls) {
		app.threat("bad language", r)
		httpNotFound(w)
		return
	}
	redirectView(w, r)
}

// next shows the visitor the next photo.
func (app *Application) next(w http.ResponseWriter, r *http.Request) {

	v := app.viewers.get(r)
	if v == nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	v.gallery.Next()
	redirectView(w, r)
}

// prev shows the visitor the previous photo.
func (app *Application) prev(w http.ResponseWriter, r *http.Request) {

	v := app.viewers.get(r)
	if v == nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	v.gallery.Previous()
	redirectView(w, r)
}

// serveManifest returns gallery.json from the site folder.
func (app *Application) serveManifest(w http.ResponseWriter, r *http.Request) {

	site.ServeFile(w, r, http.FS(app.siteFS), app.cfg.GalleryFile)
}

// slide shows the visitor the photo for an indicator dot.
func (app *Application) slide(w http.ResponseWriter, r *http.Request) {

	v := app.viewers.get(r)
	if v == nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	// a reference that isn't a slide is ignored
	v.gallery.Select(httprouter.ParamsFromContext(r.Context()).ByName("index"))
	redirectView(w, r)
}

// view shows the visitor's current page, starting one if needed.
func (app *Application) view(w http.ResponseWriter, r *http.Request) {

	v := app.viewers.get(r)
	if v == nil {
		v = app.viewers.open(r)
	}
	app.renderViewer(w, r, v)
}

// renderViewer writes the visitor's page.
func (app *Application) renderViewer(w http.ResponseWriter, r *http.Request, v *viewer) {

	app.render(w, r, "home.page.tmpl", &DataHome{
		Page: v.page.Snapshot(),
		DataCommon: DataCommon{
			Lang: v.language(app.cfg.DefaultLanguage),
		},
	})
}

// sendEvent writes one server-sent event.
func (app *Application) sendEvent(w http.ResponseWriter, ev display.Event) error {

	data, err := jsoniter.ConfigCompatibleWithStandardLibrary.Marshal(ev.Data)
	if err != nil {
		app.log(err)
		return err
	}
	_, err = fmt.Fprintf(w, "event: %s\ndata: %s\n\n", ev.Name, data)
	return err
}
