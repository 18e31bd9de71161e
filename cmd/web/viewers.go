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

// Processing related to visitors' pages.
// Each visitor has a page with its own language toggle and slideshow, running on the server.

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"k8s.io/utils/clock"

	"github.com/rantaukemiding/homestay/internal/display"
	"github.com/rantaukemiding/homestay/internal/gallery"
	"github.com/rantaukemiding/homestay/internal/language"
)

// session key for the visitor's page
const sessionViewer = "viewer"

type ViewerState struct {
	app       *Application
	clock     gallery.Clock
	muViewers sync.Mutex
	now       func() time.Time

	viewers map[uuid.UUID]*viewer
}

// viewer is the page for one visitor.
type viewer struct {
	page    *display.Page
	gallery *gallery.Controller
	cancel  context.CancelFunc

	muToggle sync.Mutex
	toggle   *language.Toggle // nil if the site has no language sections

	// protected by ViewerState.muViewers
	lastSeen time.Time
	streams  int
}

// Initialisation
func (s *ViewerState) Init(a *Application) {
	s.app = a
	s.clock = clock.RealClock{}
	s.now = time.Now
	s.viewers = make(map[uuid.UUID]*viewer)
}

// open starts a page for a new visitor and saves it in the session.
func (s *ViewerState) open(r *http.Request) *viewer {

	// replace any previous page in this session
	if id, ok := s.sessionID(r); ok {
		s.stop(id)
	}

	app := s.app
	p := display.NewPage(app.controls, app.sections, true)

	v := &viewer{
		page:   p,
		toggle: language.Setup(p.LanguageControls(), p.LanguageSections(), p, app.cfg.DefaultLanguage),
	}

	v.gallery = gallery.New(p, s.clock, app.errorLog, app.infoLog)
	if app.cfg.RotateInterval > 0 {
		v.gallery.Interval = app.cfg.RotateInterval
	}

	ctx, cancel := context.WithCancel(context.Background())
	v.cancel = cancel

	id := uuid.New()
	s.muViewers.Lock()
	v.lastSeen = s.now()
	s.viewers[id] = v
	s.muViewers.Unlock()

	app.session.Put(r.Context(), sessionViewer, id.String())

	// fetch the manifest without delaying the page
	go v.gallery.Load(ctx, app.fetcher)

	return v
}

// get returns the visitor's page, or nil if it has been closed.
func (s *ViewerState) get(r *http.Request) *viewer {

	id, ok := s.sessionID(r)
	if !ok {
		return nil
	}

	s.muViewers.Lock()
	defer s.muViewers.Unlock()

	v := s.viewers[id]
	if v != nil {
		v.lastSeen = s.now()
	}
	return v
}

// setLanguage changes the visitor's language, returning false for a language the site doesn't offer.
func (v *viewer) setLanguage(code string, controls []language.Control) bool {

	known := false
	for _, c := range controls {
		if c.Code == code {
			known = true
		}
	}
	if !known || v.toggle == nil {
		return false
	}

	v.muToggle.Lock()
	defer v.muToggle.Unlock()

	v.toggle.Set(code)
	return true
}

// language returns the visitor's current language.
func (v *viewer) language(def string) string {
	if v.toggle == nil {
		return def
	}

	v.muToggle.Lock()
	defer v.muToggle.Unlock()

	return v.toggle.Current()
}

// streaming records the start or end of a page event stream.
// A page is kept while it has a stream open.
func (s *ViewerState) streaming(v *viewer, start bool) {
	s.muViewers.Lock()
	defer s.muViewers.Unlock()

	if start {
		v.streams++
	} else {
		v.streams--
		v.lastSeen = s.now()
	}
}

// stop closes a visitor's page.
func (s *ViewerState) stop(id uuid.UUID) {

	s.muViewers.Lock()
	v := s.viewers[id]
	delete(s.viewers, id)
	s.muViewers.Unlock()

	if v != nil {
		v.close()
	}
}

// stopAll closes all pages, on shutdown.
func (s *ViewerState) stopAll() {

	s.muViewers.Lock()
	vs := s.viewers
	s.viewers = make(map[uuid.UUID]*viewer)
	s.muViewers.Unlock()

	for _, v := range vs {
		v.close()
	}
}

// sweep closes pages that have not been seen recently, and returns the number closed.
func (s *ViewerState) sweep() int {

	limit := s.now().Add(-s.app.cfg.ViewerIdle)
	var idle []*viewer

	s.muViewers.Lock()
	for id, v := range s.viewers {
		if v.streams == 0 && v.lastSeen.Before(limit) {
			idle = append(idle, v)
			delete(s.viewers, id)
		}
	}
	s.muViewers.Unlock()

	for _, v := range idle {
		v.close()
	}
	return len(idle)
}

// count returns the number of open pages.
func (s *ViewerState) count() int {
	s.muViewers.Lock()
	defer s.muViewers.Unlock()

	return len(s.viewers)
}

// sessionID returns the page ID saved in the visitor's session.
func (s *ViewerState) sessionID(r *http.Request) (uuid.UUID, bool) {

	str := s.app.session.GetString(r.Context(), sessionViewer)
	if str == "" {
		return uuid.Nil, false
	}

	id, err := uuid.Parse(str)
	if err != nil {
		s.app.threat("bad viewer ID", r)
		return uuid.Nil, false
	}
	return id, true
}

// close stops the slideshow and ends the page's event streams.
func (v *viewer) close() {
	v.cancel()
	v.gallery.Stop()
	v.page.Close()
}
