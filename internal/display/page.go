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

package display

// The page seen by one visitor: language controls and sections, gallery slides and dots.
// The gallery controller and language toggle change it, and the visitor's browser is told.

import (
	"html/template"
	"sync"

	"github.com/rantaukemiding/homestay/internal/content"
	"github.com/rantaukemiding/homestay/internal/language"
	"github.com/rantaukemiding/homestay/internal/manifest"
)

// Events sent to subscribers
const (
	EventLang  = "lang"
	EventSlide = "slide"
	EventState = "state"
)

// buffered events per subscriber, before they are dropped
const subscriberBuffer = 16

type Control struct {
	Code   string
	Label  string
	Active bool
}

type Section struct {
	Lang    string
	Div     template.HTML
	Visible bool
}

type Slide struct {
	Index   int
	Image   string
	Alt     string
	Caption string
	Active  bool
}

type Dot struct {
	Index  int
	Active bool
}

// Event is a change to the page.
type Event struct {
	Name string
	Data map[string]interface{}
}

// Snapshot is a copy of the page, for rendering.
type Snapshot struct {
	Controls   []Control
	Sections   []Section
	HasGallery bool
	Loading    bool
	Error      string
	Slides     []Slide
	Dots       []Dot
}

// Page implements gallery.Surface and language.Surface.
type Page struct {
	mu         sync.Mutex
	controls   []Control
	sections   []Section
	hasGallery bool
	loaded     bool
	err        string
	slides     []Slide
	dots       []Dot
	subs       map[chan Event]struct{}
	closed     bool
}

// NewPage returns a page with the specified language controls and sections.
// withGallery is false for a page with no slide and dot containers.
func NewPage(controls []language.Control, sections []*content.Section, withGallery bool) *Page {

	p := &Page{
		hasGallery: withGallery,
		subs:       make(map[chan Event]struct{}),
	}
	for _, c := range controls {
		p.controls = append(p.controls, Control{Code: c.Code, Label: c.Label})
	}
	for _, s := range sections {
		p.sections = append(p.sections, Section{Lang: s.Lang, Div: s.Div})
	}
	return p
}

// LanguageSections returns the languages of the sections, in order, for the toggle.
func (p *Page) LanguageSections() []language.Section {
	p.mu.Lock()
	defer p.mu.Unlock()

	ls := make([]language.Section, len(p.sections))
	for i, s := range p.sections {
		ls[i] = language.Section{Lang: s.Lang}
	}
	return ls
}

// LanguageControls returns the controls, in order, for the toggle.
func (p *Page) LanguageControls() []language.Control {
	p.mu.Lock()
	defer p.mu.Unlock()

	lc := make([]language.Control, len(p.controls))
	for i, c := range p.controls {
		lc[i] = language.Control{Code: c.Code, Label: c.Label}
	}
	return lc
}

// ** language.Surface **

func (p *Page) SetControlActive(index int, active bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.controls[index].Active = active
	if active {
		p.notify(Event{Name: EventLang, Data: map[string]interface{}{"code": p.controls[index].Code}})
	}
}

func (p *Page) SetSectionVisible(index int, visible bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.sections[index].Visible = visible
}

// ** gallery.Surface **

func (p *Page) HasGallery() bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.hasGallery
}

func (p *Page) AppendSlide(img manifest.Image) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.loaded = true
	p.slides = append(p.slides, Slide{
		Index:   img.Index,
		Image:   img.URL,
		Alt:     img.Alt,
		Caption: img.Caption, // text, escaped when rendered
	})
}

func (p *Page) AppendDot(index int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.dots = append(p.dots, Dot{Index: index})
}

// Show makes slide and dot index the only active ones.
func (p *Page) Show(index int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	for i := range p.slides {
		p.slides[i].Active = i == index
	}
	for i := range p.dots {
		p.dots[i].Active = i == index
	}
	p.notify(Event{Name: EventSlide, Data: map[string]interface{}{"index": index}})
}

// ShowError replaces any slides with a message.
func (p *Page) ShowError(msg string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.loaded = true
	p.err = msg
	p.slides = nil
	p.dots = nil
	p.notify(Event{Name: EventState, Data: map[string]interface{}{"error": msg}})
}

// Snapshot returns a copy of the page.
func (p *Page) Snapshot() *Snapshot {
	p.mu.Lock()
	defer p.mu.Unlock()

	return &Snapshot{
		Controls:   append([]Control(nil), p.controls...),
		Sections:   append([]Section(nil), p.sections...),
		HasGallery: p.hasGallery,
		Loading:    p.hasGallery && !p.loaded,
		Error:      p.err,
		Slides:     append([]Slide(nil), p.slides...),
		Dots:       append([]Dot(nil), p.dots...),
	}
}

// Subscribe returns a channel of changes to the page, and a function to end the subscription.
// Events are dropped if the subscriber falls behind. The channel is closed with the page.
func (p *Page) Subscribe() (<-chan Event, func()) {
	p.mu.Lock()
	defer p.mu.Unlock()

	ch := make(chan Event, subscriberBuffer)
	if p.closed {
		close(ch)
		return ch, func() {}
	}
	p.subs[ch] = struct{}{}

	return ch, func() {
		p.mu.Lock()
		defer p.mu.Unlock()

		if _, ok := p.subs[ch]; ok {
			delete(p.subs, ch)
			close(ch)
		}
	}
}

// Close ends all subscriptions.
func (p *Page) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.closed = true
	for ch := range p.subs {
		delete(p.subs, ch)
		close(ch)
	}
}

// notify sends an event to all subscribers. Caller holds the lock.
func (p *Page) notify(ev Event) {
	for ch := range p.subs {
		select {
		case ch <- ev:
		default:
		}
	}
}
