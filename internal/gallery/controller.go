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

// Package gallery runs a looping slideshow of the images listed in a manifest.
//
// A Controller builds slides and indicator dots on a Surface once the manifest is loaded,
// then advances the active slide on a timer. Manual navigation restarts the timer,
// so that a visitor always sees a slide for a full interval.
package gallery

import (
	"context"
	"errors"
	"log"
	"strconv"
	"sync"
	"time"

	"k8s.io/utils/clock"

	"github.com/rantaukemiding/homestay/internal/manifest"
)

// DefaultInterval is the time each slide is shown before rotation.
const DefaultInterval = 5000 * time.Millisecond

// State of the gallery.
type State int

const (
	Loading State = iota
	Ready
	Empty
	Error
	Disabled // no containers to render into
)

func (s State) String() string {
	switch s {
	case Loading:
		return "loading"
	case Ready:
		return "ready"
	case Empty:
		return "empty"
	case Error:
		return "error"
	case Disabled:
		return "disabled"
	default:
		return "state-" + strconv.Itoa(int(s))
	}
}

// Surface is where the gallery is rendered.
// Slides and dots are appended in index order and never removed.
type Surface interface {
	HasGallery() bool // slide and dot containers are present
	AppendSlide(img manifest.Image)
	AppendDot(index int)
	Show(index int) // slide and dot index become the only active ones, together
	ShowError(msg string)
}

// Clock schedules rotation. k8s.io/utils/clock.RealClock satisfies it.
type Clock interface {
	AfterFunc(d time.Duration, f func()) clock.Timer
}

// Loader supplies the manifest. manifest.Fetcher satisfies it.
type Loader interface {
	Load(ctx context.Context) (*manifest.Result, error)
}

// Controller owns the slideshow state for one page.
type Controller struct {
	ErrorLog *log.Logger
	InfoLog  *log.Logger
	Interval time.Duration

	clock   Clock
	surface Surface

	mu      sync.Mutex
	state   State
	n       int         // number of slides
	current int         // active slide
	timer   clock.Timer // pending rotation
	gen     int         // identifies the pending rotation
	stopped bool
}

// New returns a controller in the Loading state, or Disabled if the surface has no gallery.
func New(s Surface, clk Clock, errorLog *log.Logger, infoLog *log.Logger) *Controller {

	c := &Controller{
		ErrorLog: errorLog,
		InfoLog:  infoLog,
		Interval: DefaultInterval,
		clock:    clk,
		surface:  s,
	}

	if !s.HasGallery() {
		c.state = Disabled
		c.InfoLog.Print("Gallery containers not found on page.")
	}
	return c
}

// Load fetches the manifest and builds the slideshow. It blocks until the fetch completes,
// so callers that must not wait should call it on a separate goroutine.
func (c *Controller) Load(ctx context.Context, ld Loader) {

	if c.State() != Loading {
		return
	}

	r, err := ld.Load(ctx)
	c.OnManifestLoaded(r, err)
}

// OnManifestLoaded builds the slides and dots, and starts rotation.
// On error, a message replaces the slides and nothing further happens.
func (c *Controller) OnManifestLoaded(r *manifest.Result, err error) {

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != Loading || c.stopped {
		return
	}

	if err != nil {
		c.logLoadError(r, err)
		if errors.Is(err, manifest.ErrNoValid) {
			c.state = Empty
		} else {
			c.state = Error
		}
		c.surface.ShowError(manifest.Message(err))
		return
	}

	c.InfoLog.Printf("Gallery images loaded: %d of %d", len(r.Images), r.Fetched)

	for _, img := range r.Images {
		c.surface.AppendSlide(img)
		c.surface.AppendDot(img.Index)
	}
	c.n = len(r.Images)
	c.state = Ready

	c.show(0)
	c.schedule()
}

// Advance shows the next slide, wrapping to the first.
func (c *Controller) Advance() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.advance()
}

// Retreat shows the previous slide, wrapping to the last.
func (c *Controller) Retreat() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.ready() {
		c.show((c.current - 1 + c.n) % c.n)
	}
}

// JumpTo shows slide i. It reports false, and does nothing, if there is no such slide.
func (c *Controller) JumpTo(i int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.jumpTo(i)
}

// Next is the visitor's request for the next slide.
func (c *Controller) Next() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.ready() {
		c.advance()
		c.schedule()
	}
}

// Previous is the visitor's request for the previous slide.
func (c *Controller) Previous() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.ready() {
		c.show((c.current - 1 + c.n) % c.n)
		c.schedule()
	}
}

// Select is the visitor's request for the slide with an indicator reference, as found on a dot.
// References that are not slide indexes are ignored.
func (c *Controller) Select(ref string) bool {

	i, err := strconv.Atoi(ref)
	if err != nil {
		return false
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.jumpTo(i) {
		return false
	}
	c.schedule()
	return true
}

// Stop cancels rotation. The controller ignores any later requests.
func (c *Controller) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.stopped = true
	c.cancel()
}

// State returns the current state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.state
}

// Current returns the index of the active slide.
func (c *Controller) Current() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.current
}

// Len returns the number of slides.
func (c *Controller) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.n
}

// advance moves to the next slide. Caller holds the lock.
func (c *Controller) advance() {
	if c.ready() {
		c.show((c.current + 1) % c.n)
	}
}

// cancel stops any pending rotation. Caller holds the lock.
func (c *Controller) cancel() {
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	c.gen++
}

// jumpTo moves to slide i, if it exists. Caller holds the lock.
func (c *Controller) jumpTo(i int) bool {
	if !c.ready() || i < 0 || i >= c.n {
		return false
	}
	c.show(i)
	return true
}

// logLoadError records why the manifest could not be shown.
func (c *Controller) logLoadError(r *manifest.Result, err error) {

	switch {
	case errors.Is(err, manifest.ErrStatus):
		status := 0
		if r != nil {
			status = r.Status
		}
		c.ErrorLog.Printf("Failed to fetch gallery.json: status %d: %v", status, err)

	case errors.Is(err, manifest.ErrFetch):
		c.ErrorLog.Printf("Error loading gallery.json: %v", err)

	default:
		c.InfoLog.Printf("Gallery not shown: %v", err)
	}
}

// schedule replaces any pending rotation with one a full interval from now. Caller holds the lock.
func (c *Controller) schedule() {

	c.cancel()
	if c.stopped {
		return
	}

	gen := c.gen
	c.timer = c.clock.AfterFunc(c.Interval, func() { c.rotate(gen) })
}

// ready returns true if there are slides to navigate. Caller holds the lock.
func (c *Controller) ready() bool {
	return c.state == Ready && !c.stopped
}

// rotate is the timer callback. A rotation that was replaced after it fired is ignored.
func (c *Controller) rotate(gen int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != c.gen || c.stopped {
		return
	}
	c.advance()

	// the rotation continues without being reset
	gen = c.gen
	c.timer = c.clock.AfterFunc(c.Interval, func() { c.rotate(gen) })
}

// show makes slide and dot i the only active ones. Caller holds the lock.
func (c *Controller) show(index int) {
	c.surface.Show(index)
	c.current = index
}
