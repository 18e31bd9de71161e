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

import (
	"io"
	"log"
	"testing"
	"time"

	"k8s.io/utils/clock"

	"github.com/rantaukemiding/homestay/internal/content"
	"github.com/rantaukemiding/homestay/internal/gallery"
	"github.com/rantaukemiding/homestay/internal/language"
	"github.com/rantaukemiding/homestay/internal/manifest"
)

var (
	_ gallery.Surface  = (*Page)(nil)
	_ language.Surface = (*Page)(nil)
)

func testPage(withGallery bool) *Page {
	controls := language.Controls([]string{"en", "my"})
	sections := []*content.Section{
		{Name: "welcome", Lang: "en", Div: "<p>Welcome</p>"},
		{Name: "welcome", Lang: "my", Div: "<p>ကြိုဆိုပါတယ်</p>"},
	}
	return NewPage(controls, sections, withGallery)
}

func TestPage_LanguageToggle(t *testing.T) {
	t.Parallel()

	p := testPage(true)
	tg := language.Setup(p.LanguageControls(), p.LanguageSections(), p, language.Default)
	if tg == nil {
		t.Fatal("Setup returned nil")
	}

	s := p.Snapshot()
	if !s.Controls[0].Active || s.Controls[1].Active {
		t.Fatalf("controls = %+v, want en active", s.Controls)
	}
	if !s.Sections[0].Visible || s.Sections[1].Visible {
		t.Fatalf("sections = %+v, want en visible", s.Sections)
	}

	tg.Set("my")
	s = p.Snapshot()
	if s.Controls[0].Active || !s.Controls[1].Active {
		t.Fatalf("controls = %+v, want my active", s.Controls)
	}
	if s.Sections[0].Visible || !s.Sections[1].Visible {
		t.Fatalf("sections = %+v, want my visible", s.Sections)
	}
}

func TestPage_Gallery(t *testing.T) {
	t.Parallel()

	p := testPage(true)
	if !p.Snapshot().Loading {
		t.Fatal("Loading = false before manifest")
	}

	events, cancel := p.Subscribe()
	defer cancel()

	imgs, err := manifest.Accept([]manifest.Entry{
		{URL: "images/a.jpg", Caption: "<3 the pool"},
		{URL: "images/b.jpg"},
		{URL: "images/c.jpg", Caption: "<b></b>"},
	})
	if err != nil {
		t.Fatalf("Accept: %v", err)
	}

	discard := log.New(io.Discard, "", 0)
	c := gallery.New(p, clock.RealClock{}, discard, discard)
	defer c.Stop()
	c.OnManifestLoaded(&manifest.Result{Images: imgs, Fetched: 3}, nil)

	s := p.Snapshot()
	if s.Loading || s.Error != "" {
		t.Fatalf("snapshot = %+v, want loaded without error", s)
	}
	if len(s.Slides) != 3 || len(s.Dots) != 3 {
		t.Fatalf("slides=%d dots=%d, want 3 each", len(s.Slides), len(s.Dots))
	}

	// captions are text, kept as given
	if s.Slides[0].Caption != "<3 the pool" || s.Slides[0].Alt != "<3 the pool" {
		t.Fatalf("slide 0 = %+v, want caption as given", s.Slides[0])
	}
	if s.Slides[1].Alt != "Gallery photo 2" || s.Slides[1].Caption != "" {
		t.Fatalf("slide 1 = %+v, want placeholder alt and no caption", s.Slides[1])
	}
	if s.Slides[2].Alt != "<b></b>" {
		t.Fatalf("slide 2 alt = %q, want caption as given", s.Slides[2].Alt)
	}
	if active(s) != 0 {
		t.Fatalf("first slide and dot not the only active ones: %+v %+v", s.Slides, s.Dots)
	}

	ev := <-events
	if ev.Name != EventSlide || ev.Data["index"] != 0 {
		t.Fatalf("event = %+v, want slide 0", ev)
	}

	c.Next()
	ev = <-events
	if ev.Name != EventSlide || ev.Data["index"] != 1 {
		t.Fatalf("event = %+v, want slide 1", ev)
	}
}

func TestPage_OneActiveSlide(t *testing.T) {
	t.Parallel()

	p := testPage(true)
	imgs, err := manifest.Accept([]manifest.Entry{
		{URL: "images/a.jpg"},
		{URL: "images/b.jpg"},
		{URL: "images/c.jpg"},
	})
	if err != nil {
		t.Fatalf("Accept: %v", err)
	}

	discard := log.New(io.Discard, "", 0)
	c := gallery.New(p, clock.RealClock{}, discard, discard)
	c.Interval = time.Hour
	defer c.Stop()
	c.OnManifestLoaded(&manifest.Result{Images: imgs, Fetched: 3}, nil)

	// visitor navigates while the page is being rendered
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 20000; i++ {
			c.Next()
		}
	}()

	var bad *Snapshot
	for running := true; running && bad == nil; {
		select {
		case <-done:
			running = false
		default:
		}
		if s := p.Snapshot(); active(s) < 0 {
			bad = s
		}
	}
	<-done

	if bad != nil {
		t.Fatalf("snapshot without a single active slide and dot: %+v %+v", bad.Slides, bad.Dots)
	}
}

// active returns the index of the only active slide, or -1 if there isn't exactly one, with a matching dot.
func active(s *Snapshot) int {

	slide, nSlides := -1, 0
	for i, sl := range s.Slides {
		if sl.Active {
			slide = i
			nSlides++
		}
	}
	dot, nDots := -1, 0
	for i, d := range s.Dots {
		if d.Active {
			dot = i
			nDots++
		}
	}
	if nSlides != 1 || nDots != 1 || slide != dot {
		return -1
	}
	return slide
}

func TestPage_Error(t *testing.T) {
	t.Parallel()

	p := testPage(true)
	events, cancel := p.Subscribe()
	defer cancel()

	p.ShowError(manifest.Message(manifest.ErrEmpty))

	s := p.Snapshot()
	if s.Loading || s.Error != "No images defined in gallery.json." || len(s.Slides) != 0 {
		t.Fatalf("snapshot = %+v", s)
	}
	if ev := <-events; ev.Name != EventState {
		t.Fatalf("event = %+v, want state", ev)
	}
}

func TestPage_WithoutGallery(t *testing.T) {
	t.Parallel()

	p := testPage(false)
	discard := log.New(io.Discard, "", 0)
	c := gallery.New(p, clock.RealClock{}, discard, discard)

	if c.State() != gallery.Disabled {
		t.Fatalf("state = %v, want %v", c.State(), gallery.Disabled)
	}
	if s := p.Snapshot(); s.Loading || s.HasGallery {
		t.Fatalf("snapshot = %+v, want no gallery", s)
	}
}

func TestPage_Close(t *testing.T) {
	t.Parallel()

	p := testPage(true)
	events, cancel := p.Subscribe()
	p.Close()

	if _, ok := <-events; ok {
		t.Fatal("subscription open after Close")
	}
	cancel() // no double close

	late, _ := p.Subscribe()
	if _, ok := <-late; ok {
		t.Fatal("subscription open on a closed page")
	}
}
