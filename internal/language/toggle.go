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

package language

// Switching page content between languages.

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// Default is the language shown when a page is loaded.
const Default = "en"

// Control selects a language.
type Control struct {
	Code  string
	Label string
}

// Section is content in one language.
type Section struct {
	Lang string
}

// Surface shows controls and sections.
type Surface interface {
	SetControlActive(index int, active bool)
	SetSectionVisible(index int, visible bool)
}

// Toggle shows the sections for one language at a time.
type Toggle struct {
	controls []Control
	sections []Section
	surface  Surface
	current  string
}

// Setup returns a toggle showing the default language,
// or nil if the page has no language controls or no language sections.
func Setup(controls []Control, sections []Section, s Surface, defaultCode string) *Toggle {

	if len(controls) == 0 || len(sections) == 0 {
		return nil
	}

	t := &Toggle{
		controls: controls,
		sections: sections,
		surface:  s,
	}
	t.Set(defaultCode)
	return t
}

// Set marks the controls for code as active and shows only the sections in that language.
// An unknown code hides every section.
func (t *Toggle) Set(code string) {

	for i, c := range t.controls {
		t.surface.SetControlActive(i, c.Code == code)
	}
	for i, s := range t.sections {
		t.surface.SetSectionVisible(i, s.Lang == code)
	}
	t.current = code
}

// Current returns the code last set.
func (t *Toggle) Current() string {
	return t.current
}

// Controls returns a control for each language code, labelled with the language's own name.
// Codes that are not BCP 47 tags are skipped.
func Controls(codes []string) []Control {

	var cs []Control
	for _, code := range codes {
		code = strings.TrimSpace(code)
		tag, err := language.Parse(code)
		if err != nil {
			continue
		}
		cs = append(cs, Control{
			Code:  code,
			Label: Label(tag),
		})
	}
	return cs
}

// Label returns the name of a language in that language, or its code if no name is known.
func Label(tag language.Tag) string {

	if name := display.Self.Name(tag); name != "" {
		return name
	}
	return tag.String()
}
