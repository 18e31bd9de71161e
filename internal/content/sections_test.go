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

package content

import (
	"strings"
	"testing"
	"testing/fstest"
)

func TestLoad(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"content/20-rooms.en.md":   {Data: []byte("## Rooms\n\nThree rooms.")},
		"content/10-welcome.my.md": {Data: []byte("မင်္ဂလာပါ")},
		"content/10-welcome.en.md": {Data: []byte("Welcome <script>alert(1)</script>")},
		"content/notes.md":         {Data: []byte("no language")},
		"content/readme.txt":       {Data: []byte("ignored")},
	}

	sections, warn, err := Load(fsys, "content")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(warn) != 1 {
		t.Fatalf("warnings = %q, want 1", warn)
	}
	if len(sections) != 3 {
		t.Fatalf("len(sections) = %d, want 3", len(sections))
	}

	want := []struct{ name, lang string }{
		{"10-welcome", "en"},
		{"10-welcome", "my"},
		{"20-rooms", "en"},
	}
	for i, w := range want {
		if sections[i].Name != w.name || sections[i].Lang != w.lang {
			t.Fatalf("sections[%d] = %s.%s, want %s.%s", i, sections[i].Name, sections[i].Lang, w.name, w.lang)
		}
	}

	if strings.Contains(string(sections[0].Div), "<script>") {
		t.Fatalf("section not sanitised: %s", sections[0].Div)
	}
	if !strings.Contains(string(sections[2].Div), "<h2") {
		t.Fatalf("markdown not rendered: %s", sections[2].Div)
	}
}

func TestLoad_MissingFolder(t *testing.T) {
	t.Parallel()

	sections, _, err := Load(fstest.MapFS{}, "content")
	if err != nil || sections != nil {
		t.Fatalf("Load = %v, %v; want no sections and no error", sections, err)
	}
}
