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

package manifest

// The gallery manifest: a JSON list of images, each with an optional URL and caption.

import (
	"errors"
	"strconv"

	"github.com/tidwall/gjson"
)

// Errors for manifests that cannot be shown. Each has its own message for visitors.
var (
	ErrFetch     = errors.New("manifest: fetch failed")
	ErrStatus    = errors.New("manifest: bad response status")
	ErrMalformed = errors.New("manifest: not a list of images")
	ErrEmpty     = errors.New("manifest: no images defined")
	ErrNoValid   = errors.New("manifest: no valid images")
)

// Entry is one record from the manifest. URL is empty if the record had none.
type Entry struct {
	URL     string `json:"url"`
	Caption string `json:"caption,omitempty"`
}

// Image is an accepted entry, indexed by its position among accepted entries.
type Image struct {
	Index   int
	URL     string
	Caption string // as given, possibly empty
	Alt     string // caption, or a placeholder
}

// Message returns the text shown to visitors in place of the slides.
func Message(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrStatus):
		return "Unable to load photo gallery (gallery.json not found)."
	case errors.Is(err, ErrMalformed):
		return "Photo gallery data is not valid (gallery.json must be a list of images)."
	case errors.Is(err, ErrEmpty):
		return "No images defined in gallery.json."
	case errors.Is(err, ErrNoValid):
		return "No valid images in gallery.json."
	default:
		return "Error loading photo gallery. Please try again later."
	}
}

// Parse checks that data is a non-empty JSON list, and returns all its entries in order.
// Entries without a usable URL are returned with an empty URL, for Accept to drop.
func Parse(data []byte) ([]Entry, error) {

	if !gjson.ValidBytes(data) {
		return nil, ErrMalformed
	}

	list := gjson.ParseBytes(data)
	if !list.IsArray() {
		return nil, ErrMalformed
	}

	items := list.Array()
	if len(items) == 0 {
		return nil, ErrEmpty
	}

	entries := make([]Entry, 0, len(items))
	for _, item := range items {
		entries = append(entries, Entry{
			URL:     stringField(item, "url"),
			Caption: stringField(item, "caption"),
		})
	}
	return entries, nil
}

// Accept drops entries without a URL, and indexes the rest from 0.
func Accept(entries []Entry) ([]Image, error) {

	var valid []Entry
	for _, e := range entries {
		if e.URL != "" {
			valid = append(valid, e)
		}
	}
	if len(valid) == 0 {
		return nil, ErrNoValid
	}

	images := make([]Image, len(valid))
	for i, e := range valid {
		alt := e.Caption
		if alt == "" {
			alt = Placeholder(i)
		}
		images[i] = Image{
			Index:   i,
			URL:     e.URL,
			Caption: e.Caption,
			Alt:     alt,
		}
	}
	return images, nil
}

// Placeholder returns the caption for an uncaptioned image at index i.
func Placeholder(i int) string {
	return "Gallery photo " + strconv.Itoa(i+1)
}

// stringField returns a string value from an object, or "" for anything else.
func stringField(item gjson.Result, name string) string {

	if !item.IsObject() {
		return ""
	}
	v := item.Get(name)
	if v.Type != gjson.String {
		return ""
	}
	return v.Str
}
