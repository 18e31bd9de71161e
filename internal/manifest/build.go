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

// Building the manifest from a folder of images.

import (
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	jsoniter "github.com/json-iterator/go"
)

// ImageTypes are the file extensions listed in a built manifest.
var ImageTypes = []string{".jpg", ".jpeg", ".png", ".webp", ".gif"}

// indented output, with non-ASCII and HTML characters written as-is
var jsonOut = jsoniter.Config{
	EscapeHTML:             false,
	SortMapKeys:            true,
	ValidateJsonRawMessage: true,
}.Froze()

// Build lists the images in dir, sorted by name, with URLs under prefix and numbered captions.
func Build(fsys fs.FS, dir string, prefix string) ([]Entry, error) {

	items, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("images folder %s: %w", dir, err)
	}

	var names []string
	for _, item := range items {
		if item.IsDir() {
			continue
		}
		if isImage(item.Name()) {
			names = append(names, item.Name())
		}
	}
	sort.Strings(names)

	entries := make([]Entry, 0, len(names))
	for i, name := range names {
		entries = append(entries, Entry{
			URL:     path.Join(prefix, name),
			Caption: "Photo " + strconv.Itoa(i+1),
		})
	}
	return entries, nil
}

// Encode returns the manifest as indented JSON. An empty manifest is "[]".
func Encode(entries []Entry) ([]byte, error) {

	if entries == nil {
		entries = []Entry{}
	}

	data, err := jsonOut.MarshalIndent(entries, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// Write saves the manifest to a file, replacing it only when complete.
func Write(filename string, entries []Entry) error {

	data, err := Encode(entries)
	if err != nil {
		return err
	}

	// write to a temporary file in the same folder, then rename
	tmp, err := os.CreateTemp(filepath.Dir(filename), ".gallery-*.json")
	if err != nil {
		return err
	}
	if _, err = tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err = tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	if err = os.Chmod(tmp.Name(), 0644); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), filename)
}

// isImage returns true for file names with an image extension, in any case.
func isImage(name string) bool {

	ext := strings.ToLower(filepath.Ext(name))
	for _, t := range ImageTypes {
		if ext == t {
			return true
		}
	}
	return false
}
