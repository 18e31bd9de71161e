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

package site

// Serving site files: the manifest, images and static resources.

import (
	"net/http"
	"os"
)

// NoDirFileSystem is a file system that refuses to open directories, so that they cannot be listed.
type NoDirFileSystem struct {
	http.FileSystem
}

// Open returns the named file, or a not-exist error for a directory.
func (nfs NoDirFileSystem) Open(name string) (http.File, error) {

	f, err := nfs.FileSystem.Open(name)
	if err != nil {
		return nil, err
	}

	s, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}
	if s.IsDir() {
		f.Close()
		return nil, os.ErrNotExist
	}

	return f, nil
}

// ServeFile returns a file as an HTTP response.
// Implementation is needed because http.ServeFile does not support file systems.
// This version is a simplified copy of http.serveFile, omitting:
// - the check for a path with ".."
// - handling of index.html
// - redirection to canonical path
// - directory listing.
func ServeFile(w http.ResponseWriter, r *http.Request, fs http.FileSystem, name string) {

	f, err := fs.Open(name)
	if err != nil {
		msg, code := toHTTPError(err)
		http.Error(w, msg, code)
		return
	}
	defer f.Close()

	d, err := f.Stat()
	if err != nil {
		msg, code := toHTTPError(err)
		http.Error(w, msg, code)
		return
	}

	// serveContent will check modification time
	http.ServeContent(w, r, d.Name(), d.ModTime(), f)
}

// toHTTPError converts OS errors to HTTP errors.
// This implementation is identical to http.toHTTPError.
func toHTTPError(err error) (msg string, httpStatus int) {
	if os.IsNotExist(err) {
		return "404 page not found", http.StatusNotFound
	}
	if os.IsPermission(err) {
		return "403 Forbidden", http.StatusForbidden
	}
	// Default:
	return "500 Internal Server Error", http.StatusInternalServerError
}
