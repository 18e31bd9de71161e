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

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"testing/fstest"
)

var testFS = fstest.MapFS{
	"gallery.json":     {Data: []byte(`[{"url":"images/a.jpg"}]`)},
	"images/a.jpg":     {Data: []byte("jpeg")},
	"images/old/b.jpg": {Data: []byte("jpeg")},
}

func TestNoDirFileSystem(t *testing.T) {
	t.Parallel()

	fsys := NoDirFileSystem{http.FS(testFS)}

	if _, err := fsys.Open("/images"); err == nil {
		t.Fatal("Open(/images) succeeded, want directory refused")
	}
	f, err := fsys.Open("/images/a.jpg")
	if err != nil {
		t.Fatalf("Open(/images/a.jpg): %v", err)
	}
	f.Close()
}

func TestServeFile(t *testing.T) {
	t.Parallel()

	fsys := NoDirFileSystem{http.FS(testFS)}

	tests := []struct {
		name   string
		status int
	}{
		{"/gallery.json", http.StatusOK},
		{"/missing.json", http.StatusNotFound},
		{"/images", http.StatusNotFound},
	}

	for _, tc := range tests {
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, tc.name, nil)
		ServeFile(w, r, fsys, tc.name)

		if w.Code != tc.status {
			t.Fatalf("ServeFile(%s) status = %d, want %d", tc.name, w.Code, tc.status)
		}
	}
}
