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

import (
	"bytes"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFiles(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, name := range names {
		p := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, []byte("x"), 0644); err != nil {
			t.Fatal(err)
		}
	}
}

func TestRun(t *testing.T) {
	t.Parallel()

	site := t.TempDir()
	writeFiles(t, site, "images/b.png", "images/a.JPG", "images/notes.txt")

	var out bytes.Buffer
	cfg := &Configuration{GalleryFile: "gallery.json", ImagePrefix: "images", ImagesDir: "images"}
	if err := run(site, cfg, log.New(&out, "", 0)); err != nil {
		t.Fatalf("run: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(site, "gallery.json"))
	if err != nil {
		t.Fatal(err)
	}
	want := `[
  {
    "url": "images/a.JPG",
    "caption": "Photo 1"
  },
  {
    "url": "images/b.png",
    "caption": "Photo 2"
  }
]
`
	if string(data) != want {
		t.Fatalf("gallery.json =\n%s\nwant\n%s", data, want)
	}
	if !strings.HasPrefix(out.String(), "[OK] Wrote 2 entries to ") {
		t.Fatalf("log = %q", out.String())
	}
}

func TestRun_NoImages(t *testing.T) {
	t.Parallel()

	site := t.TempDir()
	writeFiles(t, site, "images/readme.txt")

	var out bytes.Buffer
	cfg := &Configuration{GalleryFile: "gallery.json", ImagePrefix: "images", ImagesDir: "images"}
	if err := run(site, cfg, log.New(&out, "", 0)); err != nil {
		t.Fatalf("run: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(site, "gallery.json"))
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "[]\n" {
		t.Fatalf("gallery.json = %q, want empty list", data)
	}
	if !strings.Contains(out.String(), "[WARN] No image files found") {
		t.Fatalf("log = %q, want warning", out.String())
	}
}

func TestRun_NoFolder(t *testing.T) {
	t.Parallel()

	site := t.TempDir()
	cfg := &Configuration{GalleryFile: "gallery.json", ImagePrefix: "images", ImagesDir: "images"}

	err := run(site, cfg, log.New(&bytes.Buffer{}, "", 0))
	if err == nil || !strings.Contains(err.Error(), "images folder not found") {
		t.Fatalf("run = %v, want folder not found", err)
	}
	if _, err := os.Stat(filepath.Join(site, "gallery.json")); !os.IsNotExist(err) {
		t.Fatal("gallery.json written without images folder")
	}
}

func TestReadConfig(t *testing.T) {
	site := t.TempDir()
	if err := os.WriteFile(filepath.Join(site, "configuration.yml"), []byte("images-path: photos\nimage-prefix: /photos\n"), 0644); err != nil {
		t.Fatal(err)
	}

	var cfg Configuration
	if err := readConfig(site, &cfg); err != nil {
		t.Fatalf("readConfig: %v", err)
	}
	if cfg.ImagesDir != "photos" || cfg.ImagePrefix != "/photos" || cfg.GalleryFile != "gallery.json" {
		t.Fatalf("cfg = %+v", cfg)
	}
}
