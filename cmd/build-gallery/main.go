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

// Command build-gallery writes gallery.json, listing the images in a site's images folder.
package main

import (
	"errors"
	"flag"
	"io/fs"
	"log"
	"os"
	"path/filepath"

	"github.com/ilyakaznacheev/cleanenv"

	"github.com/rantaukemiding/homestay/internal/manifest"
)

// Configuration is shared with the web server's configuration file.
type Configuration struct {
	GalleryFile string `yaml:"gallery-path" env:"gallery-path" env-default:"gallery.json" env-description:"manifest to be written"`
	ImagePrefix string `yaml:"image-prefix" env:"image-prefix" env-default:"images" env-description:"URL path for images"`
	ImagesDir   string `yaml:"images-path" env:"images-path" env-default:"images" env-description:"folder of images"`
}

func main() {

	infoLog := log.New(os.Stdout, "", 0)
	errorLog := log.New(os.Stderr, "", 0)

	var cfg Configuration

	fset := flag.NewFlagSet("build-gallery", flag.ExitOnError)
	site := fset.String("site", ".", "site folder, with optional configuration.yml")
	fset.Usage = cleanenv.FUsage(fset.Output(), &cfg, nil, fset.PrintDefaults)
	fset.Parse(os.Args[1:])

	if err := readConfig(*site, &cfg); err != nil {
		errorLog.Fatalf("[ERROR] %v", err)
	}

	if err := run(*site, &cfg, infoLog); err != nil {
		errorLog.Fatalf("[ERROR] %v", err)
	}
}

// readConfig reads the site's configuration file, or just environment variables if there isn't one.
func readConfig(site string, cfg *Configuration) error {

	err := cleanenv.ReadConfig(filepath.Join(site, "configuration.yml"), cfg)
	if errors.Is(err, fs.ErrNotExist) {
		return cleanenv.ReadEnv(cfg)
	}
	return err
}

// run builds and writes the manifest.
func run(site string, cfg *Configuration, infoLog *log.Logger) error {

	imagesDir := filepath.Join(site, cfg.ImagesDir)
	if s, err := os.Stat(imagesDir); err != nil || !s.IsDir() {
		return errors.New("images folder not found: " + imagesDir)
	}

	entries, err := manifest.Build(os.DirFS(site), filepath.ToSlash(cfg.ImagesDir), cfg.ImagePrefix)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		infoLog.Printf("[WARN] No image files found in '%s' folder.", cfg.ImagesDir)
	}

	out := filepath.Join(site, cfg.GalleryFile)
	if err := manifest.Write(out, entries); err != nil {
		return err
	}

	infoLog.Printf("[OK] Wrote %d entries to %s", len(entries), out)
	return nil
}
