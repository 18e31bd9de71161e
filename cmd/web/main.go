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
	"context"
	"errors"
	"html/template"
	"io/fs"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/alexedwards/scs/v2/memstore"
	"github.com/ilyakaznacheev/cleanenv"

	"github.com/rantaukemiding/homestay/internal/content"
	"github.com/rantaukemiding/homestay/internal/language"
	"github.com/rantaukemiding/homestay/internal/manifest"
	"github.com/rantaukemiding/homestay/web"
)

// version and copyright
const (
	version = "1.0.0"
	notice  = `
	Copyright (C) Rantau Kemiding Homestay, 2026.
	This website software comes with ABSOLUTELY NO WARRANTY.
	This is free software, and you are welcome to redistribute it under certain conditions.
`
)

// file locations on server
var (
	SitePath = "../site" // site-specific configuration, content, manifest and images
)

// Site configuration
type Configuration struct {

	// server
	AddrHTTP string `yaml:"http-addr" env:"http" env-default:":8000" env-description:"HTTP address"`

	// site files, relative to the site folder
	ContentDir  string `yaml:"content-path" env:"content-path" env-default:"content"`
	GalleryFile string `yaml:"gallery-path" env:"gallery-path" env-default:"gallery.json"`
	ImagesDir   string `yaml:"images-path" env:"images-path" env-default:"images"`

	// manifest
	BuildManifest bool   `yaml:"build-manifest" env:"build-manifest" env-default:"false"` // rebuild manifest from images on start
	ImagePrefix   string `yaml:"image-prefix" env:"image-prefix" env-default:"images"`    // URL path for images in a built manifest
	ManifestURL   string `yaml:"manifest-url" env:"manifest-url" env-default:""`          // defaults to this server's gallery.json

	// page
	Title string `yaml:"title" env:"title" env-default:"Homestay"`

	// languages
	DefaultLanguage string   `yaml:"default-language" env:"default-language" env-default:"en"`
	Languages       []string `yaml:"languages" env:"languages" env-default:"en,my"`

	// operational settings
	AllowedOrigins  []string      `yaml:"allowed-origins" env:"allowed-origins" env-default:"*"`     // for manifest and images
	RotateInterval  time.Duration `yaml:"rotate-interval" env:"rotate-interval" env-default:"5s"`    // time each slide is shown
	SessionLifetime time.Duration `yaml:"session-lifetime" env:"session-lifetime" env-default:"24h"` // visitor session
	TimeoutFetch    time.Duration `yaml:"timeout-fetch" env:"timeout-fetch" env-default:"20s"`       // maximum time to fetch the manifest
	TimeoutWeb      time.Duration `yaml:"timeout-web" env:"timeout-web" env-default:"20s"`           // maximum time for web request
	ViewerIdle      time.Duration `yaml:"viewer-idle" env:"viewer-idle" env-default:"30m"`           // slideshow stopped after no requests
	ViewerSweep     time.Duration `yaml:"viewer-sweep" env:"viewer-sweep" env-default:"5m"`          // check for idle slideshows
}

// Application struct supplies application-wide dependencies.
type Application struct {
	cfg *Configuration

	errorLog      *log.Logger
	infoLog       *log.Logger
	threatLog     *log.Logger
	session       *scs.SessionManager
	templateCache map[string]*template.Template

	// site
	controls []language.Control
	sections []*content.Section
	fetcher  *manifest.Fetcher
	imagesFS fs.FS
	siteFS   fs.FS
	staticFS fs.FS

	// visitors' pages
	viewers ViewerState
}

func main() {

	// logging
	errorLog := log.New(os.Stderr, "ERROR\t", log.Ldate|log.Ltime|log.Lshortfile)
	infoLog := log.New(os.Stdout, "INFO\t", log.Ldate|log.Ltime)
	threatLog := log.New(os.Stdout, "THREAT\t", log.Ldate|log.Ltime)
	infoLog.Printf("Homestay %s", version)
	infoLog.Print(notice)

	// redirect to test folder
	test := os.Getenv("test")
	if test != "" {
		SitePath = filepath.Join(test, filepath.Base(SitePath))
	}

	// site configuration
	cfg := &Configuration{}
	if err := cleanenv.ReadConfig(filepath.Join(SitePath, "configuration.yml"), cfg); err != nil {

		// no file - go with just environment variables
		infoLog.Print(err.Error())
		if err := cleanenv.ReadEnv(cfg); err != nil {
			errorLog.Fatal(err)
		}
	}

	// initialise application
	app := initialise(cfg, os.DirFS(SitePath), errorLog, infoLog, threatLog)

	// closing this channel signals worker goroutines to return
	chDone := make(chan bool, 1)
	chStopped := make(chan bool)

	// start background worker
	tick := time.NewTicker(cfg.ViewerSweep)
	defer tick.Stop()
	go func() {
		app.viewers.worker(tick.C, chDone)
		close(chStopped)
	}()

	srv := &http.Server{
		Addr:              cfg.AddrHTTP,
		Handler:           app.Routes(),
		ErrorLog:          errorLog,
		ReadHeaderTimeout: cfg.TimeoutWeb,
		ReadTimeout:       cfg.TimeoutWeb,
		IdleTimeout:       time.Minute,
		// no write timeout, because page events are streamed
	}

	// shutdown on signal
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		infoLog.Print("Shutting down")

		// end streams and slideshows first, so that shutdown isn't blocked
		close(chDone)
		<-chStopped

		sctx, cancel := context.WithTimeout(context.Background(), cfg.TimeoutWeb)
		defer cancel()
		if err := srv.Shutdown(sctx); err != nil {
			errorLog.Print(err)
		}
	}()

	infoLog.Printf("Starting server on %s", cfg.AddrHTTP)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		errorLog.Fatal(err)
	}
}

// Initialisation, common to live and test

func initialise(cfg *Configuration, siteFS fs.FS, errorLog *log.Logger, infoLog *log.Logger, threatLog *log.Logger) *Application {

	// application templates
	forApp, err := fs.Sub(web.Files, "template")
	if err != nil {
		errorLog.Fatal(err)
	}

	// initialise template cache
	templateCache, err := newTemplateCache(forApp, templateFuncs)
	if err != nil {
		errorLog.Fatal(err)
	}

	// dependency injection
	app := &Application{
		cfg:           cfg,
		errorLog:      errorLog,
		infoLog:       infoLog,
		threatLog:     threatLog,
		templateCache: templateCache,
		siteFS:        siteFS,
	}

	// embedded static files from app
	app.staticFS, err = fs.Sub(web.Files, "static")
	if err != nil {
		errorLog.Fatal(err)
	}

	// images in site folder
	app.imagesFS, err = fs.Sub(siteFS, cfg.ImagesDir)
	if err != nil {
		errorLog.Fatal(err)
	}

	// rebuild manifest from images
	if cfg.BuildManifest {
		if err := app.buildManifest(); err != nil {
			errorLog.Fatal(err)
		}
	}

	// site content
	if err := app.initContent(); err != nil {
		errorLog.Fatal(err)
	}

	// manifest source
	app.fetcher = &manifest.Fetcher{
		Client: &http.Client{Timeout: cfg.TimeoutFetch},
		URL:    manifestURL(cfg),
	}

	// initialise session manager
	app.session = initSession(cfg.SessionLifetime)

	// visitors' pages
	app.viewers.Init(app)

	return app
}

// buildManifest lists the site's images in the gallery manifest.
func (app *Application) buildManifest() error {

	entries, err := manifest.Build(app.siteFS, app.cfg.ImagesDir, app.cfg.ImagePrefix)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		app.infoLog.Printf("No image files found in %s", app.cfg.ImagesDir)
	}

	out := filepath.Join(SitePath, app.cfg.GalleryFile)
	if err := manifest.Write(out, entries); err != nil {
		return err
	}
	app.infoLog.Printf("Wrote %d entries to %s", len(entries), out)
	return nil
}

// initContent loads the language controls and sections.
func (app *Application) initContent() error {

	sections, warn, err := content.Load(app.siteFS, app.cfg.ContentDir)
	if err != nil {
		return err
	}
	for _, w := range warn {
		app.infoLog.Print(w)
	}

	app.sections = sections
	app.controls = language.Controls(app.cfg.Languages)
	if len(app.controls) < len(app.cfg.Languages) {
		app.infoLog.Printf("Unrecognised language codes in %s", strings.Join(app.cfg.Languages, ","))
	}
	return nil
}

// initSession returns the session manager.
// Sessions are held in memory only, and just identify the visitor's page.
func initSession(lifetime time.Duration) *scs.SessionManager {

	sm := scs.New()

	sm.Cookie.Name = "homestay_session"
	sm.Cookie.SameSite = http.SameSiteLaxMode
	sm.Lifetime = lifetime
	sm.Store = memstore.New()

	return sm
}

// manifestURL returns the configured manifest URL, or this server's own.
func manifestURL(cfg *Configuration) string {

	if cfg.ManifestURL != "" {
		return cfg.ManifestURL
	}

	addr := cfg.AddrHTTP
	if strings.HasPrefix(addr, ":") {
		addr = "localhost" + addr
	}
	return "http://" + addr + "/gallery.json"
}
