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
	"html/template"
	"io/fs"
	"net/http"
	"path"

	"github.com/justinas/nosurf"

	"github.com/rantaukemiding/homestay/internal/display"
)

// Template data for all pages - implements TemplateData interface so we can add data without knowing
// which template we have

type TemplateData interface {
	addDefaultData(app *Application, r *http.Request, name string)
}

type DataCommon struct {
	CSRFToken string
	Lang      string // current language, for the html element
	PageName  string
	Title     string
}

func (d *DataCommon) addDefaultData(app *Application, r *http.Request, page string) {

	d.CSRFToken = nosurf.Token(r)
	if d.Lang == "" {
		d.Lang = app.cfg.DefaultLanguage
	}
	d.PageName = page
	if d.Title == "" {
		d.Title = app.cfg.Title
	}
}

// template data for display pages

type DataHome struct {
	Page *display.Snapshot
	DataCommon
}

// Define functions callable from a template

var templateFuncs = template.FuncMap{
	"ordinal": ordinal,
}

// ordinal returns a 1-based position for a 0-based index.
func ordinal(i int) int {
	return i + 1
}

// newTemplateCache parses each page template with all layouts and partials.
// The result is indexed by page file name, e.g. "home.page.tmpl".
func newTemplateCache(fsys fs.FS, funcs template.FuncMap) (map[string]*template.Template, error) {

	cache := map[string]*template.Template{}

	pages, err := fs.Glob(fsys, "*.page.tmpl")
	if err != nil {
		return nil, err
	}

	for _, page := range pages {
		name := path.Base(page)

		ts, err := template.New(name).Funcs(funcs).ParseFS(fsys, page)
		if err != nil {
			return nil, err
		}

		// add layouts and partials
		ts, err = ts.ParseFS(fsys, "*.layout.tmpl")
		if err != nil {
			return nil, err
		}
		if ps, _ := fs.Glob(fsys, "*.partial.tmpl"); len(ps) > 0 {
			ts, err = ts.ParseFS(fsys, "*.partial.tmpl")
			if err != nil {
				return nil, err
			}
		}

		cache[name] = ts
	}

	return cache, nil
}
