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

// Site content, written in Markdown with one file per section and language.
// E.g. "10-welcome.en.md" and "10-welcome.my.md".

import (
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"sort"
	"strings"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"

	"github.com/microcosm-cc/bluemonday"
)

const suffix = ".md"

type Section struct {
	Name string // file name without language and suffix
	Lang string
	Div  template.HTML
}

var mdRenderer = html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags | html.HrefTargetBlank})

// HTML sanitizer for rendered sections
var sanitizer = bluemonday.UGCPolicy()

// Load reads the sections in dir, ordered by file name.
// A missing folder is not an error: the site just has no language sections.
func Load(fsys fs.FS, dir string) ([]*Section, []string, error) {

	items, err := fs.ReadDir(fsys, dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil, nil
	} else if err != nil {
		return nil, nil, err
	}

	var names []string
	for _, item := range items {
		if !item.IsDir() && strings.HasSuffix(item.Name(), suffix) {
			names = append(names, item.Name())
		}
	}
	sort.Strings(names)

	var sections []*Section
	var warn []string
	for _, filename := range names {

		name, lang, ok := splitName(filename)
		if !ok {
			warn = append(warn, "No language for content file "+filename)
			continue
		}

		md, err := fs.ReadFile(fsys, dir+"/"+filename)
		if err != nil {
			return nil, warn, fmt.Errorf("content %s: %w", filename, err)
		}

		sections = append(sections, &Section{
			Name: name,
			Lang: lang,
			Div:  ToHTML(string(md)),
		})
	}
	return sections, warn, nil
}

// ToHTML converts markdown to HTML and sanitises it.
func ToHTML(md string) template.HTML {
	mdParser := parser.NewWithExtensions(parser.CommonExtensions | parser.NoEmptyLineBeforeBlock)

	doc := mdParser.Parse([]byte(md))

	unsafe := markdown.Render(doc, mdRenderer)
	html := sanitizer.SanitizeBytes(unsafe)
	return template.HTML(html)
}

// splitName gets the section name and language from "name.lang.md".
func splitName(filename string) (name string, lang string, ok bool) {

	base := strings.TrimSuffix(filename, suffix)
	i := strings.LastIndexByte(base, '.')
	if i <= 0 || i == len(base)-1 {
		return "", "", false
	}
	return base[:i], base[i+1:], true
}
