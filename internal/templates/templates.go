// Package templates loads the site's text/template set and renders the
// page, post, listing, table-of-contents and feed artifacts.
package templates

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"text/template"

	berrors "git.home.luguber.info/inful/postpress/internal/errors"
)

// Template names. Each is loaded from <name>.tmpl.
const (
	Page    = "page"
	Post    = "post"
	Listing = "posts"
	TOC     = "toc"
	Feed    = "rss"
)

// Required lists the templates every site must provide.
var Required = []string{Page, Post, Listing, TOC, Feed}

const extension = ".tmpl"

// Set is a parsed template directory. Every *.tmpl file is parsed into one
// namespace, so templates may include each other by file name.
type Set struct {
	root *template.Template
}

// Load parses every *.tmpl file in dir and checks the required ones exist.
func Load(dir string) (*Set, error) {
	files, err := filepath.Glob(filepath.Join(dir, "*"+extension))
	if err != nil {
		return nil, berrors.FileSystemError("list templates", err).WithContext("path", dir)
	}

	sources := make(map[string]string, len(files))
	for _, f := range files {
		data, err := os.ReadFile(f)
		if err != nil {
			return nil, berrors.FileSystemError("read template", err).WithContext("path", f)
		}
		sources[filepath.Base(f)] = string(data)
	}
	return Parse(sources)
}

// Parse builds a Set from file name to template source.
func Parse(sources map[string]string) (*Set, error) {
	root := template.New("").Funcs(Funcs()).Option("missingkey=zero")
	for name, src := range sources {
		if _, err := root.New(name).Parse(src); err != nil {
			return nil, berrors.TemplateFailed(name, fmt.Errorf("parse: %w", err))
		}
	}

	for _, name := range Required {
		if root.Lookup(name+extension) == nil {
			return nil, berrors.TemplateFailed(name+extension, errors.New("template not found"))
		}
	}
	return &Set{root: root}, nil
}

// Render executes the named template (without extension) with data.
func (s *Set) Render(name string, data map[string]any) (string, error) {
	var buf bytes.Buffer
	if err := s.root.ExecuteTemplate(&buf, name+extension, data); err != nil {
		return "", berrors.TemplateFailed(name+extension, err)
	}
	return buf.String(), nil
}
