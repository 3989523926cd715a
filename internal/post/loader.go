package post

import (
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	berrors "git.home.luguber.info/inful/postpress/internal/errors"
	"git.home.luguber.info/inful/postpress/internal/logfields"
)

// Loader reads every post of a site.
type Loader struct {
	dir      string
	renderer Renderer
}

// NewLoader creates a loader for the posts in dir.
func NewLoader(dir string, r Renderer) *Loader {
	return &Loader{dir: dir, renderer: r}
}

// Files lists the post file names in dir, newest first. Date-prefixed names
// make descending name order reverse-chronological.
func Files(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".md") {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Sort(sort.Reverse(sort.StringSlice(names)))
	return names, nil
}

// Load parses and renders every post. The first error aborts loading.
func (l *Loader) Load() (*Set, error) {
	names, err := Files(l.dir)
	if err != nil {
		return nil, berrors.FileSystemError("read posts directory", err).
			WithContext("path", l.dir)
	}

	set := NewSet()
	for _, name := range names {
		slug := Slug(name)
		p, err := l.loadFile(slug, filepath.Join(l.dir, name))
		if err != nil {
			return nil, err
		}
		if err := set.Add(p); err != nil {
			return nil, err
		}
		slog.Debug("Loaded post", logfields.Slug(slug), logfields.URL(p.URL), slog.Int("headings", len(p.Headings)))
	}
	return set, nil
}

func (l *Loader) loadFile(slug, path string) (*Post, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, berrors.FileSystemError("read post", err).WithContext("path", path)
	}
	return Parse(slug, string(raw), l.renderer)
}
