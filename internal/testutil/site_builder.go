package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// DefaultTemplates is a minimal template set honoring the full data
// contract. Output is compact so tests can assert on exact fragments.
var DefaultTemplates = map[string]string{
	"page.tmpl":  `<html><title>{{ .title }}</title>{{ .body }}</html>`,
	"post.tmpl":  `<article>{{ .post.Title }}|{{ range .post.Tags }}<a href="{{ call $.getTagUrl . }}">{{ . }}</a>{{ end }}|{{ .post.Content }}</article>`,
	"posts.tmpl": `<h1>{{ .title }}</h1>{{ range .posts }}<a href="{{ .URL }}">{{ .Title }}</a>{{ end }}<p>{{ .curPage }}/{{ .totalPages }}</p>{{ if lt .curPage .totalPages }}<a rel="next" href="{{ call .getPageUrl (add .curPage 1) }}">next</a>{{ end }}`,
	"toc.tmpl":   `<nav>{{ .name }}:{{ range .headings }}<a href="#{{ .Slug }}">{{ .Text }}</a>{{ end }}</nav>`,
	"rss.tmpl":   `<rss>{{ range .posts }}<item><link>{{ .URL }}</link><guid>{{ feedID .URL }}</guid></item>{{ end }}</rss>`,
}

// SiteBuilder provides a fluent interface for laying out a site root:
// source/config.yml, source/posts, source/templates and source/assets.
type SiteBuilder struct {
	t     *testing.T
	root  string
	files map[string]string
}

// NewSiteBuilder starts a site in a fresh temporary directory with the
// default templates, an empty posts directory and an empty config.
func NewSiteBuilder(t *testing.T) *SiteBuilder {
	t.Helper()
	sb := &SiteBuilder{
		t:     t,
		root:  t.TempDir(),
		files: map[string]string{"source/config.yml": "{}\n"},
	}
	for name, src := range DefaultTemplates {
		sb.files["source/templates/"+name] = src
	}
	return sb
}

// WithConfig sets the content of source/config.yml.
func (sb *SiteBuilder) WithConfig(yaml string) *SiteBuilder {
	sb.files["source/config.yml"] = yaml
	return sb
}

// WithPost adds source/posts/<name>.
func (sb *SiteBuilder) WithPost(name, src string) *SiteBuilder {
	sb.files["source/posts/"+name] = src
	return sb
}

// WithTemplate overrides or adds source/templates/<name>.
func (sb *SiteBuilder) WithTemplate(name, src string) *SiteBuilder {
	sb.files["source/templates/"+name] = src
	return sb
}

// WithAsset adds source/assets/<rel>.
func (sb *SiteBuilder) WithAsset(rel, data string) *SiteBuilder {
	sb.files["source/assets/"+rel] = data
	return sb
}

// WithFile adds any file relative to the site root.
func (sb *SiteBuilder) WithFile(rel, data string) *SiteBuilder {
	sb.files[rel] = data
	return sb
}

// Build writes the site to disk and returns its root.
func (sb *SiteBuilder) Build() string {
	sb.t.Helper()
	if err := os.MkdirAll(filepath.Join(sb.root, "source", "posts"), testDirPermissions); err != nil {
		sb.t.Fatalf("create posts directory: %v", err)
	}
	WriteTree(sb.t, sb.root, sb.files)
	return sb.root
}

// WriteTree writes files (slash-separated path relative to root → content).
func WriteTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(path), testDirPermissions); err != nil {
			t.Fatalf("create %s: %v", filepath.Dir(path), err)
		}
		if err := os.WriteFile(path, []byte(content), testFilePermissions); err != nil {
			t.Fatalf("write %s: %v", path, err)
		}
	}
}
