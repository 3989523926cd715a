// Package post loads Markdown posts into immutable Post records.
package post

import (
	"fmt"
	"strings"

	berrors "git.home.luguber.info/inful/postpress/internal/errors"
	"git.home.luguber.info/inful/postpress/internal/frontmatter"
	"git.home.luguber.info/inful/postpress/internal/markdown"
)

// Post is one rendered post. It is built once by the loader and never
// modified afterwards, except for TOC expansion of Content by the emitter.
type Post struct {
	ID       string             `json:"id"`
	Title    string             `json:"title"`
	URL      string             `json:"url"`
	Tags     []string           `json:"tags"`
	Date     string             `json:"date"`
	Head     string             `json:"head"`
	Content  string             `json:"content"`
	Headings []markdown.Heading `json:"headings"`
	Extra    any                `json:"extra"`
}

// Month returns the YYYY-MM bucket key of the post.
func (p *Post) Month() string {
	if len(p.Date) < 7 {
		return p.Date
	}
	return p.Date[:7]
}

// Renderer renders Markdown source. *markdown.Renderer satisfies it.
type Renderer interface {
	Render(src []byte) (markdown.Result, error)
}

// Slug derives the post identity from its source file name.
func Slug(filename string) string {
	return strings.TrimSuffix(filename, ".md")
}

// DefaultURL is the URL of a post that sets none.
func DefaultURL(slug string) string {
	return "/posts/" + slug + "/"
}

// NormalizeURL appends a slash and replaces the first "//" with "/".
// Only one substitution is made.
func NormalizeURL(u string) string {
	return strings.Replace(u+"/", "//", "/", 1)
}

// Metadata is the decoded front matter of a post after defaults.
type Metadata struct {
	Title string
	URL   string
	Tags  []string
	// Extra is handed to templates untouched; it defaults to an empty map.
	Extra any
}

// ApplyDefaults reads the known keys out of a raw metadata mapping. Missing
// or empty values fall back to their defaults; malformed ones are coerced
// rather than rejected.
func ApplyDefaults(slug string, raw map[string]any) Metadata {
	m := Metadata{
		Title: stringValue(raw["title"]),
		URL:   stringValue(raw["url"]),
		Tags:  tagsValue(raw["tags"]),
		Extra: map[string]any{},
	}
	if m.Title == "" {
		m.Title = slug
	}
	if m.URL == "" {
		m.URL = DefaultURL(slug)
	}
	m.URL = NormalizeURL(m.URL)
	if extra := raw["extra"]; extra != nil {
		m.Extra = extra
	}
	return m
}

func stringValue(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	default:
		return fmt.Sprint(val)
	}
}

// tagsValue drops empty tags so they never land in the "" all-posts bucket.
func tagsValue(v any) []string {
	switch val := v.(type) {
	case nil:
		return []string{}
	case []any:
		tags := make([]string, 0, len(val))
		for _, t := range val {
			if s := stringValue(t); s != "" {
				tags = append(tags, s)
			}
		}
		return tags
	default:
		if s := stringValue(val); s != "" {
			return []string{s}
		}
		return []string{}
	}
}

// Parse builds a Post from its slug and raw source text. Unparseable
// metadata is a content error; render failures keep their own category
// when they carry one (a missing asset, for instance).
func Parse(slug, raw string, r Renderer) (*Post, error) {
	parts := frontmatter.Split(raw)

	rawMeta, err := frontmatter.ParseYAML(parts.Meta)
	if err != nil {
		return nil, berrors.InvalidMetadata(slug, err)
	}
	meta := ApplyDefaults(slug, rawMeta)

	head, err := r.Render([]byte(parts.Head))
	if err != nil {
		return nil, renderError(slug, err)
	}
	body, err := r.Render([]byte(parts.Body))
	if err != nil {
		return nil, renderError(slug, err)
	}

	date := slug
	if len(date) > 10 {
		date = date[:10]
	}

	return &Post{
		ID:       slug,
		Title:    meta.Title,
		URL:      meta.URL,
		Tags:     meta.Tags,
		Date:     date,
		Head:     head.HTML,
		Content:  body.HTML,
		Headings: body.Headings,
		Extra:    meta.Extra,
	}, nil
}

func renderError(slug string, err error) error {
	if be, ok := berrors.As(err); ok {
		return be.WithContext("slug", slug)
	}
	return berrors.RenderFailed(slug, err)
}
