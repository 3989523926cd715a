package post

import (
	berrors "git.home.luguber.info/inful/postpress/internal/errors"
)

// Set holds the posts of one build keyed by slug, in load order.
type Set struct {
	bySlug map[string]*Post
	byURL  map[string]string
	order  []*Post
}

func NewSet() *Set {
	return &Set{
		bySlug: make(map[string]*Post),
		byURL:  make(map[string]string),
	}
}

// Add appends p. A second post with an already used URL is a fatal content
// error naming both slugs.
func (s *Set) Add(p *Post) error {
	if existing, ok := s.byURL[p.URL]; ok {
		return berrors.DuplicateURL(p.URL, p.ID, existing)
	}
	s.byURL[p.URL] = p.ID
	s.bySlug[p.ID] = p
	s.order = append(s.order, p)
	return nil
}

// Get returns the post with the given slug.
func (s *Set) Get(slug string) (*Post, bool) {
	p, ok := s.bySlug[slug]
	return p, ok
}

// Lookup maps slugs to posts, skipping unknown ones.
func (s *Set) Lookup(slugs []string) []*Post {
	out := make([]*Post, 0, len(slugs))
	for _, slug := range slugs {
		if p, ok := s.bySlug[slug]; ok {
			out = append(out, p)
		}
	}
	return out
}

// All returns every post in load order.
func (s *Set) All() []*Post { return s.order }

func (s *Set) Len() int { return len(s.order) }
