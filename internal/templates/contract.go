package templates

import (
	"git.home.luguber.info/inful/postpress/internal/markdown"
	"git.home.luguber.info/inful/postpress/internal/post"
)

// The data bags below are the whole interface between the build and the
// site's templates. Function values are invoked with `call`, e.g.
// {{ call .getPageUrl 2 }}.

// PageData is the outer page shell: {title, body}.
func PageData(title, body string) map[string]any {
	return map[string]any{
		"title": title,
		"body":  body,
	}
}

// PostData is a single post: {post, getTagUrl}.
func PostData(p *post.Post, getTagURL func(tag string) string) map[string]any {
	return map[string]any{
		"post":      p,
		"getTagUrl": getTagURL,
	}
}

// ListingData is one listing page: {title, posts, totalPages, curPage, getPageUrl}.
func ListingData(title string, posts []*post.Post, totalPages, curPage int, getPageURL func(page int) string) map[string]any {
	return map[string]any{
		"title":      title,
		"posts":      posts,
		"totalPages": totalPages,
		"curPage":    curPage,
		"getPageUrl": getPageURL,
	}
}

// TOCData is a table of contents: {headings, name}.
func TOCData(headings []markdown.Heading, name string) map[string]any {
	return map[string]any{
		"headings": headings,
		"name":     name,
	}
}

// FeedData is the syndication feed: {posts}.
func FeedData(posts []*post.Post) map[string]any {
	return map[string]any{
		"posts": posts,
	}
}
