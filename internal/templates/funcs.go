package templates

import (
	"text/template"
	"time"

	"github.com/google/uuid"

	"git.home.luguber.info/inful/postpress/internal/markdown"
)

// Funcs returns the helpers available to every template.
func Funcs() template.FuncMap {
	return template.FuncMap{
		"plaintext": Plaintext,
		"feedID":    FeedID,
		"rfc822":    RFC822,
		"add":       func(a, b int) int { return a + b },
		"sub":       func(a, b int) int { return a - b },
	}
}

// Plaintext returns the text content of an HTML fragment with entities
// decoded, for feed descriptions and meta tags.
func Plaintext(fragment string) string {
	return markdown.PlainText(fragment)
}

// FeedID is a stable identifier for a feed entry, derived from its URL.
func FeedID(url string) string {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(url)).URN()
}

// RFC822 formats a YYYY-MM-DD post date for an RSS pubDate. Dates that do
// not parse are returned unchanged.
func RFC822(date string) string {
	t, err := time.Parse(time.DateOnly, date)
	if err != nil {
		return date
	}
	return t.Format(time.RFC1123Z)
}
