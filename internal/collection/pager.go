package collection

import (
	"fmt"
)

// TotalPages is ceil(count/size) in integer arithmetic.
func TotalPages(count, size int) int {
	return (count + size - 1) / size
}

// Page is one listing page.
type Page struct {
	Number int
	URL    string
	Slugs  []string
}

// Pagination is the result of paginating one ordered slug list.
type Pagination struct {
	Pages []Page
	urls  []string
}

// Total returns the number of pages.
func (p *Pagination) Total() int { return len(p.Pages) }

// URL returns the URL of page n (1-based), or "" when out of range.
func (p *Pagination) URL(n int) string {
	if n < 1 || n > len(p.urls) {
		return ""
	}
	return p.urls[n-1]
}

// Paginate splits slugs into pages of at most size entries. Every page URL
// is computed before any page is built, so a page can link to pages after
// it.
func Paginate(slugs []string, size int, urlFor func(page int) string) (*Pagination, error) {
	if size < 1 {
		return nil, fmt.Errorf("page size must be at least 1, got %d", size)
	}

	total := TotalPages(len(slugs), size)
	urls := make([]string, total)
	for i := 0; i < total; i++ {
		urls[i] = urlFor(i + 1)
	}

	pages := make([]Page, total)
	for i := 0; i < total; i++ {
		end := min((i+1)*size, len(slugs))
		pages[i] = Page{
			Number: i + 1,
			URL:    urls[i],
			Slugs:  slugs[i*size : end],
		}
	}
	return &Pagination{Pages: pages, urls: urls}, nil
}
