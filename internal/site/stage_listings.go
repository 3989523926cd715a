package site

import (
	"log/slog"
	"strconv"
	"strings"

	"git.home.luguber.info/inful/postpress/internal/collection"
	berrors "git.home.luguber.info/inful/postpress/internal/errors"
	"git.home.luguber.info/inful/postpress/internal/logfields"
	"git.home.luguber.info/inful/postpress/internal/metrics"
	"git.home.luguber.info/inful/postpress/internal/templates"
)

// stageListings writes the paginated listings: all posts, one per tag and
// one per month.
func stageListings(bs *BuildState) error {
	idx := bs.Index

	n, err := writeListing(bs, idx.All(), "", RootPageURL)
	if err != nil {
		return err
	}
	total := n

	for _, tag := range idx.TagKeys() {
		if tag == collection.AllTag {
			continue
		}
		n, err := writeListing(bs, idx.Tag(tag), bs.Config.TagListingTitle(tag), TagPageURL(bs.Config.TagURL(tag)))
		if err != nil {
			return err
		}
		slog.Debug("Wrote tag listing", logfields.Tag(tag), logfields.Pages(n))
		total += n
	}

	for _, month := range idx.MonthKeys() {
		n, err := writeListing(bs, idx.Month(month), bs.Config.MonthListingTitle(month), MonthPageURL(month))
		if err != nil {
			return err
		}
		slog.Debug("Wrote month listing", logfields.Month(month), logfields.Pages(n))
		total += n
	}

	bs.Report.Listings = total
	bs.recorder.AddArtifacts(metrics.ArtifactListing, total)
	return nil
}

// writeListing paginates slugs and writes one page per listing page. It
// returns the number of pages written.
func writeListing(bs *BuildState, slugs []string, title string, urlFor func(page int) string) (int, error) {
	pagination, err := collection.Paginate(slugs, bs.Config.PostsPerPage, urlFor)
	if err != nil {
		return 0, berrors.InternalError("paginate listing", err)
	}

	for _, pg := range pagination.Pages {
		data := templates.ListingData(title, bs.Posts.Lookup(pg.Slugs), pagination.Total(), pg.Number, pagination.URL)
		page, err := bs.renderPage(title, templates.Listing, data)
		if err != nil {
			return 0, err
		}
		if _, err := bs.Staging.WriteIndex(pg.URL, page); err != nil {
			return 0, berrors.FileSystemError("write listing", err).WithContext("ref", pg.URL)
		}
	}
	return pagination.Total(), nil
}

// RootPageURL is the URL of page n of the all-posts listing.
func RootPageURL(n int) string {
	if n == 1 {
		return "/"
	}
	return "/page/" + strconv.Itoa(n) + "/"
}

// TagPageURL returns the page URL function of a tag listing rooted at base.
func TagPageURL(base string) func(int) string {
	return func(n int) string {
		if n == 1 {
			return base
		}
		return base + strconv.Itoa(n) + "/"
	}
}

// MonthPageURL returns the page URL function of a YYYY-MM listing. The
// month keeps its leading zero: /2024/01/, /2024/01/2/.
func MonthPageURL(month string) func(int) string {
	base := "/" + strings.Replace(month, "-", "/", 1) + "/"
	return TagPageURL(base)
}
