package site

import (
	"log/slog"

	berrors "git.home.luguber.info/inful/postpress/internal/errors"
	"git.home.luguber.info/inful/postpress/internal/logfields"
	"git.home.luguber.info/inful/postpress/internal/markdown"
	"git.home.luguber.info/inful/postpress/internal/metrics"
	"git.home.luguber.info/inful/postpress/internal/post"
	"git.home.luguber.info/inful/postpress/internal/templates"
)

// stagePosts writes <url>/index.html for every post.
func stagePosts(bs *BuildState) error {
	for _, p := range bs.Posts.All() {
		if err := expandTOC(bs, p); err != nil {
			return err
		}

		page, err := bs.renderPage(p.Title, templates.Post, templates.PostData(p, bs.Config.TagURL))
		if err != nil {
			return err
		}
		if _, err := bs.Staging.WriteIndex(p.URL, page); err != nil {
			return berrors.FileSystemError("write post", err).WithContext("ref", p.URL)
		}
		slog.Debug("Wrote post", logfields.Slug(p.ID), logfields.URL(p.URL))
	}

	bs.Report.Posts = bs.Posts.Len()
	bs.recorder.AddArtifacts(metrics.ArtifactPost, bs.Report.Posts)
	return nil
}

// expandTOC replaces the post's table-of-contents directives with the toc
// template. The expanded content is what listings and the feed see too.
func expandTOC(bs *BuildState, p *post.Post) error {
	if !markdown.HasTOC(p.Content) {
		return nil
	}
	content, err := markdown.ExpandTOC(p.Content, func(title string) (string, error) {
		return bs.Templates.Render(templates.TOC, templates.TOCData(p.Headings, title))
	})
	if err != nil {
		return err
	}
	p.Content = content
	return nil
}
