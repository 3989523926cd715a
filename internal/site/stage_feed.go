package site

import (
	berrors "git.home.luguber.info/inful/postpress/internal/errors"
	"git.home.luguber.info/inful/postpress/internal/metrics"
	"git.home.luguber.info/inful/postpress/internal/templates"
)

// FeedPath is where the syndication feed is written.
const FeedPath = "/feed.xml"

// stageFeed writes the feed with every post in load order. The feed is not
// wrapped in the page shell.
func stageFeed(bs *BuildState) error {
	feed, err := bs.Templates.Render(templates.Feed, templates.FeedData(bs.Posts.All()))
	if err != nil {
		return err
	}
	if _, err := bs.Staging.WriteFile(FeedPath, []byte(feed)); err != nil {
		return berrors.FileSystemError("write feed", err).WithContext("ref", FeedPath)
	}
	bs.Report.Feeds = 1
	bs.recorder.AddArtifacts(metrics.ArtifactFeed, 1)
	return nil
}
