package site

import (
	"log/slog"

	"git.home.luguber.info/inful/postpress/internal/assets"
	"git.home.luguber.info/inful/postpress/internal/collection"
	"git.home.luguber.info/inful/postpress/internal/logfields"
	"git.home.luguber.info/inful/postpress/internal/markdown"
	"git.home.luguber.info/inful/postpress/internal/post"
	"git.home.luguber.info/inful/postpress/internal/templates"
)

// stageLoad renders every post and loads the templates. All content errors
// surface here, before any output is written.
func stageLoad(bs *BuildState) error {
	bs.Assets = assets.NewRegistry(bs.Paths.Assets)
	bs.Renderer = markdown.New(markdown.Options{
		Assets:      bs.Assets,
		Math:        bs.math,
		Highlighter: bs.highlighter,
	})

	posts, err := post.NewLoader(bs.Paths.Posts, bs.Renderer).Load()
	if err != nil {
		return err
	}
	bs.Posts = posts
	bs.Index = collection.BuildIndex(posts.All())

	tpls, err := templates.Load(bs.Paths.Templates)
	if err != nil {
		return err
	}
	bs.Templates = tpls

	slog.Info("Loaded posts",
		logfields.Count(posts.Len()),
		slog.Int("tags", len(bs.Index.TagKeys())-1),
		slog.Int("months", len(bs.Index.MonthKeys())),
		slog.Int("assets", bs.Assets.Len()))
	return nil
}
