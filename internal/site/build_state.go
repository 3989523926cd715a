package site

import (
	"git.home.luguber.info/inful/postpress/internal/assets"
	"git.home.luguber.info/inful/postpress/internal/collection"
	"git.home.luguber.info/inful/postpress/internal/config"
	"git.home.luguber.info/inful/postpress/internal/highlight"
	"git.home.luguber.info/inful/postpress/internal/markdown"
	"git.home.luguber.info/inful/postpress/internal/metrics"
	"git.home.luguber.info/inful/postpress/internal/post"
	"git.home.luguber.info/inful/postpress/internal/templates"
	"git.home.luguber.info/inful/postpress/internal/texmath"
	"git.home.luguber.info/inful/postpress/internal/workspace"
)

// BuildState carries everything shared between the stages of one build.
// Stages run sequentially, so nothing here is locked.
type BuildState struct {
	Config  *config.Config
	Paths   Paths
	Staging *workspace.Staging
	Report  *BuildReport

	Assets    *assets.Registry
	Renderer  *markdown.Renderer
	Templates *templates.Set
	Posts     *post.Set
	Index     *collection.Index

	highlighter highlight.Highlighter
	math        texmath.Backend
	recorder    metrics.Recorder
}

// renderPage executes name with data and wraps the result in the page shell.
func (bs *BuildState) renderPage(title, name string, data map[string]any) ([]byte, error) {
	body, err := bs.Templates.Render(name, data)
	if err != nil {
		return nil, err
	}
	page, err := bs.Templates.Render(templates.Page, templates.PageData(title, body))
	if err != nil {
		return nil, err
	}
	return []byte(page), nil
}
