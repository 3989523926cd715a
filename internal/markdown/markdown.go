// Package markdown renders post Markdown to HTML with goldmark, extended with
// TeX math, content-addressed asset links, heading capture and syntax
// highlighting.
package markdown

import (
	"bytes"

	"github.com/yuin/goldmark"
	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer"
	gmhtml "github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"

	"git.home.luguber.info/inful/postpress/internal/assets"
	"git.home.luguber.info/inful/postpress/internal/highlight"
	"git.home.luguber.info/inful/postpress/internal/texmath"
)

// AssetResolver maps a relative image or file reference to its published path.
type AssetResolver interface {
	Resolve(ref string, kind assets.Kind) (string, error)
}

// Options wires the collaborators of a Renderer. Nil fields disable the
// corresponding extension, except Math which defaults to texmath.Delimited.
type Options struct {
	Assets      AssetResolver
	Math        texmath.Backend
	Highlighter highlight.Highlighter
}

// Result is the output of one render call.
type Result struct {
	HTML     string
	Headings []Heading
}

// Renderer converts Markdown documents to HTML. One Renderer is shared by all
// documents of a build; per-document state is created for each Render call.
// It is not safe for concurrent use.
type Renderer struct {
	md   goldmark.Markdown
	opts Options
	base funcRegistry
}

// New creates a Renderer.
func New(opts Options) *Renderer {
	if opts.Math == nil {
		opts.Math = texmath.Delimited{}
	}
	r := &Renderer{
		opts: opts,
		base: defaultFuncs(),
	}
	r.md = goldmark.New(
		goldmark.WithExtensions(extension.Table),
		goldmark.WithRendererOptions(
			gmhtml.WithUnsafe(),
			renderer.WithNodeRenderers(util.Prioritized(&extensionRenderer{r: r}, 100)),
		),
	)
	return r
}

// Render converts src to HTML and collects its headings.
func (r *Renderer) Render(src []byte) (Result, error) {
	root := r.md.Parser().Parse(text.NewReader(src))
	st := newRenderState()
	if doc, ok := root.(*gmast.Document); ok {
		doc.AddMeta(stateKey, st)
	}

	var buf bytes.Buffer
	if err := r.md.Renderer().Render(&buf, src, root); err != nil {
		return Result{}, err
	}
	return Result{HTML: buf.String(), Headings: st.headings}, nil
}

// RenderString is Render for string input.
func (r *Renderer) RenderString(src string) (Result, error) {
	return r.Render([]byte(src))
}

// renderChildren renders the children of n with the full renderer and
// returns the resulting HTML.
func (r *Renderer) renderChildren(source []byte, n gmast.Node) (string, error) {
	var buf bytes.Buffer
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if err := r.md.Renderer().Render(&buf, source, c); err != nil {
			return "", err
		}
	}
	return buf.String(), nil
}
