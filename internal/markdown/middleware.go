package markdown

import (
	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	extast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/renderer"
	gmhtml "github.com/yuin/goldmark/renderer/html"

	"git.home.luguber.info/inful/postpress/internal/assets"
)

// Middleware decorates a node render function. Extensions never replace
// goldmark's renderers in place; they wrap the default function for a node
// kind and decide whether to delegate to it.
type Middleware func(next renderer.NodeRendererFunc) renderer.NodeRendererFunc

// chain applies mws around base; the first middleware is the outermost.
func chain(base renderer.NodeRendererFunc, mws ...Middleware) renderer.NodeRendererFunc {
	h := base
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return h
}

// funcRegistry captures the render functions a NodeRenderer registers.
type funcRegistry map[gmast.NodeKind]renderer.NodeRendererFunc

func (f funcRegistry) Register(kind gmast.NodeKind, fn renderer.NodeRendererFunc) {
	f[kind] = fn
}

// defaultFuncs returns goldmark's own HTML render functions, used as the
// innermost handler of every chain.
func defaultFuncs() funcRegistry {
	reg := funcRegistry{}
	gmhtml.NewRenderer(gmhtml.WithUnsafe()).RegisterFuncs(reg)
	extension.NewTableHTMLRenderer().RegisterFuncs(reg)
	return reg
}

// extensionRenderer registers the composed chains. The order is fixed:
//
//	paragraph, list item text, table cell: math -> default
//	image:                                 asset(image) -> default
//	link:                                  asset(file) -> default
//	heading:                               capture (replaces default)
//	fenced code:                           highlight -> default (plain only)
type extensionRenderer struct {
	r *Renderer
}

func (e *extensionRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	r := e.r
	for _, kind := range []gmast.NodeKind{gmast.KindParagraph, gmast.KindTextBlock, extast.KindTableCell} {
		reg.Register(kind, chain(r.base[kind], r.mathBlock))
	}
	reg.Register(gmast.KindImage, chain(r.base[gmast.KindImage], r.rewriteAsset(assets.KindImage)))
	reg.Register(gmast.KindLink, chain(r.base[gmast.KindLink], r.rewriteAsset(assets.KindFile)))
	reg.Register(gmast.KindHeading, chain(r.base[gmast.KindHeading], r.captureHeading))
	reg.Register(gmast.KindFencedCodeBlock, chain(r.base[gmast.KindFencedCodeBlock], r.highlightCode))
}
