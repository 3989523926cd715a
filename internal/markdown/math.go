package markdown

import (
	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/util"

	"git.home.luguber.info/inful/postpress/internal/texmath"
)

// mathBlock renders the block's inline content first, rewrites any TeX in
// the resulting HTML, and writes it between the open and close tags emitted
// by next.
func (r *Renderer) mathBlock(next renderer.NodeRendererFunc) renderer.NodeRendererFunc {
	return func(w util.BufWriter, source []byte, n gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return next(w, source, n, false)
		}
		if _, err := next(w, source, n, true); err != nil {
			return gmast.WalkStop, err
		}

		inner, err := r.renderChildren(source, n)
		if err != nil {
			return gmast.WalkStop, err
		}
		out, err := texmath.Transform(inner, r.opts.Math)
		if err != nil {
			return gmast.WalkStop, err
		}
		_, _ = w.WriteString(out)
		return gmast.WalkSkipChildren, nil
	}
}
