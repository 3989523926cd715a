package markdown

import (
	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/util"

	"git.home.luguber.info/inful/postpress/internal/assets"
)

// rewriteAsset points relative image and link destinations at their
// content-addressed copies before next renders the element.
func (r *Renderer) rewriteAsset(kind assets.Kind) Middleware {
	return func(next renderer.NodeRendererFunc) renderer.NodeRendererFunc {
		return func(w util.BufWriter, source []byte, n gmast.Node, entering bool) (gmast.WalkStatus, error) {
			if entering && r.opts.Assets != nil {
				if err := r.rewriteDestination(n, kind); err != nil {
					return gmast.WalkStop, err
				}
			}
			return next(w, source, n, entering)
		}
	}
}

func (r *Renderer) rewriteDestination(n gmast.Node, kind assets.Kind) error {
	var dest *[]byte
	switch node := n.(type) {
	case *gmast.Link:
		dest = &node.Destination
	case *gmast.Image:
		dest = &node.Destination
	default:
		return nil
	}

	ref := string(*dest)
	if !assets.IsRelative(ref) {
		return nil
	}
	href, err := r.opts.Assets.Resolve(ref, kind)
	if err != nil {
		return err
	}
	*dest = []byte(href)
	return nil
}
