package markdown

import gmast "github.com/yuin/goldmark/ast"

const stateKey = "postpress.render"

// renderState is the per-document scratch space shared by the render
// functions of a single Render call.
type renderState struct {
	slugger  *Slugger
	headings []Heading
}

func newRenderState() *renderState {
	return &renderState{slugger: NewSlugger()}
}

// stateOf finds the state attached to the document that owns n. Nodes
// rendered outside Render get a fresh throwaway state.
func stateOf(n gmast.Node) *renderState {
	for p := n; p != nil; p = p.Parent() {
		doc, ok := p.(*gmast.Document)
		if !ok {
			continue
		}
		if st, ok := doc.Meta()[stateKey].(*renderState); ok {
			return st
		}
		break
	}
	return newRenderState()
}
