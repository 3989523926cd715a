package markdown

import (
	"errors"
	"html"
	"log/slog"
	"strings"

	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/util"

	"git.home.luguber.info/inful/postpress/internal/highlight"
	"git.home.luguber.info/inful/postpress/internal/logfields"
)

// plainLanguage marks a fenced block that must not be highlighted.
const plainLanguage = "plain"

// highlightCode renders fenced blocks with a language through the
// highlighter. Blocks without a language, or tagged plain, go to next.
func (r *Renderer) highlightCode(next renderer.NodeRendererFunc) renderer.NodeRendererFunc {
	return func(w util.BufWriter, source []byte, n gmast.Node, entering bool) (gmast.WalkStatus, error) {
		block, ok := n.(*gmast.FencedCodeBlock)
		if !ok || r.opts.Highlighter == nil {
			return next(w, source, n, entering)
		}
		lang := string(block.Language(source))
		if lang == "" || lang == plainLanguage {
			return next(w, source, n, entering)
		}
		if !entering {
			return gmast.WalkContinue, nil
		}

		code := codeText(block, source)
		out, err := r.opts.Highlighter.Highlight(code, lang)
		if err != nil {
			if !errors.Is(err, highlight.ErrUnknownLanguage) {
				return gmast.WalkStop, err
			}
			slog.Warn("No grammar for code block language, rendering as plain text", logfields.Language(lang))
			out = html.EscapeString(code)
		}

		_, _ = w.WriteString(`<pre><code class="language-` + html.EscapeString(lang) + `">`)
		_, _ = w.WriteString(out)
		_, _ = w.WriteString("</code></pre>\n")
		return gmast.WalkSkipChildren, nil
	}
}

func codeText(block *gmast.FencedCodeBlock, source []byte) string {
	var b strings.Builder
	lines := block.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		b.Write(seg.Value(source))
	}
	return b.String()
}
