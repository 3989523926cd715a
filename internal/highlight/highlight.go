// Package highlight provides the syntax highlighting capability used for
// fenced code blocks.
package highlight

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// ErrUnknownLanguage is returned when no grammar exists for a language name.
var ErrUnknownLanguage = errors.New("unknown language")

// Highlighter marks up code written in lang. The result is inserted between
// <pre><code> tags, so it must already be HTML-escaped.
type Highlighter interface {
	Highlight(code, lang string) (string, error)
}

// Func adapts a function to Highlighter.
type Func func(code, lang string) (string, error)

func (f Func) Highlight(code, lang string) (string, error) { return f(code, lang) }

// DefaultStyle is the chroma style used for generated CSS.
const DefaultStyle = "github"

// Chroma highlights with chroma lexers and emits class-based spans.
type Chroma struct {
	style     *chroma.Style
	formatter *chromahtml.Formatter
}

// NewChroma creates a highlighter; style only affects CSS.
func NewChroma(style string) *Chroma {
	s := styles.Get(style)
	if s == nil {
		s = styles.Fallback
	}
	return &Chroma{
		style: s,
		formatter: chromahtml.New(
			chromahtml.WithClasses(true),
			chromahtml.PreventSurroundingPre(true),
		),
	}
}

// Highlight implements Highlighter.
func (c *Chroma) Highlight(code, lang string) (string, error) {
	lexer := lexers.Get(lang)
	if lexer == nil {
		return "", fmt.Errorf("%w: %s", ErrUnknownLanguage, lang)
	}
	it, err := chroma.Coalesce(lexer).Tokenise(nil, code)
	if err != nil {
		return "", fmt.Errorf("tokenise %s: %w", lang, err)
	}
	var b strings.Builder
	if err := c.formatter.Format(&b, c.style, it); err != nil {
		return "", fmt.Errorf("format %s: %w", lang, err)
	}
	return b.String(), nil
}

// WriteCSS writes the stylesheet matching the emitted classes.
func (c *Chroma) WriteCSS(w io.Writer) error {
	return c.formatter.WriteCSS(w, c.style)
}
