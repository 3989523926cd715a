// Package texmath detects dollar-delimited TeX in rendered block text and
// replaces it with the output of a typesetting backend.
package texmath

import (
	"html"
	"regexp"
	"strings"
)

// Backend typesets one TeX fragment. display selects display (block) mode.
type Backend interface {
	Render(tex string, display bool) (string, error)
}

// BackendFunc adapts a function to Backend.
type BackendFunc func(tex string, display bool) (string, error)

func (f BackendFunc) Render(tex string, display bool) (string, error) { return f(tex, display) }

// Delimited leaves typesetting to the browser: the TeX is escaped and wrapped
// in \[ \] or \( \) so a client-side renderer (KaTeX auto-render, MathJax)
// can pick it up.
type Delimited struct{}

func (Delimited) Render(tex string, display bool) (string, error) {
	if display {
		return `\[` + html.EscapeString(tex) + `\]`, nil
	}
	return `\(` + html.EscapeString(tex) + `\)`, nil
}

var (
	displayPattern = regexp.MustCompile(`(?s)^\$\$(.*)\$\$$`)
	inlineProbe    = regexp.MustCompile(`\$.*\$`)
	// Code elements are matched first so dollars inside them are never taken as math.
	inlineSpan    = regexp.MustCompile(`(?s)<code[^>]*>.*?</code>|\$[^$]*\$`)
	entityPattern = regexp.MustCompile(`&(nbsp|amp|quot|lt|gt|#39);`)
)

var entities = map[string]string{
	"nbsp": " ",
	"amp":  "&",
	"quot": `"`,
	"lt":   "<",
	"gt":   ">",
	"#39":  "'",
}

// DecodeEntities turns the entities the Markdown renderer emits back into
// literal characters.
func DecodeEntities(s string) string {
	return entityPattern.ReplaceAllStringFunc(s, func(m string) string {
		return entities[m[1:len(m)-1]]
	})
}

// Prepare converts a matched fragment into backend input: entities decoded,
// dollar signs removed, and in display mode a backslash ending a line is
// doubled so the TeX line break survives the Markdown escape round-trip.
func Prepare(fragment string, display bool) string {
	tex := strings.ReplaceAll(DecodeEntities(fragment), "$", "")
	if display {
		tex = strings.ReplaceAll(tex, "\\\n", "\\\\\n")
	}
	return tex
}

// Transform rewrites the math in one rendered block.
//
// A block whose trimmed text is entirely $$...$$ becomes a single display
// render inside <div class="tex">. Otherwise each $...$ span is rendered
// inline inside <span class="tex">, skipping spans inside or overlapping a
// code element. Text without math is returned unchanged.
func Transform(text string, backend Backend) (string, error) {
	trimmed := strings.TrimSpace(text)
	if displayPattern.MatchString(trimmed) {
		out, err := backend.Render(Prepare(trimmed, true), true)
		if err != nil {
			return "", err
		}
		return `<div class="tex">` + out + `</div>`, nil
	}

	if !inlineProbe.MatchString(text) {
		return text, nil
	}

	var firstErr error
	out := inlineSpan.ReplaceAllStringFunc(text, func(m string) string {
		if firstErr != nil || !strings.HasPrefix(m, "$") {
			return m
		}
		if m == "$$" || strings.Contains(m, "<code") || strings.Contains(m, "</code>") {
			return m
		}
		rendered, err := backend.Render(Prepare(m, false), false)
		if err != nil {
			firstErr = err
			return m
		}
		return `<span class="tex">` + rendered + `</span>`
	})
	if firstErr != nil {
		return "", firstErr
	}
	return out, nil
}
