package highlight

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChroma_HighlightsKnownLanguage(t *testing.T) {
	h := NewChroma(DefaultStyle)

	out, err := h.Highlight("package main\n\nfunc main() {}\n", "go")
	require.NoError(t, err)
	assert.Contains(t, out, `<span class="`)
	assert.Contains(t, out, "func")
	assert.NotContains(t, out, "<pre")
}

func TestChroma_EscapesMarkup(t *testing.T) {
	h := NewChroma(DefaultStyle)

	out, err := h.Highlight(`if a < b && c > d {}`, "go")
	require.NoError(t, err)
	assert.NotContains(t, out, "a < b")
	assert.Contains(t, out, "&lt;")
}

func TestChroma_UnknownLanguage(t *testing.T) {
	h := NewChroma(DefaultStyle)

	_, err := h.Highlight("x", "definitely-not-a-language")
	require.ErrorIs(t, err, ErrUnknownLanguage)
}

func TestChroma_UnknownStyleFallsBack(t *testing.T) {
	h := NewChroma("no-such-style")
	var buf bytes.Buffer
	require.NoError(t, h.WriteCSS(&buf))
	assert.True(t, strings.Contains(buf.String(), "."))
}

func TestFunc(t *testing.T) {
	var h Highlighter = Func(func(code, lang string) (string, error) {
		return lang + ":" + code, nil
	})
	out, err := h.Highlight("x", "py")
	require.NoError(t, err)
	assert.Equal(t, "py:x", out)
}
