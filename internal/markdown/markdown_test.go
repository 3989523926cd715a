package markdown

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/postpress/internal/assets"
	"git.home.luguber.info/inful/postpress/internal/highlight"
)

type resolverFunc func(ref string, kind assets.Kind) (string, error)

func (f resolverFunc) Resolve(ref string, kind assets.Kind) (string, error) { return f(ref, kind) }

func render(t *testing.T, r *Renderer, src string) Result {
	t.Helper()
	res, err := r.RenderString(src)
	require.NoError(t, err)
	return res
}

func TestRender_HeadingsCarryIDAndAnchor(t *testing.T) {
	res := render(t, New(Options{}), "# Hello World\n\ntext\n\n## Use `go test`\n")

	assert.Contains(t, res.HTML, `<h1 id="hello-world"><a name="Hello World"></a>Hello World</h1>`)
	assert.Contains(t, res.HTML, `<h2 id="use-go-test"><a name="Use go test"></a>Use <code>go test</code></h2>`)
	require.Len(t, res.Headings, 2)
	assert.Equal(t, Heading{Level: 1, Text: "Hello World", Slug: "hello-world"}, res.Headings[0])
	assert.Equal(t, 2, res.Headings[1].Level)
	assert.Equal(t, "use-go-test", res.Headings[1].Slug)
}

func TestRender_DuplicateHeadingsGetSuffix(t *testing.T) {
	res := render(t, New(Options{}), "## Intro\n\n## Intro\n\n## Intro\n")

	require.Len(t, res.Headings, 3)
	assert.Equal(t, "intro", res.Headings[0].Slug)
	assert.Equal(t, "intro-1", res.Headings[1].Slug)
	assert.Equal(t, "intro-2", res.Headings[2].Slug)
}

func TestRender_SlugsResetPerDocument(t *testing.T) {
	r := New(Options{})
	first := render(t, r, "# Same\n")
	second := render(t, r, "# Same\n")

	assert.Equal(t, "same", first.Headings[0].Slug)
	assert.Equal(t, "same", second.Headings[0].Slug)
}

func TestRender_Math(t *testing.T) {
	r := New(Options{})

	t.Run("display", func(t *testing.T) {
		res := render(t, r, "$$x^2$$\n")
		assert.Contains(t, res.HTML, `<p><div class="tex">\[x^2\]</div></p>`)
	})

	t.Run("inline", func(t *testing.T) {
		res := render(t, r, "a $x$ b\n")
		assert.Contains(t, res.HTML, `<p>a <span class="tex">\(x\)</span> b</p>`)
	})

	t.Run("entities are decoded before typesetting", func(t *testing.T) {
		res := render(t, r, "$a<b$\n")
		assert.Contains(t, res.HTML, `<span class="tex">\(a&lt;b\)</span>`)
	})

	t.Run("code spans are left alone", func(t *testing.T) {
		res := render(t, r, "`$x$`\n")
		assert.Contains(t, res.HTML, `<code>$x$</code>`)
		assert.NotContains(t, res.HTML, "tex")
	})

	t.Run("tight list item", func(t *testing.T) {
		res := render(t, r, "- $x$\n- y\n")
		assert.Contains(t, res.HTML, `<li><span class="tex">\(x\)</span></li>`)
	})

	t.Run("table cell", func(t *testing.T) {
		res := render(t, r, "| a |\n|---|\n| $x$ |\n")
		assert.Contains(t, res.HTML, `<td><span class="tex">\(x\)</span></td>`)
	})

	t.Run("headings are not typeset", func(t *testing.T) {
		res := render(t, r, "# Cost $5$\n")
		assert.NotContains(t, res.HTML, `class="tex"`)
	})
}

func TestRender_AssetRewrite(t *testing.T) {
	var calls []string
	resolver := resolverFunc(func(ref string, kind assets.Kind) (string, error) {
		calls = append(calls, kind.String()+":"+ref)
		return "/assets/" + kind.String() + "-resolved", nil
	})
	r := New(Options{Assets: resolver})

	res := render(t, r, "![alt](img/a.png) [doc](files/a.pdf) [ext](https://example.com) [top](#top)\n")

	assert.Contains(t, res.HTML, `<img src="/assets/image-resolved" alt="alt">`)
	assert.Contains(t, res.HTML, `<a href="/assets/file-resolved">doc</a>`)
	assert.Contains(t, res.HTML, `<a href="https://example.com">ext</a>`)
	assert.Contains(t, res.HTML, `<a href="#top">top</a>`)
	assert.Equal(t, []string{"image:img/a.png", "file:files/a.pdf"}, calls)
}

func TestRender_AssetErrorStopsRender(t *testing.T) {
	missing := errors.New("image not found")
	r := New(Options{Assets: resolverFunc(func(string, assets.Kind) (string, error) {
		return "", missing
	})})

	_, err := r.RenderString("![alt](nope.png)\n")
	require.ErrorIs(t, err, missing)
}

func TestRender_CodeBlocks(t *testing.T) {
	var langs []string
	hl := highlight.Func(func(code, lang string) (string, error) {
		langs = append(langs, lang)
		if lang == "nosuchlang" {
			return "", fmt.Errorf("%w: %s", highlight.ErrUnknownLanguage, lang)
		}
		return "HL(" + code + ")", nil
	})
	r := New(Options{Highlighter: hl})

	t.Run("highlighted", func(t *testing.T) {
		res := render(t, r, "```go\nx := 1\n```\n")
		assert.Contains(t, res.HTML, "<pre><code class=\"language-go\">HL(x := 1\n)</code></pre>")
	})

	t.Run("unknown language falls back to escaped text", func(t *testing.T) {
		res := render(t, r, "```nosuchlang\na < b\n```\n")
		assert.Contains(t, res.HTML, "<pre><code class=\"language-nosuchlang\">a &lt; b\n</code></pre>")
	})

	t.Run("plain and untagged blocks skip the highlighter", func(t *testing.T) {
		langs = nil
		res := render(t, r, "```plain\na < b\n```\n\n```\nc\n```\n")
		assert.Contains(t, res.HTML, "a &lt; b")
		assert.Contains(t, res.HTML, "<pre><code>c\n</code></pre>")
		assert.Empty(t, langs)
	})
}

func TestRender_RawHTMLPassesThrough(t *testing.T) {
	res := render(t, New(Options{}), "<div class=\"note\">hi</div>\n")
	assert.Contains(t, res.HTML, `<div class="note">hi</div>`)
}

func TestPlainText(t *testing.T) {
	cases := map[string]string{
		"Hello <em>World</em>":                   "Hello World",
		`Use <code title="a>b">x</code> &amp; y`: "Use x & y",
		"  <strong>&lt;tag&gt;</strong> ":        "<tag>",
		`<img src="a.png" alt="pic"> caption`:    "caption",
	}
	for in, want := range cases {
		assert.Equal(t, want, PlainText(in), in)
	}
}

func TestRender_HeadingWithAttributeContainingAngle(t *testing.T) {
	res := render(t, New(Options{}), "## Use <code title=\"a>b\">x</code>\n")

	require.Len(t, res.Headings, 1)
	assert.Equal(t, "use-x", res.Headings[0].Slug)
	assert.Contains(t, res.HTML, `<h2 id="use-x"><a name="Use x"></a>`)
}

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Hello, World!":               "hello-world",
		"<code>Foo</code> &amp; Bar":  "foo-bar",
		"!!!":                         "section",
		"中文 标题":                       "中文-标题",
		"  Trailing punctuation...  ": "trailing-punctuation",
		"Version 2.0 Release":         "version-2-0-release",
	}
	for in, want := range cases {
		assert.Equal(t, want, Slugify(in), in)
	}
}

func TestSlugger_SuffixesDoNotCollide(t *testing.T) {
	s := NewSlugger()
	assert.Equal(t, "a", s.Slug("a"))
	assert.Equal(t, "a-1", s.Slug("a"))
	assert.Equal(t, "a-1-1", s.Slug("a-1"))
	assert.Equal(t, "a-2", s.Slug("a"))
}

func TestExpandTOC(t *testing.T) {
	res := render(t, New(Options{}), "#! toc Contents\n\n# One\n")
	require.True(t, HasTOC(res.HTML))

	out, err := ExpandTOC(res.HTML, func(title string) (string, error) {
		return "[" + title + "]", nil
	})
	require.NoError(t, err)
	assert.Contains(t, out, "[Contents]")
	assert.NotContains(t, out, "#! toc")
	assert.Contains(t, out, `<h1 id="one">`)
}

func TestExpandTOC_PropagatesError(t *testing.T) {
	boom := errors.New("boom")
	_, err := ExpandTOC("<p>#! toc X</p>", func(string) (string, error) { return "", boom })
	require.ErrorIs(t, err, boom)
}
