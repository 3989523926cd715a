package markdown

import (
	"fmt"
	"html"
	"strconv"
	"strings"
	"unicode"

	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/util"
	nethtml "golang.org/x/net/html"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Heading is one heading seen while rendering a document, in document order.
type Heading struct {
	Level int    `json:"level"`
	Text  string `json:"text"`
	Slug  string `json:"slug"`
}

// PlainText returns the text content of rendered HTML with tags dropped and
// entities decoded. Leading and trailing space is trimmed.
func PlainText(renderedHTML string) string {
	z := nethtml.NewTokenizer(strings.NewReader(renderedHTML))
	var b strings.Builder
	for {
		switch z.Next() {
		case nethtml.ErrorToken:
			return strings.TrimSpace(b.String())
		case nethtml.TextToken:
			b.Write(z.Text())
		}
	}
}

// Slugify turns rendered heading text into an anchor id: lowercase, runs of
// anything but letters and digits collapsed to a single '-'.
func Slugify(renderedHTML string) string {
	plain := cases.Lower(language.Und).String(PlainText(renderedHTML))

	var b strings.Builder
	pendingDash := false
	for _, r := range plain {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if pendingDash && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingDash = false
			b.WriteRune(r)
			continue
		}
		pendingDash = true
	}
	if b.Len() == 0 {
		return "section"
	}
	return b.String()
}

// Slugger hands out unique slugs within one document. Repeats get -1, -2, ...
type Slugger struct {
	seen map[string]int
}

func NewSlugger() *Slugger {
	return &Slugger{seen: make(map[string]int)}
}

// Slug returns a slug for renderedHTML that has not been returned before by
// this Slugger.
func (s *Slugger) Slug(renderedHTML string) string {
	base := Slugify(renderedHTML)
	slug := base
	if _, dup := s.seen[base]; dup {
		n := s.seen[base]
		for {
			n++
			slug = base + "-" + strconv.Itoa(n)
			if _, taken := s.seen[slug]; !taken {
				break
			}
		}
		s.seen[base] = n
	}
	s.seen[slug] = 0
	return slug
}

// captureHeading replaces the default heading output with an id'd heading
// carrying a named anchor, and records the heading for the document.
func (r *Renderer) captureHeading(_ renderer.NodeRendererFunc) renderer.NodeRendererFunc {
	return func(w util.BufWriter, source []byte, n gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}
		h, ok := n.(*gmast.Heading)
		if !ok {
			return gmast.WalkContinue, nil
		}

		inner, err := r.renderChildren(source, n)
		if err != nil {
			return gmast.WalkStop, err
		}
		st := stateOf(n)
		slug := st.slugger.Slug(inner)
		st.headings = append(st.headings, Heading{Level: h.Level, Text: inner, Slug: slug})

		_, _ = fmt.Fprintf(w, "<h%d id=\"%s\"><a name=\"%s\"></a>%s</h%d>\n",
			h.Level, html.EscapeString(slug), html.EscapeString(PlainText(inner)), inner, h.Level)
		return gmast.WalkSkipChildren, nil
	}
}
