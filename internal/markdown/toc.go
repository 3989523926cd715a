package markdown

import "regexp"

// tocDirective matches a paragraph consisting of "#! toc NAME". The capture
// is the title passed to the table of contents template.
var tocDirective = regexp.MustCompile(`<p>#! toc (.*)</p>`)

// ExpandTOC replaces every table-of-contents directive paragraph in rendered
// HTML with the output of render for the directive's title.
func ExpandTOC(renderedHTML string, render func(title string) (string, error)) (string, error) {
	var firstErr error
	out := tocDirective.ReplaceAllStringFunc(renderedHTML, func(match string) string {
		if firstErr != nil {
			return match
		}
		title := tocDirective.FindStringSubmatch(match)[1]
		html, err := render(title)
		if err != nil {
			firstErr = err
			return match
		}
		return html
	})
	if firstErr != nil {
		return "", firstErr
	}
	return out, nil
}

// HasTOC reports whether renderedHTML contains a table-of-contents directive.
func HasTOC(renderedHTML string) bool {
	return tocDirective.MatchString(renderedHTML)
}
