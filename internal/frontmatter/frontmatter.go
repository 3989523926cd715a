// Package frontmatter splits a post source into its `#!` metadata block, head
// excerpt and Markdown body.
package frontmatter

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	// Prefix marks a metadata line. It is mandatory in the legacy form and
	// optional (stripped when present) before a MetaEnd delimiter.
	Prefix = "#! "

	// MetaEnd is the line that explicitly closes the metadata block.
	MetaEnd = "#! meta end"

	// HeadEnd is the line that explicitly closes the head excerpt.
	HeadEnd = "#! head end"
)

// Parts is a post source split into its three sections.
type Parts struct {
	// Meta is the raw metadata block with line prefixes removed.
	Meta string
	// Head is the Markdown source of the head excerpt.
	Head string
	// Body is the Markdown source rendered as the full post. When no HeadEnd
	// delimiter is present the body still contains the head text.
	Body string
}

// Split separates metadata, head excerpt and body.
//
// The metadata block is either everything before a MetaEnd line (each line
// optionally carrying Prefix), or, when no MetaEnd line exists anywhere, the
// run of Prefix lines at the very start of the file. The head is the text
// before a HeadEnd line, otherwise the text up to the first blank line.
func Split(raw string) Parts {
	content := strings.ReplaceAll(raw, "\r\n", "\n") + "\n"

	var meta strings.Builder
	metaSplitter := "\n" + MetaEnd + "\n"
	if pos := strings.Index(content, metaSplitter); pos != -1 {
		lines := strings.Split(content[:pos], "\n")
		for i, line := range lines {
			lines[i] = strings.TrimPrefix(line, Prefix)
		}
		meta.WriteString(strings.Join(lines, "\n"))
		content = content[pos+len(metaSplitter):]
	} else {
		for strings.HasPrefix(content, Prefix) {
			lf := strings.IndexByte(content, '\n')
			meta.WriteString(content[len(Prefix):lf])
			meta.WriteByte('\n')
			content = content[lf+1:]
		}
	}

	var head string
	headSplitter := "\n" + HeadEnd + "\n"
	if pos := strings.Index(content, headSplitter); pos != -1 {
		head = content[:pos]
		content = content[pos+len(headSplitter):]
	} else if pos := strings.Index(content, "\n\n"); pos != -1 {
		head = content[:pos]
	} else {
		head = content
	}

	return Parts{
		Meta: meta.String(),
		Head: strings.TrimSuffix(head, "\n"),
		Body: strings.TrimSuffix(content, "\n"),
	}
}

// ParseYAML parses a raw metadata block into a map.
// An empty or null block yields an empty map, and so does a block that is
// valid YAML but not a mapping (a bare note line or a list). Only syntax
// errors are returned.
func ParseYAML(meta string) (map[string]any, error) {
	if strings.TrimSpace(meta) == "" {
		return map[string]any{}, nil
	}

	var doc any
	if err := yaml.Unmarshal([]byte(meta), &doc); err != nil {
		return nil, err
	}
	switch fields := doc.(type) {
	case map[string]any:
		return fields, nil
	case map[any]any:
		out := make(map[string]any, len(fields))
		for k, v := range fields {
			out[fmt.Sprint(k)] = v
		}
		return out, nil
	default:
		return map[string]any{}, nil
	}
}
