package site

import "path/filepath"

// Paths is the directory layout of a site root.
type Paths struct {
	Root      string
	Source    string
	Posts     string
	Assets    string
	Templates string
	Config    string
	Output    string
}

// NewPaths derives the layout below root: source/ holds the input and
// release/ receives the output.
func NewPaths(root string) Paths {
	source := filepath.Join(root, "source")
	return Paths{
		Root:      root,
		Source:    source,
		Posts:     filepath.Join(source, "posts"),
		Assets:    filepath.Join(source, "assets"),
		Templates: filepath.Join(source, "templates"),
		Config:    filepath.Join(source, "config.yml"),
		Output:    filepath.Join(root, "release"),
	}
}
