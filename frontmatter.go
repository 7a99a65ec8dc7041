package main

import (
	"io"

	"github.com/adrg/frontmatter"
)

type matter struct {
	Title       string `toml:"title" yaml:"title"`
	Template    string `toml:"template" yaml:"template"`
	Description string `toml:"description" yaml:"description"`
}

// parseFrontMatter reads the front matter block from r, if any. Both TOML
// (+++) and Jekyll-style YAML (---) delimiters are accepted. The returned
// body is the content with the front matter stripped; files without front
// matter are returned whole.
func parseFrontMatter(r io.Reader) (matter, []byte, error) {
	var m matter
	body, err := frontmatter.Parse(r, &m)
	return m, body, err
}
