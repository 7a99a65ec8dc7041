package main

import (
	"bytes"
	"net/url"
	"strings"

	"golang.org/x/net/html"
)

// LinkOptions controls the rewriting of external links during a build.
type LinkOptions struct {
	NewTab bool   `toml:"new_tab"`
	Title  string `toml:"title"`
	Glyph  string `toml:"glyph"`
}

// Tabbify walks every anchor element under root and rewrites those pointing
// outside host so they open in a new browsing context: target="_blank",
// noopener appended to rel, a title hint and an optional glyph suffix inside
// the anchor text. Anchors that already carry a target are left alone, so
// authors can opt out per link and a repeated pass is a no-op. An empty host
// suppresses the pass entirely. Returns the number of anchors rewritten.
func Tabbify(root *html.Node, host string, opts LinkOptions) int {
	if host == "" {
		return 0
	}

	count := 0
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "a" && tabbifyAnchor(n, host, opts) {
			count++
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	return count
}

func tabbifyAnchor(n *html.Node, host string, opts LinkOptions) bool {
	href := getAttr(n, "href")
	if href == "" {
		return false
	}

	// relative, fragment-only, mailto: and unparseable hrefs all resolve to
	// the page itself and count as internal
	u, err := url.Parse(href)
	if err != nil || u.Host == "" || u.Host == host {
		return false
	}

	// a non-blank target means the author already decided
	if strings.TrimSpace(getAttr(n, "target")) != "" {
		return false
	}

	setAttr(n, "target", "_blank")

	if rel := getAttr(n, "rel"); !strings.Contains(" "+rel+" ", " noopener ") {
		setAttr(n, "rel", strings.TrimSpace(rel+" noopener"))
	}

	if opts.Title != "" && getAttr(n, "title") == "" {
		setAttr(n, "title", opts.Title)
	}

	if opts.Glyph != "" {
		n.AppendChild(&html.Node{Type: html.TextNode, Data: opts.Glyph})
	}

	return true
}

func getAttr(n *html.Node, key string) string {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return attr.Val
		}
	}
	return ""
}

func setAttr(n *html.Node, key string, val string) {
	for i := range n.Attr {
		if n.Attr[i].Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

// tabbifyHTML runs Tabbify over a rendered page. Pages without qualifying
// links are returned as-is so untouched output is byte-identical to the
// template result.
func (s *Site) tabbifyHTML(page []byte) ([]byte, int, error) {
	doc, err := html.Parse(bytes.NewReader(page))
	if err != nil {
		return nil, 0, err
	}

	n := Tabbify(doc, s.host, s.Links)
	if n == 0 {
		return page, 0, nil
	}

	var buf bytes.Buffer
	if err := html.Render(&buf, doc); err != nil {
		return nil, 0, err
	}

	return buf.Bytes(), n, nil
}
