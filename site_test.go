package main

import (
	"bytes"
	"os"
	"strings"
	"testing"
	"time"
)

func TestExampleSite(t *testing.T) {
	_ = os.RemoveAll("build/")
	buildSite("example/", "config.toml")

	tests := []struct {
		file     string
		contains [][]byte
		excludes [][]byte
	}{
		{file: "index.html", contains: [][]byte{
			[]byte("<title>My site</title>"),
			[]byte(`<a href="https://duckduckgo.com/" target="_blank" rel="noopener" title="Opens in a new tab">my favorite search engine↗</a>`)},
		},
		{file: "about/index.html",
			contains: [][]byte{
				[]byte("<title>About me</title>"),
				[]byte("<li>Dolor</li>"),
				[]byte(`<a href="/hello-world/">blog</a>`),
				[]byte(`target="profile"`)},
			excludes: [][]byte{
				[]byte(`target="_blank"`)},
		},
		{file: "hello-world/index.html", contains: [][]byte{
			[]byte("<title>Hello, world!</title>"),
			[]byte("This is a blog post.")},
		},
		{file: "favicon.ico"},
		{file: "feed.xml", contains: [][]byte{
			[]byte("<item><title>Hello, world!</title><link>http://localhost:8080/hello-world/</link><description>The first post on this blog.</description>"),
		}},
		{file: "sitemap.xml", contains: [][]byte{
			[]byte("<url><loc>http://localhost:8080/</loc>"),
		}},
		{file: "sitemap.xsl"},
	}

	for _, tc := range tests {
		content, err := os.ReadFile("build/" + tc.file)
		if err != nil {
			t.Errorf("Expected file, got error: %s", err)
		}

		for _, e := range tc.contains {
			if !bytes.Contains(content, e) {
				t.Errorf("Output file %s does not have expected content %s", tc.file, e)
			}
		}

		for _, e := range tc.excludes {
			if bytes.Contains(content, e) {
				t.Errorf("Output file %s has unexpected content %s", tc.file, e)
			}
		}
	}
}

func TestParseConfigFile(t *testing.T) {
	s := &Site{}
	if err := parseConfig(s, "example/config.toml"); err != nil {
		t.Errorf("error parsing config file: %s", err)
	}

	expectedSiteUrl := "http://localhost:8080/"
	expectedTitle := "My website"
	if s.SiteUrl != expectedSiteUrl {
		t.Errorf("invalid site url. expected %v, got %v", expectedSiteUrl, s.SiteUrl)
	}

	if s.Title != expectedTitle {
		t.Errorf("invalid site title. expected %v, got %v", expectedTitle, s.Title)
	}

	if s.host != "localhost:8080" {
		t.Errorf("invalid host. expected localhost:8080, got %v", s.host)
	}

	if !s.Links.NewTab || s.Links.Glyph != "↗" {
		t.Errorf("invalid link options: %+v", s.Links)
	}
}

func TestParseFrontMatter(t *testing.T) {
	tests := []struct {
		file          string
		expectedTitle string
	}{
		// TOML and Jekyll-style YAML delimiters
		{file: "example/content/index.md", expectedTitle: "My site"},
		{file: "example/content/2023-11-23-hello-world.md", expectedTitle: "Hello, world!"},
	}

	for _, tc := range tests {
		fh, err := os.Open(tc.file)
		if err != nil {
			t.Fatal(err)
		}

		m, body, err := parseFrontMatter(fh)
		fh.Close()
		if err != nil {
			t.Fatal(err)
		}

		if m.Title != tc.expectedTitle {
			t.Errorf("Invalid title. Expected %v, got %v", tc.expectedTitle, m.Title)
		}

		if bytes.Contains(body, []byte("+++")) || bytes.Contains(body, []byte("---")) {
			t.Errorf("Front matter of %s not stripped from body", tc.file)
		}
	}
}

func TestParseContent(t *testing.T) {
	p := &Page{
		Filepath: "example/content/index.md",
	}

	content, err := p.ParseContent()
	if err != nil {
		t.Fatal(err)
	}

	expected := `<p>Hey, welcome on my site! Check out <a href="https://duckduckgo.com/">my favorite search engine</a>.</p>` + "\n"
	if content != expected {
		t.Errorf("Invalid content. Got %v", content)
	}

	// link rewriting happens after templating, never during markdown rendering
	if strings.Contains(content, "_blank") {
		t.Errorf("Unexpected target attribute in rendered markdown")
	}
}

func TestParseFilename(t *testing.T) {
	tests := []struct {
		input                 string
		expectedUrlPath       string
		expectedDatePublished time.Time
	}{
		{input: "content/index.md", expectedUrlPath: "", expectedDatePublished: time.Time{}},
		{input: "content/about.md", expectedUrlPath: "about/", expectedDatePublished: time.Time{}},
		{input: "content/blog/index.md", expectedUrlPath: "blog/", expectedDatePublished: time.Time{}},
		{input: "content/projects/stanza.md", expectedUrlPath: "projects/stanza/", expectedDatePublished: time.Time{}},
		{input: "content/2023-11-23-hello-world.md", expectedUrlPath: "hello-world/", expectedDatePublished: time.Date(2023, 11, 23, 0, 0, 0, 0, time.UTC)},
		{input: "content/blog/2023-11-23-here-we-are.md", expectedUrlPath: "blog/here-we-are/", expectedDatePublished: time.Date(2023, 11, 23, 0, 0, 0, 0, time.UTC)},
	}

	for _, tc := range tests {
		urlPath, datePublished := parseFilename(tc.input, "")
		if urlPath != tc.expectedUrlPath {
			t.Errorf("expected %v, got %v", tc.expectedUrlPath, urlPath)
		}

		if !datePublished.Equal(tc.expectedDatePublished) {
			t.Errorf("expected %v, got %v", tc.expectedDatePublished, datePublished)
		}
	}
}

func BenchmarkParseFrontMatter(b *testing.B) {
	data := `+++
title = "My page title"
template = "default.html"
+++

Lorem ipsum dolor sit amet, consectetur adipiscing elit. Curabitur ac pretium magna. Phasellus ut ligula vel erat dictum sollicitudin eu a dolor. Donec orci mauris, cursus eget elementum eu, tempor sed massa. Aliquam mattis ullamcorper metus, sodales fermentum lectus fringilla id. Duis dui ligula, lobortis ut leo id, semper ultricies justo. Etiam vehicula sit amet ligula vitae maximus.
`

	for n := 0; n < b.N; n++ {
		if _, _, err := parseFrontMatter(strings.NewReader(data)); err != nil {
			b.Error(err)
		}
	}
}
