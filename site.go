package main

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/BurntSushi/toml"
)

var templates *template.Template

type Site struct {
	pages []Page
	posts []Page

	Title   string      `toml:"title"`
	SiteUrl string      `toml:"url"`
	Links   LinkOptions `toml:"links"`
	RootDir string

	host      string
	rewritten atomic.Int64
}

type Page struct {
	Title         string
	Description   string
	Template      string
	DatePublished time.Time
	DateModified  time.Time
	Permalink     string
	UrlPath       string
	Filepath      string
}

// parseFilename parses the URL path and optional date component from the given file path
func parseFilename(path string, rootDir string) (string, time.Time) {
	path = strings.TrimPrefix(path, rootDir+"content/")
	path = strings.TrimSuffix(path, ".md")
	path = strings.TrimSuffix(path, ".html")
	path = strings.TrimSuffix(path, "index")

	filename := filepath.Base(path)
	if len(filename) > 11 && filename[4] == '-' && filename[7] == '-' && filename[10] == '-' {
		date, err := time.Parse("2006-01-02", filename[0:10])
		if err == nil {
			return path[0:len(path)-len(filename)] + filename[11:] + "/", date
		}
	}

	if path != "" && path[len(path)-1] != '/' {
		path += "/"
	}

	return path, time.Time{}
}

func (p *Page) ParseContent() (string, error) {
	fh, err := os.Open(p.Filepath)
	if err != nil {
		return "", err
	}
	defer fh.Close()

	_, body, err := parseFrontMatter(fh)
	if err != nil {
		return "", fmt.Errorf("invalid front matter in %s: %w", p.Filepath, err)
	}

	// If source file has HTML extension, return content directly
	if strings.HasSuffix(p.Filepath, ".html") {
		return string(body), nil
	}

	// Otherwise, parse as Markdown
	var buf strings.Builder
	if err := md.Convert(body, &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func (s *Site) buildPage(p *Page) error {
	content, err := p.ParseContent()
	if err != nil {
		return err
	}

	tmpl := templates.Lookup(p.Template)
	if tmpl == nil {
		return fmt.Errorf("invalid template name: %s", p.Template)
	}

	var buf bytes.Buffer
	err = tmpl.Execute(&buf, map[string]any{
		"Page":    p,
		"Posts":   s.posts,
		"Pages":   s.pages,
		"SiteUrl": s.SiteUrl,
		"Title":   p.Title,
		"Content": template.HTML(content),
	})
	if err != nil {
		return err
	}

	out := buf.Bytes()
	if s.Links.NewTab {
		var n int
		out, n, err = s.tabbifyHTML(out)
		if err != nil {
			return err
		}
		s.rewritten.Add(int64(n))
	}

	dest := "build/" + p.UrlPath + "index.html"
	if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return err
	}

	return os.WriteFile(dest, out, 0655)
}

func (s *Site) AddPageFromFile(file string) error {
	info, err := os.Stat(file)
	if err != nil {
		return err
	}

	urlPath, datePublished := parseFilename(file, s.RootDir)

	p := Page{
		Filepath:      file,
		UrlPath:       urlPath,
		Permalink:     s.SiteUrl + urlPath,
		DatePublished: datePublished,
		DateModified:  info.ModTime(),
		Template:      "default.html",
	}

	fh, err := os.Open(file)
	if err != nil {
		return err
	}
	m, _, err := parseFrontMatter(fh)
	fh.Close()
	if err != nil {
		return fmt.Errorf("invalid front matter in %s: %w", file, err)
	}

	if m.Title != "" {
		p.Title = m.Title
	}
	if m.Template != "" {
		p.Template = m.Template
	}
	p.Description = m.Description

	s.pages = append(s.pages, p)

	// every page with a date is assumed to be a blog post
	if !p.DatePublished.IsZero() {
		s.posts = append(s.posts, p)
	}

	return nil
}

func (s *Site) readContent(dir string) error {
	defer measure("readContent")()

	// walk over files in "content" directory
	err := filepath.WalkDir(dir, func(file string, d fs.DirEntry, err error) error {
		if d.IsDir() {
			return nil
		}
		return s.AddPageFromFile(file)
	})

	// sort posts by date
	sort.Slice(s.posts, func(i int, j int) bool {
		return s.posts[i].DatePublished.After(s.posts[j].DatePublished)
	})

	return err
}

// func to calculate and print execution time
func measure(name string) func() {
	start := time.Now()
	return func() {
		log.Info("%s execution time: %v\n", name, time.Since(start))
	}
}

func parseConfig(s *Site, file string) error {
	// external link rewriting is on unless the config says otherwise
	s.Links = LinkOptions{
		NewTab: true,
		Title:  "Opens in a new tab",
		Glyph:  "↗",
	}

	_, err := toml.DecodeFile(file, s)
	if err != nil {
		return err
	}

	// ensure site url has trailing slash
	if !strings.HasSuffix(s.SiteUrl, "/") {
		s.SiteUrl += "/"
	}

	// the host is the baseline for classifying links as external
	if u, err := url.Parse(s.SiteUrl); err == nil {
		s.host = u.Host
	}

	return nil
}

func buildSite(rootPath string, configFile string) {
	var err error
	timeStart := time.Now()

	templates, err = template.ParseFS(os.DirFS(rootPath+"templates/"), "*.html")
	if err != nil {
		log.Fatal("Error reading templates/ directory: %s", err)
	}

	site := &Site{
		RootDir: rootPath,
	}

	if err := parseConfig(site, rootPath+configFile); err != nil {
		log.Fatal("Error reading configuration file at %s: %s\n", rootPath+configFile, err)
	}

	// read content
	if err := site.readContent(rootPath + "content/"); err != nil {
		log.Fatal("Error reading content/: %s", err)
	}

	var wg sync.WaitGroup

	// build each individual page
	wg.Add(len(site.pages))
	for _, p := range site.pages {
		go func(p Page) {
			defer wg.Done()

			if err := site.buildPage(&p); err != nil {
				log.Warn("Error processing %s: %s\n", p.Filepath, err)
			}
		}(p)
	}
	wg.Wait()

	// create XML sitemap
	if err := site.createSitemap(); err != nil {
		log.Warn("Error creating sitemap: %s\n", err)
	}

	// create RSS feed
	if err := site.createRSSFeed(); err != nil {
		log.Warn("Error creating RSS feed: %s\n", err)
	}

	// static files
	if err := copyDirRecursively(rootPath+"public/", "build/"); err != nil {
		log.Fatal("Error copying public/ directory: %s", err)
	}

	if n := site.rewritten.Load(); n > 0 {
		log.Info("Marked %d external links to open in a new tab\n", n)
	}
	log.Info("Built site containing %d pages in %d ms\n", len(site.pages), time.Since(timeStart).Milliseconds())
}
