package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"
	"strings"
)

func main() {
	configFile := "config.toml"
	rootPath := ""

	// parse flags
	flag.StringVar(&configFile, "config", configFile, "")
	flag.StringVar(&configFile, "c", configFile, "")
	flag.StringVar(&rootPath, "root", rootPath, "")
	flag.StringVar(&rootPath, "r", rootPath, "")
	flag.Parse()

	command := os.Args[len(os.Args)-1]
	if command != "build" && command != "serve" && command != "new" {
		fmt.Printf(`Stanza - a fast & simple static blog generator

Usage: stanza [OPTIONS] <COMMAND>

Commands:
	build	Deletes the output directory if there is one and builds the site
	serve	Builds the site and starts an HTTP server on http://localhost:8080
	new     Creates a new site structure in the given directory

Options:
	-r, --root <ROOT> Directory to use as root of project (default: .)
	-c, --config <CONFIG> Path to configuration file (default: config.toml)
`)
		return
	}

	// ensure rootPath has a trailing slash
	if rootPath != "" && !strings.HasSuffix(rootPath, "/") {
		rootPath += "/"
	}

	if command == "new" {
		if err := createDirectoryStructure(rootPath); err != nil {
			log.Fatal("Error creating site structure: %s", err)
		}
		return
	}

	_ = os.RemoveAll("build/")
	buildSite(rootPath, configFile)

	if command == "serve" {
		// rebuild whenever content, templates or static files change
		go watchDirs([]string{rootPath + "content", rootPath + "templates", rootPath + "public"}, func() {
			buildSite(rootPath, configFile)
		})

		log.Info("Listening on http://localhost:8080\n")
		log.Fatal("%s", http.ListenAndServe("localhost:8080", http.FileServer(http.Dir("build/"))))
	}
}

func createDirectoryStructure(rootPath string) error {

	if err := os.Mkdir(rootPath+"content", 0755); err != nil {
		return err
	}
	if err := os.Mkdir(rootPath+"templates", 0755); err != nil {
		return err
	}
	if err := os.Mkdir(rootPath+"public", 0755); err != nil {
		return err
	}

	// create configuration file
	config := `url = "http://localhost:8080"
title = "My website"

[links]
new_tab = true
title = "Opens in a new tab"
glyph = "↗"
`
	if err := os.WriteFile(rootPath+"config.toml", []byte(config), 0655); err != nil {
		return err
	}

	// create default template
	if err := os.WriteFile(rootPath+"templates/default.html", []byte("<!DOCTYPE html>\n<html>\n<head>\n\t<title>{{ .Title }}</title>\n</head>\n<body>\n{{ .Content }}\n</body>\n</html>"), 0655); err != nil {
		return err
	}

	// create homepage
	if err := os.WriteFile(rootPath+"content/index.md", []byte("+++\ntitle = \"My website\"\n+++\n\nWelcome to my website.\n"), 0655); err != nil {
		return err
	}

	return nil
}
