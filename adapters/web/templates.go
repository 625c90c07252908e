package web

import (
	"embed"
	"html/template"
)

//go:embed templates/*.html
var templateFS embed.FS

func ParseTemplates() (*template.Template, error) {
	return template.New("").ParseFS(templateFS, "templates/*.html")
}

type navLink struct {
	Path   string
	Label  string
	Active bool
}

type navData struct {
	Links []navLink
}

func newNav(currentPath string) navData {
	links := []navLink{
		{Path: "/", Label: "Home"},
		{Path: "/admin", Label: "Admin"},
	}
	for i := range links {
		links[i].Active = links[i].Path == currentPath
	}
	return navData{Links: links}
}
