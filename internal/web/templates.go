package web

import (
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"path/filepath"
	"strings"

	"spotify-insights/internal/models"
)

// Templates manages HTML template rendering for the two legacy pages.
type Templates struct {
	templates map[string]*template.Template
	funcs     template.FuncMap
}

// NewTemplates creates a new template manager by loading templates from the given filesystem.
func NewTemplates(templatesFS fs.FS) (*Templates, error) {
	t := &Templates{
		templates: make(map[string]*template.Template),
		funcs:     defaultFuncs(),
	}

	if err := t.load(templatesFS); err != nil {
		return nil, err
	}

	return t, nil
}

// Render renders a page template with the given data.
func (t *Templates) Render(w io.Writer, page string, data any) error {
	tmpl, ok := t.templates[page]
	if !ok {
		return fmt.Errorf("template %q not found", page)
	}

	// Execute the "base" layout, which pulls in the page content
	return tmpl.ExecuteTemplate(w, "base", data)
}

// load parses each page template together with the shared layouts.
func (t *Templates) load(templatesFS fs.FS) error {
	layouts, err := fs.Glob(templatesFS, "layouts/*.html")
	if err != nil {
		return fmt.Errorf("finding layouts: %w", err)
	}

	pages, err := fs.Glob(templatesFS, "pages/*.html")
	if err != nil {
		return fmt.Errorf("finding pages: %w", err)
	}

	for _, page := range pages {
		name := filepath.Base(page)
		name = name[:len(name)-len(".html")]

		files := append([]string{page}, layouts...)

		tmpl, err := template.New(name).Funcs(t.funcs).ParseFS(templatesFS, files...)
		if err != nil {
			return fmt.Errorf("parsing template %s: %w", name, err)
		}

		t.templates[name] = tmpl
	}

	return nil
}

// defaultFuncs returns the default template functions.
func defaultFuncs() template.FuncMap {
	return template.FuncMap{
		// formatDuration renders a track length in ms as "m:ss"
		"formatDuration": func(ms int) string {
			seconds := ms / 1000
			return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
		},

		// artistNames joins the name field of artist references
		"artistNames": func(artists []map[string]any) string {
			names := make([]string, 0, len(artists))
			for _, artist := range artists {
				if name, ok := artist["name"].(string); ok {
					names = append(names, name)
				}
			}
			return strings.Join(names, ", ")
		},

		// imageURL returns the first (largest) image URL, or ""
		"imageURL": func(images []models.Image) string {
			if len(images) == 0 {
				return ""
			}
			return images[0].URL
		},

		// join joins strings (for genre lists)
		"join": func(items []string, sep string) string {
			return strings.Join(items, sep)
		},

		// add adds two integers (for 1-based indexing in loops)
		"add": func(a, b int) int {
			return a + b
		},
	}
}

// PageData contains common data passed to all page templates.
type PageData struct {
	Title       string
	CurrentPath string
}

// HomePageData contains data for the home page template.
type HomePageData struct {
	PageData
	Authenticated bool
}

// ProfilePageData contains data for the profile page template. Error is
// rendered in-page instead of replacing the response with JSON.
type ProfilePageData struct {
	PageData
	Error      string
	Profile    *models.User
	TopArtists []*models.Artist
	TopTracks  []*models.Song
}
