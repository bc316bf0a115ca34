// Package site renders the portfolio pages and exports them as a static site.
package site

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"strings"
	"time"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"cmhac.dev/internal/config"
	"cmhac.dev/internal/content"
	"cmhac.dev/internal/filter"
	"cmhac.dev/internal/models"
)

//go:embed templates/*.html
var templateFS embed.FS

// Navigation paths a page can mark as active
const (
	NavHome     = "/"
	NavProjects = "/projects"
	NavAbout    = "/about"
)

var pageNames = []string{"home", "projects", "project", "about", "notfound"}

// Renderer turns loaded content into HTML pages
type Renderer struct {
	site  config.Site
	pages map[string]*template.Template
	md    goldmark.Markdown
	now   func() time.Time
}

// NewRenderer parses the page templates
func NewRenderer(site config.Site) (*Renderer, error) {
	r := &Renderer{
		site:  site,
		pages: make(map[string]*template.Template, len(pageNames)),
		md:    goldmark.New(goldmark.WithExtensions(extension.GFM)),
		now:   time.Now,
	}

	funcs := template.FuncMap{
		"link":    r.link,
		"image":   r.image,
		"date":    formatDate,
		"section": section,
	}
	for _, name := range pageNames {
		tmpl, err := template.New(name).Funcs(funcs).ParseFS(templateFS, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s template: %w", name, err)
		}
		r.pages[name] = tmpl
	}
	return r, nil
}

// Chrome is the data every page template sees
type Chrome struct {
	Site        config.Site
	Active      string
	Title       string
	Description string
	Year        int
}

// HomeView is the data of the home page
type HomeView struct {
	Chrome
	Home models.HomePage
	Bio  template.HTML
}

// ProjectsView is the data of the project listing
type ProjectsView struct {
	Chrome
	Projects   []models.Project
	Vocabulary []models.TagCount
	Selection  filter.Selection
	Index      models.ProjectList
}

// ProjectView is the data of a single project page
type ProjectView struct {
	Chrome
	Project models.Project
	Body    template.HTML
}

// AboutView is the data of the about page
type AboutView struct {
	Chrome
	Heading string
	Body    template.HTML
}

// NotFoundView is the data of the not-found page
type NotFoundView struct {
	Chrome
	Path string
}

func (r *Renderer) chrome(active, title, description string) Chrome {
	return Chrome{
		Site:        r.site,
		Active:      active,
		Title:       title,
		Description: description,
		Year:        r.now().Year(),
	}
}

// Home renders the home page. The bio is the body of the about page.
func (r *Renderer) Home(w io.Writer, home models.HomePage, about content.Page) error {
	bio, err := r.markdown(about.Body)
	if err != nil {
		return err
	}
	return r.execute(w, "home", HomeView{
		Chrome: r.chrome(NavHome, "", r.site.Tagline),
		Home:   home,
		Bio:    bio,
	})
}

// Projects renders the listing. all is the full project set backing the
// client-side filter; visible is what the page shows before any script runs.
func (r *Renderer) Projects(w io.Writer, all, visible []models.Project, sel filter.Selection) error {
	vocab := filter.Vocabulary(all)
	return r.execute(w, "projects", ProjectsView{
		Chrome:     r.chrome(NavProjects, "projects", ""),
		Projects:   visible,
		Vocabulary: vocab,
		Selection:  sel,
		Index:      index(all, vocab),
	})
}

// Project renders one project page
func (r *Renderer) Project(w io.Writer, p models.Project) error {
	body, err := r.markdown(p.Content)
	if err != nil {
		return err
	}
	return r.execute(w, "project", ProjectView{
		Chrome:  r.chrome(NavProjects, p.Title, p.Description),
		Project: p,
		Body:    body,
	})
}

// About renders the about page
func (r *Renderer) About(w io.Writer, about content.Page) error {
	body, err := r.markdown(about.Body)
	if err != nil {
		return err
	}
	return r.execute(w, "about", AboutView{
		Chrome:  r.chrome(NavAbout, "about", ""),
		Heading: about.Title,
		Body:    body,
	})
}

// NotFound renders the not-found page for path
func (r *Renderer) NotFound(w io.Writer, path string) error {
	return r.execute(w, "notfound", NotFoundView{
		Chrome: r.chrome("", "not found", ""),
		Path:   path,
	})
}

func (r *Renderer) execute(w io.Writer, name string, data any) error {
	// render into a buffer so a failing template never leaves half a page
	var buf bytes.Buffer
	if err := r.pages[name].ExecuteTemplate(&buf, "layout", data); err != nil {
		return fmt.Errorf("failed to render %s: %w", name, err)
	}
	_, err := buf.WriteTo(w)
	return err
}

func (r *Renderer) markdown(src string) (template.HTML, error) {
	if strings.TrimSpace(src) == "" {
		return "", nil
	}
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(src), &buf); err != nil {
		return "", fmt.Errorf("failed to render markdown: %w", err)
	}
	return template.HTML(buf.String()), nil
}

// link prefixes a site-relative path with the base URL
func (r *Renderer) link(path string) string {
	return r.site.BaseURL + strings.TrimPrefix(path, "/")
}

// image resolves a project image path. Empty means no image.
func (r *Renderer) image(src string) string {
	switch {
	case src == "":
		return ""
	case strings.HasPrefix(src, "http://"), strings.HasPrefix(src, "https://"):
		return src
	default:
		return r.link(src)
	}
}

// formatDate prints dates the way the site shows them, e.g. 3/15/2024
func formatDate(t time.Time) string {
	return t.Format("1/2/2006")
}

// section is the name shown next to the site title for the active page
func section(active string) string {
	switch active {
	case NavProjects:
		return "projects"
	case NavAbout:
		return "about"
	default:
		return ""
	}
}

func index(projects []models.Project, vocab []models.TagCount) models.ProjectList {
	// the index feeds the client filter, which never needs the bodies
	slim := make([]models.Project, len(projects))
	for i, p := range projects {
		p.Content = ""
		slim[i] = p
	}
	return models.ProjectList{Projects: slim, Technologies: vocab}
}
