package handlers

import (
	"bytes"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.llib.dev/frameless/pkg/logging"

	"cmhac.dev/internal/content"
	"cmhac.dev/internal/filter"
	"cmhac.dev/internal/services"
	"cmhac.dev/internal/site"
)

// PageHandler renders the HTML pages of the preview server
type PageHandler struct {
	responder
	projectService *services.ProjectService
	renderer       *site.Renderer
}

// NewPageHandler creates a new PageHandler
func NewPageHandler(ps *services.ProjectService, renderer *site.Renderer, logger *logging.Logger) *PageHandler {
	return &PageHandler{
		responder:      responder{logger: logger},
		projectService: ps,
		renderer:       renderer,
	}
}

// Home handles GET /
func (h *PageHandler) Home(w http.ResponseWriter, r *http.Request) {
	about, _ := h.projectService.GetAbout(r.Context())
	home := h.projectService.GetHomePage(r.Context())
	h.respondHTML(w, r, http.StatusOK, func(buf *bytes.Buffer) error {
		return h.renderer.Home(buf, home, about)
	})
}

// Projects handles GET /projects. The tech and q query parameters filter the
// listing server-side for browsers without the client filter.
func (h *PageHandler) Projects(w http.ResponseWriter, r *http.Request) {
	sel := selectionFrom(r)
	all := h.projectService.GetAll(r.Context())
	visible := filter.Apply(all, sel)
	h.respondHTML(w, r, http.StatusOK, func(buf *bytes.Buffer) error {
		return h.renderer.Projects(buf, all, visible, sel)
	})
}

// Project handles GET /projects/{slug}
func (h *PageHandler) Project(w http.ResponseWriter, r *http.Request) {
	project, err := h.projectService.GetBySlug(r.Context(), chi.URLParam(r, "slug"))
	if errors.Is(err, content.ErrNotFound) {
		h.NotFound(w, r)
		return
	}
	if err != nil {
		h.logger.Error(r.Context(), "failed to load project", logging.ErrField(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	h.respondHTML(w, r, http.StatusOK, func(buf *bytes.Buffer) error {
		return h.renderer.Project(buf, project)
	})
}

// About handles GET /about
func (h *PageHandler) About(w http.ResponseWriter, r *http.Request) {
	about, _ := h.projectService.GetAbout(r.Context())
	h.respondHTML(w, r, http.StatusOK, func(buf *bytes.Buffer) error {
		return h.renderer.About(buf, about)
	})
}

// NotFound renders the 404 page
func (h *PageHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	h.respondHTML(w, r, http.StatusNotFound, func(buf *bytes.Buffer) error {
		return h.renderer.NotFound(buf, r.URL.Path)
	})
}

// respondHTML renders a page and writes it with status
func (h *PageHandler) respondHTML(w http.ResponseWriter, r *http.Request, status int, render func(*bytes.Buffer) error) {
	var buf bytes.Buffer
	if err := render(&buf); err != nil {
		h.logger.Error(r.Context(), "failed to render page",
			logging.Field("path", r.URL.Path),
			logging.ErrField(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		h.logger.Warn(r.Context(), "failed to write page", logging.ErrField(err))
	}
}
