package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.llib.dev/frameless/pkg/logging"

	"cmhac.dev/internal/content"
	"cmhac.dev/internal/filter"
	"cmhac.dev/internal/models"
	"cmhac.dev/internal/services"
)

// ProjectHandler handles project-related endpoints
type ProjectHandler struct {
	responder
	projectService *services.ProjectService
}

// NewProjectHandler creates a new ProjectHandler
func NewProjectHandler(ps *services.ProjectService, logger *logging.Logger) *ProjectHandler {
	return &ProjectHandler{
		responder:      responder{logger: logger},
		projectService: ps,
	}
}

// ListProjects handles GET /api/projects?tech=&q=
func (h *ProjectHandler) ListProjects(w http.ResponseWriter, r *http.Request) {
	projects, vocab := h.projectService.Filter(r.Context(), selectionFrom(r))
	h.respondJSON(w, r, http.StatusOK, models.ProjectList{
		Projects:     projects,
		Technologies: vocab,
	})
}

// GetProject handles GET /api/projects/{slug}
func (h *ProjectHandler) GetProject(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	project, err := h.projectService.GetBySlug(r.Context(), slug)
	if errors.Is(err, content.ErrNotFound) {
		h.respondError(w, r, http.StatusNotFound, "Project not found")
		return
	}
	if err != nil {
		h.logger.Error(r.Context(), "failed to load project",
			logging.Field("slug", slug),
			logging.ErrField(err))
		h.respondError(w, r, http.StatusInternalServerError, "Failed to load project")
		return
	}

	h.respondJSON(w, r, http.StatusOK, project)
}

// GetHomePage handles GET /api/home
func (h *ProjectHandler) GetHomePage(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, r, http.StatusOK, h.projectService.GetHomePage(r.Context()))
}

// ListTechnologies handles GET /api/technologies
func (h *ProjectHandler) ListTechnologies(w http.ResponseWriter, r *http.Request) {
	_, vocab := h.projectService.Filter(r.Context(), filter.Selection{})
	h.respondJSON(w, r, http.StatusOK, vocab)
}

// Index handles GET /projects.json, the same index the static export writes
func (h *ProjectHandler) Index(w http.ResponseWriter, r *http.Request) {
	index, _ := h.projectService.Index(r.Context())
	h.respondJSON(w, r, http.StatusOK, index)
}

// selectionFrom reads the filter selection from the query string
func selectionFrom(r *http.Request) filter.Selection {
	q := r.URL.Query()
	return filter.Selection{
		Query:      q.Get("q"),
		Technology: q.Get("tech"),
	}
}
