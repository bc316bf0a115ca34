package handlers

import (
	"encoding/json"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.llib.dev/frameless/pkg/logging"

	"cmhac.dev/internal/config"
	"cmhac.dev/internal/content"
	"cmhac.dev/internal/middleware"
	"cmhac.dev/internal/services"
	"cmhac.dev/internal/site"
)

// SetupRoutes configures all routes and returns the router
func SetupRoutes(cfg *config.Config, logger *logging.Logger) (http.Handler, error) {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.Logger(logger))
	r.Use(chimw.StripSlashes)

	// Initialize services
	loader := content.NewLoader(os.DirFS(cfg.ContentDir), logger, content.WithWorkers(cfg.LoadWorkers))
	projectService := services.NewProjectService(loader)

	renderer, err := site.NewRenderer(cfg.Site)
	if err != nil {
		return nil, err
	}

	// Initialize handlers
	projectHandler := NewProjectHandler(projectService, logger)
	pageHandler := NewPageHandler(projectService, renderer, logger)

	// API routes
	r.Route("/api", func(r chi.Router) {
		r.Get("/projects", projectHandler.ListProjects)
		r.Get("/projects/{slug}", projectHandler.GetProject)
		r.Get("/home", projectHandler.GetHomePage)
		r.Get("/technologies", projectHandler.ListTechnologies)

		// Health check
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			responder{logger}.respondJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
		})
	})

	// Pages
	r.Get("/", pageHandler.Home)
	r.Get("/projects", pageHandler.Projects)
	r.Get("/projects/{slug}", pageHandler.Project)
	r.Get("/about", pageHandler.About)
	r.Get("/"+site.IndexFile, projectHandler.Index)
	r.NotFound(pageHandler.NotFound)

	// Static files: STATIC_DIR first, then the assets built into the binary
	r.Handle("/static/*", http.StripPrefix("/static", staticHandler(cfg.StaticDir)))

	return r, nil
}

// staticHandler serves files from dir, falling back to the embedded assets
func staticHandler(dir string) http.Handler {
	embedded := http.FileServerFS(site.StaticFS())
	if dir == "" {
		return embedded
	}
	local := http.FileServer(http.Dir(dir))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if f, err := http.Dir(dir).Open(r.URL.Path); err == nil {
			f.Close()
			local.ServeHTTP(w, r)
			return
		}
		embedded.ServeHTTP(w, r)
	})
}

// responder writes JSON responses and logs encoding failures
type responder struct {
	logger *logging.Logger
}

// respondJSON writes a JSON response
func (rs responder) respondJSON(w http.ResponseWriter, r *http.Request, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		rs.logger.Error(r.Context(), "error encoding JSON", logging.ErrField(err))
	}
}

// respondError writes an error JSON response
func (rs responder) respondError(w http.ResponseWriter, r *http.Request, status int, message string) {
	rs.respondJSON(w, r, status, map[string]string{"error": message})
}
