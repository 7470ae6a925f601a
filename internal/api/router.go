package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/starford/showcase/internal/projectservice"
)

// NewRouter creates a chi router with the page shell, the UI event endpoints
// and the read-only JSON API. sseHandler, if non-nil, is mounted at
// GET /api/events.
func NewRouter(svc *projectservice.Service, sessions *Sessions, page PageConfig, sseHandler http.Handler) chi.Router {
	h := NewHandler(svc, sessions, page)

	r := chi.NewRouter()

	// Page shell and its event endpoints need a session.
	r.Group(func(r chi.Router) {
		r.Use(SessionMiddleware)
		r.Get("/", h.Page)
		r.Post("/ui/dispatch", h.Dispatch)
		r.Post("/ui/theme", h.Theme)
	})

	r.Get("/projects.json", h.ProjectsJSON)

	r.Route("/api", func(r chi.Router) {
		r.Get("/projects", h.ListProjects)
		r.Get("/projects/{id}", h.GetProject)
		if sseHandler != nil {
			r.Get("/events", sseHandler.ServeHTTP)
		}
	})

	return r
}
