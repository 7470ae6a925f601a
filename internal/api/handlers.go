package api

import (
	"bytes"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/starford/showcase/internal/apperr"
	"github.com/starford/showcase/internal/catalog"
	"github.com/starford/showcase/internal/kvstore"
	"github.com/starford/showcase/internal/models"
	"github.com/starford/showcase/internal/projectservice"
	"github.com/starford/showcase/internal/render"
	"github.com/starford/showcase/internal/ui"
)

// PageConfig sets the page title and the theme used when a visitor has none saved.
type PageConfig struct {
	Title string
	Theme string
}

// Handler holds the route handlers.
type Handler struct {
	svc      *projectservice.Service
	sessions *Sessions
	page     PageConfig
}

// NewHandler creates a new Handler.
func NewHandler(svc *projectservice.Service, sessions *Sessions, page PageConfig) *Handler {
	if page.Theme == "" {
		page.Theme = ui.ThemeDark
	}
	return &Handler{svc: svc, sessions: sessions, page: page}
}

// Page handles GET /. It renders the session's current view, or the failure
// view while no catalog is available.
func (h *Handler) Page(w http.ResponseWriter, r *http.Request) {
	id := SessionID(r.Context())
	theme := ui.LoadTheme(h.sessions.Store(id), h.page.Theme)

	var data render.PageData
	err := h.sessions.With(id, func(c *ui.Controller, _ kvstore.Store) error {
		data = c.Page(theme, true)
		return nil
	})
	if err != nil {
		if !catalog.IsUnavailable(err) {
			slog.Error("render page failed", slog.String("error", err.Error()))
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		v := ui.FailureView()
		data = render.PageData{Theme: theme, Grid: v.Grid, Count: v.Count, Interactive: true}
	}
	data.Title = h.page.Title

	var buf bytes.Buffer
	if err := render.Page(&buf, data); err != nil {
		slog.Error("render page failed", slog.String("error", err.Error()))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write(buf.Bytes())
}

// Dispatch handles POST /ui/dispatch: one ui.Event in, the resulting patches out.
func (h *Handler) Dispatch(w http.ResponseWriter, r *http.Request) {
	var ev ui.Event
	if err := readJSON(w, r, &ev); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	id := SessionID(r.Context())

	var rec ui.PatchRecorder
	var count string
	err := h.sessions.With(id, func(c *ui.Controller, _ kvstore.Store) error {
		v, err := c.Dispatch(ev)
		if err != nil {
			return err
		}
		v.Draw(&rec, c.Handles())
		count = v.Count
		return nil
	})
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, DispatchResponse{Patches: rec.Patches, Count: count})
	case errors.Is(err, apperr.ErrInvalidEvent):
		writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
	case catalog.IsUnavailable(err):
		ui.RenderFailure(&rec, ui.DefaultHandles())
		writeJSON(w, http.StatusOK, DispatchResponse{Patches: rec.Patches, Count: ui.FailureCount, Failed: true})
	default:
		slog.Error("dispatch failed", slog.String("kind", ev.Kind), slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
	}
}

// Theme handles POST /ui/theme by flipping the session's saved theme.
func (h *Handler) Theme(w http.ResponseWriter, r *http.Request) {
	theme, err := ui.ToggleTheme(h.sessions.Store(SessionID(r.Context())), h.page.Theme)
	if err != nil {
		// Theme is cosmetic; report the flip even if it was not saved.
		slog.Warn("save theme failed", slog.String("error", err.Error()))
	}
	writeJSON(w, http.StatusOK, ThemeResponse{Theme: theme})
}

// ProjectsJSON handles GET /projects.json with the merged catalog.
func (h *Handler) ProjectsJSON(w http.ResponseWriter, r *http.Request) {
	snap, err := h.svc.Snapshot()
	if err != nil {
		writeJSON(w, http.StatusServiceUnavailable, errorBody("catalog unavailable"))
		return
	}
	etag := `"` + snap.Checksum + `"`
	w.Header().Set("ETag", etag)
	w.Header().Set("Cache-Control", "no-cache")
	if r.Header.Get("If-None-Match") == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	_, _ = w.Write(snap.JSON)
}

// filterFromQuery reads q, status, tag, category and sort; absent values
// keep their defaults.
func filterFromQuery(r *http.Request) models.FilterState {
	q := r.URL.Query()
	st := models.DefaultFilterState()
	st.Query = q.Get("q")
	if v := q.Get("status"); v != "" {
		st.Status = v
	}
	if v := q.Get("tag"); v != "" {
		st.Tag = v
	}
	if v := q.Get("category"); v != "" {
		st.Category = v
	}
	if v := q.Get("sort"); v != "" {
		st.Sort = v
	}
	return st
}

// ListProjects handles GET /api/projects.
func (h *Handler) ListProjects(w http.ResponseWriter, r *http.Request) {
	st := filterFromQuery(r)
	if err := st.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
		return
	}
	items, err := h.svc.List(r.Context(), st)
	if err != nil {
		if catalog.IsUnavailable(err) {
			writeJSON(w, http.StatusServiceUnavailable, errorBody("catalog unavailable"))
			return
		}
		slog.Error("list projects failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	snap, _ := h.svc.Snapshot()
	writeJSON(w, http.StatusOK, ProjectListResponse{
		Projects: items,
		Shown:    len(items),
		Total:    len(snap.Projects),
	})
}

// GetProject handles GET /api/projects/{id}.
func (h *Handler) GetProject(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	p, err := h.svc.Get(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, apperr.ErrNotFound):
			writeJSON(w, http.StatusNotFound, errorBody("not found"))
		case catalog.IsUnavailable(err):
			writeJSON(w, http.StatusServiceUnavailable, errorBody("catalog unavailable"))
		default:
			slog.Error("get project failed", slog.String("id", id), slog.String("error", err.Error()))
			writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		}
		return
	}
	writeJSON(w, http.StatusOK, p)
}
