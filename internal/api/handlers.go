package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/voss/nbshelf/internal/apperr"
	"github.com/voss/nbshelf/internal/shelf"
)

// Handler holds API route handlers.
type Handler struct {
	svc *shelf.Service
}

// NewHandler creates a new Handler.
func NewHandler(svc *shelf.Service) *Handler {
	return &Handler{svc: svc}
}

// notebookName extracts the notebook name from the URL. Supports encoded
// characters from generated clients (e.g. My%20Notebook.ipynb).
func notebookName(r *http.Request) string {
	raw := chi.URLParam(r, "name")
	decoded, err := url.PathUnescape(raw)
	if err != nil {
		return raw
	}
	return decoded
}

// GetTOC handles GET /api/toc. The fragment is rebuilt from the shelf on
// every request and returned verbatim.
func (h *Handler) GetTOC(w http.ResponseWriter, r *http.Request) {
	frag, err := h.svc.TOC(r.Context())
	if err != nil {
		slog.Error("build toc failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(frag))
}

// ListNotebooks handles GET /api/notebooks.
func (h *Handler) ListNotebooks(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.List(r.Context())
	if err != nil {
		slog.Error("list notebooks failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"notebooks": items,
		"total":     len(items),
	})
}

// GetNotebook handles GET /api/notebooks/{name}, serving the raw file.
func (h *Handler) GetNotebook(w http.ResponseWriter, r *http.Request) {
	name := notebookName(r)
	if name == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("name is required"))
		return
	}
	data, cs, err := h.svc.Get(r.Context(), name)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, errorBody("not found"))
		} else {
			slog.Error("get notebook failed", slog.String("name", name), slog.String("error", err.Error()))
			writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		}
		return
	}
	w.Header().Set("Content-Type", "application/x-ipynb+json")
	w.Header().Set("ETag", fmt.Sprintf("%q", cs))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// AddNotebook handles POST /api/notebooks.
func (h *Handler) AddNotebook(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 10<<20)
	var req struct {
		Name    string `json:"name"`
		Content string `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	if req.Name == "" || req.Content == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("name and content are required"))
		return
	}
	nb, err := h.svc.Add(r.Context(), req.Name, []byte(req.Content))
	if err != nil {
		switch {
		case errors.Is(err, apperr.ErrInvalidName):
			writeJSON(w, http.StatusBadRequest, errorBody("name must end with .ipynb"))
		case errors.Is(err, apperr.ErrAlreadyExists):
			writeJSON(w, http.StatusConflict, errorBody("notebook already exists"))
		default:
			slog.Error("add notebook failed", slog.String("name", req.Name), slog.String("error", err.Error()))
			writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		}
		return
	}
	writeJSON(w, http.StatusCreated, nb)
}

// DeleteNotebook handles DELETE /api/notebooks/{name}.
func (h *Handler) DeleteNotebook(w http.ResponseWriter, r *http.Request) {
	name := notebookName(r)
	if name == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("name is required"))
		return
	}
	if err := h.svc.Remove(r.Context(), name); err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, errorBody("not found"))
		} else {
			slog.Error("delete notebook failed", slog.String("name", name), slog.String("error", err.Error()))
			writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		}
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
