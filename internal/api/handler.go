// Package api exposes a thin HTTP surface over the store and cache public
// operations. It holds no business logic; callers own orchestration.
package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/lucasreed/vidvault/internal/domain"
	"github.com/lucasreed/vidvault/internal/kv"
	"github.com/lucasreed/vidvault/internal/logger"
	"github.com/lucasreed/vidvault/internal/store"
)

type Handler struct {
	Store  *store.Store
	Cache  *kv.Cache
	Logger *logger.Logger
}

func NewHandler(s *store.Store, c *kv.Cache, log *logger.Logger) *Handler {
	if log == nil {
		log = logger.Default()
	}
	return &Handler{Store: s, Cache: c, Logger: log.WithComponent("api")}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/health", h.Health)
	r.Get("/stats", h.GetStats)
	r.Post("/backup", h.RunBackup)
	r.Get("/config/export", h.ExportConfig)
	r.Post("/config/import", h.ImportConfig)
	r.Get("/videos", h.SearchVideos)
	r.Get("/videos/{id}", h.GetVideo)
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.Logger.Error("failed to encode response", "error", err)
	}
}

// writeError maps domain errors onto HTTP statuses.
func (h *Handler) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrDuplicateKey):
		status = http.StatusConflict
	case errors.Is(err, domain.ErrImportFormat):
		status = http.StatusBadRequest
	}
	h.writeJSON(w, status, map[string]string{"error": err.Error()})
}
