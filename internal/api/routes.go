package api

import (
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/lucasreed/vidvault/internal/domain"
	"github.com/lucasreed/vidvault/internal/kv"
)

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Store.Stats()
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, stats)
}

func (h *Handler) RunBackup(w http.ResponseWriter, r *http.Request) {
	path, err := h.Store.Backup()
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]string{"path": path})
}

func (h *Handler) ExportConfig(w http.ResponseWriter, r *http.Request) {
	export, err := kv.ExportSettings(h.Cache)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, export)
}

func (h *Handler) ImportConfig(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		h.writeError(w, err)
		return
	}
	if err := kv.ImportSettings(h.Cache, body); err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "imported"})
}

func (h *Handler) SearchVideos(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	opts := domain.SearchOptions{
		SortBy:    domain.SortField(q.Get("sort")),
		SortOrder: domain.SortOrder(q.Get("order")),
		Filters: domain.SearchFilters{
			FolderID: q.Get("folder_id"),
			MimeType: q.Get("mime_type"),
			Quality:  q.Get("quality"),
		},
	}
	if tags, ok := q["tag"]; ok {
		opts.Filters.Tags = tags
	}
	if v := q.Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			opts.Limit = n
		}
	}
	if v := q.Get("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			opts.Offset = n
		}
	}

	videos, err := h.Store.SearchVideos(q.Get("q"), opts)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, videos)
}

func (h *Handler) GetVideo(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	video, err := h.Store.GetVideoByID(id)
	if err != nil {
		h.writeError(w, err)
		return
	}
	if video == nil {
		h.writeJSON(w, http.StatusNotFound, map[string]string{"error": "video not found"})
		return
	}
	h.writeJSON(w, http.StatusOK, video)
}
