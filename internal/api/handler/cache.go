package handler

import (
	"log/slog"
	"net/http"

	"github.com/MelDxKviel/reels-downloader-bot/internal/cache"
)

// CacheHandler exposes cache inspection and clearing.
type CacheHandler struct {
	store  *cache.Store
	logger *slog.Logger
}

// NewCacheHandler creates a new cache handler.
func NewCacheHandler(store *cache.Store, logger *slog.Logger) *CacheHandler {
	return &CacheHandler{store: store, logger: logger}
}

// CacheInfoResponse summarizes cache contents.
type CacheInfoResponse struct {
	Entries    int    `json:"entries"`
	TotalBytes int64  `json:"total_bytes"`
	Dir        string `json:"dir"`
}

// ClearResponse reports the outcome of a cache clear.
type ClearResponse struct {
	FilesRemoved int `json:"files_removed"`
}

// Info handles GET /api/v1/cache
func (h *CacheHandler) Info(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, CacheInfoResponse{
		Entries:    h.store.Len(),
		TotalBytes: h.store.TotalBytes(),
		Dir:        h.store.Dir(),
	})
}

// Clear handles DELETE /api/v1/cache
func (h *CacheHandler) Clear(w http.ResponseWriter, r *http.Request) {
	removed := h.store.Clear()
	h.logger.Info("cache cleared", "files_removed", removed)
	writeJSON(w, http.StatusOK, ClearResponse{FilesRemoved: removed})
}
