package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/MelDxKviel/reels-downloader-bot/internal/domain"
	"github.com/MelDxKviel/reels-downloader-bot/internal/service"
)

// AdminHandler handles user management and statistics endpoints.
type AdminHandler struct {
	userSvc  *service.UserService
	statsSvc *service.StatsService
	logger   *slog.Logger
}

// NewAdminHandler creates a new admin handler.
func NewAdminHandler(userSvc *service.UserService, statsSvc *service.StatsService, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{
		userSvc:  userSvc,
		statsSvc: statsSvc,
		logger:   logger,
	}
}

// UserResponse describes one allow-list entry.
type UserResponse struct {
	UserID    int64     `json:"user_id"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

// UserMutationResponse reports the effect of an add or remove.
type UserMutationResponse struct {
	UserID  int64  `json:"user_id"`
	Changed bool   `json:"changed"`
	Message string `json:"message"`
}

func parseUserID(r *http.Request) (int64, bool) {
	raw := chi.URLParam(r, "userID")
	id, err := strconv.ParseInt(raw, 10, 64)
	return id, err == nil
}

// AddUser handles POST /api/v1/users/{userID}
func (h *AdminHandler) AddUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := parseUserID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid user ID")
		return
	}

	added, err := h.userSvc.Allow(r.Context(), userID)
	if err != nil {
		h.logger.Error("add user failed", "user_id", userID, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to add user")
		return
	}

	msg := "user already has access"
	if added {
		msg = "user added"
	}
	writeJSON(w, http.StatusOK, UserMutationResponse{
		UserID:  userID,
		Changed: added,
		Message: msg,
	})
}

// RemoveUser handles DELETE /api/v1/users/{userID}
func (h *AdminHandler) RemoveUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := parseUserID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid user ID")
		return
	}

	removed, err := h.userSvc.Revoke(r.Context(), userID)
	if err != nil {
		h.logger.Error("remove user failed", "user_id", userID, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to remove user")
		return
	}

	msg := "user was not active"
	if removed {
		msg = "user removed"
	}
	writeJSON(w, http.StatusOK, UserMutationResponse{
		UserID:  userID,
		Changed: removed,
		Message: msg,
	})
}

// ListUsers handles GET /api/v1/users
func (h *AdminHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.userSvc.List(r.Context())
	if err != nil {
		h.logger.Error("list users failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list users")
		return
	}

	out := make([]UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, UserResponse{
			UserID:    u.UserID,
			IsActive:  u.IsActive,
			CreatedAt: u.CreatedAt,
		})
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"users": out,
		"total": len(out),
	})
}

// Stats handles GET /api/v1/stats
func (h *AdminHandler) Stats(w http.ResponseWriter, r *http.Request) {
	overview, err := h.statsSvc.Overview(r.Context())
	if err != nil {
		h.logger.Error("stats failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to compute stats")
		return
	}
	writeJSON(w, http.StatusOK, overview)
}

// UserStats handles GET /api/v1/users/{userID}/stats
func (h *AdminHandler) UserStats(w http.ResponseWriter, r *http.Request) {
	userID, ok := parseUserID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid user ID")
		return
	}

	stats, err := h.statsSvc.UserStats(r.Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			writeError(w, http.StatusNotFound, "user not found")
			return
		}
		h.logger.Error("user stats failed", "user_id", userID, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to compute user stats")
		return
	}
	writeJSON(w, http.StatusOK, stats)
}
