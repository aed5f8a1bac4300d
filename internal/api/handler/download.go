package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/MelDxKviel/reels-downloader-bot/internal/api/middleware"
	"github.com/MelDxKviel/reels-downloader-bot/internal/domain"
	"github.com/MelDxKviel/reels-downloader-bot/internal/service"
)

// DownloadHandler handles download submission and status requests.
type DownloadHandler struct {
	downloadSvc *service.DownloadService
	logger      *slog.Logger
}

// NewDownloadHandler creates a new download handler.
func NewDownloadHandler(downloadSvc *service.DownloadService, logger *slog.Logger) *DownloadHandler {
	return &DownloadHandler{
		downloadSvc: downloadSvc,
		logger:      logger,
	}
}

// SubmitRequest is the JSON request body for download submission.
type SubmitRequest struct {
	URL string `json:"url"`
}

// SubmitResponse is the JSON response after submission.
type SubmitResponse struct {
	JobID    string `json:"job_id"`
	Status   string `json:"status"`
	Platform string `json:"platform"`
}

// JobResponse describes one job in status responses.
type JobResponse struct {
	JobID     string                 `json:"job_id"`
	Status    string                 `json:"status"`
	Platform  string                 `json:"platform"`
	URL       string                 `json:"url"`
	Result    *domain.DownloadResult `json:"result,omitempty"`
	CreatedAt time.Time              `json:"created_at"`
	UpdatedAt time.Time              `json:"updated_at"`
}

// Submit handles POST /api/v1/downloads
func (h *DownloadHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req SubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.URL == "" {
		writeError(w, http.StatusBadRequest, "url is required")
		return
	}

	userID, ok := middleware.UserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing user identity")
		return
	}

	resp, err := h.downloadSvc.Submit(r.Context(), userID, req.URL)
	if err != nil {
		if errors.Is(err, domain.ErrUnsupportedURL) {
			writeError(w, http.StatusUnprocessableEntity, "unsupported URL")
			return
		}
		h.logger.Error("submit failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to submit download")
		return
	}

	writeJSON(w, http.StatusAccepted, SubmitResponse{
		JobID:    string(resp.JobID),
		Status:   string(resp.Status),
		Platform: string(resp.Platform),
	})
}

// GetStatus handles GET /api/v1/downloads/{jobID}
func (h *DownloadHandler) GetStatus(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "jobID")
	if jobID == "" {
		writeError(w, http.StatusBadRequest, "missing job ID")
		return
	}

	job, err := h.downloadSvc.GetJob(r.Context(), domain.JobID(jobID))
	if err != nil {
		if errors.Is(err, domain.ErrJobNotFound) {
			writeError(w, http.StatusNotFound, "job not found")
			return
		}
		h.logger.Error("get job failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to get job")
		return
	}

	writeJSON(w, http.StatusOK, JobResponse{
		JobID:     string(job.ID),
		Status:    string(job.Status),
		Platform:  string(job.Platform),
		URL:       job.URL,
		Result:    job.Result,
		CreatedAt: job.CreatedAt,
		UpdatedAt: job.UpdatedAt,
	})
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
