package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/MelDxKviel/reels-downloader-bot/internal/cache"
	"github.com/MelDxKviel/reels-downloader-bot/internal/domain"
	"github.com/MelDxKviel/reels-downloader-bot/internal/platform"
	"github.com/MelDxKviel/reels-downloader-bot/internal/repository"
)

// unsupportedMessage is shown when a URL matches no known platform.
const unsupportedMessage = "Unsupported URL. Supported platforms: YouTube, Instagram, TikTok, X/Twitter"

// Fetcher performs one real download attempt for a supported URL.
type Fetcher interface {
	Fetch(ctx context.Context, url string, p domain.Platform) domain.DownloadResult
}

// DownloadService orchestrates the download workflow: classification, cache
// lookup, coordinated extraction and write-through.
type DownloadService struct {
	cache   *cache.Store
	fetcher Fetcher
	jobRepo repository.JobRepository
	group   singleflight.Group
	logger  *slog.Logger
}

// NewDownloadService creates a new download service.
func NewDownloadService(
	store *cache.Store,
	fetcher Fetcher,
	jobRepo repository.JobRepository,
	logger *slog.Logger,
) *DownloadService {
	return &DownloadService{
		cache:   store,
		fetcher: fetcher,
		jobRepo: jobRepo,
		logger:  logger,
	}
}

// SubmitResponse is returned after submitting a download request.
type SubmitResponse struct {
	JobID    domain.JobID    `json:"job_id"`
	Status   domain.JobStatus `json:"status"`
	Platform domain.Platform `json:"platform"`
}

// Submit validates and enqueues a download request.
func (s *DownloadService) Submit(ctx context.Context, userID int64, url string) (*SubmitResponse, error) {
	if !platform.IsSupported(url) {
		return nil, domain.ErrUnsupportedURL
	}

	jobID := domain.JobID("job_" + uuid.New().String()[:8])
	job := domain.NewJob(jobID, userID, url, platform.Name(url))

	if err := s.jobRepo.Enqueue(ctx, job); err != nil {
		return nil, fmt.Errorf("enqueue job: %w", err)
	}

	s.logger.Info("download submitted",
		"job_id", jobID,
		"user_id", userID,
		"platform", job.Platform,
	)

	return &SubmitResponse{
		JobID:    jobID,
		Status:   job.Status,
		Platform: job.Platform,
	}, nil
}

// GetJob retrieves a job by ID.
func (s *DownloadService) GetJob(ctx context.Context, id domain.JobID) (*domain.Job, error) {
	return s.jobRepo.Get(ctx, id)
}

// Download resolves one URL to a result: unsupported URLs and panics become
// failure results, never errors. Concurrent requests for the same cache key
// share a single extraction.
func (s *DownloadService) Download(ctx context.Context, url string) (result domain.DownloadResult) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("download panicked", "url", url, "panic", r)
			result = domain.Failure("An unexpected error occurred")
		}
	}()

	if !platform.IsSupported(url) {
		return domain.Failure(unsupportedMessage)
	}

	if cached, ok := s.cache.Get(url); ok {
		s.logger.Info("cache hit", "url", url)
		return cached
	}

	key := cache.Key(url)
	v, _, shared := s.group.Do(key, func() (any, error) {
		// A concurrent flight may have populated the cache between the
		// miss above and acquiring the flight.
		if cached, ok := s.cache.Get(url); ok {
			return cached, nil
		}

		res := s.fetcher.Fetch(ctx, url, platform.Name(url))
		s.cache.Put(url, res)
		return res, nil
	})

	result = v.(domain.DownloadResult)
	if shared && result.Success {
		// Followers share the artifact produced by the winning flight.
		result.FromCache = true
	}
	return result
}
