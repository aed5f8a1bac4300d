package repository

import (
	"context"
	"time"

	"github.com/MelDxKviel/reels-downloader-bot/internal/domain"
)

// UserRepository manages the allow-list of bot users.
type UserRepository interface {
	// Add inserts or reactivates a user. Returns true if the user was
	// newly added or reactivated, false if already active.
	Add(ctx context.Context, userID int64) (bool, error)

	// Remove deactivates a user. Returns true if the user was active.
	Remove(ctx context.Context, userID int64) (bool, error)

	// Get retrieves a user by ID.
	Get(ctx context.Context, userID int64) (*domain.User, error)

	// List returns all users, newest first.
	List(ctx context.Context) ([]*domain.User, error)

	// IsAllowed reports whether the user exists and is active.
	IsAllowed(ctx context.Context, userID int64) (bool, error)
}

// StatsRepository records and aggregates the download log.
type StatsRepository interface {
	// Record appends one download attempt to the log.
	Record(ctx context.Context, stat domain.DownloadStat) error

	// GlobalStats aggregates all downloads, optionally bounded to
	// attempts at or after since.
	GlobalStats(ctx context.Context, since *time.Time) (*domain.GlobalStats, error)

	// UserStats aggregates downloads for one user.
	UserStats(ctx context.Context, userID int64) (*domain.UserStats, error)
}

// JobRepository manages the job queue.
type JobRepository interface {
	// Enqueue adds a job to the queue.
	Enqueue(ctx context.Context, job *domain.Job) error

	// Dequeue retrieves the next queued job (FIFO).
	Dequeue(ctx context.Context) (*domain.Job, error)

	// Update modifies job state.
	Update(ctx context.Context, job *domain.Job) error

	// Get retrieves a job by ID.
	Get(ctx context.Context, id domain.JobID) (*domain.Job, error)

	// Stats returns queue statistics.
	Stats(ctx context.Context) (*QueueStats, error)
}

// QueueStats contains job queue statistics.
type QueueStats struct {
	Queued     int `json:"queued"`
	Processing int `json:"processing"`
	Completed  int `json:"completed"`
	Failed     int `json:"failed"`
}
