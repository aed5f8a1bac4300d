package domain

import "time"

// User is an allowed bot user.
type User struct {
	UserID    int64     `json:"user_id"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

// DownloadStat is one row of the append-only download log.
type DownloadStat struct {
	UserID    int64     `json:"user_id"`
	Platform  Platform  `json:"platform"`
	URL       string    `json:"url"`
	Success   bool      `json:"success"`
	CreatedAt time.Time `json:"created_at"`
}

// GlobalStats aggregates downloads across all users.
type GlobalStats struct {
	TotalDownloads      int              `json:"total_downloads"`
	SuccessfulDownloads int              `json:"successful_downloads"`
	FailedDownloads     int              `json:"failed_downloads"`
	ActiveUsers         int              `json:"active_users"`
	ByPlatform          map[Platform]int `json:"by_platform"`
}

// UserStats aggregates downloads for one user.
type UserStats struct {
	TotalDownloads      int              `json:"total_downloads"`
	SuccessfulDownloads int              `json:"successful_downloads"`
	FailedDownloads     int              `json:"failed_downloads"`
	ByPlatform          map[Platform]int `json:"by_platform"`
	LastActivity        *time.Time       `json:"last_activity,omitempty"`
}
