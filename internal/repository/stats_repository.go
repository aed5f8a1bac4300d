package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/MelDxKviel/reels-downloader-bot/internal/domain"
)

// SQLiteStatsRepository implements StatsRepository on the shared database.
type SQLiteStatsRepository struct {
	db *sql.DB
}

// NewSQLiteStatsRepository creates a new SQLite-backed stats repository.
func NewSQLiteStatsRepository(db *sql.DB) *SQLiteStatsRepository {
	return &SQLiteStatsRepository{db: db}
}

// Record appends one download attempt to the log.
func (r *SQLiteStatsRepository) Record(ctx context.Context, stat domain.DownloadStat) error {
	createdAt := stat.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO download_stats (user_id, platform, url, success, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		stat.UserID, string(stat.Platform), stat.URL, stat.Success, createdAt)
	if err != nil {
		return fmt.Errorf("insert stat: %w", err)
	}
	return nil
}

// GlobalStats aggregates all downloads, optionally bounded to attempts at
// or after since.
func (r *SQLiteStatsRepository) GlobalStats(ctx context.Context, since *time.Time) (*domain.GlobalStats, error) {
	where := ""
	var args []any
	if since != nil {
		where = " WHERE created_at >= ?"
		args = append(args, since.UTC())
	}

	stats := &domain.GlobalStats{ByPlatform: make(map[domain.Platform]int)}

	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*),
		        COALESCE(SUM(success), 0),
		        COUNT(DISTINCT user_id)
		 FROM download_stats`+where, args...,
	).Scan(&stats.TotalDownloads, &stats.SuccessfulDownloads, &stats.ActiveUsers)
	if err != nil {
		return nil, fmt.Errorf("aggregate stats: %w", err)
	}
	stats.FailedDownloads = stats.TotalDownloads - stats.SuccessfulDownloads

	rows, err := r.db.QueryContext(ctx,
		`SELECT platform, COUNT(*) FROM download_stats`+where+` GROUP BY platform`, args...)
	if err != nil {
		return nil, fmt.Errorf("aggregate platforms: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var platform string
		var count int
		if err := rows.Scan(&platform, &count); err != nil {
			return nil, fmt.Errorf("scan platform: %w", err)
		}
		stats.ByPlatform[domain.Platform(platform)] = count
	}
	return stats, rows.Err()
}

// UserStats aggregates downloads for one user.
func (r *SQLiteStatsRepository) UserStats(ctx context.Context, userID int64) (*domain.UserStats, error) {
	stats := &domain.UserStats{ByPlatform: make(map[domain.Platform]int)}

	var last sql.NullTime
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*),
		        COALESCE(SUM(success), 0),
		        MAX(created_at)
		 FROM download_stats WHERE user_id = ?`, userID,
	).Scan(&stats.TotalDownloads, &stats.SuccessfulDownloads, &last)
	if err != nil {
		return nil, fmt.Errorf("aggregate user stats: %w", err)
	}
	stats.FailedDownloads = stats.TotalDownloads - stats.SuccessfulDownloads
	if last.Valid {
		stats.LastActivity = &last.Time
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT platform, COUNT(*) FROM download_stats WHERE user_id = ? GROUP BY platform`, userID)
	if err != nil {
		return nil, fmt.Errorf("aggregate user platforms: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var platform string
		var count int
		if err := rows.Scan(&platform, &count); err != nil {
			return nil, fmt.Errorf("scan platform: %w", err)
		}
		stats.ByPlatform[domain.Platform(platform)] = count
	}
	return stats, rows.Err()
}
