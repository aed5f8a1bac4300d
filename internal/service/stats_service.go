package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/MelDxKviel/reels-downloader-bot/internal/domain"
	"github.com/MelDxKviel/reels-downloader-bot/internal/repository"
)

// StatsService records download attempts and serves aggregated views.
type StatsService struct {
	statsRepo repository.StatsRepository
	logger    *slog.Logger
}

// NewStatsService creates a new stats service.
func NewStatsService(statsRepo repository.StatsRepository, logger *slog.Logger) *StatsService {
	return &StatsService{statsRepo: statsRepo, logger: logger}
}

// RecordDownload appends one attempt to the download log. Failures are
// logged and swallowed: statistics never break a download.
func (s *StatsService) RecordDownload(ctx context.Context, userID int64, url string, p domain.Platform, success bool) {
	err := s.statsRepo.Record(ctx, domain.DownloadStat{
		UserID:   userID,
		Platform: p,
		URL:      url,
		Success:  success,
	})
	if err != nil {
		s.logger.Warn("failed to record download stat",
			"user_id", userID,
			"platform", p,
			"error", err,
		)
	}
}

// Overview aggregates global stats for all time plus the trailing day and
// week windows.
type Overview struct {
	AllTime *domain.GlobalStats `json:"all_time"`
	Last24h *domain.GlobalStats `json:"last_24h"`
	Last7d  *domain.GlobalStats `json:"last_7d"`
}

// Overview returns the global statistics overview.
func (s *StatsService) Overview(ctx context.Context) (*Overview, error) {
	allTime, err := s.statsRepo.GlobalStats(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("all-time stats: %w", err)
	}

	now := time.Now()
	daySince := now.Add(-24 * time.Hour)
	day, err := s.statsRepo.GlobalStats(ctx, &daySince)
	if err != nil {
		return nil, fmt.Errorf("24h stats: %w", err)
	}

	weekSince := now.Add(-7 * 24 * time.Hour)
	week, err := s.statsRepo.GlobalStats(ctx, &weekSince)
	if err != nil {
		return nil, fmt.Errorf("7d stats: %w", err)
	}

	return &Overview{AllTime: allTime, Last24h: day, Last7d: week}, nil
}

// UserStats returns the aggregated downloads for one user.
func (s *StatsService) UserStats(ctx context.Context, userID int64) (*domain.UserStats, error) {
	return s.statsRepo.UserStats(ctx, userID)
}
