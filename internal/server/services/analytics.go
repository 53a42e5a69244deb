package services

import (
	"context"
	"database/sql"
	"fmt"
	"sort"

	"github.com/consentchain/consentchain/internal/server/models"
	"github.com/consentchain/consentchain/internal/server/repositories/repomanager"
)

// AnalyticsService folds download history into per-file and per-day counts
// for one owner. Read-only; no write path.
type AnalyticsService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewAnalyticsService(db *sql.DB, m repomanager.RepositoryManager) *AnalyticsService {
	return &AnalyticsService{db: db, repomanager: m}
}

// Summary aggregates downloads across every file the user owns.
//
// MostAccessed lists each owned file (zero counts included) sorted by count
// descending; ties keep file-listing order. AccessPattern groups downloads
// by UTC calendar date, ascending. The three views always reconcile:
// TotalDownloads == sum(MostAccessed counts) == sum(AccessPattern counts).
func (s *AnalyticsService) Summary(ctx context.Context, ownerID string) (*models.AnalyticsSummary, error) {

	ownedFiles, err := s.repomanager.Files(s.db).ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("error listing files: %w", err)
	}

	events, err := s.repomanager.Downloads(s.db).ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("error listing downloads: %w", err)
	}

	countsByFile := make(map[string]int)
	countsByDate := make(map[string]int)
	for _, e := range events {
		countsByFile[e.FileID]++
		countsByDate[e.CreatedAt.UTC().Format("2006-01-02")]++
	}

	summary := &models.AnalyticsSummary{
		TotalDownloads: len(events),
		MostAccessed:   make([]models.FileDownloadCount, 0, len(ownedFiles)),
		AccessPattern:  make([]models.DailyDownloadCount, 0, len(countsByDate)),
	}

	for _, f := range ownedFiles {
		summary.MostAccessed = append(summary.MostAccessed, models.FileDownloadCount{
			FileName:      f.Name,
			DownloadCount: countsByFile[f.ID],
		})
	}
	sort.SliceStable(summary.MostAccessed, func(i, j int) bool {
		return summary.MostAccessed[i].DownloadCount > summary.MostAccessed[j].DownloadCount
	})

	dates := make([]string, 0, len(countsByDate))
	for d := range countsByDate {
		dates = append(dates, d)
	}
	sort.Strings(dates)
	for _, d := range dates {
		summary.AccessPattern = append(summary.AccessPattern, models.DailyDownloadCount{
			Date:  d,
			Count: countsByDate[d],
		})
	}

	return summary, nil
}
