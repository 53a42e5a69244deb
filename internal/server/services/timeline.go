package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/consentchain/consentchain/internal/common"
	"github.com/consentchain/consentchain/internal/server/models"
	"github.com/consentchain/consentchain/internal/server/repositories/repomanager"
)

// TimelineService builds the owner-facing history of one file. It is a pure
// read-side projection over the download and audit tables.
type TimelineService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewTimelineService(db *sql.DB, m repomanager.RepositoryManager) *TimelineService {
	return &TimelineService{db: db, repomanager: m}
}

// Timeline returns the file's merged event history. Owner-only: any other
// caller gets ErrNotOwner.
//
// The result is the download block followed by the audit block, each
// newest-first as delivered by the store. The blocks are deliberately not
// interleaved into one global timestamp order; consumers that want a strict
// global order can sort on At.
func (s *TimelineService) Timeline(ctx context.Context, ownerID, fileID string) (*models.Timeline, error) {

	fileRepo := s.repomanager.Files(s.db)

	file, err := fileRepo.GetByID(ctx, fileID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrFileNotFound
		}
		return nil, fmt.Errorf("error resolving file: %w", err)
	}

	if file.OwnerID != ownerID {
		return nil, common.ErrNotOwner
	}

	downloadLogs, err := s.repomanager.Downloads(s.db).ListLogsByFile(ctx, file.ID)
	if err != nil {
		return nil, fmt.Errorf("error listing downloads: %w", err)
	}

	auditLogs, err := s.repomanager.Audit(s.db).ListLogsByFile(ctx, file.ID)
	if err != nil {
		return nil, fmt.Errorf("error listing audit events: %w", err)
	}

	timeline := &models.Timeline{
		Entries: make([]models.TimelineEntry, 0, len(downloadLogs)+len(auditLogs)),
	}

	for _, d := range downloadLogs {
		timeline.Entries = append(timeline.Entries, models.TimelineEntry{
			Type: "download",
			By:   d.By,
			At:   d.At,
		})
	}

	seenRevoked := make(map[string]bool)
	seenExpired := make(map[string]bool)

	for _, a := range auditLogs {
		timeline.Entries = append(timeline.Entries, models.TimelineEntry{
			Type: string(a.Action),
			By:   a.By,
			To:   a.To,
			At:   a.At,
		})

		if a.To == nil {
			continue
		}
		switch a.Action {
		case models.AuditActionRevoked:
			if !seenRevoked[*a.To] {
				seenRevoked[*a.To] = true
				timeline.RevokedEmails = append(timeline.RevokedEmails, *a.To)
			}
		case models.AuditActionExpired:
			if !seenExpired[*a.To] {
				seenExpired[*a.To] = true
				timeline.ExpiredEmails = append(timeline.ExpiredEmails, *a.To)
			}
		}
	}

	return timeline, nil
}
