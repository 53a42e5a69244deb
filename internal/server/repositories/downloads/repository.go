package downloads

import (
	"context"

	"github.com/consentchain/consentchain/internal/server/models"
)

type Repository interface {
	// Create appends one download event. Events are never updated or
	// deleted.
	Create(ctx context.Context, fileID, userID string) error
	// ListLogsByFile returns the file's download history newest-first,
	// joined with the downloader's email.
	ListLogsByFile(ctx context.Context, fileID string) ([]*models.DownloadLog, error)
	// ListByOwner returns every download event across the owner's files,
	// raw, for the analytics fold.
	ListByOwner(ctx context.Context, ownerID string) ([]*models.DownloadEvent, error)
}
