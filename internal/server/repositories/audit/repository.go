package audit

import (
	"context"

	"github.com/consentchain/consentchain/internal/server/models"
)

type Repository interface {
	// Create appends one audit event. The trail is append-only; nothing
	// updates or deletes rows.
	Create(ctx context.Context, event *models.AuditEvent) error
	// ListLogsByFile returns the file's audit trail newest-first, joined
	// with the acting user's and grantee's emails.
	ListLogsByFile(ctx context.Context, fileID string) ([]*models.AuditLog, error)
}
