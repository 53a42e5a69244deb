package grants

import (
	"context"

	"github.com/consentchain/consentchain/internal/server/models"
)

type Repository interface {
	// Create inserts a grant. The table's unique constraint on
	// (from_user_id, to_user_id, file_id) is the authoritative duplicate
	// guard; a violation surfaces as common.ErrAlreadyGranted.
	Create(ctx context.Context, grant *models.AccessGrant) (*models.AccessGrant, error)
	Find(ctx context.Context, fromUserID, toUserID, fileID string) (*models.AccessGrant, error)
	// Delete removes the grant for the triple regardless of expiry state.
	// common.ErrorNotFound when no row exists.
	Delete(ctx context.Context, fromUserID, toUserID, fileID string) error
	// ListSharedWithUser returns files the user can currently fetch through
	// a grant: expired grants are filtered out at read time, not deleted.
	ListSharedWithUser(ctx context.Context, toUserID string) ([]*models.SharedFile, error)
}
