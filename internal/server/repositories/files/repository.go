package files

import (
	"context"

	"github.com/consentchain/consentchain/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, file *models.File) (*models.File, error)
	GetByID(ctx context.Context, id string) (*models.File, error)
	// ListByOwner returns the owner's files in upload order. Analytics and
	// listing views rely on this order being stable.
	ListByOwner(ctx context.Context, ownerID string) ([]*models.File, error)
}
