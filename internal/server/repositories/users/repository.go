package users

import (
	"context"

	"github.com/consentchain/consentchain/internal/server/models"
)

type Repository interface {
	// UpsertByEmail inserts the user or, if the email is already known,
	// refreshes the display name. Returns the stored row either way.
	UpsertByEmail(ctx context.Context, email, name string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
}
