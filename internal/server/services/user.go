// Package services implements the business rules of the service: grant
// lifecycle, access decisions, timelines and analytics. Services talk to
// storage through repositories vended by a RepositoryManager so multi-write
// operations can share one transaction.
package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/consentchain/consentchain/internal/server/models"
	"github.com/consentchain/consentchain/internal/server/repositories/repomanager"
)

// UserService maintains identity rows. Authentication happens at the
// identity provider; this service only records who has shown up.
type UserService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewUserService(db *sql.DB, m repomanager.RepositoryManager) *UserService {
	return &UserService{db: db, repomanager: m}
}

// EnsureUser upserts the principal carried by an identity-provider token.
// Called on every authenticated request; the first call creates the row.
func (s *UserService) EnsureUser(ctx context.Context, email, name string) (*models.User, error) {

	repo := s.repomanager.Users(s.db)

	user, err := repo.UpsertByEmail(ctx, email, name)
	if err != nil {
		return nil, fmt.Errorf("error upserting user: %w", err)
	}

	return user, nil
}
