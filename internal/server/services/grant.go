package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/consentchain/consentchain/internal/common"
	"github.com/consentchain/consentchain/internal/dbx"
	"github.com/consentchain/consentchain/internal/server/models"
	"github.com/consentchain/consentchain/internal/server/repositories/repomanager"
)

// GrantService creates and deletes access grants and keeps the audit trail
// in step: every successful grant or revoke appends exactly one audit event,
// in the same transaction as the grant mutation.
type GrantService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewGrantService(db *sql.DB, m repomanager.RepositoryManager) *GrantService {
	return &GrantService{db: db, repomanager: m}
}

// resolveGrantTarget runs the checks shared by Grant and Revoke: the grantee
// email must resolve, the file must exist, and the caller must own it.
func (s *GrantService) resolveGrantTarget(ctx context.Context, ownerID, fileID, granteeEmail string) (*models.User, *models.File, error) {

	userRepo := s.repomanager.Users(s.db)
	fileRepo := s.repomanager.Files(s.db)

	grantee, err := userRepo.GetByEmail(ctx, granteeEmail)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, nil, common.ErrUserNotFound
		}
		return nil, nil, fmt.Errorf("error resolving grantee: %w", err)
	}

	file, err := fileRepo.GetByID(ctx, fileID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, nil, common.ErrFileNotFound
		}
		return nil, nil, fmt.Errorf("error resolving file: %w", err)
	}

	if file.OwnerID != ownerID {
		return nil, nil, common.ErrNotOwner
	}

	return grantee, file, nil
}

// Grant gives granteeEmail access to fileID, optionally until expiresAt.
// A second grant for the same triple fails with ErrAlreadyGranted; the
// caller must revoke first to change an expiry. The pre-insert existence
// check is best-effort — the table's unique constraint settles races.
func (s *GrantService) Grant(ctx context.Context, ownerID, fileID, granteeEmail string, expiresAt *time.Time) (string, error) {

	grantee, file, err := s.resolveGrantTarget(ctx, ownerID, fileID, granteeEmail)
	if err != nil {
		return "", err
	}

	grantRepo := s.repomanager.Grants(s.db)

	_, err = grantRepo.Find(ctx, ownerID, grantee.ID, file.ID)
	if err == nil {
		return "", common.ErrAlreadyGranted
	}
	if !errors.Is(err, common.ErrorNotFound) {
		return "", fmt.Errorf("error checking existing grant: %w", err)
	}

	var grantID string

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {

		grant, err := s.repomanager.Grants(tx).Create(ctx, &models.AccessGrant{
			FromUserID: ownerID,
			ToUserID:   grantee.ID,
			FileID:     file.ID,
			ExpiresAt:  expiresAt,
		})
		if err != nil {
			return err
		}
		grantID = grant.ID

		return s.repomanager.Audit(tx).Create(ctx, &models.AuditEvent{
			UserID:   ownerID,
			FileID:   file.ID,
			Action:   models.AuditActionGranted,
			ToUserID: &grantee.ID,
		})
	})

	if err != nil {
		if errors.Is(err, common.ErrAlreadyGranted) {
			return "", common.ErrAlreadyGranted
		}
		return "", fmt.Errorf("error creating grant: %w", err)
	}

	return grantID, nil
}

// Revoke deletes the grant for (owner, grantee, file) and appends a
// "revoked" audit event. Deletion is unconditional: a grant past its
// deadline is still revocable, and still audited as revoked. ErrNoActiveGrant
// when no grant row exists, whether never granted or already revoked.
func (s *GrantService) Revoke(ctx context.Context, ownerID, fileID, granteeEmail string) error {

	grantee, file, err := s.resolveGrantTarget(ctx, ownerID, fileID, granteeEmail)
	if err != nil {
		return err
	}

	grantRepo := s.repomanager.Grants(s.db)

	_, err = grantRepo.Find(ctx, ownerID, grantee.ID, file.ID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrNoActiveGrant
		}
		return fmt.Errorf("error checking existing grant: %w", err)
	}

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {

		if err := s.repomanager.Grants(tx).Delete(ctx, ownerID, grantee.ID, file.ID); err != nil {
			return err
		}

		return s.repomanager.Audit(tx).Create(ctx, &models.AuditEvent{
			UserID:   ownerID,
			FileID:   file.ID,
			Action:   models.AuditActionRevoked,
			ToUserID: &grantee.ID,
		})
	})

	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			// Lost a race with a concurrent revoke.
			return common.ErrNoActiveGrant
		}
		return fmt.Errorf("error revoking grant: %w", err)
	}

	return nil
}
