package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/consentchain/consentchain/internal/common"
	sc "github.com/consentchain/consentchain/internal/server/config"
	"github.com/consentchain/consentchain/internal/server/models"
	"github.com/consentchain/consentchain/internal/server/repositories/repomanager"
)

// Decision is the outcome of an access evaluation.
type Decision string

const (
	DecisionOwner   Decision = "owner"
	DecisionGranted Decision = "granted"
)

// timeNow is a seam for tests that need to move the clock.
var timeNow = time.Now

// AccessService decides, fresh on every attempt, whether a requester may
// fetch a file. Nothing is cached between attempts; the grant row is the
// single source of truth and expiry is evaluated against the wall clock at
// decision time.
type AccessService struct {
	blobStore
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewAccessService(db *sql.DB, m repomanager.RepositoryManager, cfg *sc.Config) *AccessService {
	return &AccessService{
		blobStore:   blobStore{config: cfg},
		db:          db,
		repomanager: m,
	}
}

// Authorize evaluates (requester, file) and records the side effects of the
// outcome:
//
//   - the owner always passes, with a download event and no audit entry;
//   - a live grant passes, with a download event;
//   - a missing grant fails with ErrNoAccess and no side effect;
//   - a grant past its deadline fails with ErrGrantExpired and appends an
//     "expired" audit event on every attempt. The grant row is left in
//     place, so a later revoke still works and a later attempt re-evaluates
//     identically.
//
// A grant whose deadline equals the evaluation instant is still valid.
func (s *AccessService) Authorize(ctx context.Context, requesterID, fileID string) (Decision, *models.File, error) {

	fileRepo := s.repomanager.Files(s.db)

	file, err := fileRepo.GetByID(ctx, fileID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", nil, common.ErrFileNotFound
		}
		return "", nil, fmt.Errorf("error resolving file: %w", err)
	}

	if file.OwnerID == requesterID {
		if err := s.repomanager.Downloads(s.db).Create(ctx, file.ID, requesterID); err != nil {
			return "", nil, fmt.Errorf("error recording download: %w", err)
		}
		return DecisionOwner, file, nil
	}

	grant, err := s.repomanager.Grants(s.db).Find(ctx, file.OwnerID, requesterID, file.ID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", nil, common.ErrNoAccess
		}
		return "", nil, fmt.Errorf("error resolving grant: %w", err)
	}

	if grant.Expired(timeNow()) {
		// One audit row per denied attempt: N retries leave N rows.
		err := s.repomanager.Audit(s.db).Create(ctx, &models.AuditEvent{
			UserID:   grant.FromUserID,
			FileID:   file.ID,
			Action:   models.AuditActionExpired,
			ToUserID: &requesterID,
		})
		if err != nil {
			return "", nil, fmt.Errorf("error recording expiry: %w", err)
		}
		return "", nil, common.ErrGrantExpired
	}

	if err := s.repomanager.Downloads(s.db).Create(ctx, file.ID, requesterID); err != nil {
		return "", nil, fmt.Errorf("error recording download: %w", err)
	}

	return DecisionGranted, file, nil
}

// Download authorizes the requester and, on success, returns a temporary
// fetchable URL for the file contents.
func (s *AccessService) Download(ctx context.Context, requesterID, fileID string) (Decision, string, error) {

	decision, file, err := s.Authorize(ctx, requesterID, fileID)
	if err != nil {
		return "", "", err
	}

	url, err := s.PresignedGetURL(ctx, file.URL)
	if err != nil {
		return "", "", fmt.Errorf("error presigning download: %w", err)
	}

	return decision, url, nil
}
