package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/consentchain/consentchain/internal/common"
	sc "github.com/consentchain/consentchain/internal/server/config"
	"github.com/consentchain/consentchain/internal/server/models"
	"github.com/consentchain/consentchain/internal/server/repositories/repomanager"
)

// FileService handles file metadata: registration of uploads and the
// owner/grantee listing views. File bytes never pass through the service;
// clients move them with presigned URLs.
type FileService struct {
	blobStore
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewFileService(db *sql.DB, m repomanager.RepositoryManager, cfg *sc.Config) *FileService {
	return &FileService{
		blobStore:   blobStore{config: cfg},
		db:          db,
		repomanager: m,
	}
}

// Upload registers file metadata for the owner and returns the stored row
// together with a presigned PUT URL for the contents. The file row is
// immutable afterwards.
func (s *FileService) Upload(ctx context.Context, ownerID, filename string) (*models.File, string, error) {

	key, putURL, err := s.PresignedPutURL(ctx)
	if err != nil {
		return nil, "", fmt.Errorf("error presigning upload: %w", err)
	}

	repo := s.repomanager.Files(s.db)

	file, err := repo.Create(ctx, &models.File{
		Name:    filename,
		URL:     key,
		OwnerID: ownerID,
	})
	if err != nil {
		return nil, "", fmt.Errorf("error creating file: %w", err)
	}

	return file, putURL, nil
}

// MyFiles lists the files the user owns, in upload order.
func (s *FileService) MyFiles(ctx context.Context, ownerID string) ([]*models.File, error) {

	repo := s.repomanager.Files(s.db)

	result, err := repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("error listing files: %w", err)
	}

	return result, nil
}

// SharedWithMe lists files the user can currently fetch through grants.
// Expired grants drop out of this view without being deleted.
func (s *FileService) SharedWithMe(ctx context.Context, userID string) ([]*models.SharedFile, error) {

	repo := s.repomanager.Grants(s.db)

	result, err := repo.ListSharedWithUser(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("error listing shared files: %w", err)
	}

	return result, nil
}
