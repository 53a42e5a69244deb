// Package downloads provides the PostgreSQL-backed, append-only repository
// for download events.
package downloads

import (
	"context"
	"fmt"

	"github.com/consentchain/consentchain/internal/dbx"
	"github.com/consentchain/consentchain/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, fileID, userID string) error {

	query :=
		`INSERT INTO download_events (file_id, user_id)
		 VALUES ($1, $2)
		 `

	if _, err := r.db.ExecContext(ctx, query, fileID, userID); err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

func (r *PostgresRepository) ListLogsByFile(ctx context.Context, fileID string) ([]*models.DownloadLog, error) {
	query :=
		`SELECT u.email, d.created_at
		 FROM download_events d
		 JOIN users u ON u.id = d.user_id
		 WHERE d.file_id = $1
		 ORDER BY d.created_at DESC
		 `

	rows, err := r.db.QueryContext(ctx, query, fileID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.DownloadLog
	for rows.Next() {
		var item models.DownloadLog
		if err := rows.Scan(&item.By, &item.At); err != nil {
			return nil, err
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *PostgresRepository) ListByOwner(ctx context.Context, ownerID string) ([]*models.DownloadEvent, error) {
	query :=
		`SELECT d.id, d.file_id, d.user_id, d.created_at
		 FROM download_events d
		 JOIN files f ON f.id = d.file_id
		 WHERE f.owner_id = $1
		 ORDER BY d.created_at
		 `

	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.DownloadEvent
	for rows.Next() {
		var item models.DownloadEvent
		if err := rows.Scan(&item.ID, &item.FileID, &item.UserID, &item.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
