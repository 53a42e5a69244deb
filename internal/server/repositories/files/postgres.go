// Package files provides the PostgreSQL-backed repository for file metadata.
// Rows are immutable after creation; the service never updates or deletes
// them.
package files

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/consentchain/consentchain/internal/common"
	"github.com/consentchain/consentchain/internal/dbx"
	"github.com/consentchain/consentchain/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, file *models.File) (*models.File, error) {

	query :=
		`INSERT INTO files (name, url, owner_id)
		 VALUES ($1, $2, $3)
		 RETURNING id, created_at
		 `

	err := r.db.QueryRowContext(ctx, query, file.Name, file.URL, file.OwnerID).
		Scan(&file.ID, &file.CreatedAt)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return file, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.File, error) {
	query :=
		`SELECT id, name, url, owner_id, created_at FROM files
		 WHERE id = $1
		 `

	file := &models.File{}
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&file.ID, &file.Name, &file.URL, &file.OwnerID, &file.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return file, nil
}

func (r *PostgresRepository) ListByOwner(ctx context.Context, ownerID string) ([]*models.File, error) {
	query :=
		`SELECT id, name, url, owner_id, created_at FROM files
		 WHERE owner_id = $1
		 ORDER BY created_at, id
		 `

	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.File
	for rows.Next() {
		var item models.File
		if err := rows.Scan(&item.ID, &item.Name, &item.URL, &item.OwnerID, &item.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
