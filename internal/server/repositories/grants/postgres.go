// Package grants provides the PostgreSQL-backed repository for access
// grants. A grant row stays in place after its deadline passes; expiry is a
// decision-time concept, so only revoke deletes rows.
package grants

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/consentchain/consentchain/internal/common"
	"github.com/consentchain/consentchain/internal/dbx"
	"github.com/consentchain/consentchain/internal/server/models"
	"github.com/jackc/pgx/v5/pgconn"
)

// pgUniqueViolation is the Postgres error code for unique_violation.
const pgUniqueViolation = "23505"

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, grant *models.AccessGrant) (*models.AccessGrant, error) {

	query :=
		`INSERT INTO access_grants (from_user_id, to_user_id, file_id, expires_at)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		grant.FromUserID, grant.ToUserID, grant.FileID, grant.ExpiresAt).
		Scan(&grant.ID, &grant.CreatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return nil, common.ErrAlreadyGranted
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return grant, nil
}

func (r *PostgresRepository) Find(ctx context.Context, fromUserID, toUserID, fileID string) (*models.AccessGrant, error) {
	query :=
		`SELECT id, from_user_id, to_user_id, file_id, expires_at, created_at FROM access_grants
		 WHERE from_user_id = $1 AND to_user_id = $2 AND file_id = $3
		 `

	grant := &models.AccessGrant{}
	err := r.db.QueryRowContext(ctx, query, fromUserID, toUserID, fileID).
		Scan(&grant.ID, &grant.FromUserID, &grant.ToUserID, &grant.FileID, &grant.ExpiresAt, &grant.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return grant, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, fromUserID, toUserID, fileID string) error {
	query :=
		`DELETE FROM access_grants
		 WHERE from_user_id = $1 AND to_user_id = $2 AND file_id = $3
		 `

	res, err := r.db.ExecContext(ctx, query, fromUserID, toUserID, fileID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}

	return nil
}

func (r *PostgresRepository) ListSharedWithUser(ctx context.Context, toUserID string) ([]*models.SharedFile, error) {
	query :=
		`SELECT f.id, f.name, u.name
		 FROM access_grants g
		 JOIN files f ON f.id = g.file_id
		 JOIN users u ON u.id = g.from_user_id
		 WHERE g.to_user_id = $1 AND (g.expires_at IS NULL OR g.expires_at >= now())
		 ORDER BY g.created_at DESC
		 `

	rows, err := r.db.QueryContext(ctx, query, toUserID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.SharedFile
	for rows.Next() {
		var item models.SharedFile
		if err := rows.Scan(&item.FileID, &item.FileName, &item.Owner); err != nil {
			return nil, err
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
