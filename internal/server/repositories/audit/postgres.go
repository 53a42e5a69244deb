// Package audit provides the PostgreSQL-backed, append-only repository for
// permission-affecting events (granted, revoked, expired).
package audit

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

func (r *PostgresRepository) Create(ctx context.Context, event *models.AuditEvent) error {

	query :=
		`INSERT INTO audit_events (user_id, file_id, action, to_user_id)
		 VALUES ($1, $2, $3, $4)
		 `

	_, err := r.db.ExecContext(ctx, query,
		event.UserID, event.FileID, string(event.Action), event.ToUserID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

func (r *PostgresRepository) ListLogsByFile(ctx context.Context, fileID string) ([]*models.AuditLog, error) {
	query :=
		`SELECT a.action, actor.email, grantee.email, a.created_at
		 FROM audit_events a
		 JOIN users actor ON actor.id = a.user_id
		 LEFT JOIN users grantee ON grantee.id = a.to_user_id
		 WHERE a.file_id = $1
		 ORDER BY a.created_at DESC
		 `

	rows, err := r.db.QueryContext(ctx, query, fileID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.AuditLog
	for rows.Next() {
		var item models.AuditLog
		var action string
		if err := rows.Scan(&action, &item.By, &item.To, &item.At); err != nil {
			return nil, err
		}
		item.Action = models.AuditAction(action)
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
