// Package repomanager provides a concrete RepositoryManager for PostgreSQL,
// wiring together repository constructors and database migrations (via goose).
package repomanager

import (
	"context"
	"database/sql"

	"github.com/consentchain/consentchain/internal/dbx"
	"github.com/consentchain/consentchain/internal/server/migrations"
	"github.com/consentchain/consentchain/internal/server/repositories/audit"
	"github.com/consentchain/consentchain/internal/server/repositories/downloads"
	"github.com/consentchain/consentchain/internal/server/repositories/files"
	"github.com/consentchain/consentchain/internal/server/repositories/grants"
	"github.com/consentchain/consentchain/internal/server/repositories/users"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

// PostgresRepositoryManager vends PostgreSQL-backed repository
// implementations and exposes a schema migration hook.
type PostgresRepositoryManager struct{}

// NewPostgresRepositoryManager constructs a PostgreSQL-backed RepositoryManager.
func NewPostgresRepositoryManager() RepositoryManager {
	return &PostgresRepositoryManager{}
}

// Users returns a users.Repository bound to the provided DBTX.
func (m *PostgresRepositoryManager) Users(db dbx.DBTX) users.Repository {
	return users.NewPostgresRepository(db)
}

// Files returns a files.Repository bound to the provided DBTX.
func (m *PostgresRepositoryManager) Files(db dbx.DBTX) files.Repository {
	return files.NewPostgresRepository(db)
}

// Grants returns a grants.Repository bound to the provided DBTX.
func (m *PostgresRepositoryManager) Grants(db dbx.DBTX) grants.Repository {
	return grants.NewPostgresRepository(db)
}

// Downloads returns a downloads.Repository bound to the provided DBTX.
func (m *PostgresRepositoryManager) Downloads(db dbx.DBTX) downloads.Repository {
	return downloads.NewPostgresRepository(db)
}

// Audit returns an audit.Repository bound to the provided DBTX.
func (m *PostgresRepositoryManager) Audit(db dbx.DBTX) audit.Repository {
	return audit.NewPostgresRepository(db)
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// RunMigrations sets up goose with the embedded migrations and runs them
// against the provided database connection.
func (m *PostgresRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("pgx"); err != nil {
		return err
	}
	if err := gooseUpContext(ctx, db, "."); err != nil {
		return err
	}
	return nil
}
