package repomanager

import (
	"context"
	"database/sql"

	"github.com/consentchain/consentchain/internal/dbx"
	"github.com/consentchain/consentchain/internal/server/repositories/audit"
	"github.com/consentchain/consentchain/internal/server/repositories/downloads"
	"github.com/consentchain/consentchain/internal/server/repositories/files"
	"github.com/consentchain/consentchain/internal/server/repositories/grants"
	"github.com/consentchain/consentchain/internal/server/repositories/users"
)

// RepositoryManager vends repository implementations bound to a DBTX, so a
// service can run several repositories against one transaction.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Files(db dbx.DBTX) files.Repository
	Grants(db dbx.DBTX) grants.Repository
	Downloads(db dbx.DBTX) downloads.Repository
	Audit(db dbx.DBTX) audit.Repository
}
