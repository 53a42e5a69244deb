package services

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/consentchain/consentchain/internal/dbx"
	"github.com/consentchain/consentchain/internal/server/models"
	"github.com/consentchain/consentchain/internal/server/repositories/audit"
	"github.com/consentchain/consentchain/internal/server/repositories/downloads"
	"github.com/consentchain/consentchain/internal/server/repositories/files"
	"github.com/consentchain/consentchain/internal/server/repositories/grants"
	"github.com/consentchain/consentchain/internal/server/repositories/users"
)

// ---- helpers ----

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

// ---- fakes ----

type fakeUsersRepo struct {
	upsertOut *models.User
	upsertErr error

	byEmail map[string]*models.User
	byID    map[string]*models.User
	getErr  error
}

func (f *fakeUsersRepo) UpsertByEmail(ctx context.Context, email, name string) (*models.User, error) {
	return f.upsertOut, f.upsertErr
}

func (f *fakeUsersRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if u, ok := f.byEmail[email]; ok {
		return u, nil
	}
	return nil, f.getErr
}

func (f *fakeUsersRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	if u, ok := f.byID[id]; ok {
		return u, nil
	}
	return nil, f.getErr
}

type fakeFilesRepo struct {
	createOut *models.File
	createErr error

	byID   map[string]*models.File
	getErr error

	listOut []*models.File
	listErr error
}

func (f *fakeFilesRepo) Create(ctx context.Context, file *models.File) (*models.File, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	if f.createOut != nil {
		return f.createOut, nil
	}
	file.ID = "f-new"
	return file, nil
}

func (f *fakeFilesRepo) GetByID(ctx context.Context, id string) (*models.File, error) {
	if file, ok := f.byID[id]; ok {
		return file, nil
	}
	return nil, f.getErr
}

func (f *fakeFilesRepo) ListByOwner(ctx context.Context, ownerID string) ([]*models.File, error) {
	return f.listOut, f.listErr
}

type fakeGrantsRepo struct {
	createErr error
	created   []*models.AccessGrant

	findOut *models.AccessGrant
	findErr error

	delErr  error
	deleted [][3]string

	sharedOut []*models.SharedFile
	sharedErr error
}

func (f *fakeGrantsRepo) Create(ctx context.Context, g *models.AccessGrant) (*models.AccessGrant, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	g.ID = "g-new"
	f.created = append(f.created, g)
	return g, nil
}

func (f *fakeGrantsRepo) Find(ctx context.Context, fromUserID, toUserID, fileID string) (*models.AccessGrant, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	return f.findOut, nil
}

func (f *fakeGrantsRepo) Delete(ctx context.Context, fromUserID, toUserID, fileID string) error {
	if f.delErr != nil {
		return f.delErr
	}
	f.deleted = append(f.deleted, [3]string{fromUserID, toUserID, fileID})
	return nil
}

func (f *fakeGrantsRepo) ListSharedWithUser(ctx context.Context, toUserID string) ([]*models.SharedFile, error) {
	return f.sharedOut, f.sharedErr
}

type fakeDownloadsRepo struct {
	createErr error
	created   [][2]string

	logsOut []*models.DownloadLog
	logsErr error

	eventsOut []*models.DownloadEvent
	eventsErr error
}

func (f *fakeDownloadsRepo) Create(ctx context.Context, fileID, userID string) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, [2]string{fileID, userID})
	return nil
}

func (f *fakeDownloadsRepo) ListLogsByFile(ctx context.Context, fileID string) ([]*models.DownloadLog, error) {
	return f.logsOut, f.logsErr
}

func (f *fakeDownloadsRepo) ListByOwner(ctx context.Context, ownerID string) ([]*models.DownloadEvent, error) {
	return f.eventsOut, f.eventsErr
}

type fakeAuditRepo struct {
	createErr error
	created   []*models.AuditEvent

	logsOut []*models.AuditLog
	logsErr error
}

func (f *fakeAuditRepo) Create(ctx context.Context, e *models.AuditEvent) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, e)
	return nil
}

func (f *fakeAuditRepo) ListLogsByFile(ctx context.Context, fileID string) ([]*models.AuditLog, error) {
	return f.logsOut, f.logsErr
}

// fakeRepoManager hands out the same fakes regardless of the DBTX, so
// transactional and plain paths hit identical state.
type fakeRepoManager struct {
	users     *fakeUsersRepo
	files     *fakeFilesRepo
	grants    *fakeGrantsRepo
	downloads *fakeDownloadsRepo
	audit     *fakeAuditRepo
}

func newFakeRepoManager() *fakeRepoManager {
	return &fakeRepoManager{
		users:     &fakeUsersRepo{byEmail: map[string]*models.User{}, byID: map[string]*models.User{}},
		files:     &fakeFilesRepo{byID: map[string]*models.File{}},
		grants:    &fakeGrantsRepo{},
		downloads: &fakeDownloadsRepo{},
		audit:     &fakeAuditRepo{},
	}
}

func (m *fakeRepoManager) RunMigrations(ctx context.Context, db *sql.DB) error { return nil }

func (m *fakeRepoManager) Users(db dbx.DBTX) users.Repository         { return m.users }
func (m *fakeRepoManager) Files(db dbx.DBTX) files.Repository         { return m.files }
func (m *fakeRepoManager) Grants(db dbx.DBTX) grants.Repository       { return m.grants }
func (m *fakeRepoManager) Downloads(db dbx.DBTX) downloads.Repository { return m.downloads }
func (m *fakeRepoManager) Audit(db dbx.DBTX) audit.Repository         { return m.audit }
