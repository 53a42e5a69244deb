package grants

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/consentchain/consentchain/internal/common"
	"github.com/consentchain/consentchain/internal/server/models"
	"github.com/jackc/pgx/v5/pgconn"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

func TestCreate_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	expires := time.Now().Add(24 * time.Hour)
	rows := sqlmock.NewRows([]string{"id", "created_at"}).AddRow("g-1", time.Now())
	mock.ExpectQuery(`INSERT\s+INTO\s+access_grants\s*\(from_user_id,\s*to_user_id,\s*file_id,\s*expires_at\)`).
		WithArgs("u-owner", "u-grantee", "f-1", &expires).
		WillReturnRows(rows)

	g := &models.AccessGrant{FromUserID: "u-owner", ToUserID: "u-grantee", FileID: "f-1", ExpiresAt: &expires}
	got, err := repo.Create(context.Background(), g)
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if got.ID != "g-1" {
		t.Fatalf("unexpected grant: %+v", got)
	}
}

func TestCreate_UniqueViolationMapsToAlreadyGranted(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`INSERT\s+INTO\s+access_grants`).
		WillReturnError(&pgconn.PgError{Code: "23505"})

	g := &models.AccessGrant{FromUserID: "u-owner", ToUserID: "u-grantee", FileID: "f-1"}
	_, err := repo.Create(context.Background(), g)
	if !errors.Is(err, common.ErrAlreadyGranted) {
		t.Fatalf("expected ErrAlreadyGranted, got %v", err)
	}
}

func TestFind_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT\s+id,\s*from_user_id,\s*to_user_id,\s*file_id,\s*expires_at,\s*created_at\s+FROM\s+access_grants`).
		WithArgs("u-owner", "u-grantee", "f-1").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.Find(context.Background(), "u-owner", "u-grantee", "f-1")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("expected ErrorNotFound, got %v", err)
	}
}

func TestFind_ReturnsExpiryAsStored(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	// A grant past its deadline is still present in storage.
	expired := time.Now().Add(-time.Hour)
	rows := sqlmock.NewRows([]string{"id", "from_user_id", "to_user_id", "file_id", "expires_at", "created_at"}).
		AddRow("g-1", "u-owner", "u-grantee", "f-1", &expired, time.Now().Add(-25*time.Hour))
	mock.ExpectQuery(`SELECT\s+id,\s*from_user_id,\s*to_user_id,\s*file_id,\s*expires_at,\s*created_at\s+FROM\s+access_grants`).
		WithArgs("u-owner", "u-grantee", "f-1").
		WillReturnRows(rows)

	got, err := repo.Find(context.Background(), "u-owner", "u-grantee", "f-1")
	if err != nil {
		t.Fatalf("Find error: %v", err)
	}
	if got.ExpiresAt == nil || !got.Expired(time.Now()) {
		t.Fatalf("expected stored expired grant, got %+v", got)
	}
}

func TestDelete_RemovesRow(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`DELETE\s+FROM\s+access_grants`).
		WithArgs("u-owner", "u-grantee", "f-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.Delete(context.Background(), "u-owner", "u-grantee", "f-1"); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
}

func TestDelete_NoRowIsNotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`DELETE\s+FROM\s+access_grants`).
		WithArgs("u-owner", "u-grantee", "f-1").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), "u-owner", "u-grantee", "f-1")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("expected ErrorNotFound, got %v", err)
	}
}

func TestListSharedWithUser_ScansRows(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"id", "name", "name"}).
		AddRow("f-1", "report.pdf", "Alice").
		AddRow("f-2", "notes.txt", "Bob")
	mock.ExpectQuery(`SELECT\s+f\.id,\s*f\.name,\s*u\.name\s+FROM\s+access_grants\s+g`).
		WithArgs("u-grantee").
		WillReturnRows(rows)

	got, err := repo.ListSharedWithUser(context.Background(), "u-grantee")
	if err != nil {
		t.Fatalf("ListSharedWithUser error: %v", err)
	}
	if len(got) != 2 || got[0].FileName != "report.pdf" || got[1].Owner != "Bob" {
		t.Fatalf("unexpected shared files: %+v", got)
	}
}
