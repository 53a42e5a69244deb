package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/consentchain/consentchain/internal/server/models"
)

func TestEnsureUser_ReturnsUpsertedRow(t *testing.T) {
	db, _ := newSQLMockDB(t)
	m := newFakeRepoManager()
	m.users.upsertOut = &models.User{ID: "u-1", Email: "a@x.com", Name: "Alice"}

	svc := NewUserService(db, m)

	got, err := svc.EnsureUser(context.Background(), "a@x.com", "Alice")
	if err != nil {
		t.Fatalf("EnsureUser error: %v", err)
	}
	if got.ID != "u-1" || got.Email != "a@x.com" {
		t.Fatalf("unexpected user: %+v", got)
	}
}

func TestEnsureUser_WrapsRepoError(t *testing.T) {
	db, _ := newSQLMockDB(t)
	m := newFakeRepoManager()
	m.users.upsertErr = errors.New("db down")

	svc := NewUserService(db, m)

	_, err := svc.EnsureUser(context.Background(), "a@x.com", "Alice")
	if err == nil || !strings.Contains(err.Error(), "error upserting user") {
		t.Fatalf("expected wrapped error, got %v", err)
	}
}
