package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/consentchain/consentchain/internal/common"
	"github.com/consentchain/consentchain/internal/server/config"
	"github.com/consentchain/consentchain/internal/server/models"
)

func newFileService(t *testing.T, m *fakeRepoManager) *FileService {
	t.Helper()
	db, _ := newSQLMockDB(t)
	cfg := &config.Config{}
	cfg.LoadDefaults()
	return NewFileService(db, m, cfg)
}

func TestUpload_CreatesFileWithStorageKey(t *testing.T) {
	stubPresign(t, "https://signed.example")

	m := newFakeRepoManager()
	svc := newFileService(t, m)

	file, putURL, err := svc.Upload(context.Background(), "u-owner", "report.pdf")
	if err != nil {
		t.Fatalf("Upload error: %v", err)
	}

	if file.ID != "f-new" || file.Name != "report.pdf" || file.OwnerID != "u-owner" {
		t.Fatalf("unexpected file: %+v", file)
	}
	if !strings.HasPrefix(file.URL, "files/") {
		t.Fatalf("expected storage key as reference, got %q", file.URL)
	}
	if !strings.HasPrefix(putURL, "https://signed.example/files/") {
		t.Fatalf("unexpected put URL: %q", putURL)
	}
}

func TestUpload_CreateError(t *testing.T) {
	stubPresign(t, "https://signed.example")

	m := newFakeRepoManager()
	m.files.createErr = errors.New("db down")
	svc := newFileService(t, m)

	_, _, err := svc.Upload(context.Background(), "u-owner", "report.pdf")
	if err == nil || !strings.Contains(err.Error(), "error creating file") {
		t.Fatalf("expected wrapped create error, got %v", err)
	}
}

func TestMyFiles_ReturnsListingOrder(t *testing.T) {
	m := newFakeRepoManager()
	m.files.listOut = []*models.File{
		{ID: "f-1", Name: "a.pdf"},
		{ID: "f-2", Name: "b.pdf"},
	}
	svc := newFileService(t, m)

	got, err := svc.MyFiles(context.Background(), "u-owner")
	if err != nil {
		t.Fatalf("MyFiles error: %v", err)
	}
	if len(got) != 2 || got[0].ID != "f-1" {
		t.Fatalf("unexpected files: %+v", got)
	}
}

func TestSharedWithMe_Passthrough(t *testing.T) {
	m := newFakeRepoManager()
	m.grants.sharedOut = []*models.SharedFile{
		{FileID: "f-1", FileName: "report.pdf", Owner: "Alice"},
	}
	svc := newFileService(t, m)

	got, err := svc.SharedWithMe(context.Background(), "u-b")
	if err != nil {
		t.Fatalf("SharedWithMe error: %v", err)
	}
	if len(got) != 1 || got[0].Owner != "Alice" {
		t.Fatalf("unexpected shared files: %+v", got)
	}
}

func TestSharedWithMe_NothingShared(t *testing.T) {
	m := newFakeRepoManager()
	m.grants.sharedErr = common.ErrorNotFound
	svc := newFileService(t, m)

	got, err := svc.SharedWithMe(context.Background(), "u-b")
	if err != nil {
		t.Fatalf("SharedWithMe error: %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil, got %+v", got)
	}
}
