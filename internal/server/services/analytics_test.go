package services

import (
	"context"
	"reflect"
	"testing"
	"time"

	"github.com/consentchain/consentchain/internal/server/models"
)

func TestSummary_TwoFilesTwoDates(t *testing.T) {
	db, _ := newSQLMockDB(t)
	m := newFakeRepoManager()

	m.files.listOut = []*models.File{
		{ID: "f-1", Name: "notes.txt", OwnerID: "u-owner"},
		{ID: "f-2", Name: "report.pdf", OwnerID: "u-owner"},
	}

	day1 := time.Date(2025, 6, 1, 23, 30, 0, 0, time.UTC)
	day2 := time.Date(2025, 6, 2, 8, 0, 0, 0, time.UTC)
	m.downloads.eventsOut = []*models.DownloadEvent{
		{ID: "d-1", FileID: "f-2", UserID: "u-b", CreatedAt: day1},
		{ID: "d-2", FileID: "f-2", UserID: "u-b", CreatedAt: day2},
		{ID: "d-3", FileID: "f-2", UserID: "u-c", CreatedAt: day2},
		{ID: "d-4", FileID: "f-1", UserID: "u-b", CreatedAt: day2},
	}

	svc := NewAnalyticsService(db, m)

	got, err := svc.Summary(context.Background(), "u-owner")
	if err != nil {
		t.Fatalf("Summary error: %v", err)
	}

	if got.TotalDownloads != 4 {
		t.Fatalf("expected 4 total downloads, got %d", got.TotalDownloads)
	}

	wantMost := []models.FileDownloadCount{
		{FileName: "report.pdf", DownloadCount: 3},
		{FileName: "notes.txt", DownloadCount: 1},
	}
	if !reflect.DeepEqual(got.MostAccessed, wantMost) {
		t.Fatalf("unexpected mostAccessed: %+v", got.MostAccessed)
	}

	wantPattern := []models.DailyDownloadCount{
		{Date: "2025-06-01", Count: 1},
		{Date: "2025-06-02", Count: 3},
	}
	if !reflect.DeepEqual(got.AccessPattern, wantPattern) {
		t.Fatalf("unexpected accessPattern: %+v", got.AccessPattern)
	}
}

func TestSummary_ViewsReconcile(t *testing.T) {
	db, _ := newSQLMockDB(t)
	m := newFakeRepoManager()

	m.files.listOut = []*models.File{
		{ID: "f-1", Name: "a"},
		{ID: "f-2", Name: "b"},
		{ID: "f-3", Name: "c"},
	}
	base := time.Date(2025, 5, 30, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 7; i++ {
		m.downloads.eventsOut = append(m.downloads.eventsOut, &models.DownloadEvent{
			FileID:    []string{"f-1", "f-2"}[i%2],
			CreatedAt: base.Add(time.Duration(i) * 11 * time.Hour),
		})
	}

	svc := NewAnalyticsService(db, m)

	got, err := svc.Summary(context.Background(), "u-owner")
	if err != nil {
		t.Fatalf("Summary error: %v", err)
	}

	sumFiles := 0
	for _, f := range got.MostAccessed {
		sumFiles += f.DownloadCount
	}
	sumDays := 0
	for _, d := range got.AccessPattern {
		sumDays += d.Count
	}
	if got.TotalDownloads != sumFiles || got.TotalDownloads != sumDays {
		t.Fatalf("views disagree: total=%d files=%d days=%d", got.TotalDownloads, sumFiles, sumDays)
	}
}

func TestSummary_ZeroCountFilesKeepListingOrder(t *testing.T) {
	db, _ := newSQLMockDB(t)
	m := newFakeRepoManager()

	m.files.listOut = []*models.File{
		{ID: "f-1", Name: "first.txt"},
		{ID: "f-2", Name: "second.txt"},
		{ID: "f-3", Name: "third.txt"},
	}
	m.downloads.eventsOut = []*models.DownloadEvent{
		{FileID: "f-2", CreatedAt: time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)},
	}

	svc := NewAnalyticsService(db, m)

	got, err := svc.Summary(context.Background(), "u-owner")
	if err != nil {
		t.Fatalf("Summary error: %v", err)
	}

	want := []models.FileDownloadCount{
		{FileName: "second.txt", DownloadCount: 1},
		{FileName: "first.txt", DownloadCount: 0},
		{FileName: "third.txt", DownloadCount: 0},
	}
	if !reflect.DeepEqual(got.MostAccessed, want) {
		t.Fatalf("unexpected mostAccessed: %+v", got.MostAccessed)
	}
}

func TestSummary_NoFiles(t *testing.T) {
	db, _ := newSQLMockDB(t)
	m := newFakeRepoManager()

	svc := NewAnalyticsService(db, m)

	got, err := svc.Summary(context.Background(), "u-owner")
	if err != nil {
		t.Fatalf("Summary error: %v", err)
	}
	if got.TotalDownloads != 0 || len(got.MostAccessed) != 0 || len(got.AccessPattern) != 0 {
		t.Fatalf("expected empty summary, got %+v", got)
	}
}
