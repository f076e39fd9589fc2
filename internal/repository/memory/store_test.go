package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"feedstudio/internal/domain"
	"feedstudio/internal/domain/models"
)

func newDoc(id string) *models.ContentDocument {
	now := time.Now().UTC()
	return &models.ContentDocument{
		ID:           id,
		Title:        "Draft",
		OriginalBody: "original",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func newVersion(contentID string, version int, body string) *models.ContentVersion {
	return &models.ContentVersion{
		ID:         contentID + "-v" + body,
		ContentID:  contentID,
		Version:    version,
		Title:      "Draft",
		Body:       body,
		ChangeType: models.ChangeTypeManualSave,
		EditedBy:   "editor-1",
		SessionID:  "session_test",
		CreatedAt:  time.Now().UTC(),
	}
}

func TestCreateRejectsDuplicateID(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	if err := store.Create(ctx, newDoc("D1")); err != nil {
		t.Fatalf("first create: %v", err)
	}
	err := store.Create(ctx, newDoc("D1"))
	if !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("expected ErrConflict on duplicate, got: %v", err)
	}
}

func TestGetByIDCopiesEditedBody(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	if err := store.Create(ctx, newDoc("D1")); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := store.UpdateBody(ctx, "D1", "edited", time.Now().UTC()); err != nil {
		t.Fatalf("update body: %v", err)
	}

	doc, err := store.GetByID(ctx, "D1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	*doc.EditedBody = "mutated by caller"

	again, _ := store.GetByID(ctx, "D1")
	if *again.EditedBody != "edited" {
		t.Fatalf("stored body mutated through returned copy: %q", *again.EditedBody)
	}
}

func TestUpdateBodyUnknownDocument(t *testing.T) {
	store := NewStore()
	err := store.UpdateBody(context.Background(), "missing", "body", time.Now().UTC())
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got: %v", err)
	}
}

func TestCreateVersionRejectsDuplicateNumber(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	if err := store.CreateVersion(ctx, newVersion("D1", 1, "a")); err != nil {
		t.Fatalf("first version: %v", err)
	}
	err := store.CreateVersion(ctx, newVersion("D1", 1, "b"))
	if !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("expected ErrConflict on duplicate version number, got: %v", err)
	}

	// Same number on a different document is fine
	if err := store.CreateVersion(ctx, newVersion("D2", 1, "c")); err != nil {
		t.Fatalf("version for other document: %v", err)
	}
}

func TestLatestByContent(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	latest, err := store.LatestByContent(ctx, "D1")
	if err != nil {
		t.Fatalf("latest on empty history: %v", err)
	}
	if latest != nil {
		t.Fatalf("expected nil for empty history, got %+v", latest)
	}

	for i := 1; i <= 3; i++ {
		if err := store.CreateVersion(ctx, newVersion("D1", i, string(rune('a'+i)))); err != nil {
			t.Fatalf("create version %d: %v", i, err)
		}
	}

	latest, err = store.LatestByContent(ctx, "D1")
	if err != nil {
		t.Fatalf("latest: %v", err)
	}
	if latest == nil || latest.Version != 3 {
		t.Fatalf("latest = %+v, want version 3", latest)
	}
}

func TestListByContentNewestFirst(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	for i := 1; i <= 3; i++ {
		if err := store.CreateVersion(ctx, newVersion("D1", i, string(rune('a'+i)))); err != nil {
			t.Fatalf("create version %d: %v", i, err)
		}
	}

	rows, err := store.ListByContent(ctx, "D1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("len = %d, want 3", len(rows))
	}
	for i, want := range []int{3, 2, 1} {
		if rows[i].Version != want {
			t.Fatalf("rows[%d].Version = %d, want %d", i, rows[i].Version, want)
		}
	}
}
