package repositories

import (
	"context"
	"time"

	"feedstudio/internal/domain/models"
)

// ContentRepository defines data access for live content documents.
// Documents are created by the upstream generation pipeline; the editing
// core only reads them and moves the live body pointer forward.
type ContentRepository interface {
	// Create inserts a new document (generation pipeline and tests)
	Create(ctx context.Context, doc *models.ContentDocument) error

	// GetByID retrieves a document, wrapping domain.ErrNotFound when absent
	GetByID(ctx context.Context, id string) (*models.ContentDocument, error)

	// UpdateBody moves the live body pointer and the updated_at timestamp.
	// It must only be called after the corresponding version row is durable.
	UpdateBody(ctx context.Context, id, body string, updatedAt time.Time) error
}

// VersionRepository defines data access for the append-only version history.
type VersionRepository interface {
	// Create inserts an immutable version row. A duplicate
	// (content_id, version) pair wraps domain.ErrConflict so the caller
	// can recompute the next version and retry.
	Create(ctx context.Context, v *models.ContentVersion) error

	// LatestByContent returns the highest-numbered version for a document,
	// or (nil, nil) when no versions exist yet.
	LatestByContent(ctx context.Context, contentID string) (*models.ContentVersion, error)

	// ListByContent returns all versions for a document, newest first.
	ListByContent(ctx context.Context, contentID string) ([]models.ContentVersion, error)
}
