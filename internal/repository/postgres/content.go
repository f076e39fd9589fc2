package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"feedstudio/internal/domain"
	"feedstudio/internal/domain/models"
	"feedstudio/internal/domain/repositories"
)

// PostgresContentRepository implements the ContentRepository interface
type PostgresContentRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
	logger *slog.Logger
}

// NewContentRepository creates a new content repository
func NewContentRepository(config *RepositoryConfig) repositories.ContentRepository {
	return &PostgresContentRepository{
		pool:   config.Pool,
		tables: config.Tables,
		logger: config.Logger,
	}
}

// Create inserts a new content document
func (r *PostgresContentRepository) Create(ctx context.Context, doc *models.ContentDocument) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (id, title, edited_body, original_body, outline, topic_slug, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, r.tables.Contents)

	executor := GetExecutor(ctx, r.pool)
	_, err := executor.Exec(ctx, query,
		doc.ID,
		doc.Title,
		doc.EditedBody,
		doc.OriginalBody,
		doc.Outline,
		doc.TopicSlug,
		doc.CreatedAt,
		doc.UpdatedAt,
	)
	if err != nil {
		if IsPgDuplicateError(err) {
			return fmt.Errorf("content %s already exists: %w", doc.ID, domain.ErrConflict)
		}
		return fmt.Errorf("create content: %w", err)
	}

	return nil
}

// GetByID retrieves a content document by ID
func (r *PostgresContentRepository) GetByID(ctx context.Context, id string) (*models.ContentDocument, error) {
	query := fmt.Sprintf(`
		SELECT id, title, edited_body, original_body, outline, topic_slug, created_at, updated_at
		FROM %s
		WHERE id = $1
	`, r.tables.Contents)

	var doc models.ContentDocument
	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query, id).Scan(
		&doc.ID,
		&doc.Title,
		&doc.EditedBody,
		&doc.OriginalBody,
		&doc.Outline,
		&doc.TopicSlug,
		&doc.CreatedAt,
		&doc.UpdatedAt,
	)
	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("content %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get content: %w", err)
	}

	return &doc, nil
}

// UpdateBody moves the live body pointer and timestamp
func (r *PostgresContentRepository) UpdateBody(ctx context.Context, id, body string, updatedAt time.Time) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET edited_body = $2, updated_at = $3
		WHERE id = $1
	`, r.tables.Contents)

	executor := GetExecutor(ctx, r.pool)
	tag, err := executor.Exec(ctx, query, id, body, updatedAt)
	if err != nil {
		return fmt.Errorf("update content body: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("content %s: %w", id, domain.ErrNotFound)
	}

	return nil
}
