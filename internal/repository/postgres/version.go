package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"feedstudio/internal/domain"
	"feedstudio/internal/domain/models"
	"feedstudio/internal/domain/repositories"
)

// PostgresVersionRepository implements the VersionRepository interface.
// The content_versions table carries a UNIQUE (content_id, version)
// constraint; that constraint is what turns a lost race between two
// concurrent saves into a retryable conflict instead of a corrupted
// version sequence.
type PostgresVersionRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
	logger *slog.Logger
}

// NewVersionRepository creates a new version repository
func NewVersionRepository(config *RepositoryConfig) repositories.VersionRepository {
	return &PostgresVersionRepository{
		pool:   config.Pool,
		tables: config.Tables,
		logger: config.Logger,
	}
}

// Create inserts an immutable version row
func (r *PostgresVersionRepository) Create(ctx context.Context, v *models.ContentVersion) error {
	changes, err := encodeChanges(v.Changes)
	if err != nil {
		return fmt.Errorf("encode change list: %w", err)
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (id, content_id, version, title, body, change_type, changes_count,
			word_count, char_count, edited_by, session_id, time_spent_ms, changes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`, r.tables.ContentVersions)

	executor := GetExecutor(ctx, r.pool)
	_, err = executor.Exec(ctx, query,
		v.ID,
		v.ContentID,
		v.Version,
		v.Title,
		v.Body,
		v.ChangeType,
		v.ChangesCount,
		v.WordCount,
		v.CharCount,
		v.EditedBy,
		v.SessionID,
		v.TimeSpentMS,
		changes,
		v.CreatedAt,
	)
	if err != nil {
		if IsPgDuplicateError(err) {
			return fmt.Errorf("version %d for content %s already written: %w",
				v.Version, v.ContentID, domain.ErrConflict)
		}
		return fmt.Errorf("insert version: %w", err)
	}

	return nil
}

// LatestByContent returns the highest-numbered version, or (nil, nil)
// when the document has no history yet.
func (r *PostgresVersionRepository) LatestByContent(ctx context.Context, contentID string) (*models.ContentVersion, error) {
	query := fmt.Sprintf(`
		SELECT id, content_id, version, title, body, change_type, changes_count,
			word_count, char_count, edited_by, session_id, time_spent_ms, changes, created_at
		FROM %s
		WHERE content_id = $1
		ORDER BY version DESC
		LIMIT 1
	`, r.tables.ContentVersions)

	executor := GetExecutor(ctx, r.pool)
	row := executor.QueryRow(ctx, query, contentID)

	v, err := scanVersion(row)
	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("latest version: %w", err)
	}

	return v, nil
}

// ListByContent returns all versions for a document, newest first
func (r *PostgresVersionRepository) ListByContent(ctx context.Context, contentID string) ([]models.ContentVersion, error) {
	query := fmt.Sprintf(`
		SELECT id, content_id, version, title, body, change_type, changes_count,
			word_count, char_count, edited_by, session_id, time_spent_ms, changes, created_at
		FROM %s
		WHERE content_id = $1
		ORDER BY version DESC
	`, r.tables.ContentVersions)

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, contentID)
	if err != nil {
		return nil, fmt.Errorf("list versions: %w", err)
	}
	defer rows.Close()

	var versions []models.ContentVersion
	for rows.Next() {
		v, err := scanVersion(rows)
		if err != nil {
			return nil, fmt.Errorf("list versions: %w", err)
		}
		versions = append(versions, *v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list versions: %w", err)
	}

	return versions, nil
}

// rowScanner covers pgx.Row and pgx.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanVersion(row rowScanner) (*models.ContentVersion, error) {
	var v models.ContentVersion
	var changes []byte

	err := row.Scan(
		&v.ID,
		&v.ContentID,
		&v.Version,
		&v.Title,
		&v.Body,
		&v.ChangeType,
		&v.ChangesCount,
		&v.WordCount,
		&v.CharCount,
		&v.EditedBy,
		&v.SessionID,
		&v.TimeSpentMS,
		&changes,
		&v.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if len(changes) > 0 {
		if err := json.Unmarshal(changes, &v.Changes); err != nil {
			return nil, fmt.Errorf("decode change list: %w", err)
		}
	}

	return &v, nil
}

// encodeChanges serializes the change list for the JSONB column.
// A nil list is stored as an empty array so the history round-trips.
func encodeChanges(changes []models.ChangeDescriptor) ([]byte, error) {
	if changes == nil {
		changes = []models.ChangeDescriptor{}
	}
	return json.Marshal(changes)
}
