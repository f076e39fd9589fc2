package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"feedstudio/internal/domain"
	"feedstudio/internal/domain/models"
	"feedstudio/internal/domain/repositories"
)

// Store keeps documents and their version history in-process. It backs the
// test suite and local development without Postgres, and implements the
// same atomicity contract as the SQL layer: ExecTx serializes whole
// save transactions, and duplicate version numbers are rejected with
// domain.ErrConflict.
type Store struct {
	txMu sync.Mutex // serializes ExecTx closures

	mu       sync.RWMutex
	docs     map[string]models.ContentDocument
	versions map[string][]models.ContentVersion // content ID -> versions in insert order
}

// NewStore initializes an empty in-memory store.
func NewStore() *Store {
	return &Store{
		docs:     make(map[string]models.ContentDocument),
		versions: make(map[string][]models.ContentVersion),
	}
}

// ExecTx runs fn while holding the store-wide transaction lock, so a
// concurrent save cannot interleave between its read and its write.
// There is no rollback: closures used with this store only read and
// append, and an append only happens as the closure's last step.
func (s *Store) ExecTx(ctx context.Context, fn repositories.TxFn) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()
	return fn(ctx)
}

// Create inserts a new content document.
func (s *Store) Create(ctx context.Context, doc *models.ContentDocument) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.docs[doc.ID]; exists {
		return fmt.Errorf("content %s already exists: %w", doc.ID, domain.ErrConflict)
	}
	s.docs[doc.ID] = *doc
	return nil
}

// GetByID retrieves a copy of a document.
func (s *Store) GetByID(ctx context.Context, id string) (*models.ContentDocument, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.docs[id]
	if !ok {
		return nil, fmt.Errorf("content %s: %w", id, domain.ErrNotFound)
	}
	if doc.EditedBody != nil {
		body := *doc.EditedBody
		doc.EditedBody = &body
	}
	return &doc, nil
}

// UpdateBody moves the live body pointer and timestamp.
func (s *Store) UpdateBody(ctx context.Context, id, body string, updatedAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, ok := s.docs[id]
	if !ok {
		return fmt.Errorf("content %s: %w", id, domain.ErrNotFound)
	}
	doc.EditedBody = &body
	doc.UpdatedAt = updatedAt
	s.docs[id] = doc
	return nil
}

// CreateVersion appends an immutable version row, rejecting duplicates of
// an already-written version number.
func (s *Store) CreateVersion(ctx context.Context, v *models.ContentVersion) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.versions[v.ContentID] {
		if existing.Version == v.Version {
			return fmt.Errorf("version %d for content %s already written: %w",
				v.Version, v.ContentID, domain.ErrConflict)
		}
	}
	s.versions[v.ContentID] = append(s.versions[v.ContentID], *v)
	return nil
}

// LatestByContent returns the highest-numbered version, or (nil, nil)
// when the document has no history yet.
func (s *Store) LatestByContent(ctx context.Context, contentID string) (*models.ContentVersion, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var latest *models.ContentVersion
	for i := range s.versions[contentID] {
		v := s.versions[contentID][i]
		if latest == nil || v.Version > latest.Version {
			latest = &v
		}
	}
	if latest == nil {
		return nil, nil
	}
	cp := *latest
	return &cp, nil
}

// ListByContent returns all versions for a document, newest first.
func (s *Store) ListByContent(ctx context.Context, contentID string) ([]models.ContentVersion, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rows := make([]models.ContentVersion, len(s.versions[contentID]))
	copy(rows, s.versions[contentID])
	for i, j := 0, len(rows)-1; i < j; i, j = i+1, j-1 {
		rows[i], rows[j] = rows[j], rows[i]
	}
	return rows, nil
}

// VersionRepo adapts the store to the VersionRepository interface, whose
// Create name collides with the content-side Create.
type VersionRepo struct {
	*Store
}

// Versions returns the store's VersionRepository view.
func (s *Store) Versions() *VersionRepo {
	return &VersionRepo{Store: s}
}

// Create appends an immutable version row.
func (r *VersionRepo) Create(ctx context.Context, v *models.ContentVersion) error {
	return r.CreateVersion(ctx, v)
}
