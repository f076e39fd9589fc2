package services

import (
	"context"
	"time"

	"feedstudio/internal/domain/models"
)

// SaveEditRequest is the raw save payload as received from the request
// layer, before validation. Body is a pointer so that a missing field can
// be told apart from an intentionally empty body. EditedBy is injected
// from the authenticated request context, never from the payload.
type SaveEditRequest struct {
	Body        *string       `json:"edited_content"`
	Changes     []ChangeInput `json:"changes"`
	AutoSave    bool          `json:"auto_save"`
	SessionID   string        `json:"session_id"`
	TimeSpentMS *int64        `json:"time_spent_ms"`

	EditedBy string `json:"-"`
}

// ChangeInput is one unvalidated change descriptor from the wire.
// Position and Length are pointers for the same presence check as Body.
type ChangeInput struct {
	Kind      string     `json:"type"`
	Position  *int       `json:"position"`
	Length    *int       `json:"length"`
	Text      string     `json:"text"`
	Timestamp *time.Time `json:"timestamp"`
}

// SaveEditResult is the confirmation summary returned to the caller
// after a version has been recorded and the live document updated.
type SaveEditResult struct {
	ContentID    string    `json:"content_id"`
	UpdatedAt    time.Time `json:"updated_at"`
	ChangesCount int       `json:"changes_count"`
	AutoSave     bool      `json:"auto_save"`
	Version      int       `json:"version"`
}

// EditorView is what the editing surface loads before the user starts
// typing: the live body (original body when never edited), the reference
// outline, and topic metadata when the document is tagged.
type EditorView struct {
	ContentID string        `json:"content_id"`
	Title     string        `json:"title"`
	Body      string        `json:"body"`
	Outline   string        `json:"outline"`
	UpdatedAt time.Time     `json:"updated_at"`
	Topic     *models.Topic `json:"topic,omitempty"`
}

// VersionSummary is one row of the version history listing. The full
// body and change list stay out of the listing payload.
type VersionSummary struct {
	Version      int               `json:"version"`
	ChangeType   models.ChangeType `json:"change_type"`
	ChangesCount int               `json:"changes_count"`
	WordCount    int               `json:"word_count"`
	CharCount    int               `json:"char_count"`
	EditedBy     string            `json:"edited_by"`
	SessionID    string            `json:"session_id"`
	CreatedAt    time.Time         `json:"created_at"`
}

// EditingService is the orchestrator for the edit/versioning core:
// retrieval (read current + history) and the write path
// (validate, sequence, derive, persist version, update live document).
type EditingService interface {
	// GetForEditing loads the editor view for a document
	GetForEditing(ctx context.Context, contentID string) (*EditorView, error)

	// SaveEdit validates and applies one edit, recording a new version
	SaveEdit(ctx context.Context, contentID string, req *SaveEditRequest) (*SaveEditResult, error)

	// ListVersions returns the document's version history, newest first
	ListVersions(ctx context.Context, contentID string) ([]VersionSummary, error)
}

// ContentAnalyzer derives word and character metrics from body text.
type ContentAnalyzer interface {
	WordCount(text string) int
	CharCount(text string) int
}
