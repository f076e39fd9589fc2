package models

import "time"

// ChangeKind identifies one discrete edit operation inside a save payload.
type ChangeKind string

const (
	ChangeInsert ChangeKind = "insert"
	ChangeDelete ChangeKind = "delete"
	ChangeModify ChangeKind = "modify"
)

// ChangeType tags a version with how it was produced.
type ChangeType string

const (
	ChangeTypeManualSave ChangeType = "manual_save"
	ChangeTypeAutoSave   ChangeType = "auto_save"
)

// ChangeDescriptor records a single edit operation with its position and
// affected text. The list of descriptors submitted with a save is persisted
// verbatim (as JSONB) on the version row so the edit trail round-trips.
type ChangeDescriptor struct {
	Kind      ChangeKind `json:"type"`
	Position  int        `json:"position"`
	Length    int        `json:"length"`
	Text      string     `json:"text"`
	Timestamp *time.Time `json:"timestamp,omitempty"` // client-supplied, optional
}

// ContentDocument is the live, editable unit of generated content.
// EditedBody is nil until the first accepted edit; until then the
// original generated body is what editors see.
type ContentDocument struct {
	ID           string    `json:"id" db:"id"`
	Title        string    `json:"title" db:"title"`
	EditedBody   *string   `json:"edited_body" db:"edited_body"`
	OriginalBody string    `json:"original_body" db:"original_body"`
	Outline      string    `json:"outline" db:"outline"`
	TopicSlug    *string   `json:"topic_slug" db:"topic_slug"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// LiveBody returns the current editable text, falling back to the
// original generated body when the document has never been edited.
func (d *ContentDocument) LiveBody() string {
	if d.EditedBody != nil {
		return *d.EditedBody
	}
	return d.OriginalBody
}

// ContentVersion is an immutable snapshot in a document's append-only
// history. Version numbers form a gap-free sequence starting at 1 per
// document; rows are never updated or deleted once written.
type ContentVersion struct {
	ID           string             `json:"id" db:"id"`
	ContentID    string             `json:"content_id" db:"content_id"`
	Version      int                `json:"version" db:"version"`
	Title        string             `json:"title" db:"title"`
	Body         string             `json:"body" db:"body"`
	ChangeType   ChangeType         `json:"change_type" db:"change_type"`
	ChangesCount int                `json:"changes_count" db:"changes_count"`
	WordCount    int                `json:"word_count" db:"word_count"`
	CharCount    int                `json:"char_count" db:"char_count"`
	EditedBy     string             `json:"edited_by" db:"edited_by"`
	SessionID    string             `json:"session_id" db:"session_id"`
	TimeSpentMS  *int64             `json:"time_spent_ms" db:"time_spent_ms"`
	Changes      []ChangeDescriptor `json:"changes" db:"changes"`
	CreatedAt    time.Time          `json:"created_at" db:"created_at"`
}
