package editing

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"feedstudio/internal/domain"
	"feedstudio/internal/domain/models"
	"feedstudio/internal/domain/repositories"
	"feedstudio/internal/domain/services"
	"feedstudio/internal/session"
	"feedstudio/internal/topics"
)

// saveAttempts bounds the retry loop for version-number conflicts. A
// conflict means another save for the same document committed between our
// read and our insert, so one or two recomputations are enough in practice.
const saveAttempts = 3

// anonymousEditor is stamped on versions when no authenticated identity
// reached the service. This only happens with the verifier disabled in
// dev; see the auth middleware.
const anonymousEditor = "editor_anonymous"

// editingService implements the EditingService interface
type editingService struct {
	contentRepo repositories.ContentRepository
	versionRepo repositories.VersionRepository
	txManager   repositories.TransactionManager
	analyzer    services.ContentAnalyzer
	topics      *topics.Registry
	sessions    session.Registry
	logger      *slog.Logger
	now         func() time.Time
}

// NewService creates a new editing service
func NewService(
	contentRepo repositories.ContentRepository,
	versionRepo repositories.VersionRepository,
	txManager repositories.TransactionManager,
	analyzer services.ContentAnalyzer,
	topicRegistry *topics.Registry,
	sessions session.Registry,
	logger *slog.Logger,
) services.EditingService {
	return &editingService{
		contentRepo: contentRepo,
		versionRepo: versionRepo,
		txManager:   txManager,
		analyzer:    analyzer,
		topics:      topicRegistry,
		sessions:    sessions,
		logger:      logger,
		now:         time.Now,
	}
}

// GetForEditing loads the editor view for a document. When an earlier
// save recorded a version but failed to move the live body pointer, the
// version history is authoritative: the view is served from the latest
// version and the live document repaired in passing.
func (s *editingService) GetForEditing(ctx context.Context, contentID string) (*services.EditorView, error) {
	doc, err := s.contentRepo.GetByID(ctx, contentID)
	if err != nil {
		return nil, err
	}

	body := doc.LiveBody()
	updatedAt := doc.UpdatedAt

	latest, err := s.versionRepo.LatestByContent(ctx, contentID)
	if err != nil {
		return nil, fmt.Errorf("load latest version: %w", err)
	}
	if latest != nil && latest.Body != body {
		// Live pointer lagged behind the durable history
		body = latest.Body
		updatedAt = latest.CreatedAt
		if repairErr := s.contentRepo.UpdateBody(ctx, contentID, latest.Body, latest.CreatedAt); repairErr != nil {
			s.logger.Error("live document repair failed",
				"content_id", contentID,
				"version", latest.Version,
				"error", repairErr,
			)
		} else {
			s.logger.Warn("live document reconciled from version history",
				"content_id", contentID,
				"version", latest.Version,
			)
		}
	}

	view := &services.EditorView{
		ContentID: doc.ID,
		Title:     doc.Title,
		Body:      body,
		Outline:   doc.Outline,
		UpdatedAt: updatedAt,
	}
	if doc.TopicSlug != nil {
		if topic, ok := s.topics.Get(*doc.TopicSlug); ok {
			view.Topic = topic
		}
	}

	return view, nil
}

// SaveEdit validates and applies one edit: sequence the next version,
// derive metrics, persist the immutable version row, then move the live
// body pointer. The version write and the sequencing read share a
// transaction; a lost race against a concurrent save surfaces as a
// conflict and the attempt is repeated with a fresh version number.
func (s *editingService) SaveEdit(ctx context.Context, contentID string, req *services.SaveEditRequest) (*services.SaveEditResult, error) {
	if err := validateSaveEdit(req); err != nil {
		return nil, err
	}

	doc, err := s.contentRepo.GetByID(ctx, contentID)
	if err != nil {
		return nil, err
	}

	editedBy := req.EditedBy
	if editedBy == "" {
		// Known gap: identity resolution unavailable, not a silent default
		s.logger.Warn("no editor identity resolved, stamping placeholder", "content_id", contentID)
		editedBy = anonymousEditor
	}

	body := *req.Body
	now := s.now().UTC()
	version := &models.ContentVersion{
		ID:           uuid.NewString(),
		ContentID:    doc.ID,
		Title:        doc.Title,
		Body:         body,
		ChangeType:   changeType(req.AutoSave),
		ChangesCount: len(req.Changes),
		WordCount:    s.analyzer.WordCount(body),
		CharCount:    s.analyzer.CharCount(body),
		EditedBy:     editedBy,
		SessionID:    s.sessionID(req.SessionID),
		TimeSpentMS:  req.TimeSpentMS,
		Changes:      toChangeDescriptors(req.Changes),
		CreatedAt:    now,
	}

	if err := s.writeVersion(ctx, version); err != nil {
		return nil, err
	}

	// The version is durable; the edit is logically applied from here on.
	// The live update still runs if the caller has already gone away.
	liveCtx := context.WithoutCancel(ctx)
	if err := s.contentRepo.UpdateBody(liveCtx, doc.ID, body, now); err != nil {
		s.logger.Error("live document out of sync with version history",
			"content_id", doc.ID,
			"version", version.Version,
			"error", err,
		)
	}

	s.touchSession(liveCtx, version.SessionID, editedBy)

	s.logger.Info("edit saved",
		"content_id", doc.ID,
		"version", version.Version,
		"change_type", version.ChangeType,
		"changes_count", version.ChangesCount,
		"word_count", version.WordCount,
	)

	return &services.SaveEditResult{
		ContentID:    doc.ID,
		UpdatedAt:    now,
		ChangesCount: version.ChangesCount,
		AutoSave:     req.AutoSave,
		Version:      version.Version,
	}, nil
}

// ListVersions returns the document's version history, newest first
func (s *editingService) ListVersions(ctx context.Context, contentID string) ([]services.VersionSummary, error) {
	if _, err := s.contentRepo.GetByID(ctx, contentID); err != nil {
		return nil, err
	}

	rows, err := s.versionRepo.ListByContent(ctx, contentID)
	if err != nil {
		return nil, fmt.Errorf("list versions: %w", err)
	}

	summaries := make([]services.VersionSummary, len(rows))
	for i, v := range rows {
		summaries[i] = services.VersionSummary{
			Version:      v.Version,
			ChangeType:   v.ChangeType,
			ChangesCount: v.ChangesCount,
			WordCount:    v.WordCount,
			CharCount:    v.CharCount,
			EditedBy:     v.EditedBy,
			SessionID:    v.SessionID,
			CreatedAt:    v.CreatedAt,
		}
	}

	return summaries, nil
}

// writeVersion sequences and inserts the version row. Read-max and insert
// run in one transaction; a unique-constraint conflict means another save
// won the race, so the next version number is recomputed and the insert
// retried up to saveAttempts times.
func (s *editingService) writeVersion(ctx context.Context, version *models.ContentVersion) error {
	var lastErr error
	for attempt := 1; attempt <= saveAttempts; attempt++ {
		err := s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
			latest, err := s.versionRepo.LatestByContent(txCtx, version.ContentID)
			if err != nil {
				return fmt.Errorf("read latest version: %w", err)
			}
			version.Version = 1
			if latest != nil {
				version.Version = latest.Version + 1
			}
			return s.versionRepo.Create(txCtx, version)
		})
		if err == nil {
			return nil
		}
		if errors.Is(err, domain.ErrConflict) {
			s.logger.Debug("version conflict, recomputing",
				"content_id", version.ContentID,
				"attempt", attempt,
			)
			lastErr = err
			continue
		}
		s.logger.Error("version write failed",
			"content_id", version.ContentID,
			"error", err,
		)
		return fmt.Errorf("%w: version write", domain.ErrPersistence)
	}

	s.logger.Error("version write exhausted retries",
		"content_id", version.ContentID,
		"attempts", saveAttempts,
		"error", lastErr,
	)
	return fmt.Errorf("%w: version sequence contention", domain.ErrPersistence)
}

// sessionID returns the submitted session identifier or generates a
// timestamp-derived fallback unique to this call.
func (s *editingService) sessionID(submitted string) string {
	if submitted != "" {
		return submitted
	}
	return fmt.Sprintf("session_%d_%s", s.now().UnixMilli(), uuid.NewString()[:8])
}

// touchSession refreshes the editing-session presence entry. Presence is
// advisory: failures are logged and never fail the save.
func (s *editingService) touchSession(ctx context.Context, sessionID, editorID string) {
	if s.sessions == nil {
		return
	}
	if err := s.sessions.Touch(ctx, sessionID, editorID); err != nil {
		s.logger.Warn("session registry touch failed",
			"session_id", sessionID,
			"error", err,
		)
	}
}

func changeType(autoSave bool) models.ChangeType {
	if autoSave {
		return models.ChangeTypeAutoSave
	}
	return models.ChangeTypeManualSave
}
