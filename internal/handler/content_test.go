package handler

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"feedstudio/internal/domain/models"
	"feedstudio/internal/repository/memory"
	"feedstudio/internal/service/editing"
	"feedstudio/internal/session"
	"feedstudio/internal/topics"
)

func newTestMux(t *testing.T) (*http.ServeMux, *memory.Store) {
	t.Helper()

	store := memory.NewStore()
	reg, err := topics.NewRegistry()
	if err != nil {
		t.Fatalf("load topic registry: %v", err)
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	svc := editing.NewService(
		store,
		store.Versions(),
		store,
		editing.NewContentAnalyzer(),
		reg,
		session.NoopRegistry{},
		logger,
	)
	h := NewContentHandler(svc, logger)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", h.HealthCheck)
	mux.HandleFunc("GET /api/contents/{id}/edit", h.GetForEditing)
	mux.HandleFunc("PUT /api/contents/{id}/edit", h.SaveEdit)
	mux.HandleFunc("GET /api/contents/{id}/versions", h.ListVersions)

	return mux, store
}

func seedContent(t *testing.T, store *memory.Store, id string) {
	t.Helper()
	now := time.Now().UTC()
	topic := "machine-learning"
	err := store.Create(context.Background(), &models.ContentDocument{
		ID:           id,
		Title:        "Weekly roundup",
		OriginalBody: "<p>generated draft</p>",
		Outline:      "1. Intro",
		TopicSlug:    &topic,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		t.Fatalf("seed content: %v", err)
	}
}

func doRequest(t *testing.T, mux *http.ServeMux, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func TestGetForEditingEndpoint(t *testing.T) {
	mux, store := newTestMux(t)
	seedContent(t, store, "c1")

	rec := doRequest(t, mux, http.MethodGet, "/api/contents/c1/edit", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var view struct {
		ContentID string `json:"content_id"`
		Title     string `json:"title"`
		Body      string `json:"body"`
		Topic     *struct {
			Slug string `json:"slug"`
		} `json:"topic"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &view); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if view.ContentID != "c1" || view.Body != "<p>generated draft</p>" {
		t.Fatalf("unexpected view: %+v", view)
	}
	if view.Topic == nil || view.Topic.Slug != "machine-learning" {
		t.Fatalf("topic not attached: %+v", view.Topic)
	}
}

func TestGetForEditingUnknownID(t *testing.T) {
	mux, _ := newTestMux(t)

	rec := doRequest(t, mux, http.MethodGet, "/api/contents/nope/edit", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/problem+json" {
		t.Fatalf("content type = %q", ct)
	}
}

func TestSaveEditEndpoint(t *testing.T) {
	mux, store := newTestMux(t)
	seedContent(t, store, "c1")

	payload := `{
		"edited_content": "<p>edited</p>",
		"auto_save": false,
		"changes": [{"type": "modify", "position": 3, "length": 6, "text": "edited"}],
		"session_id": "session_abc",
		"time_spent_ms": 5000
	}`
	rec := doRequest(t, mux, http.MethodPut, "/api/contents/c1/edit", payload)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var result struct {
		ContentID    string `json:"content_id"`
		Version      int    `json:"version"`
		ChangesCount int    `json:"changes_count"`
		AutoSave     bool   `json:"auto_save"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if result.Version != 1 || result.ChangesCount != 1 || result.AutoSave {
		t.Fatalf("unexpected result: %+v", result)
	}

	// The live document now serves the edited body
	rec = doRequest(t, mux, http.MethodGet, "/api/contents/c1/edit", "")
	if !strings.Contains(rec.Body.String(), "<p>edited</p>") {
		t.Fatalf("live body not updated: %s", rec.Body.String())
	}
}

func TestSaveEditValidationProblem(t *testing.T) {
	mux, store := newTestMux(t)
	seedContent(t, store, "c1")

	rec := doRequest(t, mux, http.MethodPut, "/api/contents/c1/edit", `{"invalidField": "value"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/problem+json" {
		t.Fatalf("content type = %q", ct)
	}

	var problem struct {
		Status int               `json:"status"`
		Errors map[string]string `json:"errors"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &problem); err != nil {
		t.Fatalf("decode problem: %v", err)
	}
	if _, ok := problem.Errors["edited_content"]; !ok {
		t.Fatalf("expected edited_content violation, got: %v", problem.Errors)
	}

	// Rejected request must not have produced a version
	rec = doRequest(t, mux, http.MethodGet, "/api/contents/c1/versions", "")
	var history struct {
		Versions []json.RawMessage `json:"versions"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &history); err != nil {
		t.Fatalf("decode history: %v", err)
	}
	if len(history.Versions) != 0 {
		t.Fatalf("rejected edit produced %d versions", len(history.Versions))
	}
}

func TestListVersionsEndpoint(t *testing.T) {
	mux, store := newTestMux(t)
	seedContent(t, store, "c1")

	for _, body := range []string{`{"edited_content": "<p>a</p>"}`, `{"edited_content": "<p>b</p>", "auto_save": true}`} {
		rec := doRequest(t, mux, http.MethodPut, "/api/contents/c1/edit", body)
		if rec.Code != http.StatusOK {
			t.Fatalf("save failed: %d %s", rec.Code, rec.Body.String())
		}
	}

	rec := doRequest(t, mux, http.MethodGet, "/api/contents/c1/versions", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var history struct {
		ContentID string `json:"content_id"`
		Versions  []struct {
			Version    int    `json:"version"`
			ChangeType string `json:"change_type"`
		} `json:"versions"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &history); err != nil {
		t.Fatalf("decode history: %v", err)
	}
	if history.ContentID != "c1" || len(history.Versions) != 2 {
		t.Fatalf("unexpected history: %+v", history)
	}
	if history.Versions[0].Version != 2 || history.Versions[1].Version != 1 {
		t.Fatalf("history not newest first: %+v", history.Versions)
	}
	if history.Versions[0].ChangeType != "auto_save" || history.Versions[1].ChangeType != "manual_save" {
		t.Fatalf("change types wrong: %+v", history.Versions)
	}
}

func TestHealthEndpoint(t *testing.T) {
	mux, _ := newTestMux(t)

	rec := doRequest(t, mux, http.MethodGet, "/health", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"status":"ok"`) {
		t.Fatalf("unexpected health body: %s", rec.Body.String())
	}
}
