package editing

import (
	"errors"
	"testing"

	"feedstudio/internal/domain"
	"feedstudio/internal/domain/services"
)

func strPtr(s string) *string { return &s }
func intPtr(n int) *int       { return &n }
func int64Ptr(n int64) *int64 { return &n }

func TestValidateSaveEdit(t *testing.T) {
	tests := []struct {
		name       string
		req        *services.SaveEditRequest
		wantFields []string // expected keys in the violation map, empty = valid
	}{
		{
			name:       "missing body field",
			req:        &services.SaveEditRequest{},
			wantFields: []string{"edited_content"},
		},
		{
			name: "empty body is valid",
			req:  &services.SaveEditRequest{Body: strPtr("")},
		},
		{
			name: "full valid payload",
			req: &services.SaveEditRequest{
				Body:     strPtr("<p>updated</p>"),
				AutoSave: true,
				Changes: []services.ChangeInput{
					{Kind: "insert", Position: intPtr(0), Length: intPtr(14), Text: "<p>updated</p>"},
				},
				SessionID:   "session_123",
				TimeSpentMS: int64Ptr(4200),
			},
		},
		{
			name: "unrecognized change kind",
			req: &services.SaveEditRequest{
				Body: strPtr("x"),
				Changes: []services.ChangeInput{
					{Kind: "replace", Position: intPtr(0), Length: intPtr(1)},
				},
			},
			wantFields: []string{"changes.0.type"},
		},
		{
			name: "multiple violations reported together",
			req: &services.SaveEditRequest{
				Changes: []services.ChangeInput{
					{Kind: "insert", Position: intPtr(-1), Length: intPtr(2)},
					{Kind: "", Position: intPtr(0)},
				},
				TimeSpentMS: int64Ptr(-5),
			},
			wantFields: []string{
				"edited_content",
				"time_spent_ms",
				"changes.0.position",
				"changes.1.type",
				"changes.1.length",
			},
		},
		{
			name: "missing position and length",
			req: &services.SaveEditRequest{
				Body: strPtr("x"),
				Changes: []services.ChangeInput{
					{Kind: "delete"},
				},
			},
			wantFields: []string{"changes.0.position", "changes.0.length"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateSaveEdit(tt.req)

			if len(tt.wantFields) == 0 {
				if err != nil {
					t.Fatalf("expected valid request, got: %v", err)
				}
				return
			}

			if err == nil {
				t.Fatalf("expected validation failure for fields %v", tt.wantFields)
			}
			if !errors.Is(err, domain.ErrValidation) {
				t.Fatalf("expected ErrValidation, got: %v", err)
			}

			var verr *domain.ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected *domain.ValidationError, got %T", err)
			}
			for _, field := range tt.wantFields {
				if _, ok := verr.Fields[field]; !ok {
					t.Errorf("missing violation for %q, got: %v", field, verr.Fields)
				}
			}
			if len(verr.Fields) != len(tt.wantFields) {
				t.Errorf("violation count = %d, want %d: %v", len(verr.Fields), len(tt.wantFields), verr.Fields)
			}
		})
	}
}
