package session

import "context"

// Registry tracks active editing sessions. Entries are advisory presence
// markers with a TTL; the edit pipeline refreshes them on every save and
// never fails because of them.
type Registry interface {
	// Touch creates or refreshes a session entry for an editor
	Touch(ctx context.Context, sessionID, editorID string) error

	// Active lists session IDs that have not expired
	Active(ctx context.Context) ([]string, error)

	// End removes a session entry
	End(ctx context.Context, sessionID string) error
}

// NoopRegistry satisfies Registry without tracking anything. Used when
// no Redis address is configured.
type NoopRegistry struct{}

func (NoopRegistry) Touch(ctx context.Context, sessionID, editorID string) error { return nil }
func (NoopRegistry) Active(ctx context.Context) ([]string, error)               { return nil, nil }
func (NoopRegistry) End(ctx context.Context, sessionID string) error            { return nil }
