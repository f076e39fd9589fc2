package domain

import (
	"errors"
	"sort"
	"strings"
)

// Sentinel errors for the editing core - use with errors.Is()
var (
	ErrNotFound     = errors.New("not found")
	ErrValidation   = errors.New("validation failed")
	ErrConflict     = errors.New("version conflict")
	ErrPersistence  = errors.New("persistence failure")
	ErrUnauthorized = errors.New("unauthorized")
)

// ValidationError carries every field violation found in a request,
// not just the first one. Field keys use the wire names of the
// offending fields (nested change entries are indexed, e.g. "changes.0.position").
type ValidationError struct {
	Fields map[string]string
}

// Error renders the violations in a stable order.
func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "invalid request"
	}
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString("invalid request: ")
	for i, k := range keys {
		if i > 0 {
			b.WriteString("; ")
		}
		b.WriteString(k)
		b.WriteString(": ")
		b.WriteString(e.Fields[k])
	}
	return b.String()
}

// Is allows errors.Is() to match against ErrValidation
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}
