package httputil

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// ParseJSON decodes JSON from the request body into the given destination.
// Unknown fields are tolerated: edit payloads from older clients may carry
// fields this server no longer reads, and rejecting them is the validator's
// call, not the decoder's.
func ParseJSON(w http.ResponseWriter, r *http.Request, dest interface{}) error {
	// 10MB cap; w is needed so MaxBytesReader can answer with 413
	r.Body = http.MaxBytesReader(w, r.Body, 10<<20)

	if err := json.NewDecoder(r.Body).Decode(dest); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}

	return nil
}
