package models

import "github.com/golang-jwt/jwt/v5"

// EditorClaims are the JWT claims carried by an authenticated editor's
// access token. Subject is the editor identity stamped onto version rows.
type EditorClaims struct {
	jwt.RegisteredClaims
	Email string `json:"email,omitempty"`
	Role  string `json:"role,omitempty"`
}
