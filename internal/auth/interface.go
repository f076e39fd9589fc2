package auth

import "feedstudio/internal/domain/models"

// TokenVerifier validates an editor's access token. The abstraction keeps
// the middleware agnostic to where the signing keys come from.
type TokenVerifier interface {
	// VerifyToken validates a JWT and returns the parsed claims.
	VerifyToken(tokenString string) (*models.EditorClaims, error)

	// Close releases any resources held by the verifier.
	Close() error
}
