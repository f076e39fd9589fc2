package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"feedstudio/internal/auth"
	"feedstudio/internal/httputil"
)

// Auth validates the Bearer token on /api routes and injects the editor
// identity into the request context. A nil verifier (dev without an
// identity provider) falls through with a placeholder identity; this is a
// documented gap, not a supported production mode, and is logged as such.
func Auth(verifier auth.TokenVerifier, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !strings.HasPrefix(r.URL.Path, "/api/") {
				next.ServeHTTP(w, r)
				return
			}

			if verifier == nil {
				logger.Warn("identity resolver unavailable, using placeholder editor",
					"path", r.URL.Path,
				)
				next.ServeHTTP(w, httputil.WithEditorID(r, "editor_anonymous"))
				return
			}

			token, ok := bearerToken(r)
			if !ok {
				httputil.RespondError(w, http.StatusUnauthorized, "missing bearer token")
				return
			}

			claims, err := verifier.VerifyToken(token)
			if err != nil {
				httputil.RespondError(w, http.StatusUnauthorized, "invalid token")
				return
			}

			next.ServeHTTP(w, httputil.WithEditorID(r, claims.Subject))
		})
	}
}

// bearerToken extracts the token from the Authorization header
func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return "", false
	}
	token := strings.TrimSpace(strings.TrimPrefix(header, prefix))
	return token, token != ""
}
