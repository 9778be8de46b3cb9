package graphql

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/taskboard/taskboard/internal/logging"
	"github.com/taskboard/taskboard/internal/server/auth"
)

// authMiddleware is the edge gate: it decodes the bearer credential once
// per request and attaches the resulting identity to the request context.
// It never rejects the request itself; operations that need authentication
// refuse later through the authorization gate.
func authMiddleware(secretKey []byte, logger logging.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		log := logger.With("request_id", uuid.NewString())

		token := bearerToken(r.Header.Get("Authorization"))
		if token == "" {
			log.Info(ctx, "no token provided")
			next.ServeHTTP(w, r)
			return
		}

		claims, err := auth.ParseToken(token, secretKey)
		if err != nil {
			log.Warn(ctx, "invalid token", "error", err.Error())
			next.ServeHTTP(w, r)
			return
		}

		log.Info(ctx, "decoded user", "user_id", claims.UserID, "role", string(claims.Role))
		ctx = auth.WithIdentity(ctx, &auth.Identity{
			ID:    claims.UserID,
			Email: claims.Email,
			Role:  claims.Role,
		})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// bearerToken extracts the token from an "Authorization: Bearer <token>"
// header value. Any other shape yields "".
func bearerToken(header string) string {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
