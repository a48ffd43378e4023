package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/familytrip/tripboard/internal/api"
)

// TokenVerifier resolves a bearer token to the id of the user it belongs to.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (userID string, err error)
}

type (
	userIDKey   struct{}
	userSlotKey struct{}
)

// withUserSlot returns ctx carrying an empty slot that NewAuthHandler fills
// in. Middleware wired before auth reads the user id from it afterwards.
func withUserSlot(ctx context.Context) (context.Context, *string) {
	slot := new(string)
	return context.WithValue(ctx, userSlotKey{}, slot), slot
}

// UserIDFromContext returns the user id stored by NewAuthHandler, or "" when
// the request was not authenticated.
func UserIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(userIDKey{}).(string)
	return id
}

// NewAuthHandler returns a middleware that requires an "Authorization: Bearer"
// header on every request except preflights and the given public paths.
// A nil verifier disables authentication entirely.
func NewAuthHandler(v TokenVerifier, log *slog.Logger, publicPaths ...string) func(http.Handler) http.Handler {
	public := make(map[string]bool, len(publicPaths))
	for _, p := range publicPaths {
		public[p] = true
	}
	return func(next http.Handler) http.Handler {
		if v == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodOptions || public[r.URL.Path] {
				next.ServeHTTP(w, r)
				return
			}
			token, ok := bearerToken(r)
			if !ok {
				writeError(w, http.StatusUnauthorized, api.CodeUnauthenticated, "bearer token required")
				return
			}
			userID, err := v.Verify(r.Context(), token)
			if err != nil {
				log.WarnContext(r.Context(), "token rejected", "path", r.URL.Path, "error", err)
				writeError(w, http.StatusUnauthorized, api.CodeUnauthenticated, "invalid or expired token")
				return
			}
			if slot, ok := r.Context().Value(userSlotKey{}).(*string); ok {
				*slot = userID
			}
			ctx := context.WithValue(r.Context(), userIDKey{}, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(r *http.Request) (string, bool) {
	h := r.Header.Get("Authorization")
	const prefix = "bearer "
	if len(h) <= len(prefix) || !strings.EqualFold(h[:len(prefix)], prefix) {
		return "", false
	}
	token := strings.TrimSpace(h[len(prefix):])
	return token, token != ""
}
