package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/saransh1220/linkhub/internal/shared/utils"
)

type contextKey string

const (
	ContextKeyUserId contextKey = "user_id"
	ContextKeyEmail  contextKey = "email"
)

type AuthMiddleWare struct {
	jwtSecret string
}

// NewAuthMiddleware returns middleware that verifies HS256 tokens signed with jwtSecret.
func NewAuthMiddleware(jwtSecret string) *AuthMiddleWare {
	return &AuthMiddleWare{jwtSecret: jwtSecret}
}

// UserIDFromContext returns the authenticated identity id, if any.
func UserIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(ContextKeyUserId).(string)
	return id, ok && id != ""
}

func EmailFromContext(ctx context.Context) string {
	email, _ := ctx.Value(ContextKeyEmail).(string)
	return email
}

// RequireAuth rejects requests without a valid Bearer token and stores the
// identity in the request context. Websocket handshakes may pass ?token=.
func (m *AuthMiddleWare) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenStr := bearerToken(r)
		if tokenStr == "" && isWebsocketUpgrade(r) {
			tokenStr = r.URL.Query().Get("token")
		}

		if tokenStr == "" {
			utils.WriteError(w, http.StatusUnauthorized, "missing or invalid authorization", nil)
			return
		}

		claims, err := utils.ValidateToken(tokenStr, m.jwtSecret)
		if err != nil {
			utils.WriteError(w, http.StatusUnauthorized, "invalid or expired token", nil)
			return
		}

		next.ServeHTTP(w, r.WithContext(withIdentity(r.Context(), claims)))
	})
}

// FlexibleAuth injects the identity when a valid token is present and
// otherwise lets the request through as a guest.
func (m *AuthMiddleWare) FlexibleAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenStr := bearerToken(r)
		if tokenStr == "" {
			next.ServeHTTP(w, r)
			return
		}

		claims, err := utils.ValidateToken(tokenStr, m.jwtSecret)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}

		next.ServeHTTP(w, r.WithContext(withIdentity(r.Context(), claims)))
	})
}

func bearerToken(r *http.Request) string {
	parts := strings.SplitN(r.Header.Get("Authorization"), " ", 2)
	if len(parts) == 2 && parts[0] == "Bearer" {
		return strings.TrimSpace(parts[1])
	}
	return ""
}

// isWebsocketUpgrade reports whether r asks to switch to the websocket
// protocol. Browsers cannot set headers on that handshake.
func isWebsocketUpgrade(r *http.Request) bool {
	return strings.EqualFold(r.Header.Get("Upgrade"), "websocket") &&
		strings.Contains(strings.ToLower(r.Header.Get("Connection")), "upgrade")
}

func withIdentity(ctx context.Context, claims *utils.Claims) context.Context {
	ctx = context.WithValue(ctx, ContextKeyUserId, claims.UserID)
	return context.WithValue(ctx, ContextKeyEmail, claims.Email)
}
