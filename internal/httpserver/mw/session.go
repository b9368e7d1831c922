package mw

import (
	"context"
	"net/http"

	"quay/internal/auth"
	"quay/internal/httpserver/httpx"
	"quay/internal/logger"
)

// SessionCookieName is the cookie carrying the admin session token. The name
// matches the store key holding the token.
const SessionCookieName = "admin_session"

type sessionKey struct{}

// TokenFromRequest extracts the session token from the request cookies.
// Returns "" when the cookie is absent or empty.
func TokenFromRequest(r *http.Request) string {
	c, err := r.Cookie(SessionCookieName)
	if err != nil {
		return ""
	}
	return c.Value
}

// WithVerifiedToken marks the context as carrying a store-validated token.
func WithVerifiedToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, sessionKey{}, token)
}

// VerifiedToken returns the validated session token placed by RequireSession.
// Handlers that mutate state must refuse to run when ok is false; the gate is
// the context value, not the route path.
func VerifiedToken(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(sessionKey{}).(string)
	return token, ok && token != ""
}

// RequireSession validates the session cookie against the store and injects
// the verified token into the request context. Unauthenticated requests get
// the standard failure envelope.
func RequireSession(authSvc *auth.Service, log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := TokenFromRequest(r)
			if !authSvc.CheckSession(r.Context(), token) {
				log.Debug("rejected unauthenticated admin request",
					logger.String("path", r.URL.Path))
				httpx.Fail(w, "not authenticated")
				return
			}
			next.ServeHTTP(w, r.WithContext(WithVerifiedToken(r.Context(), token)))
		})
	}
}
