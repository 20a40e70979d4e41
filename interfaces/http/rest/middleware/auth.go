package middleware

import (
	"context"
	"net"
	"net/http"
	"strings"

	"portfolio/pkg/auth"
	pkgerrors "portfolio/pkg/errors"
)

// CookieName is the cookie carrying the session token
const CookieName = "token"

// TokenVerifier turns a raw token into the principal it was issued to
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (*auth.Principal, error)
}

// RequireAdmin rejects requests without a valid admin token. The handler
// is never reached on failure, so rejected writes have no side effects.
func RequireAdmin(verifier TokenVerifier, errHandler *pkgerrors.ErrorHandler) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, err := verifier.Verify(r.Context(), TokenFromRequest(r))
			if err != nil {
				errHandler.Handle(w, r, err)
				return
			}
			if principal.Role != auth.RoleAdmin {
				errHandler.Handle(w, r, pkgerrors.NewUnauthorizedError("Admin role required"))
				return
			}

			ctx := auth.SetPrincipalInContext(r.Context(), principal)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// TokenFromRequest reads the token cookie, falling back to an
// Authorization: Bearer header. It returns "" when neither is present.
func TokenFromRequest(r *http.Request) string {
	if c, err := r.Cookie(CookieName); err == nil && c.Value != "" {
		return c.Value
	}

	header := r.Header.Get("Authorization")
	parts := strings.SplitN(header, " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		return strings.TrimSpace(parts[1])
	}
	return ""
}

// ClientIP returns the caller address without the port. RealIP has
// already rewritten RemoteAddr when a trusted proxy forwarded the request.
func ClientIP(r *http.Request) string {
	addr := r.RemoteAddr
	if host, _, err := net.SplitHostPort(addr); err == nil {
		return host
	}
	return addr
}
