package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/netip"
	"testing"

	"portfolio/pkg/auth"
	pkgerrors "portfolio/pkg/errors"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type stubVerifier struct {
	valid string
	role  string
	seen  string
}

func (s *stubVerifier) Verify(ctx context.Context, token string) (*auth.Principal, error) {
	s.seen = token
	if token == "" {
		return nil, pkgerrors.NewUnauthorizedError("Authentication required")
	}
	if token != s.valid {
		return nil, pkgerrors.NewUnauthorizedError("Invalid or expired token")
	}
	return &auth.Principal{Username: "admin", Role: s.role}, nil
}

func TestTokenFromRequest(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Equal(t, "", TokenFromRequest(r))

	r.Header.Set("Authorization", "Bearer abc")
	assert.Equal(t, "abc", TokenFromRequest(r))

	r.AddCookie(&http.Cookie{Name: CookieName, Value: "from-cookie"})
	assert.Equal(t, "from-cookie", TokenFromRequest(r), "cookie wins over header")

	basic := httptest.NewRequest(http.MethodGet, "/", nil)
	basic.Header.Set("Authorization", "Basic Zm9vOmJhcg==")
	assert.Equal(t, "", TokenFromRequest(basic))
}

func TestRequireAdmin(t *testing.T) {
	errHandler := pkgerrors.NewErrorHandler(zap.NewNop(), false)
	verifier := &stubVerifier{valid: "good", role: auth.RoleAdmin}
	reached := false
	h := RequireAdmin(verifier, errHandler)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reached = true
		p, err := auth.GetPrincipalFromContext(r.Context())
		assert.NoError(t, err)
		assert.Equal(t, "admin", p.Username)
		w.WriteHeader(http.StatusNoContent)
	}))

	t.Run("missing token", func(t *testing.T) {
		reached = false
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", nil))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, rec.Body.String(), "Authentication required")
		assert.False(t, reached)
	})

	t.Run("bad token", func(t *testing.T) {
		reached = false
		req := httptest.NewRequest(http.MethodPost, "/", nil)
		req.AddCookie(&http.Cookie{Name: CookieName, Value: "forged"})
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, rec.Body.String(), "Invalid or expired token")
		assert.False(t, reached)
	})

	t.Run("valid token", func(t *testing.T) {
		reached = false
		req := httptest.NewRequest(http.MethodPost, "/", nil)
		req.AddCookie(&http.Cookie{Name: CookieName, Value: "good"})
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.True(t, reached)
	})

	t.Run("wrong role", func(t *testing.T) {
		reached = false
		guestOnly := RequireAdmin(&stubVerifier{valid: "good", role: "guest"}, errHandler)(http.NotFoundHandler())
		req := httptest.NewRequest(http.MethodPost, "/", nil)
		req.Header.Set("Authorization", "Bearer good")
		rec := httptest.NewRecorder()
		guestOnly.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestClientIP(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.RemoteAddr = "203.0.113.7:5123"
	assert.Equal(t, "203.0.113.7", ClientIP(r))

	r.RemoteAddr = "203.0.113.8"
	assert.Equal(t, "203.0.113.8", ClientIP(r))
}

func TestRealIP(t *testing.T) {
	seen := func(mw func(http.Handler) http.Handler, remote string, headers map[string]string) string {
		var got string
		h := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got = ClientIP(r)
		}))
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = remote
		for k, v := range headers {
			req.Header.Set(k, v)
		}
		h.ServeHTTP(httptest.NewRecorder(), req)
		return got
	}

	t.Run("headers ignored without trusted proxies", func(t *testing.T) {
		got := seen(RealIP(nil), "198.51.100.4:4000", map[string]string{
			"X-Forwarded-For": "1.1.1.1",
			"X-Real-IP":       "2.2.2.2",
		})
		assert.Equal(t, "198.51.100.4", got)
	})

	proxies := []netip.Prefix{netip.MustParsePrefix("10.0.0.0/8")}

	t.Run("headers ignored from an untrusted peer", func(t *testing.T) {
		got := seen(RealIP(proxies), "198.51.100.4:4000", map[string]string{"X-Forwarded-For": "1.1.1.1"})
		assert.Equal(t, "198.51.100.4", got)
	})

	t.Run("right-most untrusted hop wins", func(t *testing.T) {
		got := seen(RealIP(proxies), "10.0.0.2:4000", map[string]string{
			"X-Forwarded-For": "6.6.6.6, 203.0.113.50, 10.0.0.9",
		})
		assert.Equal(t, "203.0.113.50", got)
	})

	t.Run("x-real-ip from a trusted peer", func(t *testing.T) {
		got := seen(RealIP(proxies), "10.1.2.3:4000", map[string]string{"X-Real-IP": "203.0.113.51"})
		assert.Equal(t, "203.0.113.51", got)
	})

	t.Run("malformed header keeps the peer", func(t *testing.T) {
		got := seen(RealIP(proxies), "10.1.2.3:4000", map[string]string{"X-Forwarded-For": "garbage"})
		assert.Equal(t, "10.1.2.3", got)
	})
}

func TestLogger(t *testing.T) {
	h := Logger(zap.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	rec := httptest.NewRecorder()

	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusTeapot, rec.Code)
}
