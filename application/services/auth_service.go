package services

import (
	"context"
	"errors"
	"time"

	"portfolio/pkg/auth"
	pkgerrors "portfolio/pkg/errors"

	"go.uber.org/zap"
)

// Messages returned to clients by the auth gate
const (
	MsgInvalidCredentials     = "Invalid credentials"
	MsgAuthenticationRequired = "Authentication required"
	MsgInvalidToken           = "Invalid or expired token"
)

// LoginResult is a freshly issued session token
type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	Principal *auth.Principal
}

// AuthService exchanges the admin credential for a signed token and
// verifies tokens on protected requests. Tokens are stateless; logout only
// clears the client cookie.
type AuthService struct {
	credentials *auth.AdminCredentials
	generator   *auth.JWTGenerator
	validator   *auth.JWTValidator
	limiter     auth.RateLimiter
	logger      *zap.Logger
}

// NewAuthService creates a new auth service. limiter may be nil.
func NewAuthService(
	credentials *auth.AdminCredentials,
	generator *auth.JWTGenerator,
	validator *auth.JWTValidator,
	limiter auth.RateLimiter,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		credentials: credentials,
		generator:   generator,
		validator:   validator,
		limiter:     limiter,
		logger:      logger,
	}
}

// Login checks the credential and issues a token. clientKey identifies the
// caller for rate limiting, usually the client IP.
func (s *AuthService) Login(ctx context.Context, username, password, clientKey string) (*LoginResult, error) {
	if s.limiter != nil {
		allowed, err := s.limiter.Allow(ctx, clientKey)
		if err != nil {
			s.logger.Error("Rate limiter failed", zap.Error(err))
		} else if !allowed {
			s.logger.Warn("Login rate limit exceeded", zap.String("client", clientKey))
			return nil, s.rateLimitError()
		}
	}

	principal, err := s.credentials.Authenticate(username, password)
	if err != nil {
		s.logger.Warn("Failed login attempt", zap.String("client", clientKey))
		return nil, pkgerrors.NewUnauthorizedError(MsgInvalidCredentials)
	}

	token, expiresAt, err := s.generator.GenerateToken(principal.Username, principal.Role)
	if err != nil {
		return nil, pkgerrors.NewInternalError("failed to issue token").WithCause(err)
	}

	if s.limiter != nil {
		_ = s.limiter.Reset(ctx, clientKey)
	}

	s.logger.Info("Admin logged in", zap.String("username", principal.Username))
	return &LoginResult{Token: token, ExpiresAt: expiresAt, Principal: principal}, nil
}

// Verify validates a token and returns the principal it was issued to
func (s *AuthService) Verify(ctx context.Context, token string) (*auth.Principal, error) {
	claims, err := s.validator.ValidateToken(token)
	if err != nil {
		if errors.Is(err, auth.ErrMissingToken) {
			return nil, pkgerrors.NewUnauthorizedError(MsgAuthenticationRequired)
		}
		s.logger.Debug("Token rejected", zap.Error(err))
		return nil, pkgerrors.NewUnauthorizedError(MsgInvalidToken).WithCause(err)
	}
	return &auth.Principal{Username: claims.Username, Role: claims.Role}, nil
}

// TokenLifetime is how long issued tokens stay valid
func (s *AuthService) TokenLifetime() time.Duration {
	return s.generator.Lifetime()
}

func (s *AuthService) rateLimitError() error {
	if l, ok := s.limiter.(*auth.AttemptLimiter); ok {
		return pkgerrors.NewRateLimitError(l.Limit(), l.Window())
	}
	return pkgerrors.NewRateLimitError(0, time.Minute)
}
