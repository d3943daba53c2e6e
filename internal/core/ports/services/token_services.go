package services

import (
	"context"
	"time"

	"github.com/finpal/finpal-backend/internal/core/domain"
	"golang.org/x/oauth2"
	"google.golang.org/api/idtoken"
)

// TokenSvcFacade issues and validates access and refresh tokens.
type TokenSvcFacade interface {
	// GenerateAccessToken creates a signed JWT for the user and returns it
	// with its expiry time.
	GenerateAccessToken(ctx context.Context, user *domain.User) (string, time.Time, error)

	// GenerateRefreshToken creates a raw opaque refresh token and its expiry.
	// Only a hash of the token is ever stored.
	GenerateRefreshToken(ctx context.Context, user *domain.User) (string, time.Time, error)

	// ValidateAndParseRefreshToken checks a raw refresh token against the
	// user's stored hash and expiry, returning the user when valid.
	ValidateAndParseRefreshToken(ctx context.Context, userID string, refreshToken string) (*domain.User, error)
}

// GoogleOAuthSvcFacade wraps the Google OAuth code-exchange flow.
type GoogleOAuthSvcFacade interface {
	// GenerateStateString creates a CSRF state token for the OAuth flow.
	GenerateStateString(ctx context.Context) (string, error)

	// GetGoogleLoginURL returns the consent-screen URL for the given state.
	GetGoogleLoginURL(ctx context.Context, state string) string

	// ExchangeCodeForToken exchanges an authorization code for Google tokens.
	ExchangeCodeForToken(ctx context.Context, code string) (*oauth2.Token, error)

	// GetUserInfo fetches the user's profile with the access token.
	GetUserInfo(ctx context.Context, token *oauth2.Token) (*domain.GoogleUserInfo, error)

	// ValidateGoogleIDToken verifies an ID token's signature and audience.
	ValidateGoogleIDToken(ctx context.Context, idToken string) (*idtoken.Payload, error)
}
