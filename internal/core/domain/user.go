package domain

import "time"

// AuthProvider identifies how a user authenticates.
type AuthProvider string

const (
	ProviderLocal  AuthProvider = "local"
	ProviderGoogle AuthProvider = "google"
)

// User represents a user of the application in the domain.
type User struct {
	UserID         string       `json:"userID"` // Primary Key (UUID)
	Name           string       `json:"name"`
	Username       string       `json:"username"`
	PasswordHash   string       `json:"-"`
	AuthProvider   AuthProvider `json:"authProvider"`
	ProviderUserID string       `json:"-"` // External ID for OAuth users
	EmailVerified  bool         `json:"emailVerified"`

	RefreshTokenHash       string     `json:"-"`
	RefreshTokenExpiryTime *time.Time `json:"-"`

	AuditFields
	DeletedAt *time.Time `json:"deletedAt,omitempty"` // Used for soft delete
}

// GoogleUserInfo is the subset of the Google userinfo payload the app reads.
type GoogleUserInfo struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	VerifiedEmail bool   `json:"verified_email"`
	Name          string `json:"name"`
}
