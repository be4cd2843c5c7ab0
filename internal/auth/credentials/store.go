// Package credentials persists the active refresh token of each user.
// The invariant: at most one live record per email; rotation replaces
// the stored value, it never adds a second row.
package credentials

import "context"

// Credential associates a user's email with their current refresh token.
type Credential struct {
	Email        string `json:"email"`
	RefreshToken string `json:"refresh_token"`
}

// Store defines credential persistence. Lookups return (nil, nil) when
// no record exists; callers must handle absence explicitly.
type Store interface {
	FindByRefreshToken(ctx context.Context, refreshToken string) (*Credential, error)
	FindByEmail(ctx context.Context, email string) (*Credential, error)

	// Save creates the record for cred.Email, replacing any prior one.
	Save(ctx context.Context, cred Credential) error

	// Update replaces the refresh-token value of the existing record
	// for cred.Email in place.
	Update(ctx context.Context, cred Credential) error

	Delete(ctx context.Context, email string) error
}
