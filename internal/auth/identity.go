package auth

import (
	"github.com/google/uuid"

	"github.com/FinFellows/Server/internal/user"
)

// Profile holds the identity claims supplied by the OAuth provider
// after code exchange: external id, email, display name. Empty fields
// mean the provider omitted them; callers decide whether that is fatal.
type Profile struct {
	ID       string
	Email    string
	Nickname string
}

// Principal is the authenticated identity resolved from a verified
// token or credential lookup. It is never persisted; it carries the
// facts authorization decisions need.
type Principal struct {
	ID          uuid.UUID
	Email       string
	Name        string
	Role        user.Role
	Authorities []string
}

// NewPrincipal derives a Principal from a user record.
func NewPrincipal(u *user.User) Principal {
	return Principal{
		ID:          u.ID,
		Email:       u.Email,
		Name:        u.Name,
		Role:        u.Role,
		Authorities: []string{string(u.Role)},
	}
}

// AuthResult is returned by login and refresh: the issued token pair
// plus the role of the authenticated identity.
type AuthResult struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	Role         user.Role `json:"role"`
}

// Message is a confirmation payload for sign-out and account deletion.
type Message struct {
	Message string `json:"message"`
}
