package user

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Role is the closed set of authorization roles a user can hold.
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

// User is a local identity created on first OAuth login. The record is
// never updated by later logins; it is only deleted on account deletion.
type User struct {
	ID         uuid.UUID `json:"id"`
	ProviderID string    `json:"provider_id"`
	Email      string    `json:"email"`
	Name       string    `json:"name"`
	Role       Role      `json:"role"`
	CreatedAt  time.Time `json:"created_at"`
}

// Store persists User rows keyed by email. Lookups return (nil, nil)
// when no row exists; callers must handle absence explicitly.
type Store interface {
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
	Create(ctx context.Context, u *User) error
	Delete(ctx context.Context, id uuid.UUID) error
}
