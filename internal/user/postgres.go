package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/FinFellows/Server/internal/db"
)

type PostgresStore struct {
	db *db.DB
}

func NewPostgresStore(db *db.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) FindByEmail(ctx context.Context, email string) (*User, error) {
	return s.findOne(ctx, `
		SELECT id, provider_id, email, name, role, created_at
		FROM users
		WHERE email = $1
	`, email)
}

func (s *PostgresStore) FindByID(ctx context.Context, id uuid.UUID) (*User, error) {
	return s.findOne(ctx, `
		SELECT id, provider_id, email, name, role, created_at
		FROM users
		WHERE id = $1
	`, id)
}

func (s *PostgresStore) findOne(ctx context.Context, query string, arg any) (*User, error) {
	var u User
	err := s.db.Q(ctx).QueryRowContext(ctx, query, arg).Scan(
		&u.ID,
		&u.ProviderID,
		&u.Email,
		&u.Name,
		&u.Role,
		&u.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("user: find: %w", err)
	}
	return &u, nil
}

func (s *PostgresStore) Create(ctx context.Context, u *User) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	_, err := s.db.Q(ctx).ExecContext(ctx, `
		INSERT INTO users (id, provider_id, email, name, role)
		VALUES ($1, $2, $3, $4, $5)
	`,
		u.ID,
		u.ProviderID,
		u.Email,
		u.Name,
		u.Role,
	)
	if err != nil {
		return fmt.Errorf("user: create: %w", err)
	}
	return nil
}

func (s *PostgresStore) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := s.db.Q(ctx).ExecContext(ctx, `
		DELETE FROM users WHERE id = $1
	`, id)
	if err != nil {
		return fmt.Errorf("user: delete: %w", err)
	}
	return nil
}
