package credentials

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/FinFellows/Server/internal/db"
)

type PostgresStore struct {
	db *db.DB
}

func NewPostgresStore(db *db.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) FindByRefreshToken(ctx context.Context, refreshToken string) (*Credential, error) {
	return s.findOne(ctx, `
		SELECT email, refresh_token
		FROM tokens
		WHERE refresh_token = $1
	`, refreshToken)
}

func (s *PostgresStore) FindByEmail(ctx context.Context, email string) (*Credential, error) {
	return s.findOne(ctx, `
		SELECT email, refresh_token
		FROM tokens
		WHERE email = $1
	`, email)
}

func (s *PostgresStore) findOne(ctx context.Context, query string, arg any) (*Credential, error) {
	var c Credential
	err := s.db.Q(ctx).QueryRowContext(ctx, query, arg).Scan(&c.Email, &c.RefreshToken)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("credentials: find: %w", err)
	}
	return &c, nil
}

func (s *PostgresStore) Save(ctx context.Context, cred Credential) error {
	_, err := s.db.Q(ctx).ExecContext(ctx, `
		INSERT INTO tokens (email, refresh_token)
		VALUES ($1, $2)
		ON CONFLICT (email)
		DO UPDATE SET refresh_token = EXCLUDED.refresh_token, updated_at = NOW()
	`, cred.Email, cred.RefreshToken)
	if err != nil {
		return fmt.Errorf("credentials: save: %w", err)
	}
	return nil
}

func (s *PostgresStore) Update(ctx context.Context, cred Credential) error {
	res, err := s.db.Q(ctx).ExecContext(ctx, `
		UPDATE tokens
		SET refresh_token = $2, updated_at = NOW()
		WHERE email = $1
	`, cred.Email, cred.RefreshToken)
	if err != nil {
		return fmt.Errorf("credentials: update: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("credentials: update: no record for email")
	}
	return nil
}

func (s *PostgresStore) Delete(ctx context.Context, email string) error {
	_, err := s.db.Q(ctx).ExecContext(ctx, `
		DELETE FROM tokens WHERE email = $1
	`, email)
	if err != nil {
		return fmt.Errorf("credentials: delete: %w", err)
	}
	return nil
}
