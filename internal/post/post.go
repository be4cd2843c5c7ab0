// Package post holds educational and news content entries that users
// can bookmark.
package post

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/FinFellows/Server/internal/db"
)

// ContentType is the closed set of post kinds.
type ContentType string

const (
	ContentTypeEdu  ContentType = "EDU_CONTENT"
	ContentTypeNews ContentType = "NEWS"
)

func (t ContentType) Valid() bool {
	return t == ContentTypeEdu || t == ContentTypeNews
}

type Post struct {
	ID          int64       `json:"id"`
	ContentType ContentType `json:"content_type"`
	Title       string      `json:"title"`
	URL         string      `json:"url"`
}

// Store looks up posts; FindByID returns (nil, nil) when no active
// post of the given type exists.
type Store interface {
	FindByID(ctx context.Context, id int64, contentType ContentType) (*Post, error)
}

type PostgresStore struct {
	db *db.DB
}

func NewPostgresStore(db *db.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) FindByID(ctx context.Context, id int64, contentType ContentType) (*Post, error) {
	var p Post
	err := s.db.Q(ctx).QueryRowContext(ctx, `
		SELECT id, content_type, title, url
		FROM posts
		WHERE id = $1 AND content_type = $2 AND status = 'ACTIVE'
	`, id, contentType).Scan(&p.ID, &p.ContentType, &p.Title, &p.URL)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("post: find: %w", err)
	}
	return &p, nil
}
