package policy

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/FinFellows/Server/internal/db"
	"github.com/FinFellows/Server/internal/pagination"
)

type PostgresStore struct {
	db *db.DB
}

func NewPostgresStore(db *db.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Search(ctx context.Context, keyword string, req pagination.Request, userID *uuid.UUID) ([]Row, int64, error) {
	where := "p.status = 'ACTIVE'"
	var args []any

	if keyword != "" {
		args = append(args, "%"+keyword+"%")
		where += fmt.Sprintf(" AND (p.policy_name ILIKE $%d OR p.policy_intro ILIKE $%d)", len(args), len(args))
	}

	var total int64
	err := s.db.Q(ctx).QueryRowContext(ctx,
		"SELECT COUNT(*) FROM policy_infos p WHERE "+where,
		args...,
	).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("policy: count: %w", err)
	}

	bookmarkExpr := "FALSE AS is_bookmarked"
	if userID != nil {
		args = append(args, *userID)
		bookmarkExpr = fmt.Sprintf(`EXISTS (
			SELECT 1 FROM policy_info_bookmarks b
			WHERE b.policy_info_id = p.id AND b.user_id = $%d
		) AS is_bookmarked`, len(args))
	}

	args = append(args, req.Limit(), req.Offset())
	query := fmt.Sprintf(`
		SELECT p.id, p.policy_name, COALESCE(p.policy_intro, ''),
		       COALESCE(p.host_dep, ''), COALESCE(p.policy_url, ''), %s
		FROM policy_infos p
		WHERE %s
		ORDER BY p.id
		LIMIT $%d OFFSET $%d
	`, bookmarkExpr, where, len(args)-1, len(args))

	rows, err := s.db.Q(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("policy: search: %w", err)
	}
	defer rows.Close()

	var result []Row
	for rows.Next() {
		var r Row
		if err := rows.Scan(&r.ID, &r.PolicyName, &r.PolicyIntro, &r.HostDep, &r.PolicyURL, &r.IsBookmarked); err != nil {
			return nil, 0, fmt.Errorf("policy: scan: %w", err)
		}
		result = append(result, r)
	}
	return result, total, rows.Err()
}

func (s *PostgresStore) FindByID(ctx context.Context, id int64, userID *uuid.UUID) (*Row, error) {
	args := []any{id}
	bookmarkExpr := "FALSE AS is_bookmarked"
	if userID != nil {
		args = append(args, *userID)
		bookmarkExpr = `EXISTS (
			SELECT 1 FROM policy_info_bookmarks b
			WHERE b.policy_info_id = p.id AND b.user_id = $2
		) AS is_bookmarked`
	}

	var r Row
	err := s.db.Q(ctx).QueryRowContext(ctx, fmt.Sprintf(`
		SELECT p.id, p.policy_name, COALESCE(p.policy_intro, ''),
		       COALESCE(p.host_dep, ''), COALESCE(p.policy_url, ''), %s
		FROM policy_infos p
		WHERE p.id = $1 AND p.status = 'ACTIVE'
	`, bookmarkExpr), args...).Scan(
		&r.ID, &r.PolicyName, &r.PolicyIntro, &r.HostDep, &r.PolicyURL, &r.IsBookmarked,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("policy: find: %w", err)
	}
	return &r, nil
}

func (s *PostgresStore) Update(ctx context.Context, id int64, upd UpdateReq) (bool, error) {
	res, err := s.db.Q(ctx).ExecContext(ctx, `
		UPDATE policy_infos
		SET policy_name = $2, policy_intro = $3, host_dep = $4, policy_url = $5
		WHERE id = $1 AND status = 'ACTIVE'
	`, id, upd.PolicyName, upd.PolicyIntro, upd.HostDep, upd.PolicyURL)
	if err != nil {
		return false, fmt.Errorf("policy: update: %w", err)
	}
	return affected(res)
}

func (s *PostgresStore) SoftDelete(ctx context.Context, id int64) (bool, error) {
	res, err := s.db.Q(ctx).ExecContext(ctx, `
		UPDATE policy_infos
		SET status = 'DELETE'
		WHERE id = $1 AND status = 'ACTIVE'
	`, id)
	if err != nil {
		return false, fmt.Errorf("policy: delete: %w", err)
	}
	return affected(res)
}

func affected(res sql.Result) (bool, error) {
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
