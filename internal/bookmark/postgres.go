package bookmark

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/FinFellows/Server/internal/db"
	"github.com/FinFellows/Server/internal/policy"
	"github.com/FinFellows/Server/internal/post"
	"github.com/FinFellows/Server/internal/product"
)

// foreignKeyViolation covers inserts against a missing target row.
const foreignKeyViolation = "23503"

type tableSpec struct {
	table  string
	column string
}

var targetTables = map[Target]tableSpec{
	TargetProduct: {table: "financial_product_bookmarks", column: "financial_product_id"},
	TargetCMA:     {table: "cma_bookmarks", column: "cma_id"},
	TargetPolicy:  {table: "policy_info_bookmarks", column: "policy_info_id"},
	TargetPost:    {table: "post_bookmarks", column: "post_id"},
}

type PostgresStore struct {
	db *db.DB
}

func NewPostgresStore(db *db.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Add(ctx context.Context, target Target, userID uuid.UUID, targetID int64) error {
	spec, ok := targetTables[target]
	if !ok {
		return fmt.Errorf("bookmark: unknown target %q", target)
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (user_id, %s)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING
	`, spec.table, spec.column)

	if _, err := s.db.Q(ctx).ExecContext(ctx, query, userID, targetID); err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == foreignKeyViolation {
			return ErrTargetNotFound
		}
		return fmt.Errorf("bookmark: add: %w", err)
	}
	return nil
}

func (s *PostgresStore) Remove(ctx context.Context, target Target, userID uuid.UUID, targetID int64) error {
	spec, ok := targetTables[target]
	if !ok {
		return fmt.Errorf("bookmark: unknown target %q", target)
	}

	query := fmt.Sprintf(`
		DELETE FROM %s
		WHERE user_id = $1 AND %s = $2
	`, spec.table, spec.column)

	res, err := s.db.Q(ctx).ExecContext(ctx, query, userID, targetID)
	if err != nil {
		return fmt.Errorf("bookmark: remove: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrBookmarkNotFound
	}
	return nil
}

func (s *PostgresStore) ProductBookmarks(ctx context.Context, userID uuid.UUID) (ProductBookmarks, error) {
	out := ProductBookmarks{
		FinancialProducts: []product.FinancialProduct{},
		Cma:               []product.CMA{},
	}

	rows, err := s.db.Q(ctx).QueryContext(ctx, `
		SELECT p.id, p.product_type, COALESCE(p.disclosure_month, ''), p.company_name,
		       p.product_name, COALESCE(p.join_way, ''), COALESCE(p.maturity_interest_rate, ''),
		       COALESCE(p.special_condition, ''), COALESCE(p.join_deny, 0),
		       COALESCE(p.join_member, ''), COALESCE(p.etc_note, ''),
		       COALESCE(p.max_limit, 0), COALESCE(p.bank_group_no, '')
		FROM financial_product_bookmarks b
		JOIN financial_products p ON p.id = b.financial_product_id
		WHERE b.user_id = $1 AND p.status = 'ACTIVE'
		ORDER BY b.id
	`, userID)
	if err != nil {
		return out, fmt.Errorf("bookmark: product list: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var p product.FinancialProduct
		if err := rows.Scan(
			&p.ID, &p.ProductType, &p.DisclosureMonth, &p.CompanyName,
			&p.ProductName, &p.JoinWay, &p.MaturityInterestRate,
			&p.SpecialCondition, &p.JoinDeny, &p.JoinMember, &p.EtcNote,
			&p.MaxLimit, &p.BankGroupNo,
		); err != nil {
			return out, fmt.Errorf("bookmark: product scan: %w", err)
		}
		out.FinancialProducts = append(out.FinancialProducts, p)
	}
	if err := rows.Err(); err != nil {
		return out, err
	}

	cmaRows, err := s.db.Q(ctx).QueryContext(ctx, `
		SELECT c.id, c.company_name, c.product_name, COALESCE(c.cma_type, ''),
		       COALESCE(c.maturity_interest_rate, ''), COALESCE(c.special_condition, '')
		FROM cma_bookmarks b
		JOIN cma c ON c.id = b.cma_id
		WHERE b.user_id = $1 AND c.status = 'ACTIVE'
		ORDER BY b.id
	`, userID)
	if err != nil {
		return out, fmt.Errorf("bookmark: cma list: %w", err)
	}
	defer cmaRows.Close()

	for cmaRows.Next() {
		var c product.CMA
		if err := cmaRows.Scan(
			&c.ID, &c.CompanyName, &c.ProductName, &c.CmaType,
			&c.MaturityInterestRate, &c.SpecialCondition,
		); err != nil {
			return out, fmt.Errorf("bookmark: cma scan: %w", err)
		}
		out.Cma = append(out.Cma, c)
	}
	return out, cmaRows.Err()
}

func (s *PostgresStore) PolicyBookmarks(ctx context.Context, userID uuid.UUID) ([]policy.PolicyInfo, error) {
	rows, err := s.db.Q(ctx).QueryContext(ctx, `
		SELECT p.id, p.policy_name, COALESCE(p.policy_intro, ''),
		       COALESCE(p.host_dep, ''), COALESCE(p.policy_url, '')
		FROM policy_info_bookmarks b
		JOIN policy_infos p ON p.id = b.policy_info_id
		WHERE b.user_id = $1 AND p.status = 'ACTIVE'
		ORDER BY b.id
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("bookmark: policy list: %w", err)
	}
	defer rows.Close()

	result := []policy.PolicyInfo{}
	for rows.Next() {
		var p policy.PolicyInfo
		if err := rows.Scan(&p.ID, &p.PolicyName, &p.PolicyIntro, &p.HostDep, &p.PolicyURL); err != nil {
			return nil, fmt.Errorf("bookmark: policy scan: %w", err)
		}
		result = append(result, p)
	}
	return result, rows.Err()
}

func (s *PostgresStore) PostBookmarks(ctx context.Context, userID uuid.UUID) ([]post.Post, error) {
	rows, err := s.db.Q(ctx).QueryContext(ctx, `
		SELECT p.id, p.content_type, p.title, p.url
		FROM post_bookmarks b
		JOIN posts p ON p.id = b.post_id
		WHERE b.user_id = $1 AND p.status = 'ACTIVE'
		ORDER BY b.id
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("bookmark: post list: %w", err)
	}
	defer rows.Close()

	result := []post.Post{}
	for rows.Next() {
		var p post.Post
		if err := rows.Scan(&p.ID, &p.ContentType, &p.Title, &p.URL); err != nil {
			return nil, fmt.Errorf("bookmark: post scan: %w", err)
		}
		result = append(result, p)
	}
	return result, rows.Err()
}

func (s *PostgresStore) RemoveAllProductBookmarks(ctx context.Context) error {
	return s.db.Atomic(ctx, func(ctx context.Context) error {
		if _, err := s.db.Q(ctx).ExecContext(ctx, `DELETE FROM financial_product_bookmarks`); err != nil {
			return fmt.Errorf("bookmark: clear products: %w", err)
		}
		if _, err := s.db.Q(ctx).ExecContext(ctx, `DELETE FROM cma_bookmarks`); err != nil {
			return fmt.Errorf("bookmark: clear cma: %w", err)
		}
		return nil
	})
}
