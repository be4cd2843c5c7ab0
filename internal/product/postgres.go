package product

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/FinFellows/Server/internal/db"
	"github.com/FinFellows/Server/internal/pagination"
)

type PostgresStore struct {
	db *db.DB
}

func NewPostgresStore(db *db.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) SearchProducts(
	ctx context.Context,
	cond SearchCondition,
	req pagination.Request,
	productType Type,
	userID *uuid.UUID,
) ([]SearchRow, int64, error) {
	where := []string{"p.status = 'ACTIVE'", "p.product_type = $1"}
	args := []any{string(productType)}

	if len(cond.Banks) > 0 {
		args = append(args, pq.Array(cond.Banks))
		where = append(where, fmt.Sprintf("p.company_name = ANY($%d)", len(args)))
	}
	if cond.JoinDeny != nil {
		args = append(args, *cond.JoinDeny)
		where = append(where, fmt.Sprintf("p.join_deny = $%d", len(args)))
	}
	if cond.Keyword != "" {
		args = append(args, "%"+cond.Keyword+"%")
		where = append(where, fmt.Sprintf("(p.product_name ILIKE $%d OR p.company_name ILIKE $%d)", len(args), len(args)))
	}

	whereClause := strings.Join(where, " AND ")

	var total int64
	err := s.db.Q(ctx).QueryRowContext(ctx,
		"SELECT COUNT(*) FROM financial_products p WHERE "+whereClause,
		args...,
	).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("product: count: %w", err)
	}

	bookmarkJoin := "FALSE AS is_bookmarked"
	if userID != nil {
		args = append(args, *userID)
		bookmarkJoin = fmt.Sprintf(`EXISTS (
			SELECT 1 FROM financial_product_bookmarks b
			WHERE b.financial_product_id = p.id AND b.user_id = $%d
		) AS is_bookmarked`, len(args))
	}

	args = append(args, req.Limit(), req.Offset())
	query := fmt.Sprintf(`
		SELECT p.id, p.product_type, COALESCE(p.disclosure_month, ''), p.company_name,
		       p.product_name, COALESCE(p.join_way, ''), COALESCE(p.maturity_interest_rate, ''),
		       COALESCE(p.special_condition, ''), COALESCE(p.join_deny, 0),
		       COALESCE(p.join_member, ''), COALESCE(p.etc_note, ''),
		       COALESCE(p.max_limit, 0), COALESCE(p.bank_group_no, ''),
		       %s
		FROM financial_products p
		WHERE %s
		ORDER BY p.id
		LIMIT $%d OFFSET $%d
	`, bookmarkJoin, whereClause, len(args)-1, len(args))

	rows, err := s.db.Q(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("product: search: %w", err)
	}
	defer rows.Close()

	var result []SearchRow
	for rows.Next() {
		var r SearchRow
		if err := rows.Scan(
			&r.ID, &r.ProductType, &r.DisclosureMonth, &r.CompanyName,
			&r.ProductName, &r.JoinWay, &r.MaturityInterestRate,
			&r.SpecialCondition, &r.JoinDeny, &r.JoinMember, &r.EtcNote,
			&r.MaxLimit, &r.BankGroupNo, &r.IsBookmarked,
		); err != nil {
			return nil, 0, fmt.Errorf("product: scan: %w", err)
		}
		result = append(result, r)
	}
	return result, total, rows.Err()
}

func (s *PostgresStore) FindByID(ctx context.Context, id int64) (*FinancialProduct, error) {
	var p FinancialProduct
	err := s.db.Q(ctx).QueryRowContext(ctx, `
		SELECT id, product_type, COALESCE(disclosure_month, ''), company_name,
		       product_name, COALESCE(join_way, ''), COALESCE(maturity_interest_rate, ''),
		       COALESCE(special_condition, ''), COALESCE(join_deny, 0),
		       COALESCE(join_member, ''), COALESCE(etc_note, ''),
		       COALESCE(max_limit, 0), COALESCE(bank_group_no, '')
		FROM financial_products
		WHERE id = $1 AND status = 'ACTIVE'
	`, id).Scan(
		&p.ID, &p.ProductType, &p.DisclosureMonth, &p.CompanyName,
		&p.ProductName, &p.JoinWay, &p.MaturityInterestRate,
		&p.SpecialCondition, &p.JoinDeny, &p.JoinMember, &p.EtcNote,
		&p.MaxLimit, &p.BankGroupNo,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("product: find: %w", err)
	}
	return &p, nil
}

func (s *PostgresStore) OptionsByProduct(ctx context.Context, productID int64) ([]Option, error) {
	rows, err := s.db.Q(ctx).QueryContext(ctx, `
		SELECT id, financial_product_id, COALESCE(interest_rate_type, ''),
		       savings_term, COALESCE(interest_rate, ''),
		       COALESCE(maximum_preferred_interest_rate, '')
		FROM financial_product_options
		WHERE financial_product_id = $1
		ORDER BY savings_term, id
	`, productID)
	if err != nil {
		return nil, fmt.Errorf("product: options: %w", err)
	}
	defer rows.Close()

	var options []Option
	for rows.Next() {
		var o Option
		if err := rows.Scan(
			&o.ID, &o.FinancialProductID, &o.InterestRateType,
			&o.SavingsTerm, &o.InterestRate, &o.MaximumPreferredInterestRate,
		); err != nil {
			return nil, fmt.Errorf("product: options scan: %w", err)
		}
		options = append(options, o)
	}
	return options, rows.Err()
}

func (s *PostgresStore) IsBookmarked(ctx context.Context, userID uuid.UUID, productID int64) (bool, error) {
	var bookmarked bool
	err := s.db.Q(ctx).QueryRowContext(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM financial_product_bookmarks
			WHERE user_id = $1 AND financial_product_id = $2
		)
	`, userID, productID).Scan(&bookmarked)
	if err != nil {
		return false, fmt.Errorf("product: bookmark check: %w", err)
	}
	return bookmarked, nil
}

func (s *PostgresStore) Banks(ctx context.Context, bankGroupNo string) ([]string, error) {
	rows, err := s.db.Q(ctx).QueryContext(ctx, `
		SELECT DISTINCT company_name
		FROM financial_products
		WHERE status = 'ACTIVE' AND bank_group_no = $1
		ORDER BY company_name
	`, bankGroupNo)
	if err != nil {
		return nil, fmt.Errorf("product: banks: %w", err)
	}
	defer rows.Close()

	var banks []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("product: banks scan: %w", err)
		}
		banks = append(banks, name)
	}
	return banks, rows.Err()
}

func (s *PostgresStore) SearchCMA(
	ctx context.Context,
	cond SearchCondition,
	req pagination.Request,
	userID *uuid.UUID,
) ([]CmaRow, int64, error) {
	where := []string{"c.status = 'ACTIVE'"}
	var args []any

	if cond.Keyword != "" {
		args = append(args, "%"+cond.Keyword+"%")
		where = append(where, fmt.Sprintf("(c.product_name ILIKE $%d OR c.company_name ILIKE $%d)", len(args), len(args)))
	}

	whereClause := strings.Join(where, " AND ")

	var total int64
	err := s.db.Q(ctx).QueryRowContext(ctx,
		"SELECT COUNT(*) FROM cma c WHERE "+whereClause,
		args...,
	).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("product: cma count: %w", err)
	}

	bookmarkJoin := "FALSE AS is_bookmarked"
	if userID != nil {
		args = append(args, *userID)
		bookmarkJoin = fmt.Sprintf(`EXISTS (
			SELECT 1 FROM cma_bookmarks b
			WHERE b.cma_id = c.id AND b.user_id = $%d
		) AS is_bookmarked`, len(args))
	}

	args = append(args, req.Limit(), req.Offset())
	query := fmt.Sprintf(`
		SELECT c.id, c.company_name, c.product_name, COALESCE(c.cma_type, ''),
		       COALESCE(c.maturity_interest_rate, ''), COALESCE(c.special_condition, ''),
		       %s
		FROM cma c
		WHERE %s
		ORDER BY c.id
		LIMIT $%d OFFSET $%d
	`, bookmarkJoin, whereClause, len(args)-1, len(args))

	rows, err := s.db.Q(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("product: cma search: %w", err)
	}
	defer rows.Close()

	var result []CmaRow
	for rows.Next() {
		var r CmaRow
		if err := rows.Scan(
			&r.ID, &r.CompanyName, &r.ProductName, &r.CmaType,
			&r.MaturityInterestRate, &r.SpecialCondition, &r.IsBookmarked,
		); err != nil {
			return nil, 0, fmt.Errorf("product: cma scan: %w", err)
		}
		result = append(result, r)
	}
	return result, total, rows.Err()
}

func (s *PostgresStore) FindCMAByID(ctx context.Context, id int64) (*CMA, error) {
	var c CMA
	err := s.db.Q(ctx).QueryRowContext(ctx, `
		SELECT id, company_name, product_name, COALESCE(cma_type, ''),
		       COALESCE(maturity_interest_rate, ''), COALESCE(special_condition, '')
		FROM cma
		WHERE id = $1 AND status = 'ACTIVE'
	`, id).Scan(
		&c.ID, &c.CompanyName, &c.ProductName, &c.CmaType,
		&c.MaturityInterestRate, &c.SpecialCondition,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("product: cma find: %w", err)
	}
	return &c, nil
}
