// Package product serves the financial product catalog: deposits,
// savings, and CMA accounts, with paged filtered reads.
package product

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/FinFellows/Server/internal/pagination"
)

var (
	ErrInvalidProduct  = errors.New("financial product not found")
	ErrProductMismatch = errors.New("product type mismatch")
)

type Type string

const (
	TypeDeposit Type = "DEPOSIT"
	TypeSaving  Type = "SAVING"
)

type FinancialProduct struct {
	ID                   int64  `json:"id"`
	ProductType          Type   `json:"product_type"`
	DisclosureMonth      string `json:"disclosure_month"`
	CompanyName          string `json:"company_name"`
	ProductName          string `json:"product_name"`
	JoinWay              string `json:"join_way"`
	MaturityInterestRate string `json:"maturity_interest_rate"`
	SpecialCondition     string `json:"special_condition"`
	JoinDeny             int    `json:"join_deny"`
	JoinMember           string `json:"join_member"`
	EtcNote              string `json:"etc_note"`
	MaxLimit             int    `json:"max_limit"`
	BankGroupNo          string `json:"bank_group_no"`
}

type Option struct {
	ID                           int64  `json:"id"`
	FinancialProductID           int64  `json:"financial_product_id"`
	InterestRateType             string `json:"interest_rate_type"`
	SavingsTerm                  int    `json:"savings_term"`
	InterestRate                 string `json:"interest_rate"`
	MaximumPreferredInterestRate string `json:"maximum_preferred_interest_rate"`
}

type CMA struct {
	ID                   int64  `json:"id"`
	CompanyName          string `json:"company_name"`
	ProductName          string `json:"product_name"`
	CmaType              string `json:"cma_type"`
	MaturityInterestRate string `json:"maturity_interest_rate"`
	SpecialCondition     string `json:"special_condition"`
}

// SearchCondition filters a product listing.
type SearchCondition struct {
	Banks    []string
	JoinDeny *int
	Keyword  string
}

// SearchRow is one listing entry with the caller's bookmark flag.
type SearchRow struct {
	FinancialProduct
	IsBookmarked bool `json:"is_bookmarked"`
}

// CmaRow is one CMA listing entry with the caller's bookmark flag.
type CmaRow struct {
	CMA
	IsBookmarked bool `json:"is_bookmarked"`
}

// DetailRes is the product detail view: the product, its rate options,
// the distinct sorted savings terms, and the option with the highest
// preferential rate.
type DetailRes struct {
	FinancialProduct
	IsBookmarked bool     `json:"is_bookmarked"`
	Options      []Option `json:"options"`
	Terms        []int    `json:"terms"`
	MaxOption    *Option  `json:"max_option"`
}

// Store is the persistence surface of the catalog. Single-row lookups
// return (nil, nil) when absent.
type Store interface {
	SearchProducts(ctx context.Context, cond SearchCondition, req pagination.Request, productType Type, userID *uuid.UUID) ([]SearchRow, int64, error)
	FindByID(ctx context.Context, id int64) (*FinancialProduct, error)
	OptionsByProduct(ctx context.Context, productID int64) ([]Option, error)
	IsBookmarked(ctx context.Context, userID uuid.UUID, productID int64) (bool, error)
	Banks(ctx context.Context, bankGroupNo string) ([]string, error)

	SearchCMA(ctx context.Context, cond SearchCondition, req pagination.Request, userID *uuid.UUID) ([]CmaRow, int64, error)
	FindCMAByID(ctx context.Context, id int64) (*CMA, error)
}
