package product

import (
	"context"
	"slices"

	"github.com/google/uuid"

	"github.com/FinFellows/Server/internal/pagination"
)

type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

func (s *Service) FindDeposits(ctx context.Context, cond SearchCondition, req pagination.Request, userID *uuid.UUID) (pagination.Page[SearchRow], error) {
	return s.find(ctx, cond, req, TypeDeposit, userID)
}

func (s *Service) FindSavings(ctx context.Context, cond SearchCondition, req pagination.Request, userID *uuid.UUID) (pagination.Page[SearchRow], error) {
	return s.find(ctx, cond, req, TypeSaving, userID)
}

func (s *Service) find(ctx context.Context, cond SearchCondition, req pagination.Request, t Type, userID *uuid.UUID) (pagination.Page[SearchRow], error) {
	rows, total, err := s.store.SearchProducts(ctx, cond, req, t, userID)
	if err != nil {
		return pagination.Page[SearchRow]{}, err
	}
	return pagination.NewPage(rows, req, total), nil
}

// Detail builds the detail view for a product of the expected type:
// options, distinct sorted terms, and the highest-preferential-rate
// option. A product of the wrong type is ErrProductMismatch.
func (s *Service) Detail(ctx context.Context, id int64, expected Type, userID *uuid.UUID) (DetailRes, error) {
	p, err := s.store.FindByID(ctx, id)
	if err != nil {
		return DetailRes{}, err
	}
	if p == nil {
		return DetailRes{}, ErrInvalidProduct
	}
	if p.ProductType != expected {
		return DetailRes{}, ErrProductMismatch
	}

	bookmarked := false
	if userID != nil {
		bookmarked, err = s.store.IsBookmarked(ctx, *userID, id)
		if err != nil {
			return DetailRes{}, err
		}
	}

	options, err := s.store.OptionsByProduct(ctx, id)
	if err != nil {
		return DetailRes{}, err
	}

	terms := make([]int, 0, len(options))
	for _, o := range options {
		if !slices.Contains(terms, o.SavingsTerm) {
			terms = append(terms, o.SavingsTerm)
		}
	}
	slices.Sort(terms)

	var maxOption *Option
	for i := range options {
		if maxOption == nil || options[i].MaximumPreferredInterestRate > maxOption.MaximumPreferredInterestRate {
			maxOption = &options[i]
		}
	}

	return DetailRes{
		FinancialProduct: *p,
		IsBookmarked:     bookmarked,
		Options:          options,
		Terms:            terms,
		MaxOption:        maxOption,
	}, nil
}

func (s *Service) FindCMA(ctx context.Context, cond SearchCondition, req pagination.Request, userID *uuid.UUID) (pagination.Page[CmaRow], error) {
	rows, total, err := s.store.SearchCMA(ctx, cond, req, userID)
	if err != nil {
		return pagination.Page[CmaRow]{}, err
	}
	return pagination.NewPage(rows, req, total), nil
}

func (s *Service) CmaDetail(ctx context.Context, id int64) (*CMA, error) {
	cma, err := s.store.FindCMAByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if cma == nil {
		return nil, ErrInvalidProduct
	}
	return cma, nil
}

func (s *Service) Banks(ctx context.Context, bankGroupNo string) ([]string, error) {
	return s.store.Banks(ctx, bankGroupNo)
}
