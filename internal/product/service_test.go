package product

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/FinFellows/Server/internal/pagination"
)

type fakeStore struct {
	products   map[int64]FinancialProduct
	options    map[int64][]Option
	bookmarked map[uuid.UUID]map[int64]bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		products:   map[int64]FinancialProduct{},
		options:    map[int64][]Option{},
		bookmarked: map[uuid.UUID]map[int64]bool{},
	}
}

func (s *fakeStore) SearchProducts(_ context.Context, _ SearchCondition, req pagination.Request, productType Type, _ *uuid.UUID) ([]SearchRow, int64, error) {
	var rows []SearchRow
	for _, p := range s.products {
		if p.ProductType == productType {
			rows = append(rows, SearchRow{FinancialProduct: p})
		}
	}
	return rows, int64(len(rows)), nil
}

func (s *fakeStore) FindByID(_ context.Context, id int64) (*FinancialProduct, error) {
	p, ok := s.products[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (s *fakeStore) OptionsByProduct(_ context.Context, productID int64) ([]Option, error) {
	return s.options[productID], nil
}

func (s *fakeStore) IsBookmarked(_ context.Context, userID uuid.UUID, productID int64) (bool, error) {
	return s.bookmarked[userID][productID], nil
}

func (s *fakeStore) Banks(_ context.Context, _ string) ([]string, error) {
	return []string{"BankA", "BankB"}, nil
}

func (s *fakeStore) SearchCMA(_ context.Context, _ SearchCondition, _ pagination.Request, _ *uuid.UUID) ([]CmaRow, int64, error) {
	return nil, 0, nil
}

func (s *fakeStore) FindCMAByID(_ context.Context, _ int64) (*CMA, error) {
	return nil, nil
}

func seedDeposit(s *fakeStore, id int64) {
	s.products[id] = FinancialProduct{
		ID:          id,
		ProductType: TypeDeposit,
		CompanyName: "TestBank",
		ProductName: "Test Deposit",
	}
}

func TestDetailUnknownProduct(t *testing.T) {
	svc := NewService(newFakeStore())

	_, err := svc.Detail(context.Background(), 404, TypeDeposit, nil)
	require.ErrorIs(t, err, ErrInvalidProduct)
}

func TestDetailTypeMismatch(t *testing.T) {
	store := newFakeStore()
	seedDeposit(store, 1)
	svc := NewService(store)

	_, err := svc.Detail(context.Background(), 1, TypeSaving, nil)
	require.ErrorIs(t, err, ErrProductMismatch)
}

func TestDetailTermsAndMaxOption(t *testing.T) {
	store := newFakeStore()
	seedDeposit(store, 1)
	store.options[1] = []Option{
		{ID: 10, SavingsTerm: 12, MaximumPreferredInterestRate: "3.50"},
		{ID: 11, SavingsTerm: 6, MaximumPreferredInterestRate: "4.10"},
		{ID: 12, SavingsTerm: 12, MaximumPreferredInterestRate: "3.90"},
	}
	svc := NewService(store)

	res, err := svc.Detail(context.Background(), 1, TypeDeposit, nil)
	require.NoError(t, err)

	require.Equal(t, []int{6, 12}, res.Terms)
	require.NotNil(t, res.MaxOption)
	require.Equal(t, int64(11), res.MaxOption.ID)
	require.False(t, res.IsBookmarked)
	require.Len(t, res.Options, 3)
}

func TestDetailNoOptions(t *testing.T) {
	store := newFakeStore()
	seedDeposit(store, 1)
	svc := NewService(store)

	res, err := svc.Detail(context.Background(), 1, TypeDeposit, nil)
	require.NoError(t, err)
	require.Empty(t, res.Terms)
	require.Nil(t, res.MaxOption)
}

func TestDetailBookmarkFlag(t *testing.T) {
	store := newFakeStore()
	seedDeposit(store, 1)
	userID := uuid.New()
	store.bookmarked[userID] = map[int64]bool{1: true}
	svc := NewService(store)

	res, err := svc.Detail(context.Background(), 1, TypeDeposit, &userID)
	require.NoError(t, err)
	require.True(t, res.IsBookmarked)
}

func TestFindDepositsPagination(t *testing.T) {
	store := newFakeStore()
	seedDeposit(store, 1)
	seedDeposit(store, 2)
	svc := NewService(store)

	page, err := svc.FindDeposits(context.Background(), SearchCondition{}, pagination.Request{Page: 0, Size: 10}, nil)
	require.NoError(t, err)
	require.Equal(t, int64(2), page.TotalElements)
	require.Equal(t, 1, page.TotalPages)
	require.Len(t, page.Content, 2)
}

func TestCmaDetailUnknown(t *testing.T) {
	svc := NewService(newFakeStore())

	_, err := svc.CmaDetail(context.Background(), 404)
	require.ErrorIs(t, err, ErrInvalidProduct)
}
