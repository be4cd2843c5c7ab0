package policy

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/FinFellows/Server/internal/pagination"
)

type fakeStore struct {
	rows map[int64]PolicyInfo
}

func (s *fakeStore) Search(_ context.Context, keyword string, _ pagination.Request, _ *uuid.UUID) ([]Row, int64, error) {
	var out []Row
	for _, p := range s.rows {
		out = append(out, Row{PolicyInfo: p})
	}
	return out, int64(len(out)), nil
}

func (s *fakeStore) FindByID(_ context.Context, id int64, _ *uuid.UUID) (*Row, error) {
	p, ok := s.rows[id]
	if !ok {
		return nil, nil
	}
	return &Row{PolicyInfo: p}, nil
}

func (s *fakeStore) Update(_ context.Context, id int64, upd UpdateReq) (bool, error) {
	p, ok := s.rows[id]
	if !ok {
		return false, nil
	}
	p.PolicyName = upd.PolicyName
	p.PolicyIntro = upd.PolicyIntro
	p.HostDep = upd.HostDep
	p.PolicyURL = upd.PolicyURL
	s.rows[id] = p
	return true, nil
}

func (s *fakeStore) SoftDelete(_ context.Context, id int64) (bool, error) {
	if _, ok := s.rows[id]; !ok {
		return false, nil
	}
	delete(s.rows, id)
	return true, nil
}

func newTestService() (*Service, *fakeStore) {
	store := &fakeStore{rows: map[int64]PolicyInfo{
		1: {ID: 1, PolicyName: "Youth Savings Support", HostDep: "FSC"},
	}}
	return NewService(store), store
}

func TestDetail(t *testing.T) {
	svc, _ := newTestService()

	row, err := svc.Detail(context.Background(), 1, nil)
	require.NoError(t, err)
	require.Equal(t, "Youth Savings Support", row.PolicyName)

	_, err = svc.Detail(context.Background(), 404, nil)
	require.ErrorIs(t, err, ErrInvalidPolicy)
}

func TestUpdate(t *testing.T) {
	svc, store := newTestService()

	err := svc.Update(context.Background(), 1, UpdateReq{PolicyName: "Renamed"})
	require.NoError(t, err)
	require.Equal(t, "Renamed", store.rows[1].PolicyName)

	err = svc.Update(context.Background(), 404, UpdateReq{})
	require.ErrorIs(t, err, ErrInvalidPolicy)
}

func TestDelete(t *testing.T) {
	svc, store := newTestService()

	require.NoError(t, svc.Delete(context.Background(), 1))
	require.Empty(t, store.rows)

	require.ErrorIs(t, svc.Delete(context.Background(), 1), ErrInvalidPolicy)
}
