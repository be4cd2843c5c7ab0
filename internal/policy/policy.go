// Package policy serves government financial policy infos: keyword
// search, detail, admin update and soft delete.
package policy

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/FinFellows/Server/internal/pagination"
)

var ErrInvalidPolicy = errors.New("policy info not found")

type PolicyInfo struct {
	ID          int64  `json:"id"`
	PolicyName  string `json:"policy_name"`
	PolicyIntro string `json:"policy_intro"`
	HostDep     string `json:"host_dep"`
	PolicyURL   string `json:"policy_url"`
}

// Row is one listing entry with the caller's bookmark flag.
type Row struct {
	PolicyInfo
	IsBookmarked bool `json:"is_bookmarked"`
}

// UpdateReq carries the editable policy fields.
type UpdateReq struct {
	PolicyName  string `json:"policy_name"`
	PolicyIntro string `json:"policy_intro"`
	HostDep     string `json:"host_dep"`
	PolicyURL   string `json:"policy_url"`
}

type Store interface {
	Search(ctx context.Context, keyword string, req pagination.Request, userID *uuid.UUID) ([]Row, int64, error)
	FindByID(ctx context.Context, id int64, userID *uuid.UUID) (*Row, error)
	Update(ctx context.Context, id int64, upd UpdateReq) (bool, error)
	SoftDelete(ctx context.Context, id int64) (bool, error)
}

type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

func (s *Service) Find(ctx context.Context, keyword string, req pagination.Request, userID *uuid.UUID) (pagination.Page[Row], error) {
	rows, total, err := s.store.Search(ctx, keyword, req, userID)
	if err != nil {
		return pagination.Page[Row]{}, err
	}
	return pagination.NewPage(rows, req, total), nil
}

func (s *Service) Detail(ctx context.Context, id int64, userID *uuid.UUID) (*Row, error) {
	row, err := s.store.FindByID(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, ErrInvalidPolicy
	}
	return row, nil
}

func (s *Service) Update(ctx context.Context, id int64, upd UpdateReq) error {
	found, err := s.store.Update(ctx, id, upd)
	if err != nil {
		return err
	}
	if !found {
		return ErrInvalidPolicy
	}
	return nil
}

// Delete marks the policy as deleted; reads filter it out afterwards.
func (s *Service) Delete(ctx context.Context, id int64) error {
	found, err := s.store.SoftDelete(ctx, id)
	if err != nil {
		return err
	}
	if !found {
		return ErrInvalidPolicy
	}
	return nil
}
