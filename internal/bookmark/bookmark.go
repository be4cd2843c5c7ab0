// Package bookmark manages per-user bookmarks over financial products,
// CMA accounts, policy infos, and posts.
package bookmark

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/FinFellows/Server/internal/policy"
	"github.com/FinFellows/Server/internal/post"
	"github.com/FinFellows/Server/internal/product"
)

var (
	ErrTargetNotFound   = errors.New("bookmark target not found")
	ErrBookmarkNotFound = errors.New("bookmark not found")
)

// Target identifies which table a bookmark points into.
type Target string

const (
	TargetProduct Target = "financial_product"
	TargetCMA     Target = "cma"
	TargetPolicy  Target = "policy_info"
	TargetPost    Target = "post"
)

// ProductBookmarks groups a user's product-side bookmarks the way the
// listing endpoint returns them.
type ProductBookmarks struct {
	FinancialProducts []product.FinancialProduct `json:"financial_products"`
	Cma               []product.CMA              `json:"cma"`
}

// Store persists the bookmark join rows. Add reports ErrTargetNotFound
// when the target row does not exist; Remove reports
// ErrBookmarkNotFound when there is nothing to remove.
type Store interface {
	Add(ctx context.Context, target Target, userID uuid.UUID, targetID int64) error
	Remove(ctx context.Context, target Target, userID uuid.UUID, targetID int64) error

	ProductBookmarks(ctx context.Context, userID uuid.UUID) (ProductBookmarks, error)
	PolicyBookmarks(ctx context.Context, userID uuid.UUID) ([]policy.PolicyInfo, error)
	PostBookmarks(ctx context.Context, userID uuid.UUID) ([]post.Post, error)

	// RemoveAllProductBookmarks clears every financial-product and CMA
	// bookmark across all users.
	RemoveAllProductBookmarks(ctx context.Context) error
}

type Service struct {
	store Store
	posts post.Store
}

func NewService(store Store, posts post.Store) *Service {
	return &Service{store: store, posts: posts}
}

type Message struct {
	Message string `json:"message"`
}

func (s *Service) AddProduct(ctx context.Context, userID uuid.UUID, productID int64) (Message, error) {
	if err := s.store.Add(ctx, TargetProduct, userID, productID); err != nil {
		return Message{}, err
	}
	return Message{Message: "Bookmark added."}, nil
}

func (s *Service) RemoveProduct(ctx context.Context, userID uuid.UUID, productID int64) (Message, error) {
	if err := s.store.Remove(ctx, TargetProduct, userID, productID); err != nil {
		return Message{}, err
	}
	return Message{Message: "Bookmark removed."}, nil
}

func (s *Service) AddCMA(ctx context.Context, userID uuid.UUID, cmaID int64) (Message, error) {
	if err := s.store.Add(ctx, TargetCMA, userID, cmaID); err != nil {
		return Message{}, err
	}
	return Message{Message: "Bookmark added."}, nil
}

func (s *Service) RemoveCMA(ctx context.Context, userID uuid.UUID, cmaID int64) (Message, error) {
	if err := s.store.Remove(ctx, TargetCMA, userID, cmaID); err != nil {
		return Message{}, err
	}
	return Message{Message: "Bookmark removed."}, nil
}

func (s *Service) AddPolicy(ctx context.Context, userID uuid.UUID, policyID int64) (Message, error) {
	if err := s.store.Add(ctx, TargetPolicy, userID, policyID); err != nil {
		return Message{}, err
	}
	return Message{Message: "Bookmark added."}, nil
}

func (s *Service) RemovePolicy(ctx context.Context, userID uuid.UUID, policyID int64) (Message, error) {
	if err := s.store.Remove(ctx, TargetPolicy, userID, policyID); err != nil {
		return Message{}, err
	}
	return Message{Message: "Bookmark removed."}, nil
}

// AddPost bookmarks a post after checking it exists under the given
// content type.
func (s *Service) AddPost(ctx context.Context, userID uuid.UUID, postID int64, contentType post.ContentType) (Message, error) {
	p, err := s.posts.FindByID(ctx, postID, contentType)
	if err != nil {
		return Message{}, err
	}
	if p == nil {
		return Message{}, ErrTargetNotFound
	}

	if err := s.store.Add(ctx, TargetPost, userID, postID); err != nil {
		return Message{}, err
	}
	return Message{Message: "Bookmark added."}, nil
}

func (s *Service) RemovePost(ctx context.Context, userID uuid.UUID, postID int64, contentType post.ContentType) (Message, error) {
	p, err := s.posts.FindByID(ctx, postID, contentType)
	if err != nil {
		return Message{}, err
	}
	if p == nil {
		return Message{}, ErrTargetNotFound
	}

	if err := s.store.Remove(ctx, TargetPost, userID, postID); err != nil {
		return Message{}, err
	}
	return Message{Message: "Bookmark removed."}, nil
}

func (s *Service) ProductBookmarks(ctx context.Context, userID uuid.UUID) (ProductBookmarks, error) {
	return s.store.ProductBookmarks(ctx, userID)
}

func (s *Service) PolicyBookmarks(ctx context.Context, userID uuid.UUID) ([]policy.PolicyInfo, error) {
	return s.store.PolicyBookmarks(ctx, userID)
}

func (s *Service) PostBookmarks(ctx context.Context, userID uuid.UUID) ([]post.Post, error) {
	return s.store.PostBookmarks(ctx, userID)
}

func (s *Service) RemoveAllProductBookmarks(ctx context.Context) (Message, error) {
	if err := s.store.RemoveAllProductBookmarks(ctx); err != nil {
		return Message{}, err
	}
	return Message{Message: "All bookmarks deleted successfully."}, nil
}
