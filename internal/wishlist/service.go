package wishlist

import (
	"context"

	"github.com/shopease/shopease-backend/pkg/db/models"
	pkgerrors "github.com/shopease/shopease-backend/pkg/errors"
)

// Session is the slice of the shopping session the wishlist service
// works against.
type Session interface {
	ID() string
	Lock()
	Unlock()
	Wishlist() *Set
}

type productLoader interface {
	GetProduct(ctx context.Context, id int64) (*models.Product, error)
}

// ToggleResult reports the membership state after a toggle.
type ToggleResult struct {
	ProductID int64 `json:"product_id"`
	Saved     bool  `json:"saved"`
}

// IDsDTO is the wishlist projection the SPA renders heart state from.
type IDsDTO struct {
	ProductIDs []int64 `json:"product_ids"`
}

// Service exposes wishlist membership operations.
type Service interface {
	Toggle(ctx context.Context, sess Session, productID int64) (ToggleResult, error)
	List(ctx context.Context, sess Session) IDsDTO
}

type service struct {
	catalog productLoader
}

// NewService builds a wishlist service with the required dependencies.
func NewService(catalog productLoader) (Service, error) {
	if catalog == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "catalog loader is required")
	}
	return &service{catalog: catalog}, nil
}

// Toggle validates the product exists and flips its membership.
func (s *service) Toggle(ctx context.Context, sess Session, productID int64) (ToggleResult, error) {
	if _, err := s.catalog.GetProduct(ctx, productID); err != nil {
		return ToggleResult{}, err
	}

	sess.Lock()
	defer sess.Unlock()
	saved := sess.Wishlist().Toggle(productID)
	return ToggleResult{ProductID: productID, Saved: saved}, nil
}

// List returns the saved product ids.
func (s *service) List(_ context.Context, sess Session) IDsDTO {
	sess.Lock()
	defer sess.Unlock()
	return IDsDTO{ProductIDs: sess.Wishlist().IDs()}
}
