package cart

import (
	"context"

	"github.com/shopease/shopease-backend/internal/notifications"
	"github.com/shopease/shopease-backend/pkg/db/models"
	pkgerrors "github.com/shopease/shopease-backend/pkg/errors"
)

// Session is the slice of the shopping session the cart service works
// against. Locking the session serializes the action stream: exactly one
// logical writer mutates a ledger at a time.
type Session interface {
	ID() string
	Lock()
	Unlock()
	Ledger() *Ledger
	Feed() *notifications.Feed
}

type productLoader interface {
	GetProduct(ctx context.Context, id int64) (*models.Product, error)
}

// Service exposes the cart ledger operations.
type Service interface {
	Fetch(ctx context.Context, sess Session) DTO
	AddItem(ctx context.Context, sess Session, productID int64) (DTO, error)
	SetQuantity(ctx context.Context, sess Session, productID int64, quantity int) (DTO, error)
	Clear(ctx context.Context, sess Session) DTO
}

type service struct {
	catalog productLoader
	emitter *notifications.Emitter
}

// NewService builds a cart service with the required dependencies.
func NewService(catalog productLoader, emitter *notifications.Emitter) (Service, error) {
	if catalog == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "catalog loader is required")
	}
	if emitter == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "notification emitter is required")
	}
	return &service{catalog: catalog, emitter: emitter}, nil
}

// Fetch snapshots the current lines and totals.
func (s *service) Fetch(_ context.Context, sess Session) DTO {
	sess.Lock()
	defer sess.Unlock()
	return newDTO(sess.Ledger())
}

// AddItem resolves the product against the catalog and adds or increments
// its cart line, then reports the item-added notification.
func (s *service) AddItem(ctx context.Context, sess Session, productID int64) (DTO, error) {
	product, err := s.catalog.GetProduct(ctx, productID)
	if err != nil {
		return DTO{}, err
	}

	sess.Lock()
	sess.Ledger().AddOrIncrement(*product)
	dto := newDTO(sess.Ledger())
	sess.Unlock()

	s.emitter.Emit(ctx, sess.Feed(), notifications.ItemAdded(product.Name))
	return dto, nil
}

// SetQuantity applies an explicit quantity to an existing line; zero
// removes it. Quantities for products without a line are ignored rather
// than creating one.
func (s *service) SetQuantity(_ context.Context, sess Session, productID int64, quantity int) (DTO, error) {
	sess.Lock()
	defer sess.Unlock()
	if err := sess.Ledger().SetQuantity(productID, quantity); err != nil {
		return DTO{}, err
	}
	return newDTO(sess.Ledger()), nil
}

// Clear empties the ledger.
func (s *service) Clear(_ context.Context, sess Session) DTO {
	sess.Lock()
	defer sess.Unlock()
	sess.Ledger().Clear()
	return newDTO(sess.Ledger())
}
