package app

import (
	"context"

	"github.com/dwikikusuma/shoping-cart/internal/cart/domain"
	catalog "github.com/dwikikusuma/shoping-cart/internal/catalog/domain"
)

// Inventory is the part of the inventory API the cart depends on.
type Inventory interface {
	Stock(ctx context.Context, productID int64) (catalog.Stock, error)
	Product(ctx context.Context, productID int64) (catalog.Product, error)
}

// Store holds the persisted cart slot. Save overwrites the whole value.
type Store interface {
	Load(ctx context.Context) (domain.Cart, error)
	Save(ctx context.Context, cart domain.Cart) error
}

// ChangeHook runs with the next cart before it is committed. An error aborts
// the mutation and leaves the cart unchanged.
type ChangeHook interface {
	CartChanged(ctx context.Context, next domain.Cart) error
}

type ChangeHookFunc func(ctx context.Context, next domain.Cart) error

func (f ChangeHookFunc) CartChanged(ctx context.Context, next domain.Cart) error {
	return f(ctx, next)
}

// PersistTo writes every change through to store.
func PersistTo(store Store) ChangeHook {
	return ChangeHookFunc(store.Save)
}
