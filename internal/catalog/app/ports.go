package app

import (
	"context"

	"github.com/dwikikusuma/shoping-cart/internal/catalog/domain"
)

type ProductRepo interface {
	Get(ctx context.Context, id int64) (domain.Product, error)
	List(ctx context.Context) ([]domain.Product, error)
	Stock(ctx context.Context, productID int64) (domain.Stock, error)
	SetStock(ctx context.Context, productID int64, amount int) (domain.Stock, error)
}
