package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"sync"

	"github.com/dwikikusuma/shoping-cart/internal/catalog/app"
	"github.com/dwikikusuma/shoping-cart/internal/catalog/domain"
)

// Seed mirrors the db.json layout served by the inventory mock.
type Seed struct {
	Stock    []domain.Stock   `json:"stock"`
	Products []domain.Product `json:"products"`
}

func DecodeSeed(r io.Reader) (Seed, error) {
	var seed Seed
	if err := json.NewDecoder(r).Decode(&seed); err != nil {
		return Seed{}, fmt.Errorf("decode inventory seed: %w", err)
	}
	for _, st := range seed.Stock {
		if st.ProductID <= 0 || st.Amount < 0 {
			return Seed{}, fmt.Errorf("invalid stock record %+v: %w", st, app.ErrInvalidInput)
		}
	}
	return seed, nil
}

type ProductRepo struct {
	mu       sync.RWMutex
	products map[int64]domain.Product
	stock    map[int64]int
}

func NewProductRepo(seed Seed) *ProductRepo {
	r := &ProductRepo{
		products: make(map[int64]domain.Product, len(seed.Products)),
		stock:    make(map[int64]int, len(seed.Stock)),
	}
	for _, p := range seed.Products {
		r.products[p.ID] = p
	}
	for _, st := range seed.Stock {
		r.stock[st.ProductID] = st.Amount
	}
	return r
}

func (r *ProductRepo) Get(ctx context.Context, id int64) (domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.products[id]
	if !ok {
		return domain.Product{}, app.ErrNotFound
	}
	return p, nil
}

// List returns products ordered by id.
func (r *ProductRepo) List(ctx context.Context) ([]domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Product, 0, len(r.products))
	for _, p := range r.products {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *ProductRepo) Stock(ctx context.Context, productID int64) (domain.Stock, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	amount, ok := r.stock[productID]
	if !ok {
		return domain.Stock{}, app.ErrNotFound
	}
	return domain.Stock{ProductID: productID, Amount: amount}, nil
}

func (r *ProductRepo) SetStock(ctx context.Context, productID int64, amount int) (domain.Stock, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.products[productID]; !ok {
		return domain.Stock{}, app.ErrNotFound
	}
	r.stock[productID] = amount
	return domain.Stock{ProductID: productID, Amount: amount}, nil
}
