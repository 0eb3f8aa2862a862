package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/dwikikusuma/shoping-cart/internal/cart/domain"
	"github.com/dwikikusuma/shoping-cart/internal/cart/notify"
	catalog "github.com/dwikikusuma/shoping-cart/internal/catalog/domain"
)

var (
	ErrNotInCart = errors.New("product not in cart")
	ErrClosed    = errors.New("cart service closed")
)

type UpdateProductAmount struct {
	ProductID int64 `json:"productId"`
	Amount    int   `json:"amount"`
}

type Option func(*Service)

// WithCart sets the cart the service starts from, usually the persisted slot.
func WithCart(c domain.Cart) Option {
	return func(s *Service) { s.cart = c.Normalize() }
}

func WithChangeHook(h ChangeHook) Option {
	return func(s *Service) { s.hooks = append(s.hooks, h) }
}

func WithLogger(log *slog.Logger) Option {
	return func(s *Service) { s.log = log }
}

// Service owns the session cart. It checks stock before every add or
// quantity change, runs change hooks (write-through) before committing, and
// publishes every committed cart to subscribers.
//
// Operations never return errors. Failures leave the cart unchanged and are
// reported as warnings to the notifier and to any notify.Recorder carried by
// the call's context.
type Service struct {
	inventory Inventory
	notifier  notify.Notifier
	log       *slog.Logger
	hooks     []ChangeHook
	locks     *productLocks
	feed      *feed

	mu     sync.Mutex
	cart   domain.Cart
	closed bool
}

func NewService(inventory Inventory, notifier notify.Notifier, opts ...Option) *Service {
	if notifier == nil {
		notifier = notify.Nop
	}
	s := &Service{
		inventory: inventory,
		notifier:  notifier,
		log:       slog.Default(),
		locks:     newProductLocks(),
		feed:      newFeed(),
		cart:      domain.Cart{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Cart returns the current cart. The returned slice must not be modified.
func (s *Service) Cart() domain.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart
}

// Subscribe returns a channel that first receives the current cart and then
// every committed cart. cancel closes the channel; Close does too.
func (s *Service) Subscribe(buffer int) (<-chan domain.Cart, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ch, cancel := s.feed.subscribe(buffer)
	if !s.closed {
		offer(ch, s.cart)
	}
	return ch, cancel
}

// Close ends all subscriptions. Later mutations fail with ErrClosed.
func (s *Service) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
	s.feed.close()
}

// AddProduct puts one unit of productID in the cart. When the product is
// already there it asks for the current amount plus one instead, so the cart
// never holds two items for the same product. Warnings still read as adds.
func (s *Service) AddProduct(ctx context.Context, productID int64) domain.Cart {
	unlock, err := s.locks.lock(ctx, productID)
	if err != nil {
		return s.fail(ctx, domain.OpAdd, productID, err)
	}
	defer unlock()

	if existing, ok := s.Cart().Find(productID); ok {
		return s.setAmount(ctx, domain.OpAdd, productID, existing.Amount+1)
	}

	const amount = 1

	inStock, err := s.checkStock(ctx, domain.OpAdd, productID, amount)
	if err != nil {
		return s.fail(ctx, domain.OpAdd, productID, err)
	}
	if !inStock {
		return s.Cart()
	}

	product, err := s.fetchProduct(ctx, productID)
	if err != nil {
		return s.fail(ctx, domain.OpAdd, productID, err)
	}

	next, err := s.commit(ctx, func(cur domain.Cart) domain.Cart {
		return cur.Append(domain.CartItem{Product: product, Amount: amount})
	})
	if err != nil {
		return s.fail(ctx, domain.OpAdd, productID, err)
	}
	return next
}

// RemoveProduct drops the item for productID. Removing an absent product is a
// no-op: nothing is written or published.
func (s *Service) RemoveProduct(ctx context.Context, productID int64) domain.Cart {
	unlock, err := s.locks.lock(ctx, productID)
	if err != nil {
		return s.fail(ctx, domain.OpRemove, productID, err)
	}
	defer unlock()

	if _, ok := s.Cart().Find(productID); !ok {
		return s.Cart()
	}

	next, err := s.commit(ctx, func(cur domain.Cart) domain.Cart {
		return cur.Without(productID)
	})
	if err != nil {
		return s.fail(ctx, domain.OpRemove, productID, err)
	}
	return next
}

// UpdateProductAmount sets the absolute amount of a product already in the
// cart. Non-positive amounts are ignored without a warning; going to zero is
// RemoveProduct's job.
func (s *Service) UpdateProductAmount(ctx context.Context, req UpdateProductAmount) domain.Cart {
	if req.Amount <= 0 {
		return s.Cart()
	}

	unlock, err := s.locks.lock(ctx, req.ProductID)
	if err != nil {
		return s.fail(ctx, domain.OpUpdate, req.ProductID, err)
	}
	defer unlock()

	return s.setAmount(ctx, domain.OpUpdate, req.ProductID, req.Amount)
}

// setAmount expects the product lock to be held. op names the entry point
// the warnings are reported under.
func (s *Service) setAmount(ctx context.Context, op domain.Op, productID int64, amount int) domain.Cart {
	if _, ok := s.Cart().Find(productID); !ok {
		return s.fail(ctx, op, productID, ErrNotInCart)
	}

	inStock, err := s.checkStock(ctx, op, productID, amount)
	if err != nil {
		return s.fail(ctx, op, productID, err)
	}
	if !inStock {
		return s.Cart()
	}

	next, err := s.commit(ctx, func(cur domain.Cart) domain.Cart {
		return cur.WithAmount(productID, amount)
	})
	if err != nil {
		return s.fail(ctx, op, productID, err)
	}
	return next
}

// checkStock is the one place stock is enforced. On insufficient stock it
// emits the out-of-stock warning itself and reports false.
func (s *Service) checkStock(ctx context.Context, op domain.Op, productID int64, amount int) (bool, error) {
	stock, err := s.inventory.Stock(ctx, productID)
	if err != nil {
		return false, fmt.Errorf("check stock: %w", err)
	}
	if !stock.Covers(amount) {
		s.log.InfoContext(ctx, "stock check rejected",
			slog.Int64("product_id", productID),
			slog.Int("requested", amount),
			slog.Int("available", stock.Amount),
		)
		s.warn(ctx, domain.OutOfStockWarning(op, productID))
		return false, nil
	}
	return true, nil
}

func (s *Service) fetchProduct(ctx context.Context, productID int64) (catalog.Product, error) {
	p, err := s.inventory.Product(ctx, productID)
	if err != nil {
		return catalog.Product{}, fmt.Errorf("fetch product: %w", err)
	}
	return p, nil
}

// commit derives the next cart from the current one, runs the change hooks
// and only then swaps it in and publishes it.
func (s *Service) commit(ctx context.Context, mutate func(domain.Cart) domain.Cart) (domain.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, ErrClosed
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	next := mutate(s.cart)
	for _, h := range s.hooks {
		if err := h.CartChanged(ctx, next); err != nil {
			return nil, fmt.Errorf("change hook: %w", err)
		}
	}

	s.cart = next
	s.feed.publish(next)
	return next, nil
}

func (s *Service) fail(ctx context.Context, op domain.Op, productID int64, err error) domain.Cart {
	s.log.ErrorContext(ctx, "cart operation failed",
		slog.String("op", string(op)),
		slog.Int64("product_id", productID),
		slog.Any("err", err),
	)
	s.warn(ctx, domain.FailureWarning(op, productID))
	return s.Cart()
}

func (s *Service) warn(ctx context.Context, w domain.Warning) {
	s.notifier.Warn(ctx, w)
	notify.Record(ctx, w)
}
