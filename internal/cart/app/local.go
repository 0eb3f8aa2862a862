package app

import (
	"context"

	"github.com/dwikikusuma/shoping-cart/internal/cart/domain"
	"github.com/dwikikusuma/shoping-cart/internal/cart/notify"
)

// Outcome is the cart after a call plus the warnings that call raised.
type Outcome struct {
	Cart     domain.Cart
	Warnings []domain.Warning
}

// Local serves request/response transports from an in-process Service.
// Its methods never fail; the error results exist so remote clients can
// satisfy the same contract.
type Local struct {
	svc *Service
}

func NewLocal(svc *Service) *Local {
	return &Local{svc: svc}
}

func (l *Local) GetCart(ctx context.Context) (Outcome, error) {
	return Outcome{Cart: l.svc.Cart()}, nil
}

func (l *Local) AddProduct(ctx context.Context, productID int64) (Outcome, error) {
	ctx, rec := notify.WithRecorder(ctx)
	c := l.svc.AddProduct(ctx, productID)
	return Outcome{Cart: c, Warnings: rec.Warnings()}, nil
}

func (l *Local) RemoveProduct(ctx context.Context, productID int64) (Outcome, error) {
	ctx, rec := notify.WithRecorder(ctx)
	c := l.svc.RemoveProduct(ctx, productID)
	return Outcome{Cart: c, Warnings: rec.Warnings()}, nil
}

func (l *Local) UpdateProductAmount(ctx context.Context, req UpdateProductAmount) (Outcome, error) {
	ctx, rec := notify.WithRecorder(ctx)
	c := l.svc.UpdateProductAmount(ctx, req)
	return Outcome{Cart: c, Warnings: rec.Warnings()}, nil
}

// Watch streams committed carts, starting with the current one, until ctx is
// done or the service closes.
func (l *Local) Watch(ctx context.Context) (<-chan domain.Cart, error) {
	ch, cancel := l.svc.Subscribe(8)
	go func() {
		<-ctx.Done()
		cancel()
	}()
	return ch, nil
}
