package grpc

import (
	"context"
	"log/slog"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/dwikikusuma/shoping-cart/internal/cart/app"
	"github.com/dwikikusuma/shoping-cart/internal/cart/domain"
)

// Backend is what the server exposes; app.Local implements it.
type Backend interface {
	GetCart(ctx context.Context) (app.Outcome, error)
	AddProduct(ctx context.Context, productID int64) (app.Outcome, error)
	RemoveProduct(ctx context.Context, productID int64) (app.Outcome, error)
	UpdateProductAmount(ctx context.Context, req app.UpdateProductAmount) (app.Outcome, error)
	Watch(ctx context.Context) (<-chan domain.Cart, error)
}

type Server struct {
	backend Backend
	log     *slog.Logger
}

func NewServer(backend Backend, log *slog.Logger) *Server {
	return &Server{backend: backend, log: log}
}

func (s *Server) GetCart(ctx context.Context, _ *Empty) (*Cart, error) {
	out, err := s.backend.GetCart(ctx)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "error getting cart: %v", err)
	}
	return toProto(out), nil
}

func (s *Server) AddProduct(ctx context.Context, req *ProductRequest) (*Cart, error) {
	if err := validateProductID(req.ProductID); err != nil {
		return nil, err
	}
	out, err := s.backend.AddProduct(ctx, req.ProductID)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "error adding product: %v", err)
	}
	return toProto(out), nil
}

func (s *Server) RemoveProduct(ctx context.Context, req *ProductRequest) (*Cart, error) {
	if err := validateProductID(req.ProductID); err != nil {
		return nil, err
	}
	out, err := s.backend.RemoveProduct(ctx, req.ProductID)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "error removing product: %v", err)
	}
	return toProto(out), nil
}

func (s *Server) UpdateProductAmount(ctx context.Context, req *UpdateAmountRequest) (*Cart, error) {
	if err := validateProductID(req.ProductID); err != nil {
		return nil, err
	}
	out, err := s.backend.UpdateProductAmount(ctx, app.UpdateProductAmount{
		ProductID: req.ProductID,
		Amount:    req.Amount,
	})
	if err != nil {
		return nil, status.Errorf(codes.Internal, "error changing product quantity: %v", err)
	}
	return toProto(out), nil
}

// WatchCart sends the current cart and then every committed cart until the
// client goes away or the service closes.
func (s *Server) WatchCart(_ *Empty, stream grpc.ServerStream) error {
	ctx := stream.Context()
	carts, err := s.backend.Watch(ctx)
	if err != nil {
		return status.Errorf(codes.Unavailable, "error watching cart: %v", err)
	}

	for cart := range carts {
		if err := stream.SendMsg(toProto(app.Outcome{Cart: cart})); err != nil {
			s.log.DebugContext(ctx, "watch stream send failed", slog.Any("err", err))
			return err
		}
	}
	return ctx.Err()
}

func validateProductID(id int64) error {
	if id <= 0 {
		return status.Errorf(codes.InvalidArgument, "productId must be positive, got %d", id)
	}
	return nil
}
