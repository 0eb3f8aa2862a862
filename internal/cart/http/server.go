package http

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/dwikikusuma/shoping-cart/internal/cart/app"
	"github.com/dwikikusuma/shoping-cart/internal/cart/domain"
	"github.com/dwikikusuma/shoping-cart/pkg/httpjson"
)

// Operations is the cart API behind the HTTP routes. app.Local serves it in
// process; the gRPC client serves it from a remote storefront.
type Operations interface {
	GetCart(ctx context.Context) (app.Outcome, error)
	AddProduct(ctx context.Context, productID int64) (app.Outcome, error)
	RemoveProduct(ctx context.Context, productID int64) (app.Outcome, error)
	UpdateProductAmount(ctx context.Context, req app.UpdateProductAmount) (app.Outcome, error)
}

// Watcher streams committed carts, starting with the current one.
type Watcher interface {
	Watch(ctx context.Context) (<-chan domain.Cart, error)
}

type Server struct {
	ops     Operations
	watch   Watcher
	log     *slog.Logger
	streams *streams
}

// NewServer wires the cart routes. watch may be nil, in which case
// GET /cart/ws is not registered.
func NewServer(ops Operations, watch Watcher, log *slog.Logger) *Server {
	return &Server{ops: ops, watch: watch, log: log, streams: newStreams()}
}

func (s *Server) Routes(r chi.Router) {
	r.Route("/cart", func(r chi.Router) {
		r.Get("/", s.GetCart)
		r.Post("/products", s.AddProduct)
		r.Put("/products/{productId}", s.UpdateProductAmount)
		r.Delete("/products/{productId}", s.RemoveProduct)
		if s.watch != nil {
			r.Get("/ws", s.Watch)
		}
	})
}

type cartResponse struct {
	Items    domain.Cart      `json:"items"`
	Count    int              `json:"count"`
	Total    decimal.Decimal  `json:"total"`
	Warnings []domain.Warning `json:"warnings"`
}

func newCartResponse(out app.Outcome) cartResponse {
	items := out.Cart
	if items == nil {
		items = domain.Cart{}
	}
	warnings := out.Warnings
	if warnings == nil {
		warnings = []domain.Warning{}
	}
	return cartResponse{
		Items:    items,
		Count:    items.Count(),
		Total:    items.Total(),
		Warnings: warnings,
	}
}

func (s *Server) GetCart(w http.ResponseWriter, r *http.Request) {
	out, err := s.ops.GetCart(r.Context())
	s.respond(w, r, out, err)
}

type addProductRequest struct {
	ProductID int64 `json:"productId"`
}

func (s *Server) AddProduct(w http.ResponseWriter, r *http.Request) {
	var req addProductRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.WriteError(w, http.StatusBadRequest, "INVALID_ARGUMENT", err.Error())
		return
	}
	if req.ProductID <= 0 {
		httpjson.WriteError(w, http.StatusBadRequest, "INVALID_ARGUMENT", "productId must be positive")
		return
	}

	out, err := s.ops.AddProduct(r.Context(), req.ProductID)
	s.respond(w, r, out, err)
}

type updateAmountRequest struct {
	Amount *int `json:"amount"`
}

func (s *Server) UpdateProductAmount(w http.ResponseWriter, r *http.Request) {
	id, err := httpjson.PositiveID(chi.URLParam(r, "productId"))
	if err != nil {
		httpjson.WriteError(w, http.StatusBadRequest, "INVALID_ARGUMENT", err.Error())
		return
	}

	var req updateAmountRequest
	if err := httpjson.Decode(r, &req); err != nil || req.Amount == nil {
		httpjson.WriteError(w, http.StatusBadRequest, "INVALID_ARGUMENT", "amount is required")
		return
	}

	out, err := s.ops.UpdateProductAmount(r.Context(), app.UpdateProductAmount{ProductID: id, Amount: *req.Amount})
	s.respond(w, r, out, err)
}

func (s *Server) RemoveProduct(w http.ResponseWriter, r *http.Request) {
	id, err := httpjson.PositiveID(chi.URLParam(r, "productId"))
	if err != nil {
		httpjson.WriteError(w, http.StatusBadRequest, "INVALID_ARGUMENT", err.Error())
		return
	}

	out, err := s.ops.RemoveProduct(r.Context(), id)
	s.respond(w, r, out, err)
}

// respond writes the cart even when the operation raised warnings; only
// transport failures turn into error responses.
func (s *Server) respond(w http.ResponseWriter, r *http.Request, out app.Outcome, err error) {
	if err != nil {
		code, kind, msg := httpStatusFromGRPC(err)
		if code >= http.StatusInternalServerError {
			s.log.ErrorContext(r.Context(), "cart request failed",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Any("err", err),
			)
		}
		httpjson.WriteError(w, code, kind, msg)
		return
	}
	httpjson.Write(w, http.StatusOK, newCartResponse(out))
}
