package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dwikikusuma/shoping-cart/internal/catalog/app"
	"github.com/dwikikusuma/shoping-cart/pkg/httpjson"
)

// Server exposes the inventory API consumed by the storefront:
// GET /stock/{id}, PUT /stock/{id}, GET /products/{id}, GET /products.
type Server struct {
	svc *app.Service
	log *slog.Logger
}

func NewServer(svc *app.Service, log *slog.Logger) *Server {
	return &Server{svc: svc, log: log}
}

func (s *Server) Routes(r chi.Router) {
	r.Get("/products", s.ListProducts)
	r.Get("/products/{id}", s.GetProduct)
	r.Get("/stock/{id}", s.GetStock)
	r.Put("/stock/{id}", s.SetStock)
}

func (s *Server) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := s.svc.ListProducts(r.Context())
	if err != nil {
		s.writeErr(w, r, err)
		return
	}
	httpjson.Write(w, http.StatusOK, products)
}

func (s *Server) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, err := httpjson.PositiveID(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.WriteError(w, http.StatusBadRequest, "invalid_argument", err.Error())
		return
	}

	p, err := s.svc.GetProduct(r.Context(), id)
	if err != nil {
		s.writeErr(w, r, err)
		return
	}
	httpjson.Write(w, http.StatusOK, p)
}

func (s *Server) GetStock(w http.ResponseWriter, r *http.Request) {
	id, err := httpjson.PositiveID(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.WriteError(w, http.StatusBadRequest, "invalid_argument", err.Error())
		return
	}

	st, err := s.svc.GetStock(r.Context(), id)
	if err != nil {
		s.writeErr(w, r, err)
		return
	}
	httpjson.Write(w, http.StatusOK, st)
}

type setStockRequest struct {
	Amount *int `json:"amount"`
}

func (s *Server) SetStock(w http.ResponseWriter, r *http.Request) {
	id, err := httpjson.PositiveID(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.WriteError(w, http.StatusBadRequest, "invalid_argument", err.Error())
		return
	}

	var req setStockRequest
	if err := httpjson.Decode(r, &req); err != nil || req.Amount == nil {
		httpjson.WriteError(w, http.StatusBadRequest, "invalid_argument", "amount is required")
		return
	}

	st, err := s.svc.SetStock(r.Context(), id, *req.Amount)
	if err != nil {
		s.writeErr(w, r, err)
		return
	}
	s.log.Info("stock updated", slog.Int64("product_id", st.ProductID), slog.Int("amount", st.Amount))
	httpjson.Write(w, http.StatusOK, st)
}

func (s *Server) writeErr(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, app.ErrInvalidInput):
		httpjson.WriteError(w, http.StatusBadRequest, "invalid_argument", err.Error())
	case errors.Is(err, app.ErrNotFound):
		httpjson.WriteError(w, http.StatusNotFound, "not_found", err.Error())
	default:
		s.log.Error("inventory request failed", slog.String("path", r.URL.Path), slog.Any("err", err))
		httpjson.WriteError(w, http.StatusInternalServerError, "internal", "internal error")
	}
}
