package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dwikikusuma/shoping-cart/internal/cart/domain"
	catalogapp "github.com/dwikikusuma/shoping-cart/internal/catalog/app"
	"github.com/dwikikusuma/shoping-cart/internal/view/app"
	"github.com/dwikikusuma/shoping-cart/pkg/httpjson"
)

type Server struct {
	view *app.View
	log  *slog.Logger
}

func NewServer(view *app.View, log *slog.Logger) *Server {
	return &Server{view: view, log: log}
}

func (s *Server) Routes(r chi.Router) {
	r.Get("/products", s.Home)
	r.Post("/products/{id}/add", s.AddToCart)
}

type homeResponse struct {
	Products []app.Card `json:"products"`
}

func (s *Server) Home(w http.ResponseWriter, r *http.Request) {
	cards, err := s.view.Home(r.Context())
	if err != nil {
		s.writeErr(w, r, err)
		return
	}
	httpjson.Write(w, http.StatusOK, homeResponse{Products: cards})
}

type addToCartResponse struct {
	ProductID  int64            `json:"productId"`
	CartAmount int              `json:"cartAmount"`
	Count      int              `json:"count"`
	Warnings   []domain.Warning `json:"warnings"`
}

func (s *Server) AddToCart(w http.ResponseWriter, r *http.Request) {
	id, err := httpjson.PositiveID(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.WriteError(w, http.StatusBadRequest, "invalid_argument", err.Error())
		return
	}

	out, err := s.view.AddToCart(r.Context(), id)
	if err != nil {
		s.writeErr(w, r, err)
		return
	}

	warnings := out.Warnings
	if warnings == nil {
		warnings = []domain.Warning{}
	}
	httpjson.Write(w, http.StatusOK, addToCartResponse{
		ProductID:  id,
		CartAmount: out.Cart.Amounts()[id],
		Count:      out.Cart.Count(),
		Warnings:   warnings,
	})
}

func (s *Server) writeErr(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, catalogapp.ErrNotFound) {
		httpjson.WriteError(w, http.StatusNotFound, "not_found", err.Error())
		return
	}
	s.log.ErrorContext(r.Context(), "product view failed", slog.String("path", r.URL.Path), slog.Any("err", err))
	httpjson.WriteError(w, http.StatusBadGateway, "inventory_unavailable", "could not load products")
}
