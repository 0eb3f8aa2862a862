package memory

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/dwikikusuma/shoping-cart/internal/cart/domain"
	catalog "github.com/dwikikusuma/shoping-cart/internal/catalog/domain"
)

func TestStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	empty, err := s.Load(ctx)
	if err != nil || len(empty) != 0 {
		t.Fatalf("expected empty cart from a fresh slot, got %v err=%v", empty, err)
	}

	cart := domain.Cart{
		{Product: catalog.Product{ID: 2, Title: "Sneaker", Price: decimal.RequireFromString("139.9")}, Amount: 1},
		{Product: catalog.Product{ID: 1, Title: "Runner", Price: decimal.RequireFromString("179.9")}, Amount: 3},
	}
	if err := s.Save(ctx, cart); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(got) != 2 || got[0].ID != 2 || got[1].ID != 1 || got[1].Amount != 3 {
		t.Fatalf("unexpected cart %+v", got)
	}
	if s.Saves() != 1 {
		t.Fatalf("expected 1 save, got %d", s.Saves())
	}
	if string(s.data[:1]) != "[" {
		t.Fatalf("slot must hold a json array, got %s", s.data)
	}
}
