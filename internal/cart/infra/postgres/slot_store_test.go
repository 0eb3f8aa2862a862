package postgres

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dwikikusuma/shoping-cart/internal/cart/domain"
	catalog "github.com/dwikikusuma/shoping-cart/internal/catalog/domain"
	"github.com/dwikikusuma/shoping-cart/pkg/postgres"
)

// Runs against a real database only when CART_TEST_POSTGRES_DSN is set.
func TestSlotStore(t *testing.T) {
	dsn := os.Getenv("CART_TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("CART_TEST_POSTGRES_DSN not set")
	}

	db, err := postgres.OpenDSN(dsn)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	slot := "test-" + uuid.NewString()
	store := NewSlotStore(db, slot)
	if err := store.EnsureSchema(ctx); err != nil {
		t.Fatalf("EnsureSchema: %v", err)
	}
	t.Cleanup(func() {
		db.ExecContext(context.Background(), `DELETE FROM cart_slots WHERE name = $1`, slot)
	})

	t.Run("missing slot loads empty", func(t *testing.T) {
		cart, err := store.Load(ctx)
		if err != nil {
			t.Fatalf("Load: %v", err)
		}
		if len(cart) != 0 {
			t.Fatalf("expected empty cart, got %+v", cart)
		}
	})

	t.Run("save overwrites", func(t *testing.T) {
		first := domain.Cart{{Product: catalog.Product{ID: 1, Title: "a", Price: decimal.NewFromInt(10)}, Amount: 1}}
		second := domain.Cart{
			{Product: catalog.Product{ID: 2, Title: "b", Price: decimal.RequireFromString("12.9")}, Amount: 3},
			{Product: catalog.Product{ID: 1, Title: "a", Price: decimal.NewFromInt(10)}, Amount: 1},
		}
		if err := store.Save(ctx, first); err != nil {
			t.Fatalf("Save first: %v", err)
		}
		if err := store.Save(ctx, second); err != nil {
			t.Fatalf("Save second: %v", err)
		}

		got, err := store.Load(ctx)
		if err != nil {
			t.Fatalf("Load: %v", err)
		}
		if len(got) != 2 || got[0].ID != 2 || got[0].Amount != 3 {
			t.Fatalf("unexpected cart: %+v", got)
		}
		if !got[0].Price.Equal(decimal.RequireFromString("12.9")) {
			t.Fatalf("price mangled: %s", got[0].Price)
		}
	})
}
