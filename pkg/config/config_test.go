package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("CART_STORE", "")
	t.Setenv("INVENTORY_TIMEOUT", "")

	cfg := Load()
	if cfg.Cart.Backend != "file" || cfg.Cart.Slot != "cart" {
		t.Fatalf("unexpected cart defaults: %+v", cfg.Cart)
	}
	if cfg.InventoryTimeout != 10*time.Second {
		t.Fatalf("expected 10s inventory timeout, got %s", cfg.InventoryTimeout)
	}
	if cfg.InventoryPort != 3333 {
		t.Fatalf("expected inventory port 3333, got %d", cfg.InventoryPort)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("CART_STORE", "redis")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("INVENTORY_TIMEOUT", "250ms")

	cfg := Load()
	if cfg.Cart.Backend != "redis" {
		t.Fatalf("expected redis backend, got %q", cfg.Cart.Backend)
	}
	if cfg.HTTPPort != 9090 {
		t.Fatalf("expected port 9090, got %d", cfg.HTTPPort)
	}
	if cfg.InventoryTimeout != 250*time.Millisecond {
		t.Fatalf("expected 250ms, got %s", cfg.InventoryTimeout)
	}
}

func TestLoadIgnoresMalformedNumbers(t *testing.T) {
	t.Setenv("GRPC_PORT", "not-a-port")
	t.Setenv("INVENTORY_TIMEOUT", "soon")

	cfg := Load()
	if cfg.GRPCPort != 8081 {
		t.Fatalf("expected default grpc port, got %d", cfg.GRPCPort)
	}
	if cfg.InventoryTimeout != 10*time.Second {
		t.Fatalf("expected default timeout, got %s", cfg.InventoryTimeout)
	}
}
