package main

import (
	"context"
	"fmt"

	goredis "github.com/redis/go-redis/v9"

	cartapp "github.com/dwikikusuma/shoping-cart/internal/cart/app"
	"github.com/dwikikusuma/shoping-cart/internal/cart/infra/file"
	"github.com/dwikikusuma/shoping-cart/internal/cart/infra/memory"
	cartpg "github.com/dwikikusuma/shoping-cart/internal/cart/infra/postgres"
	cartredis "github.com/dwikikusuma/shoping-cart/internal/cart/infra/redis"
	"github.com/dwikikusuma/shoping-cart/pkg/config"
	"github.com/dwikikusuma/shoping-cart/pkg/postgres"
)

// openStore builds the cart slot backend named by cfg.Backend. The returned
// close func releases its connections.
func openStore(ctx context.Context, cfg config.CartStore) (cartapp.Store, func() error, error) {
	noop := func() error { return nil }

	switch cfg.Backend {
	case "memory":
		return memory.NewStore(), noop, nil

	case "file":
		s, err := file.NewStore(cfg.Dir, cfg.Slot)
		if err != nil {
			return nil, nil, err
		}
		return s, noop, nil

	case "redis":
		client := goredis.NewClient(&goredis.Options{Addr: cfg.RedisAddr})
		s := cartredis.NewStore(client, cfg.RedisPrefix, cfg.Slot)
		if err := s.Ping(ctx); err != nil {
			client.Close()
			return nil, nil, fmt.Errorf("redis ping %s: %w", cfg.RedisAddr, err)
		}
		return s, client.Close, nil

	case "postgres":
		db, err := postgres.Open(postgres.Config{
			Host: cfg.PostgresHost,
			Port: cfg.PostgresPort,
			User: cfg.PostgresUser,
			Pass: cfg.PostgresPass,
			DB:   cfg.PostgresDB,
		})
		if err != nil {
			return nil, nil, err
		}
		s := cartpg.NewSlotStore(db, cfg.Slot)
		if err := s.EnsureSchema(ctx); err != nil {
			db.Close()
			return nil, nil, err
		}
		return s, db.Close, nil

	default:
		return nil, nil, fmt.Errorf("unknown CART_STORE %q (want memory, file, redis or postgres)", cfg.Backend)
	}
}
