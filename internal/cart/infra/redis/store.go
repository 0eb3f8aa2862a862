package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/dwikikusuma/shoping-cart/internal/cart/domain"
)

// Store keeps the cart slot as a JSON string under one key.
type Store struct {
	client redis.Cmdable
	key    string
}

func NewStore(client redis.Cmdable, prefix, slot string) *Store {
	return &Store{client: client, key: prefix + slot}
}

func (s *Store) Load(ctx context.Context) (domain.Cart, error) {
	raw, err := s.client.Get(ctx, s.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.Cart{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis get %s: %w", s.key, err)
	}
	return domain.Unmarshal(raw)
}

// Save overwrites the slot without expiry.
func (s *Store) Save(ctx context.Context, cart domain.Cart) error {
	payload, err := domain.Marshal(cart)
	if err != nil {
		return err
	}
	if err := s.client.Set(ctx, s.key, payload, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", s.key, err)
	}
	return nil
}

// Ping reports whether the server answers.
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
