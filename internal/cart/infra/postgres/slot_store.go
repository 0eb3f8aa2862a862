package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dwikikusuma/shoping-cart/internal/cart/domain"
)

const schema = `
CREATE TABLE IF NOT EXISTS cart_slots (
	name       text        PRIMARY KEY,
	payload    jsonb       NOT NULL,
	updated_at timestamptz NOT NULL DEFAULT now()
)`

// SlotStore keeps one named cart as a jsonb row in cart_slots.
type SlotStore struct {
	db   *sql.DB
	slot string
}

func NewSlotStore(db *sql.DB, slot string) *SlotStore {
	return &SlotStore{db: db, slot: slot}
}

// EnsureSchema creates cart_slots when it does not exist yet.
func (s *SlotStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("create cart_slots: %w", err)
	}
	return nil
}

func (s *SlotStore) Load(ctx context.Context) (domain.Cart, error) {
	var payload []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT payload FROM cart_slots WHERE name = $1`, s.slot,
	).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Cart{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load cart slot %q: %w", s.slot, err)
	}
	return domain.Unmarshal(payload)
}

func (s *SlotStore) Save(ctx context.Context, cart domain.Cart) error {
	payload, err := domain.Marshal(cart)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO cart_slots (name, payload, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (name) DO UPDATE
		SET payload = EXCLUDED.payload, updated_at = EXCLUDED.updated_at`,
		s.slot, string(payload),
	)
	if err != nil {
		return fmt.Errorf("save cart slot %q: %w", s.slot, err)
	}
	return nil
}
