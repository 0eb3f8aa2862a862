package memory

import (
	"context"
	"sync"

	"github.com/dwikikusuma/shoping-cart/internal/cart/domain"
)

// Store keeps the serialized cart slot in process memory. It encodes on Save
// exactly like the durable backends so a reload goes through the same codec.
type Store struct {
	mu    sync.Mutex
	data  []byte
	saves int
}

func NewStore() *Store {
	return &Store{}
}

func (s *Store) Load(ctx context.Context) (domain.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return domain.Unmarshal(s.data)
}

func (s *Store) Save(ctx context.Context, cart domain.Cart) error {
	data, err := domain.Marshal(cart)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = data
	s.saves++
	return nil
}

// Saves reports how many writes reached the slot.
func (s *Store) Saves() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saves
}
