package file

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/dwikikusuma/shoping-cart/internal/cart/domain"
)

// Store keeps the cart slot as <dir>/<slot>.json. Writes go to a temp file in
// the same directory and are renamed over the slot, so a crash never leaves a
// half-written cart behind.
type Store struct {
	mu   sync.Mutex
	path string
}

func NewStore(dir, slot string) (*Store, error) {
	if slot == "" {
		return nil, errors.New("empty slot name")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create cart dir: %w", err)
	}
	return &Store{path: filepath.Join(dir, slot+".json")}, nil
}

func (s *Store) Path() string { return s.path }

func (s *Store) Load(ctx context.Context) (domain.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return domain.Cart{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read cart slot: %w", err)
	}
	return domain.Unmarshal(data)
}

func (s *Store) Save(ctx context.Context, cart domain.Cart) error {
	data, err := domain.Marshal(cart)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".cart-*.tmp")
	if err != nil {
		return fmt.Errorf("write cart slot: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write cart slot: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("sync cart slot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close cart slot: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("replace cart slot: %w", err)
	}
	return nil
}
