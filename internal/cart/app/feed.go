package app

import (
	"sync"

	"github.com/dwikikusuma/shoping-cart/internal/cart/domain"
)

// feed fans committed carts out to subscribers. A slow subscriber loses stale
// carts but always receives the latest one.
type feed struct {
	mu     sync.Mutex
	subs   map[uint64]chan domain.Cart
	nextID uint64
	closed bool
}

func newFeed() *feed {
	return &feed{subs: make(map[uint64]chan domain.Cart)}
}

func (f *feed) subscribe(buffer int) (chan domain.Cart, func()) {
	if buffer < 1 {
		buffer = 1
	}
	ch := make(chan domain.Cart, buffer)

	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		close(ch)
		return ch, func() {}
	}

	id := f.nextID
	f.nextID++
	f.subs[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			f.mu.Lock()
			defer f.mu.Unlock()
			if sub, ok := f.subs[id]; ok {
				delete(f.subs, id)
				close(sub)
			}
		})
	}
}

func (f *feed) publish(c domain.Cart) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, ch := range f.subs {
		offer(ch, c)
	}
}

func offer(ch chan domain.Cart, c domain.Cart) {
	select {
	case ch <- c:
		return
	default:
	}
	// full: drop the oldest pending cart
	select {
	case <-ch:
	default:
	}
	select {
	case ch <- c:
	default:
	}
}

func (f *feed) close() {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return
	}
	f.closed = true
	for id, ch := range f.subs {
		delete(f.subs, id)
		close(ch)
	}
}

func (f *feed) size() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.subs)
}
