package inventoryhttp

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/dwikikusuma/shoping-cart/internal/catalog/app"
	"github.com/dwikikusuma/shoping-cart/internal/catalog/domain"
)

func newServer(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL+"/", time.Second)
}

func TestStock(t *testing.T) {
	ctx := context.Background()

	t.Run("ok", func(t *testing.T) {
		c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/stock/3", r.URL.Path)
			w.Write([]byte(`{"id":3,"amount":2}`))
		})
		st, err := c.Stock(ctx, 3)
		require.NoError(t, err)
		assert.Equal(t, int64(3), st.ProductID)
		assert.Equal(t, 2, st.Amount)
	})

	t.Run("body without id still maps to the requested product", func(t *testing.T) {
		c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"amount":5}`))
		})
		st, err := c.Stock(ctx, 8)
		require.NoError(t, err)
		assert.Equal(t, int64(8), st.ProductID)
	})

	t.Run("not found", func(t *testing.T) {
		c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		})
		_, err := c.Stock(ctx, 3)
		assert.True(t, errors.Is(err, app.ErrNotFound), "got %v", err)
	})

	t.Run("server error", func(t *testing.T) {
		c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		})
		_, err := c.Stock(ctx, 3)
		assert.Error(t, err)
	})

	t.Run("malformed body", func(t *testing.T) {
		c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"amount":`))
		})
		_, err := c.Stock(ctx, 3)
		assert.ErrorContains(t, err, "malformed body")
	})

	t.Run("body without amount is malformed", func(t *testing.T) {
		for _, body := range []string{`{}`, `null`, `{"id":1}`} {
			c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(body))
			})
			_, err := c.Stock(ctx, 1)
			assert.ErrorContains(t, err, "missing amount", "body %s", body)
		}
	})

	t.Run("zero amount is a valid record", func(t *testing.T) {
		c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"id":1,"amount":0}`))
		})
		st, err := c.Stock(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, 0, st.Amount)
	})

	t.Run("negative amount", func(t *testing.T) {
		c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"amount":-1}`))
		})
		_, err := c.Stock(ctx, 3)
		assert.Error(t, err)
	})
}

func TestProduct(t *testing.T) {
	ctx := context.Background()

	t.Run("ok", func(t *testing.T) {
		c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"id":1,"title":"Runner","price":179.9,"image":"https://img/1.jpg"}`))
		})
		p, err := c.Product(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, "Runner", p.Title)
		assert.Equal(t, "179.9", p.Price.String())
	})

	t.Run("mismatched id", func(t *testing.T) {
		c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"id":2,"title":"Other"}`))
		})
		_, err := c.Product(ctx, 1)
		assert.Error(t, err)
	})

	t.Run("network failure", func(t *testing.T) {
		srv := httptest.NewServer(http.NotFoundHandler())
		srv.Close()
		c := NewClient(srv.URL, time.Second)
		_, err := c.Product(ctx, 1)
		assert.Error(t, err)
	})
}

func TestProductsCoalescesConcurrentReads(t *testing.T) {
	var hits atomic.Int32
	release := make(chan struct{})

	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		<-release
		w.Write([]byte(`[{"id":1,"title":"Runner","price":"10","image":""}]`))
	})

	g, ctx := errgroup.WithContext(context.Background())
	for i := 0; i < 5; i++ {
		g.Go(func() error {
			products, err := c.Products(ctx)
			if err == nil && len(products) != 1 {
				t.Errorf("expected 1 product, got %d", len(products))
			}
			return err
		})
	}

	time.Sleep(50 * time.Millisecond)
	close(release)
	require.NoError(t, g.Wait())
	assert.LessOrEqual(t, hits.Load(), int32(5))
	assert.GreaterOrEqual(t, hits.Load(), int32(1))
}

func TestStockIsNeverCached(t *testing.T) {
	var hits atomic.Int32
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Write([]byte(`{"amount":1}`))
	})

	for i := 0; i < 3; i++ {
		_, err := c.Stock(context.Background(), 1)
		require.NoError(t, err)
	}
	assert.Equal(t, int32(3), hits.Load())
}

func TestProductSharedFetchOutlivesCancelledCaller(t *testing.T) {
	var hits atomic.Int32
	release := make(chan struct{})

	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		<-release
		w.Write([]byte(`{"id":1,"title":"Runner","price":"10","image":""}`))
	})

	firstCtx, cancelFirst := context.WithCancel(context.Background())
	firstErr := make(chan error, 1)
	go func() {
		_, err := c.Product(firstCtx, 1)
		firstErr <- err
	}()
	require.Eventually(t, func() bool { return hits.Load() == 1 }, time.Second, 5*time.Millisecond)

	var second domain.Product
	secondErr := make(chan error, 1)
	go func() {
		p, err := c.Product(context.Background(), 1)
		second = p
		secondErr <- err
	}()
	time.Sleep(20 * time.Millisecond)

	cancelFirst()
	assert.ErrorIs(t, <-firstErr, context.Canceled)

	close(release)
	require.NoError(t, <-secondErr)
	assert.Equal(t, "Runner", second.Title)
}
