package inventoryhttp

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/dwikikusuma/shoping-cart/internal/catalog/app"
	"github.com/dwikikusuma/shoping-cart/internal/catalog/domain"
)

const (
	maxBody = 1 << 20

	// defaultFlightTimeout bounds shared reads when the http.Client has no
	// timeout of its own.
	defaultFlightTimeout = 10 * time.Second
)

// Client reads stock and product metadata from the inventory API.
//
// Nothing is cached. Concurrent identical product and catalog reads share one
// round trip; stock reads always go to the server.
type Client struct {
	baseURL string
	http    *http.Client
	group   singleflight.Group
}

// stockBody is the wire form of a stock record; amount is required.
type stockBody struct {
	Amount *int `json:"amount"`
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return NewClientWithHTTP(baseURL, &http.Client{Timeout: timeout})
}

func NewClientWithHTTP(baseURL string, hc *http.Client) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    hc,
	}
}

func (c *Client) Stock(ctx context.Context, productID int64) (domain.Stock, error) {
	var body stockBody
	if err := c.getJSON(ctx, "/stock/"+strconv.FormatInt(productID, 10), &body); err != nil {
		return domain.Stock{}, fmt.Errorf("get stock %d: %w", productID, err)
	}
	if body.Amount == nil {
		return domain.Stock{}, fmt.Errorf("get stock %d: malformed body: missing amount", productID)
	}
	if *body.Amount < 0 {
		return domain.Stock{}, fmt.Errorf("get stock %d: negative amount %d", productID, *body.Amount)
	}
	return domain.Stock{ProductID: productID, Amount: *body.Amount}, nil
}

func (c *Client) Product(ctx context.Context, productID int64) (domain.Product, error) {
	path := "/products/" + strconv.FormatInt(productID, 10)
	v, err := c.shared(ctx, path, func(ctx context.Context) (any, error) {
		var p domain.Product
		if err := c.getJSON(ctx, path, &p); err != nil {
			return domain.Product{}, err
		}
		if p.ID != productID {
			return domain.Product{}, fmt.Errorf("unexpected product id %d", p.ID)
		}
		return p, nil
	})
	if err != nil {
		return domain.Product{}, fmt.Errorf("get product %d: %w", productID, err)
	}
	return v.(domain.Product), nil
}

func (c *Client) Products(ctx context.Context) ([]domain.Product, error) {
	v, err := c.shared(ctx, "/products", func(ctx context.Context) (any, error) {
		var products []domain.Product
		if err := c.getJSON(ctx, "/products", &products); err != nil {
			return nil, err
		}
		return products, nil
	})
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}

	// callers sharing the flight must not share the backing array
	products := v.([]domain.Product)
	out := make([]domain.Product, len(products))
	copy(out, products)
	return out, nil
}

// shared runs fetch once for all concurrent callers of key. The fetch is
// detached from any single caller's cancellation and bounded by the client
// timeout; each caller still stops waiting when its own ctx is done.
func (c *Client) shared(ctx context.Context, key string, fetch func(context.Context) (any, error)) (any, error) {
	timeout := c.http.Timeout
	if timeout <= 0 {
		timeout = defaultFlightTimeout
	}

	ch := c.group.DoChan(key, func() (any, error) {
		fctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), timeout)
		defer cancel()
		return fetch(fctx)
	})

	select {
	case res := <-ch:
		return res.Val, res.Err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (c *Client) getJSON(ctx context.Context, path string, dst any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body := io.LimitReader(resp.Body, maxBody)
	switch {
	case resp.StatusCode == http.StatusNotFound:
		io.Copy(io.Discard, body)
		return app.ErrNotFound
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		io.Copy(io.Discard, body)
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(body).Decode(dst); err != nil {
		return fmt.Errorf("malformed body: %w", err)
	}
	return nil
}
