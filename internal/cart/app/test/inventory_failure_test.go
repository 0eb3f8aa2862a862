package app_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dwikikusuma/shoping-cart/internal/cart/app"
	"github.com/dwikikusuma/shoping-cart/internal/cart/domain"
	"github.com/dwikikusuma/shoping-cart/internal/cart/notify"
	"github.com/dwikikusuma/shoping-cart/internal/catalog/infra/inventoryhttp"
	"github.com/dwikikusuma/shoping-cart/pkg/logger"
)

// inventoryServer answers every stock read with stockBody and serves product 1.
func inventoryServer(t *testing.T, stockBody string) *inventoryhttp.Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasPrefix(r.URL.Path, "/stock/"):
			w.Write([]byte(stockBody))
		case r.URL.Path == "/products/1":
			w.Write([]byte(`{"id":1,"title":"Runner","price":179.9,"image":"r.jpg"}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(srv.Close)
	return inventoryhttp.NewClient(srv.URL, time.Second)
}

func TestAddProduct_InventoryResponses(t *testing.T) {
	cases := []struct {
		name      string
		stockBody string
		wantItems int
		wantMsg   string
	}{
		{"in stock", `{"id":1,"amount":3}`, 1, ""},
		{"out of stock", `{"id":1,"amount":0}`, 0, domain.MsgOutOfStock},
		{"empty object", `{}`, 0, domain.MsgAddFailed},
		{"null body", `null`, 0, domain.MsgAddFailed},
		{"amount missing", `{"id":1}`, 0, domain.MsgAddFailed},
		{"truncated body", `{"amount":`, 0, domain.MsgAddFailed},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			warnings := &notify.Recorder{}
			svc := app.NewService(inventoryServer(t, tc.stockBody), warnings, app.WithLogger(logger.Discard()))
			t.Cleanup(svc.Close)

			cart := svc.AddProduct(context.Background(), 1)

			if len(cart) != tc.wantItems {
				t.Fatalf("expected %d items, got %+v", tc.wantItems, cart)
			}
			ws := warnings.Warnings()
			if tc.wantMsg == "" {
				if len(ws) != 0 {
					t.Fatalf("unexpected warnings %+v", ws)
				}
				return
			}
			if len(ws) != 1 || ws[0].Message != tc.wantMsg {
				t.Fatalf("expected %q, got %+v", tc.wantMsg, ws)
			}
		})
	}
}
