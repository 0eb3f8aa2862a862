package http

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dwikikusuma/shoping-cart/internal/catalog/app"
	"github.com/dwikikusuma/shoping-cart/internal/catalog/domain"
	"github.com/dwikikusuma/shoping-cart/internal/catalog/infra/memory"
	"github.com/dwikikusuma/shoping-cart/pkg/logger"
)

func newRouter() http.Handler {
	repo := memory.NewProductRepo(memory.Seed{
		Stock: []domain.Stock{{ProductID: 1, Amount: 3}},
		Products: []domain.Product{
			{ID: 1, Title: "Runner", Price: decimal.RequireFromString("179.9"), Image: "https://img/1.jpg"},
		},
	})
	r := chi.NewRouter()
	NewServer(app.NewService(repo), logger.Discard()).Routes(r)
	return r
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(method, path, strings.NewReader(body)))
	return rec
}

func TestInventoryRoutes(t *testing.T) {
	h := newRouter()

	t.Run("get stock", func(t *testing.T) {
		rec := do(t, h, http.MethodGet, "/stock/1", "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"id":1,"amount":3}`, rec.Body.String())
	})

	t.Run("get product", func(t *testing.T) {
		rec := do(t, h, http.MethodGet, "/products/1", "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"id":1,"title":"Runner","price":179.9,"image":"https://img/1.jpg"}`, rec.Body.String())
	})

	t.Run("list products", func(t *testing.T) {
		rec := do(t, h, http.MethodGet, "/products", "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"title":"Runner"`)
	})

	t.Run("unknown product -> 404", func(t *testing.T) {
		rec := do(t, h, http.MethodGet, "/products/9", "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("bad id -> 400", func(t *testing.T) {
		rec := do(t, h, http.MethodGet, "/stock/abc", "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("set stock", func(t *testing.T) {
		rec := do(t, h, http.MethodPut, "/stock/1", `{"amount":0}`)
		require.Equal(t, http.StatusOK, rec.Code)

		rec = do(t, h, http.MethodGet, "/stock/1", "")
		assert.JSONEq(t, `{"id":1,"amount":0}`, rec.Body.String())
	})

	t.Run("set stock without amount -> 400", func(t *testing.T) {
		rec := do(t, h, http.MethodPut, "/stock/1", `{}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
