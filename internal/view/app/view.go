package app

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	cart "github.com/dwikikusuma/shoping-cart/internal/cart/app"
	"github.com/dwikikusuma/shoping-cart/internal/cart/domain"
	catalog "github.com/dwikikusuma/shoping-cart/internal/catalog/domain"
)

// Catalog lists the products shown on the home page.
type Catalog interface {
	Products(ctx context.Context) ([]catalog.Product, error)
}

// Cart is the subset of cart operations the product view drives.
type Cart interface {
	GetCart(ctx context.Context) (cart.Outcome, error)
	AddProduct(ctx context.Context, productID int64) (cart.Outcome, error)
	UpdateProductAmount(ctx context.Context, req cart.UpdateProductAmount) (cart.Outcome, error)
}

// Card is one product on the home page.
type Card struct {
	Product        catalog.Product `json:"product"`
	PriceFormatted string          `json:"priceFormatted"`
	CartAmount     int             `json:"cartAmount"`
}

type View struct {
	catalog Catalog
	cart    Cart
}

func NewView(c Catalog, cart Cart) *View {
	return &View{catalog: c, cart: cart}
}

// Home returns one card per catalog product, in catalog order.
func (v *View) Home(ctx context.Context) ([]Card, error) {
	products, err := v.catalog.Products(ctx)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	current, err := v.cart.GetCart(ctx)
	if err != nil {
		return nil, fmt.Errorf("get cart: %w", err)
	}

	amounts := CartItemsAmount(current.Cart)
	cards := make([]Card, 0, len(products))
	for _, p := range products {
		cards = append(cards, Card{
			Product:        p,
			PriceFormatted: FormatPrice(p.Price),
			CartAmount:     amounts[p.ID],
		})
	}
	return cards, nil
}

// AddToCart adds one unit: a new product goes through AddProduct, one already
// in the cart through UpdateProductAmount with its amount plus one.
func (v *View) AddToCart(ctx context.Context, productID int64) (cart.Outcome, error) {
	current, err := v.cart.GetCart(ctx)
	if err != nil {
		return cart.Outcome{}, fmt.Errorf("get cart: %w", err)
	}
	if item, ok := current.Cart.Find(productID); ok {
		return v.cart.UpdateProductAmount(ctx, cart.UpdateProductAmount{
			ProductID: productID,
			Amount:    item.Amount + 1,
		})
	}
	return v.cart.AddProduct(ctx, productID)
}

func CartItemsAmount(c domain.Cart) map[int64]int {
	return c.Amounts()
}

// FormatPrice renders a price the way the storefront shows it: "$ 12.90".
func FormatPrice(p decimal.Decimal) string {
	return "$ " + p.StringFixed(2)
}
