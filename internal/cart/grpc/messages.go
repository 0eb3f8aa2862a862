package grpc

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/dwikikusuma/shoping-cart/internal/cart/app"
	"github.com/dwikikusuma/shoping-cart/internal/cart/domain"
	catalog "github.com/dwikikusuma/shoping-cart/internal/catalog/domain"
)

type Empty struct{}

type ProductRequest struct {
	ProductID int64 `json:"productId"`
}

type UpdateAmountRequest struct {
	ProductID int64 `json:"productId"`
	Amount    int   `json:"amount"`
}

type CartItem struct {
	ProductID int64  `json:"productId"`
	Title     string `json:"title"`
	Price     string `json:"price"`
	Image     string `json:"image"`
	Amount    int    `json:"amount"`
}

type Warning struct {
	Kind      string `json:"kind"`
	Op        string `json:"op"`
	ProductID int64  `json:"productId"`
	Message   string `json:"message"`
}

type Cart struct {
	Items    []*CartItem `json:"items"`
	Count    int         `json:"count"`
	Total    string      `json:"total"`
	Warnings []*Warning  `json:"warnings,omitempty"`
}

func toProto(out app.Outcome) *Cart {
	items := make([]*CartItem, 0, len(out.Cart))
	for _, it := range out.Cart {
		items = append(items, &CartItem{
			ProductID: it.ID,
			Title:     it.Title,
			Price:     it.Price.String(),
			Image:     it.Image,
			Amount:    it.Amount,
		})
	}

	var warnings []*Warning
	for _, w := range out.Warnings {
		warnings = append(warnings, &Warning{
			Kind:      string(w.Kind),
			Op:        string(w.Op),
			ProductID: w.ProductID,
			Message:   w.Message,
		})
	}

	return &Cart{
		Items:    items,
		Count:    out.Cart.Count(),
		Total:    out.Cart.Total().String(),
		Warnings: warnings,
	}
}

func fromProto(c *Cart) (app.Outcome, error) {
	cart := make(domain.Cart, 0, len(c.Items))
	for _, it := range c.Items {
		price, err := decimal.NewFromString(it.Price)
		if err != nil {
			return app.Outcome{}, fmt.Errorf("product %d: bad price %q: %w", it.ProductID, it.Price, err)
		}
		cart = append(cart, domain.CartItem{
			Product: catalog.Product{
				ID:    it.ProductID,
				Title: it.Title,
				Price: price,
				Image: it.Image,
			},
			Amount: it.Amount,
		})
	}

	var warnings []domain.Warning
	for _, w := range c.Warnings {
		warnings = append(warnings, domain.Warning{
			Kind:      domain.WarningKind(w.Kind),
			Op:        domain.Op(w.Op),
			ProductID: w.ProductID,
			Message:   w.Message,
		})
	}

	return app.Outcome{Cart: cart, Warnings: warnings}, nil
}
