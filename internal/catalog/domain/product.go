package domain

import "github.com/shopspring/decimal"

// Prices and totals go over the wire and into the cart slot as JSON numbers
// ({"price":179.9}). Decoding accepts numbers and strings.
func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

type Product struct {
	ID    int64           `json:"id"`
	Title string          `json:"title"`
	Price decimal.Decimal `json:"price"`
	Image string          `json:"image"`
}

// Stock is the available amount of a product as reported by the inventory.
type Stock struct {
	ProductID int64 `json:"id"`
	Amount    int   `json:"amount"`
}

// Covers reports whether amount units can be taken from the stock.
func (s Stock) Covers(amount int) bool {
	return amount <= s.Amount
}
