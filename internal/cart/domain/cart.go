package domain

import (
	"github.com/shopspring/decimal"

	catalog "github.com/dwikikusuma/shoping-cart/internal/catalog/domain"
)

// CartItem is a product in the cart together with its quantity. It encodes
// flat: {id,title,price,image,amount}.
type CartItem struct {
	catalog.Product
	Amount int `json:"amount"`
}

// Cart is the ordered list of items, in insertion order. A Cart value is
// never modified in place; every mutation helper returns a new slice.
type Cart []CartItem

func (c Cart) Index(productID int64) int {
	for i, it := range c {
		if it.ID == productID {
			return i
		}
	}
	return -1
}

func (c Cart) Find(productID int64) (CartItem, bool) {
	if i := c.Index(productID); i >= 0 {
		return c[i], true
	}
	return CartItem{}, false
}

func (c Cart) Clone() Cart {
	out := make(Cart, len(c))
	copy(out, c)
	return out
}

// Append adds item at the end. Callers check for an existing item first.
func (c Cart) Append(item CartItem) Cart {
	out := make(Cart, len(c), len(c)+1)
	copy(out, c)
	return append(out, item)
}

// WithAmount replaces the amount of productID, leaving every other item and
// the order untouched. A non-positive amount removes the item.
func (c Cart) WithAmount(productID int64, amount int) Cart {
	if amount <= 0 {
		return c.Without(productID)
	}
	out := c.Clone()
	if i := out.Index(productID); i >= 0 {
		out[i].Amount = amount
	}
	return out
}

func (c Cart) Without(productID int64) Cart {
	out := make(Cart, 0, len(c))
	for _, it := range c {
		if it.ID != productID {
			out = append(out, it)
		}
	}
	return out
}

// Amounts is the per-product quantity lookup used by listings.
func (c Cart) Amounts() map[int64]int {
	out := make(map[int64]int, len(c))
	for _, it := range c {
		out[it.ID] = it.Amount
	}
	return out
}

func (c Cart) Count() int {
	n := 0
	for _, it := range c {
		n += it.Amount
	}
	return n
}

func (c Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, it := range c {
		total = total.Add(it.Subtotal())
	}
	return total
}

func (it CartItem) Subtotal() decimal.Decimal {
	return it.Price.Mul(decimal.NewFromInt(int64(it.Amount)))
}

// Normalize drops items with a non-positive amount and folds duplicate
// product ids into their first occurrence, summing amounts.
func (c Cart) Normalize() Cart {
	out := make(Cart, 0, len(c))
	for _, it := range c {
		if it.Amount <= 0 {
			continue
		}
		if i := out.Index(it.ID); i >= 0 {
			out[i].Amount += it.Amount
			continue
		}
		out = append(out, it)
	}
	return out
}
