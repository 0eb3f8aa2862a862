package domain

import (
	"encoding/json"
	"fmt"
)

// Marshal encodes the cart as the JSON array stored in the persisted slot.
// An empty cart encodes as [] rather than null.
func Marshal(c Cart) ([]byte, error) {
	if c == nil {
		c = Cart{}
	}
	return json.Marshal(c)
}

// Unmarshal decodes a persisted slot. Empty input is an empty cart.
func Unmarshal(data []byte) (Cart, error) {
	if len(data) == 0 {
		return Cart{}, nil
	}
	var c Cart
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("decode cart: %w", err)
	}
	return c.Normalize(), nil
}
