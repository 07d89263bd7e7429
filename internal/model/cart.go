package model

import (
	"math"
	"time"
)

// CartItem is a product snapshot held in a session cart.
type CartItem struct {
	ProductID int64   `json:"product_id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Image     string  `json:"image"`
	Quantity  int     `json:"quantity"`
}

// LineTotal is price times quantity, rounded to cents.
func (i CartItem) LineTotal() float64 {
	return RoundMoney(i.Price * float64(i.Quantity))
}

// Cart is the session-scoped shopping cart.
type Cart struct {
	SessionID string     `json:"session_id"`
	Items     []CartItem `json:"items"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// Count is the number of units across all items.
func (c *Cart) Count() int {
	if c == nil {
		return 0
	}
	n := 0
	for _, it := range c.Items {
		n += it.Quantity
	}
	return n
}

// Subtotal is the sum of line totals.
func (c *Cart) Subtotal() float64 {
	if c == nil {
		return 0
	}
	var sum float64
	for _, it := range c.Items {
		sum += it.LineTotal()
	}
	return RoundMoney(sum)
}

// Find returns the index of productID in the cart, or -1.
func (c *Cart) Find(productID int64) int {
	for i, it := range c.Items {
		if it.ProductID == productID {
			return i
		}
	}
	return -1
}

// Remove drops productID from the cart. It reports whether anything was removed.
func (c *Cart) Remove(productID int64) bool {
	i := c.Find(productID)
	if i < 0 {
		return false
	}
	c.Items = append(c.Items[:i], c.Items[i+1:]...)
	return true
}

// RoundMoney rounds to two decimal places, half away from zero.
func RoundMoney(v float64) float64 {
	return math.Round(v*100) / 100
}
