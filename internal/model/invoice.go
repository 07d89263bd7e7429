package model

import "time"

// InvoiceLine is one priced line of an invoice.
type InvoiceLine struct {
	ProductID int64   `json:"product_id"`
	Name      string  `json:"name"`
	UnitPrice float64 `json:"unit_price"`
	Quantity  int     `json:"quantity"`
	Total     float64 `json:"total"`
}

// Invoice is a priced snapshot of a cart. Previews have no ID or Number.
type Invoice struct {
	ID         int64         `json:"id,omitempty"`
	Number     string        `json:"number,omitempty"`
	SessionID  string        `json:"session_id,omitempty"`
	Lines      []InvoiceLine `json:"lines"`
	Subtotal   float64       `json:"subtotal"`
	TaxPercent float64       `json:"tax_percent"`
	Tax        float64       `json:"tax"`
	Total      float64       `json:"total"`
	CreatedAt  time.Time     `json:"created_at"`
}
