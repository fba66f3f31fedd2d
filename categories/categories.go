package categories

import (
	"github.com/jrsteele09/go-finance-client/transactions"
)

type Category struct {
	ID        string            `json:"id"`
	Name      string            `json:"name"`
	Type      transactions.Kind `json:"type"`
	Icon      string            `json:"icon,omitempty"`
	Color     string            `json:"color,omitempty"`
	IsDefault bool              `json:"is_default,omitempty"` // seeded by the server, cannot be deleted
}

// WithCount is a category plus how many transactions use it
type WithCount struct {
	Category
	TransactionCount int     `json:"transaction_count"`
	Total            float64 `json:"total_amount"`
}

type NewCategory struct {
	Name  string            `json:"name"`
	Type  transactions.Kind `json:"type"`
	Icon  string            `json:"icon,omitempty"`
	Color string            `json:"color,omitempty"`
}

// Update changes name and presentation only; a category's type is fixed at creation
type Update struct {
	Name  *string `json:"name,omitempty"`
	Icon  *string `json:"icon,omitempty"`
	Color *string `json:"color,omitempty"`
}
