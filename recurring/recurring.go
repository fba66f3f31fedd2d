package recurring

import (
	"github.com/jrsteele09/go-finance-client/transactions"
)

type Frequency string

const (
	Daily   Frequency = "daily"
	Weekly  Frequency = "weekly"
	Monthly Frequency = "monthly"
	Yearly  Frequency = "yearly"
)

func (f Frequency) Valid() bool {
	switch f {
	case Daily, Weekly, Monthly, Yearly:
		return true
	}
	return false
}

// Status filters List
type Status string

const (
	StatusAll    Status = ""
	StatusActive Status = "active"
	StatusPaused Status = "paused"
)

// Rule is a template the server turns into transactions on schedule
type Rule struct {
	ID           string            `json:"id"`
	CategoryID   string            `json:"category_id"`
	CategoryName string            `json:"category_name,omitempty"`
	Type         transactions.Kind `json:"type"`
	Amount       float64           `json:"amount"`
	Description  string            `json:"description"`
	Frequency    Frequency         `json:"frequency"`
	StartDate    string            `json:"start_date"`
	EndDate      string            `json:"end_date,omitempty"`
	NextDate     string            `json:"next_date,omitempty"`
	IsActive     bool              `json:"is_active"`
}

type NewRule struct {
	CategoryID  string            `json:"category_id"`
	Type        transactions.Kind `json:"type"`
	Amount      float64           `json:"amount"`
	Description string            `json:"description"`
	Frequency   Frequency         `json:"frequency"`
	StartDate   string            `json:"start_date"`
	EndDate     string            `json:"end_date,omitempty"`
}

type Update struct {
	Amount      *float64   `json:"amount,omitempty"`
	Description *string    `json:"description,omitempty"`
	Frequency   *Frequency `json:"frequency,omitempty"`
	StartDate   *string    `json:"start_date,omitempty"`
	EndDate     *string    `json:"end_date,omitempty"`
	IsActive    *bool      `json:"is_active,omitempty"`
}

// Occurrence is a scheduled run of a rule within the Upcoming window
type Occurrence struct {
	RuleID      string            `json:"recurring_id"`
	Description string            `json:"description"`
	Type        transactions.Kind `json:"type"`
	Amount      float64           `json:"amount"`
	Date        string            `json:"date"`
}
