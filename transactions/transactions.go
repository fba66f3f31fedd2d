package transactions

import (
	"time"
)

// Kind is the direction of money movement, shared by transactions, categories and
// recurring rules
type Kind string

const (
	KindIncome  Kind = "income"
	KindExpense Kind = "expense"
)

func (k Kind) Valid() bool {
	return k == KindIncome || k == KindExpense
}

type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// Transaction is a single income or expense entry
type Transaction struct {
	ID           string    `json:"id"`
	Type         Kind      `json:"type"`
	Amount       float64   `json:"amount"`
	Description  string    `json:"description"`
	Date         string    `json:"date"` // YYYY-MM-DD
	CategoryID   string    `json:"category_id"`
	CategoryName string    `json:"category_name,omitempty"`
	Notes        string    `json:"notes,omitempty"`
	Tags         []string  `json:"tags,omitempty"`
	ReceiptID    string    `json:"receipt_id,omitempty"`
	CreatedAt    time.Time `json:"created_at,omitempty"`
}

// Signed returns the amount as negative for expenses
func (t Transaction) Signed() float64 {
	if t.Type == KindExpense {
		return -t.Amount
	}
	return t.Amount
}

// Filter narrows List. Zero values are not sent.
type Filter struct {
	Page       int
	Limit      int
	Type       Kind
	CategoryID string
	StartDate  string
	EndDate    string
	Search     string
	SortBy     string
	SortOrder  SortOrder
}

type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

// Page is one page of List results
type Page struct {
	Transactions []Transaction `json:"transactions"`
	Pagination   Pagination    `json:"pagination"`
}

// HasMore reports whether another page follows this one
func (p *Page) HasMore() bool {
	return p.Pagination.Page < p.Pagination.TotalPages
}

type NewTransaction struct {
	Type        Kind     `json:"type"`
	Amount      float64  `json:"amount"`
	Description string   `json:"description"`
	Date        string   `json:"date"`
	CategoryID  string   `json:"category_id"`
	Notes       string   `json:"notes,omitempty"`
	Tags        []string `json:"tags,omitempty"`
}

// Update is a partial update; nil fields are left unchanged
type Update struct {
	Type        *Kind     `json:"type,omitempty"`
	Amount      *float64  `json:"amount,omitempty"`
	Description *string   `json:"description,omitempty"`
	Date        *string   `json:"date,omitempty"`
	CategoryID  *string   `json:"category_id,omitempty"`
	Notes       *string   `json:"notes,omitempty"`
	Tags        *[]string `json:"tags,omitempty"`
}
