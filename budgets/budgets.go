package budgets

// Budget is a spending limit for one category in one calendar month
type Budget struct {
	ID           string  `json:"id"`
	CategoryID   string  `json:"category_id"`
	CategoryName string  `json:"category_name,omitempty"`
	Amount       float64 `json:"amount"`
	Month        int     `json:"month"`
	Year         int     `json:"year"`
}

type NewBudget struct {
	CategoryID string  `json:"category_id"`
	Amount     float64 `json:"amount"`
	Month      int     `json:"month"`
	Year       int     `json:"year"`
}

// Update only changes the amount; category and period are fixed
type Update struct {
	Amount *float64 `json:"amount,omitempty"`
}

// Progress is how much of a budget has been spent, as computed by the server
type Progress struct {
	Budget
	Spent      float64 `json:"spent"`
	Remaining  float64 `json:"remaining"`
	Percentage float64 `json:"percentage"`
}

func (p Progress) OverBudget() bool {
	return p.Spent > p.Amount
}

// Period selects a month; zero fields are omitted and the server uses the current month
type Period struct {
	Month int
	Year  int
}
