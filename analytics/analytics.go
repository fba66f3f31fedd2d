package analytics

// Period selects a month; zero fields let the server default to the current month
type Period struct {
	Month int
	Year  int
}

// Dashboard is the headline summary for a month
type Dashboard struct {
	TotalIncome      float64   `json:"total_income"`
	TotalExpenses    float64   `json:"total_expenses"`
	Balance          float64   `json:"balance"`
	SavingsRate      float64   `json:"savings_rate"`
	TransactionCount int       `json:"transaction_count"`
	IncomeChange     float64   `json:"income_change"`   // % vs previous month
	ExpensesChange   float64   `json:"expenses_change"` // % vs previous month
	TopCategories    []Segment `json:"top_categories,omitempty"`
}

// Segment is one category's share of a total
type Segment struct {
	CategoryID string  `json:"category_id"`
	Name       string  `json:"name"`
	Color      string  `json:"color,omitempty"`
	Amount     float64 `json:"amount"`
	Percentage float64 `json:"percentage"`
}

// MonthTotal is one point of a time series
type MonthTotal struct {
	Month    string  `json:"month"` // YYYY-MM
	Income   float64 `json:"income"`
	Expenses float64 `json:"expenses"`
}

type IncomeVsExpenses struct {
	Income   float64 `json:"income"`
	Expenses float64 `json:"expenses"`
	Net      float64 `json:"net"`
}

// Overview bundles everything the dashboard screen shows
type Overview struct {
	Dashboard          *Dashboard        `json:"dashboard"`
	ExpensesByCategory []Segment         `json:"expenses_by_category"`
	ExpensesOverTime   []MonthTotal      `json:"expenses_over_time"`
	IncomeVsExpenses   *IncomeVsExpenses `json:"income_vs_expenses"`
}
