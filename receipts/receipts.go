package receipts

import (
	"time"
)

// Status is the server-side processing state of an uploaded receipt
type Status string

const (
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
)

// Done reports whether processing has finished, successfully or not
func (s Status) Done() bool {
	return s == StatusCompleted || s == StatusFailed
}

// Extracted is what the server read off the receipt image
type Extracted struct {
	Merchant string  `json:"merchant,omitempty"`
	Amount   float64 `json:"amount,omitempty"`
	Date     string  `json:"date,omitempty"`
	Category string  `json:"category,omitempty"`
}

type Receipt struct {
	ID            string     `json:"id"`
	Filename      string     `json:"filename"`
	URL           string     `json:"url,omitempty"`
	Status        Status     `json:"status"`
	Error         string     `json:"error,omitempty"`
	Extracted     *Extracted `json:"extracted_data,omitempty"`
	TransactionID string     `json:"transaction_id,omitempty"`
	CreatedAt     time.Time  `json:"created_at,omitempty"`
}

// StatusReport is the lightweight answer of the status endpoint
type StatusReport struct {
	ID     string `json:"id"`
	Status Status `json:"status"`
	Error  string `json:"error,omitempty"`
}
