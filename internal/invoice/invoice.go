package invoice

import (
	"github.com/google/uuid"
)

// Status represents the lifecycle state of an invoice
type Status string

const (
	StatusDraft     Status = "draft"
	StatusSent      Status = "sent"
	StatusPaid      Status = "paid"
	StatusOverdue   Status = "overdue"
	StatusCancelled Status = "cancelled"
)

// Statuses contains all valid invoice statuses
var Statuses = []Status{
	StatusDraft,
	StatusSent,
	StatusPaid,
	StatusOverdue,
	StatusCancelled,
}

// IsValid returns whether the status is one of the fixed set of invoice statuses
func (status Status) IsValid() bool {
	for _, valid := range Statuses {
		if status == valid {
			return true
		}
	}
	return false
}

// Invoice represents a single billable record owned by exactly one user
type Invoice struct {
	ID         uuid.UUID `json:"id"`
	UserID     string    `json:"user_id"`
	ClientName string    `json:"client_name"`
	Amount     float64   `json:"amount"`
	DueDate    string    `json:"due_date"`
	Status     Status    `json:"status"`
	CreatedAt  int64     `json:"created_at"`
	UpdatedAt  int64     `json:"updated_at"`
}

// MaxAmount is the largest amount an invoice may carry
const MaxAmount = 99_999_999.99

// MaxClientNameLength is the maximum length of an invoice's client name
const MaxClientNameLength = 255
