package invoice

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the invoice repository API.
// Every operation is scoped to the owning user; a record owned by someone else behaves
// exactly like a record that does not exist.
type Repository interface {
	// GetByUserID retrieves a page of invoices owned by the given user, newest-created-first,
	// optionally filtered, together with the total amount of matching records
	GetByUserID(ctx context.Context, userID string, filter *Filter, offset, limit uint64) ([]*Invoice, uint64, error)

	// GetByID retrieves a single invoice by its ID, scoped to the owning user.
	// Returns nil if no invoice matches both the ID and the owner.
	GetByID(ctx context.Context, id uuid.UUID, userID string) (*Invoice, error)

	// Create creates a new invoice owned by the given user
	Create(ctx context.Context, userID string, create *Create) (*Invoice, error)

	// Update applies the non-nil fields of update to the invoice matching both ID and owner.
	// Returns nil if no invoice matches.
	Update(ctx context.Context, id uuid.UUID, userID string, update *Update) (*Invoice, error)

	// Delete deletes the invoice matching both ID and owner.
	// Deleting a record that does not exist is not an error.
	Delete(ctx context.Context, id uuid.UUID, userID string) error
}

// Create is used to create a new invoice
type Create struct {
	ClientName string
	Amount     float64
	DueDate    string
	Status     Status
}

// Update is used to partially update an existing invoice
type Update struct {
	ClientName *string
	Amount     *float64
	DueDate    *string
	Status     *Status
}

// Filter narrows down the invoices returned by GetByUserID
type Filter struct {
	Status *Status
}
