package inmem

import (
	"context"
	"sort"
	"sync/atomic"
	"time"

	"github.com/freelancetrack/invoice-server/internal/invoice"
	"github.com/google/uuid"
	"github.com/hashicorp/go-memdb"
)

// invoiceRecord is the memdb representation of an invoice.
// The ID is stored as a string because memdb string indexes cannot handle uuid.UUID fields.
// The insertion sequence number breaks created_at ties when ordering newest-first.
type invoiceRecord struct {
	ID         string
	UserID     string
	ClientName string
	Amount     float64
	DueDate    string
	Status     invoice.Status
	CreatedAt  int64
	UpdatedAt  int64
	Seq        uint64
}

func (record *invoiceRecord) toInvoice() *invoice.Invoice {
	return &invoice.Invoice{
		ID:         uuid.MustParse(record.ID),
		UserID:     record.UserID,
		ClientName: record.ClientName,
		Amount:     record.Amount,
		DueDate:    record.DueDate,
		Status:     record.Status,
		CreatedAt:  record.CreatedAt,
		UpdatedAt:  record.UpdatedAt,
	}
}

// InvoiceRepository implements the invoice.Repository interface using an in-memory database
type InvoiceRepository struct {
	db  *memdb.MemDB
	seq uint64
}

var _ invoice.Repository = (*InvoiceRepository)(nil)

// GetByUserID retrieves a page of invoices owned by the given user, newest-created-first,
// together with the total amount of matching records
func (repo *InvoiceRepository) GetByUserID(_ context.Context, userID string, filter *invoice.Filter, offset, limit uint64) ([]*invoice.Invoice, uint64, error) {
	txn := repo.db.Txn(false)
	it, err := txn.Get("invoices", "owner", userID)
	if err != nil {
		return nil, 0, err
	}

	matching := []*invoiceRecord{}
	for obj := it.Next(); obj != nil; obj = it.Next() {
		record := obj.(*invoiceRecord)
		if filter != nil && filter.Status != nil && record.Status != *filter.Status {
			continue
		}
		matching = append(matching, record)
	}
	sort.Slice(matching, func(i, j int) bool {
		if matching[i].CreatedAt != matching[j].CreatedAt {
			return matching[i].CreatedAt > matching[j].CreatedAt
		}
		return matching[i].Seq > matching[j].Seq
	})

	n := uint64(len(matching))
	if offset >= n {
		return []*invoice.Invoice{}, n, nil
	}
	end := n
	if limit > 0 && offset+limit < n {
		end = offset + limit
	}

	invoices := make([]*invoice.Invoice, 0, end-offset)
	for _, record := range matching[offset:end] {
		invoices = append(invoices, record.toInvoice())
	}
	return invoices, n, nil
}

// GetByID retrieves a single invoice by its ID, scoped to the owning user
func (repo *InvoiceRepository) GetByID(_ context.Context, id uuid.UUID, userID string) (*invoice.Invoice, error) {
	txn := repo.db.Txn(false)
	obj, err := txn.First("invoices", "id", id.String())
	if err != nil {
		return nil, err
	}
	if obj == nil || obj.(*invoiceRecord).UserID != userID {
		return nil, nil
	}
	return obj.(*invoiceRecord).toInvoice(), nil
}

// Create creates a new invoice owned by the given user
func (repo *InvoiceRepository) Create(_ context.Context, userID string, create *invoice.Create) (*invoice.Invoice, error) {
	now := time.Now().Unix()
	record := &invoiceRecord{
		ID:         uuid.New().String(),
		UserID:     userID,
		ClientName: create.ClientName,
		Amount:     create.Amount,
		DueDate:    create.DueDate,
		Status:     create.Status,
		CreatedAt:  now,
		UpdatedAt:  now,
		Seq:        atomic.AddUint64(&repo.seq, 1),
	}

	txn := repo.db.Txn(true)
	defer txn.Abort()
	if err := txn.Insert("invoices", record); err != nil {
		return nil, err
	}
	txn.Commit()

	return record.toInvoice(), nil
}

// Update applies the non-nil fields of update to the invoice matching both ID and owner
func (repo *InvoiceRepository) Update(_ context.Context, id uuid.UUID, userID string, update *invoice.Update) (*invoice.Invoice, error) {
	txn := repo.db.Txn(true)
	defer txn.Abort()

	obj, err := txn.First("invoices", "id", id.String())
	if err != nil {
		return nil, err
	}
	if obj == nil || obj.(*invoiceRecord).UserID != userID {
		return nil, nil
	}

	// memdb objects must not be mutated in place
	record := *obj.(*invoiceRecord)
	if update.ClientName != nil {
		record.ClientName = *update.ClientName
	}
	if update.Amount != nil {
		record.Amount = *update.Amount
	}
	if update.DueDate != nil {
		record.DueDate = *update.DueDate
	}
	if update.Status != nil {
		record.Status = *update.Status
	}
	record.UpdatedAt = time.Now().Unix()

	if err := txn.Insert("invoices", &record); err != nil {
		return nil, err
	}
	txn.Commit()

	return record.toInvoice(), nil
}

// Delete deletes the invoice matching both ID and owner.
// Deleting a record that does not exist is not an error.
func (repo *InvoiceRepository) Delete(_ context.Context, id uuid.UUID, userID string) error {
	txn := repo.db.Txn(true)
	defer txn.Abort()

	obj, err := txn.First("invoices", "id", id.String())
	if err != nil {
		return err
	}
	if obj == nil || obj.(*invoiceRecord).UserID != userID {
		return nil
	}

	if err := txn.Delete("invoices", obj); err != nil {
		return err
	}
	txn.Commit()
	return nil
}
