package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/freelancetrack/invoice-server/internal/invoice"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

// InvoiceRepository implements the invoice.Repository interface using PostgreSQL.
// Every query carries the owner-equality predicate; there is no way to reach another
// user's rows through this repository.
type InvoiceRepository struct {
	db *pgxpool.Pool
}

var _ invoice.Repository = (*InvoiceRepository)(nil)

// GetByUserID retrieves a page of invoices owned by the given user, newest-created-first,
// together with the total amount of matching records
func (repo *InvoiceRepository) GetByUserID(ctx context.Context, userID string, filter *invoice.Filter, offset, limit uint64) ([]*invoice.Invoice, uint64, error) {
	predicate := squirrel.Eq{"user_id": userID}
	if filter != nil && filter.Status != nil {
		predicate["status"] = string(*filter.Status)
	}

	countSQL, countVals, err := squirrel.Select("count(*)").From("invoices").
		Where(predicate).
		PlaceholderFormat(squirrel.Dollar).ToSql()
	if err != nil {
		return nil, 0, err
	}
	var n uint64
	if err := repo.db.QueryRow(ctx, countSQL, countVals...).Scan(&n); err != nil {
		return nil, 0, err
	}
	if n == 0 {
		return []*invoice.Invoice{}, 0, nil
	}

	query := squirrel.Select("*").From("invoices").
		Where(predicate).
		OrderBy("created_at desc").
		Offset(offset)
	if limit > 0 {
		query = query.Limit(limit)
	}
	sql, vals, err := query.PlaceholderFormat(squirrel.Dollar).ToSql()
	if err != nil {
		return nil, 0, err
	}

	rows, err := repo.db.Query(ctx, sql, vals...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return []*invoice.Invoice{}, n, nil
		}
		return nil, 0, err
	}
	defer rows.Close()

	invoices := []*invoice.Invoice{}
	for rows.Next() {
		obj, err := rowToInvoice(rows)
		if err != nil {
			return nil, 0, err
		}
		invoices = append(invoices, obj)
	}

	return invoices, n, nil
}

// GetByID retrieves a single invoice by its ID, scoped to the owning user
func (repo *InvoiceRepository) GetByID(ctx context.Context, id uuid.UUID, userID string) (*invoice.Invoice, error) {
	row := repo.db.QueryRow(ctx, "select * from invoices where invoice_id = $1 and user_id = $2", id, userID)
	obj, err := rowToInvoice(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return obj, nil
}

// Create creates a new invoice owned by the given user
func (repo *InvoiceRepository) Create(ctx context.Context, userID string, create *invoice.Create) (*invoice.Invoice, error) {
	id := uuid.New()
	now := time.Now().Unix()

	query := `
		insert into invoices (invoice_id, user_id, client_name, amount, due_date, status, created_at, updated_at)
		values ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := repo.db.Exec(
		ctx,
		query,
		id,
		userID,
		create.ClientName,
		create.Amount,
		create.DueDate,
		string(create.Status),
		now,
		now,
	)
	if err != nil {
		return nil, err
	}

	return &invoice.Invoice{
		ID:         id,
		UserID:     userID,
		ClientName: create.ClientName,
		Amount:     create.Amount,
		DueDate:    create.DueDate,
		Status:     create.Status,
		CreatedAt:  now,
		UpdatedAt:  now,
	}, nil
}

// Update applies the non-nil fields of update to the invoice matching both ID and owner
func (repo *InvoiceRepository) Update(ctx context.Context, id uuid.UUID, userID string, update *invoice.Update) (*invoice.Invoice, error) {
	// Simply re-fetch the invoice if nothing should be changed
	if update.ClientName == nil && update.Amount == nil && update.DueDate == nil && update.Status == nil {
		return repo.GetByID(ctx, id, userID)
	}

	// Build the SQL query
	query := squirrel.Update("invoices").
		Where(squirrel.Eq{"invoice_id": id, "user_id": userID}).
		Set("updated_at", time.Now().Unix())
	if update.ClientName != nil {
		query = query.Set("client_name", *update.ClientName)
	}
	if update.Amount != nil {
		query = query.Set("amount", *update.Amount)
	}
	if update.DueDate != nil {
		query = query.Set("due_date", *update.DueDate)
	}
	if update.Status != nil {
		query = query.Set("status", string(*update.Status))
	}
	sql, values, err := query.Suffix("returning *").PlaceholderFormat(squirrel.Dollar).ToSql()
	if err != nil {
		return nil, err
	}

	// Perform the SQL query and scan the updated row
	obj, err := rowToInvoice(repo.db.QueryRow(ctx, sql, values...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return obj, nil
}

// Delete deletes the invoice matching both ID and owner.
// Deleting a record that does not exist is not an error.
func (repo *InvoiceRepository) Delete(ctx context.Context, id uuid.UUID, userID string) error {
	_, err := repo.db.Exec(ctx, "delete from invoices where invoice_id = $1 and user_id = $2", id, userID)
	return err
}

func rowToInvoice(row pgx.Row) (*invoice.Invoice, error) {
	obj := new(invoice.Invoice)
	var dueDate time.Time
	if err := row.Scan(&obj.ID, &obj.UserID, &obj.ClientName, &obj.Amount, &dueDate, &obj.Status, &obj.CreatedAt, &obj.UpdatedAt); err != nil {
		return nil, err
	}
	obj.DueDate = dueDate.Format("2006-01-02")
	return obj, nil
}
