package inmem

import (
	"context"

	"github.com/freelancetrack/invoice-server/internal/invoice"
	"github.com/freelancetrack/invoice-server/internal/storage"
	"github.com/freelancetrack/invoice-server/internal/user"
	"github.com/hashicorp/go-memdb"
)

var dbSchema = &memdb.DBSchema{
	Tables: map[string]*memdb.TableSchema{
		"users": {
			Name: "users",
			Indexes: map[string]*memdb.IndexSchema{
				"id": {
					Name:         "id",
					Unique:       true,
					AllowMissing: false,
					Indexer:      &memdb.StringFieldIndex{Field: "ID"},
				},
			},
		},
		"invoices": {
			Name: "invoices",
			Indexes: map[string]*memdb.IndexSchema{
				"id": {
					Name:         "id",
					Unique:       true,
					AllowMissing: false,
					Indexer:      &memdb.StringFieldIndex{Field: "ID"},
				},
				"owner": {
					Name:         "owner",
					Unique:       false,
					AllowMissing: false,
					Indexer:      &memdb.StringFieldIndex{Field: "UserID"},
				},
			},
		},
	},
}

// Driver represents an in-memory storage driver implementation built using hashicorp/go-memdb.
// It implements the exact same semantics as the PostgreSQL driver and backs the handler
// tests; it is also handy for local development without a database.
type Driver struct {
	db       *memdb.MemDB
	users    *UserRepository
	invoices *InvoiceRepository
}

var _ storage.Driver = (*Driver)(nil)

// New creates a new empty in-memory storage driver.
// Use Initialize to initialize the repository implementations.
func New() *Driver {
	return &Driver{}
}

// Initialize initializes the in-memory database and the repository implementations
func (driver *Driver) Initialize(_ context.Context) error {
	db, err := memdb.NewMemDB(dbSchema)
	if err != nil {
		return err
	}
	driver.db = db
	driver.users = &UserRepository{db: db}
	driver.invoices = &InvoiceRepository{db: db}
	return nil
}

// Users provides the in-memory user repository implementation
func (driver *Driver) Users() user.Repository {
	return driver.users
}

// Invoices provides the in-memory invoice repository implementation
func (driver *Driver) Invoices() invoice.Repository {
	return driver.invoices
}

// Close discards the repository implementations and the in-memory database
func (driver *Driver) Close() {
	driver.users = nil
	driver.invoices = nil
	driver.db = nil
}
