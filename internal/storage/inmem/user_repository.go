package inmem

import (
	"context"

	"github.com/freelancetrack/invoice-server/internal/user"
	"github.com/hashicorp/go-memdb"
)

// UserRepository implements the user.Repository interface using an in-memory database
type UserRepository struct {
	db *memdb.MemDB
}

var _ user.Repository = (*UserRepository)(nil)

// GetByID retrieves a user by their ID
func (repo *UserRepository) GetByID(_ context.Context, id string) (*user.User, error) {
	txn := repo.db.Txn(false)
	obj, err := txn.First("users", "id", id)
	if err != nil {
		return nil, err
	}
	if obj == nil {
		return nil, nil
	}
	return obj.(*user.User), nil
}

// Upsert creates a new user or refreshes the profile fields of an existing one
func (repo *UserRepository) Upsert(_ context.Context, upsert *user.Upsert) (*user.User, error) {
	obj := &user.User{
		ID:          upsert.ID,
		DisplayName: upsert.DisplayName,
		Email:       upsert.Email,
	}

	txn := repo.db.Txn(true)
	defer txn.Abort()
	if err := txn.Insert("users", obj); err != nil {
		return nil, err
	}
	txn.Commit()

	return obj, nil
}

// Delete deletes a user by their ID together with all invoices they own, mirroring the
// cascading foreign key of the PostgreSQL schema
func (repo *UserRepository) Delete(_ context.Context, id string) error {
	txn := repo.db.Txn(true)
	defer txn.Abort()
	if _, err := txn.DeleteAll("users", "id", id); err != nil {
		return err
	}
	if _, err := txn.DeleteAll("invoices", "owner", id); err != nil {
		return err
	}
	txn.Commit()
	return nil
}
