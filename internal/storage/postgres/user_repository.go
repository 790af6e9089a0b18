package postgres

import (
	"context"
	"errors"

	"github.com/freelancetrack/invoice-server/internal/user"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

// UserRepository implements the user.Repository interface using PostgreSQL
type UserRepository struct {
	db *pgxpool.Pool
}

var _ user.Repository = (*UserRepository)(nil)

// GetByID retrieves a user by their ID
func (repo *UserRepository) GetByID(ctx context.Context, id string) (*user.User, error) {
	row := repo.db.QueryRow(ctx, "select user_id, display_name, email from users where user_id = $1", id)

	obj := new(user.User)
	if err := row.Scan(&obj.ID, &obj.DisplayName, &obj.Email); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return obj, nil
}

// Upsert creates a new user or refreshes the profile fields of an existing one
func (repo *UserRepository) Upsert(ctx context.Context, upsert *user.Upsert) (*user.User, error) {
	query := `
		insert into users (user_id, display_name, email)
		values ($1, $2, $3)
		on conflict (user_id) do update set display_name = $2, email = $3
	`
	if _, err := repo.db.Exec(ctx, query, upsert.ID, upsert.DisplayName, upsert.Email); err != nil {
		return nil, err
	}

	return &user.User{
		ID:          upsert.ID,
		DisplayName: upsert.DisplayName,
		Email:       upsert.Email,
	}, nil
}

// Delete deletes a user by their ID
func (repo *UserRepository) Delete(ctx context.Context, id string) error {
	_, err := repo.db.Exec(ctx, "delete from users where user_id = $1", id)
	return err
}
