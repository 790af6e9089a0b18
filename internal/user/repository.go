package user

import (
	"context"
)

// Repository defines the user repository API
type Repository interface {
	// GetByID retrieves a user by their ID
	GetByID(ctx context.Context, id string) (*User, error)

	// Upsert creates a new user or refreshes the profile fields of an existing one.
	// It is called on every completed login flow.
	Upsert(ctx context.Context, upsert *Upsert) (*User, error)

	// Delete deletes a user by their ID
	Delete(ctx context.Context, id string) error
}

// Upsert is used to create or refresh a user
type Upsert struct {
	ID          string
	DisplayName string
	Email       string
}
