package repository

import (
	"context"

	"taxiq/internal/domain"
)

// CustomerUpdate carries the patchable fields of a customer profile.
// Nil fields are left untouched.
type CustomerUpdate struct {
	Username *string
	Phone    *string
	Blocked  *bool
}

// CustomerRepository defines the persistence operations for customers.
type CustomerRepository interface {
	// Create persists a new customer. Returns ErrDuplicate if the email
	// is already registered.
	Create(ctx context.Context, customer *domain.Customer) error

	// GetByID retrieves a customer by ID.
	GetByID(ctx context.Context, id string) (*domain.Customer, error)

	// GetByEmail retrieves a customer by email.
	GetByEmail(ctx context.Context, email string) (*domain.Customer, error)

	// GetAll retrieves all customers.
	GetAll(ctx context.Context) ([]*domain.Customer, error)

	// Patch applies a partial update to a customer.
	Patch(ctx context.Context, id string, upd CustomerUpdate) error

	// Delete removes a customer.
	Delete(ctx context.Context, id string) error
}
