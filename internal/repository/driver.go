package repository

import (
	"context"

	"taxiq/internal/domain"
)

// DriverRepository defines the persistence operations for drivers.
type DriverRepository interface {
	// Create persists a new driver. Returns ErrDuplicate on a taken email.
	Create(ctx context.Context, driver *domain.Driver) error

	// GetByID retrieves a driver by ID.
	GetByID(ctx context.Context, id string) (*domain.Driver, error)

	// GetByEmail retrieves a driver by email.
	GetByEmail(ctx context.Context, email string) (*domain.Driver, error)

	// GetAll retrieves all drivers.
	GetAll(ctx context.Context) ([]*domain.Driver, error)

	// FirstAvailable returns any driver currently in AVAILABLE status,
	// or ErrNotFound when none exists.
	FirstAvailable(ctx context.Context) (*domain.Driver, error)

	// UpdateStatus sets a driver's status.
	UpdateStatus(ctx context.Context, id string, status domain.DriverStatus) error

	// AddEarnings increments a driver's cumulative earnings.
	AddEarnings(ctx context.Context, id string, amount float64) error

	// UpdateRating stores a driver's recomputed average rating.
	UpdateRating(ctx context.Context, id string, rating float64) error
}
