package repository

import (
	"context"

	"taxiq/internal/domain"
)

// RatingRepository defines the persistence operations for ratings.
type RatingRepository interface {
	// Create persists a new rating.
	Create(ctx context.Context, rating *domain.Rating) error

	// GetByDriverID retrieves every rating referencing a driver.
	GetByDriverID(ctx context.Context, driverID string) ([]*domain.Rating, error)
}
