package postgres

import (
	"context"
	"database/sql"

	"taxiq/internal/domain"
)

// RatingRepository is a PostgreSQL implementation of repository.RatingRepository.
type RatingRepository struct {
	q Querier
}

// NewRatingRepository creates a new PostgreSQL rating repository.
func NewRatingRepository(db *sql.DB) *RatingRepository {
	return &RatingRepository{q: db}
}

// NewRatingRepositoryWithTx creates a rating repository using a transaction.
func NewRatingRepositoryWithTx(tx *sql.Tx) *RatingRepository {
	return &RatingRepository{q: tx}
}

// Create persists a new rating.
func (r *RatingRepository) Create(ctx context.Context, rating *domain.Rating) error {
	query := `
		INSERT INTO ratings (id, customer_id, driver_id, ride_id, value, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.q.ExecContext(ctx, query,
		rating.ID,
		rating.CustomerID,
		rating.DriverID,
		rating.RideID,
		rating.Value,
		rating.CreatedAt,
	)

	return mapError(err)
}

// GetByDriverID retrieves every rating referencing a driver.
func (r *RatingRepository) GetByDriverID(ctx context.Context, driverID string) ([]*domain.Rating, error) {
	query := `
		SELECT id, customer_id, driver_id, ride_id, value, created_at
		FROM ratings WHERE driver_id = $1 ORDER BY created_at ASC
	`

	rows, err := r.q.QueryContext(ctx, query, driverID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ratings []*domain.Rating
	for rows.Next() {
		var rt domain.Rating
		if err := rows.Scan(&rt.ID, &rt.CustomerID, &rt.DriverID, &rt.RideID, &rt.Value, &rt.CreatedAt); err != nil {
			return nil, err
		}
		ratings = append(ratings, &rt)
	}
	return ratings, rows.Err()
}
