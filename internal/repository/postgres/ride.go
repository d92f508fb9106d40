package postgres

import (
	"context"
	"database/sql"

	"taxiq/internal/domain"
	"taxiq/internal/repository"
)

// RideRepository is a PostgreSQL implementation of repository.RideRepository.
type RideRepository struct {
	q Querier
}

// NewRideRepository creates a new PostgreSQL ride repository.
func NewRideRepository(db *sql.DB) *RideRepository {
	return &RideRepository{q: db}
}

// NewRideRepositoryWithTx creates a ride repository using a transaction.
func NewRideRepositoryWithTx(tx *sql.Tx) *RideRepository {
	return &RideRepository{q: tx}
}

// Create persists a new ride.
func (r *RideRepository) Create(ctx context.Context, ride *domain.Ride) error {
	query := `
		INSERT INTO rides (id, customer_id, driver_id, pickup, destination, status, fare, payment_status, booked_at, cancelled_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	var driverID sql.NullString
	if ride.DriverID != "" {
		driverID = sql.NullString{String: ride.DriverID, Valid: true}
	}

	var cancelledAt sql.NullTime
	if !ride.CancelledAt.IsZero() {
		cancelledAt = sql.NullTime{Time: ride.CancelledAt, Valid: true}
	}

	_, err := r.q.ExecContext(ctx, query,
		ride.ID,
		ride.CustomerID,
		driverID,
		ride.Pickup,
		ride.Destination,
		ride.Status,
		ride.Fare,
		ride.PaymentStatus,
		ride.BookedAt,
		cancelledAt,
	)

	return mapError(err)
}

const rideColumns = `id, customer_id, driver_id, pickup, destination, status, fare, payment_status, booked_at, cancelled_at`

func scanRideRow(scan func(...any) error) (*domain.Ride, error) {
	var ride domain.Ride
	var driverID sql.NullString
	var cancelledAt sql.NullTime

	err := scan(
		&ride.ID,
		&ride.CustomerID,
		&driverID,
		&ride.Pickup,
		&ride.Destination,
		&ride.Status,
		&ride.Fare,
		&ride.PaymentStatus,
		&ride.BookedAt,
		&cancelledAt,
	)
	if err != nil {
		return nil, mapError(err)
	}

	if driverID.Valid {
		ride.DriverID = driverID.String
	}
	if cancelledAt.Valid {
		ride.CancelledAt = cancelledAt.Time
	}
	return &ride, nil
}

// GetByID retrieves a ride by ID.
func (r *RideRepository) GetByID(ctx context.Context, id string) (*domain.Ride, error) {
	query := `SELECT ` + rideColumns + ` FROM rides WHERE id = $1`
	return scanRideRow(r.q.QueryRowContext(ctx, query, id).Scan)
}

// GetAll retrieves recent rides.
func (r *RideRepository) GetAll(ctx context.Context) ([]*domain.Ride, error) {
	query := `SELECT ` + rideColumns + ` FROM rides ORDER BY booked_at DESC LIMIT 100`

	rows, err := r.q.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rides []*domain.Ride
	for rows.Next() {
		ride, err := scanRideRow(rows.Scan)
		if err != nil {
			return nil, err
		}
		rides = append(rides, ride)
	}
	return rides, rows.Err()
}

// Update updates an existing ride.
func (r *RideRepository) Update(ctx context.Context, ride *domain.Ride) error {
	query := `
		UPDATE rides
		SET driver_id = $1, status = $2, fare = $3, payment_status = $4, cancelled_at = $5
		WHERE id = $6
	`

	var driverID sql.NullString
	if ride.DriverID != "" {
		driverID = sql.NullString{String: ride.DriverID, Valid: true}
	}

	var cancelledAt sql.NullTime
	if !ride.CancelledAt.IsZero() {
		cancelledAt = sql.NullTime{Time: ride.CancelledAt, Valid: true}
	}

	result, err := r.q.ExecContext(ctx, query,
		driverID,
		ride.Status,
		ride.Fare,
		ride.PaymentStatus,
		cancelledAt,
		ride.ID,
	)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}
