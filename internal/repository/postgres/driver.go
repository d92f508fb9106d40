package postgres

import (
	"context"
	"database/sql"

	"taxiq/internal/domain"
	"taxiq/internal/repository"
)

// DriverRepository is a PostgreSQL implementation of repository.DriverRepository.
type DriverRepository struct {
	q Querier
}

// NewDriverRepository creates a new PostgreSQL driver repository.
func NewDriverRepository(db *sql.DB) *DriverRepository {
	return &DriverRepository{q: db}
}

// NewDriverRepositoryWithTx creates a driver repository using a transaction.
func NewDriverRepositoryWithTx(tx *sql.Tx) *DriverRepository {
	return &DriverRepository{q: tx}
}

// Create persists a new driver.
func (r *DriverRepository) Create(ctx context.Context, driver *domain.Driver) error {
	query := `
		INSERT INTO drivers (id, username, email, password_hash, phone, vehicle_model, status, earnings, rating, joined_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.q.ExecContext(ctx, query,
		driver.ID,
		driver.Username,
		driver.Email,
		driver.PasswordHash,
		driver.Phone,
		driver.VehicleModel,
		driver.Status,
		driver.Earnings,
		driver.Rating,
		driver.JoinedAt,
	)

	return mapError(err)
}

const driverColumns = `id, username, email, password_hash, phone, vehicle_model, status, earnings, rating, joined_at`

func scanDriver(row *sql.Row) (*domain.Driver, error) {
	var d domain.Driver
	err := row.Scan(&d.ID, &d.Username, &d.Email, &d.PasswordHash, &d.Phone,
		&d.VehicleModel, &d.Status, &d.Earnings, &d.Rating, &d.JoinedAt)
	if err != nil {
		return nil, mapError(err)
	}
	return &d, nil
}

// GetByID retrieves a driver by ID.
func (r *DriverRepository) GetByID(ctx context.Context, id string) (*domain.Driver, error) {
	query := `SELECT ` + driverColumns + ` FROM drivers WHERE id = $1`
	return scanDriver(r.q.QueryRowContext(ctx, query, id))
}

// GetByEmail retrieves a driver by email.
func (r *DriverRepository) GetByEmail(ctx context.Context, email string) (*domain.Driver, error) {
	query := `SELECT ` + driverColumns + ` FROM drivers WHERE email = $1`
	return scanDriver(r.q.QueryRowContext(ctx, query, email))
}

// GetAll retrieves all drivers.
func (r *DriverRepository) GetAll(ctx context.Context) ([]*domain.Driver, error) {
	query := `SELECT ` + driverColumns + ` FROM drivers ORDER BY joined_at DESC LIMIT 100`

	rows, err := r.q.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var drivers []*domain.Driver
	for rows.Next() {
		var d domain.Driver
		if err := rows.Scan(&d.ID, &d.Username, &d.Email, &d.PasswordHash, &d.Phone,
			&d.VehicleModel, &d.Status, &d.Earnings, &d.Rating, &d.JoinedAt); err != nil {
			return nil, err
		}
		drivers = append(drivers, &d)
	}
	return drivers, rows.Err()
}

// FirstAvailable returns the AVAILABLE driver with the oldest registration.
func (r *DriverRepository) FirstAvailable(ctx context.Context) (*domain.Driver, error) {
	query := `SELECT ` + driverColumns + ` FROM drivers WHERE status = $1 ORDER BY joined_at ASC LIMIT 1`
	return scanDriver(r.q.QueryRowContext(ctx, query, domain.DriverStatusAvailable))
}

// UpdateStatus sets a driver's status.
func (r *DriverRepository) UpdateStatus(ctx context.Context, id string, status domain.DriverStatus) error {
	result, err := r.q.ExecContext(ctx, `UPDATE drivers SET status = $1 WHERE id = $2`, status, id)
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

// AddEarnings increments a driver's cumulative earnings.
func (r *DriverRepository) AddEarnings(ctx context.Context, id string, amount float64) error {
	result, err := r.q.ExecContext(ctx, `UPDATE drivers SET earnings = earnings + $1 WHERE id = $2`, amount, id)
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

// UpdateRating stores a driver's recomputed average rating.
func (r *DriverRepository) UpdateRating(ctx context.Context, id string, rating float64) error {
	result, err := r.q.ExecContext(ctx, `UPDATE drivers SET rating = $1 WHERE id = $2`, rating, id)
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
