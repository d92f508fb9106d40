package postgres

import (
	"context"
	"database/sql"

	"taxiq/internal/domain"
)

// LocationRepository is a PostgreSQL implementation of repository.LocationRepository.
type LocationRepository struct {
	q Querier
}

// NewLocationRepository creates a new PostgreSQL location repository.
func NewLocationRepository(db *sql.DB) *LocationRepository {
	return &LocationRepository{q: db}
}

// Create persists a new location.
func (r *LocationRepository) Create(ctx context.Context, loc *domain.Location) error {
	query := `INSERT INTO locations (id, name, available, hours) VALUES ($1, $2, $3, $4)`
	_, err := r.q.ExecContext(ctx, query, loc.ID, loc.Name, loc.Available, loc.Hours)
	return mapError(err)
}

// GetByID retrieves a location by ID.
func (r *LocationRepository) GetByID(ctx context.Context, id string) (*domain.Location, error) {
	var loc domain.Location
	err := r.q.QueryRowContext(ctx,
		`SELECT id, name, available, hours FROM locations WHERE id = $1`, id).
		Scan(&loc.ID, &loc.Name, &loc.Available, &loc.Hours)
	if err != nil {
		return nil, mapError(err)
	}
	return &loc, nil
}

// GetAll retrieves all locations.
func (r *LocationRepository) GetAll(ctx context.Context) ([]*domain.Location, error) {
	rows, err := r.q.QueryContext(ctx, `SELECT id, name, available, hours FROM locations ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var locations []*domain.Location
	for rows.Next() {
		var loc domain.Location
		if err := rows.Scan(&loc.ID, &loc.Name, &loc.Available, &loc.Hours); err != nil {
			return nil, err
		}
		locations = append(locations, &loc)
	}
	return locations, rows.Err()
}

// CategoryRepository is a PostgreSQL implementation of repository.CategoryRepository.
type CategoryRepository struct {
	q Querier
}

// NewCategoryRepository creates a new PostgreSQL category repository.
func NewCategoryRepository(db *sql.DB) *CategoryRepository {
	return &CategoryRepository{q: db}
}

// Create persists a new category.
func (r *CategoryRepository) Create(ctx context.Context, cat *domain.Category) error {
	query := `INSERT INTO categories (id, name, available) VALUES ($1, $2, $3)`
	_, err := r.q.ExecContext(ctx, query, cat.ID, cat.Name, cat.Available)
	return mapError(err)
}

// GetByID retrieves a category by ID.
func (r *CategoryRepository) GetByID(ctx context.Context, id string) (*domain.Category, error) {
	var cat domain.Category
	err := r.q.QueryRowContext(ctx,
		`SELECT id, name, available FROM categories WHERE id = $1`, id).
		Scan(&cat.ID, &cat.Name, &cat.Available)
	if err != nil {
		return nil, mapError(err)
	}
	return &cat, nil
}

// GetAll retrieves all categories.
func (r *CategoryRepository) GetAll(ctx context.Context) ([]*domain.Category, error) {
	rows, err := r.q.QueryContext(ctx, `SELECT id, name, available FROM categories ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []*domain.Category
	for rows.Next() {
		var cat domain.Category
		if err := rows.Scan(&cat.ID, &cat.Name, &cat.Available); err != nil {
			return nil, err
		}
		categories = append(categories, &cat)
	}
	return categories, rows.Err()
}
