package repository

import (
	"context"

	"taxiq/internal/domain"
)

// TicketRepository defines the persistence operations for queue tickets.
type TicketRepository interface {
	// Create persists a new ticket. Returns ErrDuplicate if the
	// (location, category, number) slot is already taken, which callers
	// use to retry sequencing under concurrent issuance.
	Create(ctx context.Context, ticket *domain.Ticket) error

	// GetByID retrieves a ticket by ID.
	GetByID(ctx context.Context, id string) (*domain.Ticket, error)

	// MaxNumber returns the highest ticket number issued for the pair,
	// or 0 when none exists.
	MaxNumber(ctx context.Context, locationID, categoryID string) (int, error)

	// NextUnserved returns the unserved ticket with the lowest number for
	// the pair, or ErrNotFound when the queue is empty.
	NextUnserved(ctx context.Context, locationID, categoryID string) (*domain.Ticket, error)

	// MarkServed flags a ticket as served and stamps the serve time.
	MarkServed(ctx context.Context, id string) error
}

// LocationRepository defines the persistence operations for locations.
type LocationRepository interface {
	Create(ctx context.Context, loc *domain.Location) error
	GetByID(ctx context.Context, id string) (*domain.Location, error)
	GetAll(ctx context.Context) ([]*domain.Location, error)
}

// CategoryRepository defines the persistence operations for categories.
type CategoryRepository interface {
	Create(ctx context.Context, cat *domain.Category) error
	GetByID(ctx context.Context, id string) (*domain.Category, error)
	GetAll(ctx context.Context) ([]*domain.Category, error)
}
