package postgres

import (
	"context"
	"database/sql"
	"time"

	"taxiq/internal/domain"
	"taxiq/internal/repository"
)

// TicketRepository is a PostgreSQL implementation of repository.TicketRepository.
// The tickets table carries UNIQUE (location_id, category_id, number), which
// is what makes find-max-then-insert sequencing safe: a concurrent issuer
// that lost the race gets ErrDuplicate and retries.
type TicketRepository struct {
	q Querier
}

// NewTicketRepository creates a new PostgreSQL ticket repository.
func NewTicketRepository(db *sql.DB) *TicketRepository {
	return &TicketRepository{q: db}
}

// NewTicketRepositoryWithTx creates a ticket repository using a transaction.
func NewTicketRepositoryWithTx(tx *sql.Tx) *TicketRepository {
	return &TicketRepository{q: tx}
}

// Create persists a new ticket.
func (r *TicketRepository) Create(ctx context.Context, ticket *domain.Ticket) error {
	query := `
		INSERT INTO tickets (id, customer_id, location_id, category_id, number, served, issued_at, served_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	var servedAt sql.NullTime
	if !ticket.ServedAt.IsZero() {
		servedAt = sql.NullTime{Time: ticket.ServedAt, Valid: true}
	}

	_, err := r.q.ExecContext(ctx, query,
		ticket.ID,
		ticket.CustomerID,
		ticket.LocationID,
		ticket.CategoryID,
		ticket.Number,
		ticket.Served,
		ticket.IssuedAt,
		servedAt,
	)

	return mapError(err)
}

const ticketColumns = `id, customer_id, location_id, category_id, number, served, issued_at, served_at`

func scanTicket(row *sql.Row) (*domain.Ticket, error) {
	var t domain.Ticket
	var servedAt sql.NullTime

	err := row.Scan(&t.ID, &t.CustomerID, &t.LocationID, &t.CategoryID, &t.Number, &t.Served, &t.IssuedAt, &servedAt)
	if err != nil {
		return nil, mapError(err)
	}
	if servedAt.Valid {
		t.ServedAt = servedAt.Time
	}
	return &t, nil
}

// GetByID retrieves a ticket by ID.
func (r *TicketRepository) GetByID(ctx context.Context, id string) (*domain.Ticket, error) {
	query := `SELECT ` + ticketColumns + ` FROM tickets WHERE id = $1`
	return scanTicket(r.q.QueryRowContext(ctx, query, id))
}

// MaxNumber returns the highest ticket number issued for the pair, 0 when
// none exists.
func (r *TicketRepository) MaxNumber(ctx context.Context, locationID, categoryID string) (int, error) {
	query := `
		SELECT COALESCE(MAX(number), 0)
		FROM tickets WHERE location_id = $1 AND category_id = $2
	`

	var max int
	if err := r.q.QueryRowContext(ctx, query, locationID, categoryID).Scan(&max); err != nil {
		return 0, err
	}
	return max, nil
}

// NextUnserved returns the lowest-numbered unserved ticket for the pair.
func (r *TicketRepository) NextUnserved(ctx context.Context, locationID, categoryID string) (*domain.Ticket, error) {
	query := `
		SELECT ` + ticketColumns + `
		FROM tickets
		WHERE location_id = $1 AND category_id = $2 AND NOT served
		ORDER BY number ASC LIMIT 1
	`
	return scanTicket(r.q.QueryRowContext(ctx, query, locationID, categoryID))
}

// MarkServed flags a ticket as served.
func (r *TicketRepository) MarkServed(ctx context.Context, id string) error {
	result, err := r.q.ExecContext(ctx,
		`UPDATE tickets SET served = TRUE, served_at = $1 WHERE id = $2`,
		time.Now(), id)
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
