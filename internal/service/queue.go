package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"taxiq/internal/domain"
	"taxiq/internal/repository"
)

// sequencerRetries bounds the find-max-then-insert retry loop. Losing the
// race this many times in a row means pathological contention.
const sequencerRetries = 3

// QueueService issues sequential queue tickets per (location, category) and
// serves them in order.
type QueueService struct {
	ticketRepo   repository.TicketRepository
	locationRepo repository.LocationRepository
	categoryRepo repository.CategoryRepository
	customerRepo repository.CustomerRepository
}

// NewQueueService creates a new QueueService.
func NewQueueService(
	ticketRepo repository.TicketRepository,
	locationRepo repository.LocationRepository,
	categoryRepo repository.CategoryRepository,
	customerRepo repository.CustomerRepository,
) *QueueService {
	return &QueueService{
		ticketRepo:   ticketRepo,
		locationRepo: locationRepo,
		categoryRepo: categoryRepo,
		customerRepo: customerRepo,
	}
}

// ObtainRequest contains the parameters for obtaining a queue ticket.
type ObtainRequest struct {
	CustomerID string
	LocationID string
	CategoryID string
}

// Obtain issues the next ticket number for the (location, category) pair,
// starting at 1. The number is max+1 at read time; the UNIQUE
// (location, category, number) index rejects a concurrent duplicate and the
// loop re-reads, so issuance is race-free without any in-process state.
func (s *QueueService) Obtain(ctx context.Context, req ObtainRequest) (*domain.Ticket, error) {
	if req.CustomerID == "" {
		return nil, ErrInvalidCustomerID
	}
	if req.LocationID == "" {
		return nil, ErrInvalidLocationID
	}
	if req.CategoryID == "" {
		return nil, ErrInvalidCategoryID
	}

	if _, err := s.customerRepo.GetByID(ctx, req.CustomerID); err != nil {
		return nil, err
	}

	location, err := s.locationRepo.GetByID(ctx, req.LocationID)
	if err != nil {
		return nil, err
	}
	if !location.Available {
		return nil, ErrLocationUnavailable
	}

	category, err := s.categoryRepo.GetByID(ctx, req.CategoryID)
	if err != nil {
		return nil, err
	}
	if !category.Available {
		return nil, ErrLocationUnavailable
	}

	for attempt := 0; attempt < sequencerRetries; attempt++ {
		max, err := s.ticketRepo.MaxNumber(ctx, req.LocationID, req.CategoryID)
		if err != nil {
			return nil, err
		}

		ticket := &domain.Ticket{
			ID:         uuid.New().String(),
			CustomerID: req.CustomerID,
			LocationID: req.LocationID,
			CategoryID: req.CategoryID,
			Number:     max + 1,
			IssuedAt:   time.Now(),
		}

		err = s.ticketRepo.Create(ctx, ticket)
		if err == nil {
			return ticket, nil
		}
		if !errors.Is(err, repository.ErrDuplicate) {
			return nil, err
		}
	}

	return nil, ErrSequencerContention
}

// ServeNextRequest contains the parameters for serving the next ticket.
type ServeNextRequest struct {
	LocationID string
	CategoryID string
}

// ServeNext marks the lowest unserved ticket for the pair as served and
// returns it. An empty queue surfaces as repository.ErrNotFound.
func (s *QueueService) ServeNext(ctx context.Context, req ServeNextRequest) (*domain.Ticket, error) {
	if req.LocationID == "" {
		return nil, ErrInvalidLocationID
	}
	if req.CategoryID == "" {
		return nil, ErrInvalidCategoryID
	}

	ticket, err := s.ticketRepo.NextUnserved(ctx, req.LocationID, req.CategoryID)
	if err != nil {
		return nil, err
	}

	if err := s.ticketRepo.MarkServed(ctx, ticket.ID); err != nil {
		return nil, err
	}

	ticket.Served = true
	ticket.ServedAt = time.Now()
	return ticket, nil
}

// GetTicket retrieves a ticket by ID.
func (s *QueueService) GetTicket(ctx context.Context, id string) (*domain.Ticket, error) {
	if id == "" {
		return nil, ErrMissingFields
	}
	return s.ticketRepo.GetByID(ctx, id)
}
