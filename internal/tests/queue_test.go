package tests

import (
	"context"
	"errors"
	"testing"

	"taxiq/internal/domain"
	"taxiq/internal/repository"
	"taxiq/internal/service"
)

// ──────────────────────────────────────────────
// 3. QUEUE TICKET SEQUENCING
// ──────────────────────────────────────────────

func newQueueFixture() (*service.QueueService, *MockTicketRepository, *MockLocationRepository, *MockCategoryRepository, *MockCustomerRepository) {
	ticketRepo := NewMockTicketRepository()
	locationRepo := NewMockLocationRepository()
	categoryRepo := NewMockCategoryRepository()
	customerRepo := NewMockCustomerRepository()

	customerRepo.AddCustomer(&domain.Customer{ID: "cust-1", Username: "alice"})
	locationRepo.AddLocation(&domain.Location{ID: "loc-1", Name: "Central", Available: true})
	categoryRepo.AddCategory(&domain.Category{ID: "cat-1", Name: "Standard", Available: true})

	svc := service.NewQueueService(ticketRepo, locationRepo, categoryRepo, customerRepo)
	return svc, ticketRepo, locationRepo, categoryRepo, customerRepo
}

func TestObtain_NumbersAreContiguousFromOne(t *testing.T) {
	t.Parallel()

	svc, _, _, _, _ := newQueueFixture()

	for want := 1; want <= 5; want++ {
		ticket, err := svc.Obtain(context.Background(), service.ObtainRequest{
			CustomerID: "cust-1",
			LocationID: "loc-1",
			CategoryID: "cat-1",
		})
		if err != nil {
			t.Fatalf("ticket %d: unexpected error: %v", want, err)
		}
		if ticket.Number != want {
			t.Errorf("expected ticket number %d, got %d", want, ticket.Number)
		}
	}
}

func TestObtain_IndependentSequencesPerPair(t *testing.T) {
	t.Parallel()

	svc, _, locationRepo, categoryRepo, _ := newQueueFixture()
	locationRepo.AddLocation(&domain.Location{ID: "loc-2", Name: "North", Available: true})
	categoryRepo.AddCategory(&domain.Category{ID: "cat-2", Name: "Express", Available: true})

	pairs := []struct{ loc, cat string }{
		{"loc-1", "cat-1"},
		{"loc-1", "cat-2"},
		{"loc-2", "cat-1"},
	}

	// Interleave issuance across pairs; each pair keeps its own counter.
	for round := 1; round <= 3; round++ {
		for _, p := range pairs {
			ticket, err := svc.Obtain(context.Background(), service.ObtainRequest{
				CustomerID: "cust-1",
				LocationID: p.loc,
				CategoryID: p.cat,
			})
			if err != nil {
				t.Fatalf("pair (%s,%s) round %d: %v", p.loc, p.cat, round, err)
			}
			if ticket.Number != round {
				t.Errorf("pair (%s,%s): expected number %d, got %d", p.loc, p.cat, round, ticket.Number)
			}
		}
	}
}

func TestObtain_RetriesOnLostSequencingRace(t *testing.T) {
	t.Parallel()

	svc, ticketRepo, _, _, _ := newQueueFixture()

	// First two inserts collide as if concurrent issuers won the slot.
	ticketRepo.DuplicateFirstN = 2

	ticket, err := svc.Obtain(context.Background(), service.ObtainRequest{
		CustomerID: "cust-1",
		LocationID: "loc-1",
		CategoryID: "cat-1",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ticket.Number != 1 {
		t.Errorf("expected number 1 after retries, got %d", ticket.Number)
	}
	if ticketRepo.CreateCallCount != 3 {
		t.Errorf("expected 3 insert attempts, got %d", ticketRepo.CreateCallCount)
	}
}

func TestObtain_GivesUpAfterBoundedRetries(t *testing.T) {
	t.Parallel()

	svc, ticketRepo, _, _, _ := newQueueFixture()
	ticketRepo.DuplicateFirstN = 10

	_, err := svc.Obtain(context.Background(), service.ObtainRequest{
		CustomerID: "cust-1",
		LocationID: "loc-1",
		CategoryID: "cat-1",
	})
	if !errors.Is(err, service.ErrSequencerContention) {
		t.Fatalf("expected ErrSequencerContention, got %v", err)
	}
}

func TestObtain_UnavailableLocation_Rejected(t *testing.T) {
	t.Parallel()

	svc, _, locationRepo, _, _ := newQueueFixture()
	locationRepo.AddLocation(&domain.Location{ID: "loc-closed", Name: "Closed", Available: false})

	_, err := svc.Obtain(context.Background(), service.ObtainRequest{
		CustomerID: "cust-1",
		LocationID: "loc-closed",
		CategoryID: "cat-1",
	})
	if !errors.Is(err, service.ErrLocationUnavailable) {
		t.Fatalf("expected ErrLocationUnavailable, got %v", err)
	}
}

func TestObtain_UnknownCustomer_NotFound(t *testing.T) {
	t.Parallel()

	svc, _, _, _, _ := newQueueFixture()

	_, err := svc.Obtain(context.Background(), service.ObtainRequest{
		CustomerID: "cust-missing",
		LocationID: "loc-1",
		CategoryID: "cat-1",
	})
	if !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

// ──────────────────────────────────────────────
// 4. SERVING ORDER
// ──────────────────────────────────────────────

func TestServeNext_ServesLowestUnservedInOrder(t *testing.T) {
	t.Parallel()

	svc, _, _, _, _ := newQueueFixture()

	for i := 0; i < 3; i++ {
		if _, err := svc.Obtain(context.Background(), service.ObtainRequest{
			CustomerID: "cust-1",
			LocationID: "loc-1",
			CategoryID: "cat-1",
		}); err != nil {
			t.Fatalf("obtain: %v", err)
		}
	}

	for want := 1; want <= 3; want++ {
		served, err := svc.ServeNext(context.Background(), service.ServeNextRequest{
			LocationID: "loc-1",
			CategoryID: "cat-1",
		})
		if err != nil {
			t.Fatalf("serve %d: %v", want, err)
		}
		if served.Number != want {
			t.Errorf("expected to serve number %d, got %d", want, served.Number)
		}
		if !served.Served {
			t.Errorf("ticket %d not flagged served", served.Number)
		}
		if served.ServedAt.IsZero() {
			t.Errorf("ticket %d missing serve timestamp", served.Number)
		}
	}
}

func TestServeNext_EmptyQueue_NotFound(t *testing.T) {
	t.Parallel()

	svc, _, _, _, _ := newQueueFixture()

	_, err := svc.ServeNext(context.Background(), service.ServeNextRequest{
		LocationID: "loc-1",
		CategoryID: "cat-1",
	})
	if !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on empty queue, got %v", err)
	}
}
