package tests

import (
	"context"
	"errors"
	"testing"
	"time"

	"taxiq/internal/domain"
	"taxiq/internal/service"
)

// ──────────────────────────────────────────────
// 1. RIDE BOOKING EDGE CASES
// ──────────────────────────────────────────────

func newBookingFixture() (*service.RideService, *MockCustomerRepository, *MockDriverRepository, *MockRideRepository, *MockLockStore) {
	customerRepo := NewMockCustomerRepository()
	driverRepo := NewMockDriverRepository()
	rideRepo := NewMockRideRepository()
	lockStore := NewMockLockStore()

	svc := service.NewRideService(rideRepo, customerRepo, driverRepo, lockStore, nil, &service.FixedFareEstimator{Fare: 12.50})
	return svc, customerRepo, driverRepo, rideRepo, lockStore
}

func TestBook_ReservesFirstAvailableDriver(t *testing.T) {
	t.Parallel()

	svc, customerRepo, driverRepo, _, lockStore := newBookingFixture()

	customerRepo.AddCustomer(&domain.Customer{ID: "cust-1", Username: "alice", Email: "alice@example.com"})

	// Two available drivers; the one who joined first must be reserved.
	driverRepo.AddDriver(&domain.Driver{
		ID:       "driver-early",
		Username: "early",
		Status:   domain.DriverStatusAvailable,
		JoinedAt: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	})
	driverRepo.AddDriver(&domain.Driver{
		ID:       "driver-late",
		Username: "late",
		Status:   domain.DriverStatusAvailable,
		JoinedAt: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
	})

	ride, err := svc.Book(context.Background(), service.BookRequest{
		CustomerID:  "cust-1",
		Pickup:      "Airport",
		Destination: "Downtown",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if ride.DriverID != "driver-early" {
		t.Errorf("expected longest-waiting driver to be reserved, got %q", ride.DriverID)
	}
	if ride.Status != domain.RideStatusPending {
		t.Errorf("expected booked ride to stay PENDING, got %s", ride.Status)
	}
	if ride.Fare != 12.50 {
		t.Errorf("expected fare 12.50 from the estimator, got %.2f", ride.Fare)
	}
	if got := driverRepo.GetDriver("driver-early").Status; got != domain.DriverStatusOnTrip {
		t.Errorf("expected reserved driver to flip ON_TRIP, got %s", got)
	}
	if lockStore.AcquireCallCount != 1 {
		t.Errorf("expected one lock acquisition, got %d", lockStore.AcquireCallCount)
	}
}

func TestBook_NoDriverAvailable_NoRideWritten(t *testing.T) {
	t.Parallel()

	svc, customerRepo, driverRepo, rideRepo, _ := newBookingFixture()

	customerRepo.AddCustomer(&domain.Customer{ID: "cust-1", Username: "alice"})
	driverRepo.AddDriver(&domain.Driver{ID: "driver-1", Status: domain.DriverStatusOnTrip})
	driverRepo.AddDriver(&domain.Driver{ID: "driver-2", Status: domain.DriverStatusOffline})

	_, err := svc.Book(context.Background(), service.BookRequest{
		CustomerID:  "cust-1",
		Pickup:      "A",
		Destination: "B",
	})
	if !errors.Is(err, service.ErrNoDriverAvailable) {
		t.Fatalf("expected ErrNoDriverAvailable, got %v", err)
	}

	if rideRepo.CreateCallCount != 0 {
		t.Errorf("expected no ride creation on failed booking, got %d calls", rideRepo.CreateCallCount)
	}
}

func TestBook_BlockedCustomer_Rejected(t *testing.T) {
	t.Parallel()

	svc, customerRepo, driverRepo, rideRepo, _ := newBookingFixture()

	customerRepo.AddCustomer(&domain.Customer{ID: "cust-1", Username: "mallory", Blocked: true})
	driverRepo.AddDriver(&domain.Driver{ID: "driver-1", Status: domain.DriverStatusAvailable})

	_, err := svc.Book(context.Background(), service.BookRequest{
		CustomerID:  "cust-1",
		Pickup:      "A",
		Destination: "B",
	})
	if !errors.Is(err, service.ErrAccountBlocked) {
		t.Fatalf("expected ErrAccountBlocked, got %v", err)
	}
	if rideRepo.CreateCallCount != 0 {
		t.Errorf("expected no ride creation for blocked customer, got %d calls", rideRepo.CreateCallCount)
	}
}

func TestBook_MissingRoute_Rejected(t *testing.T) {
	t.Parallel()

	svc, customerRepo, _, _, _ := newBookingFixture()
	customerRepo.AddCustomer(&domain.Customer{ID: "cust-1"})

	testCases := []struct {
		name        string
		pickup      string
		destination string
	}{
		{name: "empty pickup", pickup: "", destination: "B"},
		{name: "empty destination", pickup: "A", destination: ""},
		{name: "both empty", pickup: "", destination: ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Book(context.Background(), service.BookRequest{
				CustomerID:  "cust-1",
				Pickup:      tc.pickup,
				Destination: tc.destination,
			})
			if !errors.Is(err, service.ErrInvalidRoute) {
				t.Errorf("expected ErrInvalidRoute, got %v", err)
			}
		})
	}
}

func TestBook_UsesCachedAvailableDriver(t *testing.T) {
	t.Parallel()

	customerRepo := NewMockCustomerRepository()
	driverRepo := NewMockDriverRepository()
	rideRepo := NewMockRideRepository()
	cacheStore := NewMockCacheStore()

	customerRepo.AddCustomer(&domain.Customer{ID: "cust-1"})

	// Both available, but only driver-late is in the cached set; the cache
	// answers before the SQL ordering gets a say.
	driverRepo.AddDriver(&domain.Driver{
		ID:       "driver-early",
		Status:   domain.DriverStatusAvailable,
		JoinedAt: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	})
	driverRepo.AddDriver(&domain.Driver{
		ID:       "driver-late",
		Status:   domain.DriverStatusAvailable,
		JoinedAt: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
	})
	cacheStore.AddAvailable("driver-late")

	svc := service.NewRideService(rideRepo, customerRepo, driverRepo, NewMockLockStore(), cacheStore, &service.FixedFareEstimator{Fare: 10})

	ride, err := svc.Book(context.Background(), service.BookRequest{
		CustomerID:  "cust-1",
		Pickup:      "A",
		Destination: "B",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if ride.DriverID != "driver-late" {
		t.Errorf("expected the cached driver to be reserved, got %q", ride.DriverID)
	}
	if cacheStore.HasAvailable("driver-late") {
		t.Error("expected reserved driver removed from the available set")
	}
}

func TestBook_PrunesStaleCachedDrivers(t *testing.T) {
	t.Parallel()

	customerRepo := NewMockCustomerRepository()
	driverRepo := NewMockDriverRepository()
	rideRepo := NewMockRideRepository()
	cacheStore := NewMockCacheStore()

	customerRepo.AddCustomer(&domain.Customer{ID: "cust-1"})

	// The cached set lies: one entry was deleted, one is mid-trip. The real
	// available driver is only in the database.
	driverRepo.AddDriver(&domain.Driver{ID: "driver-busy", Status: domain.DriverStatusOnTrip})
	driverRepo.AddDriver(&domain.Driver{ID: "driver-1", Status: domain.DriverStatusAvailable})
	cacheStore.AddAvailable("driver-gone")
	cacheStore.AddAvailable("driver-busy")

	svc := service.NewRideService(rideRepo, customerRepo, driverRepo, NewMockLockStore(), cacheStore, &service.FixedFareEstimator{Fare: 10})

	ride, err := svc.Book(context.Background(), service.BookRequest{
		CustomerID:  "cust-1",
		Pickup:      "A",
		Destination: "B",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if ride.DriverID != "driver-1" {
		t.Errorf("expected database fallback to reserve driver-1, got %q", ride.DriverID)
	}
	if cacheStore.HasAvailable("driver-gone") || cacheStore.HasAvailable("driver-busy") {
		t.Error("expected stale entries pruned from the available set")
	}
}

// ──────────────────────────────────────────────
// 2. RIDE LIFECYCLE TRANSITIONS
// ──────────────────────────────────────────────

func TestAccept_ReservedDriverConfirms(t *testing.T) {
	t.Parallel()

	svc, _, driverRepo, rideRepo, _ := newBookingFixture()

	driverRepo.AddDriver(&domain.Driver{ID: "driver-1", Status: domain.DriverStatusOnTrip})
	rideRepo.AddRide(&domain.Ride{
		ID:         "ride-1",
		CustomerID: "cust-1",
		DriverID:   "driver-1",
		Status:     domain.RideStatusPending,
	})

	ride, err := svc.Accept(context.Background(), service.AcceptRequest{RideID: "ride-1", DriverID: "driver-1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ride.Status != domain.RideStatusAccepted {
		t.Errorf("expected ACCEPTED, got %s", ride.Status)
	}
}

func TestAccept_DifferentDriver_Rejected(t *testing.T) {
	t.Parallel()

	svc, _, driverRepo, rideRepo, _ := newBookingFixture()

	driverRepo.AddDriver(&domain.Driver{ID: "driver-1", Status: domain.DriverStatusOnTrip})
	driverRepo.AddDriver(&domain.Driver{ID: "driver-2", Status: domain.DriverStatusAvailable})
	rideRepo.AddRide(&domain.Ride{
		ID:       "ride-1",
		DriverID: "driver-1",
		Status:   domain.RideStatusPending,
	})

	_, err := svc.Accept(context.Background(), service.AcceptRequest{RideID: "ride-1", DriverID: "driver-2"})
	if !errors.Is(err, service.ErrDriverNotAssigned) {
		t.Fatalf("expected ErrDriverNotAssigned, got %v", err)
	}
}

func TestAccept_TerminalRide_Rejected(t *testing.T) {
	t.Parallel()

	svc, _, driverRepo, rideRepo, _ := newBookingFixture()
	driverRepo.AddDriver(&domain.Driver{ID: "driver-1", Status: domain.DriverStatusAvailable})

	for _, status := range []domain.RideStatus{domain.RideStatusCompleted, domain.RideStatusCancelled} {
		rideRepo.AddRide(&domain.Ride{
			ID:       "ride-" + string(status),
			DriverID: "driver-1",
			Status:   status,
		})

		_, err := svc.Accept(context.Background(), service.AcceptRequest{
			RideID:   "ride-" + string(status),
			DriverID: "driver-1",
		})
		if !errors.Is(err, service.ErrRideTerminal) {
			t.Errorf("status %s: expected ErrRideTerminal, got %v", status, err)
		}
	}
}

func TestCancel_FreesDriver(t *testing.T) {
	t.Parallel()

	svc, _, driverRepo, rideRepo, _ := newBookingFixture()

	driverRepo.AddDriver(&domain.Driver{ID: "driver-1", Status: domain.DriverStatusOnTrip})
	rideRepo.AddRide(&domain.Ride{
		ID:         "ride-1",
		CustomerID: "cust-1",
		DriverID:   "driver-1",
		Status:     domain.RideStatusAccepted,
	})

	ride, err := svc.Cancel(context.Background(), service.CancelRequest{
		RideID:     "ride-1",
		CallerID:   "cust-1",
		CallerRole: domain.RoleCustomer,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if ride.Status != domain.RideStatusCancelled {
		t.Errorf("expected CANCELLED, got %s", ride.Status)
	}
	if ride.CancelledAt.IsZero() {
		t.Error("expected cancellation timestamp to be set")
	}
	if got := driverRepo.GetDriver("driver-1").Status; got != domain.DriverStatusAvailable {
		t.Errorf("expected freed driver to be AVAILABLE, got %s", got)
	}
}

func TestCancel_TerminalRide_Idempotent(t *testing.T) {
	t.Parallel()

	svc, _, driverRepo, rideRepo, _ := newBookingFixture()

	driverRepo.AddDriver(&domain.Driver{ID: "driver-1", Status: domain.DriverStatusAvailable})
	rideRepo.AddRide(&domain.Ride{
		ID:       "ride-1",
		DriverID: "driver-1",
		Status:   domain.RideStatusCancelled,
	})

	_, err := svc.Cancel(context.Background(), service.CancelRequest{
		RideID:     "ride-1",
		CallerID:   "admin-1",
		CallerRole: domain.RoleAdmin,
	})
	if !errors.Is(err, service.ErrRideTerminal) {
		t.Fatalf("expected ErrRideTerminal, got %v", err)
	}
	if rideRepo.UpdateCallCount != 0 {
		t.Errorf("expected no update on a terminal ride, got %d calls", rideRepo.UpdateCallCount)
	}
}

func TestCancel_WrongCustomer_Forbidden(t *testing.T) {
	t.Parallel()

	svc, _, _, rideRepo, _ := newBookingFixture()

	rideRepo.AddRide(&domain.Ride{
		ID:         "ride-1",
		CustomerID: "cust-1",
		Status:     domain.RideStatusPending,
	})

	_, err := svc.Cancel(context.Background(), service.CancelRequest{
		RideID:     "ride-1",
		CallerID:   "cust-2",
		CallerRole: domain.RoleCustomer,
	})
	if !errors.Is(err, service.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestBookThenCancel_DriverReturnsAvailable(t *testing.T) {
	t.Parallel()

	svc, customerRepo, driverRepo, _, _ := newBookingFixture()

	customerRepo.AddCustomer(&domain.Customer{ID: "cust-1"})
	driverRepo.AddDriver(&domain.Driver{ID: "driver-1", Status: domain.DriverStatusAvailable})

	ride, err := svc.Book(context.Background(), service.BookRequest{
		CustomerID:  "cust-1",
		Pickup:      "A",
		Destination: "B",
	})
	if err != nil {
		t.Fatalf("book: %v", err)
	}
	if got := driverRepo.GetDriver("driver-1").Status; got != domain.DriverStatusOnTrip {
		t.Fatalf("expected ON_TRIP after booking, got %s", got)
	}

	if _, err := svc.Cancel(context.Background(), service.CancelRequest{
		RideID:     ride.ID,
		CallerID:   "cust-1",
		CallerRole: domain.RoleCustomer,
	}); err != nil {
		t.Fatalf("cancel: %v", err)
	}

	if got := driverRepo.GetDriver("driver-1").Status; got != domain.DriverStatusAvailable {
		t.Errorf("expected AVAILABLE after cancellation, got %s", got)
	}
}
