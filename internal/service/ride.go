package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"taxiq/internal/domain"
	"taxiq/internal/redis"
	"taxiq/internal/repository"
)

const driverLockTTL = 10 * time.Second

// RideService owns the ride lifecycle: booking, acceptance and cancellation.
// Completion happens through PaymentService.
type RideService struct {
	rideRepo     repository.RideRepository
	customerRepo repository.CustomerRepository
	driverRepo   repository.DriverRepository
	lockStore    redis.LockStoreInterface
	cacheStore   redis.CacheStoreInterface
	fare         FareEstimator
}

// NewRideService creates a new RideService. lockStore and cacheStore may be
// nil, in which case booking skips driver locking and cache maintenance.
func NewRideService(
	rideRepo repository.RideRepository,
	customerRepo repository.CustomerRepository,
	driverRepo repository.DriverRepository,
	lockStore redis.LockStoreInterface,
	cacheStore redis.CacheStoreInterface,
	fare FareEstimator,
) *RideService {
	if fare == nil {
		fare = NewRandomFareEstimator()
	}
	return &RideService{
		rideRepo:     rideRepo,
		customerRepo: customerRepo,
		driverRepo:   driverRepo,
		lockStore:    lockStore,
		cacheStore:   cacheStore,
		fare:         fare,
	}
}

// BookRequest contains the parameters for booking a ride.
type BookRequest struct {
	CustomerID  string
	Pickup      string
	Destination string
}

// Book creates a ride for the customer and reserves an available driver.
// The ride starts PENDING with a driver assigned; the driver confirms via
// Accept. When no driver is AVAILABLE the booking fails with
// ErrNoDriverAvailable and no ride row is written.
func (s *RideService) Book(ctx context.Context, req BookRequest) (*domain.Ride, error) {
	if req.CustomerID == "" {
		return nil, ErrInvalidCustomerID
	}
	if req.Pickup == "" || req.Destination == "" {
		return nil, ErrInvalidRoute
	}

	customer, err := s.customerRepo.GetByID(ctx, req.CustomerID)
	if err != nil {
		return nil, err
	}
	if customer.Blocked {
		return nil, ErrAccountBlocked
	}

	// The cached available set answers most bookings without a table scan;
	// the SQL query is the fallback and the source of truth.
	driver := s.driverFromCache(ctx)
	if driver == nil {
		driver, err = s.driverRepo.FirstAvailable(ctx)
		if err != nil {
			if err == repository.ErrNotFound {
				return nil, ErrNoDriverAvailable
			}
			return nil, err
		}
	}

	// Short lock so two concurrent bookings cannot reserve the same driver.
	if s.lockStore != nil {
		ok, err := s.lockStore.AcquireDriverLock(ctx, driver.ID, driverLockTTL)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, ErrNoDriverAvailable
		}
		defer func() { _ = s.lockStore.ReleaseDriverLock(ctx, driver.ID) }()
	}

	ride := &domain.Ride{
		ID:            uuid.New().String(),
		CustomerID:    req.CustomerID,
		DriverID:      driver.ID,
		Pickup:        req.Pickup,
		Destination:   req.Destination,
		Status:        domain.RideStatusPending,
		Fare:          s.fare.Estimate(req.Pickup, req.Destination),
		PaymentStatus: domain.RideUnpaid,
		BookedAt:      time.Now(),
	}

	if err := s.rideRepo.Create(ctx, ride); err != nil {
		return nil, err
	}

	if err := s.driverRepo.UpdateStatus(ctx, driver.ID, domain.DriverStatusOnTrip); err != nil {
		return nil, err
	}

	if s.cacheStore != nil {
		_ = s.cacheStore.RemoveAvailableDriver(ctx, driver.ID)
		_ = s.cacheStore.InvalidateDriver(ctx, driver.ID)
	}

	return ride, nil
}

// driverFromCache picks an AVAILABLE driver from the cached set, pruning
// entries that no longer hold in the database. Returns nil when the cache
// cannot serve one.
func (s *RideService) driverFromCache(ctx context.Context) *domain.Driver {
	if s.cacheStore == nil {
		return nil
	}

	ids, err := s.cacheStore.GetAvailableDrivers(ctx)
	if err != nil {
		return nil
	}

	for _, id := range ids {
		driver, err := s.driverRepo.GetByID(ctx, id)
		if err != nil || driver.Status != domain.DriverStatusAvailable {
			_ = s.cacheStore.RemoveAvailableDriver(ctx, id)
			continue
		}
		return driver
	}
	return nil
}

// AcceptRequest contains the parameters for a driver accepting a ride.
type AcceptRequest struct {
	RideID   string
	DriverID string
}

// Accept moves a PENDING ride to ACCEPTED. The accepting driver must be the
// one reserved at booking; for a ride that lost its driver (cancel then
// rebook paths), any driver not already on a trip may take it.
func (s *RideService) Accept(ctx context.Context, req AcceptRequest) (*domain.Ride, error) {
	if req.RideID == "" {
		return nil, ErrInvalidRideID
	}
	if req.DriverID == "" {
		return nil, ErrInvalidDriverID
	}

	ride, err := s.rideRepo.GetByID(ctx, req.RideID)
	if err != nil {
		return nil, err
	}

	if ride.Status.Terminal() {
		return nil, ErrRideTerminal
	}
	if ride.Status != domain.RideStatusPending {
		return nil, ErrRideNotPending
	}

	driver, err := s.driverRepo.GetByID(ctx, req.DriverID)
	if err != nil {
		return nil, err
	}

	switch {
	case ride.DriverID == req.DriverID:
		// Reserved driver confirming; already ON_TRIP since booking.
	case ride.DriverID == "":
		if driver.Status == domain.DriverStatusOnTrip {
			return nil, ErrDriverBusy
		}
		if driver.Status == domain.DriverStatusBlocked {
			return nil, ErrAccountBlocked
		}
		ride.DriverID = req.DriverID
		if err := s.driverRepo.UpdateStatus(ctx, req.DriverID, domain.DriverStatusOnTrip); err != nil {
			return nil, err
		}
	default:
		return nil, ErrDriverNotAssigned
	}

	ride.Status = domain.RideStatusAccepted
	if err := s.rideRepo.Update(ctx, ride); err != nil {
		return nil, err
	}

	if s.cacheStore != nil {
		_ = s.cacheStore.RemoveAvailableDriver(ctx, req.DriverID)
		_ = s.cacheStore.InvalidateDriver(ctx, req.DriverID)
	}

	return ride, nil
}

// CancelRequest contains the parameters for cancelling a ride.
type CancelRequest struct {
	RideID string

	// Caller identity from the auth layer; admins may cancel any ride.
	CallerID   string
	CallerRole domain.Role
}

// Cancel moves a non-terminal ride to CANCELLED and frees the assigned
// driver. Terminal rides are never touched.
func (s *RideService) Cancel(ctx context.Context, req CancelRequest) (*domain.Ride, error) {
	if req.RideID == "" {
		return nil, ErrInvalidRideID
	}

	ride, err := s.rideRepo.GetByID(ctx, req.RideID)
	if err != nil {
		return nil, err
	}

	if ride.Status.Terminal() {
		return nil, ErrRideTerminal
	}

	switch req.CallerRole {
	case domain.RoleAdmin:
	case domain.RoleCustomer:
		if ride.CustomerID != req.CallerID {
			return nil, ErrForbidden
		}
	case domain.RoleDriver:
		if ride.DriverID != req.CallerID {
			return nil, ErrForbidden
		}
	default:
		return nil, ErrForbidden
	}

	ride.Status = domain.RideStatusCancelled
	ride.CancelledAt = time.Now()

	if err := s.rideRepo.Update(ctx, ride); err != nil {
		return nil, err
	}

	if ride.DriverID != "" {
		if err := s.driverRepo.UpdateStatus(ctx, ride.DriverID, domain.DriverStatusAvailable); err != nil {
			return nil, err
		}
		if s.cacheStore != nil {
			_ = s.cacheStore.AddAvailableDriver(ctx, ride.DriverID)
			_ = s.cacheStore.InvalidateDriver(ctx, ride.DriverID)
		}
	}

	return ride, nil
}

// Get retrieves a ride by ID.
func (s *RideService) Get(ctx context.Context, rideID string) (*domain.Ride, error) {
	if rideID == "" {
		return nil, ErrInvalidRideID
	}
	return s.rideRepo.GetByID(ctx, rideID)
}

// GetAll retrieves recent rides.
func (s *RideService) GetAll(ctx context.Context) ([]*domain.Ride, error) {
	return s.rideRepo.GetAll(ctx)
}
