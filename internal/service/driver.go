package service

import (
	"context"

	"taxiq/internal/domain"
	"taxiq/internal/redis"
	"taxiq/internal/repository"
)

// DriverService handles driver status changes and keeps the availability
// cache in step with them.
type DriverService struct {
	driverRepo repository.DriverRepository
	cacheStore redis.CacheStoreInterface
}

// NewDriverService creates a new DriverService. cacheStore may be nil.
func NewDriverService(driverRepo repository.DriverRepository, cacheStore redis.CacheStoreInterface) *DriverService {
	return &DriverService{
		driverRepo: driverRepo,
		cacheStore: cacheStore,
	}
}

// SetStatus updates a driver's status. Blocked drivers can only be
// unblocked by an admin, which callers enforce at the route level.
func (s *DriverService) SetStatus(ctx context.Context, driverID string, status domain.DriverStatus) (*domain.Driver, error) {
	if driverID == "" {
		return nil, ErrInvalidDriverID
	}
	if !domain.ValidDriverStatus(status) {
		return nil, ErrInvalidDriverStatus
	}

	driver, err := s.driverRepo.GetByID(ctx, driverID)
	if err != nil {
		return nil, err
	}

	if err := s.driverRepo.UpdateStatus(ctx, driverID, status); err != nil {
		return nil, err
	}
	driver.Status = status

	if s.cacheStore != nil {
		if status == domain.DriverStatusAvailable {
			_ = s.cacheStore.AddAvailableDriver(ctx, driverID)
		} else {
			_ = s.cacheStore.RemoveAvailableDriver(ctx, driverID)
		}
		_ = s.cacheStore.InvalidateDriver(ctx, driverID)
	}

	return driver, nil
}

// Get retrieves a driver, read-through the cache when one is wired. Status
// changes invalidate the entry, so staleness is bounded by the cache TTL.
func (s *DriverService) Get(ctx context.Context, driverID string) (*domain.Driver, error) {
	if driverID == "" {
		return nil, ErrInvalidDriverID
	}

	if s.cacheStore != nil {
		if cached, err := s.cacheStore.GetDriver(ctx, driverID); err == nil && cached != nil {
			return cached, nil
		}
	}

	driver, err := s.driverRepo.GetByID(ctx, driverID)
	if err != nil {
		return nil, err
	}

	if s.cacheStore != nil {
		_ = s.cacheStore.SetDriver(ctx, driver)
	}

	return driver, nil
}

// GetAll retrieves all drivers.
func (s *DriverService) GetAll(ctx context.Context) ([]*domain.Driver, error) {
	return s.driverRepo.GetAll(ctx)
}
