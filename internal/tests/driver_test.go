package tests

import (
	"context"
	"errors"
	"testing"

	"taxiq/internal/domain"
	"taxiq/internal/service"
)

// ──────────────────────────────────────────────
// 9. DRIVER STATUS AND CACHING
// ──────────────────────────────────────────────

func TestDriverGet_ReadThroughCache(t *testing.T) {
	t.Parallel()

	driverRepo := NewMockDriverRepository()
	cacheStore := NewMockCacheStore()
	driverRepo.AddDriver(&domain.Driver{ID: "driver-1", Username: "bob", Status: domain.DriverStatusAvailable})

	svc := service.NewDriverService(driverRepo, cacheStore)

	// Miss: served from the repository and written to cache.
	driver, err := svc.Get(context.Background(), "driver-1")
	if err != nil {
		t.Fatalf("first get: %v", err)
	}
	if driver.Username != "bob" {
		t.Errorf("unexpected driver: %+v", driver)
	}
	if driverRepo.GetByIDCallCount != 1 {
		t.Fatalf("expected one repository read, got %d", driverRepo.GetByIDCallCount)
	}
	if cacheStore.SetDriverCallCount != 1 {
		t.Errorf("expected the miss to fill the cache, got %d writes", cacheStore.SetDriverCallCount)
	}

	// Hit: served from cache, repository untouched.
	if _, err := svc.Get(context.Background(), "driver-1"); err != nil {
		t.Fatalf("second get: %v", err)
	}
	if driverRepo.GetByIDCallCount != 1 {
		t.Errorf("expected cached read to skip the repository, got %d reads", driverRepo.GetByIDCallCount)
	}
}

func TestDriverSetStatus_MaintainsAvailableSetAndInvalidates(t *testing.T) {
	t.Parallel()

	driverRepo := NewMockDriverRepository()
	cacheStore := NewMockCacheStore()
	driverRepo.AddDriver(&domain.Driver{ID: "driver-1", Status: domain.DriverStatusOffline})

	svc := service.NewDriverService(driverRepo, cacheStore)

	// Warm the cache, then change status.
	if _, err := svc.Get(context.Background(), "driver-1"); err != nil {
		t.Fatalf("warm: %v", err)
	}

	if _, err := svc.SetStatus(context.Background(), "driver-1", domain.DriverStatusAvailable); err != nil {
		t.Fatalf("set available: %v", err)
	}
	if !cacheStore.HasAvailable("driver-1") {
		t.Error("expected driver in the available set")
	}
	if cacheStore.HasDriver("driver-1") {
		t.Error("expected status change to invalidate the cached entry")
	}

	if _, err := svc.SetStatus(context.Background(), "driver-1", domain.DriverStatusOffline); err != nil {
		t.Fatalf("set offline: %v", err)
	}
	if cacheStore.HasAvailable("driver-1") {
		t.Error("expected driver removed from the available set")
	}
}

func TestDriverSetStatus_UnknownStatus_Rejected(t *testing.T) {
	t.Parallel()

	driverRepo := NewMockDriverRepository()
	driverRepo.AddDriver(&domain.Driver{ID: "driver-1", Status: domain.DriverStatusOffline})

	svc := service.NewDriverService(driverRepo, nil)

	_, err := svc.SetStatus(context.Background(), "driver-1", domain.DriverStatus("NAPPING"))
	if !errors.Is(err, service.ErrInvalidDriverStatus) {
		t.Fatalf("expected ErrInvalidDriverStatus, got %v", err)
	}
}
