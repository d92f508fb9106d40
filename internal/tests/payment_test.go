package tests

import (
	"context"
	"errors"
	"testing"

	"taxiq/internal/domain"
	"taxiq/internal/service"
)

// ──────────────────────────────────────────────
// 6. PAYMENT AND RIDE COMPLETION
// ──────────────────────────────────────────────

func newPaymentFixture() (*service.PaymentService, *MockPaymentRepository, *MockRideRepository, *MockDriverRepository) {
	paymentRepo := NewMockPaymentRepository()
	rideRepo := NewMockRideRepository()
	driverRepo := NewMockDriverRepository()

	driverRepo.AddDriver(&domain.Driver{ID: "driver-1", Status: domain.DriverStatusOnTrip, Earnings: 100})
	rideRepo.AddRide(&domain.Ride{
		ID:         "ride-1",
		CustomerID: "cust-1",
		DriverID:   "driver-1",
		Status:     domain.RideStatusAccepted,
		Fare:       18.75,
	})

	svc := service.NewPaymentService(nil, paymentRepo, rideRepo, driverRepo, nil)
	return svc, paymentRepo, rideRepo, driverRepo
}

func TestPay_CompletesRideAndPaysDriver(t *testing.T) {
	t.Parallel()

	svc, _, rideRepo, driverRepo := newPaymentFixture()

	payment, err := svc.Pay(context.Background(), service.PayRequest{
		RideID:   "ride-1",
		DriverID: "driver-1",
		Amount:   20.00,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if payment.Status != domain.PaymentStatusSuccess {
		t.Errorf("expected SUCCESS payment, got %s", payment.Status)
	}
	if payment.Amount != 20.00 {
		t.Errorf("expected amount 20.00, got %.2f", payment.Amount)
	}

	ride := rideRepo.GetRide("ride-1")
	if ride.Status != domain.RideStatusCompleted {
		t.Errorf("expected ride COMPLETED, got %s", ride.Status)
	}
	if ride.PaymentStatus != domain.RidePaid {
		t.Errorf("expected ride PAID, got %s", ride.PaymentStatus)
	}

	driver := driverRepo.GetDriver("driver-1")
	if driver.Earnings != 120.00 {
		t.Errorf("expected earnings 120.00, got %.2f", driver.Earnings)
	}
	if driver.Status != domain.DriverStatusAvailable {
		t.Errorf("expected driver back AVAILABLE, got %s", driver.Status)
	}
}

func TestPay_ZeroAmountChargesQuotedFare(t *testing.T) {
	t.Parallel()

	svc, _, _, _ := newPaymentFixture()

	payment, err := svc.Pay(context.Background(), service.PayRequest{
		RideID:   "ride-1",
		DriverID: "driver-1",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if payment.Amount != 18.75 {
		t.Errorf("expected quoted fare 18.75, got %.2f", payment.Amount)
	}
}

func TestPay_TerminalRide_Rejected(t *testing.T) {
	t.Parallel()

	svc, paymentRepo, rideRepo, _ := newPaymentFixture()

	rideRepo.AddRide(&domain.Ride{
		ID:       "ride-done",
		DriverID: "driver-1",
		Status:   domain.RideStatusCompleted,
	})

	_, err := svc.Pay(context.Background(), service.PayRequest{
		RideID:   "ride-done",
		DriverID: "driver-1",
		Amount:   10,
	})
	if !errors.Is(err, service.ErrRideTerminal) {
		t.Fatalf("expected ErrRideTerminal, got %v", err)
	}
	if paymentRepo.CreateCallCount != 0 {
		t.Errorf("expected no payment write for terminal ride, got %d", paymentRepo.CreateCallCount)
	}
}

func TestPay_SecondPayment_Rejected(t *testing.T) {
	t.Parallel()

	paymentRepo := NewMockPaymentRepository()
	rideRepo := NewMockRideRepository()
	driverRepo := NewMockDriverRepository()

	driverRepo.AddDriver(&domain.Driver{ID: "driver-1", Status: domain.DriverStatusOnTrip})
	// Ride still ACCEPTED but a payment row already exists, as if a
	// concurrent request won.
	rideRepo.AddRide(&domain.Ride{ID: "ride-1", DriverID: "driver-1", Status: domain.RideStatusAccepted, Fare: 10})
	if err := paymentRepo.Create(context.Background(), &domain.Payment{
		ID:     "pay-1",
		RideID: "ride-1",
		Amount: 10,
		Status: domain.PaymentStatusSuccess,
	}); err != nil {
		t.Fatalf("seed payment: %v", err)
	}

	svc := service.NewPaymentService(nil, paymentRepo, rideRepo, driverRepo, nil)

	_, err := svc.Pay(context.Background(), service.PayRequest{
		RideID:   "ride-1",
		DriverID: "driver-1",
		Amount:   10,
	})
	if !errors.Is(err, service.ErrAlreadyPaid) {
		t.Fatalf("expected ErrAlreadyPaid, got %v", err)
	}
}

func TestPay_WrongDriver_Rejected(t *testing.T) {
	t.Parallel()

	svc, _, _, driverRepo := newPaymentFixture()
	driverRepo.AddDriver(&domain.Driver{ID: "driver-2", Status: domain.DriverStatusAvailable})

	_, err := svc.Pay(context.Background(), service.PayRequest{
		RideID:   "ride-1",
		DriverID: "driver-2",
		Amount:   10,
	})
	if !errors.Is(err, service.ErrDriverNotAssigned) {
		t.Fatalf("expected ErrDriverNotAssigned, got %v", err)
	}
}

func TestPay_NegativeAmount_Rejected(t *testing.T) {
	t.Parallel()

	svc, _, _, _ := newPaymentFixture()

	_, err := svc.Pay(context.Background(), service.PayRequest{
		RideID:   "ride-1",
		DriverID: "driver-1",
		Amount:   -5,
	})
	if !errors.Is(err, service.ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount, got %v", err)
	}
}
