package service

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"taxiq/internal/domain"
	"taxiq/internal/redis"
	"taxiq/internal/repository"
	"taxiq/internal/repository/postgres"
)

// PaymentService records payments and drives the ride completion that
// follows: ride flips COMPLETED and PAID, driver earnings grow by the fare,
// driver returns to AVAILABLE.
type PaymentService struct {
	db          *sql.DB
	paymentRepo repository.PaymentRepository
	rideRepo    repository.RideRepository
	driverRepo  repository.DriverRepository
	cacheStore  redis.CacheStoreInterface
}

// NewPaymentService creates a new PaymentService. db may be nil, in which
// case the completion writes run sequentially through the injected
// repositories instead of one transaction; tests use that path.
func NewPaymentService(
	db *sql.DB,
	paymentRepo repository.PaymentRepository,
	rideRepo repository.RideRepository,
	driverRepo repository.DriverRepository,
	cacheStore redis.CacheStoreInterface,
) *PaymentService {
	return &PaymentService{
		db:          db,
		paymentRepo: paymentRepo,
		rideRepo:    rideRepo,
		driverRepo:  driverRepo,
		cacheStore:  cacheStore,
	}
}

// PayRequest contains the parameters for paying a ride.
type PayRequest struct {
	RideID   string
	DriverID string
	Amount   float64 // 0 means charge the fare quoted at booking
}

// Pay records a payment for a non-terminal ride and completes it.
func (s *PaymentService) Pay(ctx context.Context, req PayRequest) (*domain.Payment, error) {
	if req.RideID == "" {
		return nil, ErrInvalidRideID
	}
	if req.DriverID == "" {
		return nil, ErrInvalidDriverID
	}
	if req.Amount < 0 {
		return nil, ErrInvalidAmount
	}

	ride, err := s.rideRepo.GetByID(ctx, req.RideID)
	if err != nil {
		return nil, err
	}

	if ride.Status.Terminal() {
		return nil, ErrRideTerminal
	}
	if ride.DriverID != "" && ride.DriverID != req.DriverID {
		return nil, ErrDriverNotAssigned
	}

	existing, err := s.paymentRepo.GetByRideID(ctx, req.RideID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrAlreadyPaid
	}

	amount := req.Amount
	if amount == 0 {
		amount = ride.Fare
	}
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}

	payment := &domain.Payment{
		ID:        uuid.New().String(),
		RideID:    req.RideID,
		DriverID:  req.DriverID,
		Amount:    amount,
		Status:    domain.PaymentStatusSuccess,
		CreatedAt: time.Now(),
	}

	ride.Status = domain.RideStatusCompleted
	ride.PaymentStatus = domain.RidePaid

	if s.db != nil {
		err = s.payInTx(ctx, payment, ride)
	} else {
		err = s.paySequential(ctx, payment, ride)
	}
	if err != nil {
		return nil, err
	}

	if s.cacheStore != nil {
		_ = s.cacheStore.AddAvailableDriver(ctx, req.DriverID)
		_ = s.cacheStore.InvalidateDriver(ctx, req.DriverID)
	}

	return payment, nil
}

// payInTx applies the payment, ride completion and driver updates in one
// transaction so a crash cannot leave a paid ride uncompleted.
func (s *PaymentService) payInTx(ctx context.Context, payment *domain.Payment, ride *domain.Ride) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	txPaymentRepo := postgres.NewPaymentRepositoryWithTx(tx)
	txRideRepo := postgres.NewRideRepositoryWithTx(tx)
	txDriverRepo := postgres.NewDriverRepositoryWithTx(tx)

	if err = txPaymentRepo.Create(ctx, payment); err != nil {
		return err
	}
	if err = txRideRepo.Update(ctx, ride); err != nil {
		return err
	}
	if err = txDriverRepo.AddEarnings(ctx, payment.DriverID, payment.Amount); err != nil {
		return err
	}
	if err = txDriverRepo.UpdateStatus(ctx, payment.DriverID, domain.DriverStatusAvailable); err != nil {
		return err
	}

	return tx.Commit()
}

func (s *PaymentService) paySequential(ctx context.Context, payment *domain.Payment, ride *domain.Ride) error {
	if err := s.paymentRepo.Create(ctx, payment); err != nil {
		return err
	}
	if err := s.rideRepo.Update(ctx, ride); err != nil {
		return err
	}
	if err := s.driverRepo.AddEarnings(ctx, payment.DriverID, payment.Amount); err != nil {
		return err
	}
	return s.driverRepo.UpdateStatus(ctx, payment.DriverID, domain.DriverStatusAvailable)
}

// Get retrieves a payment by ID.
func (s *PaymentService) Get(ctx context.Context, paymentID string) (*domain.Payment, error) {
	if paymentID == "" {
		return nil, ErrMissingFields
	}
	return s.paymentRepo.GetByID(ctx, paymentID)
}
