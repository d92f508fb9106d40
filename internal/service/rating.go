package service

import (
	"context"
	"math"
	"time"

	"github.com/google/uuid"

	"taxiq/internal/domain"
	"taxiq/internal/repository"
)

// RatingService records ratings and maintains each driver's stored average.
type RatingService struct {
	ratingRepo repository.RatingRepository
	driverRepo repository.DriverRepository
	rideRepo   repository.RideRepository
}

// NewRatingService creates a new RatingService.
func NewRatingService(
	ratingRepo repository.RatingRepository,
	driverRepo repository.DriverRepository,
	rideRepo repository.RideRepository,
) *RatingService {
	return &RatingService{
		ratingRepo: ratingRepo,
		driverRepo: driverRepo,
		rideRepo:   rideRepo,
	}
}

// SubmitRequest contains the parameters for submitting a rating.
type SubmitRequest struct {
	CustomerID string
	DriverID   string
	RideID     string
	Value      int
}

// Submit records a rating and recomputes the driver's average as the full
// arithmetic mean over every rating for that driver. O(ratings-per-driver)
// per write, fine at this scale.
func (s *RatingService) Submit(ctx context.Context, req SubmitRequest) (*domain.Rating, error) {
	if req.Value < 1 || req.Value > 5 {
		return nil, ErrRatingOutOfRange
	}
	if req.CustomerID == "" {
		return nil, ErrInvalidCustomerID
	}
	if req.DriverID == "" {
		return nil, ErrInvalidDriverID
	}
	if req.RideID == "" {
		return nil, ErrInvalidRideID
	}

	// Existence checks only; relationships stay advisory.
	if _, err := s.driverRepo.GetByID(ctx, req.DriverID); err != nil {
		return nil, err
	}
	if _, err := s.rideRepo.GetByID(ctx, req.RideID); err != nil {
		return nil, err
	}

	rating := &domain.Rating{
		ID:         uuid.New().String(),
		CustomerID: req.CustomerID,
		DriverID:   req.DriverID,
		RideID:     req.RideID,
		Value:      req.Value,
		CreatedAt:  time.Now(),
	}

	if err := s.ratingRepo.Create(ctx, rating); err != nil {
		return nil, err
	}

	all, err := s.ratingRepo.GetByDriverID(ctx, req.DriverID)
	if err != nil {
		return nil, err
	}

	var sum int
	for _, r := range all {
		sum += r.Value
	}
	mean := math.Round(float64(sum)/float64(len(all))*100) / 100

	if err := s.driverRepo.UpdateRating(ctx, req.DriverID, mean); err != nil {
		return nil, err
	}

	return rating, nil
}
