package domain

import "time"

// RideStatus represents the current status of a ride.
type RideStatus string

const (
	RideStatusPending   RideStatus = "PENDING"
	RideStatusAccepted  RideStatus = "ACCEPTED"
	RideStatusCompleted RideStatus = "COMPLETED"
	RideStatusCancelled RideStatus = "CANCELLED"
)

// Terminal reports whether the status accepts no further transitions.
func (s RideStatus) Terminal() bool {
	return s == RideStatusCompleted || s == RideStatusCancelled
}

// RidePaymentStatus tracks whether a ride has been paid for.
type RidePaymentStatus string

const (
	RideUnpaid RidePaymentStatus = "UNPAID"
	RidePaid   RidePaymentStatus = "PAID"
)

// Ride represents a booking in the system.
type Ride struct {
	ID            string
	CustomerID    string
	DriverID      string // empty until a driver is assigned
	Pickup        string
	Destination   string
	Status        RideStatus
	Fare          float64
	PaymentStatus RidePaymentStatus
	BookedAt      time.Time
	CancelledAt   time.Time
}
