package domain

import "time"

// PaymentStatus represents the current status of a payment.
type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "PENDING"
	PaymentStatusSuccess PaymentStatus = "SUCCESS"
	PaymentStatusFailed  PaymentStatus = "FAILED"
)

// Payment represents a payment recorded against a ride.
type Payment struct {
	ID        string
	RideID    string
	DriverID  string
	Amount    float64
	Status    PaymentStatus
	CreatedAt time.Time
}
