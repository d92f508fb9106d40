package domain

import "time"

// DriverStatus represents the current status of a driver.
type DriverStatus string

const (
	DriverStatusAvailable DriverStatus = "AVAILABLE"
	DriverStatusOnTrip    DriverStatus = "ON_TRIP"
	DriverStatusOffline   DriverStatus = "OFFLINE"
	DriverStatusBlocked   DriverStatus = "BLOCKED"
)

// ValidDriverStatus reports whether s is a known driver status.
func ValidDriverStatus(s DriverStatus) bool {
	switch s {
	case DriverStatusAvailable, DriverStatusOnTrip, DriverStatusOffline, DriverStatusBlocked:
		return true
	}
	return false
}

// Driver represents a driver account. It carries the same account shape as
// Customer plus vehicle and dispatch state.
type Driver struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	Phone        string
	VehicleModel string
	Status       DriverStatus
	Earnings     float64
	Rating       float64
	JoinedAt     time.Time
}
