package domain

import "time"

// Rating scores a completed ride from 1 to 5.
type Rating struct {
	ID         string
	CustomerID string
	DriverID   string
	RideID     string
	Value      int
	CreatedAt  time.Time
}
