package domain

import "time"

// Location is a service point where queue tickets are issued.
type Location struct {
	ID        string
	Name      string
	Available bool
	Hours     string
}

// Category is an appointment category within a location.
type Category struct {
	ID        string
	Name      string
	Available bool
}

// Ticket is a queue ticket. Numbers are sequential per (location, category),
// starting at 1.
type Ticket struct {
	ID         string
	CustomerID string
	LocationID string
	CategoryID string
	Number     int
	Served     bool
	IssuedAt   time.Time
	ServedAt   time.Time // zero until served
}
