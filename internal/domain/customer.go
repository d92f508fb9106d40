package domain

import "time"

// Customer represents a registered rider account.
type Customer struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	Phone        string
	Blocked      bool
	JoinedAt     time.Time
}
