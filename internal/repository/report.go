package repository

import "context"

// MonthlyCount is one month's worth of aggregated activity.
type MonthlyCount struct {
	Month    string // formatted as 2006-01
	Rides    int
	Payments int
	Revenue  float64
}

// ReportRepository aggregates activity for admin reporting.
type ReportRepository interface {
	// MonthlyCounts returns per-month ride and payment totals, most
	// recent month first.
	MonthlyCounts(ctx context.Context) ([]MonthlyCount, error)
}
