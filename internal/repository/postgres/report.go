package postgres

import (
	"context"
	"database/sql"

	"taxiq/internal/repository"
)

// ReportRepository is a PostgreSQL implementation of repository.ReportRepository.
type ReportRepository struct {
	q Querier
}

// NewReportRepository creates a new PostgreSQL report repository.
func NewReportRepository(db *sql.DB) *ReportRepository {
	return &ReportRepository{q: db}
}

// MonthlyCounts aggregates ride and payment activity per calendar month.
// Months with rides but no payments (and vice versa) still appear.
func (r *ReportRepository) MonthlyCounts(ctx context.Context) ([]repository.MonthlyCount, error) {
	query := `
		SELECT month, SUM(rides), SUM(payments), SUM(revenue)
		FROM (
			SELECT to_char(date_trunc('month', booked_at), 'YYYY-MM') AS month,
			       COUNT(*) AS rides, 0 AS payments, 0::numeric AS revenue
			FROM rides GROUP BY 1
			UNION ALL
			SELECT to_char(date_trunc('month', created_at), 'YYYY-MM') AS month,
			       0, COUNT(*), COALESCE(SUM(amount), 0)
			FROM payments GROUP BY 1
		) activity
		GROUP BY month
		ORDER BY month DESC
	`

	rows, err := r.q.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var counts []repository.MonthlyCount
	for rows.Next() {
		var mc repository.MonthlyCount
		if err := rows.Scan(&mc.Month, &mc.Rides, &mc.Payments, &mc.Revenue); err != nil {
			return nil, err
		}
		counts = append(counts, mc)
	}
	return counts, rows.Err()
}

var _ repository.ReportRepository = (*ReportRepository)(nil)
