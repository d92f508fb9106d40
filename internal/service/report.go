package service

import (
	"context"
	"encoding/json"

	"taxiq/internal/redis"
	"taxiq/internal/repository"
)

// ReportService serves admin activity reports with a short Redis cache in
// front of the aggregate query.
type ReportService struct {
	reportRepo repository.ReportRepository
	cacheStore redis.CacheStoreInterface
}

// NewReportService creates a new ReportService. cacheStore may be nil.
func NewReportService(reportRepo repository.ReportRepository, cacheStore redis.CacheStoreInterface) *ReportService {
	return &ReportService{
		reportRepo: reportRepo,
		cacheStore: cacheStore,
	}
}

// MonthlyCounts returns per-month ride and payment totals.
func (s *ReportService) MonthlyCounts(ctx context.Context) ([]repository.MonthlyCount, error) {
	if s.cacheStore != nil {
		if data, err := s.cacheStore.GetReport(ctx); err == nil && data != nil {
			var cached []repository.MonthlyCount
			if json.Unmarshal(data, &cached) == nil {
				return cached, nil
			}
		}
	}

	counts, err := s.reportRepo.MonthlyCounts(ctx)
	if err != nil {
		return nil, err
	}

	if s.cacheStore != nil {
		if data, err := json.Marshal(counts); err == nil {
			_ = s.cacheStore.SetReport(ctx, data)
		}
	}

	return counts, nil
}
