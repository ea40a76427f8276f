package service

import (
	"context"

	"github.com/mockdrill/mockdrill-backend/internal/model"
	"github.com/mockdrill/mockdrill-backend/internal/repository"
)

// DashboardSummary aggregates everything the admin dashboard shows.
type DashboardSummary struct {
	TotalStudents  int                              `json:"total_students"`
	TotalCompanies int                              `json:"total_companies"`
	TotalTests     int                              `json:"total_tests"`
	TotalCourses   int                              `json:"total_courses"`
	RevenueCents   int64                            `json:"revenue_cents"`
	Revenue30Days  int64                            `json:"revenue_30_days_cents"`
	AttemptCounts  map[model.AttemptStatus]int      `json:"attempt_counts"`
	RecentOrders   []repository.DashboardRecentOrder `json:"recent_orders"`
}

// DashboardService handles admin dashboard aggregation.
type DashboardService struct {
	dashboardRepo *repository.DashboardRepository
}

// NewDashboardService creates a new DashboardService.
func NewDashboardService(dashboardRepo *repository.DashboardRepository) *DashboardService {
	return &DashboardService{dashboardRepo: dashboardRepo}
}

// GetSummary collects the dashboard metrics.
func (s *DashboardService) GetSummary(ctx context.Context) (*DashboardSummary, error) {
	summary := &DashboardSummary{}

	var err error
	summary.TotalStudents, summary.TotalCompanies, summary.TotalTests, summary.TotalCourses, err =
		s.dashboardRepo.GetSummaryCounts(ctx)
	if err != nil {
		return nil, err
	}

	summary.RevenueCents, summary.Revenue30Days, err = s.dashboardRepo.GetRevenueCents(ctx)
	if err != nil {
		return nil, err
	}

	summary.AttemptCounts, err = s.dashboardRepo.GetAttemptStatusCounts(ctx)
	if err != nil {
		return nil, err
	}

	summary.RecentOrders, err = s.dashboardRepo.GetRecentOrders(ctx, 10)
	if err != nil {
		return nil, err
	}
	if summary.RecentOrders == nil {
		summary.RecentOrders = []repository.DashboardRecentOrder{}
	}
	return summary, nil
}
