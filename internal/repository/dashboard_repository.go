package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mockdrill/mockdrill-backend/internal/model"
)

// DashboardRepository handles admin dashboard data access.
type DashboardRepository struct {
	pool *pgxpool.Pool
}

// NewDashboardRepository creates a new DashboardRepository.
func NewDashboardRepository(pool *pgxpool.Pool) *DashboardRepository {
	return &DashboardRepository{pool: pool}
}

// GetSummaryCounts retrieves the high-level metrics for the dashboard.
func (r *DashboardRepository) GetSummaryCounts(ctx context.Context) (totalStudents, totalCompanies, totalTests, totalCourses int, err error) {
	err = r.pool.QueryRow(ctx,
		`SELECT
			(SELECT COUNT(*) FROM students),
			(SELECT COUNT(*) FROM companies),
			(SELECT COUNT(*) FROM tests),
			(SELECT COUNT(*) FROM courses)`,
	).Scan(&totalStudents, &totalCompanies, &totalTests, &totalCourses)
	return
}

// GetRevenueCents sums completed orders, all-time and over the last 30 days.
func (r *DashboardRepository) GetRevenueCents(ctx context.Context) (allTime, last30Days int64, err error) {
	err = r.pool.QueryRow(ctx,
		`SELECT
			COALESCE(SUM(amount_cents), 0),
			COALESCE(SUM(amount_cents) FILTER (WHERE created_at >= NOW() - INTERVAL '30 days'), 0)
		 FROM orders WHERE status = $1`, model.OrderStatusCompleted,
	).Scan(&allTime, &last30Days)
	return
}

// GetAttemptStatusCounts retrieves the distribution of attempts by status.
func (r *DashboardRepository) GetAttemptStatusCounts(ctx context.Context) (map[model.AttemptStatus]int, error) {
	rows, err := r.pool.Query(ctx, `SELECT status, COUNT(*) FROM attempts GROUP BY status`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[model.AttemptStatus]int)
	for rows.Next() {
		var status model.AttemptStatus
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		counts[status] = count
	}
	return counts, rows.Err()
}

// DashboardRecentOrder is the minimal order projection shown on the
// dashboard activity feed.
type DashboardRecentOrder struct {
	ID          uuid.UUID         `json:"id"`
	StudentName string            `json:"student_name"`
	ItemType    model.ItemType    `json:"item_type"`
	AmountCents int64             `json:"amount_cents"`
	Status      model.OrderStatus `json:"status"`
	CreatedAt   time.Time         `json:"created_at"`
}

// GetRecentOrders retrieves the latest orders with student names joined in.
func (r *DashboardRepository) GetRecentOrders(ctx context.Context, limit int) ([]DashboardRecentOrder, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT o.id, s.name, o.item_type, o.amount_cents, o.status, o.created_at
		 FROM orders o
		 JOIN students s ON s.id = o.student_id
		 ORDER BY o.created_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []DashboardRecentOrder
	for rows.Next() {
		var o DashboardRecentOrder
		if err := rows.Scan(&o.ID, &o.StudentName, &o.ItemType, &o.AmountCents, &o.Status, &o.CreatedAt); err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}
