package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mockdrill/mockdrill-backend/internal/model"
)

// EnrollmentRepository handles enrollment data access.
type EnrollmentRepository struct {
	pool *pgxpool.Pool
}

// NewEnrollmentRepository creates a new EnrollmentRepository.
func NewEnrollmentRepository(pool *pgxpool.Pool) *EnrollmentRepository {
	return &EnrollmentRepository{pool: pool}
}

// Create inserts an enrollment. The unique constraint on
// (student_id, item_type, item_id) makes double-grants fail loudly.
func (r *EnrollmentRepository) Create(ctx context.Context, e *model.Enrollment) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO enrollments (student_id, item_type, item_id, order_id)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at`,
		e.StudentID, e.ItemType, e.ItemID, e.OrderID,
	).Scan(&e.ID, &e.CreatedAt)
}

// Exists reports whether a student already holds access to an item.
func (r *EnrollmentRepository) Exists(ctx context.Context, studentID int, itemType model.ItemType, itemID uuid.UUID) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (
			SELECT 1 FROM enrollments
			WHERE student_id = $1 AND item_type = $2 AND item_id = $3
		 )`, studentID, itemType, itemID).Scan(&exists)
	return exists, err
}

// ListByStudent retrieves every enrollment of a student.
func (r *EnrollmentRepository) ListByStudent(ctx context.Context, studentID int) ([]model.Enrollment, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, student_id, item_type, item_id, order_id, created_at
		 FROM enrollments WHERE student_id = $1
		 ORDER BY created_at DESC`, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var enrollments []model.Enrollment
	for rows.Next() {
		var e model.Enrollment
		if err := rows.Scan(&e.ID, &e.StudentID, &e.ItemType, &e.ItemID, &e.OrderID, &e.CreatedAt); err != nil {
			return nil, err
		}
		enrollments = append(enrollments, e)
	}
	return enrollments, rows.Err()
}
