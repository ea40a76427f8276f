package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mockdrill/mockdrill-backend/internal/model"
)

// CourseRepository handles course and recording data access.
type CourseRepository struct {
	pool *pgxpool.Pool
}

// NewCourseRepository creates a new CourseRepository.
func NewCourseRepository(pool *pgxpool.Pool) *CourseRepository {
	return &CourseRepository{pool: pool}
}

// GetByID retrieves a course with its derived recording count.
func (r *CourseRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Course, error) {
	c := &model.Course{}
	err := r.pool.QueryRow(ctx,
		`SELECT c.id, c.title, c.description, c.type, c.price, c.created_at, c.updated_at,
		        (SELECT COUNT(*) FROM recordings rec WHERE rec.course_id = c.id)
		 FROM courses c WHERE c.id = $1`, id,
	).Scan(&c.ID, &c.Title, &c.Description, &c.Type, &c.Price,
		&c.CreatedAt, &c.UpdatedAt, &c.RecordingCount)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// ListPaginated retrieves courses, newest first.
func (r *CourseRepository) ListPaginated(ctx context.Context, limit, offset int) ([]model.Course, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM courses`).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.pool.Query(ctx,
		`SELECT c.id, c.title, c.description, c.type, c.price, c.created_at, c.updated_at,
		        (SELECT COUNT(*) FROM recordings rec WHERE rec.course_id = c.id)
		 FROM courses c
		 ORDER BY c.created_at DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var courses []model.Course
	for rows.Next() {
		var c model.Course
		if err := rows.Scan(&c.ID, &c.Title, &c.Description, &c.Type, &c.Price,
			&c.CreatedAt, &c.UpdatedAt, &c.RecordingCount); err != nil {
			return nil, 0, err
		}
		courses = append(courses, c)
	}
	return courses, total, rows.Err()
}

// Create inserts a new course.
func (r *CourseRepository) Create(ctx context.Context, c *model.Course) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO courses (title, description, type, price)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at, updated_at`,
		c.Title, c.Description, c.Type, c.Price,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
}

// Update overwrites a course's editable fields.
func (r *CourseRepository) Update(ctx context.Context, c *model.Course) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE courses
		 SET title = $1, description = $2, type = $3, price = $4, updated_at = NOW()
		 WHERE id = $5`,
		c.Title, c.Description, c.Type, c.Price, c.ID)
	return err
}

// Delete removes a course and its recordings.
func (r *CourseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM courses WHERE id = $1`, id)
	return err
}

// ListRecordings retrieves a course's recordings in lecture order.
func (r *CourseRepository) ListRecordings(ctx context.Context, courseID uuid.UUID) ([]model.Recording, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, course_id, title, video_url, duration_minutes, sequence, created_at
		 FROM recordings WHERE course_id = $1
		 ORDER BY sequence`, courseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var recordings []model.Recording
	for rows.Next() {
		var rec model.Recording
		if err := rows.Scan(&rec.ID, &rec.CourseID, &rec.Title, &rec.VideoURL,
			&rec.DurationMinutes, &rec.Sequence, &rec.CreatedAt); err != nil {
			return nil, err
		}
		recordings = append(recordings, rec)
	}
	return recordings, rows.Err()
}

// CreateRecording appends a recording to a course.
func (r *CourseRepository) CreateRecording(ctx context.Context, rec *model.Recording) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO recordings (course_id, title, video_url, duration_minutes, sequence)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at`,
		rec.CourseID, rec.Title, rec.VideoURL, rec.DurationMinutes, rec.Sequence,
	).Scan(&rec.ID, &rec.CreatedAt)
}

// DeleteRecording removes one recording.
func (r *CourseRepository) DeleteRecording(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM recordings WHERE id = $1`, id)
	return err
}
