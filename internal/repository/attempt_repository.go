package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mockdrill/mockdrill-backend/internal/model"
)

// AttemptRepository handles attempt data access. Answer autosaves and
// score writes run through Redis queues; the workers own that SQL.
type AttemptRepository struct {
	pool *pgxpool.Pool
}

// NewAttemptRepository creates a new AttemptRepository.
func NewAttemptRepository(pool *pgxpool.Pool) *AttemptRepository {
	return &AttemptRepository{pool: pool}
}

const attemptColumns = `id, test_id, student_id, status, started_at, submitted_at,
	total_score, max_score, section_scores`

// GetByID retrieves an attempt by its UUID.
func (r *AttemptRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Attempt, error) {
	a := &model.Attempt{}
	err := r.pool.QueryRow(ctx,
		`SELECT `+attemptColumns+` FROM attempts WHERE id = $1`, id,
	).Scan(&a.ID, &a.TestID, &a.StudentID, &a.Status, &a.StartedAt, &a.SubmittedAt,
		&a.TotalScore, &a.MaxScore, &a.SectionScores)
	if err != nil {
		return nil, err
	}
	return a, nil
}

// GetActive finds a student's in-progress attempt on a test, if any.
func (r *AttemptRepository) GetActive(ctx context.Context, studentID int, testID uuid.UUID) (*model.Attempt, error) {
	a := &model.Attempt{}
	err := r.pool.QueryRow(ctx,
		`SELECT `+attemptColumns+` FROM attempts
		 WHERE student_id = $1 AND test_id = $2 AND status = $3
		 ORDER BY started_at DESC LIMIT 1`,
		studentID, testID, model.AttemptStatusInProgress,
	).Scan(&a.ID, &a.TestID, &a.StudentID, &a.Status, &a.StartedAt, &a.SubmittedAt,
		&a.TotalScore, &a.MaxScore, &a.SectionScores)
	if err != nil {
		return nil, err
	}
	return a, nil
}

// ListByStudentPaginated retrieves a student's attempts, newest first.
func (r *AttemptRepository) ListByStudentPaginated(ctx context.Context, studentID, limit, offset int) ([]model.Attempt, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM attempts WHERE student_id = $1`, studentID).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.pool.Query(ctx,
		`SELECT `+attemptColumns+` FROM attempts
		 WHERE student_id = $1
		 ORDER BY started_at DESC LIMIT $2 OFFSET $3`, studentID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var attempts []model.Attempt
	for rows.Next() {
		var a model.Attempt
		if err := rows.Scan(&a.ID, &a.TestID, &a.StudentID, &a.Status, &a.StartedAt, &a.SubmittedAt,
			&a.TotalScore, &a.MaxScore, &a.SectionScores); err != nil {
			return nil, 0, err
		}
		attempts = append(attempts, a)
	}
	return attempts, total, rows.Err()
}

// Create inserts a new in-progress attempt.
func (r *AttemptRepository) Create(ctx context.Context, a *model.Attempt) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO attempts (test_id, student_id, status)
		 VALUES ($1, $2, $3)
		 RETURNING id, started_at`,
		a.TestID, a.StudentID, a.Status,
	).Scan(&a.ID, &a.StartedAt)
}

// MarkSubmitted records submission time and moves the attempt out of
// the in-progress state. Scores land later via the scoring worker.
func (r *AttemptRepository) MarkSubmitted(ctx context.Context, id uuid.UUID, submittedAt time.Time) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE attempts SET status = $1, submitted_at = $2 WHERE id = $3`,
		model.AttemptStatusSubmitted, submittedAt, id)
	return err
}

// ListAnswers retrieves the persisted answers of an attempt.
func (r *AttemptRepository) ListAnswers(ctx context.Context, attemptID uuid.UUID) ([]model.AttemptAnswer, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT attempt_id, question_id, selected, updated_at
		 FROM attempt_answers WHERE attempt_id = $1`, attemptID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var answers []model.AttemptAnswer
	for rows.Next() {
		var a model.AttemptAnswer
		if err := rows.Scan(&a.AttemptID, &a.QuestionID, &a.Selected, &a.UpdatedAt); err != nil {
			return nil, err
		}
		answers = append(answers, a)
	}
	return answers, rows.Err()
}
