package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mockdrill/mockdrill-backend/internal/model"
)

// QuestionRepository handles test question data access.
type QuestionRepository struct {
	pool *pgxpool.Pool
}

// NewQuestionRepository creates a new QuestionRepository.
func NewQuestionRepository(pool *pgxpool.Pool) *QuestionRepository {
	return &QuestionRepository{pool: pool}
}

const questionColumns = `id, test_id, section, question_type, question_text, question_html,
	options, correct_answer, marks, negative_marks, difficulty,
	image_url, image_width, image_height, image_align,
	explanation, explanation_html, created_at, updated_at`

func scanQuestion(row interface{ Scan(...any) error }, q *model.Question) error {
	return row.Scan(&q.ID, &q.TestID, &q.Section, &q.QuestionType, &q.QuestionText, &q.QuestionHTML,
		&q.Options, &q.CorrectAnswer, &q.Marks, &q.NegativeMarks, &q.Difficulty,
		&q.ImageURL, &q.ImageWidth, &q.ImageHeight, &q.ImageAlign,
		&q.Explanation, &q.ExplanationHTML, &q.CreatedAt, &q.UpdatedAt)
}

// GetByID retrieves a question by its UUID.
func (r *QuestionRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Question, error) {
	q := &model.Question{}
	row := r.pool.QueryRow(ctx,
		`SELECT `+questionColumns+` FROM questions WHERE id = $1`, id)
	if err := scanQuestion(row, q); err != nil {
		return nil, err
	}
	return q, nil
}

// ListByTest retrieves all questions of a test in authoring order,
// grouped by section.
func (r *QuestionRepository) ListByTest(ctx context.Context, testID uuid.UUID) ([]model.Question, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+questionColumns+` FROM questions
		 WHERE test_id = $1
		 ORDER BY section, created_at`, testID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var questions []model.Question
	for rows.Next() {
		var q model.Question
		if err := scanQuestion(rows, &q); err != nil {
			return nil, err
		}
		questions = append(questions, q)
	}
	return questions, rows.Err()
}

// CountBySection returns per-section question counts for a test.
func (r *QuestionRepository) CountBySection(ctx context.Context, testID uuid.UUID) (map[string]int, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT section, COUNT(*) FROM questions WHERE test_id = $1 GROUP BY section`, testID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var section string
		var n int
		if err := rows.Scan(&section, &n); err != nil {
			return nil, err
		}
		counts[section] = n
	}
	return counts, rows.Err()
}

// Create inserts a new question.
func (r *QuestionRepository) Create(ctx context.Context, q *model.Question) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO questions (test_id, section, question_type, question_text, question_html,
		                        options, correct_answer, marks, negative_marks, difficulty,
		                        image_url, image_width, image_height, image_align,
		                        explanation, explanation_html)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		 RETURNING id, created_at, updated_at`,
		q.TestID, q.Section, q.QuestionType, q.QuestionText, q.QuestionHTML,
		q.Options, q.CorrectAnswer, q.Marks, q.NegativeMarks, q.Difficulty,
		q.ImageURL, q.ImageWidth, q.ImageHeight, q.ImageAlign,
		q.Explanation, q.ExplanationHTML,
	).Scan(&q.ID, &q.CreatedAt, &q.UpdatedAt)
}

// Update overwrites a question.
func (r *QuestionRepository) Update(ctx context.Context, q *model.Question) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE questions
		 SET section = $1, question_type = $2, question_text = $3, question_html = $4,
		     options = $5, correct_answer = $6, marks = $7, negative_marks = $8, difficulty = $9,
		     image_url = $10, image_width = $11, image_height = $12, image_align = $13,
		     explanation = $14, explanation_html = $15, updated_at = NOW()
		 WHERE id = $16`,
		q.Section, q.QuestionType, q.QuestionText, q.QuestionHTML,
		q.Options, q.CorrectAnswer, q.Marks, q.NegativeMarks, q.Difficulty,
		q.ImageURL, q.ImageWidth, q.ImageHeight, q.ImageAlign,
		q.Explanation, q.ExplanationHTML, q.ID)
	return err
}

// Delete removes a question.
func (r *QuestionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM questions WHERE id = $1`, id)
	return err
}

// DeleteByTest removes every question of a test. Used when regenerating.
func (r *QuestionRepository) DeleteByTest(ctx context.Context, testID uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM questions WHERE test_id = $1`, testID)
	return err
}
