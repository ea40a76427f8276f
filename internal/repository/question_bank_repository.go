package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mockdrill/mockdrill-backend/internal/model"
)

// QuestionBankRepository handles question bank data access.
type QuestionBankRepository struct {
	pool *pgxpool.Pool
}

// NewQuestionBankRepository creates a new QuestionBankRepository.
func NewQuestionBankRepository(pool *pgxpool.Pool) *QuestionBankRepository {
	return &QuestionBankRepository{pool: pool}
}

// GetByID retrieves a bank with its derived question count.
func (r *QuestionBankRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.QuestionBank, error) {
	b := &model.QuestionBank{}
	err := r.pool.QueryRow(ctx,
		`SELECT b.id, b.company_id, b.section, b.title, b.description, b.created_at, b.updated_at,
		        (SELECT COUNT(*) FROM bank_questions q WHERE q.bank_id = b.id)
		 FROM question_banks b WHERE b.id = $1`, id,
	).Scan(&b.ID, &b.CompanyID, &b.Section, &b.Title, &b.Description,
		&b.CreatedAt, &b.UpdatedAt, &b.TotalQuestions)
	if err != nil {
		return nil, err
	}
	return b, nil
}

// ListByCompany retrieves a company's banks, newest first.
func (r *QuestionBankRepository) ListByCompany(ctx context.Context, companyID uuid.UUID) ([]model.QuestionBank, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT b.id, b.company_id, b.section, b.title, b.description, b.created_at, b.updated_at,
		        (SELECT COUNT(*) FROM bank_questions q WHERE q.bank_id = b.id)
		 FROM question_banks b
		 WHERE b.company_id = $1
		 ORDER BY b.created_at DESC`, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var banks []model.QuestionBank
	for rows.Next() {
		var b model.QuestionBank
		if err := rows.Scan(&b.ID, &b.CompanyID, &b.Section, &b.Title, &b.Description,
			&b.CreatedAt, &b.UpdatedAt, &b.TotalQuestions); err != nil {
			return nil, err
		}
		banks = append(banks, b)
	}
	return banks, rows.Err()
}

// Create inserts a new bank.
func (r *QuestionBankRepository) Create(ctx context.Context, b *model.QuestionBank) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO question_banks (company_id, section, title, description)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at, updated_at`,
		b.CompanyID, b.Section, b.Title, b.Description,
	).Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt)
}

// Delete removes a bank and its questions.
func (r *QuestionBankRepository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM question_banks WHERE id = $1`, id)
	return err
}

// InsertQuestions bulk-inserts parsed upload rows into a bank.
func (r *QuestionBankRepository) InsertQuestions(ctx context.Context, bankID uuid.UUID, questions []model.BankQuestion) (int, error) {
	n, err := r.pool.CopyFrom(
		ctx,
		pgx.Identifier{"bank_questions"},
		[]string{"bank_id", "question_type", "question_text", "options", "correct_answer",
			"marks", "negative_marks", "difficulty", "tags", "explanation"},
		pgx.CopyFromSlice(len(questions), func(i int) ([]interface{}, error) {
			q := questions[i]
			return []interface{}{bankID, q.QuestionType, q.QuestionText, q.Options, q.CorrectAnswer,
				q.Marks, q.NegativeMarks, q.Difficulty, q.Tags, q.Explanation}, nil
		}),
	)
	return int(n), err
}

// ListQuestions retrieves every question of a bank.
func (r *QuestionBankRepository) ListQuestions(ctx context.Context, bankID uuid.UUID) ([]model.BankQuestion, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, bank_id, question_type, question_text, options, correct_answer,
		        marks, negative_marks, difficulty, tags, explanation, created_at
		 FROM bank_questions WHERE bank_id = $1
		 ORDER BY created_at`, bankID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectBankQuestions(rows)
}

// SampleForSection draws up to limit random questions from a company's
// banks for one section. Test generation calls this per pattern section.
func (r *QuestionBankRepository) SampleForSection(ctx context.Context, companyID uuid.UUID, section string, limit int) ([]model.BankQuestion, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT q.id, q.bank_id, q.question_type, q.question_text, q.options, q.correct_answer,
		        q.marks, q.negative_marks, q.difficulty, q.tags, q.explanation, q.created_at
		 FROM bank_questions q
		 JOIN question_banks b ON b.id = q.bank_id
		 WHERE b.company_id = $1 AND b.section = $2
		 ORDER BY RANDOM()
		 LIMIT $3`, companyID, section, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectBankQuestions(rows)
}

func collectBankQuestions(rows pgx.Rows) ([]model.BankQuestion, error) {
	var questions []model.BankQuestion
	for rows.Next() {
		var q model.BankQuestion
		if err := rows.Scan(&q.ID, &q.BankID, &q.QuestionType, &q.QuestionText, &q.Options, &q.CorrectAnswer,
			&q.Marks, &q.NegativeMarks, &q.Difficulty, &q.Tags, &q.Explanation, &q.CreatedAt); err != nil {
			return nil, err
		}
		questions = append(questions, q)
	}
	return questions, rows.Err()
}
