package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mockdrill/mockdrill-backend/internal/model"
)

// TestRepository handles mock-test data access.
type TestRepository struct {
	pool *pgxpool.Pool
}

// NewTestRepository creates a new TestRepository.
func NewTestRepository(pool *pgxpool.Pool) *TestRepository {
	return &TestRepository{pool: pool}
}

// GetByID retrieves a test by its UUID.
func (r *TestRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Test, error) {
	t := &model.Test{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, company_id, title, description, type, price, sections, is_generated, created_at, updated_at
		 FROM tests WHERE id = $1`, id,
	).Scan(&t.ID, &t.CompanyID, &t.Title, &t.Description, &t.Type, &t.Price,
		&t.Sections, &t.IsGenerated, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return t, nil
}

// ListPaginated retrieves tests, optionally scoped to one company.
// Pass uuid.Nil to list across companies.
func (r *TestRepository) ListPaginated(ctx context.Context, companyID uuid.UUID, limit, offset int) ([]model.Test, int, error) {
	countQuery := `SELECT COUNT(*) FROM tests`
	var countArgs []interface{}
	if companyID != uuid.Nil {
		countQuery += ` WHERE company_id = $1`
		countArgs = append(countArgs, companyID)
	}

	var total int
	if err := r.pool.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT id, company_id, title, description, type, price, sections, is_generated, created_at, updated_at
	          FROM tests`
	var args []interface{}
	argIdx := 1

	if companyID != uuid.Nil {
		query += ` WHERE company_id = $1`
		args = append(args, companyID)
		argIdx++
	}

	query += fmt.Sprintf(` ORDER BY created_at DESC LIMIT $%d OFFSET $%d`, argIdx, argIdx+1)
	args = append(args, limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var tests []model.Test
	for rows.Next() {
		var t model.Test
		if err := rows.Scan(&t.ID, &t.CompanyID, &t.Title, &t.Description, &t.Type, &t.Price,
			&t.Sections, &t.IsGenerated, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, 0, err
		}
		tests = append(tests, t)
	}
	return tests, total, rows.Err()
}

// Create inserts a new test.
func (r *TestRepository) Create(ctx context.Context, t *model.Test) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO tests (company_id, title, description, type, price, sections)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, is_generated, created_at, updated_at`,
		t.CompanyID, t.Title, t.Description, t.Type, t.Price, t.Sections,
	).Scan(&t.ID, &t.IsGenerated, &t.CreatedAt, &t.UpdatedAt)
}

// Update overwrites a test's editable fields.
func (r *TestRepository) Update(ctx context.Context, t *model.Test) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE tests
		 SET title = $1, description = $2, type = $3, price = $4, sections = $5, updated_at = NOW()
		 WHERE id = $6`,
		t.Title, t.Description, t.Type, t.Price, t.Sections, t.ID)
	return err
}

// SetGenerated flips the generation flag after questions are materialized.
func (r *TestRepository) SetGenerated(ctx context.Context, id uuid.UUID, generated bool) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE tests SET is_generated = $1, updated_at = NOW() WHERE id = $2`,
		generated, id)
	return err
}

// Delete removes a test and, through cascades, its questions and attempts.
func (r *TestRepository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM tests WHERE id = $1`, id)
	return err
}
