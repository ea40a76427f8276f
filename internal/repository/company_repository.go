package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mockdrill/mockdrill-backend/internal/model"
)

// CompanyRepository handles company data access.
type CompanyRepository struct {
	pool *pgxpool.Pool
}

// NewCompanyRepository creates a new CompanyRepository.
func NewCompanyRepository(pool *pgxpool.Pool) *CompanyRepository {
	return &CompanyRepository{pool: pool}
}

// GetByID retrieves a company by its UUID.
func (r *CompanyRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Company, error) {
	c := &model.Company{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, name, category, difficulty, default_pattern,
		        cutoff_percentage, passing_criteria, created_at, updated_at
		 FROM companies WHERE id = $1`, id,
	).Scan(&c.ID, &c.Name, &c.Category, &c.Difficulty, &c.DefaultPattern,
		&c.CutoffPercentage, &c.PassingCriteria, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// ListPaginated retrieves companies, optionally filtered by category.
func (r *CompanyRepository) ListPaginated(ctx context.Context, category string, limit, offset int) ([]model.Company, int, error) {
	countQuery := `SELECT COUNT(*) FROM companies`
	var countArgs []interface{}
	if category != "" {
		countQuery += ` WHERE category = $1`
		countArgs = append(countArgs, category)
	}

	var total int
	if err := r.pool.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT id, name, category, difficulty, default_pattern,
	                 cutoff_percentage, passing_criteria, created_at, updated_at
	          FROM companies`
	var args []interface{}
	argIdx := 1

	if category != "" {
		query += ` WHERE category = $1`
		args = append(args, category)
		argIdx++
	}

	query += fmt.Sprintf(` ORDER BY name LIMIT $%d OFFSET $%d`, argIdx, argIdx+1)
	args = append(args, limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var companies []model.Company
	for rows.Next() {
		var c model.Company
		if err := rows.Scan(&c.ID, &c.Name, &c.Category, &c.Difficulty, &c.DefaultPattern,
			&c.CutoffPercentage, &c.PassingCriteria, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, 0, err
		}
		companies = append(companies, c)
	}
	return companies, total, rows.Err()
}

// Create inserts a new company.
func (r *CompanyRepository) Create(ctx context.Context, c *model.Company) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO companies (name, category, difficulty, default_pattern, cutoff_percentage, passing_criteria)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, created_at, updated_at`,
		c.Name, c.Category, c.Difficulty, c.DefaultPattern, c.CutoffPercentage, c.PassingCriteria,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
}

// Update overwrites a company's editable fields.
func (r *CompanyRepository) Update(ctx context.Context, c *model.Company) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE companies
		 SET name = $1, category = $2, difficulty = $3, default_pattern = $4,
		     cutoff_percentage = $5, passing_criteria = $6, updated_at = NOW()
		 WHERE id = $7`,
		c.Name, c.Category, c.Difficulty, c.DefaultPattern,
		c.CutoffPercentage, c.PassingCriteria, c.ID)
	return err
}

// Delete removes a company. Tests and question banks under it go with it
// through the ON DELETE CASCADE constraints.
func (r *CompanyRepository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM companies WHERE id = $1`, id)
	return err
}
