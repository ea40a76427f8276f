package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/mockdrill/mockdrill-backend/internal/exam"
	"github.com/mockdrill/mockdrill-backend/internal/model"
	"github.com/mockdrill/mockdrill-backend/internal/repository"
	"github.com/mockdrill/mockdrill-backend/internal/response"
)

// CompanyService handles company business logic.
type CompanyService struct {
	companyRepo *repository.CompanyRepository
}

// NewCompanyService creates a new CompanyService.
func NewCompanyService(companyRepo *repository.CompanyRepository) *CompanyService {
	return &CompanyService{companyRepo: companyRepo}
}

// GetByID retrieves a company by its UUID.
func (s *CompanyService) GetByID(ctx context.Context, id uuid.UUID) (*model.Company, error) {
	return s.companyRepo.GetByID(ctx, id)
}

// List retrieves companies with pagination and optional category filter.
func (s *CompanyService) List(ctx context.Context, category string, page, perPage int) ([]model.Company, *response.Pagination, error) {
	page, perPage = clampPage(page, perPage)

	companies, total, err := s.companyRepo.ListPaginated(ctx, category, perPage, (page-1)*perPage)
	if err != nil {
		return nil, nil, err
	}
	if companies == nil {
		companies = []model.Company{}
	}
	return companies, paginate(page, perPage, total), nil
}

// Create validates the default pattern (when present) and inserts the company.
func (s *CompanyService) Create(ctx context.Context, company *model.Company) error {
	if len(company.DefaultPattern) > 0 {
		if err := exam.CheckSections(company.DefaultPattern); err != nil {
			return err
		}
	}
	return s.companyRepo.Create(ctx, company)
}

// Update validates and overwrites a company.
func (s *CompanyService) Update(ctx context.Context, company *model.Company) error {
	if len(company.DefaultPattern) > 0 {
		if err := exam.CheckSections(company.DefaultPattern); err != nil {
			return err
		}
	}
	if _, err := s.companyRepo.GetByID(ctx, company.ID); err != nil {
		return err
	}
	return s.companyRepo.Update(ctx, company)
}

// UpdateDefaultPattern replaces only the section template. The template
// must be a complete valid pattern; partial edits happen client side.
func (s *CompanyService) UpdateDefaultPattern(ctx context.Context, id uuid.UUID, pattern []model.Section) (*model.Company, error) {
	if err := exam.CheckSections(pattern); err != nil {
		return nil, err
	}
	company, err := s.companyRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	company.DefaultPattern = pattern
	if err := s.companyRepo.Update(ctx, company); err != nil {
		return nil, err
	}
	return company, nil
}

// Delete removes a company. Tests and banks cascade at the database level.
func (s *CompanyService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.companyRepo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.companyRepo.Delete(ctx, id)
}

func clampPage(page, perPage int) (int, int) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 10
	}
	if perPage > 100 {
		perPage = 100
	}
	return page, perPage
}

func paginate(page, perPage, total int) *response.Pagination {
	return &response.Pagination{
		Page:       page,
		PerPage:    perPage,
		TotalItems: total,
		TotalPages: (total + perPage - 1) / perPage,
	}
}
