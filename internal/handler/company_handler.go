package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mockdrill/mockdrill-backend/internal/model"
	"github.com/mockdrill/mockdrill-backend/internal/response"
	"github.com/mockdrill/mockdrill-backend/internal/service"
	"github.com/mockdrill/mockdrill-backend/internal/validator"
)

// CompanyHandler handles company catalog and administration endpoints.
type CompanyHandler struct {
	companyService *service.CompanyService
}

// NewCompanyHandler creates a new CompanyHandler.
func NewCompanyHandler(companyService *service.CompanyService) *CompanyHandler {
	return &CompanyHandler{companyService: companyService}
}

// List godoc
// GET /api/v1/companies?category=&page=&per_page=
func (h *CompanyHandler) List(c *gin.Context) {
	page, perPage := pageQuery(c)
	companies, pagination, err := h.companyService.List(c.Request.Context(), c.Query("category"), page, perPage)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.SuccessWithPagination(c, http.StatusOK, gin.H{"companies": companies}, pagination)
}

// Get godoc
// GET /api/v1/companies/:id
func (h *CompanyHandler) Get(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	company, err := h.companyService.GetByID(c.Request.Context(), id)
	if err != nil {
		if failNotFound(c, err) {
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"company": company})
}

// Create godoc
// POST /api/v1/admin/companies
func (h *CompanyHandler) Create(c *gin.Context) {
	var req model.CreateCompanyRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	company := &model.Company{
		Name:             req.Name,
		Category:         req.Category,
		Difficulty:       req.Difficulty,
		DefaultPattern:   req.DefaultPattern,
		CutoffPercentage: req.CutoffPercentage,
		PassingCriteria:  req.PassingCriteria,
	}
	if err := h.companyService.Create(c.Request.Context(), company); err != nil {
		if failExamErr(c, err) {
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"company": company})
}

// Update godoc
// PUT /api/v1/admin/companies/:id
func (h *CompanyHandler) Update(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	var req model.UpdateCompanyRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	company, err := h.companyService.GetByID(c.Request.Context(), id)
	if err != nil {
		if failNotFound(c, err) {
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	if req.Name != "" {
		company.Name = req.Name
	}
	if req.Category != "" {
		company.Category = req.Category
	}
	if req.Difficulty != "" {
		company.Difficulty = req.Difficulty
	}
	if req.DefaultPattern != nil {
		company.DefaultPattern = req.DefaultPattern
	}
	if req.CutoffPercentage != nil {
		company.CutoffPercentage = req.CutoffPercentage
	}
	if req.PassingCriteria != "" {
		company.PassingCriteria = req.PassingCriteria
	}

	if err := h.companyService.Update(c.Request.Context(), company); err != nil {
		if failExamErr(c, err) {
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"company": company})
}

// UpdatePattern godoc
// PUT /api/v1/admin/companies/:id/pattern
// Replaces the company's default section pattern. Existing tests keep the
// sections they were created with.
func (h *CompanyHandler) UpdatePattern(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	var req struct {
		DefaultPattern []model.Section `json:"default_pattern" binding:"required,min=1,dive"`
	}
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	company, err := h.companyService.UpdateDefaultPattern(c.Request.Context(), id, req.DefaultPattern)
	if err != nil {
		if failNotFound(c, err) {
			return
		}
		if failExamErr(c, err) {
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"company": company})
}

// Delete godoc
// DELETE /api/v1/admin/companies/:id
func (h *CompanyHandler) Delete(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	if err := h.companyService.Delete(c.Request.Context(), id); err != nil {
		if failNotFound(c, err) {
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "company deleted"})
}
