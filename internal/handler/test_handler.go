package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/mockdrill/mockdrill-backend/internal/model"
	"github.com/mockdrill/mockdrill-backend/internal/response"
	"github.com/mockdrill/mockdrill-backend/internal/service"
	"github.com/mockdrill/mockdrill-backend/internal/validator"
)

// TestHandler handles test catalog and administration endpoints.
type TestHandler struct {
	testService *service.TestService
}

// NewTestHandler creates a new TestHandler.
func NewTestHandler(testService *service.TestService) *TestHandler {
	return &TestHandler{testService: testService}
}

// List godoc
// GET /api/v1/tests?company_id=&page=&per_page=
func (h *TestHandler) List(c *gin.Context) {
	companyID := uuid.Nil
	if raw := c.Query("company_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
			return
		}
		companyID = id
	}

	page, perPage := pageQuery(c)
	tests, pagination, err := h.testService.List(c.Request.Context(), companyID, page, perPage)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.SuccessWithPagination(c, http.StatusOK, gin.H{"tests": tests}, pagination)
}

// Get godoc
// GET /api/v1/tests/:id
func (h *TestHandler) Get(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	test, err := h.testService.GetByID(c.Request.Context(), id)
	if err != nil {
		if failNotFound(c, err) {
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"test": test})
}

// Create godoc
// POST /api/v1/admin/tests
// Omitting sections inherits the company's default pattern.
func (h *TestHandler) Create(c *gin.Context) {
	var req model.CreateTestRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	test := &model.Test{
		CompanyID:   req.CompanyID,
		Title:       req.Title,
		Description: req.Description,
		Type:        model.TestType(req.Type),
		Price:       req.Price,
		Sections:    req.Sections,
	}
	if err := h.testService.Create(c.Request.Context(), test); err != nil {
		if failNotFound(c, err) {
			return
		}
		if failExamErr(c, err) {
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"test": test})
}

// Update godoc
// PUT /api/v1/admin/tests/:id
// Changing the section pattern of a generated test resets its generation.
func (h *TestHandler) Update(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	var req model.UpdateTestRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	test, err := h.testService.GetByID(c.Request.Context(), id)
	if err != nil {
		if failNotFound(c, err) {
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	if req.Title != "" {
		test.Title = req.Title
	}
	if req.Description != "" {
		test.Description = req.Description
	}
	if req.Type != "" {
		test.Type = model.TestType(req.Type)
	}
	if req.Price != nil {
		test.Price = *req.Price
	}
	if req.Sections != nil {
		test.Sections = req.Sections
	}

	if err := h.testService.Update(c.Request.Context(), test); err != nil {
		if failExamErr(c, err) {
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"test": test})
}

// Delete godoc
// DELETE /api/v1/admin/tests/:id
func (h *TestHandler) Delete(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	if err := h.testService.Delete(c.Request.Context(), id); err != nil {
		if failNotFound(c, err) {
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "test deleted"})
}

// Generate godoc
// POST /api/v1/admin/tests/:id/generate
// Fills sections with questions sampled from the company's banks and warms
// the paper cache.
func (h *TestHandler) Generate(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	test, err := h.testService.Generate(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTestAlreadyGenerated):
			response.Fail(c, http.StatusConflict, response.ErrTestAlreadyGenerated)
		case errors.Is(err, service.ErrBankExhausted):
			response.Fail(c, http.StatusUnprocessableEntity, response.ErrBankExhausted)
		case failNotFound(c, err):
		default:
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		}
		return
	}
	response.Success(c, http.StatusOK, gin.H{"test": test})
}
