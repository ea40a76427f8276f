package handler

import (
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/mockdrill/mockdrill-backend/internal/ingest"
	"github.com/mockdrill/mockdrill-backend/internal/model"
	"github.com/mockdrill/mockdrill-backend/internal/response"
	"github.com/mockdrill/mockdrill-backend/internal/service"
)

// BankHandler handles question bank administration endpoints. Bank
// creation and appends are multipart uploads carrying a .json or .csv
// question file.
type BankHandler struct {
	bankService    *service.BankService
	maxUploadBytes int64
}

// NewBankHandler creates a new BankHandler.
func NewBankHandler(bankService *service.BankService, maxUploadBytes int64) *BankHandler {
	return &BankHandler{bankService: bankService, maxUploadBytes: maxUploadBytes}
}

// ListByCompany godoc
// GET /api/v1/admin/companies/:id/banks
func (h *BankHandler) ListByCompany(c *gin.Context) {
	companyID, ok := uuidParam(c, "id")
	if !ok {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	banks, err := h.bankService.ListByCompany(c.Request.Context(), companyID)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"banks": banks})
}

// Get godoc
// GET /api/v1/admin/banks/:id
func (h *BankHandler) Get(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	bank, err := h.bankService.GetByID(c.Request.Context(), id)
	if err != nil {
		if failNotFound(c, err) {
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"bank": bank})
}

// ListQuestions godoc
// GET /api/v1/admin/banks/:id/questions
func (h *BankHandler) ListQuestions(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	questions, err := h.bankService.ListQuestions(c.Request.Context(), id)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"questions": questions})
}

// Create godoc
// POST /api/v1/admin/banks (multipart)
// Form fields: company_id, section, title, description, file.
// Malformed rows are skipped and reported, not fatal; an upload with zero
// valid rows creates nothing.
func (h *BankHandler) Create(c *gin.Context) {
	companyID, err := uuid.Parse(c.PostForm("company_id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	req := &model.CreateBankRequest{
		CompanyID:   companyID,
		Section:     c.PostForm("section"),
		Title:       c.PostForm("title"),
		Description: c.PostForm("description"),
	}
	if req.Section == "" || req.Title == "" {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, map[string]string{
			"section": "section and title are required",
		})
		return
	}

	file, header, ok := h.openUpload(c)
	if !ok {
		return
	}
	defer file.Close()

	report, err := h.bankService.CreateFromUpload(c.Request.Context(), req, header.Filename, file)
	if err != nil {
		h.failUpload(c, report, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"report": report})
}

// Append godoc
// POST /api/v1/admin/banks/:id/upload (multipart)
func (h *BankHandler) Append(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	file, header, ok := h.openUpload(c)
	if !ok {
		return
	}
	defer file.Close()

	report, err := h.bankService.AppendUpload(c.Request.Context(), id, header.Filename, file)
	if err != nil {
		h.failUpload(c, report, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"report": report})
}

// Delete godoc
// DELETE /api/v1/admin/banks/:id
func (h *BankHandler) Delete(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	if err := h.bankService.Delete(c.Request.Context(), id); err != nil {
		if failNotFound(c, err) {
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "bank deleted"})
}

func (h *BankHandler) openUpload(c *gin.Context) (multipart.File, *multipart.FileHeader, bool) {
	header, err := c.FormFile("file")
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrFileRequired)
		return nil, nil, false
	}
	if header.Size > h.maxUploadBytes {
		response.Fail(c, http.StatusRequestEntityTooLarge, response.ErrFileTooLarge)
		return nil, nil, false
	}

	file, err := header.Open()
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return nil, nil, false
	}
	return file, header, true
}

func (h *BankHandler) failUpload(c *gin.Context, report *service.UploadReport, err error) {
	switch {
	case errors.Is(err, ingest.ErrInvalidFileType):
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidFileType)
	case errors.Is(err, service.ErrEmptyUpload):
		// Surface the row errors so the admin can fix the file.
		fields := make(map[string]string, len(report.Errors))
		for _, rowErr := range report.Errors {
			fields[fmt.Sprintf("row_%d", rowErr.Row)] = rowErr.Reason
		}
		response.FailWithFields(c, http.StatusUnprocessableEntity, response.ErrEmptyUpload, fields)
	default:
		if failNotFound(c, err) {
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
	}
}
