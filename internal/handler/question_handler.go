package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/mockdrill/mockdrill-backend/internal/model"
	"github.com/mockdrill/mockdrill-backend/internal/response"
	"github.com/mockdrill/mockdrill-backend/internal/service"
	"github.com/mockdrill/mockdrill-backend/internal/validator"
)

// QuestionHandler handles per-test question authoring endpoints.
type QuestionHandler struct {
	questionService *service.QuestionService
}

// NewQuestionHandler creates a new QuestionHandler.
func NewQuestionHandler(questionService *service.QuestionService) *QuestionHandler {
	return &QuestionHandler{questionService: questionService}
}

// ListByTest godoc
// GET /api/v1/admin/tests/:id/questions
// Returns questions with answer material included, ordered by section and
// creation time.
func (h *QuestionHandler) ListByTest(c *gin.Context) {
	testID, ok := uuidParam(c, "id")
	if !ok {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	questions, err := h.questionService.ListByTest(c.Request.Context(), testID)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"questions": questions})
}

// Create godoc
// POST /api/v1/admin/tests/:id/questions
func (h *QuestionHandler) Create(c *gin.Context) {
	h.save(c, uuid.Nil)
}

// Update godoc
// PUT /api/v1/admin/tests/:id/questions/:question_id
func (h *QuestionHandler) Update(c *gin.Context) {
	questionID, ok := uuidParam(c, "question_id")
	if !ok {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}
	h.save(c, questionID)
}

func (h *QuestionHandler) save(c *gin.Context, questionID uuid.UUID) {
	testID, ok := uuidParam(c, "id")
	if !ok {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	var req model.SaveQuestionRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	question, err := h.questionService.Save(c.Request.Context(), testID, questionID, &req)
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

	status := http.StatusOK
	if questionID == uuid.Nil {
		status = http.StatusCreated
	}
	response.Success(c, status, gin.H{"question": question})
}

// Delete godoc
// DELETE /api/v1/admin/tests/:id/questions/:question_id
func (h *QuestionHandler) Delete(c *gin.Context) {
	questionID, ok := uuidParam(c, "question_id")
	if !ok {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	if err := h.questionService.Delete(c.Request.Context(), questionID); err != nil {
		if failNotFound(c, err) {
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "question deleted"})
}
