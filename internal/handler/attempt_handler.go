package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/mockdrill/mockdrill-backend/internal/middleware"
	"github.com/mockdrill/mockdrill-backend/internal/model"
	"github.com/mockdrill/mockdrill-backend/internal/response"
	"github.com/mockdrill/mockdrill-backend/internal/service"
	"github.com/mockdrill/mockdrill-backend/internal/validator"
)

// AttemptHandler handles the student-facing attempt lifecycle endpoints.
// Autosaves also arrive over the WebSocket stream; these REST endpoints
// are the fallback path and go through the same service.
type AttemptHandler struct {
	attemptService *service.AttemptService
}

// NewAttemptHandler creates a new AttemptHandler.
func NewAttemptHandler(attemptService *service.AttemptService) *AttemptHandler {
	return &AttemptHandler{attemptService: attemptService}
}

// Start godoc
// POST /api/v1/student/tests/:id/attempts
// Starting a test that already has an in-progress attempt resumes it.
func (h *AttemptHandler) Start(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	testID, ok := uuidParam(c, "id")
	if !ok {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	attempt, err := h.attemptService.Start(c.Request.Context(), claims.UserID, testID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTestNotGenerated):
			response.Fail(c, http.StatusConflict, response.ErrTestNotGenerated)
		case errors.Is(err, service.ErrPaymentRequired):
			response.Fail(c, http.StatusPaymentRequired, response.ErrPaymentRequired)
		case failNotFound(c, err):
		default:
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		}
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"attempt": attempt})
}

// GetPaper godoc
// GET /api/v1/student/attempts/:id/paper
// Returns the question paper without answer material, plus answers
// autosaved so far so a reconnecting client can restore its state.
func (h *AttemptHandler) GetPaper(c *gin.Context) {
	claims, attemptID, ok := h.ownedAttempt(c)
	if !ok {
		return
	}

	paper, answers, err := h.attemptService.GetPaper(c.Request.Context(), attemptID, claims.UserID)
	if err != nil {
		h.failAttemptErr(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"paper":   paper,
		"answers": answers,
	})
}

// SaveAnswer godoc
// POST /api/v1/student/attempts/:id/answers
func (h *AttemptHandler) SaveAnswer(c *gin.Context) {
	claims, attemptID, ok := h.ownedAttempt(c)
	if !ok {
		return
	}

	var req model.SaveAnswerRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	err := h.attemptService.SaveAnswer(c.Request.Context(), attemptID, claims.UserID, req.QuestionID, req.Selected)
	if err != nil {
		h.failAttemptErr(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"status": "saved"})
}

// Submit godoc
// POST /api/v1/student/attempts/:id/submit
// Grades the attempt immediately from the cached answer keys; the score
// row is persisted asynchronously.
func (h *AttemptHandler) Submit(c *gin.Context) {
	claims, attemptID, ok := h.ownedAttempt(c)
	if !ok {
		return
	}

	result, err := h.attemptService.Submit(c.Request.Context(), attemptID, claims.UserID)
	if err != nil {
		h.failAttemptErr(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"result": result})
}

// GetResult godoc
// GET /api/v1/student/attempts/:id/result
func (h *AttemptHandler) GetResult(c *gin.Context) {
	claims, attemptID, ok := h.ownedAttempt(c)
	if !ok {
		return
	}

	result, err := h.attemptService.GetResult(c.Request.Context(), attemptID, claims.UserID)
	if err != nil {
		if errors.Is(err, service.ErrAttemptNotScored) {
			response.Fail(c, http.StatusConflict, response.ErrAttemptNotScored)
			return
		}
		h.failAttemptErr(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"result": result})
}

// List godoc
// GET /api/v1/student/attempts?page=&per_page=
func (h *AttemptHandler) List(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	page, perPage := pageQuery(c)
	attempts, pagination, err := h.attemptService.ListByStudent(c.Request.Context(), claims.UserID, page, perPage)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.SuccessWithPagination(c, http.StatusOK, gin.H{"attempts": attempts}, pagination)
}

func (h *AttemptHandler) ownedAttempt(c *gin.Context) (*service.Claims, uuid.UUID, bool) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return nil, uuid.Nil, false
	}

	attemptID, ok := uuidParam(c, "id")
	if !ok {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return nil, uuid.Nil, false
	}
	return claims, attemptID, true
}

func (h *AttemptHandler) failAttemptErr(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNotAttemptOwner):
		response.Fail(c, http.StatusForbidden, response.ErrNotAttemptOwner)
	case errors.Is(err, service.ErrAttemptNotActive):
		response.Fail(c, http.StatusConflict, response.ErrAttemptNotActive)
	case errors.Is(err, service.ErrTimeElapsed):
		response.Fail(c, http.StatusConflict, response.ErrAttemptTimeElapsed)
	case failNotFound(c, err):
	default:
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
	}
}
