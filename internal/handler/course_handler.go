package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mockdrill/mockdrill-backend/internal/middleware"
	"github.com/mockdrill/mockdrill-backend/internal/model"
	"github.com/mockdrill/mockdrill-backend/internal/response"
	"github.com/mockdrill/mockdrill-backend/internal/service"
	"github.com/mockdrill/mockdrill-backend/internal/validator"
)

// CourseHandler handles course catalog, recording and administration
// endpoints.
type CourseHandler struct {
	courseService *service.CourseService
}

// NewCourseHandler creates a new CourseHandler.
func NewCourseHandler(courseService *service.CourseService) *CourseHandler {
	return &CourseHandler{courseService: courseService}
}

// List godoc
// GET /api/v1/courses?page=&per_page=
func (h *CourseHandler) List(c *gin.Context) {
	page, perPage := pageQuery(c)
	courses, pagination, err := h.courseService.List(c.Request.Context(), page, perPage)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.SuccessWithPagination(c, http.StatusOK, gin.H{"courses": courses}, pagination)
}

// Get godoc
// GET /api/v1/courses/:id
func (h *CourseHandler) Get(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	course, err := h.courseService.GetByID(c.Request.Context(), id)
	if err != nil {
		if failNotFound(c, err) {
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"course": course})
}

// ListRecordings godoc
// GET /api/v1/courses/:id/recordings
// Recordings the caller has no access to come back locked with their
// video URLs stripped. Anonymous callers always see paid content locked.
func (h *CourseHandler) ListRecordings(c *gin.Context) {
	studentID := 0
	if claims := middleware.GetClaims(c); claims != nil {
		studentID = claims.UserID
	}

	id, ok := uuidParam(c, "id")
	if !ok {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	recordings, err := h.courseService.ListRecordings(c.Request.Context(), id, studentID)
	if err != nil {
		if failNotFound(c, err) {
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"recordings": recordings})
}

// Create godoc
// POST /api/v1/admin/courses
func (h *CourseHandler) Create(c *gin.Context) {
	var req model.CreateCourseRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	course := &model.Course{
		Title:       req.Title,
		Description: req.Description,
		Type:        model.TestType(req.Type),
		Price:       req.Price,
	}
	if err := h.courseService.Create(c.Request.Context(), course); err != nil {
		if failExamErr(c, err) {
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"course": course})
}

// Update godoc
// PUT /api/v1/admin/courses/:id
func (h *CourseHandler) Update(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	var req model.UpdateCourseRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	course, err := h.courseService.GetByID(c.Request.Context(), id)
	if err != nil {
		if failNotFound(c, err) {
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	if req.Title != "" {
		course.Title = req.Title
	}
	if req.Description != "" {
		course.Description = req.Description
	}
	if req.Type != "" {
		course.Type = model.TestType(req.Type)
	}
	if req.Price != nil {
		course.Price = *req.Price
	}

	if err := h.courseService.Update(c.Request.Context(), course); err != nil {
		if failExamErr(c, err) {
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"course": course})
}

// Delete godoc
// DELETE /api/v1/admin/courses/:id
func (h *CourseHandler) Delete(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	if err := h.courseService.Delete(c.Request.Context(), id); err != nil {
		if failNotFound(c, err) {
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "course deleted"})
}

// CreateRecording godoc
// POST /api/v1/admin/courses/:id/recordings
func (h *CourseHandler) CreateRecording(c *gin.Context) {
	courseID, ok := uuidParam(c, "id")
	if !ok {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	var req model.CreateRecordingRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	rec := &model.Recording{
		CourseID:        courseID,
		Title:           req.Title,
		VideoURL:        req.VideoURL,
		DurationMinutes: req.DurationMinutes,
		Sequence:        req.Sequence,
	}
	if err := h.courseService.CreateRecording(c.Request.Context(), rec); err != nil {
		if failNotFound(c, err) {
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"recording": rec})
}

// DeleteRecording godoc
// DELETE /api/v1/admin/courses/:id/recordings/:recording_id
func (h *CourseHandler) DeleteRecording(c *gin.Context) {
	recordingID, ok := uuidParam(c, "recording_id")
	if !ok {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	if err := h.courseService.DeleteRecording(c.Request.Context(), recordingID); err != nil {
		if failNotFound(c, err) {
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "recording deleted"})
}
