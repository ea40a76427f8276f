package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mockdrill/mockdrill-backend/internal/response"
	"github.com/mockdrill/mockdrill-backend/internal/service"
)

// StudentManagementHandler handles superadmin views over student accounts.
type StudentManagementHandler struct {
	studentService *service.StudentService
}

// NewStudentManagementHandler creates a new StudentManagementHandler.
func NewStudentManagementHandler(studentService *service.StudentService) *StudentManagementHandler {
	return &StudentManagementHandler{studentService: studentService}
}

// List godoc
// GET /api/v1/admin/students?search=&page=&per_page=
// Search matches name or email, case-insensitively.
func (h *StudentManagementHandler) List(c *gin.Context) {
	page, perPage := pageQuery(c)
	students, pagination, err := h.studentService.List(c.Request.Context(), c.Query("search"), page, perPage)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.SuccessWithPagination(c, http.StatusOK, gin.H{"students": students}, pagination)
}

// Get godoc
// GET /api/v1/admin/students/:id
func (h *StudentManagementHandler) Get(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	student, err := h.studentService.GetByID(c.Request.Context(), id)
	if err != nil {
		if failNotFound(c, err) {
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"student": student})
}
