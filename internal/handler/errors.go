package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"

	"github.com/mockdrill/mockdrill-backend/internal/exam"
	"github.com/mockdrill/mockdrill-backend/internal/response"
)

// examErrCodes maps content validation errors to API error codes. Company,
// test and question handlers all surface the same pattern and question
// rules, so the mapping lives in one place.
var examErrCodes = map[error]response.ErrCode{
	exam.ErrNoSections:             response.ErrInvalidSection,
	exam.ErrSectionNameRequired:    response.ErrSectionNameRequired,
	exam.ErrDuplicateSectionName:   response.ErrDuplicateSectionName,
	exam.ErrInvalidQuestionCount:   response.ErrInvalidSection,
	exam.ErrInvalidDuration:        response.ErrInvalidSection,
	exam.ErrInvalidMarksPerQ:       response.ErrInvalidSection,
	exam.ErrInvalidNegative:        response.ErrInvalidSection,
	exam.ErrPriceRequired:          response.ErrPriceRequired,
	exam.ErrQuestionTextRequired:   response.ErrQuestionTextRequired,
	exam.ErrInsufficientOptions:    response.ErrInsufficientOptions,
	exam.ErrTooManyOptions:         response.ErrTooManyOptions,
	exam.ErrNoCorrectAnswer:        response.ErrNoCorrectAnswer,
	exam.ErrTooManyCorrectAnswers:  response.ErrTooManyCorrectAnswers,
	exam.ErrInvalidMarks:           response.ErrValidation,
	exam.ErrInvalidNegativeMarks:   response.ErrValidation,
	exam.ErrUnknownSection:         response.ErrUnknownSection,
	exam.ErrInvalidImageDimensions: response.ErrInvalidImageDimensions,
}

// failExamErr sends a 400 for content validation errors and reports whether
// it handled the error.
func failExamErr(c *gin.Context, err error) bool {
	for sentinel, code := range examErrCodes {
		if errors.Is(err, sentinel) {
			response.Fail(c, http.StatusBadRequest, code)
			return true
		}
	}
	return false
}

// failNotFound sends a 404 for missing rows and reports whether it handled
// the error.
func failNotFound(c *gin.Context, err error) bool {
	if errors.Is(err, pgx.ErrNoRows) {
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		return true
	}
	return false
}
