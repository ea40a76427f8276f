package model

import (
	"time"

	"github.com/google/uuid"
)

// QuestionBank is a reusable pool of questions tagged to a company and a
// section name, separate from any specific test. Banks are created by file
// upload and can be appended to by later uploads.
type QuestionBank struct {
	ID          uuid.UUID `json:"id"`
	CompanyID   uuid.UUID `json:"company_id"`
	Section     string    `json:"section"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// TotalQuestions is derived by COUNT over bank rows, never stored.
	TotalQuestions int `json:"total_questions"`
}

// BankQuestion is a question inside a bank. It has the same authoring shape
// as Question but no test linkage; test generation copies bank questions
// into a test's sections.
type BankQuestion struct {
	ID            uuid.UUID    `json:"id"`
	BankID        uuid.UUID    `json:"bank_id"`
	QuestionType  QuestionType `json:"question_type"`
	QuestionText  string       `json:"question_text"`
	Options       []Option     `json:"options"`
	CorrectAnswer AnswerKey    `json:"correct_answer"`
	Marks         float64      `json:"marks"`
	NegativeMarks float64      `json:"negative_marks"`
	Difficulty    Difficulty   `json:"difficulty"`
	Tags          []string     `json:"tags,omitempty"`
	Explanation   string       `json:"explanation,omitempty"`
	CreatedAt     time.Time    `json:"created_at"`
}

// CreateBankRequest is the metadata part of a bank upload.
type CreateBankRequest struct {
	CompanyID   uuid.UUID `json:"company_id" binding:"required"`
	Section     string    `json:"section" binding:"required,min=1,max=100"`
	Title       string    `json:"title" binding:"required,min=3,max=100"`
	Description string    `json:"description" binding:"omitempty,max=2000"`
}
