package model

import (
	"time"

	"github.com/google/uuid"
)

// AttemptStatus is the lifecycle state of a student's run through a test.
type AttemptStatus string

const (
	AttemptStatusInProgress AttemptStatus = "in_progress"
	AttemptStatusSubmitted  AttemptStatus = "submitted"
	AttemptStatusScored     AttemptStatus = "scored"
)

// Attempt is one timed run of a student through a generated test.
type Attempt struct {
	ID            uuid.UUID     `json:"id"`
	TestID        uuid.UUID     `json:"test_id"`
	StudentID     int           `json:"student_id"`
	Status        AttemptStatus `json:"status"`
	StartedAt     time.Time     `json:"started_at"`
	SubmittedAt   *time.Time    `json:"submitted_at,omitempty"`
	TotalScore    *float64      `json:"total_score,omitempty"`
	MaxScore      *float64      `json:"max_score,omitempty"`
	SectionScores []SectionScore `json:"section_scores,omitempty"`
}

// SectionScore is the per-section breakdown of a scored attempt.
type SectionScore struct {
	Section    string  `json:"section"`
	Attempted  int     `json:"attempted"`
	Correct    int     `json:"correct"`
	Wrong      int     `json:"wrong"`
	Unanswered int     `json:"unanswered"`
	Score      float64 `json:"score"`
	MaxScore   float64 `json:"max_score"`
}

// AttemptAnswer is one autosaved answer, persisted from Redis by the
// autosave worker.
type AttemptAnswer struct {
	AttemptID  uuid.UUID `json:"attempt_id"`
	QuestionID uuid.UUID `json:"question_id"`
	Selected   AnswerKey `json:"selected"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// SaveAnswerRequest is the payload for autosaving one answer.
type SaveAnswerRequest struct {
	QuestionID uuid.UUID `json:"question_id" binding:"required"`
	Selected   []int     `json:"selected" binding:"required,min=1,dive,min=1"`
}

// AttemptResult is the student-facing view of a scored attempt.
type AttemptResult struct {
	Attempt
	TestTitle string   `json:"test_title"`
	Passed    *bool    `json:"passed,omitempty"`
	Cutoff    *float64 `json:"cutoff_percentage,omitempty"`
}

// PaperQuestion is a question as delivered to a student during an attempt:
// options keep only their display fields and no correct-answer material is
// present anywhere in the payload.
type PaperQuestion struct {
	ID            uuid.UUID     `json:"id"`
	Section       string        `json:"section"`
	QuestionType  QuestionType  `json:"question_type"`
	QuestionText  string        `json:"question_text"`
	QuestionHTML  string        `json:"question_html,omitempty"`
	Options       []PaperOption `json:"options"`
	Marks         float64       `json:"marks"`
	NegativeMarks float64       `json:"negative_marks"`
	ImageURL      string        `json:"image_url,omitempty"`
	ImageWidth    int           `json:"image_width,omitempty"`
	ImageHeight   int           `json:"image_height,omitempty"`
	ImageAlign    ImageAlign    `json:"image_align,omitempty"`
}

// PaperOption is an option stripped of its is_correct flag.
type PaperOption struct {
	Text        string     `json:"text"`
	HTML        string     `json:"html,omitempty"`
	ImageURL    string     `json:"image_url,omitempty"`
	ImageWidth  int        `json:"image_width,omitempty"`
	ImageHeight int        `json:"image_height,omitempty"`
	ImageAlign  ImageAlign `json:"image_align,omitempty"`
}

// TestPaper is the full student-facing payload for an attempt, cached in
// Redis at generation time.
type TestPaper struct {
	TestID        uuid.UUID       `json:"test_id"`
	Title         string          `json:"title"`
	Sections      []Section       `json:"sections"`
	TotalDuration int             `json:"total_duration"`
	Questions     []PaperQuestion `json:"questions"`
}
