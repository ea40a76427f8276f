package model

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// QuestionType distinguishes single-choice from multiple-choice questions.
type QuestionType string

const (
	QuestionTypeSingle   QuestionType = "single"
	QuestionTypeMultiple QuestionType = "multiple"
)

// Difficulty levels for questions and banks.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "Easy"
	DifficultyMedium Difficulty = "Medium"
	DifficultyHard   Difficulty = "Hard"
)

// ImageAlign is the horizontal alignment of an embedded image.
type ImageAlign string

const (
	ImageAlignLeft   ImageAlign = "left"
	ImageAlignCenter ImageAlign = "center"
	ImageAlignRight  ImageAlign = "right"
)

// Option is one answer choice of a question. An option only counts as
// "valid" if it carries text, HTML, or an image.
type Option struct {
	Text        string     `json:"text"`
	HTML        string     `json:"html,omitempty"`
	IsCorrect   bool       `json:"is_correct"`
	ImageURL    string     `json:"image_url,omitempty"`
	ImageWidth  int        `json:"image_width,omitempty"`
	ImageHeight int        `json:"image_height,omitempty"`
	ImageAlign  ImageAlign `json:"image_align,omitempty"`
}

// AnswerKey is the 1-based positions of the correct options within the
// filtered valid-option list. Length 1 for single-choice questions.
//
// Upstream producers encode this loosely (a bare number, a JSON array, or
// a comma-separated string), so unmarshalling accepts all three and
// normalizes to a slice at the boundary.
type AnswerKey []int

// UnmarshalJSON accepts 2, [1,3], "2" and "1,3".
func (k *AnswerKey) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "" || trimmed == "null" {
		*k = nil
		return nil
	}

	switch trimmed[0] {
	case '[':
		var arr []int
		if err := json.Unmarshal(data, &arr); err != nil {
			return err
		}
		*k = arr
		return nil
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		parsed, err := ParseAnswerList(s)
		if err != nil {
			return err
		}
		*k = parsed
		return nil
	default:
		var n int
		if err := json.Unmarshal(data, &n); err != nil {
			return err
		}
		*k = AnswerKey{n}
		return nil
	}
}

// Equals reports order-independent set equality with another key.
func (k AnswerKey) Equals(other AnswerKey) bool {
	if len(k) != len(other) {
		return false
	}
	seen := make(map[int]int, len(k))
	for _, v := range k {
		seen[v]++
	}
	for _, v := range other {
		seen[v]--
		if seen[v] < 0 {
			return false
		}
	}
	return true
}

// ParseAnswerList parses a comma-separated list of 1-based indices
// ("2" or "1, 3") into an AnswerKey.
func ParseAnswerList(s string) (AnswerKey, error) {
	parts := strings.Split(s, ",")
	key := make(AnswerKey, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		n, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("invalid answer index %q", p)
		}
		key = append(key, n)
	}
	return key, nil
}

// Question belongs to a test section. CorrectAnswer always refers to
// positions in the filtered valid-option list, not the raw authored list.
type Question struct {
	ID              uuid.UUID    `json:"id"`
	TestID          uuid.UUID    `json:"test_id"`
	Section         string       `json:"section"`
	QuestionType    QuestionType `json:"question_type"`
	QuestionText    string       `json:"question_text"`
	QuestionHTML    string       `json:"question_html,omitempty"`
	Options         []Option     `json:"options"`
	CorrectAnswer   AnswerKey    `json:"correct_answer"`
	Marks           float64      `json:"marks"`
	NegativeMarks   float64      `json:"negative_marks"`
	Difficulty      Difficulty   `json:"difficulty"`
	ImageURL        string       `json:"image_url,omitempty"`
	ImageWidth      int          `json:"image_width,omitempty"`
	ImageHeight     int          `json:"image_height,omitempty"`
	ImageAlign      ImageAlign   `json:"image_align,omitempty"`
	Explanation     string       `json:"explanation,omitempty"`
	ExplanationHTML string       `json:"explanation_html,omitempty"`
	CreatedAt       time.Time    `json:"created_at"`
	UpdatedAt       time.Time    `json:"updated_at"`
}

// SaveQuestionRequest is the raw question-editor state submitted by the
// authoring UI. CorrectAnswer is not accepted from the client; it is
// derived from the is_correct flags at save time.
type SaveQuestionRequest struct {
	Section         string   `json:"section" binding:"required,min=1,max=100"`
	QuestionType    string   `json:"question_type" binding:"required,oneof=single multiple"`
	QuestionText    string   `json:"question_text" binding:"omitempty,max=5000"`
	QuestionHTML    string   `json:"question_html" binding:"omitempty,max=20000"`
	Options         []Option `json:"options" binding:"required"`
	Marks           float64  `json:"marks" binding:"required,min=0.25"`
	NegativeMarks   float64  `json:"negative_marks" binding:"min=0"`
	Difficulty      string   `json:"difficulty" binding:"omitempty,oneof=Easy Medium Hard"`
	ImageURL        string   `json:"image_url" binding:"omitempty,max=1000"`
	ImageWidth      int      `json:"image_width" binding:"omitempty"`
	ImageHeight     int      `json:"image_height" binding:"omitempty"`
	ImageAlign      string   `json:"image_align" binding:"omitempty,oneof=left center right"`
	Explanation     string   `json:"explanation" binding:"omitempty,max=5000"`
	ExplanationHTML string   `json:"explanation_html" binding:"omitempty,max=20000"`
}
