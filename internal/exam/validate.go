package exam

import (
	"errors"
	"math"
	"strings"

	"github.com/mockdrill/mockdrill-backend/internal/model"
)

// Question validation errors, in the order the rules fire.
var (
	ErrQuestionTextRequired  = errors.New("question text is required")
	ErrInsufficientOptions   = errors.New("at least 2 valid options are required")
	ErrNoCorrectAnswer       = errors.New("no option is marked correct")
	ErrTooManyCorrectAnswers = errors.New("single-choice question has more than one correct option")
	ErrTooManyOptions        = errors.New("at most 6 valid options are allowed")
	ErrInvalidMarks          = errors.New("marks must be at least 0.25")
	ErrInvalidNegativeMarks  = errors.New("negative marks must not be negative")
	ErrUnknownSection        = errors.New("section does not exist on this test")
)

// Section validation errors.
var (
	ErrNoSections           = errors.New("at least one section is required")
	ErrSectionNameRequired  = errors.New("section name is required")
	ErrDuplicateSectionName = errors.New("duplicate section name")
	ErrInvalidQuestionCount = errors.New("question count must be at least 1")
	ErrInvalidDuration      = errors.New("duration must be at least 1 minute")
	ErrInvalidMarksPerQ     = errors.New("marks per question must be at least 0.25 in steps of 0.25")
	ErrInvalidNegative      = errors.New("negative marking must not be negative")
	ErrPriceRequired        = errors.New("paid tests require a price of at least 1")
)

// CheckQuestion applies the authoring validation rules in their fixed
// order and returns the first failure, mirroring how the question editor
// rejects a save. On success it returns the filtered valid options and the
// derived answer key.
//
// Rule order matters and is part of the contract:
//  1. ErrQuestionTextRequired: text and HTML both empty after trim
//  2. ErrInsufficientOptions: fewer than 2 valid options
//  3. ErrNoCorrectAnswer: no valid option marked correct
//  4. ErrTooManyCorrectAnswers: single type with more than one correct
func CheckQuestion(qType model.QuestionType, text, html string, opts []model.Option) ([]model.Option, model.AnswerKey, error) {
	if strings.TrimSpace(text) == "" && strings.TrimSpace(html) == "" {
		return nil, nil, ErrQuestionTextRequired
	}

	valid := FilterOptions(opts)
	if len(valid) < 2 {
		return nil, nil, ErrInsufficientOptions
	}

	key := DeriveAnswerKey(valid)
	if len(key) == 0 {
		return nil, nil, ErrNoCorrectAnswer
	}
	if qType == model.QuestionTypeSingle && len(key) > 1 {
		return nil, nil, ErrTooManyCorrectAnswers
	}

	if len(valid) > 6 {
		return nil, nil, ErrTooManyOptions
	}

	return valid, key, nil
}

// CheckQuestionSave runs the full save-time validation: the editor rules,
// the marking bounds, and membership of the section in the owning test.
func CheckQuestionSave(req *model.SaveQuestionRequest, testSections []model.Section) ([]model.Option, model.AnswerKey, error) {
	valid, key, err := CheckQuestion(
		model.QuestionType(req.QuestionType),
		req.QuestionText, req.QuestionHTML, req.Options,
	)
	if err != nil {
		return nil, nil, err
	}

	if req.Marks < 0.25 {
		return nil, nil, ErrInvalidMarks
	}
	if req.NegativeMarks < 0 {
		return nil, nil, ErrInvalidNegativeMarks
	}

	found := false
	for _, s := range testSections {
		if s.SectionName == req.Section {
			found = true
			break
		}
	}
	if !found {
		return nil, nil, ErrUnknownSection
	}

	return valid, key, nil
}

// CheckSections validates a proposed section list. The same rules apply to
// a company's default pattern and to a test's sections.
func CheckSections(sections []model.Section) error {
	if len(sections) == 0 {
		return ErrNoSections
	}

	seen := make(map[string]struct{}, len(sections))
	for _, s := range sections {
		name := strings.TrimSpace(s.SectionName)
		if name == "" {
			return ErrSectionNameRequired
		}
		if _, dup := seen[name]; dup {
			return ErrDuplicateSectionName
		}
		seen[name] = struct{}{}

		if s.QuestionCount < 1 {
			return ErrInvalidQuestionCount
		}
		if s.Duration < 1 {
			return ErrInvalidDuration
		}
		if s.MarksPerQ < 0.25 || !isQuarterStep(s.MarksPerQ) {
			return ErrInvalidMarksPerQ
		}
		if s.NegativeMarking < 0 {
			return ErrInvalidNegative
		}
	}
	return nil
}

// CheckPrice enforces the free/paid price rule: paid tests need price ≥ 1,
// free tests carry price 0.
func CheckPrice(testType model.TestType, price float64) error {
	if testType == model.TestTypePaid && price < 1 {
		return ErrPriceRequired
	}
	return nil
}

// Totals recomputes the derived aggregates for a section list. An empty or
// nil slice yields all zeros.
func Totals(sections []model.Section) model.SectionTotals {
	var t model.SectionTotals
	for _, s := range sections {
		t.TotalQuestions += s.QuestionCount
		t.TotalDuration += s.Duration
		t.TotalMarks += float64(s.QuestionCount) * s.MarksPerQ
	}
	return t
}

// isQuarterStep reports whether v is a multiple of 0.25 within float noise.
func isQuarterStep(v float64) bool {
	scaled := v * 4
	return math.Abs(scaled-math.Round(scaled)) < 1e-9
}
