package exam

import (
	"errors"
	"testing"

	"github.com/mockdrill/mockdrill-backend/internal/model"
)

func TestCheckQuestion_RuleOrder(t *testing.T) {
	twoGood := []model.Option{opt("A", true), opt("B", false)}

	tests := []struct {
		name    string
		qType   model.QuestionType
		text    string
		html    string
		opts    []model.Option
		wantErr error
	}{
		{
			name:    "text required fires first even with broken options",
			qType:   model.QuestionTypeSingle,
			text:    "   ",
			html:    "",
			opts:    []model.Option{opt("", false)},
			wantErr: ErrQuestionTextRequired,
		},
		{
			name:    "html alone satisfies the text rule",
			qType:   model.QuestionTypeSingle,
			html:    "<p>What is 2+2?</p>",
			opts:    twoGood,
			wantErr: nil,
		},
		{
			name:    "insufficient options counts only valid ones",
			qType:   model.QuestionTypeSingle,
			text:    "Q",
			opts:    []model.Option{opt("A", true), opt("  ", false)},
			wantErr: ErrInsufficientOptions,
		},
		{
			name:    "no correct answer",
			qType:   model.QuestionTypeSingle,
			text:    "Q",
			opts:    []model.Option{opt("A", false), opt("B", false)},
			wantErr: ErrNoCorrectAnswer,
		},
		{
			name:    "too many correct for single",
			qType:   model.QuestionTypeSingle,
			text:    "Q",
			opts:    []model.Option{opt("A", true), opt("B", true)},
			wantErr: ErrTooManyCorrectAnswers,
		},
		{
			name:    "multiple correct fine for multiple type",
			qType:   model.QuestionTypeMultiple,
			text:    "Q",
			opts:    []model.Option{opt("A", true), opt("B", true), opt("C", false)},
			wantErr: nil,
		},
		{
			name:  "seven valid options rejected",
			qType: model.QuestionTypeMultiple,
			text:  "Q",
			opts: []model.Option{
				opt("A", true), opt("B", false), opt("C", false), opt("D", false),
				opt("E", false), opt("F", false), opt("G", false),
			},
			wantErr: ErrTooManyOptions,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := CheckQuestion(tc.qType, tc.text, tc.html, tc.opts)
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("got error %v, want %v", err, tc.wantErr)
			}
		})
	}
}

func TestCheckQuestion_DerivedKey(t *testing.T) {
	opts := []model.Option{
		opt("", false), opt("Paris", true), opt("", false), opt("Madrid", false),
	}
	valid, key, err := CheckQuestion(model.QuestionTypeSingle, "Capital of France?", "", opts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(valid) != 2 {
		t.Fatalf("got %d valid options, want 2", len(valid))
	}
	if !key.Equals(model.AnswerKey{1}) {
		t.Fatalf("got key %v, want [1]", key)
	}
}

func TestCheckQuestionSave_SectionMembership(t *testing.T) {
	sections := []model.Section{
		{SectionName: "Aptitude", QuestionCount: 10, Duration: 20, MarksPerQ: 1},
	}
	req := &model.SaveQuestionRequest{
		Section:      "Reasoning",
		QuestionType: "single",
		QuestionText: "Q",
		Options:      []model.Option{opt("A", true), opt("B", false)},
		Marks:        1,
	}

	_, _, err := CheckQuestionSave(req, sections)
	if !errors.Is(err, ErrUnknownSection) {
		t.Fatalf("got %v, want ErrUnknownSection", err)
	}

	req.Section = "Aptitude"
	if _, _, err := CheckQuestionSave(req, sections); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestCheckSections(t *testing.T) {
	good := func() []model.Section {
		return []model.Section{
			{SectionName: "Aptitude", QuestionCount: 10, Duration: 20, MarksPerQ: 1, NegativeMarking: 0.25},
			{SectionName: "Verbal", QuestionCount: 5, Duration: 10, MarksPerQ: 0.5},
		}
	}

	tests := []struct {
		name    string
		mutate  func(s []model.Section) []model.Section
		wantErr error
	}{
		{"valid", func(s []model.Section) []model.Section { return s }, nil},
		{"empty list", func(s []model.Section) []model.Section { return nil }, ErrNoSections},
		{"blank name", func(s []model.Section) []model.Section { s[0].SectionName = "  "; return s }, ErrSectionNameRequired},
		{"duplicate name", func(s []model.Section) []model.Section { s[1].SectionName = "Aptitude"; return s }, ErrDuplicateSectionName},
		{"zero questions", func(s []model.Section) []model.Section { s[0].QuestionCount = 0; return s }, ErrInvalidQuestionCount},
		{"zero duration", func(s []model.Section) []model.Section { s[1].Duration = 0; return s }, ErrInvalidDuration},
		{"marks below floor", func(s []model.Section) []model.Section { s[0].MarksPerQ = 0.2; return s }, ErrInvalidMarksPerQ},
		{"marks off the quarter grid", func(s []model.Section) []model.Section { s[0].MarksPerQ = 1.1; return s }, ErrInvalidMarksPerQ},
		{"negative negative-marking", func(s []model.Section) []model.Section { s[0].NegativeMarking = -1; return s }, ErrInvalidNegative},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := CheckSections(tc.mutate(good()))
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("got %v, want %v", err, tc.wantErr)
			}
		})
	}
}

func TestCheckPrice(t *testing.T) {
	if err := CheckPrice(model.TestTypePaid, 0); !errors.Is(err, ErrPriceRequired) {
		t.Fatalf("paid test with price 0 must fail, got %v", err)
	}
	if err := CheckPrice(model.TestTypePaid, 1); err != nil {
		t.Fatalf("paid test with price 1 must pass, got %v", err)
	}
	if err := CheckPrice(model.TestTypeFree, 0); err != nil {
		t.Fatalf("free test with price 0 must pass, got %v", err)
	}
}

func TestTotals(t *testing.T) {
	sections := []model.Section{
		{SectionName: "A", QuestionCount: 10, Duration: 20, MarksPerQ: 1},
		{SectionName: "B", QuestionCount: 4, Duration: 15, MarksPerQ: 0.5},
	}

	got := Totals(sections)
	if got.TotalQuestions != 14 {
		t.Errorf("total questions: got %d, want 14", got.TotalQuestions)
	}
	if got.TotalDuration != 35 {
		t.Errorf("total duration: got %d, want 35", got.TotalDuration)
	}
	if got.TotalMarks != 12 {
		t.Errorf("total marks: got %v, want 12", got.TotalMarks)
	}

	zero := Totals(nil)
	if zero.TotalQuestions != 0 || zero.TotalDuration != 0 || zero.TotalMarks != 0 {
		t.Errorf("empty slice must yield zero totals, got %+v", zero)
	}
}
