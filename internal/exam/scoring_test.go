package exam

import (
	"testing"

	"github.com/mockdrill/mockdrill-backend/internal/model"
)

func boolPtr(b bool) *bool { return &b }

func TestScoreQuestion(t *testing.T) {
	tests := []struct {
		name     string
		key      model.AnswerKey
		selected model.AnswerKey
		marks    float64
		negative float64
		outcome  QuestionOutcome
		earned   float64
	}{
		{"single correct", model.AnswerKey{2}, model.AnswerKey{2}, 2, 0.5, OutcomeCorrect, 2},
		{"single wrong", model.AnswerKey{2}, model.AnswerKey{1}, 2, 0.5, OutcomeWrong, -0.5},
		{"unanswered", model.AnswerKey{2}, nil, 2, 0.5, OutcomeUnanswered, 0},
		{"multiple exact order-independent", model.AnswerKey{1, 3}, model.AnswerKey{3, 1}, 4, 1, OutcomeCorrect, 4},
		{"multiple missing one", model.AnswerKey{1, 3}, model.AnswerKey{1}, 4, 1, OutcomeWrong, -1},
		{"multiple extra one", model.AnswerKey{1, 3}, model.AnswerKey{1, 3, 4}, 4, 1, OutcomeWrong, -1},
		{"no negative marking", model.AnswerKey{1}, model.AnswerKey{2}, 1, 0, OutcomeWrong, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := ScoreQuestion(tc.key, tc.selected, tc.marks, tc.negative)
			if got.Outcome != tc.outcome {
				t.Errorf("outcome: got %s, want %s", got.Outcome, tc.outcome)
			}
			if got.Earned != tc.earned {
				t.Errorf("earned: got %v, want %v", got.Earned, tc.earned)
			}
		})
	}
}

func TestScoreAttempt(t *testing.T) {
	questions := []GradedQuestion{
		{Section: "Aptitude", Key: model.AnswerKey{1}, Marks: 1, NegativeMarks: 0.25},
		{Section: "Aptitude", Key: model.AnswerKey{2}, Marks: 1, NegativeMarks: 0.25},
		{Section: "Verbal", Key: model.AnswerKey{1, 3}, Marks: 2, NegativeMarks: 0.5},
		{Section: "Verbal", Key: model.AnswerKey{4}, Marks: 2, NegativeMarks: 0.5},
	}
	answers := map[int]model.AnswerKey{
		0: {1},    // correct
		1: {3},    // wrong
		2: {3, 1}, // correct (order-independent)
		// 3 unanswered
	}

	got := ScoreAttempt(questions, answers)

	if got.Max != 6 {
		t.Errorf("max: got %v, want 6", got.Max)
	}
	if want := 1 - 0.25 + 2.0; got.Total != want {
		t.Errorf("total: got %v, want %v", got.Total, want)
	}
	if len(got.Sections) != 2 {
		t.Fatalf("got %d sections, want 2", len(got.Sections))
	}

	apt := got.Sections[0]
	if apt.Section != "Aptitude" || apt.Correct != 1 || apt.Wrong != 1 || apt.Unanswered != 0 {
		t.Errorf("aptitude breakdown wrong: %+v", apt)
	}
	if apt.Score != 0.75 || apt.MaxScore != 2 {
		t.Errorf("aptitude score: got %v/%v, want 0.75/2", apt.Score, apt.MaxScore)
	}

	verbal := got.Sections[1]
	if verbal.Correct != 1 || verbal.Wrong != 0 || verbal.Unanswered != 1 {
		t.Errorf("verbal breakdown wrong: %+v", verbal)
	}
}

func TestScoreAttempt_Empty(t *testing.T) {
	got := ScoreAttempt(nil, nil)
	if got.Total != 0 || got.Max != 0 || len(got.Sections) != 0 {
		t.Fatalf("empty attempt must score zero: %+v", got)
	}
}

func TestPassed(t *testing.T) {
	cutoff := 60.0
	tests := []struct {
		name   string
		score  AttemptScore
		cutoff *float64
		want   *bool
	}{
		{"above cutoff", AttemptScore{Total: 7, Max: 10}, &cutoff, boolPtr(true)},
		{"at cutoff", AttemptScore{Total: 6, Max: 10}, &cutoff, boolPtr(true)},
		{"below cutoff", AttemptScore{Total: 5, Max: 10}, &cutoff, boolPtr(false)},
		{"no cutoff configured", AttemptScore{Total: 5, Max: 10}, nil, nil},
		{"zero max never passes judgement", AttemptScore{}, &cutoff, nil},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Passed(tc.score, tc.cutoff)
			if (got == nil) != (tc.want == nil) {
				t.Fatalf("got %v, want %v", got, tc.want)
			}
			if got != nil && *got != *tc.want {
				t.Fatalf("got %v, want %v", *got, *tc.want)
			}
		})
	}
}
