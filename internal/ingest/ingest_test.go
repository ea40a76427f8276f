package ingest

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mockdrill/mockdrill-backend/internal/model"
)

func TestParseFileRejectsUnknownExtension(t *testing.T) {
	_, err := ParseFile("questions.xlsx", strings.NewReader(""))
	assert.ErrorIs(t, err, ErrInvalidFileType)

	_, err = ParseFile("questions", strings.NewReader(""))
	assert.ErrorIs(t, err, ErrInvalidFileType)
}

func TestParseJSONUpload(t *testing.T) {
	payload := `[
		{
			"questionText": "Capital of France?",
			"option1": "Paris",
			"option2": "London",
			"option3": "Madrid",
			"correctAnswer": 1,
			"difficulty": "Easy",
			"tags": "geography, europe",
			"marks": 2,
			"negativeMarks": 0.5
		},
		{
			"questionText": "Select the prime numbers",
			"questionType": "multiple",
			"option1": "2",
			"option2": "4",
			"option3": "5",
			"option4": "6",
			"correctAnswer": [1, 3]
		},
		{
			"questionText": "",
			"option1": "a",
			"option2": "b",
			"correctAnswer": 1
		}
	]`

	result, err := ParseFile("bank.json", strings.NewReader(payload))
	require.NoError(t, err)
	require.Len(t, result.Questions, 2)
	require.Len(t, result.Errors, 1)

	first := result.Questions[0]
	assert.Equal(t, model.QuestionTypeSingle, first.QuestionType)
	assert.Equal(t, model.AnswerKey{1}, first.CorrectAnswer)
	assert.True(t, first.Options[0].IsCorrect)
	assert.False(t, first.Options[1].IsCorrect)
	assert.Equal(t, model.DifficultyEasy, first.Difficulty)
	assert.Equal(t, []string{"geography", "europe"}, first.Tags)
	assert.Equal(t, 2.0, first.Marks)
	assert.Equal(t, 0.5, first.NegativeMarks)

	second := result.Questions[1]
	assert.Equal(t, model.QuestionTypeMultiple, second.QuestionType)
	assert.Equal(t, model.AnswerKey{1, 3}, second.CorrectAnswer)
	assert.Equal(t, 1.0, second.Marks)
	assert.Equal(t, model.DifficultyMedium, second.Difficulty)

	assert.Equal(t, 3, result.Errors[0].Row)
	assert.Contains(t, result.Errors[0].Reason, "questionText")
}

func TestParseJSONUploadCommaStringAnswer(t *testing.T) {
	payload := `[{
		"questionText": "Pick evens",
		"questionType": "multiple",
		"option1": "1",
		"option2": "2",
		"option3": "3",
		"option4": "4",
		"correctAnswer": "2, 4"
	}]`

	result, err := ParseFile("bank.json", strings.NewReader(payload))
	require.NoError(t, err)
	require.Len(t, result.Questions, 1)
	assert.Equal(t, model.AnswerKey{2, 4}, result.Questions[0].CorrectAnswer)
}

func TestParseCSVUpload(t *testing.T) {
	payload := strings.Join([]string{
		"questionText,questionType,option1,option2,option3,option4,correctAnswer,difficulty,tags,marks,negativeMarks",
		`Capital of France?,single,Paris,London,Madrid,,1,Easy,"geography,europe",2,0.5`,
		`Select the primes,multiple,2,4,5,6,"1,3",Hard,,,`,
		`Broken row,single,only-one,,,,1,,,,`,
		`Out of range,single,a,b,,,5,,,,`,
	}, "\n")

	result, err := ParseFile("bank.csv", strings.NewReader(payload))
	require.NoError(t, err)
	require.Len(t, result.Questions, 2)
	require.Len(t, result.Errors, 2)

	first := result.Questions[0]
	assert.Equal(t, "Capital of France?", first.QuestionText)
	require.Len(t, first.Options, 3)
	assert.True(t, first.Options[0].IsCorrect)
	assert.Equal(t, 2.0, first.Marks)

	second := result.Questions[1]
	assert.Equal(t, model.QuestionTypeMultiple, second.QuestionType)
	assert.Equal(t, model.AnswerKey{1, 3}, second.CorrectAnswer)
	assert.Equal(t, model.DifficultyHard, second.Difficulty)

	assert.Equal(t, 3, result.Errors[0].Row)
	assert.Equal(t, 4, result.Errors[1].Row)
	assert.Contains(t, result.Errors[1].Reason, "out of range")
}

func TestRecordValidation(t *testing.T) {
	base := Record{
		QuestionText:  "q",
		Option1:       "a",
		Option2:       "b",
		CorrectAnswer: model.AnswerKey{1},
	}

	tests := []struct {
		name    string
		mutate  func(*Record)
		wantErr string
	}{
		{"single with two answers", func(r *Record) { r.CorrectAnswer = model.AnswerKey{1, 2} }, "exactly one"},
		{"missing answer", func(r *Record) { r.CorrectAnswer = nil }, "correctAnswer is required"},
		{"bad type", func(r *Record) { r.QuestionType = "essay" }, "unknown questionType"},
		{"bad difficulty", func(r *Record) { r.Difficulty = "Extreme" }, "unknown difficulty"},
		{"negative penalty", func(r *Record) { r.NegativeMarks = -1 }, "negativeMarks"},
		{"marks below step", func(r *Record) { r.Marks = 0.1 }, "marks"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := base
			tt.mutate(&rec)
			_, err := rec.toQuestion()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
