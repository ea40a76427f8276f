// Package ingest parses question-bank uploads. The record schema (field
// names and the 1-based correct-answer indexing) is a versioned external
// contract (consumers hand-author these files), so parsing here must stay
// byte-compatible with what the authoring tools emit.
package ingest

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/mockdrill/mockdrill-backend/internal/model"
)

// ErrInvalidFileType is returned for any upload that is not .json or .csv.
var ErrInvalidFileType = errors.New("only .json and .csv uploads are accepted")

// Record is one uploaded question row. Field names are the upload
// contract; do not rename.
type Record struct {
	QuestionText  string          `json:"questionText"`
	QuestionType  string          `json:"questionType"`
	Option1       string          `json:"option1"`
	Option2       string          `json:"option2"`
	Option3       string          `json:"option3"`
	Option4       string          `json:"option4"`
	CorrectAnswer model.AnswerKey `json:"correctAnswer"`
	Explanation   string          `json:"explanation"`
	Difficulty    string          `json:"difficulty"`
	Tags          string          `json:"tags"`
	Marks         float64         `json:"marks"`
	NegativeMarks float64         `json:"negativeMarks"`
}

// RowError reports one malformed record. Row is 1-based over data rows
// (the CSV header line is not counted).
type RowError struct {
	Row    int    `json:"row"`
	Reason string `json:"reason"`
}

// Result is the outcome of a best-effort parse: every valid row becomes a
// question, every bad row an error entry.
type Result struct {
	Questions []model.BankQuestion `json:"-"`
	Errors    []RowError           `json:"errors,omitempty"`
}

// ParseFile dispatches on the upload's extension. Unknown extensions fail
// before any bytes are read.
func ParseFile(filename string, r io.Reader) (*Result, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".json":
		return parseJSON(r)
	case ".csv":
		return parseCSV(r)
	default:
		return nil, ErrInvalidFileType
	}
}

func parseJSON(r io.Reader) (*Result, error) {
	var records []Record
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		return nil, fmt.Errorf("decode upload: %w", err)
	}

	result := &Result{}
	for i, rec := range records {
		q, err := rec.toQuestion()
		if err != nil {
			result.Errors = append(result.Errors, RowError{Row: i + 1, Reason: err.Error()})
			continue
		}
		result.Questions = append(result.Questions, *q)
	}
	return result, nil
}

// csvColumns maps header names to record fields. Unknown columns are
// ignored so producers can carry extra bookkeeping columns.
func parseCSV(r io.Reader) (*Result, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}
	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[strings.TrimSpace(h)] = i
	}

	field := func(row []string, name string) string {
		idx, ok := cols[name]
		if !ok || idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	result := &Result{}
	rowNum := 0
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		rowNum++
		if err != nil {
			result.Errors = append(result.Errors, RowError{Row: rowNum, Reason: err.Error()})
			continue
		}

		rec := Record{
			QuestionText: field(row, "questionText"),
			QuestionType: field(row, "questionType"),
			Option1:      field(row, "option1"),
			Option2:      field(row, "option2"),
			Option3:      field(row, "option3"),
			Option4:      field(row, "option4"),
			Explanation:  field(row, "explanation"),
			Difficulty:   field(row, "difficulty"),
			Tags:         field(row, "tags"),
		}

		if raw := field(row, "correctAnswer"); raw != "" {
			key, err := model.ParseAnswerList(raw)
			if err != nil {
				result.Errors = append(result.Errors, RowError{Row: rowNum, Reason: err.Error()})
				continue
			}
			rec.CorrectAnswer = key
		}
		if raw := field(row, "marks"); raw != "" {
			if rec.Marks, err = strconv.ParseFloat(raw, 64); err != nil {
				result.Errors = append(result.Errors, RowError{Row: rowNum, Reason: "invalid marks: " + raw})
				continue
			}
		}
		if raw := field(row, "negativeMarks"); raw != "" {
			if rec.NegativeMarks, err = strconv.ParseFloat(raw, 64); err != nil {
				result.Errors = append(result.Errors, RowError{Row: rowNum, Reason: "invalid negativeMarks: " + raw})
				continue
			}
		}

		q, err := rec.toQuestion()
		if err != nil {
			result.Errors = append(result.Errors, RowError{Row: rowNum, Reason: err.Error()})
			continue
		}
		result.Questions = append(result.Questions, *q)
	}
	return result, nil
}

// toQuestion validates a record and converts it to a bank question.
func (rec *Record) toQuestion() (*model.BankQuestion, error) {
	if strings.TrimSpace(rec.QuestionText) == "" {
		return nil, errors.New("questionText is required")
	}

	qType := model.QuestionTypeSingle
	switch rec.QuestionType {
	case "", "single":
	case "multiple":
		qType = model.QuestionTypeMultiple
	default:
		return nil, fmt.Errorf("unknown questionType %q", rec.QuestionType)
	}

	var options []model.Option
	for _, text := range []string{rec.Option1, rec.Option2, rec.Option3, rec.Option4} {
		if strings.TrimSpace(text) != "" {
			options = append(options, model.Option{Text: strings.TrimSpace(text)})
		}
	}
	if len(options) < 2 {
		return nil, errors.New("at least 2 options are required")
	}

	if len(rec.CorrectAnswer) == 0 {
		return nil, errors.New("correctAnswer is required")
	}
	if qType == model.QuestionTypeSingle && len(rec.CorrectAnswer) > 1 {
		return nil, errors.New("single-choice rows take exactly one correctAnswer index")
	}
	for _, idx := range rec.CorrectAnswer {
		if idx < 1 || idx > len(options) {
			return nil, fmt.Errorf("correctAnswer index %d out of range (1-%d)", idx, len(options))
		}
		options[idx-1].IsCorrect = true
	}

	difficulty := model.DifficultyMedium
	switch rec.Difficulty {
	case "":
	case string(model.DifficultyEasy), string(model.DifficultyMedium), string(model.DifficultyHard):
		difficulty = model.Difficulty(rec.Difficulty)
	default:
		return nil, fmt.Errorf("unknown difficulty %q", rec.Difficulty)
	}

	marks := rec.Marks
	if marks == 0 {
		marks = 1
	}
	if marks < 0.25 {
		return nil, errors.New("marks must be at least 0.25")
	}
	if rec.NegativeMarks < 0 {
		return nil, errors.New("negativeMarks must not be negative")
	}

	return &model.BankQuestion{
		QuestionType:  qType,
		QuestionText:  strings.TrimSpace(rec.QuestionText),
		Options:       options,
		CorrectAnswer: append(model.AnswerKey(nil), rec.CorrectAnswer...),
		Marks:         marks,
		NegativeMarks: rec.NegativeMarks,
		Difficulty:    difficulty,
		Tags:          splitTags(rec.Tags),
		Explanation:   strings.TrimSpace(rec.Explanation),
	}, nil
}

// splitTags turns a comma-separated tag string into a trimmed list.
func splitTags(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}
