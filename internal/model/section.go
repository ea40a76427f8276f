package model

// Section is a named block of a test (or of a company's default pattern)
// with its own question count, time allotment, and marking scheme. It is
// stored as jsonb inside its owner, never as a standalone row.
type Section struct {
	SectionName     string  `json:"section_name" binding:"required,min=1,max=100"`
	QuestionCount   int     `json:"question_count" binding:"required,min=1"`
	Duration        int     `json:"duration" binding:"required,min=1"`
	MarksPerQ       float64 `json:"marks_per_question" binding:"required,min=0.25"`
	NegativeMarking float64 `json:"negative_marking" binding:"min=0"`
}

// SectionTotals are the derived aggregates over a section list. They are
// recomputed on every read and never persisted.
type SectionTotals struct {
	TotalQuestions int     `json:"total_questions"`
	TotalDuration  int     `json:"total_duration"`
	TotalMarks     float64 `json:"total_marks"`
}
