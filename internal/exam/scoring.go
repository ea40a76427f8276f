package exam

import "github.com/mockdrill/mockdrill-backend/internal/model"

// QuestionOutcome classifies one scored answer.
type QuestionOutcome string

const (
	OutcomeCorrect    QuestionOutcome = "correct"
	OutcomeWrong      QuestionOutcome = "wrong"
	OutcomeUnanswered QuestionOutcome = "unanswered"
)

// QuestionScore is the result of grading a single question.
type QuestionScore struct {
	Outcome QuestionOutcome
	Earned  float64
}

// ScoreQuestion grades one answer against its key. Unanswered earns 0;
// an exact (order-independent) match of the selected position set earns
// the full marks; anything else costs the negative marks.
func ScoreQuestion(key model.AnswerKey, selected model.AnswerKey, marks, negativeMarks float64) QuestionScore {
	if len(selected) == 0 {
		return QuestionScore{Outcome: OutcomeUnanswered}
	}
	if key.Equals(selected) {
		return QuestionScore{Outcome: OutcomeCorrect, Earned: marks}
	}
	return QuestionScore{Outcome: OutcomeWrong, Earned: -negativeMarks}
}

// GradedQuestion pairs a delivered question's marking data with the key it
// must be graded against.
type GradedQuestion struct {
	Section       string
	Key           model.AnswerKey
	Marks         float64
	NegativeMarks float64
}

// AttemptScore is the full grading outcome of an attempt.
type AttemptScore struct {
	Total    float64
	Max      float64
	Sections []model.SectionScore
}

// ScoreAttempt grades every delivered question of an attempt. answers maps
// question position (0-based delivery order) to the selected key; missing
// entries count as unanswered. Section order follows first appearance in
// the question list.
func ScoreAttempt(questions []GradedQuestion, answers map[int]model.AnswerKey) AttemptScore {
	var result AttemptScore
	index := make(map[string]int)

	for i, q := range questions {
		si, ok := index[q.Section]
		if !ok {
			si = len(result.Sections)
			index[q.Section] = si
			result.Sections = append(result.Sections, model.SectionScore{Section: q.Section})
		}
		sec := &result.Sections[si]

		score := ScoreQuestion(q.Key, answers[i], q.Marks, q.NegativeMarks)
		switch score.Outcome {
		case OutcomeCorrect:
			sec.Attempted++
			sec.Correct++
		case OutcomeWrong:
			sec.Attempted++
			sec.Wrong++
		case OutcomeUnanswered:
			sec.Unanswered++
		}

		sec.Score += score.Earned
		sec.MaxScore += q.Marks
		result.Total += score.Earned
		result.Max += q.Marks
	}

	return result
}

// Passed evaluates an attempt score against a company cutoff percentage.
// Returns nil when no cutoff is configured.
func Passed(score AttemptScore, cutoffPercentage *float64) *bool {
	if cutoffPercentage == nil || score.Max == 0 {
		return nil
	}
	passed := score.Total/score.Max*100 >= *cutoffPercentage
	return &passed
}
