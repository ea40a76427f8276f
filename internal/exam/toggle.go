package exam

import "github.com/mockdrill/mockdrill-backend/internal/model"

// ToggleCorrect applies the editor's correct-answer toggle to the option at
// index i (0-based, into the raw authored list) and returns the updated
// slice. The input is not mutated.
//
// Single-choice has radio semantics: option i becomes the only correct
// option, clearing every other flag even if the incoming slice was already
// inconsistent. Multiple-choice has checkbox semantics: only option i's
// flag flips.
//
// ToggleCorrect and SwitchType exist for parity with the question editor:
// any client driving the authoring API server-side must observe the same
// state transitions the editor produces locally.
func ToggleCorrect(opts []model.Option, i int, qType model.QuestionType) []model.Option {
	if i < 0 || i >= len(opts) {
		return opts
	}

	out := make([]model.Option, len(opts))
	copy(out, opts)

	if qType == model.QuestionTypeSingle {
		for j := range out {
			out[j].IsCorrect = j == i
		}
		return out
	}

	out[i].IsCorrect = !out[i].IsCorrect
	return out
}

// SwitchType changes a question's type, preserving all is_correct flags.
// Going multiple→single with several flags set intentionally leaves the
// invalid state in place; the next CheckQuestion call rejects it. The
// editor behaves this way and save-time validation is the safety net.
func SwitchType(opts []model.Option, to model.QuestionType) []model.Option {
	out := make([]model.Option, len(opts))
	copy(out, opts)
	return out
}
