// Package exam holds the pure authoring and scoring rules of the platform:
// option filtering, question validation, correct-answer derivation, section
// arithmetic and attempt scoring. Nothing here touches the database or the
// network, which keeps every rule unit-testable in isolation.
package exam

import (
	"strings"

	"github.com/mockdrill/mockdrill-backend/internal/model"
)

// IsValidOption reports whether an option carries any content: trimmed
// text, trimmed HTML, or an image URL. Empty placeholder rows the editor
// leaves behind are not valid.
func IsValidOption(o model.Option) bool {
	return strings.TrimSpace(o.Text) != "" ||
		strings.TrimSpace(o.HTML) != "" ||
		strings.TrimSpace(o.ImageURL) != ""
}

// FilterOptions returns the valid options in their original order. The
// returned slice is a copy; mutating it does not affect the input.
func FilterOptions(opts []model.Option) []model.Option {
	valid := make([]model.Option, 0, len(opts))
	for _, o := range opts {
		if IsValidOption(o) {
			valid = append(valid, o)
		}
	}
	return valid
}

// DeriveAnswerKey computes the 1-based positions of the correct options
// within the filtered list. Positions refer to the filtered list, never the
// raw authored list: with raw options ["", "Paris", "", "Madrid"], "Madrid"
// is position 2, not 4.
//
// The derivation is a pure function of the filtered flags, so re-running it
// on already-derived data reproduces the same key.
func DeriveAnswerKey(validOptions []model.Option) model.AnswerKey {
	var key model.AnswerKey
	for i, o := range validOptions {
		if o.IsCorrect {
			key = append(key, i+1)
		}
	}
	return key
}
