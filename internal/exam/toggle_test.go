package exam

import (
	"errors"
	"testing"

	"github.com/mockdrill/mockdrill-backend/internal/model"
)

func flags(opts []model.Option) []bool {
	out := make([]bool, len(opts))
	for i, o := range opts {
		out[i] = o.IsCorrect
	}
	return out
}

func TestToggleCorrect_SingleIsExclusive(t *testing.T) {
	opts := []model.Option{opt("A", true), opt("B", false), opt("C", false)}

	got := ToggleCorrect(opts, 2, model.QuestionTypeSingle)
	want := []bool{false, false, true}
	for i, w := range want {
		if got[i].IsCorrect != w {
			t.Fatalf("after toggle: flags %v, want %v", flags(got), want)
		}
	}

	// Radio semantics hold even when the incoming slice is inconsistent.
	dirty := []model.Option{opt("A", true), opt("B", true), opt("C", true)}
	got = ToggleCorrect(dirty, 1, model.QuestionTypeSingle)
	want = []bool{false, true, false}
	for i, w := range want {
		if got[i].IsCorrect != w {
			t.Fatalf("dirty input: flags %v, want %v", flags(got), want)
		}
	}
}

func TestToggleCorrect_MultipleFlipsOnlySelf(t *testing.T) {
	opts := []model.Option{opt("A", true), opt("B", false), opt("C", false)}

	got := ToggleCorrect(opts, 2, model.QuestionTypeMultiple)
	want := []bool{true, false, true}
	for i, w := range want {
		if got[i].IsCorrect != w {
			t.Fatalf("flags %v, want %v", flags(got), want)
		}
	}

	// Toggling again flips it back.
	got = ToggleCorrect(got, 2, model.QuestionTypeMultiple)
	if got[2].IsCorrect {
		t.Fatal("second toggle should clear the flag")
	}
}

func TestToggleCorrect_DoesNotMutateInput(t *testing.T) {
	opts := []model.Option{opt("A", false), opt("B", false)}
	_ = ToggleCorrect(opts, 0, model.QuestionTypeSingle)
	if opts[0].IsCorrect {
		t.Fatal("input slice was mutated")
	}
}

func TestSwitchType_PreservesStaleFlagsUntilSave(t *testing.T) {
	// Authored as multiple with two correct options.
	opts := []model.Option{opt("A", true), opt("B", true), opt("C", false)}

	// single→multiple keeps flags.
	asMultiple := SwitchType(opts, model.QuestionTypeMultiple)
	want := []bool{true, true, false}
	for i, w := range want {
		if asMultiple[i].IsCorrect != w {
			t.Fatalf("flags %v, want %v", flags(asMultiple), want)
		}
	}

	// multiple→single leaves the now-invalid state intact...
	asSingle := SwitchType(opts, model.QuestionTypeSingle)
	for i, w := range want {
		if asSingle[i].IsCorrect != w {
			t.Fatalf("flags %v, want %v", flags(asSingle), want)
		}
	}

	// ...and the next save attempt rejects it.
	_, _, err := CheckQuestion(model.QuestionTypeSingle, "Q", "", asSingle)
	if !errors.Is(err, ErrTooManyCorrectAnswers) {
		t.Fatalf("save must fail with ErrTooManyCorrectAnswers, got %v", err)
	}
}
