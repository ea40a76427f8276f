package exam

import (
	"testing"

	"github.com/mockdrill/mockdrill-backend/internal/model"
)

func opt(text string, correct bool) model.Option {
	return model.Option{Text: text, IsCorrect: correct}
}

func TestFilterOptions(t *testing.T) {
	tests := []struct {
		name string
		in   []model.Option
		want []string
	}{
		{
			name: "drops empty and whitespace-only entries",
			in: []model.Option{
				opt("", false), opt("Paris", true), opt("   ", false), opt("Madrid", false),
			},
			want: []string{"Paris", "Madrid"},
		},
		{
			name: "html-only option is valid",
			in:   []model.Option{{HTML: "<b>Rome</b>"}, opt("", false)},
			want: []string{""},
		},
		{
			name: "image-only option is valid",
			in:   []model.Option{{ImageURL: "/uploads/a.png"}, opt("Berlin", false)},
			want: []string{"", "Berlin"},
		},
		{
			name: "all empty",
			in:   []model.Option{opt("", false), opt("", false)},
			want: []string{},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := FilterOptions(tc.in)
			if len(got) != len(tc.want) {
				t.Fatalf("got %d options, want %d", len(got), len(tc.want))
			}
			for i, w := range tc.want {
				if got[i].Text != w {
					t.Errorf("option %d: got text %q, want %q", i, got[i].Text, w)
				}
			}
		})
	}
}

func TestDeriveAnswerKey_ReindexesAfterFiltering(t *testing.T) {
	// Raw options: positions 1 and 3 are empty and get filtered out.
	// "Madrid" sits at raw index 4 but must become position 2.
	raw := []model.Option{
		opt("", false),
		opt("Paris", true),
		opt("", false),
		opt("Madrid", false),
	}

	valid := FilterOptions(raw)
	key := DeriveAnswerKey(valid)

	if len(key) != 1 || key[0] != 1 {
		t.Fatalf("got key %v, want [1]", key)
	}

	// Flip it: Madrid correct instead.
	raw[1].IsCorrect = false
	raw[3].IsCorrect = true
	key = DeriveAnswerKey(FilterOptions(raw))
	if len(key) != 1 || key[0] != 2 {
		t.Fatalf("got key %v, want [2]", key)
	}
}

func TestDeriveAnswerKey_Multiple(t *testing.T) {
	raw := []model.Option{
		opt("A", true), opt("B", false), opt("C", true), opt("D", false),
	}
	key := DeriveAnswerKey(FilterOptions(raw))
	want := model.AnswerKey{1, 3}
	if !key.Equals(want) {
		t.Fatalf("got key %v, want %v", key, want)
	}
}

func TestDeriveAnswerKey_Idempotent(t *testing.T) {
	raw := []model.Option{
		opt("", false), opt("A", true), opt("B", false), opt("C", true),
	}
	first := DeriveAnswerKey(FilterOptions(raw))
	// Re-running the whole derivation on the already-filtered list must
	// reproduce the same key.
	second := DeriveAnswerKey(FilterOptions(FilterOptions(raw)))
	if !first.Equals(second) {
		t.Fatalf("derivation not idempotent: %v vs %v", first, second)
	}
}
