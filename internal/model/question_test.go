package model

import (
	"encoding/json"
	"testing"
)

func TestAnswerKeyUnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    AnswerKey
		wantErr bool
	}{
		{name: "bare number", input: `2`, want: AnswerKey{2}},
		{name: "array", input: `[1,3]`, want: AnswerKey{1, 3}},
		{name: "quoted number", input: `"2"`, want: AnswerKey{2}},
		{name: "quoted list", input: `"1, 3"`, want: AnswerKey{1, 3}},
		{name: "empty string", input: `""`, want: nil},
		{name: "null", input: `null`, want: nil},
		{name: "garbage string", input: `"one"`, wantErr: true},
		{name: "float", input: `1.5`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got AnswerKey
			err := json.Unmarshal([]byte(tt.input), &got)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !got.Equals(tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAnswerKeyEquals(t *testing.T) {
	tests := []struct {
		name string
		a, b AnswerKey
		want bool
	}{
		{name: "equal single", a: AnswerKey{2}, b: AnswerKey{2}, want: true},
		{name: "order independent", a: AnswerKey{1, 3}, b: AnswerKey{3, 1}, want: true},
		{name: "different length", a: AnswerKey{1}, b: AnswerKey{1, 2}, want: false},
		{name: "different values", a: AnswerKey{1, 2}, b: AnswerKey{1, 3}, want: false},
		{name: "duplicate counts matter", a: AnswerKey{1, 1}, b: AnswerKey{1, 2}, want: false},
		{name: "both empty", a: nil, b: AnswerKey{}, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Equals(tt.b); got != tt.want {
				t.Errorf("Equals(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestParseAnswerList(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    AnswerKey
		wantErr bool
	}{
		{name: "single", input: "2", want: AnswerKey{2}},
		{name: "list with spaces", input: "1, 3", want: AnswerKey{1, 3}},
		{name: "trailing comma", input: "1,2,", want: AnswerKey{1, 2}},
		{name: "not a number", input: "1,x", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseAnswerList(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !got.Equals(tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}
