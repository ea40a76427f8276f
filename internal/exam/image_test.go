package exam

import (
	"errors"
	"testing"

	"github.com/mockdrill/mockdrill-backend/internal/model"
)

func TestCheckImageDims(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		wantErr       bool
	}{
		{"unset is fine", 0, 0, false},
		{"valid bounds", 50, 400, false},
		{"width floor", 5, 0, false},
		{"width ceiling", 100, 0, false},
		{"width below floor", 4, 0, true},
		{"width off the 5-step grid", 52, 0, true},
		{"height floor", 0, 50, false},
		{"height ceiling", 0, 800, false},
		{"height above ceiling", 0, 850, true},
		{"height off the 50-step grid", 0, 75, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := CheckImageDims(tc.width, tc.height)
			if tc.wantErr && !errors.Is(err, ErrInvalidImageDimensions) {
				t.Fatalf("want ErrInvalidImageDimensions, got %v", err)
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestStylesFor(t *testing.T) {
	tests := []struct {
		align model.ImageAlign
		want  ImageStyles
	}{
		{model.ImageAlignLeft, ImageStyles{Float: "left", Margin: "0 1rem 1rem 0", Display: "inline"}},
		{model.ImageAlignRight, ImageStyles{Float: "right", Margin: "0 0 1rem 1rem", Display: "inline"}},
		{model.ImageAlignCenter, ImageStyles{Float: "center", Margin: "0 auto", Display: "block"}},
		{"", ImageStyles{Float: "none", Margin: "0 auto", Display: "inline"}},
	}

	for _, tc := range tests {
		t.Run(string(tc.align)+"_align", func(t *testing.T) {
			if got := StylesFor(tc.align); got != tc.want {
				t.Fatalf("align %q: got %+v, want %+v", tc.align, got, tc.want)
			}
		})
	}
}
