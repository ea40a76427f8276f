package exam

import (
	"errors"

	"github.com/mockdrill/mockdrill-backend/internal/model"
)

// Image dimension bounds, matching the authoring sliders.
const (
	ImageWidthMin  = 5   // percent
	ImageWidthMax  = 100 // percent
	ImageWidthStep = 5
	ImageHeightMin  = 50  // px
	ImageHeightMax  = 800 // px
	ImageHeightStep = 50
)

var ErrInvalidImageDimensions = errors.New("image dimensions out of range")

// CheckImageDims validates embedded-image layout metadata. Zero values mean
// "unset" and are allowed; the renderer falls back to natural sizing.
func CheckImageDims(width, height int) error {
	if width != 0 && (width < ImageWidthMin || width > ImageWidthMax || width%ImageWidthStep != 0) {
		return ErrInvalidImageDimensions
	}
	if height != 0 && (height < ImageHeightMin || height > ImageHeightMax || height%ImageHeightStep != 0) {
		return ErrInvalidImageDimensions
	}
	return nil
}

// ImageStyles is the CSS the authoring preview derives from image layout
// metadata. It must stay bit-for-bit identical to the frontend's
// getImageStyles so both render the same.
type ImageStyles struct {
	Float   string `json:"float"`
	Margin  string `json:"margin"`
	Display string `json:"display"`
}

// StylesFor derives the preview CSS for an image alignment. Float mirrors
// the align value verbatim (including "center", which CSS ignores) because
// the frontend preview emits exactly that. Kept for client parity: any
// renderer of authored images must reproduce these styles bit for bit.
func StylesFor(align model.ImageAlign) ImageStyles {
	s := ImageStyles{
		Float:   "none",
		Margin:  "0 auto",
		Display: "inline",
	}
	if align != "" {
		s.Float = string(align)
	}
	switch align {
	case model.ImageAlignLeft:
		s.Margin = "0 1rem 1rem 0"
	case model.ImageAlignRight:
		s.Margin = "0 0 1rem 1rem"
	case model.ImageAlignCenter:
		s.Display = "block"
	}
	return s
}
