package stamp

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"github.com/nilapparel/nilgen/gen/common"
)

// ErrInvalidStyle is returned when a style descriptor cannot be rendered.
var ErrInvalidStyle = errors.New("invalid box style")

// Span is a vertical range [Start, End) used by the fill-height policy.
type Span struct {
	Start int
	End   int
}

// Height of the span.
func (s Span) Height() int {
	return s.End - s.Start
}

// BoxStyle describes where and how one text field is stamped.
type BoxStyle struct {
	Rect          image.Rectangle
	Color         string
	Border        bool
	BorderColor   string
	BorderWidth   int
	SpacingFactor float64
	// YRange replaces Rect for the fill-height policy, which centres on the
	// whole canvas instead of a box.
	YRange Span
}

// LineStyle describes the decorative bar parted around the first name.
type LineStyle struct {
	Rect       image.Rectangle
	Color      string
	PaddingPct float64
}

// DefaultPaddingPct is the side padding of the line gap, as a fraction of the bar width.
const DefaultPaddingPct = 0.08

// paint holds the parsed colours of a style.
type paint struct {
	fill   color.Color
	border color.Color
}

// Validate checks the style against the needs of the given fit mode.
func (s BoxStyle) Validate(mode FitMode) error {
	_, err := s.validate(mode)
	return err
}

func (s BoxStyle) validate(mode FitMode) (paint, error) {
	var p paint
	if mode == FitHeight {
		if s.YRange.Height() <= 0 {
			return p, fmt.Errorf("%w: y range %d..%d has no height", ErrInvalidStyle,
				s.YRange.Start, s.YRange.End)
		}
	} else if s.Rect.Dx() <= 0 || s.Rect.Dy() <= 0 {
		return p, fmt.Errorf("%w: rect %v is degenerate", ErrInvalidStyle, s.Rect)
	}
	if s.BorderWidth < 0 {
		return p, fmt.Errorf("%w: border width %d", ErrInvalidStyle, s.BorderWidth)
	}
	if s.SpacingFactor < 0 {
		return p, fmt.Errorf("%w: spacing factor %v", ErrInvalidStyle, s.SpacingFactor)
	}
	fill, err := common.ParseHexColor(s.Color)
	if err != nil {
		return p, fmt.Errorf("%w: color: %v", ErrInvalidStyle, err)
	}
	p.fill = fill
	if s.stampsBorder() {
		border, err := common.ParseHexColor(s.BorderColor)
		if err != nil {
			return p, fmt.Errorf("%w: border color: %v", ErrInvalidStyle, err)
		}
		p.border = border
	}
	return p, nil
}

func (s BoxStyle) stampsBorder() bool {
	return s.Border && s.BorderWidth > 0
}

// Validate checks the bar rectangle and colour.
func (l LineStyle) Validate() error {
	_, err := l.validate()
	return err
}

func (l LineStyle) validate() (color.Color, error) {
	if l.Rect.Dx() <= 0 || l.Rect.Dy() <= 0 {
		return nil, fmt.Errorf("%w: line rect %v is degenerate", ErrInvalidStyle, l.Rect)
	}
	if l.PaddingPct < 0 {
		return nil, fmt.Errorf("%w: padding pct %v", ErrInvalidStyle, l.PaddingPct)
	}
	clr, err := common.ParseHexColor(l.Color)
	if err != nil {
		return nil, fmt.Errorf("%w: line color: %v", ErrInvalidStyle, err)
	}
	return clr, nil
}
