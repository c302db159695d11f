package stamp

import (
	"fmt"
	"math"

	"golang.org/x/image/font"
)

// Font is a scalable font that produces faces at integer pixel sizes.
type Font interface {
	Face(size int) (font.Face, error)
}

// GlyphMetric is the ink box of one glyph at one size. Left and Top are the
// offsets of the ink box from the pen position on the baseline.
type GlyphMetric struct {
	Width  int
	Height int
	Left   int
	Top    int
	// Inked is false for glyphs such as space; their Width is the advance.
	Inked bool
}

// Measurement of a string at one size.
type Measurement struct {
	Size   int
	Width  int
	Height int
	// LineHeight is the ink extent with every glyph on a shared baseline.
	LineHeight int
	CharWidths []int
	Glyphs     []GlyphMetric
}

type glyphKey struct {
	r    rune
	size int
}

// Measurer measures text in one font. Faces and glyph metrics are memoized
// per size, so a Measurer should live for one render call only.
type Measurer struct {
	font   Font
	faces  map[int]font.Face
	glyphs map[glyphKey]GlyphMetric
}

// NewMeasurer returns a Measurer with an empty cache.
func NewMeasurer(f Font) *Measurer {
	return &Measurer{
		font:   f,
		faces:  make(map[int]font.Face),
		glyphs: make(map[glyphKey]GlyphMetric),
	}
}

// Face returns the face at size, creating it on first use.
func (m *Measurer) Face(size int) (font.Face, error) {
	if face, found := m.faces[size]; found {
		return face, nil
	}
	face, err := m.font.Face(size)
	if err != nil {
		return nil, fmt.Errorf("face at size %d: %w", size, err)
	}
	m.faces[size] = face
	return face, nil
}

// Glyph returns the metric of r at size.
func (m *Measurer) Glyph(r rune, size int) (GlyphMetric, error) {
	key := glyphKey{r, size}
	if g, found := m.glyphs[key]; found {
		return g, nil
	}
	face, err := m.Face(size)
	if err != nil {
		return GlyphMetric{}, err
	}
	bounds, advance, _ := face.GlyphBounds(r)
	minX, maxX := bounds.Min.X.Floor(), bounds.Max.X.Ceil()
	minY, maxY := bounds.Min.Y.Floor(), bounds.Max.Y.Ceil()
	var g GlyphMetric
	if maxX > minX && maxY > minY {
		g = GlyphMetric{Width: maxX - minX, Height: maxY - minY, Left: minX, Top: minY,
			Inked: true}
	} else {
		g = GlyphMetric{Width: advance.Round()}
	}
	m.glyphs[key] = g
	return g, nil
}

// Measure returns the width, tallest glyph and per-glyph widths of text.
// Each adjacent pair adds floor(width*spacing) after the left glyph.
func (m *Measurer) Measure(text string, size int, spacing float64) (Measurement, error) {
	runes := []rune(text)
	ms := Measurement{
		Size:       size,
		CharWidths: make([]int, len(runes)),
		Glyphs:     make([]GlyphMetric, len(runes)),
	}
	top, bottom, inked := 0, 0, false
	for i, r := range runes {
		g, err := m.Glyph(r, size)
		if err != nil {
			return Measurement{}, err
		}
		if g.Inked {
			if !inked || g.Top < top {
				top = g.Top
			}
			if !inked || g.Top+g.Height > bottom {
				bottom = g.Top + g.Height
			}
			inked = true
		}
		ms.Glyphs[i] = g
		ms.CharWidths[i] = g.Width
		ms.Width += g.Width
		if g.Height > ms.Height {
			ms.Height = g.Height
		}
		if i < len(runes)-1 {
			ms.Width += spacingGap(g.Width, spacing)
		}
	}
	ms.LineHeight = bottom - top
	return ms, nil
}

// BlockHeight is the ascent plus descent of the face at size.
func (m *Measurer) BlockHeight(size int) (int, int, error) {
	face, err := m.Face(size)
	if err != nil {
		return 0, 0, err
	}
	metrics := face.Metrics()
	ascent := metrics.Ascent.Ceil()
	return ascent, ascent + metrics.Descent.Ceil(), nil
}

// FitSize returns the largest size whose tallest glyph fits boxHeight.
func (m *Measurer) FitSize(text string, boxHeight int, spacing float64) (int, error) {
	return FindMaxFittingSize(boxHeight, boxHeight, func(size int) (int, error) {
		ms, err := m.Measure(text, size, spacing)
		return ms.Height, err
	})
}

// FitLineSize returns the largest size whose baseline-aligned ink fits boxHeight.
func (m *Measurer) FitLineSize(text string, boxHeight int, spacing float64) (int, error) {
	return FindMaxFittingSize(boxHeight, boxHeight, func(size int) (int, error) {
		ms, err := m.Measure(text, size, spacing)
		return ms.LineHeight, err
	})
}

// Float products are nudged before flooring so values such as 40*1.2 land on
// the integer they denote.
const floorEpsilon = 1e-9

func floorScaled(v int, f float64) int {
	return int(math.Floor(float64(v)*f + floorEpsilon))
}

func spacingGap(width int, spacing float64) int {
	return floorScaled(width, spacing)
}
