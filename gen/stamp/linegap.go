package stamp

import (
	"image"
	"math"

	"github.com/fogleman/gg"
)

// GapSegments returns the bar pieces left and right of a gap sized to
// contentWidth plus padding on each side. The gap is centred on the canvas
// centre, not the bar centre, and clamped to the bar. Empty pieces are omitted.
func GapSegments(bar image.Rectangle, canvasWidth int, contentWidth int,
	paddingPct float64) []image.Rectangle {

	barWidth := bar.Dx()
	side := int(math.Floor(float64(barWidth)*paddingPct + floorEpsilon))
	gapWidth := contentWidth + 2*side
	if gapWidth > barWidth {
		gapWidth = barWidth
	}
	gapLeft := canvasWidth/2 - gapWidth/2
	gapRight := gapLeft + gapWidth
	if gapLeft < bar.Min.X {
		gapLeft = bar.Min.X
	}
	if gapRight > bar.Max.X {
		gapRight = bar.Max.X
	}
	gapLeft = min(gapLeft, bar.Max.X)
	gapRight = max(gapRight, bar.Min.X)

	segments := make([]image.Rectangle, 0, 2)
	if gapLeft > bar.Min.X {
		segments = append(segments, image.Rect(bar.Min.X, bar.Min.Y, gapLeft, bar.Max.Y))
	}
	if gapRight < bar.Max.X {
		segments = append(segments, image.Rect(gapRight, bar.Min.Y, bar.Max.X, bar.Max.Y))
	}
	return segments
}

// DrawGapBar fills the bar segments around a gap for contentWidth.
func DrawGapBar(canvas *image.RGBA, line LineStyle, contentWidth int) error {
	clr, err := line.validate()
	if err != nil {
		return err
	}
	dc := gg.NewContextForRGBA(canvas)
	dc.SetColor(clr)
	for _, seg := range GapSegments(line.Rect, canvas.Bounds().Dx(), contentWidth, line.PaddingPct) {
		dc.DrawRectangle(float64(seg.Min.X), float64(seg.Min.Y), float64(seg.Dx()),
			float64(seg.Dy()))
	}
	dc.Fill()
	return nil
}
