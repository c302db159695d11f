package stamp

import (
	"fmt"
	"image"
	"strings"

	"github.com/nfnt/resize"
)

// RenderedTextBlock reports what a render drew.
type RenderedTextBlock struct {
	Width int
	Plan  FitPlan
}

// Plan chooses the font size and layout of text without drawing. canvasWidth
// is only used by FitHeight, which centres on the whole canvas.
func Plan(m *Measurer, canvasWidth int, style BoxStyle, text string, policy Policy) (FitPlan, Measurement, error) {
	box := style.Rect
	if policy.Mode == FitHeight {
		box = image.Rect(0, style.YRange.Start, canvasWidth, style.YRange.End)
	}
	boxHeight := box.Dy()

	fit := m.FitSize
	if policy.Mode == FitCenter {
		// Glyphs keep a shared baseline, so the whole line has to fit.
		fit = m.FitLineSize
	}
	size, err := fit(text, boxHeight, style.SpacingFactor)
	if err != nil {
		return FitPlan{}, Measurement{}, err
	}
	ms, err := m.Measure(text, size, style.SpacingFactor)
	if err != nil {
		return FitPlan{}, Measurement{}, err
	}
	plan := PlanHorizontal(ms.CharWidths, box, style.SpacingFactor, policy)
	plan.FontSize = size
	plan.Origin.Y = box.Min.Y
	if policy.Mode == FitCenter {
		plan.Origin.Y += floorDiv(boxHeight-ms.LineHeight, 2)
	}
	return plan, ms, nil
}

// Render stamps text onto canvas in place. Blank text draws nothing.
func Render(canvas *image.RGBA, style BoxStyle, text string, f Font, policy Policy) (RenderedTextBlock, error) {
	p, err := style.validate(policy.Mode)
	if err != nil {
		return RenderedTextBlock{}, fmt.Errorf("%s: %w", policy.Name, err)
	}
	if strings.TrimSpace(text) == "" {
		return RenderedTextBlock{}, nil
	}

	m := NewMeasurer(f)
	plan, ms, err := Plan(m, canvas.Bounds().Dx(), style, text, policy)
	if err != nil {
		return RenderedTextBlock{}, fmt.Errorf("%s: %w", policy.Name, err)
	}
	c := newCompositor(m, plan.FontSize, p, style)

	switch policy.Mode {
	case FitCenter:
		err = renderCentered(canvas, c, text, plan, ms)
	case FitHeight:
		err = renderStrip(canvas, c, text, plan, ms, style.YRange, policy.Vertical)
	case FitBoth:
		err = renderFilled(canvas, c, text, plan, ms, style.Rect.Dy())
	default:
		err = fmt.Errorf("unknown fit mode %v", policy.Mode)
	}
	if err != nil {
		return RenderedTextBlock{}, fmt.Errorf("%s: %w", policy.Name, err)
	}
	return RenderedTextBlock{Width: plan.TotalWidth, Plan: plan}, nil
}

// inkTop is the highest ink offset above the baseline among the glyphs.
func inkTop(glyphs []GlyphMetric) int {
	top, found := 0, false
	for _, g := range glyphs {
		if g.Inked && (!found || g.Top < top) {
			top, found = g.Top, true
		}
	}
	return top
}

// renderCentered keeps glyphs at their natural size on a shared baseline.
func renderCentered(canvas *image.RGBA, c *compositor, text string, plan FitPlan, ms Measurement) error {
	top := inkTop(ms.Glyphs)
	xs := plan.Cursors()
	stamps := make([]glyphStamp, 0, len(ms.Glyphs))
	for i, r := range []rune(text) {
		g := ms.Glyphs[i]
		s, err := c.glyph(r, g, image.Pt(xs[i], plan.Origin.Y+g.Top-top), image.Point{})
		if err != nil {
			return err
		}
		stamps = append(stamps, s)
	}
	c.stamp(canvas, stamps)
	return nil
}

// renderFilled stretches every glyph to its planned width and the box height.
func renderFilled(canvas *image.RGBA, c *compositor, text string, plan FitPlan, ms Measurement, boxHeight int) error {
	xs := plan.Cursors()
	stamps := make([]glyphStamp, 0, len(ms.Glyphs))
	for i, r := range []rune(text) {
		size := image.Pt(plan.CharWidths[i], boxHeight)
		s, err := c.glyph(r, ms.Glyphs[i], image.Pt(xs[i], plan.Origin.Y), size)
		if err != nil {
			return err
		}
		stamps = append(stamps, s)
	}
	c.stamp(canvas, stamps)
	return nil
}

// renderStrip composes the glyphs into a strip sized to the content, stretches
// the strip vertically to the range and pastes it centred on the canvas.
func renderStrip(canvas *image.RGBA, c *compositor, text string, plan FitPlan, ms Measurement,
	yRange Span, vertical VerticalMode) error {

	if plan.TotalWidth <= 0 {
		return nil
	}
	baseline, block := -inkTop(ms.Glyphs), ms.LineHeight
	if vertical == VerticalAscentDescent {
		var err error
		baseline, block, err = c.m.BlockHeight(plan.FontSize)
		if err != nil {
			return err
		}
	}
	if block <= 0 {
		return nil
	}

	strip := image.NewRGBA(image.Rect(0, 0, plan.TotalWidth, block))
	xs := plan.Cursors()
	stamps := make([]glyphStamp, 0, len(ms.Glyphs))
	for i, r := range []rune(text) {
		g := ms.Glyphs[i]
		at := image.Pt(xs[i]-plan.Origin.X, baseline+g.Top)
		s, err := c.glyph(r, g, at, image.Point{})
		if err != nil {
			return err
		}
		stamps = append(stamps, s)
	}
	c.stamp(strip, stamps)

	stretched := resize.Resize(uint(plan.TotalWidth), uint(yRange.Height()), strip, resize.Lanczos3)
	paste(canvas, stretched, image.Pt(plan.Origin.X, yRange.Start))
	return nil
}

// RenderFirstName renders the first name and, when line is set and something
// was drawn, parts the line bar around it.
func RenderFirstName(canvas *image.RGBA, style BoxStyle, line *LineStyle, text string, f Font,
	policy Policy) (RenderedTextBlock, error) {

	block, err := Render(canvas, style, text, f, policy)
	if err != nil || line == nil || block.Width == 0 {
		return block, err
	}
	return block, DrawGapBar(canvas, *line, block.Width)
}
