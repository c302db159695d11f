package stamp

import "image"

// FitPlan is the horizontal layout of one string in one box.
type FitPlan struct {
	FontSize      int
	CharWidths    []int
	StretchFactor float64
	Gaps          []int
	TotalWidth    int
	Origin        image.Point
}

// Cursors returns the x position of every glyph.
func (p FitPlan) Cursors() []int {
	xs := make([]int, len(p.CharWidths))
	cx := p.Origin.X
	for i, w := range p.CharWidths {
		xs[i] = cx
		cx += w
		if i < len(p.Gaps) {
			cx += p.Gaps[i]
		}
	}
	return xs
}

// PlanHorizontal lays out glyph widths in box under policy. Only the x of the
// returned origin is set; vertical placement belongs to the caller.
//
// FitCenter and FitHeight keep the widths and centre them. FitBoth scales the
// widths by min(box/unstretched, MaxStretch) and, when the policy distributes
// shortfall and there is at least one gap, spreads the remaining pixels over
// the gaps left to right so the plan ends exactly at the box width.
func PlanHorizontal(widths []int, box image.Rectangle, spacing float64, policy Policy) FitPlan {
	numGaps := len(widths) - 1
	if numGaps < 0 {
		numGaps = 0
	}
	minGaps := make([]int, numGaps)
	unstretched := 0
	for i, w := range widths {
		unstretched += w
		if i < numGaps {
			minGaps[i] = spacingGap(w, spacing)
			unstretched += minGaps[i]
		}
	}

	plan := FitPlan{StretchFactor: 1}
	boxWidth := box.Dx()
	if policy.Mode != FitBoth || unstretched <= 0 {
		plan.CharWidths = append([]int(nil), widths...)
		plan.Gaps = minGaps
		plan.TotalWidth = unstretched
		plan.Origin.X = box.Min.X + floorDiv(boxWidth-unstretched, 2)
		return plan
	}

	stretch := float64(boxWidth) / float64(unstretched)
	if policy.MaxStretch > 0 && stretch > policy.MaxStretch {
		stretch = policy.MaxStretch
	}
	plan.StretchFactor = stretch
	plan.CharWidths = make([]int, len(widths))
	plan.Gaps = make([]int, numGaps)
	total := 0
	for i, w := range widths {
		plan.CharWidths[i] = floorScaled(w, stretch)
		total += plan.CharWidths[i]
	}
	for i, g := range minGaps {
		plan.Gaps[i] = floorScaled(g, stretch)
		total += plan.Gaps[i]
	}

	if policy.DistributeShortfall && numGaps > 0 && total < boxWidth {
		shortfall := boxWidth - total
		perGap, remainder := shortfall/numGaps, shortfall%numGaps
		for i := range plan.Gaps {
			plan.Gaps[i] += perGap
			if i < remainder {
				plan.Gaps[i]++
			}
		}
		total = boxWidth
	}
	plan.TotalWidth = total
	plan.Origin.X = box.Min.X + floorDiv(boxWidth-total, 2)
	return plan
}

// floorDiv rounds toward negative infinity.
func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
