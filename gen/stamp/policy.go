package stamp

import "fmt"

// FitMode selects how a string is placed in its box.
type FitMode int

const (
	// FitCenter sizes to the box height and centres without stretching.
	FitCenter FitMode = iota
	// FitHeight composes a strip, stretches it vertically to the range and
	// centres it on the canvas.
	FitHeight
	// FitBoth sizes to the box height, then stretches glyphs and widens gaps
	// to fill the box width.
	FitBoth
)

func (m FitMode) String() string {
	switch m {
	case FitCenter:
		return "center"
	case FitHeight:
		return "fill-height"
	case FitBoth:
		return "fill-both"
	default:
		return fmt.Sprintf("FitMode(%d)", int(m))
	}
}

// VerticalMode selects the block height used when composing a strip.
type VerticalMode int

const (
	// VerticalSimple uses the tallest glyph ink.
	VerticalSimple VerticalMode = iota
	// VerticalAscentDescent uses the face ascent plus descent.
	VerticalAscentDescent
)

// Policy is a named fitting strategy.
type Policy struct {
	Name                string
	Mode                FitMode
	MaxStretch          float64
	DistributeShortfall bool
	Vertical            VerticalMode
}

var (
	// NumberPolicy centres the jersey number.
	NumberPolicy = Policy{Name: "number", Mode: FitCenter, MaxStretch: 1}
	// SimpleFirstNamePolicy centres the first name in a box.
	SimpleFirstNamePolicy = Policy{Name: "first-name-simple", Mode: FitCenter, MaxStretch: 1}
	// FirstNamePolicy is the decorative, vertically stretched first name.
	FirstNamePolicy = Policy{Name: "first-name", Mode: FitHeight, MaxStretch: 1,
		Vertical: VerticalAscentDescent}
	// LastNamePolicy fills the last name box.
	LastNamePolicy = Policy{Name: "last-name", Mode: FitBoth, MaxStretch: 5,
		DistributeShortfall: true}
	// SportPolicy fills the sport box.
	SportPolicy = Policy{Name: "sport", Mode: FitBoth, MaxStretch: 2.4,
		DistributeShortfall: true}
)

// WithMaxStretch returns a copy of p with a different stretch cap. Values <= 0
// leave the policy unchanged.
func (p Policy) WithMaxStretch(max float64) Policy {
	if max > 0 {
		p.MaxStretch = max
	}
	return p
}

// WithDistribution returns a copy of p with shortfall distribution toggled.
func (p Policy) WithDistribution(on bool) Policy {
	p.DistributeShortfall = on
	return p
}

func (p Policy) String() string {
	return fmt.Sprintf("%s(%s max=%.2f distribute=%t)", p.Name, p.Mode, p.MaxStretch,
		p.DistributeShortfall)
}
