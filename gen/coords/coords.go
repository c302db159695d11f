// Package coords decodes a template bundle's coords.json: where each text
// field goes on the blank image and how it is styled.
package coords

import (
	"fmt"
	"image"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/nilapparel/nilgen/gen/common"
	"github.com/nilapparel/nilgen/gen/stamp"
)

const (
	defaultColor       = "#ffffff"
	defaultBorderColor = "#000000"
)

// Template holds the sections of a coords file.
type Template struct {
	Number    *Section `yaml:"Number"`
	FirstName *Section `yaml:"FirstName"`
	LastName  *Section `yaml:"LastName"`
	Sport     *Section `yaml:"Sport"`
	Lines     *Section `yaml:"Lines"`
}

// Section styles one field. Scalars may be written as strings or numbers.
type Section struct {
	Coords        []Int  `yaml:"coords"`
	YCoords       []Int  `yaml:"y-coords"`
	Color         string `yaml:"color"`
	Border        Bool   `yaml:"border"`
	BorderColor   string `yaml:"border_color"`
	BorderWidth   Int    `yaml:"border_width"`
	SpacingFactor Float  `yaml:"spacing_factor"`
	PaddingPct    *Float `yaml:"padding_pct"`
}

// Load reads a coords file.
func Load(filename string) (*Template, error) {
	var t Template
	if err := common.LoadYaml(filename, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

// Parse decodes coords data.
func Parse(data []byte) (*Template, error) {
	var t Template
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("parse coords: %w", err)
	}
	return &t, nil
}

// Rect returns the coords box, or an empty rectangle when it is missing.
func (s *Section) Rect() image.Rectangle {
	if s == nil || len(s.Coords) != 4 {
		return image.Rectangle{}
	}
	// Not image.Rect, which would swap inverted corners into a valid box.
	return image.Rectangle{
		Min: image.Pt(int(s.Coords[0]), int(s.Coords[1])),
		Max: image.Pt(int(s.Coords[2]), int(s.Coords[3])),
	}
}

// YRange returns the y-coords range, or an empty span when it is missing.
func (s *Section) YRange() stamp.Span {
	if s == nil || len(s.YCoords) != 2 {
		return stamp.Span{}
	}
	return stamp.Span{Start: int(s.YCoords[0]), End: int(s.YCoords[1])}
}

// HasYRange reports whether the section uses the decorative fill-height layout.
func (s *Section) HasYRange() bool {
	return s != nil && len(s.YCoords) == 2
}

// BoxStyle converts the section into a render style. A nil section gives a
// zero style, which the renderer rejects.
func (s *Section) BoxStyle() stamp.BoxStyle {
	if s == nil {
		return stamp.BoxStyle{}
	}
	return stamp.BoxStyle{
		Rect:          s.Rect(),
		Color:         orDefault(s.Color, defaultColor),
		Border:        bool(s.Border),
		BorderColor:   orDefault(s.BorderColor, defaultBorderColor),
		BorderWidth:   int(s.BorderWidth),
		SpacingFactor: float64(s.SpacingFactor),
		YRange:        s.YRange(),
	}
}

// LineStyle converts a Lines section. padding_pct falls back to defaultPct.
func (s *Section) LineStyle(defaultPct float64) *stamp.LineStyle {
	if s == nil {
		return nil
	}
	pct := defaultPct
	if s.PaddingPct != nil {
		pct = float64(*s.PaddingPct)
	}
	return &stamp.LineStyle{
		Rect:       s.Rect(),
		Color:      orDefault(s.Color, defaultColor),
		PaddingPct: pct,
	}
}

func orDefault(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}

// Int accepts 3, 3.0 or "3".
type Int int

// UnmarshalYAML implements yaml.Unmarshaler
func (i *Int) UnmarshalYAML(n *yaml.Node) error {
	v, err := scalar(n)
	if err != nil {
		return err
	}
	if iv, err := strconv.Atoi(v); err == nil {
		*i = Int(iv)
		return nil
	}
	fv, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fmt.Errorf("line %d: %q is not an integer", n.Line, n.Value)
	}
	*i = Int(int(fv))
	return nil
}

// Float accepts 0.1 or "0.1".
type Float float64

// UnmarshalYAML implements yaml.Unmarshaler
func (f *Float) UnmarshalYAML(n *yaml.Node) error {
	v, err := scalar(n)
	if err != nil {
		return err
	}
	fv, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fmt.Errorf("line %d: %q is not a number", n.Line, n.Value)
	}
	*f = Float(fv)
	return nil
}

// Bool accepts true, "True" or "true". Anything else is false.
type Bool bool

// UnmarshalYAML implements yaml.Unmarshaler
func (b *Bool) UnmarshalYAML(n *yaml.Node) error {
	v, err := scalar(n)
	if err != nil {
		return err
	}
	*b = Bool(strings.EqualFold(v, "true"))
	return nil
}

func scalar(n *yaml.Node) (string, error) {
	if n.Kind != yaml.ScalarNode {
		return "", fmt.Errorf("line %d: expected a scalar", n.Line)
	}
	return strings.TrimSpace(n.Value), nil
}
