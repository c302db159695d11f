package stamp

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/fogleman/gg"
	"github.com/nfnt/resize"
)

// glyphStamp is one glyph rasterized in both colours, ready to paste.
type glyphStamp struct {
	fill   image.Image
	border image.Image
	at     image.Point
}

type compositor struct {
	m     *Measurer
	size  int
	paint paint
	// borderWidth is zero when no outline is stamped.
	borderWidth int
}

func newCompositor(m *Measurer, size int, p paint, style BoxStyle) *compositor {
	c := &compositor{m: m, size: size, paint: p}
	if style.stampsBorder() {
		c.borderWidth = style.BorderWidth
	}
	return c
}

// rasterize draws r alone into a transparent buffer at least twice the font
// size in each dimension and returns the buffer cropped to the glyph's ink box.
func (c *compositor) rasterize(r rune, g GlyphMetric, clr color.Color) (image.Image, error) {
	if !g.Inked {
		return nil, nil
	}
	face, err := c.m.Face(c.size)
	if err != nil {
		return nil, err
	}
	pad := c.size/2 + 1
	w := max(g.Width+2*pad, 2*c.size)
	h := max(g.Height+2*pad, 2*c.size)
	dc := gg.NewContext(w, h)
	dc.SetFontFace(face)
	dc.SetColor(clr)
	dc.DrawString(string(r), float64(pad-g.Left), float64(pad-g.Top))
	crop := image.Rect(pad, pad, pad+g.Width, pad+g.Height)
	return dc.Image().(*image.RGBA).SubImage(crop), nil
}

// glyph builds the stamp for r, stretched to size when size is not empty.
func (c *compositor) glyph(r rune, g GlyphMetric, at image.Point, size image.Point) (glyphStamp, error) {
	s := glyphStamp{at: at}
	fill, err := c.rasterize(r, g, c.paint.fill)
	if err != nil || fill == nil {
		return s, err
	}
	s.fill = stretch(fill, size)
	if c.borderWidth > 0 {
		border, err := c.rasterize(r, g, c.paint.border)
		if err != nil {
			return s, err
		}
		s.border = stretch(border, size)
	}
	return s, nil
}

// stamp pastes every glyph once per border offset in the border colour,
// then once more in the fill colour on top.
func (c *compositor) stamp(dst draw.Image, stamps []glyphStamp) {
	bw := c.borderWidth
	if bw > 0 {
		for dx := -bw; dx <= bw; dx++ {
			for dy := -bw; dy <= bw; dy++ {
				if dx == 0 && dy == 0 {
					continue
				}
				offset := image.Pt(dx, dy)
				for _, s := range stamps {
					paste(dst, s.border, s.at.Add(offset))
				}
			}
		}
	}
	for _, s := range stamps {
		paste(dst, s.fill, s.at)
	}
}

// stretch resizes img to size with Lanczos3. A zero size keeps img as is.
func stretch(img image.Image, size image.Point) image.Image {
	if img == nil || size == (image.Point{}) {
		return img
	}
	if size.X <= 0 || size.Y <= 0 {
		return nil
	}
	if img.Bounds().Size() == size {
		return img
	}
	return resize.Resize(uint(size.X), uint(size.Y), img, resize.Lanczos3)
}

// paste composites src over dst with its top-left corner at at, using the
// source alpha as the mask.
func paste(dst draw.Image, src image.Image, at image.Point) {
	if src == nil {
		return
	}
	b := src.Bounds()
	draw.Draw(dst, image.Rectangle{Min: at, Max: at.Add(b.Size())}, src, b.Min, draw.Over)
}
