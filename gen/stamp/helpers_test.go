package stamp

import (
	"image"
	"image/color"
	"image/draw"
	"testing"

	"golang.org/x/image/font/gofont/goregular"

	"github.com/nilapparel/nilgen/gen/common"
)

func testFont(tb testing.TB) *common.Font {
	tb.Helper()
	f, err := common.ParseFont("goregular", goregular.TTF)
	if err != nil {
		tb.Fatalf("ParseFont: %v", err)
	}
	return f
}

func filledCanvas(w, h int, c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
	return img
}

func cloneCanvas(img *image.RGBA) *image.RGBA {
	out := image.NewRGBA(img.Bounds())
	copy(out.Pix, img.Pix)
	return out
}

// changedOutside reports the first pixel outside keep that differs between a and b.
func changedOutside(a, b *image.RGBA, keep ...image.Rectangle) (image.Point, bool) {
	bounds := a.Bounds()
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
	next:
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			p := image.Pt(x, y)
			for _, r := range keep {
				if p.In(r) {
					continue next
				}
			}
			if a.RGBAAt(x, y) != b.RGBAAt(x, y) {
				return p, true
			}
		}
	}
	return image.Point{}, false
}

func countChanged(a, b *image.RGBA, in image.Rectangle) int {
	n := 0
	in = in.Intersect(a.Bounds())
	for y := in.Min.Y; y < in.Max.Y; y++ {
		for x := in.Min.X; x < in.Max.X; x++ {
			if a.RGBAAt(x, y) != b.RGBAAt(x, y) {
				n++
			}
		}
	}
	return n
}
