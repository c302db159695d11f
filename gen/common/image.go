package common

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pixiv/go-libjpeg/jpeg"
)

// DecodeImage loads a png or jpg file into a fresh RGBA canvas.
func DecodeImage(filename string) (*image.RGBA, error) {
	r, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open: %w", err)
	}
	defer r.Close()

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".jpg", ".jpeg":
		img, err := jpeg.DecodeIntoRGBA(r, &jpeg.DecoderOptions{})
		if err != nil {
			return nil, fmt.Errorf("failed to decode %s: %w", filename, err)
		}
		return img, nil
	default:
		img, err := png.Decode(r)
		if err != nil {
			return nil, fmt.Errorf("failed to decode %s: %w", filename, err)
		}
		return ToRGBA(img), nil
	}
}

// ToRGBA copies img into a new RGBA image with the same bounds.
func ToRGBA(img image.Image) *image.RGBA {
	rgba := image.NewRGBA(img.Bounds())
	draw.Draw(rgba, rgba.Bounds(), img, img.Bounds().Min, draw.Src)
	return rgba
}

// EncodePng writes img as png
func EncodePng(w io.Writer, img image.Image) error {
	return png.Encode(w, img)
}

// EncodeJpg returns img as a jpg, flattened onto white since jpg has no alpha
func EncodeJpg(img image.Image, quality int) (bytes.Buffer, error) {
	flat := image.NewRGBA(img.Bounds())
	draw.Draw(flat, flat.Bounds(), image.White, image.Point{}, draw.Src)
	draw.Draw(flat, flat.Bounds(), img, img.Bounds().Min, draw.Over)

	var imgBytes bytes.Buffer
	err := jpeg.Encode(&imgBytes, flat, &jpeg.EncoderOptions{Quality: quality})
	if err != nil {
		return imgBytes, fmt.Errorf("jpeg encode failed: %w", err)
	}
	return imgBytes, nil
}

// ParseHexColor parses #rgb, #rrggbb or #rrggbbaa
func ParseHexColor(s string) (color.NRGBA, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) == 6 {
		hex += "ff"
	}
	if len(hex) != 8 || !strings.HasPrefix(strings.TrimSpace(s), "#") {
		return color.NRGBA{}, fmt.Errorf("invalid hex colour %q", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid hex colour %q", s)
	}
	return color.NRGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}
