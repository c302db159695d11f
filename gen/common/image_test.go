package common

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/pixiv/go-libjpeg/jpeg"
)

func createDummyImage(width, height int, c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func TestDecodeImage_Png(t *testing.T) {
	path := filepath.Join(t.TempDir(), "blank.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	red := color.RGBA{R: 255, A: 255}
	if err := png.Encode(f, createDummyImage(40, 20, red)); err != nil {
		t.Fatal(err)
	}
	f.Close()

	img, err := DecodeImage(path)
	if err != nil {
		t.Fatalf("DecodeImage failed: %v", err)
	}
	if img.Bounds() != image.Rect(0, 0, 40, 20) {
		t.Errorf("Wrong bounds %v", img.Bounds())
	}
	if got := img.RGBAAt(10, 10); got != red {
		t.Errorf("Wrong pixel %v", got)
	}
}

func TestDecodeImage_Jpg(t *testing.T) {
	path := filepath.Join(t.TempDir(), "blank.jpg")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := jpeg.Encode(f, createDummyImage(64, 32, color.White), &jpeg.EncoderOptions{Quality: 90}); err != nil {
		t.Fatal(err)
	}
	f.Close()

	img, err := DecodeImage(path)
	if err != nil {
		t.Fatalf("DecodeImage failed: %v", err)
	}
	if img.Bounds().Dx() != 64 || img.Bounds().Dy() != 32 {
		t.Errorf("Wrong bounds %v", img.Bounds())
	}
	if got := img.RGBAAt(5, 5); got.R < 250 || got.A != 255 {
		t.Errorf("Expected white, got %v", got)
	}
}

func TestDecodeImage_Errors(t *testing.T) {
	if _, err := DecodeImage(filepath.Join(t.TempDir(), "missing.png")); err == nil {
		t.Error("Expected error for missing file")
	}
	path := filepath.Join(t.TempDir(), "junk.png")
	if err := os.WriteFile(path, []byte("junk"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := DecodeImage(path); err == nil {
		t.Error("Expected error for junk file")
	}
}

func TestEncodeJpg(t *testing.T) {
	// Transparent pixels come out white
	buf, err := EncodeJpg(image.NewRGBA(image.Rect(0, 0, 16, 16)), 80)
	if err != nil {
		t.Fatalf("EncodeJpg failed: %v", err)
	}
	img, err := jpeg.Decode(bytes.NewReader(buf.Bytes()), &jpeg.DecoderOptions{})
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if r, _, _, _ := img.At(8, 8).RGBA(); r>>8 < 250 {
		t.Errorf("Expected white, got %v", img.At(8, 8))
	}
}

func TestEncodePng(t *testing.T) {
	var buf bytes.Buffer
	src := createDummyImage(8, 8, color.RGBA{B: 255, A: 255})
	if err := EncodePng(&buf, src); err != nil {
		t.Fatalf("EncodePng failed: %v", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if _, _, b, _ := img.At(3, 3).RGBA(); b>>8 != 255 {
		t.Errorf("Expected blue, got %v", img.At(3, 3))
	}
}

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		in      string
		want    color.NRGBA
		wantErr bool
	}{
		{"#ffffff", color.NRGBA{255, 255, 255, 255}, false},
		{"#000", color.NRGBA{0, 0, 0, 255}, false},
		{"#1a2B3c", color.NRGBA{0x1a, 0x2b, 0x3c, 255}, false},
		{" #ff000080 ", color.NRGBA{255, 0, 0, 0x80}, false},
		{"ffffff", color.NRGBA{}, true},
		{"#ffff", color.NRGBA{}, true},
		{"#zzzzzz", color.NRGBA{}, true},
		{"", color.NRGBA{}, true},
	}
	for _, test := range tests {
		got, err := ParseHexColor(test.in)
		if (err != nil) != test.wantErr {
			t.Errorf("ParseHexColor(%q) error = %v, wantErr %v", test.in, err, test.wantErr)
			continue
		}
		if got != test.want {
			t.Errorf("ParseHexColor(%q) = %v, want %v", test.in, got, test.want)
		}
	}
}
