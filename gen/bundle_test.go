package gen

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/pixiv/go-libjpeg/jpeg"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/nilapparel/nilgen/gen/common"
)

const testBundle = "Lions-Blue-Classic-2025"

const testCoords = `{
  "Number": {"coords": [150, 20, 250, 100], "color": "#ffffff", "border": "True",
             "border_color": "#000000", "border_width": "2"},
  "FirstName": {"y-coords": [110, 140], "color": "#ffffff"},
  "LastName": {"coords": [40, 150, 360, 210], "color": "#ffffff", "spacing_factor": "0.1"},
  "Sport": {"coords": [100, 230, 300, 270], "color": "#ffd700"},
  "Lines": {"coords": [20, 124, 380, 127], "color": "#ffffff"}
}`

var navy = color.RGBA{R: 10, G: 20, B: 80, A: 255}

func testConfig(t testing.TB) *common.Config {
	t.Helper()
	cfg := common.DefaultConfig()
	cfg.AssetsDir = t.TempDir()
	cfg.TemplatesDir = "../resources/www/templates"
	return cfg
}

// writeBundle creates a 400x300 template bundle under cfg.AssetsDir.
func writeBundle(t testing.TB, cfg *common.Config, name, coords string, jpg bool) string {
	t.Helper()
	dir := filepath.Join(cfg.AssetsDir, name)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	blank := image.NewRGBA(image.Rect(0, 0, 400, 300))
	for i := 0; i < len(blank.Pix); i += 4 {
		blank.Pix[i], blank.Pix[i+1], blank.Pix[i+2], blank.Pix[i+3] = navy.R, navy.G, navy.B, navy.A
	}
	blankName := cfg.Bundle.Blank
	if jpg {
		blankName = cfg.Bundle.BlankJpg
	}
	f, err := os.Create(filepath.Join(dir, blankName))
	if err != nil {
		t.Fatal(err)
	}
	if jpg {
		err = jpeg.Encode(f, blank, &jpeg.EncoderOptions{Quality: 95})
	} else {
		err = png.Encode(f, blank)
	}
	f.Close()
	if err != nil {
		t.Fatal(err)
	}

	files := map[string][]byte{
		cfg.Bundle.Coords:     []byte(coords),
		cfg.Bundle.TextFont:   goregular.TTF,
		cfg.Bundle.NumberFont: goregular.TTF,
	}
	for filename, data := range files {
		if err := os.WriteFile(filepath.Join(dir, filename), data, 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func TestLoadBundle(t *testing.T) {
	cfg := testConfig(t)
	dir := writeBundle(t, cfg, testBundle, testCoords, false)

	b, err := LoadBundle(cfg, testBundle)
	if err != nil {
		t.Fatalf("LoadBundle failed: %v", err)
	}
	if b.Name != testBundle || b.Dir != dir {
		t.Errorf("Wrong bundle %s at %s", b.Name, b.Dir)
	}
	if b.Blank.Bounds() != image.Rect(0, 0, 400, 300) || b.Blank.RGBAAt(5, 5) != navy {
		t.Errorf("Wrong blank %v", b.Blank.Bounds())
	}
	if b.Template.LastName == nil || b.TextFont == nil || b.NumberFont == nil {
		t.Errorf("Incomplete bundle %+v", b)
	}

	canvas := b.Canvas()
	canvas.Set(5, 5, color.White)
	if b.Blank.RGBAAt(5, 5) != navy {
		t.Error("Canvas shares pixels with the blank")
	}
}

func TestLoadBundle_Jpg(t *testing.T) {
	cfg := testConfig(t)
	writeBundle(t, cfg, testBundle, testCoords, true)
	b, err := LoadBundle(cfg, testBundle)
	if err != nil {
		t.Fatalf("LoadBundle failed: %v", err)
	}
	if b.Blank.Bounds().Dx() != 400 {
		t.Errorf("Wrong blank %v", b.Blank.Bounds())
	}
}

func TestLoadBundle_Errors(t *testing.T) {
	cfg := testConfig(t)
	writeBundle(t, cfg, testBundle, testCoords, false)
	writeBundle(t, cfg, "broken", `{"Number": [`, false)

	for _, name := range []string{"", "..", "missing", "../" + testBundle} {
		if _, err := LoadBundle(cfg, name); !errors.Is(err, ErrBundleNotFound) {
			t.Errorf("%q: got %v, want ErrBundleNotFound", name, err)
		}
	}
	if _, err := LoadBundle(cfg, "broken"); err == nil || errors.Is(err, ErrBundleNotFound) {
		t.Errorf("Expected a coords error, got %v", err)
	}
}

func TestBundleCache(t *testing.T) {
	cfg := testConfig(t)
	writeBundle(t, cfg, testBundle, testCoords, false)
	cache := newBundleCache(cfg)
	first, err := cache.get(testBundle)
	if err != nil {
		t.Fatal(err)
	}
	second, _ := cache.get(testBundle)
	if first != second {
		t.Error("Expected the same bundle")
	}
	if _, err := cache.get("missing"); !errors.Is(err, ErrBundleNotFound) {
		t.Errorf("got %v", err)
	}
}
