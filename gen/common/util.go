package common

import (
	"fmt"
	"log"
	"os"
	"sync"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"gopkg.in/yaml.v3"
)

// LoadYaml loads Yaml file into out. JSON files load too since JSON is Yaml.
func LoadYaml(filename string, out interface{}) error {
	yamlData, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("read %s: %w", filename, err)
	}
	if err := yaml.Unmarshal(yamlData, out); err != nil {
		return fmt.Errorf("unmarshal %s: %w", filename, err)
	}
	return nil
}

// YamlObjectAsString outputs contents of yaml object with a label
func YamlObjectAsString(in interface{}, label string) string {
	d, err := yaml.Marshal(in)
	if err != nil {
		log.Fatalf("error: yaml.Marshal %v", err)
	}
	return fmt.Sprintf("=== %s ===\n%s\n\n", label, string(d))
}

// Font is a parsed scalable font. TrueType outlines go through freetype,
// CFF (.otf) outlines through opentype. Safe to share between goroutines;
// the faces it returns are not.
type Font struct {
	Name string
	ttf  *truetype.Font
	otf  *opentype.Font
}

// ParseFont parses TrueType or OpenType font data.
func ParseFont(name string, data []byte) (*Font, error) {
	if ttf, err := truetype.Parse(data); err == nil {
		return &Font{Name: name, ttf: ttf}, nil
	}
	otf, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse font %s: %w", name, err)
	}
	return &Font{Name: name, otf: otf}, nil
}

// Face returns a face at size pixels (points at 72 DPI).
func (f *Font) Face(size int) (font.Face, error) {
	if f.ttf != nil {
		return truetype.NewFace(f.ttf, &truetype.Options{Size: float64(size)}), nil
	}
	return opentype.NewFace(f.otf, &opentype.FaceOptions{Size: float64(size), DPI: 72})
}

var fontCache sync.Map

// LoadFont loads a font into memory and returns it. Parsed fonts are kept for
// the life of the process.
func LoadFont(path string) (*Font, error) {
	if v, found := fontCache.Load(path); found {
		return v.(*Font), nil
	}
	fontBytes, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load font: %w", err)
	}
	f, err := ParseFont(path, fontBytes)
	if err != nil {
		return nil, err
	}
	actual, _ := fontCache.LoadOrStore(path, f)
	return actual.(*Font), nil
}
