package gen

import (
	"errors"
	"fmt"
	"image"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/nilapparel/nilgen/gen/common"
	"github.com/nilapparel/nilgen/gen/coords"
)

// ErrBundleNotFound is returned when no folder matches an order's bundle name.
var ErrBundleNotFound = errors.New("template bundle not found")

// Bundle is a loaded template folder: the blank image, the coords and the
// two fonts.
type Bundle struct {
	Name       string
	Dir        string
	Blank      *image.RGBA
	Template   *coords.Template
	TextFont   *common.Font
	NumberFont *common.Font
}

// LoadBundle loads the bundle folder name under cfg.AssetsDir. The png blank
// is preferred over the jpg one.
func LoadBundle(cfg *common.Config, name string) (*Bundle, error) {
	if name == "" || name != filepath.Base(name) || name == ".." {
		return nil, fmt.Errorf("%w: %q", ErrBundleNotFound, name)
	}
	dir := filepath.Join(cfg.AssetsDir, name)
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrBundleNotFound, dir)
	}

	blankPath := filepath.Join(dir, cfg.Bundle.Blank)
	if _, err := os.Stat(blankPath); errors.Is(err, fs.ErrNotExist) {
		blankPath = filepath.Join(dir, cfg.Bundle.BlankJpg)
	}
	blank, err := common.DecodeImage(blankPath)
	if err != nil {
		return nil, fmt.Errorf("bundle %s: blank: %w", name, err)
	}
	tmpl, err := coords.Load(filepath.Join(dir, cfg.Bundle.Coords))
	if err != nil {
		return nil, fmt.Errorf("bundle %s: %w", name, err)
	}
	textFont, err := common.LoadFont(filepath.Join(dir, cfg.Bundle.TextFont))
	if err != nil {
		return nil, fmt.Errorf("bundle %s: %w", name, err)
	}
	numberFont, err := common.LoadFont(filepath.Join(dir, cfg.Bundle.NumberFont))
	if err != nil {
		return nil, fmt.Errorf("bundle %s: %w", name, err)
	}

	return &Bundle{
		Name:       name,
		Dir:        dir,
		Blank:      blank,
		Template:   tmpl,
		TextFont:   textFont,
		NumberFont: numberFont,
	}, nil
}

// Canvas returns a copy of the blank to draw on.
func (b *Bundle) Canvas() *image.RGBA {
	return common.ToRGBA(b.Blank)
}

// bundleCache loads each bundle once for a batch of rows.
type bundleCache struct {
	cfg     *common.Config
	mu      sync.Mutex
	entries map[string]*bundleEntry
}

type bundleEntry struct {
	once   sync.Once
	bundle *Bundle
	err    error
}

func newBundleCache(cfg *common.Config) *bundleCache {
	return &bundleCache{cfg: cfg, entries: make(map[string]*bundleEntry)}
}

func (c *bundleCache) get(name string) (*Bundle, error) {
	c.mu.Lock()
	entry, found := c.entries[name]
	if !found {
		entry = new(bundleEntry)
		c.entries[name] = entry
	}
	c.mu.Unlock()

	entry.once.Do(func() {
		entry.bundle, entry.err = LoadBundle(c.cfg, name)
	})
	return entry.bundle, entry.err
}
