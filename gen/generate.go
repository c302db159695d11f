package gen

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/nilapparel/nilgen/gen/common"
	"github.com/nilapparel/nilgen/gen/roster"
	"github.com/nilapparel/nilgen/gen/stamp"
)

// ErrNoSection is returned when a row has text for a field its template does
// not place.
var ErrNoSection = errors.New("template has no section")

// Policies are the fitting policies used for one batch.
type Policies struct {
	Number          stamp.Policy
	FirstName       stamp.Policy
	FirstNameSimple stamp.Policy
	LastName        stamp.Policy
	Sport           stamp.Policy
}

// PoliciesFor applies the config overrides to the built-in policies.
func PoliciesFor(cfg *common.Config) Policies {
	apply := func(key string, p stamp.Policy) stamp.Policy {
		o, found := cfg.Policies[key]
		if !found {
			return p
		}
		p = p.WithMaxStretch(o.MaxStretch)
		if o.DistributeShortfall != nil {
			p = p.WithDistribution(*o.DistributeShortfall)
		}
		return p
	}
	return Policies{
		Number:          apply("Number", stamp.NumberPolicy),
		FirstName:       apply("FirstName", stamp.FirstNamePolicy),
		FirstNameSimple: apply("FirstName", stamp.SimpleFirstNamePolicy),
		LastName:        apply("LastName", stamp.LastNamePolicy),
		Sport:           apply("Sport", stamp.SportPolicy),
	}
}

// Result is the outcome of one row.
type Result struct {
	Order  roster.Order
	Bundle *Bundle
	Image  *image.RGBA
	Err    error
}

// RenderOrder draws one row onto a copy of the bundle's blank.
func RenderOrder(b *Bundle, o roster.Order, policies Policies, cfg *common.Config) (*image.RGBA, error) {
	canvas := b.Canvas()
	t := b.Template

	if o.Jersey != "" {
		if t.Number == nil {
			return nil, fmt.Errorf("%w: Number", ErrNoSection)
		}
		if _, err := stamp.Render(canvas, t.Number.BoxStyle(), o.Jersey, b.NumberFont,
			policies.Number); err != nil {
			return nil, err
		}
	}

	if o.FirstName != "" {
		if t.FirstName == nil {
			return nil, fmt.Errorf("%w: FirstName", ErrNoSection)
		}
		policy := policies.FirstNameSimple
		if t.FirstName.HasYRange() {
			policy = policies.FirstName
		}
		if _, err := stamp.RenderFirstName(canvas, t.FirstName.BoxStyle(),
			t.Lines.LineStyle(cfg.LinePaddingPct), o.FirstName, b.TextFont, policy); err != nil {
			return nil, err
		}
	}

	if o.LastName != "" {
		if t.LastName == nil {
			return nil, fmt.Errorf("%w: LastName", ErrNoSection)
		}
		if _, err := stamp.Render(canvas, t.LastName.BoxStyle(), o.LastName, b.TextFont,
			policies.LastName); err != nil {
			return nil, err
		}
	}

	if t.Sport == nil {
		return nil, fmt.Errorf("%w: Sport", ErrNoSection)
	}
	if _, err := stamp.Render(canvas, t.Sport.BoxStyle(), o.Sport, b.TextFont,
		policies.Sport); err != nil {
		return nil, err
	}
	return canvas, nil
}

// GenerateImages renders every row and keeps the images. Results keep the
// order of orders; failed rows are logged and carry their error.
func GenerateImages(orders []roster.Order, cfg *common.Config, log *common.Logger) []Result {
	return renderRows(orders, cfg, log, nil)
}

// SaveImages renders every row and writes it out as soon as it is drawn, so
// only the rows in flight are held in memory. Returned results carry no
// image. It also returns the number of files written.
func SaveImages(orders []roster.Order, cfg *common.Config, log *common.Logger) ([]Result, int) {
	var written int64
	results := renderRows(orders, cfg, log, func(r *Result) {
		n, err := saveResult(*r, cfg, log)
		atomic.AddInt64(&written, int64(n))
		if err != nil {
			r.Err = err
		}
		r.Image = nil
	})
	return results, int(written)
}

// Workers is the number of rows rendered at once.
func Workers(cfg *common.Config) int {
	if cfg.Workers > 0 {
		return cfg.Workers
	}
	return runtime.NumCPU()
}

// renderRows renders rows on at most Workers goroutines. done, when set, is
// called on the rendering goroutine for every row that produced an image.
func renderRows(orders []roster.Order, cfg *common.Config, log *common.Logger,
	done func(r *Result)) []Result {

	results := make([]Result, len(orders))
	bundles := newBundleCache(cfg)
	policies := PoliciesFor(cfg)

	sem := make(chan struct{}, Workers(cfg))
	var wg sync.WaitGroup
	for idx, order := range orders {
		wg.Add(1)
		sem <- struct{}{}
		go func(r *Result, order roster.Order) {
			defer func() {
				<-sem
				wg.Done()
			}()
			r.Order = order

			b, err := bundles.get(order.Bundle())
			if err != nil {
				log.Err("Row %d (%s): %v", order.Line, order.Name, err)
				r.Err = err
				return
			}
			r.Bundle = b

			img, err := RenderOrder(b, order, policies, cfg)
			if err != nil {
				log.Err("Row %d (%s): %v", order.Line, order.Name, err)
				r.Err = err
				return
			}
			r.Image = img
			if cfg.VerboseOutput {
				log.Dbg("Rendered row %d (%s) with %s", order.Line, order.Name, b.Name)
			}
			if done != nil {
				done(r)
			}
		}(&results[idx], order)
	}
	wg.Wait()
	return results
}

// OutputPath is where a row's png goes: cfg.OutputDir, or the bundle folder
// when that is empty.
func OutputPath(cfg *common.Config, r Result) string {
	dir := cfg.OutputDir
	if dir == "" && r.Bundle != nil {
		dir = r.Bundle.Dir
	}
	return filepath.Join(dir, r.Order.Name+cfg.OutputSuffix+".png")
}

// saveResult writes a rendered row as png, plus a jpg copy when WebPreview is
// on. It returns the number of files written.
func saveResult(r Result, cfg *common.Config, log *common.Logger) (int, error) {
	path := OutputPath(cfg, r)
	fail := func(format string, err error) (int, error) {
		err = fmt.Errorf(format, path, err)
		log.Err("Row %d (%s): %v", r.Order.Line, r.Order.Name, err)
		return 0, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fail("output dir for %s: %w", err)
	}
	var pngBytes bytes.Buffer
	if err := common.EncodePng(&pngBytes, r.Image); err != nil {
		return fail("encode %s: %w", err)
	}
	if err := os.WriteFile(path, pngBytes.Bytes(), 0o644); err != nil {
		return fail("write %s: %w", err)
	}
	log.Msg("Created style: %s", r.Order.Name)
	if !cfg.WebPreview {
		return 1, nil
	}

	jpgPath := strings.TrimSuffix(path, ".png") + ".jpg"
	jpg, err := common.EncodeJpg(r.Image, cfg.JpgQuality)
	if err != nil {
		n, err := fail("encode web copy of %s: %w", err)
		return n + 1, err
	}
	if err := os.WriteFile(jpgPath, jpg.Bytes(), 0o644); err != nil {
		n, err := fail("write web copy of %s: %w", err)
		return n + 1, err
	}
	return 2, nil
}
