package batch

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gogpu/lightcookie"
	"github.com/gogpu/lightcookie/cookiefile"
)

// ErrUnsupportedLight marks a light whose type cannot carry a cookie or
// that has nothing to capture from.
var ErrUnsupportedLight = errors.New("batch: light cannot take a cookie")

// Sink stores a generated cookie and returns where it went.
// *cookiefile.Saver is the usual implementation.
type Sink interface {
	Save(buf *lightcookie.Buffer, meta lightcookie.Metadata, dir, name string, overwrite bool) (string, error)
}

var _ Sink = (*cookiefile.Saver)(nil)

// Result is the outcome for one light.
type Result struct {
	Light   string
	Path    string
	Err     error
	Elapsed time.Duration

	// Cookie is set for previews.
	Cookie *lightcookie.Buffer
}

// Skipped reports whether the light was not generated at all.
func (r Result) Skipped() bool {
	return errors.Is(r.Err, ErrUnsupportedLight) || errors.Is(r.Err, context.Canceled) ||
		errors.Is(r.Err, context.DeadlineExceeded)
}

// Report is the outcome of a batch.
type Report struct {
	Results []Result
	Stats   *Stats
}

// Failed returns the results that carry an error.
func (r *Report) Failed() []Result {
	var out []Result
	for _, res := range r.Results {
		if res.Err != nil {
			out = append(out, res)
		}
	}
	return out
}

type config struct {
	dir        string
	overwrite  bool
	autoAssign bool
	progress   func(i, n int, light string)
}

// Option configures Run.
type Option func(*config)

// WithDir saves into dir instead of Settings.SavePath.
func WithDir(dir string) Option {
	return func(c *config) { c.dir = dir }
}

// WithOverwrite controls whether existing files are replaced. Batches
// overwrite by default.
func WithOverwrite(v bool) Option {
	return func(c *config) { c.overwrite = v }
}

// WithAutoAssign assigns each saved cookie to its light.
func WithAutoAssign(v bool) Option {
	return func(c *config) { c.autoAssign = v }
}

// WithProgress calls fn before each light is processed.
func WithProgress(fn func(i, n int, light string)) Option {
	return func(c *config) { c.progress = fn }
}

// Run generates and saves a cookie for every light with the shared
// settings. Output names are FileName(settings.BaseName, light.Name()).
//
// Run returns ctx.Err() if it stopped early; the lights it never reached are
// reported with that error. Per-light failures do not stop the run.
func Run(ctx context.Context, gen *lightcookie.Generator, lights []lightcookie.Light, settings lightcookie.Settings, sink Sink, opts ...Option) (*Report, error) {
	cfg := config{dir: settings.SavePath, overwrite: true}
	for _, opt := range opts {
		opt(&cfg)
	}
	if sink == nil {
		sink = cookiefile.NewSaver()
	}

	meta := lightcookie.MetadataFromSettings(settings)
	return each(ctx, lights, settings, cfg.progress, func(light lightcookie.Light) (Result, error) {
		res := Result{Light: light.Name()}
		buf, err := gen.GenerateWithSettings(settings, light)
		if err != nil {
			return res, err
		}
		name := FileName(settings.BaseName, light.Name())
		res.Path, err = sink.Save(buf, meta, cfg.dir, name, cfg.overwrite)
		if err != nil {
			return res, err
		}
		if cfg.autoAssign {
			light.SetCookie(buf)
		}
		return res, nil
	})
}

// Previews renders a PreviewResolution cookie for every light without
// saving anything.
func Previews(ctx context.Context, gen *lightcookie.Generator, lights []lightcookie.Light, settings lightcookie.Settings) (*Report, error) {
	return each(ctx, lights, settings, nil, func(light lightcookie.Light) (Result, error) {
		buf, err := gen.Preview(settings, light)
		return Result{Light: light.Name(), Cookie: buf}, err
	})
}

func each(ctx context.Context, lights []lightcookie.Light, settings lightcookie.Settings, progress func(int, int, string), fn func(lightcookie.Light) (Result, error)) (*Report, error) {
	log := lightcookie.Logger()
	rep := &Report{Stats: newStats()}

	for i, light := range lights {
		if light == nil {
			continue
		}
		if err := ctx.Err(); err != nil {
			for _, rest := range lights[i:] {
				if rest != nil {
					rep.Results = append(rep.Results, Result{Light: rest.Name(), Err: err})
					rep.Stats.Skipped++
				}
			}
			log.Info("batch: cancelled", "remaining", len(lights)-i, "err", err)
			return rep, err
		}
		if progress != nil {
			progress(i, len(lights), light.Name())
		}

		if !settings.CanGenerate(light) {
			rep.Results = append(rep.Results, Result{
				Light: light.Name(),
				Err:   fmt.Errorf("%w: %q (%v)", ErrUnsupportedLight, light.Name(), light.Type()),
			})
			rep.Stats.Skipped++
			continue
		}

		start := time.Now()
		res, err := fn(light)
		res.Elapsed = time.Since(start)
		res.Err = err
		rep.Results = append(rep.Results, res)

		if err != nil {
			rep.Stats.Failed++
			log.Warn("batch: light failed", "light", light.Name(), "err", err)
			continue
		}
		rep.Stats.Generated++
		rep.Stats.record(res.Elapsed)
		log.Info("batch: generated", "light", light.Name(), "path", res.Path, "elapsed", res.Elapsed)
	}

	log.Debug("batch: done", "stats", rep.Stats.String())
	return rep, nil
}
