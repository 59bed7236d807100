// Command cookiegen bakes light cookies from a softscene description.
//
// Usage:
//
//	cookiegen -scene room.yaml [-light Key,Fill] [-out Cookies] [flags]
//	cookiegen -info Cookies/cookiesyum_Key.png
//
// Settings persist in a preferences file between runs. Flags given on the
// command line override the stored values; -save-prefs writes them back.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"image/png"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gogpu/lightcookie"
	"github.com/gogpu/lightcookie/batch"
	"github.com/gogpu/lightcookie/cookiefile"
	"github.com/gogpu/lightcookie/prefs"
	"github.com/gogpu/lightcookie/softscene"
)

type options struct {
	scene     string
	lights    string
	prefsPath string
	info      string
	savePrefs bool
	reset     bool
	overwrite bool
	assign    bool
	preview   bool
	verbose   bool

	// settings overrides, applied only when given
	out        string
	name       string
	resolution int
	method     string
	radius     int
	iterations int
	opacity    float64
	brightness float64
	plane      float64
	useRange   bool
	ortho      float64
	rotation   string
	softRadius float64
	samples    int
}

func main() {
	var o options
	flag.StringVar(&o.scene, "scene", "", "scene description (YAML)")
	flag.StringVar(&o.lights, "light", "", "comma-separated light names (default: all)")
	flag.StringVar(&o.prefsPath, "prefs", "cookiegen.yaml", "preferences file")
	flag.StringVar(&o.info, "info", "", "print the settings stored with a cookie PNG and exit")
	flag.BoolVar(&o.savePrefs, "save-prefs", false, "write the effective settings back to the preferences file")
	flag.BoolVar(&o.reset, "reset", false, "start from factory settings instead of the preferences file")
	flag.BoolVar(&o.overwrite, "overwrite", true, "replace existing cookies")
	flag.BoolVar(&o.assign, "assign", false, "assign each cookie to its light")
	flag.BoolVar(&o.preview, "preview", false, "write low resolution previews instead of cookies")
	flag.BoolVar(&o.verbose, "v", false, "verbose logging")

	flag.StringVar(&o.out, "out", "", "output folder")
	flag.StringVar(&o.name, "name", "", "base file name")
	flag.IntVar(&o.resolution, "resolution", 0, "output size: 256, 512, 1024 or 2048")
	flag.StringVar(&o.method, "method", "", "smoothing: none, gaussian, box, median, penumbra")
	flag.IntVar(&o.radius, "radius", 0, "smoothing radius")
	flag.IntVar(&o.iterations, "iterations", 0, "smoothing passes")
	flag.Float64Var(&o.opacity, "opacity", 0, "shadow opacity [0,1]")
	flag.Float64Var(&o.brightness, "brightness", 0, "brightness lift [0,1]")
	flag.Float64Var(&o.plane, "plane", 0, "shadow plane distance")
	flag.BoolVar(&o.useRange, "use-range", false, "place the plane at 95% of a spot light's range")
	flag.Float64Var(&o.ortho, "ortho", 0, "orthographic half-size of the sensor")
	flag.StringVar(&o.rotation, "rotation", "", "rotation offset in degrees, x,y,z")
	flag.Float64Var(&o.softRadius, "soft-radius", 0, "soft shadow sample radius")
	flag.IntVar(&o.samples, "samples", 0, "soft shadow samples")
	flag.Parse()

	level := slog.LevelInfo
	if o.verbose {
		level = slog.LevelDebug
	}
	lightcookie.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, o); err != nil {
		log.Fatalf("cookiegen: %v", err)
	}
}

func run(ctx context.Context, o options) error {
	if o.info != "" {
		meta, err := cookiefile.LoadMetadata(o.info)
		if err != nil {
			return err
		}
		fmt.Println(meta.Summary())
		return nil
	}
	if o.scene == "" {
		flag.Usage()
		return errors.New("-scene is required")
	}

	store, err := prefs.Open(o.prefsPath)
	if err != nil {
		return err
	}
	settings := lightcookie.DefaultSettings()
	if !o.reset {
		if err := settings.LoadFrom(store); err != nil {
			return err
		}
	}
	if err := applyFlags(&settings, o); err != nil {
		return err
	}
	if err := settings.Validate(); err != nil {
		return err
	}

	scene, err := softscene.LoadScene(o.scene)
	if err != nil {
		return err
	}
	scene.SetSoftShadows(settings.ShadowSampleRadius, settings.ShadowSamples)

	lights, err := selectLights(scene, o.lights)
	if err != nil {
		return err
	}

	gen := lightcookie.NewGenerator(scene)
	var rep *batch.Report
	if o.preview {
		rep, err = previews(ctx, gen, lights, settings)
	} else {
		rep, err = batch.Run(ctx, gen, lights, settings, cookiefile.NewSaver(),
			batch.WithOverwrite(o.overwrite),
			batch.WithAutoAssign(o.assign),
			batch.WithProgress(func(i, n int, light string) {
				log.Printf("[%d/%d] %s", i+1, n, light)
			}),
		)
	}
	if rep != nil {
		for _, res := range rep.Results {
			switch {
			case res.Err != nil:
				log.Printf("%s: %v", res.Light, res.Err)
			case res.Path != "":
				log.Printf("%s: %s (%v)", res.Light, res.Path, res.Elapsed.Round(time.Millisecond))
			}
		}
		log.Printf("%v", rep.Stats)
	}
	if err != nil {
		return err
	}

	if o.savePrefs {
		settings.SaveTo(store)
		if err := store.Save(); err != nil {
			return err
		}
	}
	if rep != nil && len(rep.Failed()) > 0 && rep.Stats.Generated == 0 {
		return errors.New("no cookie generated")
	}
	return nil
}

// applyFlags copies every flag the user set into s.
func applyFlags(s *lightcookie.Settings, o options) error {
	var err error
	flag.Visit(func(f *flag.Flag) {
		if err != nil {
			return
		}
		switch f.Name {
		case "out":
			s.SavePath = o.out
		case "name":
			s.BaseName = o.name
		case "resolution":
			s.Resolution = o.resolution
		case "method":
			s.BlurMethod, err = lightcookie.ParseMethod(o.method)
		case "radius":
			s.BlurRadius = o.radius
		case "iterations":
			s.BlurIterations = o.iterations
		case "opacity":
			s.ShadowOpacity = o.opacity
		case "brightness":
			s.CookieBrightness = o.brightness
		case "plane":
			s.ShadowPlaneDistance = o.plane
		case "use-range":
			s.UseSpotlightRange = o.useRange
		case "ortho":
			s.OrthographicSize = o.ortho
		case "rotation":
			s.RotationOffset, err = parseVec3(o.rotation)
		case "soft-radius":
			s.ShadowSampleRadius = o.softRadius
		case "samples":
			s.ShadowSamples = o.samples
		}
	})
	return err
}

func parseVec3(s string) (lightcookie.Vec3, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return lightcookie.Vec3{}, fmt.Errorf("rotation %q: want x,y,z", s)
	}
	var v [3]float64
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return lightcookie.Vec3{}, fmt.Errorf("rotation %q: %w", s, err)
		}
		v[i] = f
	}
	return lightcookie.Vec3{X: v[0], Y: v[1], Z: v[2]}, nil
}

func selectLights(scene *softscene.Scene, names string) ([]lightcookie.Light, error) {
	var out []lightcookie.Light
	if names == "" {
		for _, l := range scene.Lights() {
			out = append(out, l)
		}
		if len(out) == 0 {
			return nil, errors.New("scene has no lights")
		}
		return out, nil
	}
	for _, name := range strings.Split(names, ",") {
		name = strings.TrimSpace(name)
		l, ok := scene.Light(name)
		if !ok {
			return nil, fmt.Errorf("no light named %q", name)
		}
		out = append(out, l)
	}
	return out, nil
}

// previews renders every light at preview size and writes the thumbnails
// as <out>/<base>_<light>_preview.png.
func previews(ctx context.Context, gen *lightcookie.Generator, lights []lightcookie.Light, s lightcookie.Settings) (*batch.Report, error) {
	rep, err := batch.Previews(ctx, gen, lights, s)
	if rep == nil {
		return nil, err
	}
	if mkErr := os.MkdirAll(s.SavePath, 0o755); mkErr != nil {
		return rep, mkErr
	}
	for i, res := range rep.Results {
		if res.Err != nil || res.Cookie == nil {
			continue
		}
		path := filepath.Join(s.SavePath, batch.FileName(s.BaseName, res.Light)+"_preview.png")
		if werr := writeThumbnail(path, res.Cookie); werr != nil {
			rep.Results[i].Err = werr
			continue
		}
		rep.Results[i].Path = path
	}
	return rep, err
}

func writeThumbnail(path string, buf *lightcookie.Buffer) error {
	f, err := os.Create(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return err
	}
	if err := png.Encode(f, cookiefile.Thumbnail(buf, lightcookie.PreviewResolution)); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
