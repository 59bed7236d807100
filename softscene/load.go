package softscene

import (
	"fmt"
	"os"
	"strings"

	"gonum.org/v1/gonum/spatial/r3"
	"gopkg.in/yaml.v2"

	"github.com/gogpu/lightcookie"
)

// sceneFile is the YAML layout read by LoadScene.
type sceneFile struct {
	SoftShadows struct {
		Radius  float64 `yaml:"radius"`
		Samples int     `yaml:"samples"`
	} `yaml:"softShadows"`
	Lights    []lightFile    `yaml:"lights"`
	Occluders []occluderFile `yaml:"occluders"`
}

type lightFile struct {
	Name      string           `yaml:"name"`
	Type      string           `yaml:"type"`
	Position  lightcookie.Vec3 `yaml:"position"`
	Rotation  lightcookie.Vec3 `yaml:"rotation"`
	Range     float64          `yaml:"range"`
	Intensity *float64         `yaml:"intensity"`
	Shadows   string           `yaml:"shadows"`
	Disabled  bool             `yaml:"disabled"`
	Detached  bool             `yaml:"detached"`
}

type occluderFile struct {
	Name     string           `yaml:"name"`
	Shape    string           `yaml:"shape"`
	Center   lightcookie.Vec3 `yaml:"center"`
	Rotation lightcookie.Vec3 `yaml:"rotation"`
	Size     float64          `yaml:"size"`
	Radius   float64          `yaml:"radius"`
	Opacity  *float64         `yaml:"opacity"`
	Casting  string           `yaml:"casting"`
}

// LoadScene reads a scene description from a YAML file.
func LoadScene(path string) (*Scene, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return nil, fmt.Errorf("softscene: %w", err)
	}
	s, err := ParseScene(data)
	if err != nil {
		return nil, fmt.Errorf("softscene: %s: %w", path, err)
	}
	return s, nil
}

// ParseScene builds a scene from YAML.
func ParseScene(data []byte) (*Scene, error) {
	var f sceneFile
	if err := yaml.UnmarshalStrict(data, &f); err != nil {
		return nil, err
	}

	s := New()
	if f.SoftShadows.Samples > 0 {
		s.SetSoftShadows(f.SoftShadows.Radius, f.SoftShadows.Samples)
	}

	for i, lf := range f.Lights {
		l, err := lf.build()
		if err != nil {
			return nil, fmt.Errorf("light %d: %w", i, err)
		}
		s.AddLight(l)
	}
	for i, of := range f.Occluders {
		o, err := of.build()
		if err != nil {
			return nil, fmt.Errorf("occluder %d: %w", i, err)
		}
		s.AddOccluder(o)
	}
	return s, nil
}

func (lf lightFile) build() (*Light, error) {
	if lf.Name == "" {
		return nil, fmt.Errorf("missing name")
	}
	typ, err := parseLightType(lf.Type)
	if err != nil {
		return nil, err
	}

	opts := []LightOption{
		WithTransform(lightcookie.NewTransform(vec(lf.Position), lf.Rotation)),
	}
	if lf.Range > 0 {
		opts = append(opts, WithRange(lf.Range))
	}
	if lf.Intensity != nil {
		opts = append(opts, WithIntensity(*lf.Intensity))
	}
	if lf.Shadows != "" {
		m, err := parseShadowMode(lf.Shadows)
		if err != nil {
			return nil, err
		}
		opts = append(opts, WithShadows(m))
	}
	if lf.Disabled {
		opts = append(opts, Disabled())
	}
	if lf.Detached {
		opts = append(opts, WithoutTransform())
	}
	return NewLight(lf.Name, typ, opts...), nil
}

func (of occluderFile) build() (*Occluder, error) {
	var o *Occluder
	switch strings.ToLower(of.Shape) {
	case "", "sphere":
		r := of.Radius
		if r == 0 {
			r = of.Size
		}
		if r <= 0 {
			return nil, fmt.Errorf("sphere radius must be positive")
		}
		o = Sphere(vec(of.Center), r)
	case "quad":
		if of.Size <= 0 {
			return nil, fmt.Errorf("quad size must be positive")
		}
		o = Quad(lightcookie.NewTransform(vec(of.Center), of.Rotation), of.Size)
	default:
		return nil, fmt.Errorf("unknown shape %q", of.Shape)
	}

	if of.Name != "" {
		o.Name = of.Name
	}
	if of.Opacity != nil {
		if *of.Opacity < 0 || *of.Opacity > 1 {
			return nil, fmt.Errorf("opacity %v outside [0,1]", *of.Opacity)
		}
		o.Opacity = *of.Opacity
	}
	if of.Casting != "" {
		c, err := parseCasting(of.Casting)
		if err != nil {
			return nil, err
		}
		o.SetShadowCasting(c)
	}
	return o, nil
}

func vec(v lightcookie.Vec3) r3.Vec {
	return r3.Vec{X: v.X, Y: v.Y, Z: v.Z}
}

func parseLightType(s string) (lightcookie.LightType, error) {
	switch strings.ToLower(s) {
	case "", "spot":
		return lightcookie.LightSpot, nil
	case "directional":
		return lightcookie.LightDirectional, nil
	case "point":
		return lightcookie.LightPoint, nil
	}
	return 0, fmt.Errorf("unknown light type %q", s)
}

func parseShadowMode(s string) (lightcookie.ShadowMode, error) {
	switch strings.ToLower(s) {
	case "none":
		return lightcookie.ShadowsNone, nil
	case "hard":
		return lightcookie.ShadowsHard, nil
	case "soft":
		return lightcookie.ShadowsSoft, nil
	}
	return 0, fmt.Errorf("unknown shadow mode %q", s)
}

func parseCasting(s string) (lightcookie.ShadowCasting, error) {
	switch strings.ToLower(s) {
	case "off":
		return lightcookie.CastingOff, nil
	case "on":
		return lightcookie.CastingOn, nil
	case "twosided", "two_sided":
		return lightcookie.CastingTwoSided, nil
	case "shadowsonly", "shadows_only":
		return lightcookie.CastingShadowsOnly, nil
	}
	return 0, fmt.Errorf("unknown shadow casting %q", s)
}
