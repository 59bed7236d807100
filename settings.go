package lightcookie

import (
	"encoding/json"
	"fmt"

	"github.com/gogpu/lightcookie/prefs"
)

// PrefsPrefix namespaces every preference key written by Settings.
const PrefsPrefix = "CookieGenerator_"

// Settings is the full user configuration of the generator.
type Settings struct {
	// Render
	UseSpotlightRange   bool
	ShadowPlaneDistance float64
	ShadowOpacity       float64
	CookieBrightness    float64

	// Quality. The sample fields are recorded in metadata for the host's
	// soft shadow filtering; the core does not read them.
	ShadowSampleRadius float64
	ShadowSamples      int
	BlurMethod         Method
	BlurRadius         int
	BlurIterations     int

	// Sensor
	RotationOffset   Vec3
	OrthographicSize float64

	// Output
	BaseName    string
	Resolution  int
	SavePath    string
	ShowPreview bool
}

// DefaultSettings returns the factory configuration.
func DefaultSettings() Settings {
	var s Settings
	s.Reset()
	return s
}

// Reset restores every field to its factory value.
func (s *Settings) Reset() {
	*s = Settings{
		UseSpotlightRange:   false,
		ShadowPlaneDistance: 10,
		ShadowOpacity:       1,
		CookieBrightness:    0,
		ShadowSampleRadius:  0.2,
		ShadowSamples:       12,
		BlurMethod:          MethodGaussian,
		BlurRadius:          3,
		BlurIterations:      1,
		OrthographicSize:    10,
		BaseName:            "cookiesyum",
		Resolution:          512,
		SavePath:            "Assets/Art/Cookies",
		ShowPreview:         true,
	}
}

// Calibration returns the mask calibration part of the settings.
func (s Settings) Calibration() MaskCalibration {
	return MaskCalibration{
		ShadowOpacity:  s.ShadowOpacity,
		BrightnessLift: s.CookieBrightness,
	}
}

// Smoothing returns the smoothing part of the settings.
func (s Settings) Smoothing() SmoothingSpec {
	return SmoothingSpec{
		Method:     s.BlurMethod,
		Radius:     s.BlurRadius,
		Iterations: s.BlurIterations,
	}
}

// RenderOptions returns the sensor part of the settings.
func (s Settings) RenderOptions() RenderOptions {
	return RenderOptions{
		RotationOffset: s.RotationOffset,
		HalfExtent:     s.OrthographicSize,
		Resolution:     s.Resolution,
		PlaneDistance:  s.ShadowPlaneDistance,
		UseLightRange:  s.UseSpotlightRange,
	}
}

// RenderSpec builds the capture spec for light.
func (s Settings) RenderSpec(light Light) (RenderSpec, error) {
	return NewRenderSpec(light, s.RenderOptions())
}

// Validate checks every field the pipeline consumes.
func (s Settings) Validate() error {
	if err := s.Calibration().Validate(); err != nil {
		return err
	}
	if err := s.Smoothing().Validate(); err != nil {
		return err
	}
	if !ValidResolution(s.Resolution) {
		return invalidf("resolution %d not one of %v", s.Resolution, Resolutions)
	}
	if s.ShadowSamples < 1 || s.ShadowSamples > 24 {
		return invalidf("shadow samples %d outside [1,24]", s.ShadowSamples)
	}
	return nil
}

// CanGenerate reports whether light can be captured with these settings.
func (s Settings) CanGenerate(light Light) bool {
	if light == nil || !light.Type().SupportsCookies() {
		return false
	}
	_, ok := light.Transform()
	return ok
}

func key(name string) string { return PrefsPrefix + name }

// SaveTo writes every field to store.
func (s Settings) SaveTo(store prefs.Store) {
	store.SetBool(key("useSpotlightRange"), s.UseSpotlightRange)
	store.SetFloat(key("shadowPlaneDistance"), s.ShadowPlaneDistance)
	store.SetFloat(key("shadowOpacity"), s.ShadowOpacity)
	store.SetFloat(key("cookieBrightness"), s.CookieBrightness)
	store.SetFloat(key("shadowSampleRadius"), s.ShadowSampleRadius)
	store.SetInt(key("shadowSamples"), s.ShadowSamples)
	store.SetInt(key("blurMethod"), int(s.BlurMethod))
	store.SetInt(key("blurRadius"), s.BlurRadius)
	store.SetInt(key("blurIterations"), s.BlurIterations)
	store.SetString(key("rotationOffset"), encodeVec3(s.RotationOffset))
	store.SetFloat(key("orthographicSize"), s.OrthographicSize)
	store.SetString(key("baseName"), s.BaseName)
	store.SetInt(key("resolution"), s.Resolution)
	store.SetString(key("savePath"), s.SavePath)
	store.SetBool(key("showPreview"), s.ShowPreview)
}

// LoadFrom reads every field from store. Missing keys keep the current
// value, so call Reset first to fill gaps with factory values.
func (s *Settings) LoadFrom(store prefs.Store) error {
	s.UseSpotlightRange = store.Bool(key("useSpotlightRange"), s.UseSpotlightRange)
	s.ShadowPlaneDistance = store.Float(key("shadowPlaneDistance"), s.ShadowPlaneDistance)
	s.ShadowOpacity = store.Float(key("shadowOpacity"), s.ShadowOpacity)
	s.CookieBrightness = store.Float(key("cookieBrightness"), s.CookieBrightness)
	s.ShadowSampleRadius = store.Float(key("shadowSampleRadius"), s.ShadowSampleRadius)
	s.ShadowSamples = store.Int(key("shadowSamples"), s.ShadowSamples)
	s.BlurMethod = Method(store.Int(key("blurMethod"), int(s.BlurMethod)))
	s.BlurRadius = store.Int(key("blurRadius"), s.BlurRadius)
	s.BlurIterations = store.Int(key("blurIterations"), s.BlurIterations)
	if raw := store.String(key("rotationOffset"), ""); raw != "" {
		v, err := decodeVec3(raw)
		if err != nil {
			return fmt.Errorf("lightcookie: preference rotationOffset: %w", err)
		}
		s.RotationOffset = v
	}
	s.OrthographicSize = store.Float(key("orthographicSize"), s.OrthographicSize)
	s.BaseName = store.String(key("baseName"), s.BaseName)
	s.Resolution = store.Int(key("resolution"), s.Resolution)
	s.SavePath = store.String(key("savePath"), s.SavePath)
	s.ShowPreview = store.Bool(key("showPreview"), s.ShowPreview)
	return nil
}

// encodeVec3 stores a vector as {"x":..,"y":..,"z":..}, the layout older
// preference files use.
func encodeVec3(v Vec3) string {
	b, _ := json.Marshal(v)
	return string(b)
}

func decodeVec3(raw string) (Vec3, error) {
	var v Vec3
	err := json.Unmarshal([]byte(raw), &v)
	return v, err
}
