package lightcookie

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Metadata is the calibration record stored next to every saved cookie.
// Field names are part of the file format.
type Metadata struct {
	UseSpotlightRange   bool    `json:"useSpotlightRange"`
	ShadowPlaneDistance float64 `json:"shadowPlaneDistance"`
	ShadowOpacity       float64 `json:"shadowOpacity"`
	CookieBrightness    float64 `json:"cookieBrightness"`
	ShadowSampleRadius  float64 `json:"shadowSampleRadius"`
	ShadowSamples       int     `json:"shadowSamples"`
	BlurMethod          int     `json:"blurMethod"`
	BlurRadius          int     `json:"blurRadius"`
	BlurIterations      int     `json:"blurIterations"`
	RotationOffset      Vec3    `json:"rotationOffset"`
	BaseName            string  `json:"baseName"`
	Resolution          int     `json:"resolution"`
}

// MetadataFromSettings records the fields of s that shaped a cookie.
func MetadataFromSettings(s Settings) Metadata {
	return Metadata{
		UseSpotlightRange:   s.UseSpotlightRange,
		ShadowPlaneDistance: s.ShadowPlaneDistance,
		ShadowOpacity:       s.ShadowOpacity,
		CookieBrightness:    s.CookieBrightness,
		ShadowSampleRadius:  s.ShadowSampleRadius,
		ShadowSamples:       s.ShadowSamples,
		BlurMethod:          int(s.BlurMethod),
		BlurRadius:          s.BlurRadius,
		BlurIterations:      s.BlurIterations,
		RotationOffset:      s.RotationOffset,
		BaseName:            s.BaseName,
		Resolution:          s.Resolution,
	}
}

// ApplyTo copies the recorded fields into s. Fields the metadata does not
// carry (orthographic size, save path) are left alone.
func (m Metadata) ApplyTo(s *Settings) {
	s.UseSpotlightRange = m.UseSpotlightRange
	s.ShadowPlaneDistance = m.ShadowPlaneDistance
	s.ShadowOpacity = m.ShadowOpacity
	s.CookieBrightness = m.CookieBrightness
	s.ShadowSampleRadius = m.ShadowSampleRadius
	s.ShadowSamples = m.ShadowSamples
	s.BlurMethod = Method(m.BlurMethod)
	s.BlurRadius = m.BlurRadius
	s.BlurIterations = m.BlurIterations
	s.RotationOffset = m.RotationOffset
	s.BaseName = m.BaseName
	s.Resolution = m.Resolution
}

// Calibration reconstructs the mask calibration.
func (m Metadata) Calibration() MaskCalibration {
	return MaskCalibration{
		ShadowOpacity:  m.ShadowOpacity,
		BrightnessLift: m.CookieBrightness,
	}
}

// Smoothing reconstructs the smoothing spec.
func (m Metadata) Smoothing() SmoothingSpec {
	return SmoothingSpec{
		Method:     Method(m.BlurMethod),
		Radius:     m.BlurRadius,
		Iterations: m.BlurIterations,
	}
}

// Marshal encodes the metadata as JSON.
func (m Metadata) Marshal() ([]byte, error) {
	return json.Marshal(m)
}

// ParseMetadata decodes metadata written by Marshal.
func ParseMetadata(data []byte) (Metadata, error) {
	var m Metadata
	if err := json.Unmarshal(data, &m); err != nil {
		return Metadata{}, fmt.Errorf("lightcookie: parse metadata: %w", err)
	}
	return m, nil
}

// Summary renders the metadata for display, one field per line.
func (m Metadata) Summary() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Base Name: %s\n", m.BaseName)
	fmt.Fprintf(&b, "Resolution: %d\n", m.Resolution)
	fmt.Fprintf(&b, "Use Spotlight Range: %t\n", m.UseSpotlightRange)
	fmt.Fprintf(&b, "Shadow Plane Distance: %g\n", m.ShadowPlaneDistance)
	fmt.Fprintf(&b, "Shadow Opacity: %g\n", m.ShadowOpacity)
	fmt.Fprintf(&b, "Cookie Brightness: %g\n", m.CookieBrightness)
	fmt.Fprintf(&b, "Shadow Sample Radius: %g\n", m.ShadowSampleRadius)
	fmt.Fprintf(&b, "Shadow Samples: %d\n", m.ShadowSamples)
	fmt.Fprintf(&b, "Blur Method: %v\n", Method(m.BlurMethod))
	fmt.Fprintf(&b, "Blur Radius: %d\n", m.BlurRadius)
	fmt.Fprintf(&b, "Blur Iterations: %d\n", m.BlurIterations)
	fmt.Fprintf(&b, "Rotation Offset: %v", m.RotationOffset)
	return b.String()
}
