package lightcookie

import (
	"math"
	"slices"
)

// Fixed sensor parameters.
const (
	NearClip = 0.01
	FarClip  = 100.0

	// SpotRangeFactor places the backdrop just inside a spot light's reach.
	SpotRangeFactor = 0.95

	// PreviewResolution is the size of interactive previews.
	PreviewResolution = 256
)

// Resolutions lists the accepted output sizes.
var Resolutions = []int{256, 512, 1024, 2048}

// ValidResolution reports whether n is one of Resolutions.
func ValidResolution(n int) bool {
	return slices.Contains(Resolutions, n)
}

// RenderSpec fixes everything about one capture. It is immutable once
// built.
type RenderSpec struct {
	// Sensor is the light pose composed with the rotation offset.
	Sensor Transform

	// HalfExtent is the orthographic half-size of the sensor frustum.
	HalfExtent float64

	Near float64
	Far  float64

	// Resolution is the edge length of the square output.
	Resolution int

	// PlaneDistance is how far along the sensor's forward axis the
	// backdrop sits.
	PlaneDistance float64
}

// RenderOptions are the user-facing inputs of NewRenderSpec.
type RenderOptions struct {
	RotationOffset Vec3
	HalfExtent     float64
	Resolution     int
	PlaneDistance  float64

	// UseLightRange derives the plane distance from a spot light's range.
	UseLightRange bool
}

// NewRenderSpec builds the spec for capturing light.
//
// When UseLightRange is set and light is a spot light the plane sits at
// SpotRangeFactor times its range; otherwise PlaneDistance is used as is.
func NewRenderSpec(light Light, opts RenderOptions) (RenderSpec, error) {
	if light == nil {
		return RenderSpec{}, invalidf("no light")
	}
	pose, ok := light.Transform()
	if !ok {
		return RenderSpec{}, invalidf("light %q has no transform", light.Name())
	}

	dist := opts.PlaneDistance
	if opts.UseLightRange && light.Type() == LightSpot {
		dist = light.Range() * SpotRangeFactor
	}

	spec := RenderSpec{
		Sensor:        pose.WithOffset(opts.RotationOffset),
		HalfExtent:    opts.HalfExtent,
		Near:          NearClip,
		Far:           FarClip,
		Resolution:    opts.Resolution,
		PlaneDistance: dist,
	}
	return spec, spec.Validate()
}

// Validate checks that the spec can be captured.
func (s RenderSpec) Validate() error {
	if !ValidResolution(s.Resolution) {
		return invalidf("resolution %d not one of %v", s.Resolution, Resolutions)
	}
	if !(s.HalfExtent > 0) || math.IsInf(s.HalfExtent, 0) {
		return invalidf("orthographic half-extent %v must be positive", s.HalfExtent)
	}
	if !(s.Near > 0 && s.Far > s.Near) {
		return invalidf("clip range [%v,%v] is empty", s.Near, s.Far)
	}
	if !(s.PlaneDistance > s.Near && s.PlaneDistance < s.Far) {
		return invalidf("plane distance %v outside clip range (%v,%v)", s.PlaneDistance, s.Near, s.Far)
	}
	return nil
}

// WithResolution returns a copy of s with a different output size.
func (s RenderSpec) WithResolution(n int) RenderSpec {
	s.Resolution = n
	return s
}
