package lightcookie

import "fmt"

// MaskCalibration converts raw captured luminance into the final mask.
//
// ShadowOpacity 1 keeps shadows at full contrast, 0 fades them out.
// BrightnessLift 0 leaves the mask alone, 1 washes it to white.
type MaskCalibration struct {
	ShadowOpacity  float64
	BrightnessLift float64
}

// DefaultCalibration returns the identity calibration (opacity 1, lift 0).
func DefaultCalibration() MaskCalibration {
	return MaskCalibration{ShadowOpacity: 1}
}

// Validate checks that both values are within [0,1].
func (c MaskCalibration) Validate() error {
	if !(c.ShadowOpacity >= 0 && c.ShadowOpacity <= 1) {
		return invalidf("shadow opacity %v outside [0,1]", c.ShadowOpacity)
	}
	if !(c.BrightnessLift >= 0 && c.BrightnessLift <= 1) {
		return invalidf("brightness lift %v outside [0,1]", c.BrightnessLift)
	}
	return nil
}

// IsIdentity reports whether Apply would leave every pixel unchanged.
func (c MaskCalibration) IsIdentity() bool {
	return c.ShadowOpacity >= 1 && c.BrightnessLift <= 0
}

// Apply calibrates buf in place.
//
// The opacity step runs first: shadowed pixels move toward white by
// (1-L)*(1-ShadowOpacity), so fully lit pixels never change. The brightness
// lift is a uniform lerp toward white over that result.
func (c MaskCalibration) Apply(buf *Buffer) {
	if c.ShadowOpacity < 1 {
		fade := float32(1 - c.ShadowOpacity)
		for i, l := range buf.data {
			adjustment := (1 - l) * fade
			buf.data[i] = lerp(l, 1, adjustment)
		}
	}

	if c.BrightnessLift > 0 {
		lift := float32(c.BrightnessLift)
		for i, l := range buf.data {
			buf.data[i] = lerp(l, 1, lift)
		}
	}
}

func (c MaskCalibration) String() string {
	return fmt.Sprintf("opacity=%.2f brightness=%.2f", c.ShadowOpacity, c.BrightnessLift)
}

// lerp interpolates between a and b with t clamped to [0,1].
func lerp(a, b, t float32) float32 {
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return a + (b-a)*t
}
