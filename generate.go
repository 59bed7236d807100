package lightcookie

import "time"

// Generator runs the full pipeline: capture, calibrate, smooth.
// It keeps no state between calls beyond the capturer's lock.
type Generator struct {
	capturer *Capturer
}

// NewGenerator creates a generator over host.
func NewGenerator(host Host) *Generator {
	return &Generator{capturer: NewCapturer(host)}
}

// Capturer returns the underlying capturer.
func (g *Generator) Capturer() *Capturer {
	return g.capturer
}

// Generate produces the cookie for light.
//
// The calibration and smoothing spec are validated before anything is
// captured, so a bad filter configuration never touches the scene. The
// returned buffer is owned by the caller.
func (g *Generator) Generate(spec RenderSpec, cal MaskCalibration, sm SmoothingSpec, light Light) (*Buffer, error) {
	if err := sm.Validate(); err != nil {
		return nil, err
	}
	if err := cal.Validate(); err != nil {
		return nil, err
	}

	start := time.Now()
	raw, err := g.capturer.Capture(spec, light)
	if err != nil {
		return nil, err
	}

	cal.Apply(raw)

	out, err := Smooth(raw, sm)
	if err != nil {
		return nil, err
	}

	Logger().Debug("lightcookie: generated",
		"light", light.Name(), "resolution", spec.Resolution,
		"calibration", cal, "method", sm.Method, "elapsed", time.Since(start))
	return out, nil
}

// GenerateWithSettings builds the render spec, calibration and smoothing
// from s and generates the cookie for light at s.Resolution.
func (g *Generator) GenerateWithSettings(s Settings, light Light) (*Buffer, error) {
	spec, err := s.RenderSpec(light)
	if err != nil {
		return nil, err
	}
	return g.Generate(spec, s.Calibration(), s.Smoothing(), light)
}

// Preview generates a PreviewResolution cookie for light from s.
func (g *Generator) Preview(s Settings, light Light) (*Buffer, error) {
	s.Resolution = PreviewResolution
	return g.GenerateWithSettings(s, light)
}
