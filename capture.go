package lightcookie

import (
	"fmt"
	"image/color"
	"sync"
	"time"
)

// Capturer runs the capture stage against a host.
//
// Captures mutate process-wide scene state, so a Capturer runs one at a
// time. Use a single Capturer per scene.
type Capturer struct {
	host Host
	mu   sync.Mutex
}

// NewCapturer creates a capturer for host.
func NewCapturer(host Host) *Capturer {
	return &Capturer{host: host}
}

// releaser is a host resource with a scoped lifetime.
type releaser struct {
	what    string
	release func() error
}

// captureScope owns everything acquired during one capture.
type captureScope struct {
	state     *shadowState
	resources []releaser
}

func (s *captureScope) acquire(what string, release func() error) {
	s.resources = append(s.resources, releaser{what: what, release: release})
}

// close restores scene state, then releases resources in reverse order.
// Release errors are logged; they never replace the capture result.
func (s *captureScope) close() {
	if s.state != nil {
		s.state.restore()
	}
	for i := len(s.resources) - 1; i >= 0; i-- {
		r := s.resources[i]
		if err := r.release(); err != nil {
			Logger().Warn("lightcookie: release failed", "resource", r.what, "err", err)
		}
	}
	s.resources = nil
}

// Capture renders the scene from spec's sensor and returns the raw
// luminance: bright where the backdrop is lit, dark where it is shadowed.
//
// Capture validates before touching anything: a nil light, a light without
// a transform or an invalid spec fail with ErrInvalidConfiguration and no
// mutation. Once the light has been neutralized, every exit path restores
// the light and the renderers and releases the sensor, backdrop and target,
// including when the host panics.
func (c *Capturer) Capture(spec RenderSpec, light Light) (*Buffer, error) {
	if light == nil {
		return nil, invalidf("no light")
	}
	if _, ok := light.Transform(); !ok {
		return nil, invalidf("light %q has no transform", light.Name())
	}
	if err := spec.Validate(); err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	start := time.Now()
	log := Logger()

	scope := &captureScope{}
	defer scope.close()

	scope.state = snapshotLight(light)
	scope.state.neutralize()

	sensor, err := c.host.CreateSensor(SensorDesc{
		Transform:  spec.Sensor,
		HalfExtent: spec.HalfExtent,
		Near:       spec.Near,
		Far:        spec.Far,
		Aspect:     1,
		Background: color.Black,
		Light:      light,
	})
	if err != nil {
		return nil, &RenderError{Stage: "sensor", Err: err}
	}
	scope.acquire("sensor", sensor.Release)

	backdrop, err := c.host.CreateBackdrop(BackdropDesc{
		Transform: Transform{
			Position: spec.Sensor.Along(spec.PlaneDistance),
			Rotation: spec.Sensor.Rotation,
		},
		Size:           spec.HalfExtent * 2,
		Color:          color.White,
		CastShadows:    false,
		ReceiveShadows: true,
	})
	if err != nil {
		return nil, &RenderError{Stage: "backdrop", Err: err}
	}
	scope.acquire("backdrop", backdrop.Release)

	scope.state.forceCasting(c.host.Renderers(), backdrop.Renderer())
	log.Debug("lightcookie: scene prepared",
		"light", light.Name(), "renderers", len(scope.state.renderers))

	if err := c.host.RefreshLighting(); err != nil {
		return nil, &RenderError{Stage: "lighting", Err: err}
	}

	target, err := c.host.AllocateTarget(spec.Resolution)
	if err != nil {
		return nil, &RenderError{Stage: "target", Err: err}
	}
	scope.acquire("target", target.Release)

	if err := sensor.Render(target); err != nil {
		return nil, &RenderError{Stage: "render", Err: err}
	}

	img, err := target.ReadPixels()
	if err != nil {
		return nil, &RenderError{Stage: "readback", Err: err}
	}
	buf, err := BufferFromImage(img)
	if err != nil {
		return nil, &RenderError{Stage: "readback", Err: err}
	}
	if buf.Size() != spec.Resolution {
		return nil, &RenderError{Stage: "readback", Err: fmt.Errorf("target returned %d px, want %d", buf.Size(), spec.Resolution)}
	}

	log.Debug("lightcookie: captured",
		"light", light.Name(), "resolution", spec.Resolution,
		"format", target.Format(), "elapsed", time.Since(start))

	return buf, nil
}
