package softscene

import (
	"image"
	"sync"

	"github.com/gogpu/lightcookie"
)

// Light is a scene light. It implements lightcookie.Light.
type Light struct {
	mu sync.Mutex

	name      string
	typ       lightcookie.LightType
	pose      lightcookie.Transform
	hasPose   bool
	rng       float64
	cookie    image.Image
	intensity float64
	shadows   lightcookie.ShadowMode
	enabled   bool
}

var _ lightcookie.Light = (*Light)(nil)

// LightOption configures a Light.
type LightOption func(*Light)

// WithTransform sets the light pose.
func WithTransform(t lightcookie.Transform) LightOption {
	return func(l *Light) {
		l.pose = t
		l.hasPose = true
	}
}

// WithoutTransform detaches the light so it has nothing to sense from.
func WithoutTransform() LightOption {
	return func(l *Light) { l.hasPose = false }
}

// WithRange sets the reach of a spot light.
func WithRange(r float64) LightOption {
	return func(l *Light) { l.rng = r }
}

// WithIntensity sets the light intensity.
func WithIntensity(v float64) LightOption {
	return func(l *Light) { l.intensity = v }
}

// WithShadows sets the shadow mode.
func WithShadows(m lightcookie.ShadowMode) LightOption {
	return func(l *Light) { l.shadows = m }
}

// WithCookie assigns an initial cookie.
func WithCookie(img image.Image) LightOption {
	return func(l *Light) { l.cookie = img }
}

// Disabled creates the light switched off.
func Disabled() LightOption {
	return func(l *Light) { l.enabled = false }
}

// NewLight creates an enabled light at the origin looking down +Z with
// hard shadows, intensity 1 and range 10.
func NewLight(name string, typ lightcookie.LightType, opts ...LightOption) *Light {
	l := &Light{
		name:      name,
		typ:       typ,
		pose:      lightcookie.Identity(),
		hasPose:   true,
		rng:       10,
		intensity: 1,
		shadows:   lightcookie.ShadowsHard,
		enabled:   true,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Name returns the light name.
func (l *Light) Name() string { return l.name }

// Type returns the light type.
func (l *Light) Type() lightcookie.LightType { return l.typ }

// Transform returns the light pose.
func (l *Light) Transform() (lightcookie.Transform, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.pose, l.hasPose
}

// SetTransform moves the light and attaches it.
func (l *Light) SetTransform(t lightcookie.Transform) {
	l.mu.Lock()
	l.pose = t
	l.hasPose = true
	l.mu.Unlock()
}

// Range returns the spot range.
func (l *Light) Range() float64 { return l.rng }

// Cookie returns the assigned cookie, or nil.
func (l *Light) Cookie() image.Image {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.cookie
}

// SetCookie assigns a cookie. nil removes it.
func (l *Light) SetCookie(img image.Image) {
	l.mu.Lock()
	l.cookie = img
	l.mu.Unlock()
}

// Intensity returns the light intensity.
func (l *Light) Intensity() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.intensity
}

// SetIntensity sets the light intensity.
func (l *Light) SetIntensity(v float64) {
	l.mu.Lock()
	l.intensity = v
	l.mu.Unlock()
}

// ShadowMode returns the shadow mode.
func (l *Light) ShadowMode() lightcookie.ShadowMode {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.shadows
}

// SetShadowMode sets the shadow mode.
func (l *Light) SetShadowMode(m lightcookie.ShadowMode) {
	l.mu.Lock()
	l.shadows = m
	l.mu.Unlock()
}

// Enabled reports whether the light is on.
func (l *Light) Enabled() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.enabled
}

// SetEnabled switches the light.
func (l *Light) SetEnabled(v bool) {
	l.mu.Lock()
	l.enabled = v
	l.mu.Unlock()
}
