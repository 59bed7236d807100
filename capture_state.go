package lightcookie

import (
	"image"
	"reflect"
)

// lightState is the part of a light the capture touches.
type lightState struct {
	cookie    image.Image
	intensity float64
	shadows   ShadowMode
	enabled   bool
}

type rendererState struct {
	renderer Renderer
	casting  ShadowCasting
}

// shadowState records everything a capture mutates so it can be put back.
// It lives only for the duration of one capture.
type shadowState struct {
	light     Light
	saved     lightState
	renderers []rendererState
}

// snapshotLight records the light properties a capture changes.
func snapshotLight(light Light) *shadowState {
	return &shadowState{
		light: light,
		saved: lightState{
			cookie:    light.Cookie(),
			intensity: light.Intensity(),
			shadows:   light.ShadowMode(),
			enabled:   light.Enabled(),
		},
	}
}

// neutralize prepares the light for capture: no cookie, soft shadows,
// enabled. The snapshot must already be owned by the capture scope so a
// panicking setter still gets restored.
func (s *shadowState) neutralize() {
	s.light.SetCookie(nil)
	s.light.SetShadowMode(ShadowsSoft)
	s.light.SetEnabled(true)
}

// forceCasting snapshots every renderer except skip and switches it to
// CastingOn.
func (s *shadowState) forceCasting(renderers []Renderer, skip Renderer) {
	for _, r := range renderers {
		if r == nil || sameRenderer(r, skip) {
			continue
		}
		s.renderers = append(s.renderers, rendererState{renderer: r, casting: r.ShadowCasting()})
		r.SetShadowCasting(CastingOn)
	}
}

// sameRenderer reports whether a and b are the same renderer. Renderers of
// non-comparable types are never considered the same.
func sameRenderer(a, b Renderer) bool {
	if b == nil {
		return false
	}
	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	if va.Type() != vb.Type() || !va.Comparable() || !vb.Comparable() {
		return false
	}
	return a == b
}

// restore puts every renderer and then the light back as they were.
func (s *shadowState) restore() {
	for i := len(s.renderers) - 1; i >= 0; i-- {
		rs := s.renderers[i]
		rs.renderer.SetShadowCasting(rs.casting)
	}
	s.renderers = nil

	s.light.SetCookie(s.saved.cookie)
	s.light.SetIntensity(s.saved.intensity)
	s.light.SetShadowMode(s.saved.shadows)
	s.light.SetEnabled(s.saved.enabled)
}
