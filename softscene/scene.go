package softscene

import (
	"errors"
	"fmt"
	"sync"

	"github.com/gogpu/lightcookie"
)

// Scene is an in-memory scene and the host that renders it. It implements
// lightcookie.Host.
type Scene struct {
	mu        sync.Mutex
	lights    []*Light
	occluders []*Occluder
	backdrops []*backdrop

	softRadius  float64
	softSamples int

	refreshes int
	live      int

	// FailRender, when set, is returned by every sensor render.
	FailRender error

	// FailReadback, when set, is returned by every target readback.
	FailReadback error
}

var _ lightcookie.Host = (*Scene)(nil)

// New creates an empty scene with hard shadows.
func New() *Scene {
	return &Scene{softSamples: 1}
}

// AddLight adds l to the scene and returns it.
func (s *Scene) AddLight(l *Light) *Light {
	s.mu.Lock()
	s.lights = append(s.lights, l)
	s.mu.Unlock()
	return l
}

// AddOccluder adds o to the scene and returns it.
func (s *Scene) AddOccluder(o *Occluder) *Occluder {
	s.mu.Lock()
	s.occluders = append(s.occluders, o)
	s.mu.Unlock()
	return o
}

// Lights returns the scene lights in insertion order.
func (s *Scene) Lights() []*Light {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*Light(nil), s.lights...)
}

// Light finds a light by name.
func (s *Scene) Light(name string) (*Light, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, l := range s.lights {
		if l.Name() == name {
			return l, true
		}
	}
	return nil, false
}

// Occluders returns the scene occluders in insertion order.
func (s *Scene) Occluders() []*Occluder {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*Occluder(nil), s.occluders...)
}

// SetSoftShadows configures soft shadow sampling: samples jittered light
// positions spread over a disc of the given radius per unit of distance
// between occluder and backdrop. samples <= 1 gives hard shadows.
func (s *Scene) SetSoftShadows(radius float64, samples int) {
	if samples < 1 {
		samples = 1
	}
	s.mu.Lock()
	s.softRadius = radius
	s.softSamples = samples
	s.mu.Unlock()
}

// Refreshes returns how many times lighting has been refreshed.
func (s *Scene) Refreshes() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.refreshes
}

// Live returns the number of sensors, backdrops and targets not yet
// released.
func (s *Scene) Live() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.live
}

// Renderers lists every occluder and every live backdrop.
func (s *Scene) Renderers() []lightcookie.Renderer {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]lightcookie.Renderer, 0, len(s.occluders)+len(s.backdrops))
	for _, o := range s.occluders {
		out = append(out, o)
	}
	for _, b := range s.backdrops {
		out = append(out, b.surface)
	}
	return out
}

// CreateSensor creates an orthographic sensor.
func (s *Scene) CreateSensor(desc lightcookie.SensorDesc) (lightcookie.Sensor, error) {
	if desc.HalfExtent <= 0 {
		return nil, fmt.Errorf("softscene: sensor half-extent %v must be positive", desc.HalfExtent)
	}
	if desc.Aspect != 1 {
		return nil, fmt.Errorf("softscene: only square sensors are supported, aspect %v", desc.Aspect)
	}
	s.acquire()
	return &sensor{scene: s, desc: desc}, nil
}

// CreateBackdrop creates the shadow-receiving quad.
func (s *Scene) CreateBackdrop(desc lightcookie.BackdropDesc) (lightcookie.Backdrop, error) {
	if desc.Size <= 0 {
		return nil, fmt.Errorf("softscene: backdrop size %v must be positive", desc.Size)
	}
	casting := lightcookie.CastingOff
	if desc.CastShadows {
		casting = lightcookie.CastingOn
	}
	b := &backdrop{scene: s, desc: desc, surface: &surface{casting: casting}}

	s.mu.Lock()
	s.backdrops = append(s.backdrops, b)
	s.live++
	s.mu.Unlock()
	return b, nil
}

// RefreshLighting counts the refresh. The software renderer has no baked
// lighting to update.
func (s *Scene) RefreshLighting() error {
	s.mu.Lock()
	s.refreshes++
	s.mu.Unlock()
	return nil
}

// AllocateTarget allocates a size x size RGBA target.
func (s *Scene) AllocateTarget(size int) (lightcookie.Target, error) {
	if size <= 0 {
		return nil, fmt.Errorf("softscene: target size %d must be positive", size)
	}
	s.acquire()
	return newTarget(s, size), nil
}

func (s *Scene) acquire() {
	s.mu.Lock()
	s.live++
	s.mu.Unlock()
}

func (s *Scene) release() {
	s.mu.Lock()
	s.live--
	s.mu.Unlock()
}

// liveBackdrops snapshots the current backdrops.
func (s *Scene) liveBackdrops() []*backdrop {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*backdrop(nil), s.backdrops...)
}

func (s *Scene) soft() (float64, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.softRadius, s.softSamples
}

// surface is the backdrop's renderer.
type surface struct {
	mu      sync.Mutex
	casting lightcookie.ShadowCasting
}

func (r *surface) ShadowCasting() lightcookie.ShadowCasting {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.casting
}

func (r *surface) SetShadowCasting(c lightcookie.ShadowCasting) {
	r.mu.Lock()
	r.casting = c
	r.mu.Unlock()
}

type backdrop struct {
	scene    *Scene
	desc     lightcookie.BackdropDesc
	surface  *surface
	released bool
}

func (b *backdrop) Renderer() lightcookie.Renderer { return b.surface }

// Release removes the backdrop and its material from the scene.
func (b *backdrop) Release() error {
	s := b.scene
	s.mu.Lock()
	defer s.mu.Unlock()

	if b.released {
		return errors.New("softscene: backdrop released twice")
	}
	b.released = true
	for i, other := range s.backdrops {
		if other == b {
			s.backdrops = append(s.backdrops[:i], s.backdrops[i+1:]...)
			break
		}
	}
	s.live--
	return nil
}
