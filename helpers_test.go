package lightcookie

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/gogpu/gputypes"
)

// Test doubles for the host capabilities. Every mutation is appended to a
// shared log so tests can check ordering and restoration.

type recorder struct {
	events []string
}

func (r *recorder) add(format string, args ...any) {
	r.events = append(r.events, fmt.Sprintf(format, args...))
}

type fakeLight struct {
	rec       *recorder
	name      string
	typ       LightType
	pose      Transform
	hasPose   bool
	rng       float64
	cookie    image.Image
	intensity float64
	shadows   ShadowMode
	enabled   bool

	// panicOnShadows makes the next SetShadowMode panic once.
	panicOnShadows bool
}

func newFakeLight(rec *recorder) *fakeLight {
	return &fakeLight{
		rec:       rec,
		name:      "Key",
		typ:       LightSpot,
		pose:      Identity(),
		hasPose:   true,
		rng:       20,
		cookie:    image.NewGray(image.Rect(0, 0, 4, 4)),
		intensity: 2.5,
		shadows:   ShadowsHard,
		enabled:   false,
	}
}

func (l *fakeLight) Name() string                 { return l.name }
func (l *fakeLight) Type() LightType              { return l.typ }
func (l *fakeLight) Transform() (Transform, bool) { return l.pose, l.hasPose }
func (l *fakeLight) Range() float64               { return l.rng }
func (l *fakeLight) Cookie() image.Image          { return l.cookie }
func (l *fakeLight) Intensity() float64           { return l.intensity }
func (l *fakeLight) ShadowMode() ShadowMode       { return l.shadows }
func (l *fakeLight) Enabled() bool                { return l.enabled }

func (l *fakeLight) SetIntensity(v float64) {
	l.rec.add("light.intensity=%v", v)
	l.intensity = v
}

func (l *fakeLight) SetShadowMode(m ShadowMode) {
	if l.panicOnShadows {
		l.panicOnShadows = false
		panic("shadow mode rejected")
	}
	l.rec.add("light.shadows=%v", m)
	l.shadows = m
}

func (l *fakeLight) SetEnabled(v bool) {
	l.rec.add("light.enabled=%v", v)
	l.enabled = v
}

func (l *fakeLight) SetCookie(img image.Image) {
	l.rec.add("light.cookie=%v", img != nil)
	l.cookie = img
}

type lightSnapshot struct {
	cookie    image.Image
	intensity float64
	shadows   ShadowMode
	enabled   bool
}

func (l *fakeLight) snapshot() lightSnapshot {
	return lightSnapshot{l.cookie, l.intensity, l.shadows, l.enabled}
}

type fakeRenderer struct {
	rec     *recorder
	id      string
	casting ShadowCasting
}

func (r *fakeRenderer) ShadowCasting() ShadowCasting { return r.casting }
func (r *fakeRenderer) SetShadowCasting(c ShadowCasting) {
	r.rec.add("%s.casting=%v", r.id, c)
	r.casting = c
}

// tagRenderer is a value renderer of a non-comparable type.
type tagRenderer struct {
	tags    []string
	casting *ShadowCasting
}

func (r tagRenderer) ShadowCasting() ShadowCasting     { return *r.casting }
func (r tagRenderer) SetShadowCasting(c ShadowCasting) { *r.casting = c }

type fakeSensor struct {
	host *fakeHost
}

func (s *fakeSensor) Render(t Target) error {
	h := s.host
	h.rec.add("render")
	h.duringRender = h.observe()
	if h.panicOnRender {
		panic("render exploded")
	}
	if h.renderErr != nil {
		return h.renderErr
	}
	t.(*fakeTarget).rendered = true
	return nil
}

func (s *fakeSensor) Release() error {
	s.host.rec.add("release sensor")
	s.host.live--
	return s.host.releaseErr
}

type fakeBackdrop struct {
	host     *fakeHost
	renderer *fakeRenderer
}

func (b *fakeBackdrop) Renderer() Renderer { return b.renderer }
func (b *fakeBackdrop) Release() error {
	b.host.rec.add("release backdrop")
	b.host.backdropLive = false
	b.host.live--
	return nil
}

type fakeTarget struct {
	host     *fakeHost
	size     int
	rendered bool
}

func (t *fakeTarget) Size() int                      { return t.size }
func (t *fakeTarget) Format() gputypes.TextureFormat { return gputypes.TextureFormatRGBA8Unorm }

func (t *fakeTarget) ReadPixels() (image.Image, error) {
	if t.host.readErr != nil {
		return nil, t.host.readErr
	}
	if !t.rendered {
		return nil, errors.New("read before render")
	}
	if t.host.frame != nil {
		return t.host.frame(t.size), nil
	}
	return uniformFrame(t.size, color.White), nil
}

func (t *fakeTarget) Release() error {
	t.host.rec.add("release target")
	t.host.live--
	return nil
}

// sceneObservation is the scene as the sensor saw it.
type sceneObservation struct {
	light     lightSnapshot
	renderers map[string]ShadowCasting
	backdrop  ShadowCasting
}

type fakeHost struct {
	rec       *recorder
	light     *fakeLight
	renderers []*fakeRenderer
	backdrop  *fakeRenderer

	frame func(size int) image.Image

	renderErr     error
	readErr       error
	releaseErr    error
	sensorErr     error
	panicOnRender bool

	live         int
	backdropLive bool
	refreshes    int
	sensorDesc   SensorDesc
	backdropDesc BackdropDesc
	duringRender sceneObservation
}

func newFakeHost(rec *recorder, light *fakeLight) *fakeHost {
	h := &fakeHost{rec: rec, light: light}
	h.renderers = []*fakeRenderer{
		{rec: rec, id: "wall", casting: CastingOff},
		{rec: rec, id: "tree", casting: CastingTwoSided},
		{rec: rec, id: "rock", casting: CastingShadowsOnly},
	}
	h.backdrop = &fakeRenderer{rec: rec, id: "backdrop", casting: CastingOff}
	return h
}

func (h *fakeHost) Renderers() []Renderer {
	out := make([]Renderer, 0, len(h.renderers)+1)
	for _, r := range h.renderers {
		out = append(out, r)
	}
	// The host lists the backdrop like any other renderer once it exists.
	if h.backdropLive {
		out = append(out, h.backdrop)
	}
	return out
}

func (h *fakeHost) CreateSensor(desc SensorDesc) (Sensor, error) {
	h.rec.add("create sensor")
	if h.sensorErr != nil {
		return nil, h.sensorErr
	}
	h.sensorDesc = desc
	h.live++
	return &fakeSensor{host: h}, nil
}

func (h *fakeHost) CreateBackdrop(desc BackdropDesc) (Backdrop, error) {
	h.rec.add("create backdrop")
	h.backdropDesc = desc
	h.backdropLive = true
	h.live++
	return &fakeBackdrop{host: h, renderer: h.backdrop}, nil
}

func (h *fakeHost) RefreshLighting() error {
	h.rec.add("refresh")
	h.refreshes++
	return nil
}

func (h *fakeHost) AllocateTarget(size int) (Target, error) {
	h.rec.add("allocate target")
	h.live++
	return &fakeTarget{host: h, size: size}, nil
}

func (h *fakeHost) observe() sceneObservation {
	obs := sceneObservation{
		light:     h.light.snapshot(),
		renderers: make(map[string]ShadowCasting),
		backdrop:  h.backdrop.casting,
	}
	for _, r := range h.renderers {
		obs.renderers[r.id] = r.casting
	}
	return obs
}

func (h *fakeHost) castings() map[string]ShadowCasting {
	out := make(map[string]ShadowCasting)
	for _, r := range h.renderers {
		out[r.id] = r.casting
	}
	return out
}

func uniformFrame(size int, c color.Color) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

// wideFrame is twice as wide as it is tall.
func wideFrame(size int) image.Image {
	return image.NewRGBA(image.Rect(0, 0, size*2, size))
}

// discFrame is white with a black disc of radius r in the middle.
func discFrame(r float64) func(int) image.Image {
	return func(size int) image.Image {
		img := image.NewRGBA(image.Rect(0, 0, size, size))
		c := float64(size) / 2
		for y := 0; y < size; y++ {
			for x := 0; x < size; x++ {
				dx, dy := float64(x)+0.5-c, float64(y)+0.5-c
				if math.Hypot(dx, dy) <= r {
					img.Set(x, y, color.Black)
				} else {
					img.Set(x, y, color.White)
				}
			}
		}
		return img
	}
}

func validSpec() RenderSpec {
	return RenderSpec{
		Sensor:        Identity(),
		HalfExtent:    10,
		Near:          NearClip,
		Far:           FarClip,
		Resolution:    256,
		PlaneDistance: 10,
	}
}

func approx(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}
