package lightcookie

import (
	"fmt"
	"image"
	"image/color"

	"github.com/gogpu/gputypes"
)

// LightType is the kind of a light.
type LightType int

const (
	LightDirectional LightType = iota
	LightSpot
	LightPoint
)

func (t LightType) String() string {
	switch t {
	case LightDirectional:
		return "Directional"
	case LightSpot:
		return "Spot"
	case LightPoint:
		return "Point"
	}
	return fmt.Sprintf("LightType(%d)", int(t))
}

// SupportsCookies reports whether cookies can be generated for the type.
// Point lights need a cube map and are not supported.
func (t LightType) SupportsCookies() bool {
	return t == LightDirectional || t == LightSpot
}

// ShadowMode is the shadow quality of a light.
type ShadowMode int

const (
	ShadowsNone ShadowMode = iota
	ShadowsHard
	ShadowsSoft
)

func (m ShadowMode) String() string {
	switch m {
	case ShadowsNone:
		return "None"
	case ShadowsHard:
		return "Hard"
	case ShadowsSoft:
		return "Soft"
	}
	return fmt.Sprintf("ShadowMode(%d)", int(m))
}

// ShadowCasting is how a renderer participates in shadow maps.
type ShadowCasting int

const (
	CastingOff ShadowCasting = iota
	CastingOn
	CastingTwoSided
	CastingShadowsOnly
)

func (c ShadowCasting) String() string {
	switch c {
	case CastingOff:
		return "Off"
	case CastingOn:
		return "On"
	case CastingTwoSided:
		return "TwoSided"
	case CastingShadowsOnly:
		return "ShadowsOnly"
	}
	return fmt.Sprintf("ShadowCasting(%d)", int(c))
}

// Light is a live light owned by the host. The capture mutates it and
// restores every property it touched before returning.
type Light interface {
	Name() string
	Type() LightType

	// Transform returns the pose to sense from. ok is false when the light
	// has nothing to sense from (for example, it is detached from the
	// scene).
	Transform() (t Transform, ok bool)

	// Range is the reach of a spot light. Ignored for other types.
	Range() float64

	Cookie() image.Image
	SetCookie(image.Image)
	Intensity() float64
	SetIntensity(float64)
	ShadowMode() ShadowMode
	SetShadowMode(ShadowMode)
	Enabled() bool
	SetEnabled(bool)
}

// Renderer is a surface renderer in the scene.
type Renderer interface {
	ShadowCasting() ShadowCasting
	SetShadowCasting(ShadowCasting)
}

// SensorDesc describes the temporary orthographic sensor.
type SensorDesc struct {
	Transform  Transform
	HalfExtent float64
	Near       float64
	Far        float64
	Aspect     float64
	Background color.Color

	// Light is the light whose shadows are being captured.
	Light Light
}

// BackdropDesc describes the temporary shadow-receiving surface.
type BackdropDesc struct {
	Transform Transform

	// Size is the edge length of the square surface.
	Size float64

	// Color is the unlit material color.
	Color color.Color

	CastShadows    bool
	ReceiveShadows bool
}

// Sensor renders the scene into a target.
type Sensor interface {
	Render(Target) error
	Release() error
}

// Backdrop is the temporary surface. Its renderer is excluded from shadow
// forcing. Release destroys the surface and its material.
type Backdrop interface {
	Renderer() Renderer
	Release() error
}

// Target is an offscreen color buffer.
type Target interface {
	Size() int
	Format() gputypes.TextureFormat
	ReadPixels() (image.Image, error)
	Release() error
}

// Host supplies the scene and the rendering capabilities a capture needs.
type Host interface {
	// Renderers enumerates every surface renderer currently in the scene.
	Renderers() []Renderer

	CreateSensor(SensorDesc) (Sensor, error)
	CreateBackdrop(BackdropDesc) (Backdrop, error)

	// RefreshLighting brings baked or ambient lighting up to date.
	RefreshLighting() error

	// AllocateTarget allocates a size x size color target.
	AllocateTarget(size int) (Target, error)
}
