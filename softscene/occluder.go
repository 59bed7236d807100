package softscene

import (
	"fmt"
	"sync"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/gogpu/lightcookie"
)

// Shape is the geometry of an occluder.
type Shape int

const (
	ShapeSphere Shape = iota
	ShapeQuad
)

func (s Shape) String() string {
	switch s {
	case ShapeSphere:
		return "sphere"
	case ShapeQuad:
		return "quad"
	}
	return fmt.Sprintf("Shape(%d)", int(s))
}

// Occluder is a renderer that can block light. It implements
// lightcookie.Renderer.
type Occluder struct {
	Name  string
	Shape Shape

	// Pose places the occluder. Quads lie in the pose's local XY plane.
	Pose lightcookie.Transform

	// Size is the sphere radius or the quad half-size.
	Size float64

	// Opacity is how much light the occluder blocks, in [0,1].
	Opacity float64

	mu      sync.Mutex
	casting lightcookie.ShadowCasting
}

var _ lightcookie.Renderer = (*Occluder)(nil)

// Sphere creates an opaque, shadow-casting sphere.
func Sphere(center r3.Vec, radius float64) *Occluder {
	pose := lightcookie.Identity()
	pose.Position = center
	return &Occluder{
		Name:    "sphere",
		Shape:   ShapeSphere,
		Pose:    pose,
		Size:    radius,
		Opacity: 1,
		casting: lightcookie.CastingOn,
	}
}

// Quad creates an opaque, shadow-casting square with the given pose and
// half-size.
func Quad(pose lightcookie.Transform, halfSize float64) *Occluder {
	return &Occluder{
		Name:    "quad",
		Shape:   ShapeQuad,
		Pose:    pose,
		Size:    halfSize,
		Opacity: 1,
		casting: lightcookie.CastingOn,
	}
}

// WithCasting sets the shadow casting mode and returns o.
func (o *Occluder) WithCasting(c lightcookie.ShadowCasting) *Occluder {
	o.SetShadowCasting(c)
	return o
}

// ShadowCasting returns the casting mode.
func (o *Occluder) ShadowCasting() lightcookie.ShadowCasting {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.casting
}

// SetShadowCasting sets the casting mode.
func (o *Occluder) SetShadowCasting(c lightcookie.ShadowCasting) {
	o.mu.Lock()
	o.casting = c
	o.mu.Unlock()
}

// casts reports whether the occluder contributes to shadow maps.
func (o *Occluder) casts() bool {
	return o.ShadowCasting() != lightcookie.CastingOff
}

// corners returns the four world-space corners of a quad.
func (o *Occluder) corners() [4]r3.Vec {
	c := o.Pose.Position
	right := r3.Scale(o.Size, o.Pose.Right())
	up := r3.Scale(o.Size, o.Pose.Up())
	return [4]r3.Vec{
		r3.Sub(r3.Sub(c, right), up),
		r3.Sub(r3.Add(c, right), up),
		r3.Add(r3.Add(c, right), up),
		r3.Add(r3.Sub(c, right), up),
	}
}
