package lightcookie

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"
)

// Axes in local space. Sensors look down +Z with +Y up.
var (
	axisRight   = r3.Vec{X: 1}
	axisUp      = r3.Vec{Y: 1}
	axisForward = r3.Vec{Z: 1}
)

// Vec3 is a serializable triple, used for Euler angles in degrees.
type Vec3 struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
	Z float64 `json:"z" yaml:"z"`
}

func (v Vec3) String() string {
	return fmt.Sprintf("(%.2f, %.2f, %.2f)", v.X, v.Y, v.Z)
}

// IsZero reports whether all components are zero.
func (v Vec3) IsZero() bool {
	return v.X == 0 && v.Y == 0 && v.Z == 0
}

// Transform is a rigid pose: a position and a unit rotation.
type Transform struct {
	Position r3.Vec
	Rotation quat.Number
}

// Identity returns a transform at the origin looking down +Z.
func Identity() Transform {
	return Transform{Rotation: quat.Number{Real: 1}}
}

// NewTransform returns a transform at pos rotated by the Euler angles
// (degrees).
func NewTransform(pos r3.Vec, euler Vec3) Transform {
	return Transform{Position: pos, Rotation: Euler(euler)}
}

// Euler builds a rotation from angles in degrees, applied Z first, then X,
// then Y.
func Euler(deg Vec3) quat.Number {
	qx := axisAngle(axisRight, deg.X)
	qy := axisAngle(axisUp, deg.Y)
	qz := axisAngle(axisForward, deg.Z)
	return quat.Mul(quat.Mul(qy, qx), qz)
}

func axisAngle(axis r3.Vec, deg float64) quat.Number {
	half := deg * math.Pi / 360
	s := math.Sin(half)
	return quat.Number{Real: math.Cos(half), Imag: axis.X * s, Jmag: axis.Y * s, Kmag: axis.Z * s}
}

// Rotate applies the rotation to v.
func (t Transform) Rotate(v r3.Vec) r3.Vec {
	p := quat.Number{Imag: v.X, Jmag: v.Y, Kmag: v.Z}
	r := quat.Mul(quat.Mul(t.rotation(), p), quat.Conj(t.rotation()))
	return r3.Vec{X: r.Imag, Y: r.Jmag, Z: r.Kmag}
}

// rotation returns the normalized rotation, treating the zero value as
// identity.
func (t Transform) rotation() quat.Number {
	q := t.Rotation
	n := quat.Abs(q)
	if n == 0 {
		return quat.Number{Real: 1}
	}
	return quat.Scale(1/n, q)
}

// Forward returns the viewing direction.
func (t Transform) Forward() r3.Vec { return t.Rotate(axisForward) }

// Right returns the local +X axis.
func (t Transform) Right() r3.Vec { return t.Rotate(axisRight) }

// Up returns the local +Y axis.
func (t Transform) Up() r3.Vec { return t.Rotate(axisUp) }

// WithOffset returns t rotated further by the Euler offset (degrees) in its
// own local frame.
func (t Transform) WithOffset(deg Vec3) Transform {
	if deg.IsZero() {
		return t
	}
	return Transform{
		Position: t.Position,
		Rotation: quat.Mul(t.rotation(), Euler(deg)),
	}
}

// Along returns the point at distance d along the forward axis.
func (t Transform) Along(d float64) r3.Vec {
	return r3.Add(t.Position, r3.Scale(d, t.Forward()))
}

// Local expresses the world point p in t's frame: X right, Y up,
// Z forward.
func (t Transform) Local(p r3.Vec) r3.Vec {
	d := r3.Sub(p, t.Position)
	return r3.Vec{
		X: r3.Dot(d, t.Right()),
		Y: r3.Dot(d, t.Up()),
		Z: r3.Dot(d, t.Forward()),
	}
}
