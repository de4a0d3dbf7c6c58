// Package coord resolves segment-local 2D coordinates into the world frame.
package coord

import (
	"fmt"
	"math"
)

// Frame is a 2D pose expressed in world coordinates: the origin of a local
// coordinate system and the heading of its positive x axis.
//
// A Frame is a flat rigid transform. Chaining a local offset onto a parent is
// done with [NewFrame] or [Frame.Then], which always produce a new value;
// frames are never mutated after construction.
type Frame struct {
	X   float64
	Y   float64
	Yaw float64 // radians, counter-clockwise from the world x axis
}

// World is the root frame (identity pose).
var World = Frame{}

// NewFrame returns the frame obtained by applying the local offset (x, y, yaw)
// to parent. yaw is given in degrees.
func NewFrame(x, y, yaw float64, parent Frame) Frame {
	return parent.Then(Frame{X: x, Y: y, Yaw: deg2rad(yaw)})
}

// Then composes f with a pose local expressed in f's coordinates. The result
// is the world pose of local.
//
// Composition is associative: a.Then(b).Then(c) == a.Then(b.Then(c)) up to
// floating point rounding.
func (f Frame) Then(local Frame) Frame {
	x, y := f.Transform(local.X, local.Y)
	return Frame{X: x, Y: y, Yaw: f.Yaw + local.Yaw}
}

// Transform maps the local point (lx, ly) to world coordinates: rotate by the
// frame's yaw, then translate by its origin.
func (f Frame) Transform(lx, ly float64) (float64, float64) {
	sin, cos := math.Sincos(f.Yaw)
	return f.X + cos*lx - sin*ly, f.Y + sin*lx + cos*ly
}

// Heading returns the frame's yaw in degrees.
func (f Frame) Heading() float64 {
	return rad2deg(f.Yaw)
}

// Affine returns the coefficients (a, b, c, d, e, f) of the augmented matrix
//
//	| a c e |
//	| b d f |
//	| 0 0 1 |
//
// mapping local to world coordinates.
func (f Frame) Affine() [6]float64 {
	sin, cos := math.Sincos(f.Yaw)
	return [6]float64{cos, sin, -sin, cos, f.X, f.Y}
}

func (f Frame) String() string {
	return fmt.Sprintf("(%g, %g, %g°)", f.X, f.Y, f.Heading())
}

func deg2rad(d float64) float64 { return d * math.Pi / 180 }
func rad2deg(r float64) float64 { return r * 180 / math.Pi }

// Radians converts degrees to radians.
func Radians(deg float64) float64 { return deg2rad(deg) }

// Degrees converts radians to degrees.
func Degrees(rad float64) float64 { return rad2deg(rad) }
