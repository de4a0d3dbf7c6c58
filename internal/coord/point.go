package coord

import (
	"fmt"
	"math"
)

// Point is a coordinate known both in the frame it was declared in and in
// the world. The world position is resolved once at construction.
type Point struct {
	LX, LY float64 // local
	X, Y   float64 // world
}

// NewPoint resolves the local point (lx, ly) through f.
func NewPoint(lx, ly float64, f Frame) Point {
	x, y := f.Transform(lx, ly)
	return Point{LX: lx, LY: ly, X: x, Y: y}
}

// XY returns the world coordinates.
func (p Point) XY() [2]float64 { return [2]float64{p.X, p.Y} }

// Finite reports whether both world coordinates are finite.
func (p Point) Finite() bool {
	return !math.IsNaN(p.X) && !math.IsInf(p.X, 0) && !math.IsNaN(p.Y) && !math.IsInf(p.Y, 0)
}

func (p Point) String() string {
	return fmt.Sprintf("Local: (%g,%g), World: (%g,%g)", p.LX, p.LY, p.X, p.Y)
}

// Polygon is an ordered sequence of points. Depending on its use it is an
// open polyline or a closed outline; order defines the stroke path.
type Polygon []Point

// Path builds a polygon from local (x, y) pairs resolved through f.
func Path(f Frame, xy ...[2]float64) Polygon {
	p := make(Polygon, len(xy))
	for i, v := range xy {
		p[i] = NewPoint(v[0], v[1], f)
	}
	return p
}

// XY returns the world coordinates of every point.
func (p Polygon) XY() [][2]float64 {
	out := make([][2]float64, len(p))
	for i, pt := range p {
		out[i] = pt.XY()
	}
	return out
}

// Reversed returns a copy of p in reverse order.
func (p Polygon) Reversed() Polygon {
	out := make(Polygon, len(p))
	for i, pt := range p {
		out[len(p)-1-i] = pt
	}
	return out
}

// Finite reports whether every point of p is finite.
func (p Polygon) Finite() bool {
	for _, pt := range p {
		if !pt.Finite() {
			return false
		}
	}
	return true
}
