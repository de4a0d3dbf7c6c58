// Package clothoid approximates Euler spirals (clothoids), curves whose
// curvature grows linearly with arc length.
//
// A spiral with parameter a satisfies a² = R·L: after arc length l the
// tangent has turned by θ(l) = l²/(2a²) radians. Positions are the Fresnel
// integrals of θ, evaluated with a truncated power series.
package clothoid

import "math"

// Terms is the number of series terms used by [Point].
const Terms = 20

// Step is the arc-length distance between consecutive samples.
const Step = 0.04

// Direction selects the turning side.
type Direction int

const (
	Left Direction = iota
	Right
)

// Sign is +1 for left turns and -1 for right turns.
func (d Direction) Sign() float64 {
	if d == Right {
		return -1
	}
	return 1
}

func (d Direction) String() string {
	if d == Right {
		return "right"
	}
	return "left"
}

// Type selects whether curvature increases (Closing) or decreases (Opening)
// along the curve.
type Type int

const (
	Closing Type = iota
	Opening
)

func (t Type) String() string {
	if t == Opening {
		return "opening"
	}
	return "closing"
}

// Pose is a sample on a curve: a position and the tangent heading in radians.
type Pose struct {
	X, Y    float64
	Heading float64
}

// Point returns the position of the left-turning spiral with parameter a at
// arc length l, starting at the origin heading along +x.
func Point(a, l float64) (x, y float64) {
	t := l * l / (2 * a * a)
	t2 := t * t

	// cos and sin series of the integrand, integrated term by term:
	//   x = l·Σ (-1)^n t^(2n)   / ((4n+1)(2n)!)
	//   y = l·Σ (-1)^n t^(2n+1) / ((4n+3)(2n+1)!)
	c := 1.0 // (-1)^n t^(2n) / (2n)!
	s := t   // (-1)^n t^(2n+1) / (2n+1)!
	for n := 0; n < Terms; n++ {
		x += c / float64(4*n+1)
		y += s / float64(4*n+3)
		k := float64(2*n + 1)
		c *= -t2 / (k * (k + 1))
		s *= -t2 / ((k + 1) * (k + 2))
	}
	return l * x, l * y
}

// Tangent returns the heading in radians of the spiral at arc length l.
func Tangent(a, l float64) float64 {
	return l * l / (2 * a * a)
}

// ArcLength returns the arc length at which the spiral's tangent has turned
// by theta degrees.
func ArcLength(a, theta float64) float64 {
	return a * math.Sqrt(2*theta*math.Pi/180)
}
