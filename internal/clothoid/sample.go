package clothoid

import "math"

// Spiral describes one clothoid piece: the part of the spiral with parameter A
// whose tangent turns from Offset to Offset+Angle degrees.
type Spiral struct {
	A         float64
	Angle     float64 // degrees
	Offset    float64 // degrees
	Direction Direction
	Type      Type
}

// Sample returns poses along s, in a frame where the first pose sits at the
// origin heading along +x. Samples are Step apart in arc length and the exact
// end of the piece is always included.
//
// Closing pieces are taken straight from the spiral. Opening pieces reuse the
// same samples through [Invert], which swaps the tight and the loose end.
// Right-turning pieces are mirrored across the x axis.
func (s Spiral) Sample() []Pose {
	l0 := ArcLength(s.A, s.Offset)
	l1 := ArcLength(s.A, s.Offset+s.Angle)
	x0, y0 := Point(s.A, l0)
	th0 := s.Offset * math.Pi / 180
	sin0, cos0 := math.Sincos(-th0)

	pose := func(l float64) Pose {
		x, y := Point(s.A, l)
		dx, dy := x-x0, y-y0
		return Pose{
			X:       cos0*dx - sin0*dy,
			Y:       sin0*dx + cos0*dy,
			Heading: Tangent(s.A, l) - th0,
		}
	}

	var poses []Pose
	n := int(math.Floor((l1 - l0) / Step))
	for i := 0; i <= n; i++ {
		poses = append(poses, pose(l0+float64(i)*Step))
	}
	if last := l0 + float64(n)*Step; len(poses) == 0 || l1-last > 1e-9 {
		poses = append(poses, pose(l1))
	}

	if s.Type == Opening {
		poses = Invert(poses)
	}
	if s.Direction == Right {
		poses = Mirror(poses)
	}
	return poses
}

// Invert traverses poses from the last to the first and re-expresses them so
// the new first pose is at the origin heading along +x, turning to the same
// side as the input. A closing curve becomes an opening one and vice versa.
func Invert(poses []Pose) []Pose {
	if len(poses) == 0 {
		return nil
	}
	end := poses[len(poses)-1]
	phi := end.Heading
	sin, cos := math.Sincos(-phi)
	out := make([]Pose, len(poses))
	for i := range poses {
		p := poses[len(poses)-1-i]
		dx, dy := end.X-p.X, end.Y-p.Y
		x := cos*dx - sin*dy
		y := sin*dx + cos*dy
		out[i] = Pose{X: x, Y: -y, Heading: phi - p.Heading}
	}
	return out
}

// Mirror reflects poses across the x axis, turning a left curve into a right
// one.
func Mirror(poses []Pose) []Pose {
	out := make([]Pose, len(poses))
	for i, p := range poses {
		out[i] = Pose{X: p.X, Y: -p.Y, Heading: -p.Heading}
	}
	return out
}

// Move displaces every pose perpendicular to its tangent by offset. Positive
// offsets move to the left of the direction of travel.
func Move(poses []Pose, offset float64) []Pose {
	out := make([]Pose, len(poses))
	for i, p := range poses {
		sin, cos := math.Sincos(p.Heading)
		out[i] = Pose{X: p.X - offset*sin, Y: p.Y + offset*cos, Heading: p.Heading}
	}
	return out
}
