package track

import (
	"math"

	"trackgen/internal/coord"
)

// ArcGeometry holds the anchor points of a turn. Renderers draw true arcs
// from these rather than polylines.
type ArcGeometry struct {
	Center      coord.Point
	StartCenter coord.Point
	StartLeft   coord.Point
	StartRight  coord.Point
	EndCenter   coord.Point

	Radius    float64
	Clockwise bool
	// CenterFrame is the start frame rotated by the turn angle about Center.
	CenterFrame coord.Frame
}

// PolarAngles returns the angles in degrees, measured at the arc center from
// the world x axis, of the start and end points.
func (a ArcGeometry) PolarAngles(startDirection, endDirection float64) (float64, float64) {
	if a.Clockwise {
		return startDirection + 90, endDirection + 90
	}
	return startDirection - 90, endDirection - 90
}

func (s Arc) signedAngle() float64 {
	if s.Clockwise {
		return -s.Angle
	}
	return s.Angle
}

func (s Arc) centerOffset() float64 {
	if s.Clockwise {
		return s.Radius
	}
	return -s.Radius
}

func calcArc(s Arc, f coord.Frame) Segment {
	off := s.centerOffset()
	center := coord.NewFrame(0, -off, s.signedAngle(), f)
	end := coord.NewFrame(0, off, 0, center)

	return Segment{
		Spec:  s,
		Start: f,
		End:   end,
		Arc: &ArcGeometry{
			Center:      coord.NewPoint(0, 0, center),
			StartCenter: coord.NewPoint(0, 0, f),
			StartLeft:   coord.NewPoint(0, -LineOffset, f),
			StartRight:  coord.NewPoint(0, LineOffset, f),
			EndCenter:   coord.NewPoint(0, 0, end),
			Radius:      s.Radius,
			Clockwise:   s.Clockwise,
			CenterFrame: center,
		},
	}
}

// SampleArc approximates the turn of seg with polylines whose vertices are at
// most maxStep degrees apart. It returns nil lines for other segment kinds.
func SampleArc(seg Segment, maxStep float64) (center, left, right coord.Polygon) {
	s, ok := seg.Spec.(Arc)
	if !ok {
		return nil, nil, nil
	}
	n := int(math.Ceil(math.Abs(s.Angle) / maxStep))
	if n < 1 {
		n = 1
	}
	off := s.centerOffset()
	pivot := coord.NewFrame(0, -off, 0, seg.Start)
	for i := 0; i <= n; i++ {
		turned := coord.NewFrame(0, 0, s.signedAngle()*float64(i)/float64(n), pivot)
		pose := coord.NewFrame(0, off, 0, turned)
		center = append(center, coord.NewPoint(0, 0, pose))
		left = append(left, coord.NewPoint(0, -LineOffset, pose))
		right = append(right, coord.NewPoint(0, LineOffset, pose))
	}
	return center, left, right
}
