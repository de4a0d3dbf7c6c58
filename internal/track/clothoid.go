package track

import (
	"trackgen/internal/clothoid"
	"trackgen/internal/coord"
)

func (s Clothoid) spiral() clothoid.Spiral {
	sp := clothoid.Spiral{A: s.A, Angle: s.Angle, Offset: s.AngleOffset}
	if s.Direction == ClothoidRight {
		sp.Direction = clothoid.Right
	}
	if s.Type == ClothoidOpening {
		sp.Type = clothoid.Opening
	}
	return sp
}

func calcClothoid(s Clothoid, f coord.Frame) Segment {
	sp := s.spiral()
	poses := sp.Sample()

	toPolygon := func(ps []clothoid.Pose) coord.Polygon {
		out := make(coord.Polygon, len(ps))
		for i, p := range ps {
			out[i] = coord.NewPoint(p.X, p.Y, f)
		}
		return out
	}

	seg := Segment{
		Spec:   s,
		Start:  f,
		Center: toPolygon(poses),
		Left:   toPolygon(clothoid.Move(poses, -LineOffset)),
		Right:  toPolygon(clothoid.Move(poses, LineOffset)),
	}
	last := poses[len(poses)-1]
	seg.End = coord.NewFrame(last.X, last.Y, s.Angle*sp.Direction.Sign(), f)
	seg.Background = append(seg.Right[:len(seg.Right):len(seg.Right)], seg.Left.Reversed()...)
	return seg
}
