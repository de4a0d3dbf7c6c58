package track

import "trackgen/internal/coord"

// IslandGeometry is the road around a traffic island.
type IslandGeometry struct {
	// Lines are the four lane boundaries, each going straight-curve-straight-
	// curve: island edge -y, island edge +y, outer line -y, outer line +y.
	Lines []coord.Polygon
	// Background encloses the whole widened road.
	Background coord.Polygon
	// Island is the outline of the median itself.
	Island coord.Polygon

	CurveSegmentLength float64
	Curvature          float64
}

func calcTrafficIsland(s TrafficIsland, f coord.Frame) Segment {
	k := s.CurveSegmentLength
	c := s.CrosswalkLength
	length := 2*k + c
	w := s.IslandWidth / 2
	o := LineOffset
	t := TrackWidth / 2

	bulge := func(base, widened float64) coord.Polygon {
		return coord.Path(f,
			[2]float64{0, base},
			[2]float64{k, widened},
			[2]float64{k + c, widened},
			[2]float64{length, base},
		)
	}

	innerLeft := bulge(0, -w)
	innerRight := bulge(0, w)
	outerLeft := bulge(-o, -(w + o))
	outerRight := bulge(o, w+o)

	background := append(bulge(-t, -(w+t)), bulge(t, w+t).Reversed()...)
	island := append(innerLeft[:len(innerLeft):len(innerLeft)], innerRight.Reversed()...)

	seg := Segment{
		Spec:  s,
		Start: f,
		End:   coord.NewFrame(length, 0, 0, f),
		Island: &IslandGeometry{
			Lines:              []coord.Polygon{innerLeft, innerRight, outerLeft, outerRight},
			Background:         background,
			Island:             island,
			CurveSegmentLength: k,
			Curvature:          s.Curvature,
		},
	}
	lane := w + o/2
	seg.Stripes = append(stripes(f, k, k+c, -lane, t), stripes(f, k, k+c, lane, t)...)
	return seg
}
