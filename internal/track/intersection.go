package track

import "trackgen/internal/coord"

// IntersectionGeometry is the marking of a four-way junction.
type IntersectionGeometry struct {
	// Base holds the two crossing road axes, drawn as track background.
	Base []coord.Polygon
	// Corners are the four L-shaped boundary lines: entry -y, entry +y,
	// exit -y, exit +y. Corners 0/1 and 2/3 pair up point by point.
	Corners []coord.Polygon
	// StopLines cover the incoming lane of every leg at the box edge.
	StopLines []coord.Polygon
	// CenterLines are the dashed stubs on each approach leg.
	CenterLines []coord.Polygon
}

func calcIntersection(s Intersection, f coord.Frame) Segment {
	l := s.Length
	h := l / 2
	o := LineOffset
	p := func(xy ...[2]float64) coord.Polygon { return coord.Path(f, xy...) }

	g := &IntersectionGeometry{
		Base: []coord.Polygon{
			p([2]float64{0, 0}, [2]float64{l, 0}),
			p([2]float64{h, -h}, [2]float64{h, h}),
		},
		Corners: []coord.Polygon{
			p([2]float64{0, -o}, [2]float64{h - o, -o}, [2]float64{h - o, -h}),
			p([2]float64{0, o}, [2]float64{h - o, o}, [2]float64{h - o, h}),
			p([2]float64{l, -o}, [2]float64{h + o, -o}, [2]float64{h + o, -h}),
			p([2]float64{l, o}, [2]float64{h + o, o}, [2]float64{h + o, h}),
		},
		StopLines: []coord.Polygon{
			p([2]float64{h - o, -o}, [2]float64{h - o, 0}),
			p([2]float64{h - o, h - o}, [2]float64{h, h - o}),
			p([2]float64{h + o, o}, [2]float64{h + o, 0}),
			p([2]float64{h + o, -(h - o)}, [2]float64{h, -(h - o)}),
		},
		CenterLines: []coord.Polygon{
			p([2]float64{0, 0}, [2]float64{h - o, 0}),
			p([2]float64{h + o, 0}, [2]float64{l, 0}),
			p([2]float64{h, -h}, [2]float64{h, -(h - o)}),
			p([2]float64{h, h - o}, [2]float64{h, h}),
		},
	}

	return Segment{
		Spec:         s,
		Start:        f,
		End:          exitFrame(l, s.Direction, f),
		Intersection: g,
	}
}
