package track

import "trackgen/internal/coord"

// centerline fills the center, left and right lines of a straight piece of
// length starting at f and returns the frame at its end.
func centerline(seg *Segment, length float64, f coord.Frame) {
	seg.Start = f
	seg.End = coord.NewFrame(length, 0, 0, f)
	seg.Center = coord.Path(f, [2]float64{0, 0}, [2]float64{length, 0})
	seg.Left = coord.Path(f, [2]float64{0, -LineOffset}, [2]float64{length, -LineOffset})
	seg.Right = coord.Path(f, [2]float64{0, LineOffset}, [2]float64{length, LineOffset})
}

func calcStraight(s Straight, f coord.Frame) Segment {
	seg := Segment{Spec: s}
	centerline(&seg, s.Length, f)
	return seg
}

func calcCrosswalk(s Crosswalk, f coord.Frame) Segment {
	seg := Segment{Spec: s}
	centerline(&seg, s.Length, f)
	seg.Stripes = stripes(f, 0, s.Length, 0, TrackWidth)
	return seg
}

// exitFrame returns the frame a junction of the given footprint is left with.
func exitFrame(length float64, dir Direction, f coord.Frame) coord.Frame {
	switch dir {
	case DirectionLeft:
		return coord.NewFrame(length/2, length/2, 90, f)
	case DirectionRight:
		return coord.NewFrame(length/2, -length/2, -90, f)
	default:
		return coord.NewFrame(length, 0, 0, f)
	}
}

// calcGap draws nothing. A straight gap still carries its lane lines so the
// ground truth stays continuous through it.
func calcGap(s Gap, f coord.Frame) Segment {
	seg := Segment{Spec: s}
	if s.Direction == DirectionStraight || s.Direction == "" {
		centerline(&seg, s.Length, f)
	}
	seg.Start = f
	seg.End = exitFrame(s.Length, s.Direction, f)
	return seg
}
