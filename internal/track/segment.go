package track

import (
	"errors"
	"fmt"

	"trackgen/internal/coord"
)

const (
	LineWidth  = 0.020
	TrackWidth = 0.800
	// LineOffset is the lateral distance from the centerline to the left
	// (-LineOffset) and right (+LineOffset) boundary lines.
	LineOffset = TrackWidth/2 - LineWidth

	CrosswalkLineWidth = 0.03
	CrosswalkLineGap   = 0.02
)

var (
	ErrEmptyTrack      = errors.New("track has no segments")
	ErrNoStart         = errors.New("first segment is not a Start")
	ErrUnexpectedStart = errors.New("Start segment after the first position")
	ErrNoPredecessor   = errors.New("segment calculated without predecessor")
	ErrUnknownSegment  = errors.New("unknown segment kind")
)

// SegmentError reports the segment a calculation failed on.
type SegmentError struct {
	Index int
	Kind  Kind
	Err   error
}

func (e *SegmentError) Error() string {
	return fmt.Sprintf("segment %d (%s): %v", e.Index, e.Kind, e.Err)
}

func (e *SegmentError) Unwrap() error { return e.Err }

// Segment is a Spec resolved into world coordinates. It only exists fully
// calculated: it is produced by [Calc] from its predecessor.
//
// Which geometry fields are populated depends on the Spec:
//
//	Straight, Crosswalk, ParkingArea, straight Gap, Clothoid: Center, Left, Right
//	Crosswalk, TrafficIsland: Stripes
//	Arc: Arc
//	Intersection: Intersection
//	ParkingArea: Parking
//	TrafficIsland: Island
//	Clothoid: Background
type Segment struct {
	Spec  Spec
	Start coord.Frame
	End   coord.Frame

	Center coord.Polygon
	Left   coord.Polygon
	Right  coord.Polygon

	Stripes    []coord.Polygon
	Background coord.Polygon

	Arc          *ArcGeometry
	Intersection *IntersectionGeometry
	Parking      *ParkingGeometry
	Island       *IslandGeometry
}

// StartDirection is the heading in degrees the segment is entered with.
func (s Segment) StartDirection() float64 { return s.Start.Heading() }

// Direction is the heading in degrees the segment is left with.
func (s Segment) Direction() float64 { return s.End.Heading() }

// Calc resolves spec against its predecessor. A Start takes no predecessor
// (prev must be nil); every other kind requires one.
func Calc(spec Spec, prev *Segment) (Segment, error) {
	if s, ok := spec.(Start); ok {
		if prev != nil {
			return Segment{}, ErrUnexpectedStart
		}
		return calcStart(s), nil
	}
	if prev == nil {
		return Segment{}, ErrNoPredecessor
	}
	start := prev.End

	switch s := spec.(type) {
	case Straight:
		return calcStraight(s, start), nil
	case Arc:
		return calcArc(s, start), nil
	case Crosswalk:
		return calcCrosswalk(s, start), nil
	case Intersection:
		return calcIntersection(s, start), nil
	case Gap:
		return calcGap(s, start), nil
	case ParkingArea:
		return calcParkingArea(s, start), nil
	case TrafficIsland:
		return calcTrafficIsland(s, start), nil
	case Clothoid:
		return calcClothoid(s, start), nil
	default:
		return Segment{}, fmt.Errorf("%w: %T", ErrUnknownSegment, spec)
	}
}

func calcStart(s Start) Segment {
	f := coord.NewFrame(s.X, s.Y, s.Direction, coord.World)
	return Segment{Spec: s, Start: f, End: f}
}

// Finite reports whether every coordinate the segment produced is finite.
func (s Segment) Finite() bool {
	for _, p := range s.Polygons() {
		if !p.Finite() {
			return false
		}
	}
	return coord.NewPoint(0, 0, s.End).Finite()
}

// Polygons returns every polygon of the segment in drawing order.
func (s Segment) Polygons() []coord.Polygon {
	var out []coord.Polygon
	add := func(ps ...coord.Polygon) {
		for _, p := range ps {
			if len(p) > 0 {
				out = append(out, p)
			}
		}
	}
	add(s.Background, s.Center, s.Left, s.Right)
	add(s.Stripes...)
	if a := s.Arc; a != nil {
		add(coord.Polygon{a.StartCenter, a.StartLeft, a.StartRight, a.EndCenter, a.Center})
	}
	if g := s.Intersection; g != nil {
		add(g.Base...)
		add(g.Corners...)
		add(g.StopLines...)
		add(g.CenterLines...)
	}
	if g := s.Parking; g != nil {
		add(g.Outlines...)
		add(g.Separators...)
		add(g.Blockers...)
	}
	if g := s.Island; g != nil {
		add(g.Background, g.Island)
		add(g.Lines...)
	}
	return out
}
