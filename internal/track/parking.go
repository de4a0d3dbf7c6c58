package track

import (
	"math"

	"trackgen/internal/coord"
)

// ParkingGeometry holds the lot outlines of a parking area, the separators
// between neighbouring spots and the crosses marking blocked spots.
type ParkingGeometry struct {
	Outlines   []coord.Polygon
	Separators []coord.Polygon
	Blockers   []coord.Polygon
}

const (
	sideLeft  = -1.0
	sideRight = 1.0
)

func calcParkingArea(s ParkingArea, f coord.Frame) Segment {
	seg := Segment{Spec: s}
	centerline(&seg, s.Length, f)

	g := &ParkingGeometry{}
	for _, lot := range s.RightLots {
		g.addLot(lot, sideRight, f)
	}
	for _, lot := range s.LeftLots {
		g.addLot(lot, sideLeft, f)
	}
	seg.Parking = g
	return seg
}

// addLot lays out lot on one side of the lane. The outline is a trapezoid
// from the boundary line out to the back of the lot; its diagonal edges have
// a run of depth/tan(angle) along the lane.
func (g *ParkingGeometry) addLot(lot ParkingLot, side float64, f coord.Frame) {
	edge := side * LineOffset
	back := side * (LineOffset + lot.Depth)
	run := lot.Depth / math.Tan(coord.Radians(lot.OpeningEndingAngle))

	total := 0.0
	for _, spot := range lot.Spots {
		total += spot.Length
	}

	x0 := lot.Start
	x1 := x0 + run
	x2 := x1 + total
	x3 := x2 + run
	g.Outlines = append(g.Outlines, coord.Path(f,
		[2]float64{x0, edge},
		[2]float64{x1, back},
		[2]float64{x2, back},
		[2]float64{x3, edge},
	))

	x := x1
	for i, spot := range lot.Spots {
		next := x + spot.Length
		if i > 0 {
			g.Separators = append(g.Separators, coord.Path(f, [2]float64{x, edge}, [2]float64{x, back}))
		}
		if spot.Kind == SpotBlocked {
			g.Blockers = append(g.Blockers,
				coord.Path(f, [2]float64{x, edge}, [2]float64{next, back}),
				coord.Path(f, [2]float64{x, back}, [2]float64{next, edge}),
			)
		}
		x = next
	}
}
