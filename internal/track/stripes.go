package track

import (
	"math"

	"trackgen/internal/coord"
)

// stripeOffsets returns the lateral offsets of crosswalk stripes packed into
// a band of the given width, measured from the band's center: the center
// stripe first, then pairs at +y and -y.
//
// The paintable part of the band excludes both boundary lines, one stripe
// width and a gap on each side. Each half holds floor(half/(width+gap))
// stripes spaced evenly over it.
func stripeOffsets(width float64) []float64 {
	pack := CrosswalkLineWidth + CrosswalkLineGap
	half := (width - (2*LineWidth + CrosswalkLineWidth + 2*CrosswalkLineGap)) / 2
	n := int(math.Floor(half / pack))
	offsets := []float64{0}
	if n <= 0 {
		return offsets
	}
	spacing := half / float64(n)
	for i := 0; i < n; i++ {
		y := spacing*float64(i) + pack
		offsets = append(offsets, y, -y)
	}
	return offsets
}

// stripes returns one two-point polygon per stripe running from x0 to x1 in
// frame f, centered laterally on centerY.
func stripes(f coord.Frame, x0, x1, centerY, width float64) []coord.Polygon {
	offsets := stripeOffsets(width)
	out := make([]coord.Polygon, 0, len(offsets))
	for _, y := range offsets {
		out = append(out, coord.Path(f, [2]float64{x0, centerY + y}, [2]float64{x1, centerY + y}))
	}
	return out
}
