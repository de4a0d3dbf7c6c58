// Package geom flattens calculated tracks into plain world geometry for
// consumers that only understand points and polylines: the terminal preview
// and GeoJSON/WKT interchange.
package geom

import (
	"math"

	"github.com/paulmach/orb"

	"trackgen/internal/coord"
	"trackgen/internal/track"
)

// ArcStep is the largest angle in degrees between consecutive samples of a
// turn.
const ArcStep = 2.0

type BBox struct {
	MinX float64
	MinY float64
	MaxX float64
	MaxY float64
}

// Layer groups lines for display toggles.
type Layer int

const (
	LayerLanes Layer = iota + 1
	LayerMarkings
	LayerAreas
)

func (l Layer) String() string {
	switch l {
	case LayerLanes:
		return "lanes"
	case LayerMarkings:
		return "markings"
	case LayerAreas:
		return "areas"
	default:
		return "other"
	}
}

func parseLayer(s string) Layer {
	for _, l := range []Layer{LayerLanes, LayerMarkings, LayerAreas} {
		if l.String() == s {
			return l
		}
	}
	return LayerLanes
}

// Line is a polyline, or a closed outline when Closed is set. Segment is the
// index of the track segment it came from, or -1.
type Line struct {
	Points  [][2]float64
	Layer   Layer
	Segment int
	Kind    string
	Closed  bool
}

// Data is a minimal geometry container for rendering
type Data struct {
	Points [][2]float64
	Lines  []Line
	BBox   BBox
}

func finite(p [2]float64) bool {
	return !math.IsNaN(p[0]) && !math.IsNaN(p[1]) && !math.IsInf(p[0], 0) && !math.IsInf(p[1], 0)
}

// finiteRuns splits pts at non-finite vertices, dropping runs too short to
// form a line.
func finiteRuns(pts [][2]float64) [][][2]float64 {
	var runs [][][2]float64
	start := 0
	for i := 0; i <= len(pts); i++ {
		if i < len(pts) && finite(pts[i]) {
			continue
		}
		if i-start >= 2 {
			runs = append(runs, pts[start:i])
		}
		start = i + 1
	}
	return runs
}

// add appends the polygons as lines. Degenerate geometry is propagated by
// the track package as NaN or Inf; such vertices are dropped here and a
// polygon containing one is split into open pieces.
func (d *Data) add(seg int, kind track.Kind, layer Layer, closed bool, pgs ...coord.Polygon) {
	for _, pg := range pgs {
		if len(pg) < 2 {
			continue
		}
		pts := pg.XY()
		runs := finiteRuns(pts)
		whole := len(runs) == 1 && len(runs[0]) == len(pts)
		for _, r := range runs {
			d.Lines = append(d.Lines, Line{
				Points:  r,
				Layer:   layer,
				Segment: seg,
				Kind:    string(kind),
				Closed:  closed && whole,
			})
		}
	}
}

// FromLayout collects every line of a calculated track. Turns are sampled
// at ArcStep; segment end poses become Points.
func FromLayout(l *track.Layout) Data {
	var d Data
	for i, seg := range l.Segments {
		k := seg.Spec.Kind()
		switch seg.Spec.(type) {
		case track.Start:
		case track.Straight, track.Gap, track.Clothoid:
			d.add(i, k, LayerLanes, false, seg.Center, seg.Left, seg.Right)
		case track.Crosswalk:
			d.add(i, k, LayerLanes, false, seg.Center, seg.Left, seg.Right)
			d.add(i, k, LayerMarkings, false, seg.Stripes...)
		case track.ParkingArea:
			d.add(i, k, LayerLanes, false, seg.Center, seg.Left, seg.Right)
			d.add(i, k, LayerAreas, true, seg.Parking.Outlines...)
			d.add(i, k, LayerMarkings, false, seg.Parking.Separators...)
			d.add(i, k, LayerMarkings, false, seg.Parking.Blockers...)
		case track.Arc:
			c, left, right := track.SampleArc(seg, ArcStep)
			d.add(i, k, LayerLanes, false, c, left, right)
		case track.Intersection:
			g := seg.Intersection
			d.add(i, k, LayerLanes, false, g.Corners...)
			d.add(i, k, LayerMarkings, false, g.StopLines...)
			d.add(i, k, LayerMarkings, false, g.CenterLines...)
		case track.TrafficIsland:
			g := seg.Island
			d.add(i, k, LayerLanes, false, g.Lines...)
			d.add(i, k, LayerAreas, true, g.Background, g.Island)
			d.add(i, k, LayerMarkings, false, seg.Stripes...)
		}
		if end := [2]float64{seg.End.X, seg.End.Y}; finite(end) {
			d.Points = append(d.Points, end)
		}
	}
	d.BBox = d.bound()
	return d
}

// Filter returns the lines on the given layers.
func (d Data) Filter(on map[Layer]bool) []Line {
	var out []Line
	for _, l := range d.Lines {
		if on[l.Layer] {
			out = append(out, l)
		}
	}
	return out
}

// Segment returns the lines of segment i.
func (d Data) Segment(i int) []Line {
	var out []Line
	for _, l := range d.Lines {
		if l.Segment == i {
			out = append(out, l)
		}
	}
	return out
}

// Merge appends o's geometry to d.
func (d *Data) Merge(o Data) {
	d.Points = append(d.Points, o.Points...)
	d.Lines = append(d.Lines, o.Lines...)
	d.BBox = d.bound()
}

// bound covers the finite coordinates only.
func (d Data) bound() BBox {
	var mp orb.MultiPoint
	for _, p := range d.Points {
		if finite(p) {
			mp = append(mp, orb.Point(p))
		}
	}
	for _, l := range d.Lines {
		for _, p := range l.Points {
			if finite(p) {
				mp = append(mp, orb.Point(p))
			}
		}
	}
	if len(mp) == 0 {
		return BBox{}
	}
	b := mp.Bound()
	return BBox{MinX: b.Min[0], MinY: b.Min[1], MaxX: b.Max[0], MaxY: b.Max[1]}
}
