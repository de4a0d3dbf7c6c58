// Package render draws calculated tracks onto vector and raster canvases.
package render

import "math"

// View is the world window a canvas shows. X, Y is the world position of
// the lower left corner; Scale is pixels per meter.
type View struct {
	X, Y          float64
	Width, Height float64
	Scale         float64
}

// Pixels returns the canvas size in pixels.
func (v View) Pixels() (int, int) {
	return int(math.Round(v.Width * v.Scale)), int(math.Round(v.Height * v.Scale))
}

// Style describes how a path is stroked and filled. Empty colors disable the
// respective operation.
type Style struct {
	Stroke      string
	Width       float64
	Dash        []float64
	Fill        string
	FillOpacity float64 // 0 means opaque
}

func (s Style) fillOpacity() float64 {
	if s.FillOpacity == 0 {
		return 1
	}
	return s.FillOpacity
}

// Canvas is a drawing surface in world coordinates: meters, y pointing up.
type Canvas interface {
	View() View
	// Clear fills the whole view.
	Clear(color string, opacity float64)
	// Image stretches an image file over the world rectangle whose lower
	// left corner is (x, y).
	Image(file string, x, y, w, h float64) error
	Draw(p *Path, s Style)
	// Text writes one line per entry, the first line's baseline at (x, y).
	Text(x, y, size float64, color string, lines ...string)
}

type opKind uint8

const (
	opMove opKind = iota
	opLine
	opCubic
	opArc
	opClose
)

type pathOp struct {
	kind opKind
	// move/line: p[0]; cubic: p[0], p[1] controls, p[2] end; arc: p[0]
	// center, p[1] start, p[2] end
	p [3][2]float64
	// arc only
	r, from, sweep float64
}

// Path is a sequence of subpaths in world coordinates. Arcs are kept as arcs
// so vector canvases can write them exactly.
type Path struct {
	ops   []pathOp
	cur   [2]float64
	start [2]float64
	open  bool
}

func (p *Path) MoveTo(x, y float64) {
	p.ops = append(p.ops, pathOp{kind: opMove, p: [3][2]float64{{x, y}}})
	p.cur, p.start, p.open = [2]float64{x, y}, [2]float64{x, y}, true
}

func (p *Path) LineTo(x, y float64) {
	if !p.open {
		p.MoveTo(x, y)
		return
	}
	p.ops = append(p.ops, pathOp{kind: opLine, p: [3][2]float64{{x, y}}})
	p.cur = [2]float64{x, y}
}

func (p *Path) CubicTo(c1x, c1y, c2x, c2y, x, y float64) {
	if !p.open {
		p.MoveTo(p.cur[0], p.cur[1])
	}
	p.ops = append(p.ops, pathOp{kind: opCubic, p: [3][2]float64{{c1x, c1y}, {c2x, c2y}, {x, y}}})
	p.cur = [2]float64{x, y}
}

// Arc adds a circular arc around (cx, cy) from polar angle from to polar
// angle to, in degrees. Positive sweeps run counter-clockwise. The arc is
// connected to the current point by a line, or starts a new subpath.
func (p *Path) Arc(cx, cy, r, from, to float64) {
	s0, c0 := math.Sincos(from * math.Pi / 180)
	s1, c1 := math.Sincos(to * math.Pi / 180)
	start := [2]float64{cx + r*c0, cy + r*s0}
	end := [2]float64{cx + r*c1, cy + r*s1}
	p.LineTo(start[0], start[1])
	p.ops = append(p.ops, pathOp{
		kind:  opArc,
		p:     [3][2]float64{{cx, cy}, start, end},
		r:     r,
		from:  from,
		sweep: to - from,
	})
	p.cur = end
}

func (p *Path) Close() {
	if !p.open {
		return
	}
	p.ops = append(p.ops, pathOp{kind: opClose})
	p.cur, p.open = p.start, false
}

// Polyline builds an open path through pts.
func Polyline(pts [][2]float64) *Path {
	p := &Path{}
	for _, pt := range pts {
		p.LineTo(pt[0], pt[1])
	}
	return p
}

// Circle builds a closed circle.
func Circle(cx, cy, r float64) *Path {
	p := &Path{}
	p.Arc(cx, cy, r, 0, 360)
	p.Close()
	return p
}

// arcCubics splits an arc into cubic Bézier pieces of at most 90 degrees.
// Each piece is control1, control2, end; the first piece starts at the arc
// start.
func arcCubics(cx, cy, r, from, sweep float64) [][3][2]float64 {
	n := int(math.Ceil(math.Abs(sweep) / 90))
	if n == 0 {
		return nil
	}
	step := sweep / float64(n) * math.Pi / 180
	k := 4.0 / 3.0 * math.Tan(step/4)
	a := from * math.Pi / 180
	out := make([][3][2]float64, 0, n)
	for i := 0; i < n; i++ {
		s1, c1 := math.Sincos(a)
		s2, c2 := math.Sincos(a + step)
		out = append(out, [3][2]float64{
			{cx + r*(c1-k*s1), cy + r*(s1+k*c1)},
			{cx + r*(c2+k*s2), cy + r*(s2-k*c2)},
			{cx + r*c2, cy + r*s2},
		})
		a += step
	}
	return out
}
