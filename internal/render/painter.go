package render

import (
	"fmt"
	"math"

	"trackgen/internal/coord"
	"trackgen/internal/track"
)

// LaneWidth is the distance from the center line to the outer lines of a
// turn.
const LaneWidth = 0.380

// Theme holds the colors a Painter uses.
type Theme struct {
	Track  string
	Line   string
	Marker string
	Wedge  string
}

var DefaultTheme = Theme{
	Track:  "#000000",
	Line:   "#ffffff",
	Marker: "#ff0000",
	Wedge:  "#0000ff",
}

// centerDash is the dash pattern of center lines.
var centerDash = []float64{0.16, 0.16}

// Painter draws calculated tracks. The zero value uses DefaultTheme.
type Painter struct {
	Theme Theme
}

func (p *Painter) theme() Theme {
	if p.Theme == (Theme{}) {
		return DefaultTheme
	}
	return p.Theme
}

func (p *Painter) background() Style {
	return Style{Stroke: p.theme().Track, Width: track.TrackWidth}
}

func (p *Painter) centerLine() Style {
	return Style{Stroke: p.theme().Line, Width: track.LineWidth, Dash: centerDash}
}

func (p *Painter) outerLine() Style {
	return Style{Stroke: p.theme().Line, Width: track.LineWidth}
}

func (p *Painter) stripe() Style {
	return Style{Stroke: p.theme().Line, Width: track.CrosswalkLineWidth}
}

func poly(pg coord.Polygon) *Path { return Polyline(pg.XY()) }

// DrawTrack draws the track background followed by every segment.
func (p *Painter) DrawTrack(c Canvas, l *track.Layout) error {
	switch bg := l.Track.Background.(type) {
	case track.BackgroundColor:
		c.Clear(bg.Color, bg.Opacity)
	case track.BackgroundImage:
		if err := c.Image(bg.File, bg.X, bg.Y, bg.Width, bg.Height); err != nil {
			return fmt.Errorf("background image: %w", err)
		}
	}
	for i, seg := range l.Segments {
		if err := p.DrawSegment(c, seg); err != nil {
			return &track.SegmentError{Index: i, Kind: track.KindOf(seg.Spec), Err: err}
		}
	}
	return nil
}

// DrawSegment draws one calculated segment.
func (p *Painter) DrawSegment(c Canvas, seg track.Segment) error {
	switch s := seg.Spec.(type) {
	case track.Start, track.Gap:
	case track.Straight:
		p.drawLane(c, seg)
	case track.Crosswalk:
		c.Draw(poly(seg.Center), p.background())
		c.Draw(poly(seg.Left), p.outerLine())
		c.Draw(poly(seg.Right), p.outerLine())
		for _, st := range seg.Stripes {
			c.Draw(poly(st), p.stripe())
		}
	case track.ParkingArea:
		p.drawLane(c, seg)
		g := seg.Parking
		for _, o := range g.Outlines {
			path := poly(o)
			path.Close()
			c.Draw(path, Style{Fill: p.theme().Track, Stroke: p.theme().Line, Width: track.LineWidth})
		}
		for _, pg := range g.Separators {
			c.Draw(poly(pg), p.outerLine())
		}
		for _, pg := range g.Blockers {
			c.Draw(poly(pg), p.outerLine())
		}
	case track.Arc:
		p.drawArc(c, seg, s)
	case track.Intersection:
		g := seg.Intersection
		for _, pg := range g.Base {
			c.Draw(poly(pg), p.background())
		}
		for _, pg := range g.Corners {
			c.Draw(poly(pg), p.outerLine())
		}
		for _, pg := range g.StopLines {
			c.Draw(poly(pg), Style{Stroke: p.theme().Line, Width: 2 * track.LineWidth})
		}
		for _, pg := range g.CenterLines {
			c.Draw(poly(pg), p.centerLine())
		}
	case track.TrafficIsland:
		p.drawIsland(c, seg)
	case track.Clothoid:
		p.drawLane(c, seg)
	default:
		return fmt.Errorf("%w: %T", track.ErrUnknownSegment, seg.Spec)
	}
	return nil
}

// drawLane draws a road piece with dashed center line and solid outer lines.
func (p *Painter) drawLane(c Canvas, seg track.Segment) {
	c.Draw(poly(seg.Center), p.background())
	c.Draw(poly(seg.Center), p.centerLine())
	c.Draw(poly(seg.Left), p.outerLine())
	c.Draw(poly(seg.Right), p.outerLine())
}

func (p *Painter) drawArc(c Canvas, seg track.Segment, s track.Arc) {
	a := seg.Arc
	from, to := a.PolarAngles(seg.StartDirection(), seg.Direction())
	r := math.Abs(s.Radius)
	arc := func(radius float64) *Path {
		path := &Path{}
		path.Arc(a.Center.X, a.Center.Y, radius, from, to)
		return path
	}
	c.Draw(arc(r), p.background())
	c.Draw(arc(r-LaneWidth), p.outerLine())
	c.Draw(arc(r+LaneWidth), p.outerLine())
	c.Draw(arc(r), p.centerLine())
}

func (p *Painter) drawIsland(c Canvas, seg track.Segment) {
	g := seg.Island
	h := g.Curvature * g.CurveSegmentLength
	bg := smooth(g.Background, seg.Start, h)
	bg.Close()
	c.Draw(bg, Style{Fill: p.theme().Track})
	for _, l := range g.Lines {
		c.Draw(smooth(l, seg.Start, h), p.outerLine())
	}
	for _, st := range seg.Stripes {
		c.Draw(poly(st), p.stripe())
	}
}

// smooth joins pg's points, replacing every edge that changes both local
// coordinates with a cubic whose handles run handle meters along the local
// x axis of f.
func smooth(pg coord.Polygon, f coord.Frame, handle float64) *Path {
	path := &Path{}
	if len(pg) == 0 {
		return path
	}
	sin, cos := math.Sincos(f.Yaw)
	path.MoveTo(pg[0].X, pg[0].Y)
	for i := 1; i < len(pg); i++ {
		a, b := pg[i-1], pg[i]
		if a.LX == b.LX || a.LY == b.LY {
			path.LineTo(b.X, b.Y)
			continue
		}
		d := handle
		if b.LX < a.LX {
			d = -handle
		}
		path.CubicTo(a.X+d*cos, a.Y+d*sin, b.X-d*cos, b.Y-d*sin, b.X, b.Y)
	}
	return path
}

const (
	markerRadius = 0.010
	labelSize    = 0.1
	labelOffset  = 0.032
)

func (p *Painter) marker(c Canvas, pt coord.Point, extra ...string) {
	col := p.theme().Marker
	c.Draw(Circle(pt.X, pt.Y, markerRadius), Style{Fill: col})
	lines := append([]string{fmt.Sprintf("%.3f", pt.X), fmt.Sprintf("%.3f", pt.Y)}, extra...)
	c.Text(pt.X+labelOffset, pt.Y, labelSize, col, lines...)
}

// DrawVerbose overlays anchor points with their world coordinates. Turns
// additionally get their swept wedge and a radius/angle label.
func (p *Painter) DrawVerbose(c Canvas, l *track.Layout) {
	for _, seg := range l.Segments {
		switch s := seg.Spec.(type) {
		case track.Start:
			p.marker(c, coord.NewPoint(0, 0, seg.Start))
		case track.Straight, track.Crosswalk, track.ParkingArea:
			p.marker(c, seg.Center[0])
			p.marker(c, seg.Left[0])
			p.marker(c, seg.Right[0])
		case track.Arc:
			a := seg.Arc
			from, to := a.PolarAngles(seg.StartDirection(), seg.Direction())
			wedge := &Path{}
			wedge.Arc(a.Center.X, a.Center.Y, math.Abs(s.Radius), from, to)
			wedge.LineTo(a.Center.X, a.Center.Y)
			wedge.Close()
			c.Draw(wedge, Style{Stroke: p.theme().Wedge, Width: track.LineWidth})
			p.marker(c, a.Center, fmt.Sprintf("r=%.3f", s.Radius), fmt.Sprintf("a=%.1f°", s.Angle))
			p.marker(c, a.StartCenter)
			p.marker(c, a.StartLeft)
			p.marker(c, a.StartRight)
		case track.Intersection, track.Gap, track.TrafficIsland, track.Clothoid:
		}
	}
}

// ViewOf returns the view a track declares: its size, anchored at its origin.
func ViewOf(t *track.Track, scale float64) View {
	return View{X: t.Origin[0], Y: t.Origin[1], Width: t.Width, Height: t.Height, Scale: scale}
}
