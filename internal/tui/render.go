package tui

import (
	"math"
	"sort"
	"strings"

	"trackgen/internal/geom"
)

// projection maps world meters onto the braille microgrid (2x4 dots per
// cell). Both axes share one scale so turns stay round.
type projection struct {
	cx, cy     float64 // world point at the canvas center
	scale      float64 // dots per meter
	wMic, hMic int
	offX, offY int // pan in dots
}

func (m Model) projection(w, h int) (projection, bool) {
	b := m.data.BBox
	dx, dy := b.MaxX-b.MinX, b.MaxY-b.MinY
	if w <= 1 || h <= 1 || !(dx > 0 || dy > 0) {
		return projection{}, false
	}
	p := projection{
		cx:   (b.MinX + b.MaxX) / 2,
		cy:   (b.MinY + b.MaxY) / 2,
		wMic: w * 2,
		hMic: h * 4,
		offX: m.offsetX * 2,
		offY: m.offsetY * 4,
	}
	span := math.Max(dx/float64(p.wMic-1), dy/float64(p.hMic-1))
	p.scale = m.zoom / span
	return p, true
}

func (p projection) toMicro(x, y float64) (int, int, bool) {
	if math.IsNaN(x) || math.IsNaN(y) || math.IsInf(x, 0) || math.IsInf(y, 0) {
		return 0, 0, false
	}
	sx := float64(p.wMic)/2 + (x-p.cx)*p.scale + float64(p.offX)
	sy := float64(p.hMic)/2 - (y-p.cy)*p.scale + float64(p.offY)
	// keep far off-screen points from overflowing int
	const limit = 1 << 20
	if math.Abs(sx) > limit || math.Abs(sy) > limit {
		return 0, 0, false
	}
	return int(math.Floor(sx)), int(math.Floor(sy)), true
}

// cellToWorld converts the center of a map cell back to meters.
func (p projection) cellToWorld(cx, cy int) (float64, float64) {
	mx := float64(cx*2) + 1
	my := float64(cy*4) + 2
	x := p.cx + (mx-float64(p.wMic)/2-float64(p.offX))/p.scale
	y := p.cy - (my-float64(p.hMic)/2-float64(p.offY))/p.scale
	return x, y
}

// layerOrder is the draw priority when several layers share a cell.
var layerOrder = []geom.Layer{geom.LayerMarkings, geom.LayerLanes, geom.LayerAreas}

func (m Model) renderMap(w, h int) string {
	rows := make([][]string, h)
	for y := range rows {
		rows[y] = make([]string, w)
		for x := range rows[y] {
			rows[y][x] = " "
		}
	}
	p, ok := m.projection(w, h)
	if !ok {
		return joinRows(rows)
	}

	bufs := map[geom.Layer]*brailleBuf{}
	for _, l := range layerOrder {
		bufs[l] = newBrailleBuf(w, h)
	}
	for _, line := range m.data.Filter(m.layers) {
		br := bufs[line.Layer]
		if br == nil {
			continue
		}
		mic := p.polyline(line.Points)
		if line.Layer == geom.LayerAreas && line.Closed {
			fillRing(br, mic)
		}
		br.drawPolyline(mic, line.Closed)
	}
	// Segment joints are only shown when there is nothing else to draw.
	if len(m.data.Lines) == 0 {
		for _, pt := range m.data.Points {
			if mx, my, ok := p.toMicro(pt[0], pt[1]); ok {
				bufs[geom.LayerLanes].setPixel(mx, my)
			}
		}
	}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			for _, l := range layerOrder {
				if r, ok := bufs[l].cell(x, y); ok {
					rows[y][x] = layerStyles[l].Render(string(r))
					break
				}
			}
		}
	}

	if m.hovering {
		cx, cy := m.hoverMicX/2, m.hoverMicY/4
		if cy >= 0 && cy < h && cx >= 0 && cx < w {
			rows[cy][cx] = hoverStyle.Render("◯")
		}
	}
	return joinRows(rows)
}

func joinRows(rows [][]string) string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = strings.Join(r, "")
	}
	return strings.Join(out, "\n")
}

func (p projection) polyline(pts [][2]float64) [][2]int {
	out := make([][2]int, 0, len(pts))
	for _, pt := range pts {
		if mx, my, ok := p.toMicro(pt[0], pt[1]); ok {
			out = append(out, [2]int{mx, my})
		}
	}
	return out
}

// fillRing fills a closed ring with the even-odd rule, one microgrid
// scanline at a time.
func fillRing(br *brailleBuf, ring [][2]int) {
	if len(ring) < 3 {
		return
	}
	minY, maxY := ring[0][1], ring[0][1]
	for _, v := range ring {
		minY, maxY = min(minY, v[1]), max(maxY, v[1])
	}
	minY, maxY = max(minY, 0), min(maxY, br.h*4-1)
	for yMic := minY; yMic <= maxY; yMic++ {
		var xs []int
		for i := range ring {
			a, b := ring[i], ring[(i+1)%len(ring)]
			if a[1] == b[1] {
				continue
			}
			if (yMic >= a[1] && yMic < b[1]) || (yMic >= b[1] && yMic < a[1]) {
				t := float64(yMic-a[1]) / float64(b[1]-a[1])
				xs = append(xs, a[0]+int(t*float64(b[0]-a[0])))
			}
		}
		sort.Ints(xs)
		for i := 0; i+1 < len(xs); i += 2 {
			for xMic := max(0, xs[i]); xMic <= min(xs[i+1], br.w*2-1); xMic++ {
				br.setPixel(xMic, yMic)
			}
		}
	}
}

// nearest returns the visible line with a vertex closest to the dot
// (mx, my), and that vertex in dots.
func (m Model) nearest(p projection, mx, my int) (geom.Line, [2]int, bool) {
	best := math.MaxInt
	var line geom.Line
	var at [2]int
	for _, l := range m.data.Filter(m.layers) {
		for _, v := range p.polyline(l.Points) {
			dx, dy := v[0]-mx, v[1]-my
			if d := dx*dx + dy*dy; d < best {
				best, line, at = d, l, v
			}
		}
	}
	return line, at, best != math.MaxInt
}
