package render

import (
	"bytes"
	"errors"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"trackgen/internal/track"
)

type drawCall struct {
	path  *Path
	style Style
}

// recorder is a Canvas that remembers what was drawn.
type recorder struct {
	view   View
	clears []string
	images []string
	draws  []drawCall
	texts  [][]string
}

func (r *recorder) View() View                          { return r.view }
func (r *recorder) Clear(color string, opacity float64) { r.clears = append(r.clears, color) }
func (r *recorder) Image(file string, x, y, w, h float64) error {
	if _, err := os.Stat(file); err != nil {
		return err
	}
	r.images = append(r.images, file)
	return nil
}
func (r *recorder) Draw(p *Path, s Style) { r.draws = append(r.draws, drawCall{p, s}) }
func (r *recorder) Text(x, y, size float64, color string, lines ...string) {
	r.texts = append(r.texts, lines)
}

func (r *recorder) count(match func(Style) bool) int {
	n := 0
	for _, d := range r.draws {
		if match(d.style) {
			n++
		}
	}
	return n
}

func layout(t *testing.T, specs ...track.Spec) *track.Layout {
	t.Helper()
	tr := &track.Track{
		Width:      6,
		Height:     4,
		Background: track.BackgroundColor{Color: "#336633", Opacity: 1},
		Segments:   specs,
	}
	l, err := tr.Calc()
	if err != nil {
		t.Fatal(err)
	}
	return l
}

func dashed(s Style) bool  { return len(s.Dash) > 0 }
func stripes(s Style) bool { return s.Width == track.CrosswalkLineWidth }

func TestDrawTrack(t *testing.T) {
	for _, tt := range []struct {
		name    string
		spec    track.Spec
		draws   int
		dashed  int
		stripes int
	}{
		{"straight", track.Straight{Length: 1}, 4, 1, 0},
		{"arc", track.Arc{Radius: 1, Angle: 90}, 4, 1, 0},
		{"crosswalk", track.Crosswalk{Length: 0.5}, 3 + 13, 0, 13},
		{"intersection", track.Intersection{Length: 1.6, Direction: track.DirectionRight}, 2 + 4 + 4 + 4, 4, 0},
		{"gap", track.Gap{Length: 1, Direction: track.DirectionStraight}, 0, 0, 0},
		{"clothoid", track.Clothoid{A: 1, Angle: 30, Direction: track.ClothoidLeft, Type: track.ClothoidClosing}, 4, 1, 0},
		{"island", track.TrafficIsland{IslandWidth: 0.4, CrosswalkLength: 0.5, CurveSegmentLength: 1, Curvature: 0.3}, 1 + 4 + 10, 0, 10},
		{"parking", track.ParkingArea{Length: 3, RightLots: []track.ParkingLot{{
			Start: 0.5, Depth: 0.3, OpeningEndingAngle: 45,
			Spots: []track.Spot{{Kind: track.SpotFree, Length: 0.3}, {Kind: track.SpotBlocked, Length: 0.3}},
		}}}, 4 + 1 + 1 + 2, 1, 0},
	} {
		t.Run(tt.name, func(t *testing.T) {
			r := &recorder{}
			if err := (&Painter{}).DrawTrack(r, layout(t, track.Start{}, tt.spec)); err != nil {
				t.Fatal(err)
			}
			if d := cmp.Diff([]string{"#336633"}, r.clears); d != "" {
				t.Fatal(d)
			}
			if len(r.draws) != tt.draws {
				t.Errorf("draws = %d, want %d", len(r.draws), tt.draws)
			}
			if n := r.count(dashed); n != tt.dashed {
				t.Errorf("dashed = %d, want %d", n, tt.dashed)
			}
			if n := r.count(stripes); n != tt.stripes {
				t.Errorf("stripes = %d, want %d", n, tt.stripes)
			}
		})
	}
}

func TestDrawArcRadii(t *testing.T) {
	r := &recorder{}
	if err := (&Painter{}).DrawTrack(r, layout(t, track.Start{}, track.Arc{Radius: 2, Angle: 90, Clockwise: true})); err != nil {
		t.Fatal(err)
	}
	var radii []float64
	for _, d := range r.draws {
		for _, op := range d.path.ops {
			if op.kind == opArc {
				radii = append(radii, op.r)
				if op.sweep != -90 {
					t.Fatalf("sweep = %g, want -90", op.sweep)
				}
				if math.Abs(op.p[0][1]+2) > 1e-9 {
					t.Fatalf("center = %v", op.p[0])
				}
			}
		}
	}
	want := []float64{2, 2 - LaneWidth, 2 + LaneWidth, 2}
	if d := cmp.Diff(want, radii, cmpopts.EquateApprox(0, 1e-12)); d != "" {
		t.Fatal(d)
	}
}

func TestDrawVerbose(t *testing.T) {
	r := &recorder{}
	(&Painter{}).DrawVerbose(r, layout(t, track.Start{X: 1, Y: 2}, track.Straight{Length: 1}, track.Arc{Radius: 1, Angle: 90}))
	// start, three straight anchors, arc center plus three arc anchors
	if len(r.texts) != 8 {
		t.Fatalf("labels = %d", len(r.texts))
	}
	if d := cmp.Diff([]string{"1.000", "2.000"}, r.texts[0]); d != "" {
		t.Fatal(d)
	}
	center := r.texts[4]
	if len(center) != 4 || center[2] != "r=1.000" || center[3] != "a=90.0°" {
		t.Fatalf("arc center label = %q", center)
	}
}

func TestDrawBackgroundImageMissing(t *testing.T) {
	l := layout(t, track.Start{})
	l.Track.Background = track.BackgroundImage{File: filepath.Join(t.TempDir(), "nope.png"), Width: 1, Height: 1}
	err := (&Painter{}).DrawTrack(&recorder{}, l)
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("err = %v", err)
	}
}

func TestSVG(t *testing.T) {
	c := NewSVG(View{Width: 6, Height: 4, Scale: 1000})
	p := &Path{}
	p.MoveTo(1, 1)
	p.LineTo(2, 1)
	c.Draw(p, Style{Stroke: "#ffffff", Width: 0.02, Dash: []float64{0.16, 0.16}})
	arc := &Path{}
	arc.Arc(0, 0, 1, 0, 90)
	c.Draw(arc, Style{Stroke: "#000000", Width: 0.8})
	c.Text(1, 1, 0.1, "red", "a<b")

	var buf bytes.Buffer
	if _, err := c.WriteTo(&buf); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{
		`width="6000" height="4000" viewBox="0 0 6 4"`,
		`d="M 1 3 L 2 3"`,
		`stroke-dasharray="0.16,0.16"`,
		`d="M 1 4 A 1 1 0 0 0 0.0000000000000000`,
		`a&lt;b`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in\n%s", want, out)
		}
	}
}

func TestSVGFullCircleSplits(t *testing.T) {
	c := NewSVG(View{Width: 1, Height: 1, Scale: 1})
	c.Draw(Circle(0.5, 0.5, 0.1), Style{Fill: "red"})
	var buf bytes.Buffer
	if _, err := c.WriteTo(&buf); err != nil {
		t.Fatal(err)
	}
	if n := strings.Count(buf.String(), " A "); n != 2 {
		t.Fatalf("full circle written as %d arcs", n)
	}
}

func TestArcCubics(t *testing.T) {
	segs := arcCubics(0, 0, 2, 0, -180)
	if len(segs) != 2 {
		t.Fatalf("pieces = %d", len(segs))
	}
	end := segs[1][2]
	if math.Hypot(end[0]+2, end[1]) > 1e-9 {
		t.Fatalf("end = %v", end)
	}
	if mid := segs[0][2]; math.Hypot(mid[0], mid[1]+2) > 1e-9 {
		t.Fatalf("clockwise half should pass through (0, -2), got %v", segs[0][2])
	}
}

func TestPNG(t *testing.T) {
	l := layout(t, track.Start{X: 1, Y: 1}, track.Straight{Length: 2}, track.Arc{Radius: 1, Angle: 90})
	c := NewPNG(ViewOf(l.Track, 50))
	defer c.Close()
	p := &Painter{}
	if err := p.DrawTrack(c, l); err != nil {
		t.Fatal(err)
	}
	p.DrawVerbose(c, l)
	if err := c.Err(); err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(t.TempDir(), "track.png")
	if err := c.Save(path); err != nil {
		t.Fatal(err)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 300 || b.Dy() != 200 {
		t.Fatalf("bounds = %v", b)
	}
}

func TestPNGKeepsFirstDrawingError(t *testing.T) {
	c := NewPNG(View{Width: 2, Height: 2, Scale: 10})
	defer c.Close()
	c.Draw(Polyline([][2]float64{{0, 0}, {1, 1}}), Style{Stroke: "#ffffff", Width: 0.02})
	if err := c.Err(); err != nil {
		t.Fatalf("Err = %v", err)
	}

	first, second := errors.New("fill failed"), errors.New("stroke failed")
	c.fail(first)
	c.fail(second)
	c.fail(nil)
	if err := c.Err(); !errors.Is(err, first) {
		t.Fatalf("Err = %v, want %v", err, first)
	}
	var buf bytes.Buffer
	if err := c.EncodePNG(&buf); !errors.Is(err, first) || buf.Len() != 0 {
		t.Fatalf("EncodePNG = %v, wrote %d bytes", err, buf.Len())
	}
	path := filepath.Join(t.TempDir(), "broken.png")
	if err := c.Save(path); !errors.Is(err, first) {
		t.Fatalf("Save = %v", err)
	}
	if _, err := os.Stat(path); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("Save wrote a partial image: %v", err)
	}
}
