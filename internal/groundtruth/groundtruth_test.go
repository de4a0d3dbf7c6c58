package groundtruth

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"trackgen/internal/track"
)

func calc(t *testing.T, specs ...track.Spec) *track.Layout {
	t.Helper()
	l, err := (&track.Track{Segments: specs}).Calc()
	if err != nil {
		t.Fatal(err)
	}
	return l
}

var approx = cmpopts.EquateApprox(0, 1e-9)

func TestPairsStraightAndArc(t *testing.T) {
	o := track.LineOffset
	got, err := Pairs(calc(t, track.Start{}, track.Straight{Length: 2}, track.Arc{Radius: 1, Angle: 90}))
	if err != nil {
		t.Fatal(err)
	}
	want := []Pair{
		{0, -o, 0, o},
		{2, -o, 2, o},
		{2, -o, 2, o},
	}
	if d := cmp.Diff(want, got, approx); d != "" {
		t.Fatal(d)
	}
}

func TestPairsPerKind(t *testing.T) {
	for _, tt := range []struct {
		name string
		spec track.Spec
		want int
	}{
		{"crosswalk", track.Crosswalk{Length: 0.5}, 2},
		{"straight gap", track.Gap{Length: 1, Direction: track.DirectionStraight}, 2},
		{"turning gap", track.Gap{Length: 1, Direction: track.DirectionLeft}, 0},
		{"intersection", track.Intersection{Length: 1.6, Direction: track.DirectionStraight}, 6},
		{"island", track.TrafficIsland{IslandWidth: 0.4, CrosswalkLength: 0.5, CurveSegmentLength: 1, Curvature: 0.3}, 4},
		{"parking", track.ParkingArea{Length: 3}, 2},
	} {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Pairs(calc(t, track.Start{}, tt.spec))
			if err != nil {
				t.Fatal(err)
			}
			if len(got) != tt.want {
				t.Fatalf("pairs = %d, want %d", len(got), tt.want)
			}
		})
	}
}

func TestPairsClothoidFollowsSamples(t *testing.T) {
	l := calc(t, track.Start{}, track.Clothoid{A: 1, Angle: 20, Direction: track.ClothoidLeft, Type: track.ClothoidClosing})
	got, err := Pairs(l)
	if err != nil {
		t.Fatal(err)
	}
	seg := l.Segments[1]
	if len(got) != len(seg.Center) {
		t.Fatalf("pairs = %d, samples = %d", len(got), len(seg.Center))
	}
	last := got[len(got)-1]
	if d := cmp.Diff(seg.Left[len(seg.Left)-1].XY(), [2]float64{last.X1, last.Y1}); d != "" {
		t.Fatal(d)
	}
}

func TestPairsUnknownSegment(t *testing.T) {
	l := calc(t, track.Start{})
	l.Segments = append(l.Segments, track.Segment{Spec: nil})
	_, err := Pairs(l)
	if !errors.Is(err, track.ErrUnknownSegment) {
		t.Fatalf("err = %v", err)
	}
	var se *track.SegmentError
	if !errors.As(err, &se) || se.Index != 1 || se.Kind != "nil" {
		t.Fatalf("segment error = %+v", se)
	}
}

func TestWriteXML(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteXML(&buf, []Pair{{0, -0.38, 0, 0.38}, {1.5, 2, 3, 4.25}}); err != nil {
		t.Fatal(err)
	}
	want := `<?xml version="1.0" encoding="UTF-8"?>
<GroundTruth version="0.0.1">
	<Points>
		<Point x_1="0" y_1="-0.38" x_2="0" y_2="0.38"></Point>
		<Point x_1="1.5" y_1="2" x_2="3" y_2="4.25"></Point>
	</Points>
</GroundTruth>
`
	if d := cmp.Diff(want, buf.String()); d != "" {
		t.Fatal(d)
	}
}

func TestSave(t *testing.T) {
	dir := t.TempDir()
	if err := Save(dir, []Pair{{1, 2, 3, 4}}, true); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(filepath.Join(dir, FileName)); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(filepath.Join(dir, CSVName))
	if err != nil {
		t.Fatal(err)
	}
	if d := cmp.Diff("x_1,y_1,x_2,y_2\n1,2,3,4\n", string(data)); d != "" {
		t.Fatal(d)
	}

	other := t.TempDir()
	if err := Save(other, nil, false); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(filepath.Join(other, CSVName)); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("csv written without being asked for: %v", err)
	}
	data, _ = os.ReadFile(filepath.Join(other, FileName))
	if !strings.Contains(string(data), "<Points></Points>") {
		t.Fatalf("empty document:\n%s", data)
	}
}
