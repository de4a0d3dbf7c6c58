package trackxml

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"trackgen/internal/track"
)

const sample = `<?xml version="1.0" encoding="UTF-8"?>
<Track version="0.0.1">
	<Size width="8" height="6"/>
	<Origin x="-1" y="0.5"/>
	<Background color="#336633" opacity="0.8"/>
	<Segments>
		<Start x="1" y="1" direction_angle="0"/>
		<Straight length="2"/>
		<BlockedArea length="0.5"/>
		<Turn direction="left" radius="1" radian="90"/>
		<Turn direction="right" radius="2" radian="45"/>
		<Crosswalk length="0.4"/>
		<Intersection length="1.6" direction="left"/>
		<Gap length="1" direction="straight"/>
		<ParkingArea length="3">
			<RightLots>
				<ParkingLot start="0.5" depth="0.3" opening_ending_angle="45">
					<Spot type="free" length="0.35"/>
					<Spot type="blocked" length="0.35"/>
				</ParkingLot>
			</RightLots>
			<LeftLots/>
		</ParkingArea>
		<TrafficIsland island_width="0.3" crosswalk_length="0.4" curve_segment_length="0.8" curvature="0.2"/>
		<Clothoid a="1.5" angle="30" angle_offset="0" direction="right" type="opening"/>
	</Segments>
</Track>
`

func TestRead(t *testing.T) {
	got, err := Read(strings.NewReader(sample), "/tracks")
	if err != nil {
		t.Fatal(err)
	}
	want := &track.Track{
		Version:    "0.0.1",
		Width:      8,
		Height:     6,
		Origin:     [2]float64{-1, 0.5},
		Background: track.BackgroundColor{Color: "#336633", Opacity: 0.8},
		Segments: []track.Spec{
			track.Start{X: 1, Y: 1, Direction: 0},
			track.Straight{Length: 2},
			track.Straight{Length: 0.5},
			track.Arc{Radius: 1, Angle: 90},
			track.Arc{Radius: 2, Angle: 45, Clockwise: true},
			track.Crosswalk{Length: 0.4},
			track.Intersection{Length: 1.6, Direction: track.DirectionLeft},
			track.Gap{Length: 1, Direction: track.DirectionStraight},
			track.ParkingArea{
				Length: 3,
				RightLots: []track.ParkingLot{{
					Start:              0.5,
					Depth:              0.3,
					OpeningEndingAngle: 45,
					Spots: []track.Spot{
						{Kind: track.SpotFree, Length: 0.35},
						{Kind: track.SpotBlocked, Length: 0.35},
					},
				}},
			},
			track.TrafficIsland{IslandWidth: 0.3, CrosswalkLength: 0.4, CurveSegmentLength: 0.8, Curvature: 0.2},
			track.Clothoid{A: 1.5, Angle: 30, Direction: track.ClothoidRight, Type: track.ClothoidOpening},
		},
	}
	if d := cmp.Diff(want, got); d != "" {
		t.Fatalf("mismatch (-want +got):\n%s", d)
	}
	if _, err := got.Calc(); err != nil {
		t.Fatalf("parsed track does not calculate: %v", err)
	}
}

func TestReadBackgroundImage(t *testing.T) {
	doc := `<?xml version="1.0" encoding="windows-1252"?>
<Track version="0.0.1">
	<Size width="4" height="4"/>
	<Origin x="0" y="0"/>
	<BackgroundImage file="caf` + "\xe9" + `.png" x="0" y="0" width="4" height="3"/>
	<Segments><Start x="0" y="0" direction_angle="0"/></Segments>
</Track>`
	got, err := Read(strings.NewReader(doc), "tracks")
	if err != nil {
		t.Fatal(err)
	}
	want := track.BackgroundImage{File: filepath.Join("tracks", "café.png"), Width: 4, Height: 3}
	if d := cmp.Diff(track.Background(want), got.Background); d != "" {
		t.Fatal(d)
	}

	abs := strings.Replace(doc, "caf\xe9.png", "/srv/bg.png", 1)
	got, err = Read(strings.NewReader(abs), "tracks")
	if err != nil {
		t.Fatal(err)
	}
	if f := got.Background.(track.BackgroundImage).File; f != "/srv/bg.png" {
		t.Fatalf("absolute path rewritten to %q", f)
	}
}

func TestReadErrors(t *testing.T) {
	for _, tt := range []struct {
		name     string
		old, new string
		want     error
		element  string
		attr     string
	}{
		{"unknown segment", `<Crosswalk length="0.4"/>`, `<Roundabout radius="1"/>`, ErrUnknownElement, "Roundabout", ""},
		{"missing attribute", `<Straight length="2"/>`, `<Straight/>`, ErrMissingAttribute, "Straight", "length"},
		{"bad number", `radius="2"`, `radius="two"`, ErrInvalidValue, "Turn", "radius"},
		{"bad direction", `direction="left"/>`, `direction="up"/>`, ErrInvalidValue, "Intersection", "direction"},
		{"bad spot", `type="blocked"`, `type="reserved"`, ErrInvalidValue, "Spot", "type"},
		{"no background", `<Background color="#336633" opacity="0.8"/>`, ``, ErrNoBackground, "Track", ""},
		{"no size", `<Size width="8" height="6"/>`, ``, ErrMissingElement, "Size", ""},
	} {
		t.Run(tt.name, func(t *testing.T) {
			doc := strings.Replace(sample, tt.old, tt.new, 1)
			if doc == sample {
				t.Fatalf("replacement %q did not apply", tt.old)
			}
			_, err := Read(strings.NewReader(doc), "")
			if !errors.Is(err, tt.want) {
				t.Fatalf("err = %v, want %v", err, tt.want)
			}
			var pe *ParseError
			if !errors.As(err, &pe) {
				t.Fatalf("err = %T, want *ParseError", err)
			}
			if pe.Element != tt.element || pe.Attr != tt.attr {
				t.Fatalf("located at <%s %s>, want <%s %s>", pe.Element, pe.Attr, tt.element, tt.attr)
			}
		})
	}
}

func TestReadNotATrack(t *testing.T) {
	_, err := Read(strings.NewReader(`<svg/>`), "")
	if !errors.Is(err, ErrUnknownElement) {
		t.Fatalf("err = %v", err)
	}
	if _, err := Read(strings.NewReader(`<Track`), ""); err == nil {
		t.Fatal("expected syntax error")
	}
}

func TestReadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "loop.xml")
	doc := strings.Replace(sample, `<Background color="#336633" opacity="0.8"/>`,
		`<BackgroundImage file="bg.png" x="0" y="0" width="8" height="6"/>`, 1)
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}
	got, err := ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if f := got.Background.(track.BackgroundImage).File; f != filepath.Join(dir, "bg.png") {
		t.Fatalf("background file = %q", f)
	}
	if len(got.Segments) != 11 {
		t.Fatalf("segments = %d", len(got.Segments))
	}

	if _, err := ReadFile(filepath.Join(dir, "missing.xml")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("err = %v", err)
	}
}
