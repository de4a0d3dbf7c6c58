// Package trackxml loads track descriptions from XML files.
//
// A document looks like
//
//	<Track version="0.0.1">
//	  <Size width="8" height="6"/>
//	  <Origin x="0" y="0"/>
//	  <Background color="#336633" opacity="1"/>
//	  <Segments>
//	    <Start x="1" y="1" direction_angle="0"/>
//	    <Straight length="2"/>
//	    <Turn direction="left" radius="1" radian="90"/>
//	  </Segments>
//	</Track>
package trackxml

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"golang.org/x/net/html/charset"

	"trackgen/internal/track"
)

var (
	ErrUnknownElement   = errors.New("unknown element")
	ErrMissingElement   = errors.New("missing element")
	ErrMissingAttribute = errors.New("missing attribute")
	ErrInvalidValue     = errors.New("invalid value")
	ErrNoBackground     = errors.New("neither Background nor BackgroundImage given")
)

// ParseError locates a problem in the document.
type ParseError struct {
	Element string
	Attr    string
	Err     error
}

func (e *ParseError) Error() string {
	if e.Attr != "" {
		return fmt.Sprintf("trackxml: <%s %s>: %v", e.Element, e.Attr, e.Err)
	}
	return fmt.Sprintf("trackxml: <%s>: %v", e.Element, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// element is a generic node; the document is small enough to hold whole.
type element struct {
	XMLName  xml.Name
	Attrs    []xml.Attr `xml:",any,attr"`
	Children []element  `xml:",any"`
}

func (e *element) name() string { return e.XMLName.Local }

func (e *element) child(name string) *element {
	for i := range e.Children {
		if e.Children[i].name() == name {
			return &e.Children[i]
		}
	}
	return nil
}

func (e *element) str(name string) (string, error) {
	for _, a := range e.Attrs {
		if a.Name.Local == name {
			return strings.TrimSpace(a.Value), nil
		}
	}
	return "", &ParseError{Element: e.name(), Attr: name, Err: ErrMissingAttribute}
}

func (e *element) float(name string) (float64, error) {
	s, err := e.str(name)
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, &ParseError{Element: e.name(), Attr: name, Err: fmt.Errorf("%w: %q", ErrInvalidValue, s)}
	}
	return v, nil
}

// oneOf reads an enumerated attribute.
func (e *element) oneOf(name string, allowed ...string) (string, error) {
	s, err := e.str(name)
	if err != nil {
		return "", err
	}
	for _, a := range allowed {
		if s == a {
			return s, nil
		}
	}
	return "", &ParseError{Element: e.name(), Attr: name, Err: fmt.Errorf("%w: %q not in %v", ErrInvalidValue, s, allowed)}
}

// floats reads several numeric attributes at once, stopping at the first error.
func (e *element) floats(names ...string) ([]float64, error) {
	out := make([]float64, len(names))
	for i, n := range names {
		v, err := e.float(n)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// ReadFile loads the track at path. Relative background image paths are
// resolved against the file's directory.
func ReadFile(path string) (*track.Track, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	t, err := Read(f, filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// Read decodes a track document from r. baseDir anchors relative file
// references.
func Read(r io.Reader, baseDir string) (*track.Track, error) {
	dec := xml.NewDecoder(r)
	dec.CharsetReader = charset.NewReaderLabel

	var root element
	if err := dec.Decode(&root); err != nil {
		return nil, fmt.Errorf("trackxml: %w", err)
	}
	if root.name() != "Track" {
		return nil, &ParseError{Element: root.name(), Err: ErrUnknownElement}
	}

	t := &track.Track{}
	var err error
	if t.Version, err = root.str("version"); err != nil {
		return nil, err
	}

	size, err := required(&root, "Size")
	if err != nil {
		return nil, err
	}
	if t.Width, err = size.float("width"); err != nil {
		return nil, err
	}
	if t.Height, err = size.float("height"); err != nil {
		return nil, err
	}

	origin, err := required(&root, "Origin")
	if err != nil {
		return nil, err
	}
	if t.Origin[0], err = origin.float("x"); err != nil {
		return nil, err
	}
	if t.Origin[1], err = origin.float("y"); err != nil {
		return nil, err
	}

	if t.Background, err = readBackground(&root, baseDir); err != nil {
		return nil, err
	}

	segments, err := required(&root, "Segments")
	if err != nil {
		return nil, err
	}
	for i := range segments.Children {
		spec, err := readSegment(&segments.Children[i])
		if err != nil {
			return nil, err
		}
		t.Segments = append(t.Segments, spec)
	}
	return t, nil
}

func required(parent *element, name string) (*element, error) {
	if c := parent.child(name); c != nil {
		return c, nil
	}
	return nil, &ParseError{Element: name, Err: ErrMissingElement}
}

func readBackground(root *element, baseDir string) (track.Background, error) {
	if e := root.child("Background"); e != nil {
		color, err := e.str("color")
		if err != nil {
			return nil, err
		}
		opacity, err := e.float("opacity")
		if err != nil {
			return nil, err
		}
		return track.BackgroundColor{Color: color, Opacity: opacity}, nil
	}
	if e := root.child("BackgroundImage"); e != nil {
		file, err := e.str("file")
		if err != nil {
			return nil, err
		}
		v, err := e.floats("x", "y", "width", "height")
		if err != nil {
			return nil, err
		}
		if !filepath.IsAbs(file) {
			file = filepath.Join(baseDir, file)
		}
		return track.BackgroundImage{File: file, X: v[0], Y: v[1], Width: v[2], Height: v[3]}, nil
	}
	return nil, &ParseError{Element: "Track", Err: ErrNoBackground}
}

func readSegment(e *element) (track.Spec, error) {
	switch e.name() {
	case "Start":
		v, err := e.floats("x", "y", "direction_angle")
		if err != nil {
			return nil, err
		}
		return track.Start{X: v[0], Y: v[1], Direction: v[2]}, nil

	case "Straight", "BlockedArea":
		l, err := e.float("length")
		if err != nil {
			return nil, err
		}
		return track.Straight{Length: l}, nil

	case "Turn":
		dir, err := e.oneOf("direction", "left", "right")
		if err != nil {
			return nil, err
		}
		v, err := e.floats("radius", "radian")
		if err != nil {
			return nil, err
		}
		return track.Arc{Radius: v[0], Angle: v[1], Clockwise: dir == "right"}, nil

	case "Crosswalk":
		l, err := e.float("length")
		if err != nil {
			return nil, err
		}
		return track.Crosswalk{Length: l}, nil

	case "Intersection", "Gap":
		l, err := e.float("length")
		if err != nil {
			return nil, err
		}
		dir, err := e.oneOf("direction", "straight", "left", "right")
		if err != nil {
			return nil, err
		}
		if e.name() == "Gap" {
			return track.Gap{Length: l, Direction: track.Direction(dir)}, nil
		}
		return track.Intersection{Length: l, Direction: track.Direction(dir)}, nil

	case "ParkingArea":
		return readParkingArea(e)

	case "TrafficIsland":
		v, err := e.floats("island_width", "crosswalk_length", "curve_segment_length", "curvature")
		if err != nil {
			return nil, err
		}
		return track.TrafficIsland{
			IslandWidth:        v[0],
			CrosswalkLength:    v[1],
			CurveSegmentLength: v[2],
			Curvature:          v[3],
		}, nil

	case "Clothoid":
		v, err := e.floats("a", "angle", "angle_offset")
		if err != nil {
			return nil, err
		}
		dir, err := e.oneOf("direction", "left", "right")
		if err != nil {
			return nil, err
		}
		typ, err := e.oneOf("type", "opening", "closing")
		if err != nil {
			return nil, err
		}
		return track.Clothoid{
			A:           v[0],
			Angle:       v[1],
			AngleOffset: v[2],
			Direction:   track.ClothoidDirection(dir),
			Type:        track.ClothoidType(typ),
		}, nil

	default:
		return nil, &ParseError{Element: e.name(), Err: ErrUnknownElement}
	}
}

func readParkingArea(e *element) (track.Spec, error) {
	l, err := e.float("length")
	if err != nil {
		return nil, err
	}
	area := track.ParkingArea{Length: l}
	if area.RightLots, err = readLots(e.child("RightLots")); err != nil {
		return nil, err
	}
	if area.LeftLots, err = readLots(e.child("LeftLots")); err != nil {
		return nil, err
	}
	return area, nil
}

// readLots reads the ParkingLot children of a RightLots/LeftLots container.
// An absent container means no lots on that side.
func readLots(container *element) ([]track.ParkingLot, error) {
	if container == nil {
		return nil, nil
	}
	var lots []track.ParkingLot
	for i := range container.Children {
		le := &container.Children[i]
		if le.name() != "ParkingLot" {
			return nil, &ParseError{Element: le.name(), Err: ErrUnknownElement}
		}
		v, err := le.floats("start", "depth", "opening_ending_angle")
		if err != nil {
			return nil, err
		}
		lot := track.ParkingLot{Start: v[0], Depth: v[1], OpeningEndingAngle: v[2]}
		for j := range le.Children {
			se := &le.Children[j]
			if se.name() != "Spot" {
				return nil, &ParseError{Element: se.name(), Err: ErrUnknownElement}
			}
			kind, err := se.oneOf("type", string(track.SpotFree), string(track.SpotBlocked))
			if err != nil {
				return nil, err
			}
			length, err := se.float("length")
			if err != nil {
				return nil, err
			}
			lot.Spots = append(lot.Spots, track.Spot{Kind: track.SpotKind(kind), Length: length})
		}
		lots = append(lots, lot)
	}
	return lots, nil
}
