// Package groundtruth exports the true lane boundary positions of a track as
// pairs of corresponding left and right points.
package groundtruth

import (
	"encoding/csv"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"trackgen/internal/coord"
	"trackgen/internal/track"
)

const (
	Version  = "0.0.1"
	FileName = "ground_truth.xml"
	CSVName  = "ground_truth.csv"
)

// Pair is one sampled position: a point on one lane boundary and the
// corresponding point on the other.
type Pair struct {
	X1, Y1 float64
	X2, Y2 float64
}

func pair(a, b coord.Point) Pair {
	return Pair{X1: a.X, Y1: a.Y, X2: b.X, Y2: b.Y}
}

// zip pairs two boundary lines point by point.
func zip(out []Pair, a, b coord.Polygon) []Pair {
	n := min(len(a), len(b))
	for i := 0; i < n; i++ {
		out = append(out, pair(a[i], b[i]))
	}
	return out
}

// Pairs collects the boundary pairs of every segment in track order.
func Pairs(l *track.Layout) ([]Pair, error) {
	var out []Pair
	for i, seg := range l.Segments {
		switch seg.Spec.(type) {
		case track.Start:
		case track.Straight, track.Crosswalk, track.ParkingArea, track.Gap, track.Clothoid:
			// a turning gap has no lines and contributes nothing
			out = zip(out, seg.Left, seg.Right)
		case track.Arc:
			out = append(out, pair(seg.Arc.StartLeft, seg.Arc.StartRight))
		case track.Intersection:
			c := seg.Intersection.Corners
			out = zip(out, c[0], c[1])
			out = zip(out, c[2], c[3])
		case track.TrafficIsland:
			lines := seg.Island.Lines
			out = zip(out, lines[2], lines[3])
		default:
			return nil, &track.SegmentError{Index: i, Kind: track.KindOf(seg.Spec), Err: fmt.Errorf("%w: %T", track.ErrUnknownSegment, seg.Spec)}
		}
	}
	return out, nil
}

type xmlPoint struct {
	X1 string `xml:"x_1,attr"`
	Y1 string `xml:"y_1,attr"`
	X2 string `xml:"x_2,attr"`
	Y2 string `xml:"y_2,attr"`
}

type xmlDoc struct {
	XMLName xml.Name `xml:"GroundTruth"`
	Version string   `xml:"version,attr"`
	Points  struct {
		Point []xmlPoint
	}
}

func ftoa(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }

// WriteXML writes pairs as a tab indented GroundTruth document.
func WriteXML(w io.Writer, pairs []Pair) error {
	doc := xmlDoc{Version: Version}
	doc.Points.Point = make([]xmlPoint, len(pairs))
	for i, p := range pairs {
		doc.Points.Point[i] = xmlPoint{ftoa(p.X1), ftoa(p.Y1), ftoa(p.X2), ftoa(p.Y2)}
	}
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "\t")
	if err := enc.Encode(doc); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}

// WriteCSV writes pairs with an x_1,y_1,x_2,y_2 header.
func WriteCSV(w io.Writer, pairs []Pair) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"x_1", "y_1", "x_2", "y_2"}); err != nil {
		return err
	}
	for _, p := range pairs {
		if err := cw.Write([]string{ftoa(p.X1), ftoa(p.Y1), ftoa(p.X2), ftoa(p.Y2)}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// Save writes FileName, and CSVName when withCSV is set, into dir.
func Save(dir string, pairs []Pair, withCSV bool) error {
	write := func(name string, fn func(io.Writer, []Pair) error) error {
		f, err := os.Create(filepath.Join(dir, name))
		if err != nil {
			return err
		}
		if err := fn(f, pairs); err != nil {
			f.Close()
			return fmt.Errorf("%s: %w", name, err)
		}
		return f.Close()
	}
	if err := write(FileName, WriteXML); err != nil {
		return err
	}
	if withCSV {
		return write(CSVName, WriteCSV)
	}
	return nil
}
