package geom

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

var ErrNoGeometry = errors.New("no geometries found")

func lineString(pts [][2]float64) orb.LineString {
	ls := make(orb.LineString, len(pts))
	for i, p := range pts {
		ls[i] = orb.Point(p)
	}
	return ls
}

func (l Line) geometry() orb.Geometry {
	if !l.Closed {
		return lineString(l.Points)
	}
	ring := orb.Ring(lineString(l.Points))
	if !ring.Closed() {
		ring = append(ring, ring[0])
	}
	return orb.Polygon{ring}
}

// FeatureCollection converts d into GeoJSON features. Lines carry their
// segment index, kind and layer as properties.
func (d Data) FeatureCollection() *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, l := range d.Lines {
		f := geojson.NewFeature(l.geometry())
		f.Properties["segment"] = l.Segment
		f.Properties["kind"] = l.Kind
		f.Properties["layer"] = l.Layer.String()
		fc.Append(f)
	}
	if len(d.Points) > 0 {
		var mp orb.MultiPoint
		for _, p := range d.Points {
			mp = append(mp, orb.Point(p))
		}
		f := geojson.NewFeature(mp)
		f.Properties["kind"] = "Poses"
		fc.Append(f)
	}
	return fc
}

// WriteGeoJSON writes d as a FeatureCollection.
func WriteGeoJSON(w io.Writer, d Data) error {
	data, err := json.MarshalIndent(d.FeatureCollection(), "", " ")
	if err != nil {
		return err
	}
	_, err = w.Write(append(data, '\n'))
	return err
}

// LoadGeo reads a GeoJSON file and returns Data (points, lines, polygons)
func LoadGeo(path string) (Data, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Data{}, err
	}
	d, err := DecodeGeoJSON(data)
	if err != nil {
		return Data{}, fmt.Errorf("%s: %w", path, err)
	}
	return d, nil
}

// DecodeGeoJSON accepts a FeatureCollection, a Feature or a bare geometry.
func DecodeGeoJSON(data []byte) (Data, error) {
	var probe struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return Data{}, err
	}

	var d Data
	switch probe.Type {
	case "FeatureCollection":
		fc, err := geojson.UnmarshalFeatureCollection(data)
		if err != nil {
			return Data{}, err
		}
		for _, f := range fc.Features {
			d.addFeature(f)
		}
	case "Feature":
		f, err := geojson.UnmarshalFeature(data)
		if err != nil {
			return Data{}, err
		}
		d.addFeature(f)
	default:
		g, err := geojson.UnmarshalGeometry(data)
		if err != nil {
			return Data{}, err
		}
		d.addGeometry(g.Geometry(), Line{Segment: -1, Layer: LayerLanes})
	}
	if len(d.Points) == 0 && len(d.Lines) == 0 {
		return Data{}, ErrNoGeometry
	}
	d.BBox = d.bound()
	return d, nil
}

func (d *Data) addFeature(f *geojson.Feature) {
	tmpl := Line{Segment: -1, Layer: LayerLanes}
	if v, ok := f.Properties["segment"].(float64); ok {
		tmpl.Segment = int(v)
	}
	if v, ok := f.Properties["kind"].(string); ok {
		tmpl.Kind = v
	}
	if v, ok := f.Properties["layer"].(string); ok {
		tmpl.Layer = parseLayer(v)
	}
	d.addGeometry(f.Geometry, tmpl)
}

// addGeometry flattens g; polygons contribute one closed line per ring.
func (d *Data) addGeometry(g orb.Geometry, tmpl Line) {
	line := func(ls []orb.Point, closed bool) {
		l := tmpl
		l.Closed = closed
		l.Points = make([][2]float64, len(ls))
		for i, p := range ls {
			l.Points[i] = p
		}
		d.Lines = append(d.Lines, l)
	}
	switch g := g.(type) {
	case orb.Point:
		d.Points = append(d.Points, g)
	case orb.MultiPoint:
		for _, p := range g {
			d.Points = append(d.Points, p)
		}
	case orb.LineString:
		line(g, false)
	case orb.MultiLineString:
		for _, ls := range g {
			line(ls, false)
		}
	case orb.Ring:
		line(g, true)
	case orb.Polygon:
		for _, r := range g {
			line(r, true)
		}
	case orb.MultiPolygon:
		for _, p := range g {
			for _, r := range p {
				line(r, true)
			}
		}
	case orb.Collection:
		for _, c := range g {
			d.addGeometry(c, tmpl)
		}
	}
}
