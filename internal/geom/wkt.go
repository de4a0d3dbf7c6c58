package geom

import (
	"strings"

	"github.com/paulmach/orb/encoding/wkt"
)

// ParseWKT parses any WKT geometry into Data. Pasted geometry is not tied to
// a segment.
func ParseWKT(s string) (Data, error) {
	g, err := wkt.Unmarshal(strings.TrimSpace(s))
	if err != nil {
		return Data{}, err
	}
	var d Data
	d.addGeometry(g, Line{Segment: -1, Layer: LayerMarkings, Kind: "WKT"})
	if len(d.Points) == 0 && len(d.Lines) == 0 {
		return Data{}, ErrNoGeometry
	}
	d.BBox = d.bound()
	return d, nil
}

// WKT renders l as a LINESTRING or POLYGON.
func (l Line) WKT() string {
	return wkt.MarshalString(l.geometry())
}
