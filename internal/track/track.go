// Package track resolves a sequence of track segments, each declared
// relative to the one before it, into world geometry.
package track

// Background is either a BackgroundColor or a BackgroundImage.
type Background interface {
	isBackground()
}

// BackgroundColor fills the canvas with a color such as "#336633".
type BackgroundColor struct {
	Color   string
	Opacity float64
}

// BackgroundImage places an image file on the canvas, in world units.
type BackgroundImage struct {
	File                string
	X, Y, Width, Height float64
}

func (BackgroundColor) isBackground() {}
func (BackgroundImage) isBackground() {}

// Track is a parsed track description.
type Track struct {
	Version    string
	Width      float64
	Height     float64
	Origin     [2]float64
	Background Background
	Segments   []Spec
}

// Layout is a Track with every segment calculated.
type Layout struct {
	Track    *Track
	Segments []Segment
}

// Calc calculates every segment in order, each against the one before it.
// The first segment must be a Start. Calc does not modify t and may be called
// any number of times; every call builds fresh geometry.
func (t *Track) Calc() (*Layout, error) {
	if len(t.Segments) == 0 {
		return nil, ErrEmptyTrack
	}
	if _, ok := t.Segments[0].(Start); !ok {
		return nil, &SegmentError{Index: 0, Kind: KindOf(t.Segments[0]), Err: ErrNoStart}
	}

	out := make([]Segment, 0, len(t.Segments))
	var prev *Segment
	for i, spec := range t.Segments {
		seg, err := Calc(spec, prev)
		if err != nil {
			return nil, &SegmentError{Index: i, Kind: KindOf(spec), Err: err}
		}
		out = append(out, seg)
		prev = &out[len(out)-1]
	}
	return &Layout{Track: t, Segments: out}, nil
}

// NonFinite returns the indices of segments whose geometry contains NaN or
// infinite coordinates. Degenerate parameters are not rejected by Calc; they
// surface here.
func (l *Layout) NonFinite() []int {
	var idx []int
	for i, s := range l.Segments {
		if !s.Finite() {
			idx = append(idx, i)
		}
	}
	return idx
}

// KindOf is s.Kind(), or "nil" for a nil Spec.
func KindOf(s Spec) Kind {
	if s == nil {
		return "nil"
	}
	return s.Kind()
}
