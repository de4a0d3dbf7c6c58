// Package generator turns track files into their output artifacts: SVG and
// PNG images, a Gazebo model, ground truth and GeoJSON.
package generator

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"trackgen/internal/gazebo"
	"trackgen/internal/geom"
	"trackgen/internal/groundtruth"
	"trackgen/internal/render"
	"trackgen/internal/track"
	"trackgen/internal/trackxml"
)

// DefaultScale is the default raster resolution in pixels per meter.
const DefaultScale = 1000

// Options selects the artifacts to produce.
type Options struct {
	OutputDir      string
	PNG            bool
	Gazebo         bool
	GroundTruth    bool
	GroundTruthCSV bool
	GeoJSON        bool
	// Verbose adds <name>_verbose.svg with annotated anchor points.
	Verbose    bool
	PixelScale float64
	Logger     *slog.Logger
}

func (o Options) scale() float64 {
	if o.PixelScale <= 0 {
		return DefaultScale
	}
	return o.PixelScale
}

// TrackName is the file name of path without directory and extension.
func TrackName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// GenerateTracks generates every track in paths and returns the output
// directory of each. It stops at the first failing track.
func GenerateTracks(paths []string, opts Options) ([]string, error) {
	var dirs []string
	for _, p := range paths {
		dir, err := Generate(p, opts)
		if err != nil {
			return dirs, err
		}
		dirs = append(dirs, dir)
	}
	return dirs, nil
}

// Generate reads, calculates and writes one track into
// <OutputDir>/<name>/.
func Generate(path string, opts Options) (string, error) {
	log := logger(opts.Logger).With("track", path)
	log.Info("reading track")

	t, err := trackxml.ReadFile(path)
	if err != nil {
		return "", err
	}
	l, err := t.Calc()
	if err != nil {
		return "", fmt.Errorf("%s: %w", path, err)
	}
	for _, i := range l.NonFinite() {
		log.Warn("segment has non-finite geometry", "index", i, "kind", l.Segments[i].Spec.Kind())
	}

	name := TrackName(path)
	dir := filepath.Join(opts.OutputDir, name)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	w := &writer{log: log, layout: l, name: name, dir: dir, scale: opts.scale()}
	steps := []struct {
		on bool
		fn func() error
	}{
		{true, w.svg},
		{opts.PNG, func() error { return w.png(filepath.Join(dir, name+".png")) }},
		{opts.Gazebo, w.gazebo},
		{opts.Verbose, w.verboseSVG},
		{opts.GroundTruth, func() error { return w.groundTruth(opts.GroundTruthCSV) }},
		{opts.GeoJSON, w.geoJSON},
	}
	for _, s := range steps {
		if !s.on {
			continue
		}
		if err := s.fn(); err != nil {
			return dir, fmt.Errorf("%s: %w", name, err)
		}
	}
	log.Info("track generated", "dir", dir, "segments", len(l.Segments))
	return dir, nil
}

type writer struct {
	log     *slog.Logger
	layout  *track.Layout
	name    string
	dir     string
	scale   float64
	painter render.Painter
}

func (w *writer) view() render.View { return render.ViewOf(w.layout.Track, w.scale) }

func (w *writer) svg() error {
	c := render.NewSVG(w.view())
	if err := w.painter.DrawTrack(c, w.layout); err != nil {
		return err
	}
	return w.save(c.Save, w.name+".svg")
}

func (w *writer) verboseSVG() error {
	c := render.NewSVG(w.view())
	if err := w.painter.DrawTrack(c, w.layout); err != nil {
		return err
	}
	w.painter.DrawVerbose(c, w.layout)
	return w.save(c.Save, w.name+"_verbose.svg")
}

func (w *writer) png(path string) error {
	c := render.NewPNG(w.view())
	defer c.Close()
	if err := w.painter.DrawTrack(c, w.layout); err != nil {
		return err
	}
	if err := c.Save(path); err != nil {
		return err
	}
	w.log.Debug("wrote", "file", path)
	return nil
}

func (w *writer) gazebo() error {
	m := gazebo.ModelOf(w.name, w.layout.Track)
	p, err := gazebo.Generate(w.dir, m)
	if err != nil {
		return err
	}
	w.log.Debug("wrote gazebo model", "dir", p.Model)
	return w.png(p.TexturePath(m))
}

func (w *writer) groundTruth(csv bool) error {
	pairs, err := groundtruth.Pairs(w.layout)
	if err != nil {
		return err
	}
	if err := groundtruth.Save(w.dir, pairs, csv); err != nil {
		return err
	}
	w.log.Debug("wrote ground truth", "pairs", len(pairs))
	return nil
}

func (w *writer) geoJSON() error {
	d := geom.FromLayout(w.layout)
	return w.save(func(path string) error {
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		if err := geom.WriteGeoJSON(f, d); err != nil {
			f.Close()
			return err
		}
		return f.Close()
	}, w.name+".geojson")
}

func (w *writer) save(fn func(string) error, file string) error {
	path := filepath.Join(w.dir, file)
	if err := fn(path); err != nil {
		return err
	}
	w.log.Debug("wrote", "file", path)
	return nil
}
