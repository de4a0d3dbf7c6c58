// Package gazebo writes a Gazebo model that shows a rendered track as a
// textured ground plane.
//
// The layout under the output directory is
//
//	gazebo_models/
//	  setup.bash
//	  <name>.world
//	  <name>/
//	    model.config
//	    model.sdf
//	    materials/scripts/track.material
//	    materials/textures/<name>.png
package gazebo

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"text/template"

	"trackgen/internal/track"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var templates = template.Must(template.New("").Funcs(template.FuncMap{
	"num": func(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) },
}).ParseFS(templateFS, "templates/*.tmpl"))

const ModelsDir = "gazebo_models"

// Model describes the generated model.
type Model struct {
	Name    string
	Version string
	Width   float64
	Height  float64
	Origin  [2]float64
}

// ModelOf takes the size and placement of t.
func ModelOf(name string, t *track.Track) Model {
	return Model{Name: name, Version: t.Version, Width: t.Width, Height: t.Height, Origin: t.Origin}
}

func (m Model) Material() string { return m.Name + "_material" }
func (m Model) Texture() string  { return m.Name + ".png" }
func (m Model) CenterX() float64 { return m.Origin[0] + m.Width/2 }
func (m Model) CenterY() float64 { return m.Origin[1] + m.Height/2 }

// Paths are the locations of a generated model.
type Paths struct {
	Root     string // gazebo_models
	Model    string // gazebo_models/<name>
	Scripts  string
	Textures string
}

// TexturePath is where the rendered track image belongs.
func (p Paths) TexturePath(m Model) string { return filepath.Join(p.Textures, m.Texture()) }

// PathsOf returns the model locations below outputDir.
func PathsOf(outputDir string, m Model) Paths {
	root := filepath.Join(outputDir, ModelsDir)
	model := filepath.Join(root, m.Name)
	return Paths{
		Root:     root,
		Model:    model,
		Scripts:  filepath.Join(model, "materials", "scripts"),
		Textures: filepath.Join(model, "materials", "textures"),
	}
}

// Generate creates the directory tree and writes every model file except the
// texture, which the caller renders to Paths.TexturePath.
func Generate(outputDir string, m Model) (Paths, error) {
	p := PathsOf(outputDir, m)
	for _, dir := range []string{p.Scripts, p.Textures} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return p, err
		}
	}

	files := []struct {
		tmpl string
		path string
		mode os.FileMode
	}{
		{"track.material.tmpl", filepath.Join(p.Scripts, "track.material"), 0o644},
		{"model.sdf.tmpl", filepath.Join(p.Model, "model.sdf"), 0o644},
		{"model.config.tmpl", filepath.Join(p.Model, "model.config"), 0o644},
		{"world.tmpl", filepath.Join(p.Root, m.Name+".world"), 0o644},
		{"setup.bash.tmpl", filepath.Join(p.Root, "setup.bash"), 0o755},
	}
	for _, f := range files {
		if err := write(f.path, f.tmpl, f.mode, m); err != nil {
			return p, err
		}
	}
	return p, nil
}

func write(path, tmpl string, mode os.FileMode, m Model) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, mode)
	if err != nil {
		return err
	}
	if err := templates.ExecuteTemplate(f, tmpl, m); err != nil {
		f.Close()
		return fmt.Errorf("gazebo: %s: %w", tmpl, err)
	}
	return f.Close()
}
