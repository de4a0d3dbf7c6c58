package gazebo

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"trackgen/internal/track"
)

func TestGenerate(t *testing.T) {
	out := t.TempDir()
	m := ModelOf("loop", &track.Track{Version: "0.0.1", Width: 8, Height: 6.5, Origin: [2]float64{-1, 0}})
	p, err := Generate(out, m)
	if err != nil {
		t.Fatal(err)
	}

	read := func(path string) string {
		t.Helper()
		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatal(err)
		}
		return string(data)
	}

	for _, tt := range []struct {
		path string
		want []string
	}{
		{filepath.Join(out, "gazebo_models", "loop", "materials", "scripts", "track.material"),
			[]string{"material loop_material", "texture loop.png"}},
		{filepath.Join(out, "gazebo_models", "loop", "model.sdf"),
			[]string{`<model name="loop">`, "<size>8 6.5</size>", "<pose>3 3.25 0 0 0 0</pose>", "<name>loop_material</name>"}},
		{filepath.Join(out, "gazebo_models", "loop", "model.config"),
			[]string{"<name>loop</name>", "<version>0.0.1</version>"}},
		{filepath.Join(out, "gazebo_models", "loop.world"),
			[]string{"<uri>model://loop</uri>"}},
		{filepath.Join(out, "gazebo_models", "setup.bash"),
			[]string{"GAZEBO_MODEL_PATH"}},
	} {
		got := read(tt.path)
		for _, w := range tt.want {
			if !strings.Contains(got, w) {
				t.Errorf("%s: missing %q in\n%s", tt.path, w, got)
			}
		}
	}

	if fi, err := os.Stat(p.Textures); err != nil || !fi.IsDir() {
		t.Fatalf("texture directory: %v", err)
	}
	if got, want := p.TexturePath(m), filepath.Join(out, "gazebo_models", "loop", "materials", "textures", "loop.png"); got != want {
		t.Fatalf("TexturePath = %q, want %q", got, want)
	}
	if fi, err := os.Stat(filepath.Join(p.Root, "setup.bash")); err != nil || fi.Mode().Perm()&0o100 == 0 {
		t.Fatalf("setup.bash not executable: %v", err)
	}
}

func TestGenerateOverwrites(t *testing.T) {
	out := t.TempDir()
	m := Model{Name: "a", Width: 1, Height: 1}
	if _, err := Generate(out, m); err != nil {
		t.Fatal(err)
	}
	m.Width = 2
	p, err := Generate(out, m)
	if err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(filepath.Join(p.Model, "model.sdf"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "<size>2 1</size>") {
		t.Fatalf("stale model.sdf:\n%s", data)
	}
}
