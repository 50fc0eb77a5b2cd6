package scenario

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"cellsociety/internal/core"
	_ "cellsociety/internal/sims/briansbrain"
	_ "cellsociety/internal/sims/elementary"
	_ "cellsociety/internal/sims/fire"
	_ "cellsociety/internal/sims/life"
	_ "cellsociety/internal/sims/segregation"
	_ "cellsociety/internal/sims/wator"
)

func TestBuiltinsBuild(t *testing.T) {
	names := Builtin()
	for _, want := range []string{"brain", "fire", "glider", "rule30", "segregation", "wator"} {
		if !slices.Contains(names, want) {
			t.Fatalf("builtin %q missing from %v", want, names)
		}
	}
	for _, name := range names {
		s, err := Load(name)
		if err != nil {
			t.Fatalf("Load(%q): %v", name, err)
		}
		m, err := s.New()
		if err != nil {
			t.Fatalf("%s: build: %v", name, err)
		}
		m.Update()
	}
}

func TestGliderPicture(t *testing.T) {
	s, err := Load("glider")
	if err != nil {
		t.Fatal(err)
	}
	cfg, err := s.Config()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Rows != 10 || cfg.Cols != 10 {
		t.Fatalf("inferred %dx%d, want 10x10", cfg.Rows, cfg.Cols)
	}
	if cfg.Edges != core.Toroidal || cfg.Pattern != core.Moore {
		t.Fatalf("edges %s pattern %s", cfg.Edges, cfg.Pattern)
	}
	m, err := core.New(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if got := m.Population()["Alive"]; got != 5 {
		t.Fatalf("glider has %d live cells, want 5", got)
	}
	if st, _ := m.State(0, 1); m.States().Name(st) != "Alive" {
		t.Fatalf("(0,1) = %s, want Alive", m.States().Name(st))
	}
}

func TestLoadSearchOrder(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	work := t.TempDir()
	t.Chdir(work)

	s, err := Load("wator")
	if err != nil {
		t.Fatal(err)
	}
	if s.Rows != 40 {
		t.Fatalf("expected the built-in wator, got rows=%d", s.Rows)
	}

	local := "name: wator\nmodel: wator\nrows: 5\ncols: 5\n"
	if err := os.MkdirAll("scenarios", 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join("scenarios", "wator.yaml"), []byte(local), 0o644); err != nil {
		t.Fatal(err)
	}
	if s, err = Load("wator"); err != nil || s.Rows != 5 {
		t.Fatalf("local file not preferred over builtin: rows=%d err=%v", s.Rows, err)
	}

	user := "name: wator\nmodel: wator\nrows: 7\ncols: 7\n"
	if err := os.MkdirAll(UserDir(), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(UserDir(), "wator.yaml"), []byte(user), 0o644); err != nil {
		t.Fatal(err)
	}
	if s, err = Load("wator"); err != nil || s.Rows != 7 {
		t.Fatalf("user file not preferred over local: rows=%d err=%v", s.Rows, err)
	}

	explicit := filepath.Join(work, "mine.yaml")
	if err := os.WriteFile(explicit, []byte("name: mine\nmodel: life\nrows: 3\ncols: 3\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if s, err = Load(explicit); err != nil || s.Model != "life" {
		t.Fatalf("explicit path: %+v %v", s, err)
	}

	if _, err := Load("no-such-scenario"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("missing scenario error = %v, want ErrNotFound", err)
	}
}

func TestInvalidScenarios(t *testing.T) {
	cases := map[string]string{
		"unknown model": "name: x\nmodel: nope\nrows: 2\ncols: 2\n",
		"ragged rows":   "name: x\nmodel: life\ncells:\n  - \"..\"\n  - \"...\"\n",
		"legend miss":   "name: x\nmodel: life\nlegend:\n  \".\": Dead\ncells:\n  - \".#\"\n",
		"bad topology":  "name: x\nmodel: life\nrows: 2\ncols: 2\ntopology: cube\n",
		"bad pattern":   "name: x\nmodel: life\nrows: 2\ncols: 2\npattern: knight\n",
		"rows mismatch": "name: x\nmodel: life\nrows: 3\ncells:\n  - \"..\"\n",
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			s, err := Parse([]byte(doc), name)
			if err != nil {
				t.Fatalf("parse: %v", err)
			}
			if _, err := s.Config(); !errors.Is(err, core.ErrConfiguration) {
				t.Fatalf("Config error = %v, want ErrConfiguration", err)
			}
		})
	}

	if _, err := Parse([]byte("name: x\nmodel: life\ncolour: red\n"), "extra"); err == nil {
		t.Fatal("unknown field accepted")
	}
	if _, err := Parse([]byte("name: x\nrows: 2\n"), "no model"); !errors.Is(err, core.ErrConfiguration) {
		t.Fatalf("missing model error = %v", err)
	}
}

func TestParamsReachTheModel(t *testing.T) {
	doc := "name: x\nmodel: segregation\nrows: 4\ncols: 4\nparams:\n  threshold: 2\n"
	s, err := Parse([]byte(doc), "range")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.New(); !errors.Is(err, core.ErrConfiguration) {
		t.Fatalf("out-of-range threshold error = %v", err)
	}
}

func TestDefaultLegend(t *testing.T) {
	set := core.NewStateSet("legend-test",
		core.StateDef{Name: "Empty"},
		core.StateDef{Name: "Blue"},
		core.StateDef{Name: "Black"},
		core.StateDef{Name: "bronze"},
		core.StateDef{Name: "42"},
	)
	legend := DefaultLegend(set)
	want := map[string]string{".": "Empty", "B": "Blue", "b": "Black", "0": "bronze", "1": "42"}
	if len(legend) != len(want) {
		t.Fatalf("legend %v, want %v", legend, want)
	}
	for ch, name := range want {
		if legend[ch] != name {
			t.Fatalf("legend[%q] = %q, want %q (%v)", ch, legend[ch], name, legend)
		}
	}
}

func TestSaveAndReload(t *testing.T) {
	m, err := core.New(core.Config{Model: "wator", Rows: 6, Cols: 9, Topology: core.Triangular, Pattern: core.Diagonal,
		Edges: core.Toroidal, Distribution: map[string]float64{"Water": 0.5, "Fish": 0.4, "Shark": 0.1},
		Params: map[string]float64{"shark_starve_time": 5}, Seed: 21})
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 3; i++ {
		m.Update()
	}
	_ = m.Click(2, 2)

	path := filepath.Join(t.TempDir(), "nested", "saved.yaml")
	if err := Write(path, FromModel("saved", m)); err != nil {
		t.Fatal(err)
	}
	s, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	restored, err := s.New()
	if err != nil {
		t.Fatal(err)
	}

	if !slices.Equal(m.Snapshot().States(), restored.Snapshot().States()) {
		t.Fatal("restored grid differs from the saved model")
	}
	if restored.Finder() != m.Finder() {
		t.Fatalf("finder %+v, want %+v", restored.Finder(), m.Finder())
	}
	if restored.Params().Int("shark_starve_time") != 5 {
		t.Fatalf("params %v", restored.Params())
	}
}
