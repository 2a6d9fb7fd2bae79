package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/pathgrid/pkg/config"
	"github.com/matzehuels/pathgrid/pkg/errors"
	"github.com/matzehuels/pathgrid/pkg/grid"
	"github.com/matzehuels/pathgrid/pkg/observability"
)

// runCLI executes the root command with args and returns stdout.
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Cleanup(observability.Reset)

	var out, logs bytes.Buffer
	c := New(&logs, log.InfoLevel)
	root := c.RootCommand()
	root.SetOut(&out)
	root.SetErr(&logs)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestParsePoint(t *testing.T) {
	tests := []struct {
		in      string
		want    grid.Point
		wantErr bool
	}{
		{"3,4", grid.Point{X: 3, Y: 4}, false},
		{" 0 , 7 ", grid.Point{X: 0, Y: 7}, false},
		{"-1,2", grid.Point{X: -1, Y: 2}, false},
		{"3", grid.Point{}, true},
		{"a,b", grid.Point{}, true},
		{"", grid.Point{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parsePoint(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parsePoint(%q) error = %v", tt.in, err)
			}
			if err != nil && !errors.Is(err, errors.ErrCodeInvalidPosition) {
				t.Errorf("error code = %s", errors.GetCode(err))
			}
			if got != tt.want {
				t.Errorf("parsePoint(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestGridFlagsApply(t *testing.T) {
	cfg := config.Default()
	f := gridFlags{width: 5, height: 3, diagonal: true, start: "1,0", end: "4,2"}
	if err := f.apply(&cfg); err != nil {
		t.Fatalf("apply: %v", err)
	}
	g, err := cfg.NewGrid()
	if err != nil {
		t.Fatalf("NewGrid: %v", err)
	}
	if describe(g) != "5x3 8-way" {
		t.Errorf("grid = %s", describe(g))
	}
	if g.Start() != g.Index(1, 0) || g.End() != g.Index(4, 2) {
		t.Errorf("markers = %d/%d", g.Start(), g.End())
	}

	bad := gridFlags{end: "5,0"}
	cfg = config.Default()
	cfg.Grid.Width = 5
	if err := bad.apply(&cfg); !errors.Is(err, errors.ErrCodeInvalidPosition) {
		t.Errorf("apply out-of-bounds end = %v", err)
	}
}

func TestPlaceObstacles(t *testing.T) {
	g, _ := grid.New(4, 4)
	err := placeObstacles(g, []string{"1,1", "1,1", "0,0", "3,3", "2,1"})
	if err != nil {
		t.Fatalf("placeObstacles: %v", err)
	}
	want := []int{g.Index(1, 1), g.Index(2, 1)}
	got := g.Obstacles()
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("obstacles = %v, want %v", got, want)
	}

	if err := placeObstacles(g, []string{"4,0"}); !errors.Is(err, errors.ErrCodeInvalidPosition) {
		t.Errorf("out of bounds error = %v", err)
	}
	if err := placeObstacles(g, []string{"x"}); err == nil {
		t.Error("expected parse error")
	}
}

func TestSolveJSON(t *testing.T) {
	out, err := runCLI(t, "solve", "--format", "json", "--width", "4", "--height", "4", "--obstacle", "1,0", "--obstacle", "1,1")
	if err != nil {
		t.Fatalf("solve: %v", err)
	}
	var f struct {
		Phase string       `json:"phase"`
		Path  []grid.Point `json:"path"`
		Cells []string     `json:"cells"`
	}
	if err := json.Unmarshal([]byte(out), &f); err != nil {
		t.Fatalf("decode %q: %v", out, err)
	}
	if f.Phase != "path" {
		t.Errorf("phase = %s", f.Phase)
	}
	if len(f.Path) != 7 {
		t.Errorf("path = %v, want 7 points", f.Path)
	}
	if f.Cells[1] != "obstacle" || f.Cells[5] != "obstacle" {
		t.Errorf("cells = %v", f.Cells)
	}
}

func TestSolveDOT(t *testing.T) {
	out, err := runCLI(t, "solve", "-f", "dot", "--width", "3", "--height", "3", "--labels")
	if err != nil {
		t.Fatalf("solve: %v", err)
	}
	if !strings.HasPrefix(out, "graph G {") || !strings.Contains(out, `label="2,2"`) {
		t.Errorf("dot output = %q", out)
	}
}

func TestSolveToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "frame.json")
	if _, err := runCLI(t, "solve", "-f", "json", "-o", path, "--width", "3", "--height", "1"); err != nil {
		t.Fatalf("solve: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Contains(data, []byte(`"phase": "path"`)) {
		t.Errorf("file = %s", data)
	}
}

func TestSolveAnimate(t *testing.T) {
	out, err := runCLI(t, "solve", "-f", "json", "--animate", "--delay", "1ms", "--width", "2", "--height", "2")
	if err != nil {
		t.Fatalf("solve: %v", err)
	}
	// Board frames precede the JSON document.
	if n := strings.Count(out, "searching"); n < 3 {
		t.Errorf("saw %d animated frames:\n%s", n, out)
	}
	if !strings.Contains(out, "path found: 2 hops") {
		t.Errorf("missing final frame:\n%s", out)
	}
}

func TestSolveErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		code errors.Code
	}{
		{"format", []string{"solve", "-f", "gif"}, errors.ErrCodeInvalidFormat},
		{"start", []string{"solve", "--start", "9,9"}, errors.ErrCodeInvalidPosition},
		{"size", []string{"solve", "--width", "1000"}, errors.ErrCodeInvalidSize},
		{"obstacle", []string{"solve", "--obstacle", "8,8"}, errors.ErrCodeInvalidPosition},
		{"config", []string{"solve", "--config", "/nonexistent/pathgrid.toml"}, errors.ErrCodeFileNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := runCLI(t, tt.args...)
			if !errors.Is(err, tt.code) {
				t.Errorf("error = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestConfigCommand(t *testing.T) {
	out, err := runCLI(t, "config")
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	for _, want := range []string{"[grid]", "width = 8", `frame_delay = "20ms"`, `addr = ":8080"`} {
		if !strings.Contains(out, want) {
			t.Errorf("config output missing %q:\n%s", want, out)
		}
	}
	if _, err := config.Parse([]byte(out)); err != nil {
		t.Errorf("printed config does not parse: %v", err)
	}
}

func TestConfigCommandFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pathgrid.toml")
	if err := os.WriteFile(path, []byte("[grid]\nwidth = 5\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	out, err := runCLI(t, "--config", path, "config")
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	if !strings.Contains(out, "width = 5") {
		t.Errorf("config output:\n%s", out)
	}

	out, err = runCLI(t, "--config", path, "config", "--path")
	if err != nil {
		t.Fatalf("config --path: %v", err)
	}
	if strings.TrimSpace(out) != path {
		t.Errorf("config --path = %q, want %q", out, path)
	}
}

func TestCompletion(t *testing.T) {
	out, err := runCLI(t, "completion", "bash")
	if err != nil {
		t.Fatalf("completion: %v", err)
	}
	if !strings.Contains(out, "pathgrid") {
		t.Error("completion script does not mention pathgrid")
	}
}

func TestBaseURL(t *testing.T) {
	tests := map[string]string{
		":8080":          "http://localhost:8080",
		"127.0.0.1:9000": "http://127.0.0.1:9000",
	}
	for addr, want := range tests {
		if got := baseURL(addr); got != want {
			t.Errorf("baseURL(%q) = %q, want %q", addr, got, want)
		}
	}
}
