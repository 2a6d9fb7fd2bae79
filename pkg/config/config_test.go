package config

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/pathgrid/pkg/errors"
	"github.com/matzehuels/pathgrid/pkg/grid"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v", err)
	}
	if cfg.Grid.Width != 8 || cfg.Grid.Height != 8 {
		t.Errorf("size = %dx%d, want 8x8", cfg.Grid.Width, cfg.Grid.Height)
	}
	if cfg.Replay.FrameDelay.Duration != 20*time.Millisecond {
		t.Errorf("frame delay = %v, want 20ms", cfg.Replay.FrameDelay)
	}
	if cfg.Server.Addr != ":8080" {
		t.Errorf("addr = %q", cfg.Server.Addr)
	}
}

func TestParse(t *testing.T) {
	data := `
[grid]
width = 12
height = 5
connectivity = "8"
start = [1, 2]
end = [11, 4]

[replay]
frame_delay = "150ms"

[server]
addr = "127.0.0.1:9000"
`
	cfg, err := Parse([]byte(data))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.Grid.Width != 12 || cfg.Grid.Height != 5 {
		t.Errorf("size = %dx%d", cfg.Grid.Width, cfg.Grid.Height)
	}
	if !slices.Equal(cfg.Grid.Start, []int{1, 2}) || !slices.Equal(cfg.Grid.End, []int{11, 4}) {
		t.Errorf("markers = %v %v", cfg.Grid.Start, cfg.Grid.End)
	}
	if cfg.Replay.FrameDelay.Duration != 150*time.Millisecond {
		t.Errorf("frame delay = %v", cfg.Replay.FrameDelay)
	}
	if cfg.Server.Addr != "127.0.0.1:9000" {
		t.Errorf("addr = %q", cfg.Server.Addr)
	}
	if cfg.Server.MaxSessions != DefaultMaxSessions {
		t.Errorf("max sessions = %d, want default", cfg.Server.MaxSessions)
	}
}

func TestParsePartialKeepsDefaults(t *testing.T) {
	cfg, err := Parse([]byte("[grid]\nwidth = 3\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.Grid.Width != 3 || cfg.Grid.Height != DefaultHeight {
		t.Errorf("size = %dx%d", cfg.Grid.Width, cfg.Grid.Height)
	}
	if cfg.Replay.FrameDelay.Duration != DefaultFrameDelay {
		t.Errorf("frame delay = %v", cfg.Replay.FrameDelay)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
		code errors.Code
	}{
		{"syntax", "[grid\n", errors.ErrCodeInvalidConfig},
		{"unknown key", "[grid]\ndepth = 3\n", errors.ErrCodeInvalidConfig},
		{"zero width", "[grid]\nwidth = 0\n", errors.ErrCodeInvalidSize},
		{"too tall", "[grid]\nheight = 1000\n", errors.ErrCodeInvalidSize},
		{"connectivity", "[grid]\nconnectivity = \"6\"\n", errors.ErrCodeInvalidConfig},
		{"start outside", "[grid]\nstart = [8, 0]\n", errors.ErrCodeInvalidPosition},
		{"end arity", "[grid]\nend = [1]\n", errors.ErrCodeInvalidConfig},
		{"bad delay", "[replay]\nframe_delay = \"soon\"\n", errors.ErrCodeInvalidConfig},
		{"negative delay", "[replay]\nframe_delay = \"-1s\"\n", errors.ErrCodeInvalidConfig},
		{"no sessions", "[server]\nmax_sessions = 0\n", errors.ErrCodeInvalidConfig},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data))
			if err == nil {
				t.Fatal("expected error")
			}
			if got := errors.GetCode(err); got != tt.code {
				t.Errorf("code = %s, want %s (err: %v)", got, tt.code, err)
			}
		})
	}
}

func TestNewGrid(t *testing.T) {
	cfg := Default()
	cfg.Grid.Width, cfg.Grid.Height = 5, 4
	cfg.Grid.Connectivity = "8"
	cfg.Grid.Start = []int{1, 1}
	cfg.Grid.End = []int{3, 2}

	g, err := cfg.NewGrid()
	if err != nil {
		t.Fatalf("NewGrid: %v", err)
	}
	if g.Width() != 5 || g.Height() != 4 {
		t.Errorf("size = %dx%d", g.Width(), g.Height())
	}
	if g.Connectivity() != grid.Conn8 {
		t.Errorf("connectivity = %v", g.Connectivity())
	}
	if g.Start() != g.Index(1, 1) || g.End() != g.Index(3, 2) {
		t.Errorf("markers = %d/%d", g.Start(), g.End())
	}
}

func TestNewGridDefaultMarkers(t *testing.T) {
	g, err := Default().NewGrid()
	if err != nil {
		t.Fatalf("NewGrid: %v", err)
	}
	if g.Start() != 0 || g.End() != g.Len()-1 {
		t.Errorf("markers = %d/%d", g.Start(), g.End())
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Grid.Start = []int{2, 3}
	cfg.Replay.FrameDelay = Duration{time.Second}

	out := cfg.String()
	if !strings.Contains(out, `frame_delay = "1s"`) {
		t.Errorf("encoded config missing frame_delay:\n%s", out)
	}
	back, err := Parse([]byte(out))
	if err != nil {
		t.Fatalf("Parse(encoded): %v\n%s", err, out)
	}
	if !slices.Equal(back.Grid.Start, cfg.Grid.Start) || back.Replay != cfg.Replay || back.Server != cfg.Server {
		t.Errorf("round trip = %+v, want %+v", back, cfg)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte("[grid]\nwidth = 4\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Grid.Width != 4 {
		t.Errorf("width = %d", cfg.Grid.Width)
	}

	_, err = Load(filepath.Join(dir, "missing.toml"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("missing file error = %v", err)
	}
	if _, err := Load(""); !errors.Is(err, errors.ErrCodeInvalidPath) {
		t.Errorf("empty path error = %v", err)
	}
}

func TestResolve(t *testing.T) {
	home := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", home)

	cfg, used, err := Resolve("")
	if err != nil || used != "" {
		t.Fatalf("Resolve without file = %q, %v", used, err)
	}
	if cfg.Grid.Width != DefaultWidth {
		t.Errorf("width = %d, want default", cfg.Grid.Width)
	}

	path := filepath.Join(home, "pathgrid", "config.toml")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("[grid]\nheight = 3\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, used, err = Resolve("")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if used != path || cfg.Grid.Height != 3 {
		t.Errorf("Resolve = %q height %d", used, cfg.Grid.Height)
	}
}
