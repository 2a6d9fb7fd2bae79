// Package config loads pathgrid settings from TOML.
//
// A configuration file looks like:
//
//	[grid]
//	width = 8
//	height = 8
//	connectivity = "4"
//	start = [0, 0]
//	end = [7, 7]
//
//	[replay]
//	frame_delay = "20ms"
//
//	[server]
//	addr = ":8080"
//	max_sessions = 64
//
// Every key is optional; missing keys keep their [Default] values. Unknown
// keys are rejected so typos do not silently fall back to defaults.
package config

import (
	"bytes"
	stderrors "errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/pathgrid/pkg/errors"
	"github.com/matzehuels/pathgrid/pkg/grid"
)

const (
	appName  = "pathgrid"
	fileName = "config.toml"

	DefaultWidth       = 8
	DefaultHeight      = 8
	DefaultFrameDelay  = 20 * time.Millisecond
	DefaultAddr        = ":8080"
	DefaultMaxSessions = 64
)

// Config is the full application configuration.
type Config struct {
	Grid   GridConfig   `toml:"grid"`
	Replay ReplayConfig `toml:"replay"`
	Server ServerConfig `toml:"server"`
}

// GridConfig sizes the grid and places the markers.
type GridConfig struct {
	Width        int    `toml:"width"`
	Height       int    `toml:"height"`
	Connectivity string `toml:"connectivity"`
	Start        []int  `toml:"start,omitempty"` // [x, y]; defaults to the top-left corner
	End          []int  `toml:"end,omitempty"`   // [x, y]; defaults to the bottom-right corner
}

// ReplayConfig controls frame pacing for hosts that pace themselves.
type ReplayConfig struct {
	FrameDelay Duration `toml:"frame_delay"`
}

// ServerConfig controls the HTTP host.
type ServerConfig struct {
	Addr        string `toml:"addr"`
	MaxSessions int    `toml:"max_sessions"`
}

// Duration is a time.Duration written as a Go duration string in TOML.
type Duration struct{ time.Duration }

// UnmarshalText parses strings such as "20ms".
func (d *Duration) UnmarshalText(b []byte) error {
	v, err := time.ParseDuration(string(b))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText formats the duration with time.Duration.String.
func (d Duration) MarshalText() ([]byte, error) { return []byte(d.String()), nil }

// Default returns the built-in configuration: an 8×8 4-connected grid,
// corner markers and a 20ms frame delay.
func Default() Config {
	return Config{
		Grid: GridConfig{
			Width:        DefaultWidth,
			Height:       DefaultHeight,
			Connectivity: grid.Conn4.String(),
		},
		Replay: ReplayConfig{FrameDelay: Duration{DefaultFrameDelay}},
		Server: ServerConfig{Addr: DefaultAddr, MaxSessions: DefaultMaxSessions},
	}
}

// Parse decodes TOML on top of the defaults and validates the result.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "decode config")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, errors.New(errors.ErrCodeInvalidConfig, "unknown keys: %s", strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Load reads and parses the TOML file at path.
func Load(path string) (Config, error) {
	if err := errors.ValidatePath(path); err != nil {
		return Config{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return Config{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "config %s", path)
		}
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read %s", path)
	}
	return Parse(data)
}

// Resolve loads the file at path when set. Otherwise it loads the default
// location if a file exists there, and falls back to [Default].
// The returned string is the file actually used, or "" for defaults.
func Resolve(path string) (Config, string, error) {
	if path != "" {
		cfg, err := Load(path)
		return cfg, path, err
	}
	def, err := DefaultPath()
	if err != nil {
		return Default(), "", nil
	}
	if _, err := os.Stat(def); err != nil {
		return Default(), "", nil
	}
	cfg, err := Load(def)
	return cfg, def, err
}

// DefaultPath returns the config file location using the XDG standard
// (~/.config/pathgrid/config.toml).
func DefaultPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, fileName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, fileName), nil
}

// Validate checks sizes, marker positions, connectivity and pacing.
func (c Config) Validate() error {
	g := c.Grid
	if err := errors.ValidateDimensions(g.Width, g.Height); err != nil {
		return err
	}
	if _, err := grid.ParseConnectivity(g.Connectivity); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "grid.connectivity")
	}
	for _, m := range []struct {
		name string
		pos  []int
	}{{"grid.start", g.Start}, {"grid.end", g.End}} {
		if m.pos == nil {
			continue
		}
		if len(m.pos) != 2 {
			return errors.New(errors.ErrCodeInvalidConfig, "%s must be [x, y], got %d values", m.name, len(m.pos))
		}
		if err := errors.ValidatePosition(m.name, m.pos[0], m.pos[1], g.Width, g.Height); err != nil {
			return err
		}
	}
	if c.Replay.FrameDelay.Duration <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "replay.frame_delay must be positive")
	}
	if c.Server.MaxSessions <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "server.max_sessions must be positive")
	}
	return nil
}

// NewGrid builds a grid from the grid section. The config must be valid.
func (c Config) NewGrid() (*grid.Grid, error) {
	conn, err := grid.ParseConnectivity(c.Grid.Connectivity)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "grid.connectivity")
	}
	g, err := grid.New(c.Grid.Width, c.Grid.Height, grid.WithConnectivity(conn))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidSize, err, "build grid")
	}
	if s := c.Grid.Start; len(s) == 2 {
		if err := g.SetStart(s[0], s[1]); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidPosition, err, "grid.start")
		}
	}
	if e := c.Grid.End; len(e) == 2 {
		if err := g.SetEnd(e[0], e[1]); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidPosition, err, "grid.end")
		}
	}
	return g, nil
}

// Encode writes the configuration as TOML.
func (c Config) Encode(w io.Writer) error {
	return toml.NewEncoder(w).Encode(c)
}

// String returns the TOML encoding, or "" if encoding fails.
func (c Config) String() string {
	var buf bytes.Buffer
	if err := c.Encode(&buf); err != nil {
		return ""
	}
	return buf.String()
}
