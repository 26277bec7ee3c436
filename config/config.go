package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
)

// EnvConfigPath names the environment variable pointing to a config file.
const EnvConfigPath = "FRAMELESS_CONFIG"

type ArcMode string

const (
	// ArcPolyline strokes border arcs as stacked concentric polylines.
	ArcPolyline ArcMode = "polyline"

	// ArcMesh fills border arcs as an annulus sector mesh.
	ArcMesh ArcMode = "mesh"
)

type Segments struct {
	Base  int     `toml:"base_segments"`
	Coeff float32 `toml:"segment_coeff"`
}

type Stroke struct {
	Segments
	ThicknessStep float32 `toml:"thickness_step"`
}

// TitlebarControlCount is the number of window controls in the titlebar:
// minimize, maximize and close.
const TitlebarControlCount = 3

type Titlebar struct {
	Height       int `toml:"height"`
	ControlWidth int `toml:"control_width"`
	ControlCount int `toml:"control_count"`
}

// ReservedWidth is the width at the right end of the titlebar that belongs
// to the window controls.
func (t Titlebar) ReservedWidth() int {
	return t.ControlWidth * t.ControlCount
}

type Window struct {
	Title  string `toml:"title"`
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
}

type Config struct {
	HitMargin int `toml:"hit_margin"`
	MinWidth  int `toml:"min_width"`
	MinHeight int `toml:"min_height"`

	Fill   Segments `toml:"fill"`
	Stroke Stroke   `toml:"stroke"`

	ArcMode       ArcMode `toml:"arc_mode"`
	MeshCacheSize int     `toml:"mesh_cache_size"`

	Titlebar Titlebar `toml:"titlebar"`
	Window   Window   `toml:"window"`

	MSAA     int    `toml:"msaa"`
	LogLevel string `toml:"log_level"`
}

func Default() Config {
	return Config{
		HitMargin: 6,
		MinWidth:  430,
		MinHeight: 270,

		Fill: Segments{Base: 16, Coeff: 0.5},

		Stroke: Stroke{
			Segments:      Segments{Base: 16, Coeff: 1.5},
			ThicknessStep: 0.4,
		},

		ArcMode:       ArcPolyline,
		MeshCacheSize: 256,

		Titlebar: Titlebar{
			Height:       35,
			ControlWidth: 35,
			ControlCount: TitlebarControlCount,
		},

		Window: Window{
			Title:  "frameless",
			Width:  800,
			Height: 600,
		},

		MSAA:     4,
		LogLevel: "info",
	}
}

// Decode overlays the toml document on top of the current values.
// Keys missing in data keep their current value.
func (c *Config) Decode(data string) error {
	if _, err := toml.Decode(data, c); err != nil {
		return fmt.Errorf("decode config: %w", err)
	}

	return c.Validate()
}

// Load returns the default configuration overlaid with the file at path.
// An empty path yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config %q: %w", path, err)
	}

	if err := cfg.Decode(string(data)); err != nil {
		return cfg, fmt.Errorf("load config %q: %w", path, err)
	}

	return cfg, nil
}

// Path returns the config file to load. An explicit path wins over the
// environment variable.
func Path(explicit string) string {
	if explicit != "" {
		return explicit
	}

	return os.Getenv(EnvConfigPath)
}

func (c *Config) Validate() error {
	var errs []error

	positive := func(name string, value float64) {
		if value <= 0 {
			errs = append(errs, fmt.Errorf("%s must be positive, got %v", name, value))
		}
	}

	positive("hit_margin", float64(c.HitMargin))
	positive("min_width", float64(c.MinWidth))
	positive("min_height", float64(c.MinHeight))
	positive("fill.base_segments", float64(c.Fill.Base))
	positive("fill.segment_coeff", float64(c.Fill.Coeff))
	positive("stroke.base_segments", float64(c.Stroke.Base))
	positive("stroke.segment_coeff", float64(c.Stroke.Coeff))
	positive("stroke.thickness_step", float64(c.Stroke.ThicknessStep))
	positive("titlebar.height", float64(c.Titlebar.Height))
	positive("window.width", float64(c.Window.Width))
	positive("window.height", float64(c.Window.Height))

	if c.Titlebar.ControlWidth < 0 {
		errs = append(errs, errors.New("titlebar.control_width must not be negative"))
	}

	if c.Titlebar.ControlCount != TitlebarControlCount {
		errs = append(errs, fmt.Errorf("titlebar.control_count must be %d, got %d", TitlebarControlCount, c.Titlebar.ControlCount))
	}

	if c.MeshCacheSize < 0 {
		errs = append(errs, fmt.Errorf("mesh_cache_size must not be negative, got %d", c.MeshCacheSize))
	}

	switch c.ArcMode {
	case ArcPolyline, ArcMesh:
	default:
		errs = append(errs, fmt.Errorf("unknown arc_mode %q", c.ArcMode))
	}

	switch c.MSAA {
	case 1, 4:
	default:
		errs = append(errs, fmt.Errorf("msaa must be 1 or 4, got %d", c.MSAA))
	}

	if _, err := c.Level(); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

// Level parses the configured log level.
func (c *Config) Level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(c.LogLevel))); err != nil {
		return slog.LevelInfo, fmt.Errorf("parse log_level: %w", err)
	}

	return level, nil
}
