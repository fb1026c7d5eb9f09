// Package config handles hexterrain configuration loading and management.
package config

import (
	"errors"
	"fmt"

	"github.com/Faultbox/hexterrain/internal/engine/debug"
	"github.com/Faultbox/hexterrain/internal/engine/lighting"
	"github.com/Faultbox/hexterrain/internal/export"
	"github.com/Faultbox/hexterrain/internal/grid"
	"github.com/Faultbox/hexterrain/internal/terrain"
	"github.com/Faultbox/hexterrain/pkg/hex"
)

var ErrInvalid = errors.New("invalid config")

// Config holds all settings.
type Config struct {
	Metrics   hex.MetricsConfig `yaml:"metrics"`
	Grid      grid.Config       `yaml:"grid"`
	Generator terrain.Config    `yaml:"generator"`
	Output    OutputConfig      `yaml:"output"`
	Viewer    ViewerConfig      `yaml:"viewer"`
	Logging   LoggingConfig     `yaml:"logging"`
}

// OutputConfig holds mesh export settings.
type OutputConfig struct {
	Path          string            `yaml:"path"`
	Format        string            `yaml:"format"` // obj, pb or svg; empty guesses from Path
	SmoothNormals bool              `yaml:"smooth_normals"`
	SVG           export.SVGOptions `yaml:"svg"`
}

// ViewerConfig holds window and camera settings for hexview.
type ViewerConfig struct {
	Width            int          `yaml:"width"`
	Height           int          `yaml:"height"`
	Fullscreen       bool         `yaml:"fullscreen"`
	VSync            bool         `yaml:"vsync"`
	FOV              float32      `yaml:"fov"`
	ShowStats        bool         `yaml:"show_stats"`
	Sun              lighting.Sun `yaml:"sun"`
	ScreenshotDir    string       `yaml:"screenshot_dir"`
	ScreenshotFormat string       `yaml:"screenshot_format"` // png or bmp
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Metrics:   hex.DefaultMetricsConfig(),
		Grid:      grid.DefaultConfig(),
		Generator: terrain.DefaultConfig(),
		Output: OutputConfig{
			Path: "terrain.obj",
			SVG:  export.DefaultSVGOptions(),
		},
		Viewer: ViewerConfig{
			Width:            1280,
			Height:           720,
			VSync:            true,
			FOV:              60,
			Sun:              lighting.DefaultSun(),
			ScreenshotDir:    "screenshots",
			ScreenshotFormat: "png",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Validate checks every section that has constraints.
func (c *Config) Validate() error {
	if err := c.Metrics.Validate(); err != nil {
		return fmt.Errorf("%w: metrics: %w", ErrInvalid, err)
	}
	if err := c.Grid.Validate(); err != nil {
		return fmt.Errorf("%w: grid: %w", ErrInvalid, err)
	}
	if err := c.Generator.Validate(); err != nil {
		return fmt.Errorf("%w: generator: %w", ErrInvalid, err)
	}
	if c.Output.Format != "" {
		if _, err := export.ParseFormat(c.Output.Format); err != nil {
			return fmt.Errorf("%w: output: %w", ErrInvalid, err)
		}
	}
	if c.Viewer.Width <= 0 || c.Viewer.Height <= 0 {
		return fmt.Errorf("%w: viewer size %dx%d", ErrInvalid, c.Viewer.Width, c.Viewer.Height)
	}
	if c.Viewer.FOV <= 0 || c.Viewer.FOV >= 180 {
		return fmt.Errorf("%w: viewer fov %v", ErrInvalid, c.Viewer.FOV)
	}
	if _, err := debug.NewScreenshotCapture("", "", c.Viewer.ScreenshotFormat); err != nil {
		return fmt.Errorf("%w: viewer: %w", ErrInvalid, err)
	}
	return nil
}

// OutputFormat resolves the export format from Format or the Path
// extension.
func (c *Config) OutputFormat() (export.Format, error) {
	if c.Output.Format != "" {
		return export.ParseFormat(c.Output.Format)
	}
	return export.FormatFromPath(c.Output.Path)
}
