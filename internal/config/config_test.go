package config

import (
	"errors"
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/Faultbox/hexterrain/internal/export"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Metrics.OuterRadius != 10 {
		t.Errorf("expected outer radius 10, got %v", cfg.Metrics.OuterRadius)
	}
	if cfg.Metrics.TerracesPerSlope != 2 {
		t.Errorf("expected 2 terraces per slope, got %d", cfg.Metrics.TerracesPerSlope)
	}
	if cfg.Grid.ChunkCountX != 4 || cfg.Grid.ChunkCountZ != 3 {
		t.Errorf("expected 4x3 chunks, got %dx%d", cfg.Grid.ChunkCountX, cfg.Grid.ChunkCountZ)
	}
	if cfg.Generator.Seed != 0 {
		t.Errorf("expected random seed by default, got %d", cfg.Generator.Seed)
	}
	if cfg.Viewer.Width != 1280 || cfg.Viewer.Height != 720 {
		t.Errorf("expected 1280x720, got %dx%d", cfg.Viewer.Width, cfg.Viewer.Height)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config does not validate: %v", err)
	}
	if f, err := cfg.OutputFormat(); err != nil || f != export.FormatOBJ {
		t.Errorf("OutputFormat() = %q, %v; want obj", f, err)
	}
}

func TestLoadFromFile(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "hexterrain.yaml")

	yamlContent := `
metrics:
  outer_radius: 20
  terraces_per_slope: 3

grid:
  chunk_count_x: 8
  chunk_count_z: 6
  workers: 2

generator:
  seed: 99
  max_elevation: 4
  palette: [sand, "#336699"]

output:
  path: out/map.svg
  smooth_normals: true

viewer:
  fov: 45
  sun:
    elevation: 30

logging:
  level: "debug"
  log_file: "hexterrain.log"
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Metrics.OuterRadius != 20 || cfg.Metrics.TerracesPerSlope != 3 {
		t.Errorf("metrics = %+v", cfg.Metrics)
	}
	// Unset keys keep their defaults.
	if cfg.Metrics.SolidFactor != 0.75 {
		t.Errorf("expected default solid factor, got %v", cfg.Metrics.SolidFactor)
	}
	if cfg.Grid.ChunkCountX != 8 || cfg.Grid.ChunkCountZ != 6 || cfg.Grid.Workers != 2 {
		t.Errorf("grid = %+v", cfg.Grid)
	}
	if diff := cmp.Diff([]string{"sand", "#336699"}, cfg.Generator.Palette); diff != "" {
		t.Errorf("palette mismatch (-want +got):\n%s", diff)
	}
	if cfg.Generator.Octaves != 4 {
		t.Errorf("expected default octaves, got %d", cfg.Generator.Octaves)
	}
	if !cfg.Output.SmoothNormals {
		t.Error("expected smooth_normals to be true")
	}
	if f, err := cfg.OutputFormat(); err != nil || f != export.FormatSVG {
		t.Errorf("OutputFormat() = %q, %v; want svg", f, err)
	}
	if cfg.Viewer.FOV != 45 {
		t.Errorf("expected fov 45, got %v", cfg.Viewer.FOV)
	}
	if cfg.Viewer.Sun.Elevation != 30 || cfg.Viewer.Sun.Azimuth != 300 {
		t.Errorf("sun = %+v, want elevation 30 and default azimuth", cfg.Viewer.Sun)
	}
	if cfg.Logging.LogFile != "hexterrain.log" {
		t.Errorf("expected log file 'hexterrain.log', got %s", cfg.Logging.LogFile)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "invalid.yaml")
	invalidYAML := `
grid:
  chunk_count_x: not a number
  invalid syntax here
`
	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	if err := loadFromFile(Default(), configPath); err == nil {
		t.Error("expected error loading invalid YAML, got nil")
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	if err := loadFromFile(Default(), "/nonexistent/path/hexterrain.yaml"); err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"metrics", func(c *Config) { c.Metrics.SolidFactor = 0 }},
		{"grid", func(c *Config) { c.Grid.ChunkCountX = 0 }},
		{"generator", func(c *Config) { c.Generator.Octaves = 0 }},
		{"format", func(c *Config) { c.Output.Format = "fbx" }},
		{"viewer size", func(c *Config) { c.Viewer.Height = 0 }},
		{"viewer fov", func(c *Config) { c.Viewer.FOV = 180 }},
		{"screenshot format", func(c *Config) { c.Viewer.ScreenshotFormat = "gif" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalid) {
				t.Errorf("Validate() = %v, want ErrInvalid", err)
			}
		})
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()
	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}
	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir should return absolute path, got %s", dir)
	}
}

func TestFindConfigFile(t *testing.T) {
	chdir(t, t.TempDir())

	if path := findConfigFile(); path != "" && filepath.Dir(path) == "." {
		t.Errorf("expected no local config, got %s", path)
	}

	if err := os.WriteFile(FileName, []byte("grid:\n  chunk_count_x: 2\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}
	if path := findConfigFile(); path != "./"+FileName {
		t.Errorf("findConfigFile() = %q, want ./%s", path, FileName)
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name   string
		args   []string
		verify func(*testing.T, *Config)
	}{
		{
			name: "debug",
			args: []string{"-debug"},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
				if !cfg.Viewer.ShowStats {
					t.Error("expected show_stats to be enabled with debug flag")
				}
			},
		},
		{
			name: "seed and chunks",
			args: []string{"-seed", "77", "-chunks-x", "2", "-chunks-z", "5", "-workers", "3"},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Generator.Seed != 77 {
					t.Errorf("expected seed 77, got %d", cfg.Generator.Seed)
				}
				if cfg.Grid.ChunkCountX != 2 || cfg.Grid.ChunkCountZ != 5 || cfg.Grid.Workers != 3 {
					t.Errorf("grid = %+v", cfg.Grid)
				}
			},
		},
		{
			name: "output",
			args: []string{"-out", "mesh.bin", "-format", "pb"},
			verify: func(t *testing.T, cfg *Config) {
				if f, err := cfg.OutputFormat(); err != nil || f != export.FormatProto {
					t.Errorf("OutputFormat() = %q, %v; want pb", f, err)
				}
				if cfg.Output.Path != "mesh.bin" {
					t.Errorf("expected path mesh.bin, got %s", cfg.Output.Path)
				}
			},
		},
		{
			name: "window size",
			args: []string{"-width", "2560", "-height", "1440"},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Viewer.Width != 2560 || cfg.Viewer.Height != 1440 {
					t.Errorf("expected 2560x1440, got %dx%d", cfg.Viewer.Width, cfg.Viewer.Height)
				}
			},
		},
		{
			name: "none",
			verify: func(t *testing.T, cfg *Config) {
				if diff := cmp.Diff(Default(), cfg); diff != "" {
					t.Errorf("config changed without flags (-want +got):\n%s", diff)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := flag.NewFlagSet(tt.name, flag.ContinueOnError)
			flags := RegisterFlags(fs)
			if err := fs.Parse(tt.args); err != nil {
				t.Fatalf("Parse() error = %v", err)
			}

			cfg := Default()
			flags.apply(cfg)
			tt.verify(t, cfg)
		})
	}
}

func TestLoadPriority(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "hexterrain.yaml")
	yamlContent := `
grid:
  chunk_count_x: 6
  chunk_count_z: 2
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	flags := RegisterFlags(fs)
	if err := fs.Parse([]string{"-config", configPath, "-chunks-x", "9"}); err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	cfg, err := Load(flags)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// Flag beats file, file beats default.
	if cfg.Grid.ChunkCountX != 9 {
		t.Errorf("expected 9 chunk columns from flag, got %d", cfg.Grid.ChunkCountX)
	}
	if cfg.Grid.ChunkCountZ != 2 {
		t.Errorf("expected 2 chunk rows from file, got %d", cfg.Grid.ChunkCountZ)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(configPath, []byte("metrics:\n  outer_radius: -1\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	flags := RegisterFlags(fs)
	_ = fs.Parse([]string{"-config", configPath})

	if _, err := Load(flags); !errors.Is(err, ErrInvalid) {
		t.Errorf("Load() error = %v, want ErrInvalid", err)
	}
}

func TestSaveTo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "hexterrain.yaml")
	cfg := Default()
	cfg.Generator.Seed = 5
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo() error = %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("loadFromFile() error = %v", err)
	}
	if diff := cmp.Diff(cfg, loaded); diff != "" {
		t.Errorf("saved config mismatch (-want +got):\n%s", diff)
	}
}

// chdir changes the working directory for the duration of the test and
// restores it on cleanup (equivalent of testing.T.Chdir, added in Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(wd); err != nil {
			t.Fatalf("restore wd: %v", err)
		}
	})
}
