package config

import "flag"

// Flags holds command-line overrides. Zero values leave the config alone.
type Flags struct {
	config  string
	debug   bool
	seed    int64
	chunksX int
	chunksZ int
	workers int
	out     string
	format  string
	width   int
	height  int
}

// RegisterFlags binds the common flags to fs.
func RegisterFlags(fs *flag.FlagSet) *Flags {
	f := &Flags{}
	fs.StringVar(&f.config, "config", "", "Path to config file")
	fs.BoolVar(&f.debug, "debug", false, "Enable debug logging")
	fs.Int64Var(&f.seed, "seed", 0, "Terrain seed (0 = random)")
	fs.IntVar(&f.chunksX, "chunks-x", 0, "Chunk columns")
	fs.IntVar(&f.chunksZ, "chunks-z", 0, "Chunk rows")
	fs.IntVar(&f.workers, "workers", 0, "Triangulation workers (0 = one per CPU)")
	fs.StringVar(&f.out, "out", "", "Output file")
	fs.StringVar(&f.format, "format", "", "Output format: obj, pb or svg")
	fs.IntVar(&f.width, "width", 0, "Window width")
	fs.IntVar(&f.height, "height", 0, "Window height")
	return f
}

// ConfigPath returns the explicit config path if provided via -config.
func (f *Flags) ConfigPath() string {
	if f == nil {
		return ""
	}
	return f.config
}

// apply applies flag overrides to cfg.
func (f *Flags) apply(cfg *Config) {
	if f == nil {
		return
	}
	if f.debug {
		cfg.Logging.Level = "debug"
		cfg.Viewer.ShowStats = true
	}
	if f.seed != 0 {
		cfg.Generator.Seed = f.seed
	}
	if f.chunksX > 0 {
		cfg.Grid.ChunkCountX = f.chunksX
	}
	if f.chunksZ > 0 {
		cfg.Grid.ChunkCountZ = f.chunksZ
	}
	if f.workers > 0 {
		cfg.Grid.Workers = f.workers
	}
	if f.out != "" {
		cfg.Output.Path = f.out
	}
	if f.format != "" {
		cfg.Output.Format = f.format
	}
	if f.width > 0 {
		cfg.Viewer.Width = f.width
	}
	if f.height > 0 {
		cfg.Viewer.Height = f.height
	}
}
