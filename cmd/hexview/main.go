// hexview opens an interactive window on generated or loaded hex terrain.
package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/hexterrain/internal/config"
	"github.com/Faultbox/hexterrain/internal/logger"
	"github.com/Faultbox/hexterrain/internal/viewer"
	"github.com/Faultbox/hexterrain/internal/world"
)

func main() {
	flags := config.RegisterFlags(flag.CommandLine)
	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: hexview [options] [map.yaml]")
		flag.PrintDefaults()
	}
	flag.Parse()

	cfg, err := config.Load(flags)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== hexview ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	g, seed, err := world.Load(cfg, flag.Arg(0))
	if err != nil {
		logger.Error("failed to load terrain", zap.Error(err))
		os.Exit(1)
	}

	v, err := viewer.New(cfg, g, seed)
	if err != nil {
		logger.Error("failed to create viewer", zap.Error(err))
		os.Exit(1)
	}
	defer v.Close()

	if err := v.Run(); err != nil {
		logger.Error("viewer error", zap.Error(err))
		os.Exit(1)
	}

	logger.Info("viewer closed normally")
}
