// Package main is the entry point for the interactive shadow viewer.
package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/midgard-shadow/internal/config"
	"github.com/Faultbox/midgard-shadow/internal/engine/scene"
	"github.com/Faultbox/midgard-shadow/internal/logger"
	"github.com/Faultbox/midgard-shadow/internal/viewer"
)

func main() {
	// Parse CLI flags first
	config.ParseFlags()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== Midgard Shadow Viewer ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	s := scene.Demo()
	if cfg.Scene.Path != "" {
		s, err = scene.Load(cfg.Scene.Path)
		if err != nil {
			logger.Error("failed to load scene", zap.String("path", cfg.Scene.Path), zap.Error(err))
			os.Exit(1)
		}
	}

	v, err := viewer.New(cfg, s)
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
