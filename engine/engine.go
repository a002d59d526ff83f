// Copyright 2023 Gustavo C. Viegas. All rights reserved.

// Package engine submits the drawables of a scene graph
// for rendering, one pass at a time.
package engine

import (
	"go.uber.org/zap"

	"github.com/gviegas/neo3/config"
	"github.com/gviegas/neo3/internal/log"
)

const (
	// The maximum number of render passes.
	MaxPass = config.MaxPass

	dflMaxPass    = 8
	dflMaxProgram = 256
)

func logger() *zap.Logger { return log.Named("engine") }

// Config is used to configure the engine.
type Config struct {
	// The number of render passes.
	// Valid pass indices are in [0, MaxPass).
	//
	// Default is 8.
	MaxPass int

	// The maximum number of programs that a Programs
	// cache holds.
	//
	// Default is 256.
	MaxProgram int
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		MaxPass:    dflMaxPass,
		MaxProgram: dflMaxProgram,
	}
}

// ConfigFrom returns the engine configuration that c
// describes.
func ConfigFrom(c *config.Config) Config {
	config := DefaultConfig()
	config.MaxPass = c.Render.MaxPass
	return config
}

var cfg Config

// Configure replaces the engine's configuration
// with config.
// Out of range values are clamped.
func Configure(config *Config) {
	cfg = *config
	cfg.MaxPass = min(max(cfg.MaxPass, 1), MaxPass)
	cfg.MaxProgram = max(cfg.MaxProgram, 1)
	logger().Debug("configured", zap.Int("maxPass", cfg.MaxPass), zap.Int("maxProgram", cfg.MaxProgram))
}

func init() {
	config := DefaultConfig()
	Configure(&config)
}
