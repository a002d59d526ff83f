// Copyright 2024 Gustavo C. Viegas. All rights reserved.

// Package log provides the structured logger shared by the
// module's packages.
package log

import (
	"strings"
	"sync/atomic"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Level is a logging level.
type Level int8

// Logging levels.
const (
	LevelDebug Level = iota - 1
	LevelInfo
	LevelWarn
	LevelError
)

// ParseLevel parses a level name.
// Unknown names yield LevelInfo and false.
func ParseLevel(s string) (Level, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug, true
	case "info", "":
		return LevelInfo, true
	case "warn", "warning":
		return LevelWarn, true
	case "error":
		return LevelError, true
	}
	return LevelInfo, false
}

func (l Level) zap() zapcore.Level {
	switch l {
	case LevelDebug:
		return zap.DebugLevel
	case LevelWarn:
		return zap.WarnLevel
	case LevelError:
		return zap.ErrorLevel
	default:
		return zap.InfoLevel
	}
}

var (
	level  = zap.NewAtomicLevelAt(zap.InfoLevel)
	logger atomic.Pointer[zap.Logger]
)

// New creates a JSON logger writing to stderr.
// Its level is fixed at lvl; SetLevel does not affect it.
func New(lvl Level) *zap.Logger { return build(zap.NewAtomicLevelAt(lvl.zap())) }

func build(lvl zap.AtomicLevel) *zap.Logger {
	config := zap.Config{
		Level:            lvl,
		Development:      false,
		Encoding:         "json",
		EncoderConfig:    zap.NewProductionEncoderConfig(),
		OutputPaths:      []string{"stderr"},
		ErrorOutputPaths: []string{"stderr"},
		DisableCaller:    true,
	}
	l, err := config.Build()
	if err != nil {
		// The configuration is static.
		panic(err)
	}
	return l
}

// L returns the process logger.
func L() *zap.Logger {
	if l := logger.Load(); l != nil {
		return l
	}
	logger.CompareAndSwap(nil, build(level))
	return logger.Load()
}

// Named returns the process logger with the given name.
func Named(name string) *zap.Logger { return L().Named(name) }

// Replace replaces the process logger.
// It returns a function that restores the previous one.
func Replace(l *zap.Logger) (restore func()) {
	prev := logger.Swap(l)
	return func() { logger.Store(prev) }
}

// SetLevel changes the level of the default process
// logger. Loggers created by New or installed with
// Replace keep their own levels.
func SetLevel(lvl Level) { level.SetLevel(lvl.zap()) }
