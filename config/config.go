// Copyright 2023 Gustavo C. Viegas. All rights reserved.

// Package config defines the configuration of the engine
// and of its material library.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/gviegas/neo3/internal/log"
)

const prefix = "config: "

func newErr(reason string) error { return errors.New(prefix + reason) }

// ErrFormat means that a configuration file has an
// unsupported extension.
var ErrFormat = errors.New(prefix + "unsupported file format")

const (
	// The maximum number of render passes.
	MaxPass = 32

	dflParallel = 4
	dflMaxPass  = 8
)

// Config is used to configure the engine.
type Config struct {
	// Logging level: "debug", "info", "warn" or "error".
	//
	// Default is "info".
	LogLevel string `yaml:"log_level" toml:"log_level"`

	Library Library `yaml:"library" toml:"library"`
	Render  Render  `yaml:"render" toml:"render"`
}

// Library configures the material library.
type Library struct {
	// Directories loaded at startup.
	//
	// Default is none.
	Dirs []string `yaml:"dirs" toml:"dirs"`

	// Reload files when they change on disk.
	//
	// Default is false.
	Watch bool `yaml:"watch" toml:"watch"`

	// File extensions recognized as material documents.
	//
	// Default is .json, .yaml, .yml, .gltf and .glb.
	Extensions []string `yaml:"extensions" toml:"extensions"`

	// The maximum number of files decoded concurrently.
	//
	// Default is 4.
	Parallel int `yaml:"parallel" toml:"parallel"`
}

// Render configures draw submission.
type Render struct {
	// The number of render passes.
	// It must not exceed MaxPass.
	//
	// Default is 8.
	MaxPass int `yaml:"max_pass" toml:"max_pass"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		LogLevel: "info",
		Library: Library{
			Extensions: []string{".json", ".yaml", ".yml", ".gltf", ".glb"},
			Parallel:   dflParallel,
		},
		Render: Render{MaxPass: dflMaxPass},
	}
}

// Validate checks that c is usable.
func (c *Config) Validate() error {
	if _, ok := log.ParseLevel(c.LogLevel); !ok {
		return newErr("undefined log level " + c.LogLevel)
	}
	if c.Library.Parallel < 1 {
		return newErr("Library.Parallel less than 1")
	}
	if len(c.Library.Extensions) == 0 {
		return newErr("no Library.Extensions")
	}
	for _, ext := range c.Library.Extensions {
		if !strings.HasPrefix(ext, ".") {
			return newErr("Library.Extensions element " + ext + " does not start with a dot")
		}
	}
	if c.Render.MaxPass < 1 || c.Render.MaxPass > MaxPass {
		return newErr(fmt.Sprintf("Render.MaxPass outside [1, %d] interval", MaxPass))
	}
	return nil
}

// Level returns the parsed LogLevel.
func (c *Config) Level() log.Level {
	lvl, _ := log.ParseLevel(c.LogLevel)
	return lvl
}

// Load reads the configuration file at path.
// The format is chosen by extension: .yaml and .yml are
// YAML and .toml is TOML. Fields absent from the file
// keep their default values.
func Load(path string) (Config, error) {
	c := DefaultConfig()
	b, err := os.ReadFile(path)
	if err != nil {
		return c, err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = Decode(bytes.NewReader(b), FormatYAML, &c)
	case ".toml":
		err = Decode(bytes.NewReader(b), FormatTOML, &c)
	default:
		return c, fmt.Errorf("%w: %s", ErrFormat, path)
	}
	if err != nil {
		return c, fmt.Errorf("%s%s: %w", prefix, path, err)
	}
	return c, c.Validate()
}

// Format is a configuration file format.
type Format int

// Formats.
const (
	FormatYAML Format = iota
	FormatTOML
)

// Decode decodes from r into c.
// Fields absent from the input are not modified.
// Unknown fields are an error.
func Decode(r io.Reader, f Format, c *Config) error {
	switch f {
	case FormatYAML:
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		if err := dec.Decode(c); err != nil && err != io.EOF {
			return err
		}
		return nil
	case FormatTOML:
		dec := toml.NewDecoder(r)
		dec.DisallowUnknownFields()
		return dec.Decode(c)
	}
	return ErrFormat
}

// Encode writes c in the given format.
func Encode(w io.Writer, f Format, c *Config) error {
	switch f {
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(c); err != nil {
			return err
		}
		return enc.Close()
	case FormatTOML:
		return toml.NewEncoder(w).Encode(c)
	}
	return ErrFormat
}
