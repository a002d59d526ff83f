// Copyright 2024 Gustavo C. Viegas. All rights reserved.

// Matdump loads material documents and prints a summary
// of each material.
//
// Usage:
//
//	matdump [flags] path...
//
// Each path is either a material file or a directory of
// material files. The flags are:
//
//	-c, --config file
//		Configuration file (.yaml, .yml or .toml).
//	--to json|yaml
//		Print every material re-encoded in the given format.
//	--bind
//		Bind every material to a recording program for each
//		of its passes and print the resulting calls.
//	-w, --watch
//		Keep running, reload files when they change and print
//		the summary again.
//	-v, --verbose
//		Verbose logging.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"slices"
	"syscall"
	"text/tabwriter"

	"github.com/spf13/pflag"

	"github.com/gviegas/neo3/config"
	"github.com/gviegas/neo3/doc"
	"github.com/gviegas/neo3/driver/record"
	"github.com/gviegas/neo3/internal/log"
	"github.com/gviegas/neo3/library"
	"github.com/gviegas/neo3/material"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		if !errors.Is(err, pflag.ErrHelp) {
			fmt.Fprintln(os.Stderr, "matdump:", err)
		}
		os.Exit(1)
	}
}

type options struct {
	config  string
	to      string
	bind    bool
	watch   bool
	verbose bool
}

func parse(args []string) (*options, []string, error) {
	var o options
	fs := pflag.NewFlagSet("matdump", pflag.ContinueOnError)
	fs.StringVarP(&o.config, "config", "c", "", "configuration `file`")
	fs.StringVar(&o.to, "to", "", "re-encode materials as json or yaml")
	fs.BoolVar(&o.bind, "bind", false, "print the calls that binding each material makes")
	fs.BoolVarP(&o.watch, "watch", "w", false, "reload files when they change")
	fs.BoolVarP(&o.verbose, "verbose", "v", false, "verbose logging")
	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	switch o.to {
	case "", "json", "yaml":
	default:
		return nil, nil, fmt.Errorf("--to: unsupported format %q", o.to)
	}
	if fs.NArg() == 0 {
		return nil, nil, errors.New("no paths given")
	}
	return &o, fs.Args(), nil
}

func run(ctx context.Context, args []string, w io.Writer) error {
	o, paths, err := parse(args)
	if err != nil {
		return err
	}
	cfg := config.DefaultConfig()
	if o.config != "" {
		if cfg, err = config.Load(o.config); err != nil {
			return err
		}
	}
	if o.verbose {
		log.SetLevel(log.LevelDebug)
	} else {
		log.SetLevel(cfg.Level())
	}

	lib := library.New(cfg.Library)
	for _, path := range slices.Concat(cfg.Library.Dirs, paths) {
		if err := load(ctx, lib, path); err != nil {
			return err
		}
	}
	if err := dump(w, lib, o); err != nil {
		return err
	}

	if !o.watch && !cfg.Library.Watch {
		return nil
	}
	var dirs []string
	for _, path := range paths {
		if fi, err := os.Stat(path); err == nil && fi.IsDir() {
			dirs = append(dirs, path)
		}
	}
	x, err := lib.Watch(ctx, dirs...)
	if err != nil {
		return err
	}
	for {
		select {
		case <-x.Done():
			return nil
		case <-x.Pending():
			x.Apply()
			if err := dump(w, lib, o); err != nil {
				return err
			}
		}
	}
}

func load(ctx context.Context, lib *library.Library, path string) error {
	fi, err := os.Stat(path)
	if err != nil {
		return err
	}
	if fi.IsDir() {
		return lib.LoadDir(ctx, path)
	}
	return lib.LoadFile(path)
}

func dump(w io.Writer, lib *library.Library, o *options) error {
	tw := tabwriter.NewWriter(w, 0, 8, 1, ' ', 0)
	fmt.Fprintln(tw, "NAME\tID\tFLAGS\tPASSES\tOPAQUE")
	for _, name := range lib.Names() {
		m, err := lib.Get(name)
		if err != nil {
			return err
		}
		fmt.Fprintf(tw, "%s\t%d\t%v\t%d\t%t\n", name, m.ID(), m.TextureFlags(), m.NumPasses(), m.Opaque())
		for _, k := range m.UniformKeys() {
			kind, ok := m.Uniform(k).Kind()
			if !ok {
				fmt.Fprintf(tw, "  %s\t(unregistered)\n", k)
				continue
			}
			fmt.Fprintf(tw, "  %s\t%v\n", k, kind)
		}
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	for _, name := range lib.Names() {
		m, _ := lib.Get(name)
		if o.to != "" {
			fmt.Fprintf(w, "# %s\n", name)
			if err := library.Encode(w, "."+o.to, doc.Marshal(m)); err != nil {
				return err
			}
		}
		if o.bind {
			bind(w, m)
		}
	}
	return nil
}

// bind binds m to a recording program for each pass that
// has a shader, with every uniform of m active.
func bind(w io.Writer, m *material.Material) {
	for pass := range m.NumPasses() {
		s := m.ShaderForPass(pass)
		if s == nil {
			continue
		}
		p := record.NewProgram(s.Name(), m.UniformKeys()...)
		m.Bind(p)
		fmt.Fprintf(w, "%s pass %d (%s):\n", m.Name(), pass, s.Name())
		for _, c := range p.Calls() {
			fmt.Fprintf(w, "\t%v\n", c)
		}
		p.Destroy()
	}
}
