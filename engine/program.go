// Copyright 2024 Gustavo C. Viegas. All rights reserved.

package engine

import (
	"errors"
	"strconv"

	"go.uber.org/zap"

	"github.com/gviegas/neo3/driver"
	"github.com/gviegas/neo3/material"
)

func newProgErr(s string) error { return errors.New("programs: " + s) }

// ProgramCache provides the driver.Program of a shader.
type ProgramCache interface {
	Program(s *material.Shader) (driver.Program, error)
}

// Reflector returns the names of the uniforms that are
// active in the program built from s.
type Reflector func(s *material.Shader) []string

// programID identifies a program in a Programs cache.
type programID int

type program struct {
	prog   driver.Program
	shader *material.Shader
}

// Programs is a ProgramCache that creates programs from
// a driver.GPU. A given shader is linked at most once.
type Programs struct {
	gpu     driver.GPU
	reflect Reflector
	ids     map[*material.Shader]programID
	progs   dataMap[programID, program]
}

// NewPrograms creates an empty Programs cache.
// reflect may be nil, in which case programs are created
// with no active uniforms.
func NewPrograms(gpu driver.GPU, reflect Reflector) *Programs {
	return &Programs{
		gpu:     gpu,
		reflect: reflect,
		ids:     make(map[*material.Shader]programID),
	}
}

// Program implements ProgramCache.
func (c *Programs) Program(s *material.Shader) (driver.Program, error) {
	if s == nil {
		return nil, newProgErr("nil shader in call to Program")
	}
	if id, ok := c.ids[s]; ok {
		return c.progs.get(id).prog, nil
	}
	if c.progs.len() >= cfg.MaxProgram {
		return nil, newProgErr("limit of " + strconv.Itoa(cfg.MaxProgram) + " programs reached")
	}
	var uniforms []string
	if c.reflect != nil {
		uniforms = c.reflect(s)
	}
	p, err := c.gpu.NewProgram(s.Name(), uniforms)
	if err != nil {
		return nil, err
	}
	c.ids[s] = c.progs.insert(program{p, s})
	logger().Debug("program created", zap.String("shader", s.Name()), zap.Strings("uniforms", uniforms))
	return p, nil
}

// Evict destroys the program of s.
// It returns false if there is no such program.
func (c *Programs) Evict(s *material.Shader) bool {
	id, ok := c.ids[s]
	if !ok {
		return false
	}
	delete(c.ids, s)
	c.progs.remove(id).prog.Destroy()
	return true
}

// Len returns the number of cached programs.
func (c *Programs) Len() int { return c.progs.len() }

// Destroy destroys every cached program.
func (c *Programs) Destroy() {
	for c.progs.len() > 0 {
		c.Evict(c.progs.entries()[0].data.shader)
	}
}
