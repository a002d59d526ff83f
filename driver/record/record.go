// Copyright 2024 Gustavo C. Viegas. All rights reserved.

// Package record implements a headless driver that records
// uniform updates instead of sending them to a device.
//
// It is useful for tests and for inspecting what a frame
// would bind without a GPU.
package record

import (
	"fmt"
	"sync"

	"github.com/gviegas/neo3/driver"
)

// Name is the name of the driver.
const Name = "record"

// Driver implements driver.Driver.
type Driver struct {
	mu  sync.Mutex
	gpu *GPU
}

func init() { driver.Register(new(Driver)) }

// Open implements driver.Driver.
func (d *Driver) Open() (driver.GPU, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.gpu == nil {
		d.gpu = &GPU{drv: d}
	}
	return d.gpu, nil
}

// Name implements driver.Driver.
func (d *Driver) Name() string { return Name }

// Close implements driver.Driver.
func (d *Driver) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.gpu = nil
}

// GPU implements driver.GPU.
type GPU struct {
	drv *Driver
}

// Driver implements driver.GPU.
func (g *GPU) Driver() driver.Driver { return g.drv }

// NewProgram implements driver.GPU.
// Uniform locations are assigned in the order of uniforms,
// starting at 0.
func (g *GPU) NewProgram(name string, uniforms []string) (driver.Program, error) {
	return NewProgram(name, uniforms...), nil
}

// Call is a recorded uniform update.
type Call struct {
	// Uniform name, resolved from the location.
	Name string
	Loc  driver.Location
	// Name of the method, e.g. "Uniform3f".
	Method string
	// Values set by the call, converted to their
	// textual representation.
	Values []string
}

func (c Call) String() string { return fmt.Sprintf("%s(%s)%v", c.Method, c.Name, c.Values) }

// Program implements driver.Program.
type Program struct {
	name   string
	locs   map[string]driver.Location
	names  []string
	calls  []Call
	closed bool
}

// NewProgram creates a Program whose active uniforms are
// uniforms.
func NewProgram(name string, uniforms ...string) *Program {
	p := &Program{
		name: name,
		locs: make(map[string]driver.Location, len(uniforms)),
	}
	for _, u := range uniforms {
		if _, ok := p.locs[u]; ok {
			continue
		}
		p.locs[u] = driver.Location(len(p.names))
		p.names = append(p.names, u)
	}
	return p
}

// Name implements driver.Program.
func (p *Program) Name() string { return p.name }

// Destroy implements driver.Destroyer.
func (p *Program) Destroy() { p.closed = true }

// Destroyed returns whether Destroy was called.
func (p *Program) Destroyed() bool { return p.closed }

// UniformLocation implements driver.Program.
func (p *Program) UniformLocation(name string) (driver.Location, bool) {
	loc, ok := p.locs[name]
	return loc, ok
}

// Calls returns the recorded calls in order.
func (p *Program) Calls() []Call { return p.calls }

// Reset discards the recorded calls.
func (p *Program) Reset() { p.calls = p.calls[:0] }

func (p *Program) record(loc driver.Location, method string, values ...any) {
	name := "?"
	if int(loc) >= 0 && int(loc) < len(p.names) {
		name = p.names[loc]
	}
	s := make([]string, len(values))
	for i, v := range values {
		s[i] = fmt.Sprint(v)
	}
	p.calls = append(p.calls, Call{Name: name, Loc: loc, Method: method, Values: s})
}

func (p *Program) SetUniform1f(loc driver.Location, x float32) { p.record(loc, "Uniform1f", x) }
func (p *Program) SetUniform2f(loc driver.Location, x, y float32) {
	p.record(loc, "Uniform2f", x, y)
}
func (p *Program) SetUniform3f(loc driver.Location, x, y, z float32) {
	p.record(loc, "Uniform3f", x, y, z)
}
func (p *Program) SetUniform4f(loc driver.Location, x, y, z, w float32) {
	p.record(loc, "Uniform4f", x, y, z, w)
}

func (p *Program) SetUniform1i(loc driver.Location, x int32) { p.record(loc, "Uniform1i", x) }
func (p *Program) SetUniform2i(loc driver.Location, x, y int32) {
	p.record(loc, "Uniform2i", x, y)
}
func (p *Program) SetUniform3i(loc driver.Location, x, y, z int32) {
	p.record(loc, "Uniform3i", x, y, z)
}
func (p *Program) SetUniform4i(loc driver.Location, x, y, z, w int32) {
	p.record(loc, "Uniform4i", x, y, z, w)
}

func (p *Program) SetUniform1ui(loc driver.Location, x uint32) { p.record(loc, "Uniform1ui", x) }
func (p *Program) SetUniform2ui(loc driver.Location, x, y uint32) {
	p.record(loc, "Uniform2ui", x, y)
}
func (p *Program) SetUniform3ui(loc driver.Location, x, y, z uint32) {
	p.record(loc, "Uniform3ui", x, y, z)
}
func (p *Program) SetUniform4ui(loc driver.Location, x, y, z, w uint32) {
	p.record(loc, "Uniform4ui", x, y, z, w)
}

func (p *Program) SetUniformMatrix4fv(loc driver.Location, transpose bool, m *[16]float32) {
	values := make([]any, 0, 17)
	values = append(values, transpose)
	for _, x := range m {
		values = append(values, x)
	}
	p.record(loc, "UniformMatrix4fv", values...)
}
