// Copyright 2022 Gustavo C. Viegas. All rights reserved.

package driver

// GPU is the main interface to an underlying driver
// implementation.
// A GPU is obtained from a call to Driver.Open.
type GPU interface {
	// Driver returns the Driver that owns the GPU.
	Driver() Driver

	// NewProgram creates a new shader program.
	// uniforms lists the names of the active uniforms
	// of the program; names not in this list have no
	// location in the program.
	NewProgram(name string, uniforms []string) (Program, error)
}

// Destroyer is the interface that wraps the Destroy method.
// Types that implement this interface may allocate external
// memory that is not managed by GC, so Destroy must be
// called explicitly to ensure such memory is deallocated.
type Destroyer interface {
	Destroy()
}

// Location identifies a uniform in a Program.
type Location int32

// Program is the interface that defines a linked shader
// program whose uniforms can be set.
// Set calls apply to the program that is currently bound;
// callers must not interleave calls to different programs.
type Program interface {
	Destroyer

	// Name returns the name of the program.
	Name() string

	// UniformLocation returns the location of the named
	// uniform. It returns false if the uniform is not
	// active in the program (e.g., it was optimized out).
	UniformLocation(name string) (Location, bool)

	SetUniform1f(loc Location, x float32)
	SetUniform2f(loc Location, x, y float32)
	SetUniform3f(loc Location, x, y, z float32)
	SetUniform4f(loc Location, x, y, z, w float32)

	SetUniform1i(loc Location, x int32)
	SetUniform2i(loc Location, x, y int32)
	SetUniform3i(loc Location, x, y, z int32)
	SetUniform4i(loc Location, x, y, z, w int32)

	SetUniform1ui(loc Location, x uint32)
	SetUniform2ui(loc Location, x, y uint32)
	SetUniform3ui(loc Location, x, y, z uint32)
	SetUniform4ui(loc Location, x, y, z, w uint32)

	// SetUniformMatrix4fv sets a 4x4 matrix given in
	// column-major order, or row-major order if transpose
	// is true.
	SetUniformMatrix4fv(loc Location, transpose bool, m *[16]float32)
}
