// Copyright 2024 Gustavo C. Viegas. All rights reserved.

package uniform

import (
	"go.uber.org/zap"

	"github.com/gviegas/neo3/driver"
)

// Bind implements Interface.
// Uniforms that are not active in p are skipped.
// Unsupported arities are logged and skipped.
func (v *Value[T]) Bind(p driver.Program, name string) {
	loc, ok := p.UniformLocation(name)
	if !ok {
		logger().Debug("uniform not active in program",
			zap.String("uniform", name), zap.String("program", p.Name()))
		return
	}
	var bound bool
	switch d := any(v.data).(type) {
	case []float32:
		bound = bindf(p, loc, d)
	case []int32:
		bound = bindi(p, loc, d)
	case []uint32:
		bound = bindui(p, loc, d)
	}
	if !bound {
		logger().Warn("unsupported uniform arity not bound",
			zap.String("uniform", name), zap.Stringer("elem", v.tag), zap.Int("arity", len(v.data)))
	}
}

func bindf(p driver.Program, loc driver.Location, d []float32) bool {
	switch len(d) {
	case 1:
		p.SetUniform1f(loc, d[0])
	case 2:
		p.SetUniform2f(loc, d[0], d[1])
	case 3:
		p.SetUniform3f(loc, d[0], d[1], d[2])
	case 4:
		p.SetUniform4f(loc, d[0], d[1], d[2], d[3])
	case 16:
		p.SetUniformMatrix4fv(loc, false, (*[16]float32)(d))
	default:
		return false
	}
	return true
}

func bindi(p driver.Program, loc driver.Location, d []int32) bool {
	switch len(d) {
	case 1:
		p.SetUniform1i(loc, d[0])
	case 2:
		p.SetUniform2i(loc, d[0], d[1])
	case 3:
		p.SetUniform3i(loc, d[0], d[1], d[2])
	case 4:
		p.SetUniform4i(loc, d[0], d[1], d[2], d[3])
	default:
		return false
	}
	return true
}

func bindui(p driver.Program, loc driver.Location, d []uint32) bool {
	switch len(d) {
	case 1:
		p.SetUniform1ui(loc, d[0])
	case 2:
		p.SetUniform2ui(loc, d[0], d[1])
	case 3:
		p.SetUniform3ui(loc, d[0], d[1], d[2])
	case 4:
		p.SetUniform4ui(loc, d[0], d[1], d[2], d[3])
	default:
		return false
	}
	return true
}
