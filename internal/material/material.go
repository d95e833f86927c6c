package material

import (
	"shader-preview/internal/program"
)

// Uniform names of the fixed contract every bound program may consume.
// Programs that omit one simply never see updates for it.
const (
	UniformElapsedTime        = "elapsedTime"
	UniformViewportResolution = "viewportResolution"
)

// ValueKind discriminates uniform value types.
type ValueKind int

const (
	KindFloat ValueKind = iota
	KindVec2
	KindVec3
	KindVec4
)

// Value is a typed uniform value. Data holds up to four components; Kind
// says how many are meaningful.
type Value struct {
	Kind ValueKind
	Data [4]float32
}

// Float returns a scalar uniform value.
func Float(v float32) Value { return Value{Kind: KindFloat, Data: [4]float32{v}} }

// Vec2 returns a two-component uniform value.
func Vec2(x, y float32) Value { return Value{Kind: KindVec2, Data: [4]float32{x, y}} }

// Vec3 returns a three-component uniform value.
func Vec3(x, y, z float32) Value { return Value{Kind: KindVec3, Data: [4]float32{x, y, z}} }

// Vec4 returns a four-component uniform value.
func Vec4(x, y, z, w float32) Value { return Value{Kind: KindVec4, Data: [4]float32{x, y, z, w}} }

// Program is a backend-compiled shader program. SetUniform is a no-op for
// names the program does not declare. Release frees the GPU object; the
// program must not be used afterwards.
type Program interface {
	SetUniform(name string, v Value)
	Release()
}

// Device compiles program source into a bound Program. Compile returns
// *program.CompileError when the backend rejects the text.
type Device interface {
	Compile(src program.Source) (Program, error)
}

// Material is a compiled program together with its current uniform values.
// Materials are immutable with respect to their source: any source change
// means a fresh Bind, never an in-place patch.
type Material struct {
	prog     Program
	source   program.Source
	uniforms map[string]Value
	fallback bool // true when the empty-input fallback was substituted
}

// Bind compiles src on dev and returns a Material holding it, with initial
// uniform values applied. If src is trivially empty (or fails the pre-flight
// scan) the built-in flat-color fallback program is compiled instead, so
// trivial input never yields a CompileError or a blank surface.
func Bind(dev Device, src program.Source, initial map[string]Value) (*Material, error) {
	compileSrc := src
	fallback := false
	if src.IsTrivial() {
		compileSrc = program.EmptyFallback()
		fallback = true
	} else if compileSrc.VertexText == "" {
		compileSrc.VertexText = program.DefaultVertex
	}
	prog, err := dev.Compile(compileSrc)
	if err != nil {
		return nil, err
	}
	m := &Material{
		prog:     prog,
		source:   src,
		uniforms: make(map[string]Value, len(initial)),
		fallback: fallback,
	}
	for name, v := range initial {
		m.SetUniform(name, v)
	}
	return m, nil
}

// SetUniform records v and pushes it to the bound program. Unknown uniform
// names are accepted and dropped by the program.
func (m *Material) SetUniform(name string, v Value) {
	m.uniforms[name] = v
	m.prog.SetUniform(name, v)
}

// Uniform returns the last value set for name.
func (m *Material) Uniform(name string) (Value, bool) {
	v, ok := m.uniforms[name]
	return v, ok
}

// Source returns the author source this material was bound from (the author
// text, not the substituted fallback).
func (m *Material) Source() program.Source { return m.source }

// IsFallback reports whether the empty-input fallback program was substituted
// for trivial source.
func (m *Material) IsFallback() bool { return m.fallback }

// Program returns the bound backend program, for drawing.
func (m *Material) Program() Program { return m.prog }

// Release frees the backend program. The material must not be used after.
func (m *Material) Release() {
	if m.prog != nil {
		m.prog.Release()
		m.prog = nil
	}
}
