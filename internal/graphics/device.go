package graphics

import (
	"strings"
	"sync"

	rl "github.com/gen2brain/raylib-go/raylib"

	"shader-preview/internal/material"
	"shader-preview/internal/program"
)

// traceCapture collects raylib warning/error log lines so shader compile
// diagnostics can be attached to CompileError. The raylib trace callback is
// global, so the capture buffer is too.
var traceCapture struct {
	mu    sync.Mutex
	armed bool
	lines []string
}

func installTraceCallback() {
	traceCapture.mu.Lock()
	armed := traceCapture.armed
	traceCapture.armed = true
	traceCapture.mu.Unlock()
	if armed {
		return
	}
	rl.SetTraceLogCallback(func(msgType int, text string) {
		if msgType < int(rl.LogWarning) {
			return
		}
		traceCapture.mu.Lock()
		traceCapture.lines = append(traceCapture.lines, text)
		traceCapture.mu.Unlock()
	})
}

// drainTrace returns and clears the captured lines.
func drainTrace() []string {
	traceCapture.mu.Lock()
	defer traceCapture.mu.Unlock()
	out := traceCapture.lines
	traceCapture.lines = nil
	return out
}

// compileFailed reports whether the captured raylib log lines indicate the
// backend rejected the shader. raylib falls back to its default shader on
// failure instead of returning an error, so the log is the only signal.
func compileFailed(lines []string) bool {
	for _, l := range lines {
		if strings.Contains(l, "Failed to compile") ||
			strings.Contains(l, "Failed to link") ||
			strings.Contains(l, "Compile error") ||
			strings.Contains(l, "Failed to load") {
			return true
		}
	}
	return false
}

// Device is the raylib-backed material.Device. Compile must run on the
// render thread, after the window exists.
type Device struct{}

// NewDevice returns the raylib device and arms diagnostic capture.
func NewDevice() *Device {
	installTraceCallback()
	return &Device{}
}

// Compile builds a GPU program from src. Backend rejection returns
// *program.CompileError carrying the raw raylib/GL diagnostics and a
// best-effort line number.
func (d *Device) Compile(src program.Source) (material.Program, error) {
	drainTrace()
	shader := rl.LoadShaderFromMemory(src.VertexText, src.FragmentText)
	diag := drainTrace()
	if shader.ID == 0 || compileFailed(diag) {
		if rl.IsShaderValid(shader) {
			rl.UnloadShader(shader)
		}
		return nil, program.NewCompileError(strings.Join(diag, "\n"))
	}
	return &shaderProgram{shader: shader, locs: make(map[string]int32)}, nil
}

// shaderProgram wraps a compiled rl.Shader. Uniform locations are resolved
// once and cached; a location of -1 (name not declared by the program)
// makes SetUniform a no-op, which is the contract for optional uniforms.
type shaderProgram struct {
	shader rl.Shader
	locs   map[string]int32
}

func (p *shaderProgram) SetUniform(name string, v material.Value) {
	loc, ok := p.locs[name]
	if !ok {
		loc = rl.GetShaderLocation(p.shader, name)
		p.locs[name] = loc
	}
	if loc < 0 {
		return
	}
	switch v.Kind {
	case material.KindFloat:
		rl.SetShaderValue(p.shader, loc, v.Data[:1], rl.ShaderUniformFloat)
	case material.KindVec2:
		rl.SetShaderValue(p.shader, loc, v.Data[:2], rl.ShaderUniformVec2)
	case material.KindVec3:
		rl.SetShaderValue(p.shader, loc, v.Data[:3], rl.ShaderUniformVec3)
	case material.KindVec4:
		rl.SetShaderValue(p.shader, loc, v.Data[:4], rl.ShaderUniformVec4)
	}
}

func (p *shaderProgram) Release() {
	rl.UnloadShader(p.shader)
}
