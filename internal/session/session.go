// Package session owns one live preview: the current shader source, shape
// selection, lighting mode, and the single bound material, together with the
// per-frame clock and the fault isolation boundary. All mutation happens on
// the render thread; asynchronous load results are installed by polling
// their handles from Tick, never from another goroutine.
package session

import (
	"fmt"
	"time"

	"shader-preview/internal/assets"
	"shader-preview/internal/fault"
	"shader-preview/internal/lighting"
	"shader-preview/internal/logger"
	"shader-preview/internal/material"
	"shader-preview/internal/mesh"
	"shader-preview/internal/model"
	"shader-preview/internal/program"
)

// timeNow is the session clock source, swapped out in tests.
var timeNow = time.Now

// Session is one preview session. Exactly one Material is live at any time;
// it is rebuilt wholesale, never mutated in place, on any source identity
// change, mode switch, or fault transition.
type Session struct {
	dev    material.Device
	loader *assets.Loader
	log    *logger.Logger

	source     program.Source
	descriptor mesh.Descriptor
	lights     *lighting.Controller
	boundary   fault.Boundary

	mat *material.Material

	start    time.Time
	elapsed  float32
	viewport [2]float32
	viewPos  [3]float32

	pending *assets.Handle // in-flight custom model load
	scene   *model.Scene   // installed custom model
	loadErr error          // last failed load for the active descriptor
}

// New creates a session previewing on the box primitive with empty source,
// which binds the flat-color empty-input fallback. The elapsed clock starts
// at zero here and resets only when a whole new session is created.
func New(dev material.Device, loader *assets.Loader, log *logger.Logger) (*Session, error) {
	s := &Session{
		dev:        dev,
		loader:     loader,
		log:        log,
		descriptor: mesh.Primitive(mesh.Box),
		lights:     lighting.NewController(),
		start:      timeNow(),
		viewport:   [2]float32{1, 1},
	}
	s.boundary.Observe(s.resetKey())
	if err := s.rebind(); err != nil {
		return nil, err
	}
	return s, nil
}

// SetSource replaces the author program. Identity is content-based: any text
// change forces a full rebind, identical text is a no-op. While the boundary
// is Faulted the new text is stored but not bound; the next reset trigger
// re-attempts it.
func (s *Session) SetSource(src program.Source) {
	if src.Key() == s.source.Key() {
		return
	}
	s.source = src
	if s.boundary.Faulted() {
		return
	}
	if s.lights.Mode() == lighting.ReferenceLit {
		// The reference material stays bound; the new source takes effect
		// when the author switches back.
		return
	}
	if err := s.rebind(); err != nil {
		s.logf("rebind after source change: %v", err)
	}
}

// SetMesh replaces the shape selection. Changing the descriptor is a fault
// reset trigger: a Faulted boundary returns to Clean and the current source
// is re-attempted. Custom-model selections start (or attach to) a load; the
// previous geometry keeps rendering as a placeholder until it resolves.
func (s *Session) SetMesh(d mesh.Descriptor) {
	if d == s.descriptor {
		return
	}
	s.descriptor = d
	s.loadErr = nil
	wasFaulted := s.boundary.Faulted()
	s.boundary.Observe(s.resetKey())

	if d.IsCustom() {
		s.scene = nil
		s.pending = s.loader.Load(d.ModelURL)
	} else {
		s.scene = nil
		s.pending = nil
	}

	if wasFaulted && !s.boundary.Faulted() {
		if err := s.rebind(); err != nil {
			s.logf("rebind after mesh change: %v", err)
		}
	}
}

// SetLightingMode switches between shader-driven and reference-lit output.
// A real switch swaps the bound material without touching the descriptor or
// source, and is a fault reset trigger.
func (s *Session) SetLightingMode(m lighting.Mode) {
	if !s.lights.SetMode(m) {
		return
	}
	s.boundary.Observe(s.resetKey())
	if err := s.rebind(); err != nil {
		s.logf("rebind after lighting change: %v", err)
	}
}

// SetLightAngle adjusts the environment light rotation (degrees). In
// reference-lit mode the new direction is pushed into the live material; no
// rebind happens.
func (s *Session) SetLightAngle(deg float32) {
	s.lights.SetLightAngle(deg)
	s.pushReferenceUniforms()
}

// SetViewport records the output resolution and pushes it into the live
// material's viewportResolution uniform.
func (s *Session) SetViewport(w, h float32) {
	s.viewport = [2]float32{w, h}
	if s.mat != nil {
		s.mat.SetUniform(material.UniformViewportResolution, material.Vec2(w, h))
	}
}

// SetViewPosition records the camera position, consumed by the reference-lit
// material's specular term.
func (s *Session) SetViewPosition(x, y, z float32) {
	s.viewPos = [3]float32{x, y, z}
	s.pushReferenceUniforms()
}

// Tick runs once per rendered frame, driven by the host's refresh loop. It
// installs any finished model load that still matches the active selection,
// advances the monotonic session clock, and pushes elapsedTime into the
// bound material. Tick itself must never fail quietly: a panic here is an
// implementation defect and propagates instead of being masked as a
// user-shader fault.
func (s *Session) Tick() {
	s.pollLoad()

	e := float32(timeNow().Sub(s.start).Seconds())
	if e > s.elapsed {
		s.elapsed = e
	}
	if s.mat != nil {
		s.mat.SetUniform(material.UniformElapsedTime, material.Float(s.elapsed))
	}
}

// pollLoad checks the in-flight load without blocking. Completions for a
// descriptor that is no longer active are discarded silently, never
// installed. Load failures stay local: the renderer shows a placeholder and
// the boundary is not tripped.
func (s *Session) pollLoad() {
	h := s.pending
	if h == nil || !h.Ready() {
		return
	}
	s.pending = nil
	if !s.descriptor.IsCustom() || s.descriptor.ModelURL != h.URL() {
		return // stale: the author switched selection while this loaded
	}
	sc, err := h.Result()
	if err != nil {
		s.loadErr = err
		s.logf("%v", err)
		return
	}
	s.scene = sc
	s.logf("model installed: %s (%d meshes)", h.URL(), len(sc.Meshes))
}

// ReportRenderFault escalates a draw-call failure to the fault boundary and
// swaps in the fault fallback visual.
func (s *Session) ReportRenderFault(err error) {
	if _, ok := err.(*fault.RenderFault); !ok {
		err = &fault.RenderFault{Err: err}
	}
	s.logf("%v", err)
	s.boundary.Trip(err)
	if rerr := s.rebind(); rerr != nil {
		s.logf("fault fallback bind: %v", rerr)
	}
}

// rebind builds the material the session should be showing now and makes it
// the live one. Compile failures from author source trip the boundary and
// fall back to the fault visual; failures binding the built-in programs are
// returned (a backend defect, not a user error).
func (s *Session) rebind() error {
	var (
		src   program.Source
		extra map[string]material.Value
	)
	switch {
	case s.boundary.Faulted():
		src = program.FaultFallback()
	case s.lights.Mode() == lighting.ReferenceLit:
		src = lighting.ReferenceSource()
		extra = s.lights.ReferenceUniforms(s.viewPos)
	default:
		src = s.source
	}

	m, err := material.Bind(s.dev, src, s.baseUniforms())
	if err != nil {
		if s.boundary.Faulted() || s.lights.Mode() == lighting.ReferenceLit {
			return err // built-in program failed to bind
		}
		s.logf("%v", err)
		s.boundary.Trip(err)
		m, err = material.Bind(s.dev, program.FaultFallback(), s.baseUniforms())
		if err != nil {
			return err
		}
	}
	if old := s.mat; old != nil {
		old.Release()
	}
	s.mat = m
	for name, v := range extra {
		m.SetUniform(name, v)
	}
	return nil
}

// pushReferenceUniforms refreshes the light/camera uniforms on the live
// material when the reference-lit program is the one bound.
func (s *Session) pushReferenceUniforms() {
	if s.mat == nil || s.boundary.Faulted() || s.lights.Mode() != lighting.ReferenceLit {
		return
	}
	for name, v := range s.lights.ReferenceUniforms(s.viewPos) {
		s.mat.SetUniform(name, v)
	}
}

func (s *Session) baseUniforms() map[string]material.Value {
	return map[string]material.Value{
		material.UniformElapsedTime:        material.Float(s.elapsed),
		material.UniformViewportResolution: material.Vec2(s.viewport[0], s.viewport[1]),
	}
}

// resetKey is the composite under which faults are held: changing either the
// shape selection or the lighting mode clears a prior fault.
func (s *Session) resetKey() string {
	return s.descriptor.Key() + "|" + s.lights.Mode().String()
}

func (s *Session) logf(format string, args ...any) {
	if s.log != nil {
		s.log.Log(fmt.Sprintf(format, args...))
	}
}

// Material returns the live material.
func (s *Session) Material() *material.Material { return s.mat }

// Descriptor returns the active shape selection.
func (s *Session) Descriptor() mesh.Descriptor { return s.descriptor }

// Source returns the author program source.
func (s *Session) Source() program.Source { return s.source }

// Lighting returns the lighting mode controller.
func (s *Session) Lighting() *lighting.Controller { return s.lights }

// FaultState returns the boundary state.
func (s *Session) FaultState() fault.State { return s.boundary.State() }

// FaultReason returns the error that tripped the boundary, nil when Clean.
func (s *Session) FaultReason() error { return s.boundary.Reason() }

// Elapsed returns the session clock in seconds. It is monotonic
// non-decreasing and resets only on session creation.
func (s *Session) Elapsed() float32 { return s.elapsed }

// Scene returns the installed custom model, nil while none is installed.
func (s *Session) Scene() *model.Scene { return s.scene }

// LoadPending reports whether a custom-model load for the active selection
// is still in flight.
func (s *Session) LoadPending() bool { return s.pending != nil }

// LoadErr returns the failure of the active selection's load, if any.
func (s *Session) LoadErr() error { return s.loadErr }

// Close releases the session's GPU-side resources. The session must not be
// used afterwards.
func (s *Session) Close() {
	if s.mat != nil {
		s.mat.Release()
		s.mat = nil
	}
}
