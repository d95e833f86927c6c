package graphics

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"shader-preview/internal/session"
)

const (
	gridExtent     = 8
	gridMajorStep  = 4
	gridMinorAlpha = 40
	gridMajorAlpha = 100
)

// Renderer draws one session: an orbital camera around the previewed shape,
// the editor grid, and the shape itself with the session's live material.
// Based on the layout of raylib's free-camera examples.
type Renderer struct {
	Camera      rl.Camera3D
	GridVisible bool
	meshes      *MeshCache
	mtl         rl.Material
	mtlLoaded   bool
}

// NewRenderer returns a renderer with a perspective camera orbiting the
// origin. The default raylib material is created lazily, after the window
// exists.
func NewRenderer() *Renderer {
	r := &Renderer{meshes: NewMeshCache(), GridVisible: true}
	r.Camera.Position = rl.NewVector3(3, 2, 3)
	r.Camera.Target = rl.NewVector3(0, 0, 0)
	r.Camera.Up = rl.NewVector3(0, 1, 0)
	r.Camera.Fovy = 45
	r.Camera.Projection = rl.CameraPerspective
	return r
}

// Update runs once per frame before drawing: orbital camera motion, then
// viewport and view-position pushes into the session's uniforms.
func (r *Renderer) Update(s *session.Session) {
	rl.UpdateCamera(&r.Camera, rl.CameraOrbital)
	s.SetViewport(float32(rl.GetScreenWidth()), float32(rl.GetScreenHeight()))
	p := r.Camera.Position
	s.SetViewPosition(p.X, p.Y, p.Z)
}

// Draw renders the 3D pass for s. Any panic out of the draw calls is a
// render fault: it is reported to the session's fault boundary (which swaps
// in the fault visual) instead of terminating the preview.
func (r *Renderer) Draw(s *session.Session) {
	defer func() {
		if rec := recover(); rec != nil {
			rl.EndMode3D()
			s.ReportRenderFault(fmt.Errorf("%v", rec))
		}
	}()

	rl.BeginMode3D(r.Camera)
	if r.GridVisible {
		drawGrid()
	}
	r.drawShape(s)
	rl.EndMode3D()
}

func (r *Renderer) drawShape(s *session.Session) {
	mat := s.Material()
	if mat == nil {
		return
	}
	sp, ok := mat.Program().(*shaderProgram)
	if !ok {
		return
	}
	if !r.mtlLoaded {
		r.mtl = rl.LoadMaterialDefault()
		r.mtlLoaded = true
	}
	r.mtl.Shader = sp.shader

	d := s.Descriptor()
	if !d.IsCustom() {
		m := r.meshes.Primitive(d.Kind)
		off := PrimitiveOffset(d.Kind)
		transform := rl.MatrixTranslate(off[0], off[1], off[2])
		rl.DrawMesh(m, r.mtl, transform)
		return
	}

	sc := s.Scene()
	if sc == nil {
		// Load pending or failed: placeholder instead of stale geometry.
		drawPlaceholder(s.LoadErr() != nil)
		return
	}
	// Normalization: recenter first, then scale the longest dimension to
	// the reference size. Every mesh leaf shares the one live material.
	recenter := rl.MatrixTranslate(-sc.Center[0], -sc.Center[1], -sc.Center[2])
	scale := rl.MatrixScale(sc.Scale, sc.Scale, sc.Scale)
	transform := rl.MatrixMultiply(recenter, scale)
	for _, m := range r.meshes.Scene(sc) {
		rl.DrawMesh(m, r.mtl, transform)
	}
}

// drawPlaceholder marks a pending (blue) or failed (orange) model load with
// a wireframe cube of the reference size.
func drawPlaceholder(failed bool) {
	color := rl.SkyBlue
	if failed {
		color = rl.Orange
	}
	rl.DrawCubeWires(rl.NewVector3(0, 0, 0), 2, 2, 2, color)
}

// drawGrid draws a ground grid on the XZ plane with major/minor lines,
// below the previewed shape.
func drawGrid() {
	minor := rl.NewColor(128, 128, 128, gridMinorAlpha)
	major := rl.NewColor(160, 160, 160, gridMajorAlpha)

	const y = float32(-1.5)
	var start, end rl.Vector3
	for x := -gridExtent; x <= gridExtent; x++ {
		c := minor
		if x%gridMajorStep == 0 {
			c = major
		}
		start.X, start.Y, start.Z = float32(x), y, float32(-gridExtent)
		end.X, end.Y, end.Z = float32(x), y, float32(gridExtent)
		rl.DrawLine3D(start, end, c)
	}
	for z := -gridExtent; z <= gridExtent; z++ {
		c := minor
		if z%gridMajorStep == 0 {
			c = major
		}
		start.X, start.Y, start.Z = float32(-gridExtent), y, float32(z)
		end.X, end.Y, end.Z = float32(gridExtent), y, float32(z)
		rl.DrawLine3D(start, end, c)
	}
}

// Release frees renderer-owned GPU resources (the mesh cache).
func (r *Renderer) Release() {
	r.meshes.Release()
}
