// Package model parses externally supplied 3D models into backend-neutral
// mesh data and normalizes them to a fixed reference size. Parsing is pure
// Go (no GPU), so malformed input is caught before anything touches the
// graphics backend.
package model

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/chewxy/math32"
)

// ReferenceSize is the target length of a normalized model's longest
// bounding-box dimension, in world units.
const ReferenceSize = float32(2.0)

// ErrNoMeshes is returned when a file parses but contains no drawable
// triangle data.
var ErrNoMeshes = errors.New("model contains no drawable meshes")

// Mesh is one drawable leaf: flat attribute slices plus triangle indices.
type Mesh struct {
	Positions []float32 // xyz per vertex
	Normals   []float32 // xyz per vertex
	Texcoords []float32 // uv per vertex
	Indices   []uint32
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int { return len(m.Positions) / 3 }

// Scene is a parsed, normalized model: one or more mesh leaves plus the
// transform that maps it to the canonical preview volume (longest dimension
// ReferenceSize units, centered at the origin).
type Scene struct {
	Meshes []Mesh

	// Bounding box of the raw vertex data.
	Min, Max [3]float32

	// Scale and Center define the normalization: world = Scale*(p - Center).
	Scale  float32
	Center [3]float32
}

// Parse reads the model file at path, dispatching on extension. Supported
// formats: .glb, .gltf, .obj. The returned scene is already normalized.
func Parse(path string) (*Scene, error) {
	var (
		sc  *Scene
		err error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".glb", ".gltf":
		sc, err = parseGLTF(path)
	case ".obj":
		sc, err = parseOBJ(path)
	default:
		return nil, fmt.Errorf("unsupported model format %q", filepath.Ext(path))
	}
	if err != nil {
		return nil, err
	}
	if len(sc.Meshes) == 0 {
		return nil, ErrNoMeshes
	}
	sc.normalize()
	return sc, nil
}

// normalize computes the bounding box and the uniform scale/recenter that
// map the longest dimension to ReferenceSize with the center at the origin.
func (s *Scene) normalize() {
	s.Min = [3]float32{math32.Inf(1), math32.Inf(1), math32.Inf(1)}
	s.Max = [3]float32{math32.Inf(-1), math32.Inf(-1), math32.Inf(-1)}
	for _, m := range s.Meshes {
		for i := 0; i+2 < len(m.Positions); i += 3 {
			for a := 0; a < 3; a++ {
				v := m.Positions[i+a]
				s.Min[a] = math32.Min(s.Min[a], v)
				s.Max[a] = math32.Max(s.Max[a], v)
			}
		}
	}
	longest := float32(0)
	for a := 0; a < 3; a++ {
		s.Center[a] = (s.Min[a] + s.Max[a]) / 2
		longest = math32.Max(longest, s.Max[a]-s.Min[a])
	}
	if longest > 0 {
		s.Scale = ReferenceSize / longest
	} else {
		s.Scale = 1
	}
}

// computeNormals fills in per-vertex normals by accumulating area-weighted
// face normals, for meshes whose source file carries none.
func computeNormals(positions []float32, indices []uint32) []float32 {
	normals := make([]float32, len(positions))
	for i := 0; i+2 < len(indices); i += 3 {
		ia, ib, ic := indices[i]*3, indices[i+1]*3, indices[i+2]*3
		ax, ay, az := positions[ia], positions[ia+1], positions[ia+2]
		bx, by, bz := positions[ib], positions[ib+1], positions[ib+2]
		cx, cy, cz := positions[ic], positions[ic+1], positions[ic+2]
		ux, uy, uz := bx-ax, by-ay, bz-az
		vx, vy, vz := cx-ax, cy-ay, cz-az
		nx := uy*vz - uz*vy
		ny := uz*vx - ux*vz
		nz := ux*vy - uy*vx
		for _, idx := range []uint32{ia, ib, ic} {
			normals[idx] += nx
			normals[idx+1] += ny
			normals[idx+2] += nz
		}
	}
	for i := 0; i+2 < len(normals); i += 3 {
		l := math32.Sqrt(normals[i]*normals[i] + normals[i+1]*normals[i+1] + normals[i+2]*normals[i+2])
		if l > 0 {
			normals[i] /= l
			normals[i+1] /= l
			normals[i+2] /= l
		}
	}
	return normals
}
