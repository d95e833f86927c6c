package graphics

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"shader-preview/internal/mesh"
	"shader-preview/internal/model"
)

// MeshCache maps primitive kinds and installed model scenes to uploaded
// raylib meshes. GPU meshes are created lazily on first use so allocation
// happens after the window/GL context exists.
type MeshCache struct {
	prims map[mesh.Kind]rl.Mesh
	// generated keeps the CPU-side geometry of uploaded custom meshes alive
	// for the lifetime of the GPU object.
	generated map[mesh.Kind]*mesh.Geometry
	scenes    map[*model.Scene][]rl.Mesh
}

// NewMeshCache returns an empty cache.
func NewMeshCache() *MeshCache {
	return &MeshCache{
		prims:     make(map[mesh.Kind]rl.Mesh),
		generated: make(map[mesh.Kind]*mesh.Geometry),
		scenes:    make(map[*model.Scene][]rl.Mesh),
	}
}

// Primitive returns the uploaded mesh for kind, creating it on first use.
// Kinds raylib has a generator for use it with the canonical parameters;
// the rest upload generated geometry.
func (c *MeshCache) Primitive(kind mesh.Kind) rl.Mesh {
	if m, ok := c.prims[kind]; ok {
		return m
	}
	var m rl.Mesh
	switch kind {
	case mesh.Plane:
		m = rl.GenMeshPlane(mesh.PlaneSize, mesh.PlaneSize, mesh.PlaneRes, mesh.PlaneRes)
	case mesh.Box:
		m = rl.GenMeshCube(mesh.BoxSize, mesh.BoxSize, mesh.BoxSize)
	case mesh.Sphere:
		m = rl.GenMeshSphere(mesh.SphereRadius, mesh.SphereRings, mesh.SphereSlices)
	case mesh.Torus:
		m = rl.GenMeshTorus(mesh.TorusRadius, mesh.TorusSize, mesh.TorusSegments, mesh.TorusSides)
	case mesh.Knot:
		m = rl.GenMeshKnot(mesh.KnotRadius, mesh.KnotSize, mesh.KnotSegments, mesh.KnotSides)
	case mesh.Cylinder:
		m = rl.GenMeshCylinder(mesh.CylinderRadius, mesh.CylinderHeight, mesh.CylinderSlices)
	case mesh.Cone:
		m = rl.GenMeshCone(mesh.ConeRadius, mesh.ConeHeight, mesh.ConeSlices)
	default:
		g := mesh.Generate(kind)
		c.generated[kind] = g
		m = uploadGeometry(g.Positions, g.Normals, g.Texcoords, g.Indices)
	}
	c.prims[kind] = m
	return m
}

// PrimitiveOffset returns the model-space offset that centers the primitive
// at the origin. Raylib's cylinder and cone have their base at Y=0.
func PrimitiveOffset(kind mesh.Kind) [3]float32 {
	switch kind {
	case mesh.Cylinder:
		return [3]float32{0, -mesh.CylinderHeight / 2, 0}
	case mesh.Cone:
		return [3]float32{0, -mesh.ConeHeight / 2, 0}
	}
	return [3]float32{}
}

// Scene returns the uploaded meshes for a parsed model scene, uploading
// every mesh leaf on first use.
func (c *MeshCache) Scene(sc *model.Scene) []rl.Mesh {
	if ms, ok := c.scenes[sc]; ok {
		return ms
	}
	ms := make([]rl.Mesh, 0, len(sc.Meshes))
	for i := range sc.Meshes {
		ms = append(ms, uploadModelMesh(&sc.Meshes[i]))
	}
	c.scenes[sc] = ms
	return ms
}

// uploadModelMesh converts a parsed mesh leaf for upload. Raylib indices are
// 16-bit; meshes that cannot be indexed that way are expanded into an
// unindexed triangle list.
func uploadModelMesh(m *model.Mesh) rl.Mesh {
	if m.VertexCount() <= 0x10000 {
		idx := make([]uint16, len(m.Indices))
		for i, v := range m.Indices {
			idx[i] = uint16(v)
		}
		return uploadGeometry(m.Positions, m.Normals, m.Texcoords, idx)
	}
	pos := make([]float32, 0, len(m.Indices)*3)
	nor := make([]float32, 0, len(m.Indices)*3)
	tex := make([]float32, 0, len(m.Indices)*2)
	for _, v := range m.Indices {
		pos = append(pos, m.Positions[v*3], m.Positions[v*3+1], m.Positions[v*3+2])
		nor = append(nor, m.Normals[v*3], m.Normals[v*3+1], m.Normals[v*3+2])
		tex = append(tex, m.Texcoords[v*2], m.Texcoords[v*2+1])
	}
	return uploadGeometry(pos, nor, tex, nil)
}

// uploadGeometry uploads flat attribute slices as a raylib mesh. The slices
// must stay reachable while the mesh lives; callers keep them cached.
func uploadGeometry(positions, normals, texcoords []float32, indices []uint16) rl.Mesh {
	m := rl.Mesh{
		VertexCount:   int32(len(positions) / 3),
		TriangleCount: int32(len(positions) / 9),
	}
	m.Vertices = &positions[0]
	if len(normals) > 0 {
		m.Normals = &normals[0]
	}
	if len(texcoords) > 0 {
		m.Texcoords = &texcoords[0]
	}
	if len(indices) > 0 {
		m.Indices = &indices[0]
		m.TriangleCount = int32(len(indices) / 3)
	}
	rl.UploadMesh(&m, false)
	return m
}

// Release unloads every GPU mesh. Call once, at shutdown, before the window
// closes.
func (c *MeshCache) Release() {
	for _, m := range c.prims {
		rl.UnloadMesh(&m)
	}
	for _, ms := range c.scenes {
		for i := range ms {
			rl.UnloadMesh(&ms[i])
		}
	}
	c.prims = make(map[mesh.Kind]rl.Mesh)
	c.generated = make(map[mesh.Kind]*mesh.Geometry)
	c.scenes = make(map[*model.Scene][]rl.Mesh)
}
