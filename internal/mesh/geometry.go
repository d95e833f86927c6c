package mesh

import (
	"sort"

	"github.com/chewxy/math32"
)

// Geometry is drawable triangle data in a backend-neutral form: flat float32
// attribute slices plus a triangle index list, ready for GPU upload.
type Geometry struct {
	Positions []float32 // xyz per vertex
	Normals   []float32 // xyz per vertex
	Texcoords []float32 // uv per vertex
	Indices   []uint16
}

// VertexCount returns the number of vertices.
func (g *Geometry) VertexCount() int { return len(g.Positions) / 3 }

// TriangleCount returns the number of triangles.
func (g *Geometry) TriangleCount() int { return len(g.Indices) / 3 }

// Generate produces geometry for the kinds that have no backend generator:
// the four flat-shaded polyhedra and the ring. Other kinds return nil.
func Generate(k Kind) *Geometry {
	switch k {
	case Tetrahedron:
		return polyhedron(tetraVerts(), tetraFaces())
	case Octahedron:
		return polyhedron(octaVerts(), octaFaces())
	case Icosahedron:
		return polyhedron(icosaVerts(), icosaFaces())
	case Dodecahedron:
		return dodecahedron()
	case Ring:
		return ring()
	}
	return nil
}

type vec3 [3]float32

func (a vec3) sub(b vec3) vec3      { return vec3{a[0] - b[0], a[1] - b[1], a[2] - b[2]} }
func (a vec3) add(b vec3) vec3      { return vec3{a[0] + b[0], a[1] + b[1], a[2] + b[2]} }
func (a vec3) scale(s float32) vec3 { return vec3{a[0] * s, a[1] * s, a[2] * s} }
func (a vec3) dot(b vec3) float32   { return a[0]*b[0] + a[1]*b[1] + a[2]*b[2] }

func (a vec3) cross(b vec3) vec3 {
	return vec3{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
}

func (a vec3) normalized() vec3 {
	l := math32.Sqrt(a.dot(a))
	if l == 0 {
		return a
	}
	return a.scale(1 / l)
}

// polyhedron builds flat-shaded triangle-soup geometry from unit-sphere
// vertices and triangle faces, scaled to PolyhedronRadius. Vertices are
// duplicated per face so each face keeps its own normal. Winding is fixed up
// so every face normal points away from the origin.
func polyhedron(verts []vec3, faces [][3]int) *Geometry {
	g := &Geometry{}
	for _, f := range faces {
		a := verts[f[0]].normalized().scale(PolyhedronRadius)
		b := verts[f[1]].normalized().scale(PolyhedronRadius)
		c := verts[f[2]].normalized().scale(PolyhedronRadius)
		n := b.sub(a).cross(c.sub(a)).normalized()
		centroid := a.add(b).add(c).scale(1.0 / 3.0)
		if n.dot(centroid) < 0 {
			b, c = c, b
			n = n.scale(-1)
		}
		for _, p := range []vec3{a, b, c} {
			g.Indices = append(g.Indices, uint16(len(g.Positions)/3))
			g.Positions = append(g.Positions, p[0], p[1], p[2])
			g.Normals = append(g.Normals, n[0], n[1], n[2])
			g.Texcoords = append(g.Texcoords, sphericalUV(p.normalized())...)
		}
	}
	return g
}

// sphericalUV maps a unit direction to equirectangular texture coordinates.
func sphericalUV(d vec3) []float32 {
	u := math32.Atan2(d[2], d[0])/(2*math32.Pi) + 0.5
	v := 0.5 - math32.Asin(clamp1(d[1]))/math32.Pi
	return []float32{u, v}
}

func clamp1(v float32) float32 {
	if v > 1 {
		return 1
	}
	if v < -1 {
		return -1
	}
	return v
}

func tetraVerts() []vec3 {
	return []vec3{{1, 1, 1}, {1, -1, -1}, {-1, 1, -1}, {-1, -1, 1}}
}

func tetraFaces() [][3]int {
	return [][3]int{{0, 1, 2}, {0, 3, 1}, {0, 2, 3}, {1, 3, 2}}
}

func octaVerts() []vec3 {
	return []vec3{
		{1, 0, 0}, {-1, 0, 0},
		{0, 1, 0}, {0, -1, 0},
		{0, 0, 1}, {0, 0, -1},
	}
}

func octaFaces() [][3]int {
	return [][3]int{
		{0, 2, 4}, {2, 1, 4}, {1, 3, 4}, {3, 0, 4},
		{2, 0, 5}, {1, 2, 5}, {3, 1, 5}, {0, 3, 5},
	}
}

func icosaVerts() []vec3 {
	t := (1 + math32.Sqrt(5)) / 2
	return []vec3{
		{-1, t, 0}, {1, t, 0}, {-1, -t, 0}, {1, -t, 0},
		{0, -1, t}, {0, 1, t}, {0, -1, -t}, {0, 1, -t},
		{t, 0, -1}, {t, 0, 1}, {-t, 0, -1}, {-t, 0, 1},
	}
}

func icosaFaces() [][3]int {
	return [][3]int{
		{0, 11, 5}, {0, 5, 1}, {0, 1, 7}, {0, 7, 10}, {0, 10, 11},
		{1, 5, 9}, {5, 11, 4}, {11, 10, 2}, {10, 7, 6}, {7, 1, 8},
		{3, 9, 4}, {3, 4, 2}, {3, 2, 6}, {3, 6, 8}, {3, 8, 9},
		{4, 9, 5}, {2, 4, 11}, {6, 2, 10}, {8, 6, 7}, {9, 8, 1},
	}
}

// dodecahedron is built as the dual of the icosahedron: one vertex per icosa
// face (its normalized centroid), one pentagonal face per icosa vertex,
// triangulated as a fan. This keeps a single vertex/face table out of the
// source and reuses the icosahedron data.
func dodecahedron() *Geometry {
	iv := icosaVerts()
	for i := range iv {
		iv[i] = iv[i].normalized()
	}
	faces := icosaFaces()
	centroids := make([]vec3, len(faces))
	for i, f := range faces {
		c := iv[f[0]].add(iv[f[1]]).add(iv[f[2]]).scale(1.0 / 3.0)
		centroids[i] = c.normalized()
	}

	g := &Geometry{}
	for vi, axis := range iv {
		// Centroids of the five faces around this vertex form one pentagon.
		var ring []vec3
		for fi, f := range faces {
			if f[0] == vi || f[1] == vi || f[2] == vi {
				ring = append(ring, centroids[fi])
			}
		}
		// Order the pentagon corners by angle around the vertex axis.
		ref := ring[0].sub(axis.scale(ring[0].dot(axis))).normalized()
		ortho := axis.cross(ref)
		sort.Slice(ring, func(i, j int) bool {
			return pentAngle(ring[i], axis, ref, ortho) < pentAngle(ring[j], axis, ref, ortho)
		})
		// Fan-triangulate; polyhedron() fixes winding per triangle.
		var tris [][3]int
		for i := 1; i+1 < len(ring); i++ {
			tris = append(tris, [3]int{0, i, i + 1})
		}
		part := polyhedron(ring, tris)
		offset := uint16(len(g.Positions) / 3)
		for _, idx := range part.Indices {
			g.Indices = append(g.Indices, idx+offset)
		}
		g.Positions = append(g.Positions, part.Positions...)
		g.Normals = append(g.Normals, part.Normals...)
		g.Texcoords = append(g.Texcoords, part.Texcoords...)
	}
	return g
}

func pentAngle(p, axis, ref, ortho vec3) float32 {
	flat := p.sub(axis.scale(p.dot(axis)))
	return math32.Atan2(flat.dot(ortho), flat.dot(ref))
}

// ring builds a flat annulus in the XY plane facing +Z, with RingSegments
// radial divisions between RingInner and RingOuter.
func ring() *Geometry {
	g := &Geometry{}
	for i := 0; i <= RingSegments; i++ {
		theta := 2 * math32.Pi * float32(i) / float32(RingSegments)
		cos, sin := math32.Cos(theta), math32.Sin(theta)
		g.Positions = append(g.Positions,
			RingInner*cos, RingInner*sin, 0,
			RingOuter*cos, RingOuter*sin, 0,
		)
		g.Normals = append(g.Normals, 0, 0, 1, 0, 0, 1)
		u := float32(i) / float32(RingSegments)
		g.Texcoords = append(g.Texcoords, u, 0, u, 1)
	}
	for i := 0; i < RingSegments; i++ {
		inner := uint16(2 * i)
		outer := inner + 1
		nextInner := inner + 2
		nextOuter := inner + 3
		g.Indices = append(g.Indices,
			inner, outer, nextInner,
			outer, nextOuter, nextInner,
		)
	}
	return g
}
