package mesh

// Canonical primitive dimensions and tessellation. These are part of the
// visual contract: shading smoothness depends on them, so they are fixed
// literals rather than options.
const (
	// PlaneSize is the side length of the preview plane; PlaneRes its
	// subdivisions per side.
	PlaneSize = float32(2.0)
	PlaneRes  = 4

	// BoxSize is the side length of the preview box.
	BoxSize = float32(1.4)

	// Sphere: high-resolution tessellation so per-fragment effects read
	// smoothly on the silhouette.
	SphereRadius = float32(1.0)
	SphereRings  = 64
	SphereSlices = 64

	CylinderRadius = float32(0.7)
	CylinderHeight = float32(1.6)
	CylinderSlices = 48

	ConeRadius = float32(0.8)
	ConeHeight = float32(1.6)
	ConeSlices = 48

	// Torus: Radius is the ring radius, Size the tube radius.
	TorusRadius   = float32(1.0)
	TorusSize     = float32(0.4)
	TorusSegments = 64
	TorusSides    = 32

	KnotRadius   = float32(1.0)
	KnotSize     = float32(0.35)
	KnotSegments = 128
	KnotSides    = 16

	// PolyhedronRadius is the circumradius of the four flat-shaded
	// polyhedra (tetra/octa/dodeca/icosahedron).
	PolyhedronRadius = float32(1.1)

	RingInner    = float32(0.5)
	RingOuter    = float32(1.0)
	RingSegments = 64
)

// Generated reports whether the kind's geometry is produced by Generate
// (polyhedra and ring) rather than by a backend mesh generator.
func (k Kind) Generated() bool {
	switch k {
	case Icosahedron, Octahedron, Dodecahedron, Tetrahedron, Ring:
		return true
	}
	return false
}
