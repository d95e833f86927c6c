package mesh

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindNamesRoundTrip(t *testing.T) {
	kinds := Kinds()
	assert.Len(t, kinds, 12)
	for _, k := range kinds {
		parsed, err := ParseKind(k.String())
		require.NoError(t, err)
		assert.Equal(t, k, parsed)
	}
	_, err := ParseKind("teapot")
	assert.Error(t, err)
}

func TestDescriptorKey(t *testing.T) {
	assert.NotEqual(t, Primitive(Box).Key(), Primitive(Sphere).Key())
	assert.NotEqual(t, Primitive(Box).Key(), CustomModel("a.glb").Key())
	assert.NotEqual(t, CustomModel("a.glb").Key(), CustomModel("b.glb").Key())
	assert.Equal(t, CustomModel("a.glb").Key(), CustomModel("a.glb").Key())
	assert.True(t, CustomModel("a.glb").IsCustom())
	assert.False(t, Primitive(Box).IsCustom())
}

func TestGenerateCoversGeneratedKindsOnly(t *testing.T) {
	for _, k := range Kinds() {
		g := Generate(k)
		if k.Generated() {
			assert.NotNil(t, g, k.String())
		} else {
			assert.Nil(t, g, k.String())
		}
	}
}

func TestGeneratedTriangleCounts(t *testing.T) {
	tests := []struct {
		kind      Kind
		triangles int
	}{
		{Tetrahedron, 4},
		{Octahedron, 8},
		{Icosahedron, 20},
		// 12 pentagons, fan-triangulated into 3 triangles each.
		{Dodecahedron, 36},
		{Ring, RingSegments * 2},
	}
	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			g := Generate(tt.kind)
			require.NotNil(t, g)
			assert.Equal(t, tt.triangles, g.TriangleCount())
			assert.Equal(t, len(g.Positions), len(g.Normals))
			assert.Equal(t, g.VertexCount()*2, len(g.Texcoords))
		})
	}
}

func TestGeneratedGeometryWellFormed(t *testing.T) {
	for _, k := range []Kind{Tetrahedron, Octahedron, Icosahedron, Dodecahedron, Ring} {
		t.Run(k.String(), func(t *testing.T) {
			g := Generate(k)
			require.NotNil(t, g)

			nVerts := g.VertexCount()
			for _, idx := range g.Indices {
				assert.Less(t, int(idx), nVerts)
			}

			maxR := float32(RingOuter)
			if k != Ring {
				maxR = PolyhedronRadius
			}
			for i := 0; i+2 < len(g.Positions); i += 3 {
				r := math32.Sqrt(g.Positions[i]*g.Positions[i] +
					g.Positions[i+1]*g.Positions[i+1] +
					g.Positions[i+2]*g.Positions[i+2])
				assert.LessOrEqual(t, r, maxR+1e-4)
			}
			for i := 0; i+2 < len(g.Normals); i += 3 {
				l := math32.Sqrt(g.Normals[i]*g.Normals[i] +
					g.Normals[i+1]*g.Normals[i+1] +
					g.Normals[i+2]*g.Normals[i+2])
				assert.InDelta(t, 1.0, float64(l), 1e-4)
			}
		})
	}
}

// Polyhedron faces must wind so their normals point away from the origin.
func TestPolyhedraNormalsFaceOutward(t *testing.T) {
	for _, k := range []Kind{Tetrahedron, Octahedron, Icosahedron, Dodecahedron} {
		t.Run(k.String(), func(t *testing.T) {
			g := Generate(k)
			require.NotNil(t, g)
			for i := 0; i+2 < len(g.Indices); i += 3 {
				a := int(g.Indices[i]) * 3
				var centroid, normal vec3
				for j := 0; j < 3; j++ {
					vi := int(g.Indices[i+j]) * 3
					centroid = centroid.add(vec3{g.Positions[vi], g.Positions[vi+1], g.Positions[vi+2]})
				}
				centroid = centroid.scale(1.0 / 3.0)
				normal = vec3{g.Normals[a], g.Normals[a+1], g.Normals[a+2]}
				assert.Positive(t, normal.dot(centroid))
			}
		})
	}
}
