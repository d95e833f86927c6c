package model

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseUnsupportedFormat(t *testing.T) {
	_, err := Parse("model.fbx")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported")
}

func TestParseMissingFile(t *testing.T) {
	_, err := Parse("/nonexistent/model.glb")
	assert.Error(t, err)
	_, err = Parse("/nonexistent/model.obj")
	assert.Error(t, err)
}

func TestParseGLTFWithoutMeshes(t *testing.T) {
	// A structurally valid glTF document with no drawable content.
	path := filepath.Join(t.TempDir(), "empty.gltf")
	require.NoError(t, os.WriteFile(path, []byte(`{"asset":{"version":"2.0"}}`), 0644))

	_, err := Parse(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNoMeshes)
}

const quadOBJ = `# unit quad in the XZ plane
v 0 0 0
v 2 0 0
v 2 0 4
v 0 0 4
f 1 2 3 4
`

func TestParseOBJQuad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quad.obj")
	require.NoError(t, os.WriteFile(path, []byte(quadOBJ), 0644))

	sc, err := Parse(path)
	require.NoError(t, err)
	require.Len(t, sc.Meshes, 1)

	m := sc.Meshes[0]
	// Four-point face fan-triangulates into two triangles of soup vertices.
	assert.Equal(t, 6, m.VertexCount())
	assert.Len(t, m.Indices, 6)
	assert.Len(t, m.Normals, len(m.Positions))
	assert.Len(t, m.Texcoords, m.VertexCount()*2)

	// Longest dimension is 4 (Z), so the normalized scale is 1/2 and the
	// center sits at the box midpoint.
	assert.InDelta(t, 0.5, float64(sc.Scale), 1e-6)
	assert.InDelta(t, 1.0, float64(sc.Center[0]), 1e-6)
	assert.InDelta(t, 0.0, float64(sc.Center[1]), 1e-6)
	assert.InDelta(t, 2.0, float64(sc.Center[2]), 1e-6)
}

func TestParseOBJEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.obj")
	require.NoError(t, os.WriteFile(path, []byte("# nothing here\n"), 0644))

	_, err := Parse(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNoMeshes)
}

func TestNormalizeDegenerate(t *testing.T) {
	sc := &Scene{Meshes: []Mesh{{
		Positions: []float32{1, 1, 1, 1, 1, 1, 1, 1, 1},
		Indices:   []uint32{0, 1, 2},
	}}}
	sc.normalize()
	// Zero extent: scale must stay finite.
	assert.Equal(t, float32(1), sc.Scale)
	assert.Equal(t, [3]float32{1, 1, 1}, sc.Center)
}

func TestComputeNormals(t *testing.T) {
	// Counter-clockwise triangle in the XY plane faces +Z.
	positions := []float32{
		0, 0, 0,
		1, 0, 0,
		0, 1, 0,
	}
	normals := computeNormals(positions, []uint32{0, 1, 2})
	require.Len(t, normals, 9)
	for i := 0; i < 3; i++ {
		assert.InDelta(t, 0.0, float64(normals[i*3]), 1e-6)
		assert.InDelta(t, 0.0, float64(normals[i*3+1]), 1e-6)
		assert.InDelta(t, 1.0, float64(normals[i*3+2]), 1e-6)
	}
}
