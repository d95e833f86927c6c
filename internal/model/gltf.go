package model

import (
	"fmt"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
)

// parseGLTF reads a .glb or .gltf file, flattening every mesh primitive into
// one Mesh leaf. Primitives without a POSITION attribute are skipped.
func parseGLTF(path string) (*Scene, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open gltf: %w", err)
	}
	sc := &Scene{}
	for _, gm := range doc.Meshes {
		for _, prim := range gm.Primitives {
			m, err := gltfPrimitive(doc, prim)
			if err != nil {
				return nil, fmt.Errorf("gltf primitive: %w", err)
			}
			if m != nil {
				sc.Meshes = append(sc.Meshes, *m)
			}
		}
	}
	return sc, nil
}

func gltfPrimitive(doc *gltf.Document, prim *gltf.Primitive) (*Mesh, error) {
	posIdx, ok := prim.Attributes[gltf.POSITION]
	if !ok {
		return nil, nil
	}
	positions, err := modeler.ReadPosition(doc, doc.Accessors[posIdx], nil)
	if err != nil {
		return nil, fmt.Errorf("positions: %w", err)
	}
	if len(positions) == 0 {
		return nil, nil
	}

	m := &Mesh{Positions: make([]float32, 0, len(positions)*3)}
	for _, p := range positions {
		m.Positions = append(m.Positions, p[0], p[1], p[2])
	}

	if prim.Indices != nil {
		indices, err := modeler.ReadIndices(doc, doc.Accessors[*prim.Indices], nil)
		if err != nil {
			return nil, fmt.Errorf("indices: %w", err)
		}
		m.Indices = indices
	} else {
		m.Indices = make([]uint32, len(positions))
		for i := range m.Indices {
			m.Indices[i] = uint32(i)
		}
	}

	if normIdx, ok := prim.Attributes[gltf.NORMAL]; ok {
		normals, err := modeler.ReadNormal(doc, doc.Accessors[normIdx], nil)
		if err != nil {
			return nil, fmt.Errorf("normals: %w", err)
		}
		m.Normals = make([]float32, 0, len(normals)*3)
		for _, n := range normals {
			m.Normals = append(m.Normals, n[0], n[1], n[2])
		}
	} else {
		m.Normals = computeNormals(m.Positions, m.Indices)
	}

	if texIdx, ok := prim.Attributes[gltf.TEXCOORD_0]; ok {
		texcoords, err := modeler.ReadTextureCoord(doc, doc.Accessors[texIdx], nil)
		if err != nil {
			return nil, fmt.Errorf("texcoords: %w", err)
		}
		m.Texcoords = make([]float32, 0, len(texcoords)*2)
		for _, t := range texcoords {
			m.Texcoords = append(m.Texcoords, t[0], t[1])
		}
	} else {
		m.Texcoords = make([]float32, len(positions)*2)
	}
	return m, nil
}
