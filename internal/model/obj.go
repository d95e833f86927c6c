package model

import (
	"fmt"
	"os"

	"github.com/sheenobu/go-obj/obj"
)

// parseOBJ reads a Wavefront .obj file into a single mesh leaf. Faces with
// more than three points are fan-triangulated. Vertices are emitted as a
// triangle soup so per-face normal/texture assignments stay intact.
func parseOBJ(path string) (*Scene, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open obj: %w", err)
	}
	defer f.Close()

	o, err := obj.NewReader(f).Read()
	if err != nil {
		return nil, fmt.Errorf("parse obj: %w", err)
	}
	if len(o.Faces) == 0 {
		return &Scene{}, nil
	}

	m := Mesh{}
	hasNormals := true
	emit := func(p obj.Point) {
		m.Indices = append(m.Indices, uint32(len(m.Positions)/3))
		m.Positions = append(m.Positions,
			float32(p.Vertex.X), float32(p.Vertex.Y), float32(p.Vertex.Z))
		if p.Normal != nil {
			m.Normals = append(m.Normals,
				float32(p.Normal.X), float32(p.Normal.Y), float32(p.Normal.Z))
		} else {
			hasNormals = false
			m.Normals = append(m.Normals, 0, 0, 0)
		}
		if p.Texture != nil {
			m.Texcoords = append(m.Texcoords, float32(p.Texture.U), float32(p.Texture.V))
		} else {
			m.Texcoords = append(m.Texcoords, 0, 0)
		}
	}
	for _, face := range o.Faces {
		pts := face.Points
		if len(pts) < 3 {
			continue
		}
		for i := 1; i+1 < len(pts); i++ {
			emit(*pts[0])
			emit(*pts[i])
			emit(*pts[i+1])
		}
	}
	if len(m.Positions) == 0 {
		return &Scene{}, nil
	}
	if !hasNormals {
		m.Normals = computeNormals(m.Positions, m.Indices)
	}
	return &Scene{Meshes: []Mesh{m}}, nil
}
