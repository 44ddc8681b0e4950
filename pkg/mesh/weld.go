package mesh

import "github.com/Faultbox/automdl/pkg/math"

// Weld merges vertices that share an exact position. The merged vertex gets
// the renormalized sum of the merged normals, which smooths the surface.
// Triangles are remapped and explicit edges are dropped so they are derived
// again from the welded triangles.
func (m *Mesh) Weld() {
	index := make(map[math.Vec3]int, len(m.Vertices))
	remap := make([]int, len(m.Vertices))
	var welded []Vertex

	for i, v := range m.Vertices {
		if j, ok := index[v.Position]; ok {
			remap[i] = j
			welded[j].Normal = welded[j].Normal.Add(v.Normal)
			continue
		}
		index[v.Position] = len(welded)
		remap[i] = len(welded)
		welded = append(welded, v)
	}
	for i := range welded {
		welded[i].Normal = welded[i].Normal.Normalize()
	}

	for i := range m.Triangles {
		t := &m.Triangles[i]
		for c, v := range t.Verts {
			if v >= 0 && v < len(remap) {
				t.Verts[c] = remap[v]
			}
		}
	}
	m.Vertices = welded
	m.Edges = nil
}

// SmoothNormals replaces every vertex normal with the normalized sum of the
// face normals of the triangles using it, and marks all triangles smooth.
// The mesh must be valid.
func (m *Mesh) SmoothNormals() {
	sums := make([]math.Vec3, len(m.Vertices))
	for i := range m.Triangles {
		t := &m.Triangles[i]
		n := m.FaceNormal(t)
		for _, v := range t.Verts {
			if v >= 0 && v < len(sums) {
				sums[v] = sums[v].Add(n)
			}
		}
		t.Smooth = true
	}
	for i := range m.Vertices {
		m.Vertices[i].Normal = sums[i].Normalize()
	}
}
