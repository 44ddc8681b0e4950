// Package mesh holds the triangulated geometry handed to the exporters:
// vertices with normals, triangles with material, smoothing and UV data,
// and the index-significant material slot list.
package mesh

import (
	"errors"
	"fmt"

	"github.com/Faultbox/automdl/pkg/math"
)

// DefaultMaterial is the label used when a triangle has no resolvable material.
const DefaultMaterial = "DefaultMaterial"

// Mesh errors.
var (
	ErrInvalidVertexIndex = errors.New("triangle references missing vertex")
	ErrNoTriangles        = errors.New("mesh has no triangles")
)

// Vertex is a mesh vertex with position and normal in the object's root frame.
type Vertex struct {
	Position math.Vec3
	Normal   math.Vec3
}

// Triangle references three vertices in counter-clockwise order.
type Triangle struct {
	Verts    [3]int       // Indices into Mesh.Vertices
	Material int          // Index into the material slot list
	Smooth   bool         // Smooth shading; flat triangles use the face normal
	UV       [3]math.Vec2 // Per-corner texture coordinates from the active UV channel
}

// Mesh is a triangulated mesh ready for export.
type Mesh struct {
	Vertices  []Vertex
	Triangles []Triangle

	// Edges is the explicit edge set. When nil, edges are derived
	// from triangle sides by EdgeList.
	Edges [][2]int

	// HasUV is false when the source has no UV channel; every UV
	// then reads as (0, 0).
	HasUV bool
}

// Validate checks that every triangle references existing vertices.
func (m *Mesh) Validate() error {
	n := len(m.Vertices)
	for i, tri := range m.Triangles {
		for _, v := range tri.Verts {
			if v < 0 || v >= n {
				return fmt.Errorf("%w: triangle %d uses vertex %d of %d", ErrInvalidVertexIndex, i, v, n)
			}
		}
	}
	return nil
}

// UV returns the texture coordinate of corner c of triangle t,
// or (0, 0) when the mesh has no UV channel.
func (m *Mesh) UV(t *Triangle, c int) math.Vec2 {
	if !m.HasUV {
		return math.Vec2{}
	}
	return t.UV[c]
}

// FaceNormal returns the unit normal of a triangle, zero if degenerate.
func (m *Mesh) FaceNormal(t *Triangle) math.Vec3 {
	return math.TriangleNormal(
		m.Vertices[t.Verts[0]].Position,
		m.Vertices[t.Verts[1]].Position,
		m.Vertices[t.Verts[2]].Position,
	)
}

// EdgeList returns the explicit edge set, or the deduplicated triangle
// sides when none was supplied. Pairs are ordered low, high.
func (m *Mesh) EdgeList() [][2]int {
	if m.Edges != nil {
		return m.Edges
	}

	seen := make(map[[2]int]struct{}, len(m.Triangles)*3/2)
	edges := make([][2]int, 0, len(m.Triangles)*3/2)
	for _, tri := range m.Triangles {
		for c := 0; c < 3; c++ {
			a, b := tri.Verts[c], tri.Verts[(c+1)%3]
			if a > b {
				a, b = b, a
			}
			key := [2]int{a, b}
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			edges = append(edges, key)
		}
	}
	return edges
}

// Transform applies an object's scale and then rotation to every vertex.
// Normals are transformed by the inverse scale so they stay perpendicular
// under non-uniform scaling, then renormalized. Translation is never applied:
// the exported frame is anchored at the object origin.
func (m *Mesh) Transform(rot math.Quat, scale math.Vec3) {
	r := rot.ToMat4()
	posMat := r.Mul(math.Scale(scale.X, scale.Y, scale.Z))
	inv := scale.Reciprocal()
	normMat := r.Mul(math.Scale(inv.X, inv.Y, inv.Z))

	for i := range m.Vertices {
		v := &m.Vertices[i]
		v.Position = posMat.TransformDirection(v.Position)
		v.Normal = normMat.TransformDirection(v.Normal).Normalize()
	}
}
