package islands

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	gmath "github.com/Faultbox/automdl/pkg/math"
	"github.com/Faultbox/automdl/pkg/mesh"
)

func TestCount(t *testing.T) {
	tests := []struct {
		name     string
		vertices int
		edges    [][2]int
		want     int
	}{
		{"empty graph", 0, nil, 0},
		{"no edges", 5, nil, 5},
		{"single vertex", 1, nil, 1},
		{"cycle", 6, [][2]int{{0, 1}, {1, 2}, {2, 3}, {3, 4}, {4, 5}, {5, 0}}, 1},
		{"two disjoint triangles", 6, [][2]int{{0, 1}, {1, 2}, {2, 0}, {3, 4}, {4, 5}, {5, 3}}, 2},
		{"triangle plus loose vertex", 4, [][2]int{{0, 1}, {1, 2}, {2, 0}}, 2},
		{"chain", 4, [][2]int{{0, 1}, {1, 2}, {2, 3}}, 1},
		{"duplicate and self edges", 3, [][2]int{{0, 1}, {1, 0}, {2, 2}}, 2},
		{"out of range edge ignored", 2, [][2]int{{0, 7}}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Count(tt.vertices, tt.edges))
		})
	}
}

func TestCountIndependentOfEdgeOrder(t *testing.T) {
	// Three components: a 10-cycle, a 5-chain, and a lone vertex.
	var edges [][2]int
	for i := 0; i < 10; i++ {
		edges = append(edges, [2]int{i, (i + 1) % 10})
	}
	for i := 10; i < 14; i++ {
		edges = append(edges, [2]int{i, i + 1})
	}

	rng := rand.New(rand.NewSource(7))
	for round := 0; round < 20; round++ {
		shuffled := append([][2]int(nil), edges...)
		rng.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })
		for i := range shuffled {
			if rng.Intn(2) == 0 {
				shuffled[i][0], shuffled[i][1] = shuffled[i][1], shuffled[i][0]
			}
		}
		assert.Equal(t, 3, Count(16, shuffled), "round %d", round)
	}
}

func TestCountDoesNotMutateEdges(t *testing.T) {
	edges := [][2]int{{0, 1}, {2, 3}}
	Count(4, edges)
	assert.Equal(t, [][2]int{{0, 1}, {2, 3}}, edges)
}

func TestCountMesh(t *testing.T) {
	v := func(x, y, z float32) mesh.Vertex {
		return mesh.Vertex{Position: gmath.Vec3{X: x, Y: y, Z: z}}
	}
	m := &mesh.Mesh{
		Vertices: []mesh.Vertex{
			v(0, 0, 0), v(1, 0, 0), v(0, 1, 0),
			v(5, 0, 0), v(6, 0, 0), v(5, 1, 0),
		},
		Triangles: []mesh.Triangle{
			{Verts: [3]int{0, 1, 2}},
			{Verts: [3]int{3, 4, 5}},
		},
	}
	assert.Equal(t, 2, CountMesh(m))
}
