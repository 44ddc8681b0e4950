// Package islands counts the connected components ("islands") of a mesh's
// vertex/edge graph. The count drives collision hull splitting: a physics
// mesh with more than one island is compiled as a concave set of pieces.
package islands

import "github.com/Faultbox/automdl/pkg/mesh"

// Count returns the number of connected components of the graph with
// vertices 0..vertexCount-1 and the given undirected edges. A vertex with
// no edges is its own component. Edges that reference vertices outside the
// range are ignored.
func Count(vertexCount int, edges [][2]int) int {
	if vertexCount <= 0 {
		return 0
	}

	paths := adjacency(vertexCount, edges)

	n := 0
	for len(paths) > 0 {
		var start int
		for v := range paths {
			start = v
			break
		}
		n++
		follow(start, paths)
	}
	return n
}

// CountMesh counts the islands of a mesh using its edge list.
func CountMesh(m *mesh.Mesh) int {
	return Count(len(m.Vertices), m.EdgeList())
}

// adjacency maps every vertex to its direct neighbours, registering each
// edge in both directions.
func adjacency(vertexCount int, edges [][2]int) map[int][]int {
	paths := make(map[int][]int, vertexCount)
	for v := 0; v < vertexCount; v++ {
		paths[v] = nil
	}
	for _, e := range edges {
		a, b := e[0], e[1]
		if a < 0 || b < 0 || a >= vertexCount || b >= vertexCount {
			continue
		}
		paths[a] = append(paths[a], b)
		paths[b] = append(paths[b], a)
	}
	return paths
}

// follow expands a breadth-first frontier from start, deleting every
// reached vertex from paths. It stops once no frontier vertex is left in
// the map.
func follow(start int, paths map[int][]int) {
	current := []int{start}
	for {
		var next []int
		active := false
		for _, v := range current {
			neighbours, ok := paths[v]
			if !ok {
				continue
			}
			active = true
			delete(paths, v)
			for _, nb := range neighbours {
				if _, ok := paths[nb]; ok {
					next = append(next, nb)
				}
			}
		}
		if !active {
			return
		}
		current = next
	}
}
