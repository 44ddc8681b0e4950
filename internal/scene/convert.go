package scene

import (
	"encoding/json"
	"fmt"

	"github.com/chewxy/math32"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"github.com/Faultbox/automdl/pkg/math"
	"github.com/Faultbox/automdl/pkg/mesh"
)

// yUpToZUp rotates glTF's Y-up frame into the Z-up frame studiomdl expects.
var yUpToZUp = math.QuatFromAxisAngle(math.Vec3{X: 1}, math32.Pi/2)

// FromDocument converts the default scene of a parsed document. Every node
// with a mesh becomes an object named after the node (or its mesh).
func FromDocument(doc *gltf.Document) (*Scene, error) {
	roots, err := sceneRoots(doc)
	if err != nil {
		return nil, err
	}

	s := &Scene{}
	root := yUpToZUp.ToMat4()
	for _, n := range roots {
		if err := s.walk(doc, n, root); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func sceneRoots(doc *gltf.Document) ([]int, error) {
	if len(doc.Scenes) == 0 {
		if len(doc.Nodes) == 0 {
			return nil, ErrNoScene
		}
		// No scene: treat parentless nodes as roots.
		child := make(map[int]bool)
		for _, n := range doc.Nodes {
			for _, c := range n.Children {
				child[int(c)] = true
			}
		}
		var roots []int
		for i := range doc.Nodes {
			if !child[i] {
				roots = append(roots, i)
			}
		}
		return roots, nil
	}

	sc := 0
	if doc.Scene != nil {
		sc = int(*doc.Scene)
	}
	if sc < 0 || sc >= len(doc.Scenes) {
		return nil, fmt.Errorf("%w: default scene %d out of range", ErrNoScene, sc)
	}
	roots := make([]int, 0, len(doc.Scenes[sc].Nodes))
	for _, n := range doc.Scenes[sc].Nodes {
		roots = append(roots, int(n))
	}
	return roots, nil
}

func (s *Scene) walk(doc *gltf.Document, index int, parent math.Mat4) error {
	if index < 0 || index >= len(doc.Nodes) {
		return fmt.Errorf("node %d out of range", index)
	}
	node := doc.Nodes[index]
	world := parent.Mul(localMatrix(node))

	if node.Mesh != nil {
		obj, err := convertNode(doc, node, world)
		if err != nil {
			return fmt.Errorf("node %q: %w", node.Name, err)
		}
		s.Objects = append(s.Objects, obj)
	}

	for _, c := range node.Children {
		if err := s.walk(doc, int(c), world); err != nil {
			return err
		}
	}
	return nil
}

// localMatrix returns the node's local transform. Nodes built in code may
// leave rotation and scale zeroed; those read as identity.
func localMatrix(n *gltf.Node) math.Mat4 {
	var m math.Mat4
	for i, v := range n.Matrix {
		m[i] = float32(v)
	}
	if m != (math.Mat4{}) && m != math.Identity() {
		return m
	}

	t := math.Vec3{X: float32(n.Translation[0]), Y: float32(n.Translation[1]), Z: float32(n.Translation[2])}
	r := math.Quat{
		X: float32(n.Rotation[0]), Y: float32(n.Rotation[1]),
		Z: float32(n.Rotation[2]), W: float32(n.Rotation[3]),
	}
	if r == (math.Quat{}) {
		r = math.QuatIdentity()
	}
	sc := math.Vec3{X: float32(n.Scale[0]), Y: float32(n.Scale[1]), Z: float32(n.Scale[2])}
	if sc == (math.Vec3{}) {
		sc = math.Vec3{X: 1, Y: 1, Z: 1}
	}
	return math.Compose(t, r, sc)
}

func convertNode(doc *gltf.Document, node *gltf.Node, world math.Mat4) (*Object, error) {
	mi := int(*node.Mesh)
	if mi < 0 || mi >= len(doc.Meshes) {
		return nil, fmt.Errorf("mesh %d out of range", mi)
	}
	gm := doc.Meshes[mi]

	name := node.Name
	if name == "" {
		name = gm.Name
	}
	if name == "" {
		name = fmt.Sprintf("node%d", mi)
	}

	obj := &Object{Name: name, Hidden: isHidden(node.Extras), Mesh: &mesh.Mesh{}}
	slotOf := make(map[int]int)
	flat := false

	for _, p := range gm.Primitives {
		if p.Mode != gltf.PrimitiveTriangles {
			continue
		}
		material := -1
		if p.Material != nil {
			id := int(*p.Material)
			slot, ok := slotOf[id]
			if !ok {
				slot = len(obj.Slots)
				slotOf[id] = slot
				obj.Slots = append(obj.Slots, materialName(doc, id))
			}
			material = slot
		}
		hasNormals, err := appendPrimitive(doc, p, material, obj.Mesh)
		if err != nil {
			return nil, err
		}
		if !hasNormals {
			flat = true
		}
	}

	_, rot, scale := world.Decompose()
	obj.Mesh.Transform(rot, scale)

	if obj.IsCollision() {
		// Collision proxies are exported smooth over shared positions.
		obj.Mesh.Weld()
		obj.Mesh.SmoothNormals()
	} else if flat {
		fillFlatNormals(obj.Mesh)
	}
	return obj, nil
}

func materialName(doc *gltf.Document, id int) string {
	if id < 0 || id >= len(doc.Materials) || doc.Materials[id] == nil {
		return ""
	}
	if name := doc.Materials[id].Name; name != "" {
		return name
	}
	return fmt.Sprintf("material%d", id)
}

// appendPrimitive merges one triangle primitive into m. It reports whether
// the primitive carried its own normals.
func appendPrimitive(doc *gltf.Document, p *gltf.Primitive, material int, m *mesh.Mesh) (bool, error) {
	posIdx, ok := p.Attributes["POSITION"]
	if !ok {
		return false, ErrMissingPosition
	}
	positions, err := modeler.ReadPosition(doc, doc.Accessors[posIdx], nil)
	if err != nil {
		return false, fmt.Errorf("reading positions: %w", err)
	}

	var normals [][3]float32
	if idx, ok := p.Attributes["NORMAL"]; ok {
		if normals, err = modeler.ReadNormal(doc, doc.Accessors[idx], nil); err != nil {
			return false, fmt.Errorf("reading normals: %w", err)
		}
	}

	var uvs [][2]float32
	if idx, ok := p.Attributes["TEXCOORD_0"]; ok {
		if uvs, err = modeler.ReadTextureCoord(doc, doc.Accessors[idx], nil); err != nil {
			return false, fmt.Errorf("reading texture coordinates: %w", err)
		}
		m.HasUV = true
	}

	var indices []uint32
	if p.Indices != nil {
		if indices, err = modeler.ReadIndices(doc, doc.Accessors[*p.Indices], nil); err != nil {
			return false, fmt.Errorf("reading indices: %w", err)
		}
	} else {
		indices = make([]uint32, len(positions))
		for i := range indices {
			indices[i] = uint32(i)
		}
	}

	hasNormals := len(normals) == len(positions)
	base := len(m.Vertices)
	for i, pos := range positions {
		v := mesh.Vertex{Position: math.Vec3{X: pos[0], Y: pos[1], Z: pos[2]}}
		if hasNormals {
			v.Normal = math.Vec3{X: normals[i][0], Y: normals[i][1], Z: normals[i][2]}
		}
		m.Vertices = append(m.Vertices, v)
	}

	for i := 0; i+2 < len(indices); i += 3 {
		tri := mesh.Triangle{Material: material, Smooth: hasNormals}
		for c := 0; c < 3; c++ {
			vi := int(indices[i+c])
			if vi >= len(positions) {
				return false, fmt.Errorf("%w: index %d of %d", mesh.ErrInvalidVertexIndex, vi, len(positions))
			}
			tri.Verts[c] = base + vi
			if vi < len(uvs) {
				// glTF puts the texture origin top-left
				tri.UV[c] = math.Vec2{X: uvs[vi][0], Y: 1 - uvs[vi][1]}
			}
		}
		m.Triangles = append(m.Triangles, tri)
	}
	return hasNormals, nil
}

// fillFlatNormals gives vertices of flat triangles a usable normal. Flat
// triangles are written with their face normal, so this only matters for
// consumers reading vertex normals directly.
func fillFlatNormals(m *mesh.Mesh) {
	for i := range m.Triangles {
		t := &m.Triangles[i]
		if t.Smooth {
			continue
		}
		n := m.FaceNormal(t)
		for _, v := range t.Verts {
			if m.Vertices[v].Normal == (math.Vec3{}) {
				m.Vertices[v].Normal = n
			}
		}
	}
}

// isHidden reads the "hidden" flag from node extras.
func isHidden(extras any) bool {
	var fields map[string]any
	switch e := extras.(type) {
	case map[string]any:
		fields = e
	case json.RawMessage:
		if json.Unmarshal(e, &fields) != nil {
			return false
		}
	case []byte:
		if json.Unmarshal(e, &fields) != nil {
			return false
		}
	default:
		return false
	}
	hidden, _ := fields["hidden"].(bool)
	return hidden
}
