package mesh

import (
	"errors"
	"math"
	"testing"

	gmath "github.com/Faultbox/automdl/pkg/math"
)

func quad() *Mesh {
	return &Mesh{
		Vertices: []Vertex{
			{Position: gmath.Vec3{X: 0, Y: 0, Z: 0}, Normal: gmath.Vec3{Z: 1}},
			{Position: gmath.Vec3{X: 1, Y: 0, Z: 0}, Normal: gmath.Vec3{Z: 1}},
			{Position: gmath.Vec3{X: 1, Y: 1, Z: 0}, Normal: gmath.Vec3{Z: 1}},
			{Position: gmath.Vec3{X: 0, Y: 1, Z: 0}, Normal: gmath.Vec3{Z: 1}},
		},
		Triangles: []Triangle{
			{Verts: [3]int{0, 1, 2}},
			{Verts: [3]int{0, 2, 3}},
		},
	}
}

func TestValidate(t *testing.T) {
	m := quad()
	if err := m.Validate(); err != nil {
		t.Fatalf("valid mesh: %v", err)
	}

	m.Triangles = append(m.Triangles, Triangle{Verts: [3]int{0, 1, 9}})
	err := m.Validate()
	if !errors.Is(err, ErrInvalidVertexIndex) {
		t.Errorf("expected ErrInvalidVertexIndex, got %v", err)
	}
}

func TestEdgeListDerivedFromTriangles(t *testing.T) {
	edges := quad().EdgeList()

	// 4 outer edges plus the shared diagonal
	if len(edges) != 5 {
		t.Fatalf("expected 5 edges, got %d: %v", len(edges), edges)
	}
	for _, e := range edges {
		if e[0] > e[1] {
			t.Errorf("edge %v not ordered low, high", e)
		}
	}
}

func TestEdgeListExplicit(t *testing.T) {
	m := quad()
	m.Edges = [][2]int{{0, 1}}
	if got := m.EdgeList(); len(got) != 1 {
		t.Errorf("explicit edges should be returned as-is, got %v", got)
	}
}

func TestUVWithoutChannel(t *testing.T) {
	m := quad()
	m.Triangles[0].UV = [3]gmath.Vec2{{X: 0.5, Y: 0.5}, {X: 1}, {Y: 1}}

	if uv := m.UV(&m.Triangles[0], 0); uv != (gmath.Vec2{}) {
		t.Errorf("UV without channel = %v, want (0,0)", uv)
	}

	m.HasUV = true
	if uv := m.UV(&m.Triangles[0], 0); uv != (gmath.Vec2{X: 0.5, Y: 0.5}) {
		t.Errorf("UV with channel = %v, want (0.5,0.5)", uv)
	}
}

func TestFaceNormal(t *testing.T) {
	m := quad()
	n := m.FaceNormal(&m.Triangles[0])
	if n != (gmath.Vec3{Z: 1}) {
		t.Errorf("FaceNormal = %v, want (0,0,1)", n)
	}
}

func TestTransformScalesAndRotatesWithoutTranslation(t *testing.T) {
	m := &Mesh{Vertices: []Vertex{
		{Position: gmath.Vec3{X: 1}, Normal: gmath.Vec3{X: 1}},
	}}

	rot := gmath.QuatFromAxisAngle(gmath.Vec3{Z: 1}, float32(math.Pi/2))
	m.Transform(rot, gmath.Vec3{X: 2, Y: 2, Z: 2})

	p := m.Vertices[0].Position
	if math.Abs(float64(p.X)) > 1e-5 || math.Abs(float64(p.Y-2)) > 1e-5 || p.Z != 0 {
		t.Errorf("position = %v, want (0,2,0)", p)
	}
	n := m.Vertices[0].Normal
	if math.Abs(float64(n.Y-1)) > 1e-5 {
		t.Errorf("normal = %v, want unit (0,1,0)", n)
	}
}

func TestTransformNonUniformScaleKeepsNormalsPerpendicular(t *testing.T) {
	// Normal of the plane x + y = 1 is (1,1,0)/sqrt2; scaling X by 2 moves
	// the plane to x/2 + y = 1 whose normal is (1,2,0) normalized.
	s := float32(1 / math.Sqrt2)
	m := &Mesh{Vertices: []Vertex{{Normal: gmath.Vec3{X: s, Y: s}}}}
	m.Transform(gmath.QuatIdentity(), gmath.Vec3{X: 2, Y: 1, Z: 1})

	want := gmath.Vec3{X: 1, Y: 2}.Normalize()
	got := m.Vertices[0].Normal
	if math.Abs(float64(got.X-want.X)) > 1e-5 || math.Abs(float64(got.Y-want.Y)) > 1e-5 {
		t.Errorf("normal = %v, want %v", got, want)
	}
}

func TestSlotsResolve(t *testing.T) {
	slots := MaterialSlots{"metal", "", "wood"}

	tests := []struct {
		index int
		want  string
	}{
		{0, "metal"},
		{1, DefaultMaterial},
		{2, "wood"},
		{3, DefaultMaterial},
		{-1, DefaultMaterial},
	}
	for _, tt := range tests {
		if got := slots.Resolve(tt.index); got != tt.want {
			t.Errorf("Resolve(%d) = %q, want %q", tt.index, got, tt.want)
		}
	}
}

func TestSlotsHasMaterials(t *testing.T) {
	if (MaterialSlots{}).HasMaterials() {
		t.Error("no slots should report no materials")
	}
	if (MaterialSlots{"", ""}).HasMaterials() {
		t.Error("only empty slots should report no materials")
	}
	if !(MaterialSlots{"", "x"}).HasMaterials() {
		t.Error("one filled slot should report materials")
	}
}

func TestSlotsNames(t *testing.T) {
	got := MaterialSlots{"a", "", "b", "a"}.Names()
	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Errorf("Names() = %v, want [a b]", got)
	}
}

// splitQuad is quad with the second triangle on its own copies of the
// shared vertices, as exporters produce at normal or UV seams.
func splitQuad() *Mesh {
	m := quad()
	m.Vertices = append(m.Vertices,
		Vertex{Position: gmath.Vec3{X: 0, Y: 0, Z: 0}, Normal: gmath.Vec3{X: 1}},
		Vertex{Position: gmath.Vec3{X: 1, Y: 1, Z: 0}, Normal: gmath.Vec3{X: 1}},
	)
	m.Triangles[1].Verts = [3]int{4, 5, 3}
	return m
}

func TestWeld(t *testing.T) {
	m := splitQuad()
	m.Edges = [][2]int{{0, 4}}
	m.Weld()

	if len(m.Vertices) != 4 {
		t.Fatalf("got %d vertices, want 4", len(m.Vertices))
	}
	if m.Triangles[1].Verts != [3]int{0, 2, 3} {
		t.Errorf("second triangle = %v, want [0 2 3]", m.Triangles[1].Verts)
	}
	if m.Edges != nil {
		t.Error("explicit edges should be dropped")
	}
	if err := m.Validate(); err != nil {
		t.Errorf("welded mesh invalid: %v", err)
	}

	// merged normal is the normalized sum of +Z and +X
	n := m.Vertices[0].Normal
	want := float32(1 / math.Sqrt2)
	if math.Abs(float64(n.X-want)) > 1e-6 || math.Abs(float64(n.Z-want)) > 1e-6 {
		t.Errorf("merged normal = %v", n)
	}
}

func TestSmoothNormals(t *testing.T) {
	m := quad()
	for i := range m.Vertices {
		m.Vertices[i].Normal = gmath.Vec3{}
	}
	m.SmoothNormals()

	for i, v := range m.Vertices {
		if v.Normal != (gmath.Vec3{Z: 1}) {
			t.Errorf("vertex %d normal = %v, want +Z", i, v.Normal)
		}
	}
	for i, tri := range m.Triangles {
		if !tri.Smooth {
			t.Errorf("triangle %d not marked smooth", i)
		}
	}
}
