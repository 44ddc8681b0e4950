package smd

import "github.com/Faultbox/automdl/pkg/mesh"

// LabelMode selects how each triangle's material label is chosen.
type LabelMode int

const (
	FixedLabel       LabelMode = iota // Every triangle uses Policy.Label
	PerTriangleLabel                  // Triangles use their resolved material slot
)

// NormalMode selects which normals are written for a triangle's corners.
type NormalMode int

const (
	VertexNormals      NormalMode = iota // Always per-vertex normals
	FaceNormalWhenFlat                   // Flat triangles repeat the face normal
)

// CollisionLabel tags every triangle of a physics mesh.
const CollisionLabel = "Phy"

// Policy controls triangle labelling and normal selection.
type Policy struct {
	Labels  LabelMode
	Normals NormalMode
	Label   string // Used with FixedLabel
}

// CollisionPolicy is used for physics meshes: one fixed label, vertex normals as-is.
func CollisionPolicy() Policy {
	return Policy{Labels: FixedLabel, Normals: VertexNormals, Label: CollisionLabel}
}

// MaterialPolicy is used for visual meshes with materials.
func MaterialPolicy() Policy {
	return Policy{Labels: PerTriangleLabel, Normals: FaceNormalWhenFlat}
}

// NoMaterialPolicy is used for visual meshes without any assigned material.
func NoMaterialPolicy() Policy {
	return Policy{Labels: FixedLabel, Normals: FaceNormalWhenFlat, Label: mesh.DefaultMaterial}
}

// PolicyFor picks the policy for a mesh given its role and material slots.
func PolicyFor(collision bool, slots mesh.MaterialSlots) Policy {
	switch {
	case collision:
		return CollisionPolicy()
	case slots.HasMaterials():
		return MaterialPolicy()
	default:
		return NoMaterialPolicy()
	}
}

func (p Policy) label(slots mesh.MaterialSlots, t *mesh.Triangle) string {
	if p.Labels == PerTriangleLabel {
		return slots.Resolve(t.Material)
	}
	if p.Label == "" {
		return mesh.DefaultMaterial
	}
	return p.Label
}
