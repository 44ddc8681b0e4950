package skins

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/automdl/pkg/mesh"
)

func TestInferBasic(t *testing.T) {
	table := Infer(mesh.MaterialSlots{"metal", "metal_skin1", "wood", "metal_skin2"})

	require.Equal(t, []string{"metal"}, table.Bases, "wood has no variants and must not be a base")
	require.Len(t, table.Skins, 2)
	assert.Equal(t, map[string]string{"metal": "metal_skin1"}, table.Skins[1])
	assert.Equal(t, map[string]string{"metal": "metal_skin2"}, table.Skins[2])
}

func TestInferTwoBasesDefaultsMissingCells(t *testing.T) {
	table := Infer(mesh.MaterialSlots{"wood", "metal", "metal_skin1", "metal_skin2", "wood_skin2"})

	require.Equal(t, []string{"metal", "wood"}, table.Bases)
	require.Len(t, table.Skins, 2)
	assert.Equal(t, map[string]string{"metal": "metal_skin1", "wood": "wood"}, table.Skins[1])
	assert.Equal(t, map[string]string{"metal": "metal_skin2", "wood": "wood_skin2"}, table.Skins[2])
}

func TestInferDropsNoOpIDsAndRenumbers(t *testing.T) {
	// ids 1 and 3 exist, id 2 would be all-base and is dropped; 3 becomes 2.
	table := Infer(mesh.MaterialSlots{"glass", "glass_skin1", "glass_skin3"})

	require.Len(t, table.Skins, 2)
	assert.Equal(t, "glass_skin1", table.Skins[1]["glass"])
	assert.Equal(t, "glass_skin3", table.Skins[2]["glass"])
	_, ok := table.Skins[3]
	assert.False(t, ok)
}

func TestInferRangeStartsAtMinimumID(t *testing.T) {
	table := Infer(mesh.MaterialSlots{"paint", "paint_skin4", "paint_skin5"})

	require.Len(t, table.Skins, 2)
	assert.Equal(t, "paint_skin4", table.Skins[1]["paint"])
	assert.Equal(t, "paint_skin5", table.Skins[2]["paint"])
}

func TestInferLargestID(t *testing.T) {
	done := make(chan Table, 1)
	go func() { done <- Infer(mesh.MaterialSlots{"metal", "metal_skin9223372036854775807"}) }()

	select {
	case table := <-done:
		require.Len(t, table.Skins, 1)
		assert.Equal(t, "metal_skin9223372036854775807", table.Skins[1]["metal"])
	case <-time.After(5 * time.Second):
		t.Fatal("Infer did not return for the largest skin id")
	}
}

func TestInferSparseIDs(t *testing.T) {
	table := Infer(mesh.MaterialSlots{"metal", "metal_skin1", "metal_skin999999999", "wood", "wood_skin5000000"})

	require.Equal(t, []string{"metal", "wood"}, table.Bases)
	require.Len(t, table.Skins, 3)
	assert.Equal(t, map[string]string{"metal": "metal_skin1", "wood": "wood"}, table.Skins[1])
	assert.Equal(t, map[string]string{"metal": "metal", "wood": "wood_skin5000000"}, table.Skins[2])
	assert.Equal(t, map[string]string{"metal": "metal_skin999999999", "wood": "wood"}, table.Skins[3])
}

func TestInferSkinZero(t *testing.T) {
	table := Infer(mesh.MaterialSlots{"a", "a_skin0", "a_skin1"})

	require.Len(t, table.Skins, 2)
	assert.Equal(t, "a_skin0", table.Skins[1]["a"])
	assert.Equal(t, "a_skin1", table.Skins[2]["a"])
}

func TestInferCaseInsensitive(t *testing.T) {
	table := Infer(mesh.MaterialSlots{"Metal", "METAL_Skin1", "metal_SKIN2"})

	require.Equal(t, []string{"Metal"}, table.Bases, "base keeps its original casing")
	assert.Equal(t, "METAL_Skin1", table.Skins[1]["Metal"])
	assert.Equal(t, "metal_SKIN2", table.Skins[2]["Metal"])
}

func TestInferBasesSortedByOriginalCasing(t *testing.T) {
	table := Infer(mesh.MaterialSlots{"b", "b_skin1", "A", "a_skin1", "C", "c_skin1"})

	// byte order: uppercase before lowercase
	assert.Equal(t, []string{"A", "C", "b"}, table.Bases)
}

func TestInferRequiresBaseMaterial(t *testing.T) {
	table := Infer(mesh.MaterialSlots{"rust_skin1", "rust_skin2", "paint"})
	assert.True(t, table.Empty())
	assert.Nil(t, table.Rows())
}

func TestInferNoMaterials(t *testing.T) {
	assert.True(t, Infer(nil).Empty())
	assert.True(t, Infer(mesh.MaterialSlots{"", ""}).Empty())
	assert.True(t, Infer(mesh.MaterialSlots{"plain", "other"}).Empty())
}

func TestInferIgnoresEmptySlots(t *testing.T) {
	table := Infer(mesh.MaterialSlots{"", "tile", "", "tile_skin1"})
	require.Equal(t, []string{"tile"}, table.Bases)
	require.Len(t, table.Skins, 1)
}

func TestInferDenseIDs(t *testing.T) {
	table := Infer(mesh.MaterialSlots{"x", "x_skin2", "x_skin9", "x_skin30", "y", "y_skin5"})

	require.Len(t, table.Skins, 4)
	for id := 1; id <= 4; id++ {
		_, ok := table.Skins[id]
		assert.True(t, ok, "skin %d should exist", id)
	}
	assert.Equal(t, map[string]string{"x": "x_skin2", "y": "y"}, table.Skins[1])
	assert.Equal(t, map[string]string{"x": "x", "y": "y_skin5"}, table.Skins[2])
	assert.Equal(t, map[string]string{"x": "x_skin9", "y": "y"}, table.Skins[3])
	assert.Equal(t, map[string]string{"x": "x_skin30", "y": "y"}, table.Skins[4])
}

func TestRows(t *testing.T) {
	table := Infer(mesh.MaterialSlots{"metal", "metal_skin1", "wood", "wood_skin2"})

	assert.Equal(t, [][]string{
		{"metal", "wood"},
		{"metal_skin1", "wood"},
		{"metal", "wood_skin2"},
	}, table.Rows())
}
