package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/voxelsplace/voxland/voxel"
)

func TestMortonInterleave(t *testing.T) {
	assert.Equal(t, uint64(1), morton3D64(1, 0, 0))
	assert.Equal(t, uint64(2), morton3D64(0, 1, 0))
	assert.Equal(t, uint64(4), morton3D64(0, 0, 1))
	assert.Equal(t, uint64(0b111000), morton3D64(2, 2, 2))
	// bits above the 21-bit range are dropped
	assert.Equal(t, morton3D64(mortonMax, 0, 0), morton3D64(1<<22-1, 0, 0))
}

func TestBiasedSaturates(t *testing.T) {
	assert.Equal(t, uint32(mortonBias), biased(0))
	assert.Equal(t, uint32(0), biased(-mortonBias-10))
	assert.Equal(t, uint32(mortonMax), biased(mortonMax))
}

func TestSortZOrder(t *testing.T) {
	blocks := []voxel.Block{
		{Pos: voxel.C(1, 1, 1)},
		{Pos: voxel.C(1, 0, 0)},
		{Pos: voxel.C(0, 0, 0)},
		{Pos: voxel.C(-1, 0, 0)},
	}
	sortZOrder(blocks)
	var got []voxel.Coord
	for _, b := range blocks {
		got = append(got, b.Pos)
	}
	assert.Equal(t, []voxel.Coord{voxel.C(-1, 0, 0), voxel.C(0, 0, 0), voxel.C(1, 0, 0), voxel.C(1, 1, 1)}, got)
}

func TestSortZOrderSaturatedTies(t *testing.T) {
	far := mortonMax * 4
	blocks := []voxel.Block{
		{Pos: voxel.C(far+2, far, far)},
		{Pos: voxel.C(far+1, far, far)},
	}
	sortZOrder(blocks)
	assert.Equal(t, far+1, blocks[0].Pos.X)
}
