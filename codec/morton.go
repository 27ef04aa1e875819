package codec

import (
	"sort"

	"github.com/voxelsplace/voxland/voxel"
)

// Records are stored in Z-order so neighboring blocks sit close together in
// the stream, which helps the compressors.

const (
	mortonBits = 21
	mortonBias = 1 << (mortonBits - 1)
	mortonMax  = 1<<mortonBits - 1
)

func morton3D64(x, y, z uint32) uint64 {
	return part1By2(uint64(x)) |
		(part1By2(uint64(y)) << 1) |
		(part1By2(uint64(z)) << 2)
}

func part1By2(x uint64) uint64 {
	x &= 0x1fffff
	x = (x | (x << 32)) & 0x1f00000000ffff
	x = (x | (x << 16)) & 0x1f0000ff0000ff
	x = (x | (x << 8)) & 0x100f00f00f00f00f
	x = (x | (x << 4)) & 0x10c30c30c30c30c3
	x = (x | (x << 2)) & 0x1249249249249249
	return x
}

// biased shifts a signed coordinate into the unsigned Morton range,
// saturating at the ends.
func biased(v int) uint32 {
	v += mortonBias
	if v < 0 {
		return 0
	}
	if v > mortonMax {
		return mortonMax
	}
	return uint32(v)
}

func mortonKey(c voxel.Coord) uint64 {
	return morton3D64(biased(c.X), biased(c.Y), biased(c.Z))
}

// sortZOrder sorts blocks by Morton key. Coordinates outside the Morton
// range share saturated keys and fall back to voxel.Less.
func sortZOrder(blocks []voxel.Block) {
	sort.Slice(blocks, func(i, j int) bool {
		ki, kj := mortonKey(blocks[i].Pos), mortonKey(blocks[j].Pos)
		if ki != kj {
			return ki < kj
		}
		return voxel.Less(blocks[i].Pos, blocks[j].Pos)
	})
}
