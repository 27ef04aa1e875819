package terrain_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voxelsplace/voxland/render"
	"github.com/voxelsplace/voxland/terrain"
	"github.com/voxelsplace/voxland/voxel"
)

func TestGenerateDeterministic(t *testing.T) {
	o := terrain.Options{Width: 16, Depth: 12, Seed: 42}
	a, err := terrain.Generate(o)
	require.NoError(t, err)
	b, err := terrain.Generate(o)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestGenerateBounds(t *testing.T) {
	rows, err := terrain.Generate(terrain.Options{Width: 20, Depth: 7, MaxHeight: 5, Seed: 7, Scale: 3})
	require.NoError(t, err)
	require.Len(t, rows, 7)
	for _, row := range rows {
		require.Len(t, row, 20)
		for _, h := range row {
			assert.GreaterOrEqual(t, h, 0)
			assert.LessOrEqual(t, h, 5)
		}
	}
}

func TestGenerateInvalidSize(t *testing.T) {
	_, err := terrain.Generate(terrain.Options{Width: 0, Depth: 3})
	assert.Error(t, err)
	_, err = terrain.Generate(terrain.Options{Width: 3, Depth: -1})
	assert.Error(t, err)
}

func TestWriteLand(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, terrain.WriteLand(&buf, [][]int{{0, 1}, {2, 0}}))
	assert.Equal(t, "0 1\n2 0\n", buf.String())
}

func TestGeneratedLandLoads(t *testing.T) {
	path := filepath.Join(t.TempDir(), "land.txt")
	require.NoError(t, terrain.RunGenerateLand(terrain.Options{Width: 9, Depth: 4, Seed: 1}, path))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Len(t, strings.Split(strings.TrimSpace(string(raw)), "\n"), 4)

	w, err := voxel.New(render.NewScene())
	require.NoError(t, err)
	res, err := w.LoadLandFile(path)
	require.NoError(t, err)
	assert.Equal(t, 9, res.Width)
	assert.Equal(t, 4, res.Height)
	assert.Empty(t, res.Diagnostics)
	assert.GreaterOrEqual(t, res.Blocks, 9*4)
}
