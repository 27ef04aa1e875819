package voxel_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voxelsplace/voxland/render"
	"github.com/voxelsplace/voxland/voxel"
)

func newWorld(t *testing.T, opts ...voxel.Option) (*voxel.World, *render.Scene) {
	t.Helper()
	scene := render.NewScene()
	w, err := voxel.New(scene, opts...)
	require.NoError(t, err)
	return w, scene
}

func TestAddDelRoundTrip(t *testing.T) {
	w, scene := newWorld(t)
	p := voxel.C(3, -2, 5)

	assert.True(t, w.IsEmpty(p))
	_, err := w.AddBlock(p)
	require.NoError(t, err)
	assert.False(t, w.IsEmpty(p))
	assert.Equal(t, 1, scene.Len())

	n, err := w.DelBlock(p)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.True(t, w.IsEmpty(p))
	assert.Equal(t, 0, scene.Len())
}

func TestColorForHeight(t *testing.T) {
	w, _ := newWorld(t)
	last := voxel.DefaultPalette[len(voxel.DefaultPalette)-1]

	for z, c := range voxel.DefaultPalette {
		assert.Equal(t, c, w.ColorForHeight(z))
	}
	for _, z := range []int{4, 5, 100, 1 << 30} {
		assert.Equal(t, last, w.ColorForHeight(z), "z=%d", z)
	}
	assert.Equal(t, voxel.DefaultPalette[0], w.ColorForHeight(-1))
}

func TestAddBlockUsesHeightColor(t *testing.T) {
	w, scene := newWorld(t)
	h, err := w.AddBlock(voxel.C(0, 0, 2))
	require.NoError(t, err)

	b, ok := w.Block(voxel.C(0, 0, 2))
	require.True(t, ok)
	assert.Equal(t, voxel.DefaultPalette[2], b.Color)
	assert.Equal(t, h, b.Handle)

	c, ok := scene.Color(h)
	require.True(t, ok)
	assert.Equal(t, voxel.DefaultPalette[2], c)
	pos, ok := scene.Pos(h)
	require.True(t, ok)
	assert.Equal(t, voxel.C(0, 0, 2), pos)
	assert.Equal(t, []voxel.Handle{h}, scene.FindByKey("0,0,2"))
}

func TestAddBlockReplacesAndReleases(t *testing.T) {
	w, scene := newWorld(t)
	p := voxel.C(1, 1, 1)
	red := voxel.Color{R: 1, A: 1}

	h1, err := w.AddBlock(p)
	require.NoError(t, err)
	h2, err := w.AddBlockColor(p, red)
	require.NoError(t, err)

	assert.NotEqual(t, h1, h2)
	assert.Equal(t, 1, w.Len())
	assert.Equal(t, 1, scene.Len())
	_, alive := scene.Pos(h1)
	assert.False(t, alive, "replaced handle must be destroyed")

	b, _ := w.Block(p)
	assert.Equal(t, red, b.Color)
	assert.Equal(t, h2, b.Handle)
}

func TestAddBlockRenderingFailure(t *testing.T) {
	w, scene := newWorld(t)
	scene.Limit = 1

	h, err := w.AddBlock(voxel.C(0, 0, 0))
	require.NoError(t, err)

	_, err = w.AddBlock(voxel.C(1, 0, 0))
	require.ErrorIs(t, err, voxel.ErrRenderingUnavailable)
	assert.True(t, w.IsEmpty(voxel.C(1, 0, 0)))

	// replacing needs a new object first; the old block survives a failure
	_, err = w.AddBlockColor(voxel.C(0, 0, 0), voxel.Color{G: 1, A: 1})
	require.ErrorIs(t, err, voxel.ErrRenderingUnavailable)
	b, ok := w.Block(voxel.C(0, 0, 0))
	require.True(t, ok)
	assert.Equal(t, h, b.Handle)
	assert.Equal(t, 1, scene.Len())
}

func TestClearIsIdempotent(t *testing.T) {
	w, scene := newWorld(t)
	for x := 0; x < 4; x++ {
		_, err := w.AddBlock(voxel.C(x, 0, 0))
		require.NoError(t, err)
	}

	require.NoError(t, w.Clear())
	assert.Equal(t, 0, w.Len())
	assert.Equal(t, 0, scene.Len())
	require.NoError(t, w.Clear())
	assert.Equal(t, 0, w.Len())
}

func TestBlocksOrder(t *testing.T) {
	w, _ := newWorld(t)
	for _, p := range []voxel.Coord{voxel.C(1, 0, 1), voxel.C(0, 1, 0), voxel.C(1, 0, 0), voxel.C(0, 0, 0)} {
		_, err := w.AddBlock(p)
		require.NoError(t, err)
	}
	var got []voxel.Coord
	for _, b := range w.Blocks() {
		got = append(got, b.Pos)
	}
	assert.Equal(t, []voxel.Coord{voxel.C(0, 0, 0), voxel.C(1, 0, 0), voxel.C(0, 1, 0), voxel.C(1, 0, 1)}, got)
}

func TestDelBlockRemovesStrayObjects(t *testing.T) {
	w, scene := newWorld(t)
	p := voxel.C(2, 2, 0)

	// an object tagged with p that the world does not know about
	_, err := scene.CreateCube(p, voxel.Color{A: 1}, p.Key())
	require.NoError(t, err)
	_, err = w.AddBlock(p)
	require.NoError(t, err)

	n, err := w.DelBlock(p)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, 0, scene.Len())
	assert.True(t, w.IsEmpty(p))
}

func TestDelBlockEmpty(t *testing.T) {
	w, _ := newWorld(t)
	n, err := w.DelBlock(voxel.C(9, 9, 9))
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestNewOptions(t *testing.T) {
	_, err := voxel.New(render.NewScene(), voxel.WithPalette(voxel.Palette{}))
	assert.ErrorIs(t, err, voxel.ErrEmptyPalette)

	_, err = voxel.New(nil)
	assert.ErrorIs(t, err, voxel.ErrRenderingUnavailable)

	pal := voxel.Palette{{R: 1, A: 1}}
	w, err := voxel.New(render.NewScene(), voxel.WithPalette(pal), voxel.WithMaxColumnHeight(7))
	require.NoError(t, err)
	assert.Equal(t, pal, w.Palette())
	assert.Equal(t, 7, w.MaxColumnHeight())
	assert.Equal(t, pal[0], w.ColorForHeight(3))
}

func TestParseHexColor(t *testing.T) {
	c, err := voxel.ParseHexColor("#ff0000")
	require.NoError(t, err)
	assert.Equal(t, voxel.Color{R: 1, A: 1}, c)

	c, err = voxel.ParseHexColor("#00ff0000")
	require.NoError(t, err)
	assert.Equal(t, voxel.Color{G: 1}, c)

	for _, bad := range []string{"", "ff0000", "#ff00", "#gg0000"} {
		_, err := voxel.ParseHexColor(bad)
		assert.Error(t, err, bad)
	}
}

func TestCoordKey(t *testing.T) {
	assert.Equal(t, "1,-2,3", voxel.C(1, -2, 3).Key())
	assert.Equal(t, voxel.C(1, 2, 4), voxel.C(1, 2, 3).Above())
	assert.Equal(t, voxel.C(1, 2, 2), voxel.C(1, 2, 3).Below())
}

// brokenDestroy is a scene whose Destroy always fails.
type brokenDestroy struct {
	*render.Scene
}

func (brokenDestroy) Destroy(voxel.Handle) error { return errors.New("device lost") }

func TestDelBlockDestroyFailureKeepsBlock(t *testing.T) {
	scene := render.NewScene()
	w, err := voxel.New(brokenDestroy{scene})
	require.NoError(t, err)
	p := voxel.C(0, 0, 0)
	h, err := w.AddBlock(p)
	require.NoError(t, err)

	n, err := w.DelBlock(p)
	assert.ErrorIs(t, err, voxel.ErrRenderingUnavailable)
	assert.Zero(t, n)

	// the world still owns the live handle
	b, ok := w.Block(p)
	require.True(t, ok)
	assert.Equal(t, h, b.Handle)
	assert.Equal(t, 1, scene.Len())

	removed, err := w.DelBlockFrom(p)
	assert.ErrorIs(t, err, voxel.ErrRenderingUnavailable)
	assert.False(t, removed)
	assert.False(t, w.IsEmpty(p))
}

func TestReplace(t *testing.T) {
	w, scene := newWorld(t)
	_, err := w.AddBlock(voxel.C(7, 7, 7))
	require.NoError(t, err)

	red := voxel.Color{R: 1, A: 1}
	require.NoError(t, w.Replace([]voxel.Block{
		{Pos: voxel.C(0, 0, 0), Color: red},
		{Pos: voxel.C(0, 0, 1), Color: red, Handle: 99},
	}))
	assert.Equal(t, []voxel.Coord{voxel.C(0, 0, 0), voxel.C(0, 0, 1)}, coords(w))
	assert.Equal(t, 2, scene.Len())
	b, _ := w.Block(voxel.C(0, 0, 1))
	assert.Equal(t, red, b.Color)
	assert.NotEqual(t, voxel.Handle(99), b.Handle)
}

func TestReplaceFailureLeavesWorldEmpty(t *testing.T) {
	w, scene := newWorld(t)
	scene.Limit = 2

	err := w.Replace([]voxel.Block{{Pos: voxel.C(0, 0, 0)}, {Pos: voxel.C(1, 0, 0)}, {Pos: voxel.C(2, 0, 0)}})
	assert.ErrorIs(t, err, voxel.ErrRenderingUnavailable)
	assert.Zero(t, w.Len())
	assert.Zero(t, scene.Len())
}
