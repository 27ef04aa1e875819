package api

import (
	"bytes"

	"github.com/voxelsplace/voxland/codec"
	"github.com/voxelsplace/voxland/render"
	"github.com/voxelsplace/voxland/voxel"
)

func newWorld() (*voxel.World, *render.Scene, error) {
	scene := render.NewScene()
	w, err := voxel.New(scene)
	if err != nil {
		return nil, nil, err
	}
	return w, scene, nil
}

// LandToMapBytes converts a text heightmap to world file bytes.
func LandToMapBytes(land []byte, comp codec.Compression) ([]byte, voxel.LandResult, error) {
	w, _, err := newWorld()
	if err != nil {
		return nil, voxel.LandResult{}, err
	}
	res, err := w.LoadLand(bytes.NewReader(land))
	if err != nil {
		return nil, res, err
	}
	out, err := codec.EncodeBytes(w.Blocks(), comp)
	return out, res, err
}

// LandToGLB converts a text heightmap to .glb bytes.
func LandToGLB(land []byte) ([]byte, error) {
	w, scene, err := newWorld()
	if err != nil {
		return nil, err
	}
	if _, err := w.LoadLand(bytes.NewReader(land)); err != nil {
		return nil, err
	}
	return render.GLBBytes(scene)
}

// MapToGLB converts world file bytes to .glb bytes.
func MapToGLB(mapBytes []byte) ([]byte, error) {
	w, scene, err := newWorld()
	if err != nil {
		return nil, err
	}
	if err := codec.LoadBinary(bytes.NewReader(mapBytes), w); err != nil {
		return nil, err
	}
	return render.GLBBytes(scene)
}
