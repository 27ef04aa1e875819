package render

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/voxelsplace/voxland/voxel"
)

// ErrSceneFull is returned by CreateCube once the scene holds Limit objects.
var ErrSceneFull = errors.New("scene object limit reached")

// Object is a live cube in a Scene.
type Object struct {
	Handle voxel.Handle
	Pos    voxel.Coord
	Color  voxel.Color
	Key    string
}

// Scene is a headless scene graph of unit cubes. It implements
// voxel.Renderer and is what the CLI and the wasm build draw into before
// exporting to glTF.
type Scene struct {
	mu    sync.RWMutex
	next  voxel.Handle
	objs  map[voxel.Handle]*Object
	byKey map[string][]voxel.Handle
	// Limit caps the number of live objects; zero means no limit.
	Limit int
}

func NewScene() *Scene {
	return &Scene{
		objs:  make(map[voxel.Handle]*Object, 256),
		byKey: make(map[string][]voxel.Handle, 256),
	}
}

func (s *Scene) CreateCube(pos voxel.Coord, c voxel.Color, key string) (voxel.Handle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Limit > 0 && len(s.objs) >= s.Limit {
		return 0, ErrSceneFull
	}
	s.next++
	h := s.next
	s.objs[h] = &Object{Handle: h, Pos: pos, Color: c.Clamp(), Key: key}
	s.byKey[key] = append(s.byKey[key], h)
	return h, nil
}

func (s *Scene) Destroy(h voxel.Handle) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.objs[h]
	if !ok {
		return fmt.Errorf("unknown handle %d", h)
	}
	delete(s.objs, h)
	hs := s.byKey[o.Key]
	for i, x := range hs {
		if x == h {
			hs = append(hs[:i], hs[i+1:]...)
			break
		}
	}
	if len(hs) == 0 {
		delete(s.byKey, o.Key)
	} else {
		s.byKey[o.Key] = hs
	}
	return nil
}

func (s *Scene) FindByKey(key string) []voxel.Handle {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]voxel.Handle(nil), s.byKey[key]...)
}

func (s *Scene) Color(h voxel.Handle) (voxel.Color, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if o, ok := s.objs[h]; ok {
		return o.Color, true
	}
	return voxel.Color{}, false
}

func (s *Scene) Pos(h voxel.Handle) (voxel.Coord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if o, ok := s.objs[h]; ok {
		return o.Pos, true
	}
	return voxel.Coord{}, false
}

func (s *Scene) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.objs)
}

// Objects returns a copy of every live object in handle order.
func (s *Scene) Objects() []Object {
	s.mu.RLock()
	out := make([]Object, 0, len(s.objs))
	for _, o := range s.objs {
		out = append(out, *o)
	}
	s.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].Handle < out[j].Handle })
	return out
}
