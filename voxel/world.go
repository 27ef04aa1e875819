package voxel

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"sync"
)

// DefaultMaxColumnHeight is the highest z FindHighestEmpty inspects.
const DefaultMaxColumnHeight = 100

// World is a sparse set of unit blocks keyed by coordinate. Every block has a
// renderer object the World created and is responsible for destroying.
//
// All methods are safe for concurrent use; each one holds the world lock for
// its whole duration.
type World struct {
	mu        sync.Mutex
	blocks    map[Coord]Block
	renderer  Renderer
	palette   Palette
	maxHeight int
	log       *slog.Logger
}

type Option func(*World)

// WithPalette replaces DefaultPalette.
func WithPalette(p Palette) Option {
	return func(w *World) { w.palette = append(Palette(nil), p...) }
}

// WithMaxColumnHeight sets the search limit used by the gravity operations.
func WithMaxColumnHeight(n int) Option {
	return func(w *World) { w.maxHeight = n }
}

func WithLogger(l *slog.Logger) Option {
	return func(w *World) { w.log = l }
}

// New returns an empty world drawing through r.
func New(r Renderer, opts ...Option) (*World, error) {
	w := &World{
		blocks:    make(map[Coord]Block, 256),
		renderer:  r,
		palette:   DefaultPalette,
		maxHeight: DefaultMaxColumnHeight,
		log:       slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, o := range opts {
		o(w)
	}
	if r == nil {
		return nil, fmt.Errorf("nil renderer: %w", ErrRenderingUnavailable)
	}
	if len(w.palette) == 0 {
		return nil, ErrEmptyPalette
	}
	if w.maxHeight < 0 {
		return nil, fmt.Errorf("negative max column height %d", w.maxHeight)
	}
	return w, nil
}

func (w *World) Palette() Palette { return append(Palette(nil), w.palette...) }

func (w *World) MaxColumnHeight() int { return w.maxHeight }

// ColorForHeight returns the palette color for blocks at height z.
func (w *World) ColorForHeight(z int) Color { return w.palette.At(z) }

// Clear destroys every block. The map is emptied even if the renderer fails;
// the first failure is returned.
func (w *World) Clear() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.clear()
}

func (w *World) clear() error {
	var first error
	for pos, b := range w.blocks {
		if err := w.renderer.Destroy(b.Handle); err != nil && first == nil {
			first = fmt.Errorf("destroy block at %v: %w: %v", pos, ErrRenderingUnavailable, err)
		}
	}
	if n := len(w.blocks); n > 0 {
		w.log.Debug("world cleared", "blocks", n)
	}
	w.blocks = make(map[Coord]Block, 256)
	return first
}

// AddBlock places a block at pos colored by its height band.
func (w *World) AddBlock(pos Coord) (Handle, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.add(pos, w.palette.At(pos.Z))
}

// AddBlockColor places a block at pos with color c, replacing any block
// already there. The renderer object is created before the world is touched,
// so a failed creation leaves the world unchanged.
func (w *World) AddBlockColor(pos Coord, c Color) (Handle, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.add(pos, c)
}

func (w *World) add(pos Coord, c Color) (Handle, error) {
	h, err := w.renderer.CreateCube(pos, c, pos.Key())
	if err != nil {
		return 0, fmt.Errorf("create block at %v: %w: %v", pos, ErrRenderingUnavailable, err)
	}
	if old, ok := w.blocks[pos]; ok {
		if err := w.renderer.Destroy(old.Handle); err != nil {
			// keep the old block; drop the one just created
			_ = w.renderer.Destroy(h)
			return 0, fmt.Errorf("replace block at %v: %w: %v", pos, ErrRenderingUnavailable, err)
		}
		w.log.Debug("block replaced", "pos", pos)
	}
	w.blocks[pos] = Block{Pos: pos, Color: c, Handle: h}
	w.log.Debug("block added", "pos", pos)
	return h, nil
}

// Replace clears the world and adds blocks with their own colors, holding the
// lock throughout so no caller observes a partial world. Handles in blocks are
// ignored. On failure the world is left empty.
func (w *World) Replace(blocks []Block) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.clear(); err != nil {
		return err
	}
	for _, b := range blocks {
		if _, err := w.add(b.Pos, b.Color); err != nil {
			if cerr := w.clear(); cerr != nil {
				return errors.Join(err, cerr)
			}
			return err
		}
	}
	w.log.Debug("world replaced", "blocks", len(w.blocks))
	return nil
}

// IsEmpty reports whether no block exists at pos.
func (w *World) IsEmpty(pos Coord) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	_, ok := w.blocks[pos]
	return !ok
}

func (w *World) Block(pos Coord) (Block, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	b, ok := w.blocks[pos]
	return b, ok
}

func (w *World) Len() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.blocks)
}

// Blocks returns every block ordered by z, then y, then x.
func (w *World) Blocks() []Block {
	w.mu.Lock()
	out := make([]Block, 0, len(w.blocks))
	for _, b := range w.blocks {
		out = append(out, b)
	}
	w.mu.Unlock()
	sort.Slice(out, func(i, j int) bool { return Less(out[i].Pos, out[j].Pos) })
	return out
}

// Less orders coordinates by z, then y, then x.
func Less(a, b Coord) bool {
	if a.Z != b.Z {
		return a.Z < b.Z
	}
	if a.Y != b.Y {
		return a.Y < b.Y
	}
	return a.X < b.X
}

// DelBlock removes the block at pos along with any other renderer object
// still tagged with pos. It returns how many objects were destroyed.
func (w *World) DelBlock(pos Coord) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.del(pos)
}

func (w *World) del(pos Coord) (int, error) {
	n := 0
	var first error
	b, owned := w.blocks[pos]
	if owned {
		if err := w.renderer.Destroy(b.Handle); err != nil {
			// the block keeps its handle; nothing else is touched
			return 0, fmt.Errorf("destroy block at %v: %w: %v", pos, ErrRenderingUnavailable, err)
		}
		delete(w.blocks, pos)
		n++
	}
	for _, h := range w.renderer.FindByKey(pos.Key()) {
		if owned && h == b.Handle {
			continue
		}
		if err := w.renderer.Destroy(h); err != nil {
			if first == nil {
				first = fmt.Errorf("destroy stray object at %v: %w: %v", pos, ErrRenderingUnavailable, err)
			}
			continue
		}
		n++
	}
	if n > 0 {
		w.log.Debug("block removed", "pos", pos, "objects", n)
	}
	return n, first
}
