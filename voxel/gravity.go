package voxel

// Gravity: blocks rest on a floor at z=0 and stack without gaps. Principal
// mode edits resolve the requested height to the column's first empty cell;
// only x and y of the request are kept.

// FindHighestEmpty returns the lowest empty cell of pos's column, scanning up
// from z=0. If every cell up to MaxColumnHeight is occupied it returns the
// column's ground cell together with ErrColumnFull.
func (w *World) FindHighestEmpty(pos Coord) (Coord, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.findHighestEmpty(pos)
}

func (w *World) findHighestEmpty(pos Coord) (Coord, error) {
	for z := 0; z <= w.maxHeight; z++ {
		c := pos.Column(z)
		if _, ok := w.blocks[c]; !ok {
			return c, nil
		}
	}
	w.log.Warn("column height limit reached", "x", pos.X, "y", pos.Y, "limit", w.maxHeight)
	return pos.Column(0), ErrColumnFull
}

// BuildBlock settles a block into pos's column. The placement is made only if
// the settled cell is at most one above pos; otherwise it is dropped and
// BuildBlock returns false with no error.
func (w *World) BuildBlock(pos Coord) (bool, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	top, err := w.findHighestEmpty(pos)
	if err != nil {
		return false, err
	}
	if top.Z > pos.Z+1 {
		w.log.Debug("placement rejected", "pos", pos, "settled", top)
		return false, nil
	}
	if _, err := w.add(top, w.palette.At(top.Z)); err != nil {
		return false, err
	}
	return true, nil
}

// DelBlockFrom removes the topmost block of pos's column, whatever pos.Z is.
// It returns false if the column is empty.
func (w *World) DelBlockFrom(pos Coord) (bool, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	top, err := w.findHighestEmpty(pos)
	switch {
	case err == ErrColumnFull:
		top = pos.Column(w.maxHeight + 1)
	case err != nil:
		return false, err
	}
	if top.Z == 0 {
		return false, nil
	}
	n, err := w.del(top.Below())
	return n > 0, err
}
