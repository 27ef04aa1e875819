package voxel

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"strings"
)

// LandResult summarizes a LoadLand call.
type LandResult struct {
	// Width is the number of columns in the last row read.
	Width int
	// Height is the number of rows read.
	Height int
	Blocks int
	// Diagnostics lists tokens that were skipped.
	Diagnostics []*ParseError
}

// LoadLand clears the world and fills it from a row-based heightmap. Each
// line is a row y (top to bottom) of space-separated heights; a height h at
// column x fills (x, y, 0) through (x, y, h).
//
// Tokens that are not integers in [0, MaxColumnHeight] are skipped without
// advancing x and reported in Diagnostics. A read error or a renderer
// failure aborts the load and leaves the world empty.
func (w *World) LoadLand(r io.Reader) (LandResult, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.clear(); err != nil {
		return LandResult{}, err
	}

	var res LandResult
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	y := 0
	for sc.Scan() {
		x := 0
		for col, tok := range strings.Fields(sc.Text()) {
			h, err := strconv.Atoi(tok)
			switch {
			case err != nil:
			case h < 0:
				err = errors.New("negative height")
			case h > w.maxHeight:
				err = fmt.Errorf("height above column limit %d", w.maxHeight)
			}
			if err != nil {
				pe := &ParseError{Line: y + 1, Column: col + 1, Token: tok, Err: err}
				w.log.Warn("land token skipped", "line", pe.Line, "column", pe.Column, "token", tok)
				res.Diagnostics = append(res.Diagnostics, pe)
				continue
			}
			for z := 0; z <= h; z++ {
				pos := Coord{X: x, Y: y, Z: z}
				if _, err := w.add(pos, w.palette.At(z)); err != nil {
					_ = w.clear()
					return LandResult{Diagnostics: res.Diagnostics}, err
				}
				res.Blocks++
			}
			x++
		}
		res.Width = x
		y++
	}
	if err := sc.Err(); err != nil {
		_ = w.clear()
		return LandResult{Diagnostics: res.Diagnostics}, fmt.Errorf("read land: %w: %v", ErrIO, err)
	}
	res.Height = y
	w.log.Info("land loaded", "width", res.Width, "height", res.Height, "blocks", res.Blocks, "skipped", len(res.Diagnostics))
	return res, nil
}

// LoadLandFile is LoadLand reading from path. A missing file clears the world
// and returns ErrNotFound.
func (w *World) LoadLandFile(path string) (LandResult, error) {
	f, err := os.Open(path)
	if err != nil {
		if cerr := w.Clear(); cerr != nil {
			return LandResult{}, cerr
		}
		if errors.Is(err, fs.ErrNotExist) {
			return LandResult{}, fmt.Errorf("land %s: %w", path, ErrNotFound)
		}
		return LandResult{}, fmt.Errorf("land %s: %w: %v", path, ErrIO, err)
	}
	defer f.Close()
	return w.LoadLand(f)
}
