// Package terrain generates text heightmaps that voxel.World.LoadLand reads.
package terrain

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/aquilax/go-perlin"
)

// Options controls Generate. Zero fields take the defaults below.
type Options struct {
	Width     int
	Depth     int
	MaxHeight int
	Seed      int64
	// Scale is how many cells one noise period spans.
	Scale float64
}

const (
	defaultMaxHeight = 3
	defaultScale     = 8.0
)

// Generate returns Depth rows of Width column heights in [0, MaxHeight].
// The same options always produce the same rows.
func Generate(o Options) ([][]int, error) {
	if o.Width <= 0 || o.Depth <= 0 {
		return nil, fmt.Errorf("invalid size %dx%d", o.Width, o.Depth)
	}
	if o.MaxHeight <= 0 {
		o.MaxHeight = defaultMaxHeight
	}
	if o.Scale <= 0 {
		o.Scale = defaultScale
	}
	alpha := 2.0  // smoothness
	beta := 2.0   // frequency
	n := int32(3) // octaves
	p := perlin.NewPerlin(alpha, beta, n, o.Seed)

	rows := make([][]int, o.Depth)
	for y := range rows {
		rows[y] = make([]int, o.Width)
		for x := range rows[y] {
			v := (p.Noise2D(float64(x)/o.Scale, float64(y)/o.Scale) + 1) / 2
			h := int(v * float64(o.MaxHeight+1))
			if h < 0 {
				h = 0
			}
			if h > o.MaxHeight {
				h = o.MaxHeight
			}
			rows[y][x] = h
		}
	}
	return rows, nil
}

// WriteLand writes rows in the space-separated heightmap format.
func WriteLand(w io.Writer, rows [][]int) error {
	bw := bufio.NewWriter(w)
	for _, row := range rows {
		for i, h := range row {
			if i > 0 {
				bw.WriteByte(' ')
			}
			bw.WriteString(strconv.Itoa(h))
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

// RunGenerateLand writes a generated heightmap to outPath.
func RunGenerateLand(o Options, outPath string) error {
	rows, err := Generate(o)
	if err != nil {
		return err
	}
	f, err := os.Create(outPath)
	if err != nil {
		return err
	}
	if err := WriteLand(f, rows); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", outPath, err)
	}
	return f.Close()
}
