package voxel

import (
	"fmt"
	"strconv"
)

// Coord addresses one unit cell of the world. It is comparable and is used
// directly as a map key.
type Coord struct {
	X, Y, Z int
}

// C is shorthand for Coord{x, y, z}.
func C(x, y, z int) Coord { return Coord{X: x, Y: y, Z: z} }

// Key returns the tag the renderer stores on the object at c ("x,y,z").
func (c Coord) Key() string {
	return strconv.Itoa(c.X) + "," + strconv.Itoa(c.Y) + "," + strconv.Itoa(c.Z)
}

func (c Coord) String() string { return "(" + c.Key() + ")" }

// Column returns c moved to height z.
func (c Coord) Column(z int) Coord { return Coord{X: c.X, Y: c.Y, Z: z} }

func (c Coord) Above() Coord { return c.Column(c.Z + 1) }
func (c Coord) Below() Coord { return c.Column(c.Z - 1) }

// Color is an RGBA color with channels in [0,1].
type Color struct {
	R, G, B, A float32
}

// RGBA returns the color as an array, the layout glTF vertex colors use.
func (c Color) RGBA() [4]float32 { return [4]float32{c.R, c.G, c.B, c.A} }

// Clamp returns c with every channel clamped into [0,1].
func (c Color) Clamp() Color {
	return Color{R: clamp01(c.R), G: clamp01(c.G), B: clamp01(c.B), A: clamp01(c.A)}
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// ParseHexColor parses "#rrggbb" or "#rrggbbaa".
func ParseHexColor(hex string) (Color, error) {
	if len(hex) == 0 || hex[0] != '#' {
		return Color{}, fmt.Errorf("invalid hex color %q", hex)
	}
	h := hex[1:]
	if len(h) != 6 && len(h) != 8 {
		return Color{}, fmt.Errorf("invalid hex color length %q", hex)
	}
	var ch [4]uint64
	ch[3] = 255
	for i := 0; i < len(h)/2; i++ {
		v, err := strconv.ParseUint(h[i*2:i*2+2], 16, 8)
		if err != nil {
			return Color{}, fmt.Errorf("invalid hex color %q: %w", hex, err)
		}
		ch[i] = v
	}
	return Color{
		R: float32(ch[0]) / 255,
		G: float32(ch[1]) / 255,
		B: float32(ch[2]) / 255,
		A: float32(ch[3]) / 255,
	}, nil
}

// Palette maps height bands to colors. Index z is the color for blocks at z.
type Palette []Color

// DefaultPalette: dark blue, green, red, brown.
var DefaultPalette = Palette{
	{R: 0.2, G: 0.2, B: 0.35, A: 1},
	{R: 0.2, G: 0.5, B: 0.2, A: 1},
	{R: 0.7, G: 0.2, B: 0.2, A: 1},
	{R: 0.5, G: 0.3, B: 0.0, A: 1},
}

// At returns the color of band z, clamped to the palette's ends.
// The palette must not be empty.
func (p Palette) At(z int) Color {
	if z < 0 {
		return p[0]
	}
	if z >= len(p) {
		return p[len(p)-1]
	}
	return p[z]
}

// Handle identifies an object owned by the renderer. Zero is never valid.
type Handle uint64

// Block is one occupied cell.
type Block struct {
	Pos    Coord
	Color  Color
	Handle Handle
}
