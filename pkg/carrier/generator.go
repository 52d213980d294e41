// Package carrier provides cover image generation for steganography.
//
// A carrier is an opaque white raster overlaid with randomly placed,
// randomly coloured square blocks. Its only required property is that it is
// a valid raster of the requested dimensions; the blocks are decoration.
package carrier

import (
	"math/rand/v2"

	"github.com/xob0t/PixelVault/pkg/raster"
)

const (
	DefaultWidth  = 200
	DefaultHeight = 200
	DefaultBlocks = 20
)

// BlockSizes are the possible block side lengths in pixels.
var BlockSizes = []int{10, 15, 20}

// Palette holds the block fill colours as RGB triples.
var Palette = [][3]uint8{
	{255, 0, 0},   // red
	{0, 255, 0},   // green
	{0, 0, 255},   // blue
	{255, 255, 0}, // yellow
	{255, 0, 255}, // magenta
	{0, 255, 255}, // cyan
	{255, 165, 0}, // orange
	{128, 0, 128}, // purple
}

// Rand is the randomness capability used for block placement.
// *math/rand/v2.Rand satisfies it.
type Rand interface {
	IntN(n int) int
}

// globalRand delegates to the math/rand/v2 top-level functions, which are
// safe for concurrent use.
type globalRand struct{}

func (globalRand) IntN(n int) int { return rand.IntN(n) }

// Config holds parameters for carrier generation.
type Config struct {
	Width      int    // Pixel width (default: 200)
	Height     int    // Pixel height (default: 200)
	Blocks     int    // Number of blocks (default: 20; negative disables)
	Background string // Hex "#rrggbb", "random", or "" for white
	Caption    string // Optional text drawn along the bottom edge
	Rand       Rand   // Randomness source; nil uses math/rand/v2
}

// withDefaults fills zero fields.
func (c Config) withDefaults() Config {
	if c.Width <= 0 {
		c.Width = DefaultWidth
	}
	if c.Height <= 0 {
		c.Height = DefaultHeight
	}
	if c.Blocks == 0 {
		c.Blocks = DefaultBlocks
	}
	if c.Rand == nil {
		c.Rand = globalRand{}
	}
	return c
}

// Generate creates a carrier raster. It fails on dimensions too large to
// allocate, an unparsable Background or a caption font error.
func Generate(cfg Config) (*raster.Raster, error) {
	cfg = cfg.withDefaults()
	if err := raster.CheckSize(cfg.Width, cfg.Height); err != nil {
		return nil, err
	}

	bg, err := parseBackground(cfg.Background, cfg.Rand)
	if err != nil {
		return nil, err
	}

	r := raster.New(cfg.Width, cfg.Height)
	r.Fill(bg[0], bg[1], bg[2], 255)

	for i := 0; i < cfg.Blocks; i++ {
		drawBlock(r, cfg.Rand)
	}

	if cfg.Caption != "" {
		if err := drawCaption(r, cfg.Caption); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// drawBlock paints one randomly sized, placed and coloured block.
// Blocks larger than the raster start at the edge and are clipped.
func drawBlock(r *raster.Raster, rng Rand) {
	side := BlockSizes[rng.IntN(len(BlockSizes))]
	x := randomOrigin(rng, r.Width-side)
	y := randomOrigin(rng, r.Height-side)
	c := Palette[rng.IntN(len(Palette))]

	for row := y; row < y+side && row < r.Height; row++ {
		for col := x; col < x+side && col < r.Width; col++ {
			r.SetPixel(row, col, c[0], c[1], c[2], 255)
		}
	}
}

// randomOrigin picks a coordinate uniformly from [0, maxPos].
func randomOrigin(rng Rand, maxPos int) int {
	if maxPos <= 0 {
		return 0
	}
	return rng.IntN(maxPos + 1)
}
