// Package raster provides the owned sample buffer shared by the carrier
// generator and the steganographic codec.
//
// A Raster is a height × width × Channels array of 8-bit samples stored
// flat in scan order: row, then column, then channel. The flat index of
// sample (row, col, ch) is (row*Width+col)*Channels + ch, which is also the
// order in which bits are embedded and extracted.
package raster

import (
	"errors"
	"fmt"
	"image"
	"math"

	"golang.org/x/image/draw"
)

// Channels is the number of samples per pixel (red, green, blue, alpha).
const Channels = 4

// Raster is an explicit RGBA sample buffer. Samples are not alpha
// premultiplied.
type Raster struct {
	Width  int
	Height int
	Pix    []uint8 // len = Width*Height*Channels
}

// ErrTooLarge reports dimensions whose sample count does not fit an int or
// exceeds a caller's pixel limit.
var ErrTooLarge = errors.New("raster: image too large")

// CheckSize validates width × height for allocation: both must be positive
// and width*height*Channels must not overflow int.
func CheckSize(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("raster: dimensions %dx%d must be positive", width, height)
	}
	if width > math.MaxInt/Channels/height {
		return fmt.Errorf("%w: %dx%d overflows the sample count", ErrTooLarge, width, height)
	}
	return nil
}

// New allocates a zeroed raster. It panics on negative dimensions.
func New(width, height int) *Raster {
	if width < 0 || height < 0 {
		panic(fmt.Sprintf("raster: negative dimensions %dx%d", width, height))
	}
	return &Raster{
		Width:  width,
		Height: height,
		Pix:    make([]uint8, width*height*Channels),
	}
}

// Len returns the total sample count, which is also the bit capacity.
func (r *Raster) Len() int {
	return len(r.Pix)
}

// Offset returns the flat index of sample (row, col, ch).
func (r *Raster) Offset(row, col, ch int) int {
	return (row*r.Width+col)*Channels + ch
}

// At returns sample (row, col, ch).
func (r *Raster) At(row, col, ch int) uint8 {
	return r.Pix[r.Offset(row, col, ch)]
}

// Set stores sample (row, col, ch).
func (r *Raster) Set(row, col, ch int, v uint8) {
	r.Pix[r.Offset(row, col, ch)] = v
}

// SetPixel writes all four channels of pixel (row, col).
func (r *Raster) SetPixel(row, col int, red, green, blue, alpha uint8) {
	i := r.Offset(row, col, 0)
	r.Pix[i+0] = red
	r.Pix[i+1] = green
	r.Pix[i+2] = blue
	r.Pix[i+3] = alpha
}

// Fill sets every pixel to the given colour.
func (r *Raster) Fill(red, green, blue, alpha uint8) {
	for i := 0; i < len(r.Pix); i += Channels {
		r.Pix[i+0] = red
		r.Pix[i+1] = green
		r.Pix[i+2] = blue
		r.Pix[i+3] = alpha
	}
}

// Clone returns an independent copy.
func (r *Raster) Clone() *Raster {
	c := &Raster{Width: r.Width, Height: r.Height, Pix: make([]uint8, len(r.Pix))}
	copy(c.Pix, r.Pix)
	return c
}

// Image returns an *image.NRGBA view sharing r's buffer.
// NRGBA keeps samples unpremultiplied, so alpha LSBs never disturb colour LSBs.
func (r *Raster) Image() *image.NRGBA {
	return &image.NRGBA{
		Pix:    r.Pix,
		Stride: r.Width * Channels,
		Rect:   image.Rect(0, 0, r.Width, r.Height),
	}
}

// FromImage copies img into a new Raster. *image.NRGBA sources are copied
// sample for sample; anything else is converted through the NRGBA colour
// model.
func FromImage(img image.Image) *Raster {
	b := img.Bounds()
	r := New(b.Dx(), b.Dy())

	if src, ok := img.(*image.NRGBA); ok {
		rowLen := b.Dx() * Channels
		for y := 0; y < b.Dy(); y++ {
			so := src.PixOffset(b.Min.X, b.Min.Y+y)
			copy(r.Pix[y*rowLen:(y+1)*rowLen], src.Pix[so:so+rowLen])
		}
		return r
	}

	draw.Draw(r.Image(), r.Image().Bounds(), img, b.Min, draw.Src)
	return r
}
