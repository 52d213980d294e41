// Package stego hides a short text payload in the least significant bits of
// a raster and recovers it again.
//
// Bits are written one per sample in scan order (row, column, channel),
// followed by the terminator. Extraction reads every sample's LSB in the same
// order and decodes the bits before the first terminator occurrence.
//
// The scheme is obfuscation, not encryption.
package stego

import (
	"bytes"
	"io"

	"github.com/xob0t/PixelVault/pkg/carrier"
	"github.com/xob0t/PixelVault/pkg/raster"
)

// Capacity returns the number of bits a width × height carrier holds.
func Capacity(width, height int) int {
	return width * height * raster.Channels
}

// MaxPayload returns the longest payload, in characters, that fits a
// width × height carrier together with the terminator.
func MaxPayload(width, height int) int {
	return max((Capacity(width, height)-TerminatorLen)/8, 0)
}

// EmbedBits replaces the LSB of the first len(bits) samples of r, in scan
// order, with bits. Remaining samples are left untouched. It fails with
// KindCapacity, without modifying r, when bits do not fit.
func EmbedBits(r *raster.Raster, bits Bits) error {
	if len(bits) > r.Len() {
		return capacityError(len(bits), r.Len())
	}
	for i, bit := range bits {
		old := int(r.Pix[i])
		v := (old - old%2) + int(bit&1)
		r.Pix[i] = uint8(min(max(v, 0), 255))
	}
	return nil
}

// EmbedText embeds text followed by the terminator into r.
func EmbedText(r *raster.Raster, text string) error {
	bits, err := TextToBits(text)
	if err != nil {
		return err
	}
	return EmbedBits(r, append(bits, terminator...))
}

// EmbedRaster generates a fresh carrier from cfg and embeds password in it.
func EmbedRaster(password string, cfg carrier.Config) (*raster.Raster, error) {
	// Validate the payload before spending time on the carrier.
	bits, err := TextToBits(password)
	if err != nil {
		return nil, err
	}
	r, err := carrier.Generate(cfg)
	if err != nil {
		return nil, err
	}
	if err := EmbedBits(r, append(bits, terminator...)); err != nil {
		return nil, err
	}
	return r, nil
}

// EmbedTo generates a carrier, embeds password and writes the result to w
// in format f. Container failures are reported as KindEncode.
func EmbedTo(w io.Writer, password string, cfg carrier.Config, f raster.Format) error {
	r, err := EmbedRaster(password, cfg)
	if err != nil {
		return err
	}
	if err := raster.Encode(w, r, f); err != nil {
		return wrapError(KindEncode, "stego: write image", err)
	}
	return nil
}

// Embed generates a carrier, embeds password and returns PNG bytes.
func Embed(password string, cfg carrier.Config) ([]byte, error) {
	var buf bytes.Buffer
	if err := EmbedTo(&buf, password, cfg, raster.PNG); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
