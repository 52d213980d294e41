package stego

import (
	"bytes"
	"io"

	"github.com/xob0t/PixelVault/pkg/raster"
)

// ReadBits collects the LSB of every sample of r in scan order.
func ReadBits(r *raster.Raster) Bits {
	bits := make(Bits, r.Len())
	for i, v := range r.Pix {
		bits[i] = v % 2
	}
	return bits
}

// ExtractBits decodes the bits strictly before the first occurrence of
// the terminator. The search ignores byte alignment. It returns KindNotFound
// when no terminator is present, so an empty payload ("", nil) stays
// distinguishable from no payload at all.
func ExtractBits(bits Bits) (string, error) {
	end := bytes.Index(bits, terminator)
	if end < 0 {
		return "", ErrNotFound
	}
	return BitsToText(bits[:end]), nil
}

// ExtractRaster recovers the payload hidden in r.
func ExtractRaster(r *raster.Raster) (string, error) {
	return ExtractBits(ReadBits(r))
}

// ExtractFrom decodes an image from rd and recovers its payload.
// Undecodable input, or an image above raster.DefaultMaxPixels, is
// reported as KindDecode.
func ExtractFrom(rd io.Reader) (string, error) {
	return ExtractFromLimit(rd, raster.DefaultMaxPixels)
}

// ExtractFromLimit is ExtractFrom with an explicit pixel limit.
func ExtractFromLimit(rd io.Reader, maxPixels int) (string, error) {
	r, _, err := raster.DecodeLimit(rd, maxPixels)
	if err != nil {
		return "", wrapError(KindDecode, "stego: decode image", err)
	}
	return ExtractRaster(r)
}

// Extract recovers the payload from encoded image bytes.
func Extract(imageBytes []byte) (string, error) {
	return ExtractFrom(bytes.NewReader(imageBytes))
}
