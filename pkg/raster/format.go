// format.go - Container encoding and decoding for rasters.
package raster

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"io"
	"strings"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Format names a lossless output container.
type Format string

const (
	PNG  Format = "png"
	TIFF Format = "tiff"
)

// FormatFromExt maps a file extension to an output format:
//   - ".png" → PNG
//   - ".tif", ".tiff" → TIFF
func FormatFromExt(ext string) (Format, error) {
	switch strings.ToLower(ext) {
	case ".png":
		return PNG, nil
	case ".tif", ".tiff":
		return TIFF, nil
	default:
		return "", fmt.Errorf("unsupported format %q: use .png or .tiff", ext)
	}
}

// ContentType returns the MIME type for f.
func (f Format) ContentType() string {
	if f == TIFF {
		return "image/tiff"
	}
	return "image/png"
}

// Encode writes r to w in the given format. Both formats store 8-bit
// unassociated RGBA, so every sample survives a round trip unchanged.
func Encode(w io.Writer, r *Raster, f Format) error {
	switch f {
	case PNG, "":
		if err := png.Encode(w, r.Image()); err != nil {
			return fmt.Errorf("encode PNG: %w", err)
		}
	case TIFF:
		if err := tiff.Encode(w, r.Image(), &tiff.Options{Compression: tiff.Deflate}); err != nil {
			return fmt.Errorf("encode TIFF: %w", err)
		}
	default:
		return fmt.Errorf("unsupported format %q", f)
	}
	return nil
}

// EncodeBytes is Encode into a fresh buffer.
func EncodeBytes(r *Raster, f Format) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, r, f); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DefaultMaxPixels bounds Decode: 64 Mi pixels, 256 MiB of samples.
const DefaultMaxPixels = 64 << 20

// Decode reads any registered image format (PNG, TIFF, BMP, WebP, GIF,
// JPEG) and returns it as a Raster together with the format name. Images
// larger than DefaultMaxPixels are rejected.
func Decode(rd io.Reader) (*Raster, string, error) {
	return DecodeLimit(rd, DefaultMaxPixels)
}

// DecodeLimit is Decode with an explicit pixel limit. The header is read
// first, so an oversized image fails before its pixels are allocated.
func DecodeLimit(rd io.Reader, maxPixels int) (*Raster, string, error) {
	var head bytes.Buffer
	cfg, _, err := image.DecodeConfig(io.TeeReader(rd, &head))
	if err != nil {
		return nil, "", err
	}
	if err := CheckSize(cfg.Width, cfg.Height); err != nil {
		return nil, "", err
	}
	if cfg.Width > maxPixels/cfg.Height {
		return nil, "", fmt.Errorf("%w: %dx%d exceeds %d pixels", ErrTooLarge, cfg.Width, cfg.Height, maxPixels)
	}

	img, name, err := image.Decode(io.MultiReader(&head, rd))
	if err != nil {
		return nil, "", err
	}
	return FromImage(img), name, nil
}
