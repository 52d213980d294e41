// fonts.go - Caption rendering with the embedded Go Regular font.
// Uses golang.org/x/image/font for OpenType rendering.
package carrier

import (
	"fmt"
	"image"
	"image/color"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/xob0t/PixelVault/pkg/raster"
)

const captionMargin = 4

var (
	regular     *opentype.Font
	regularErr  error
	regularOnce sync.Once
)

// captionFont parses the embedded font once; *opentype.Font is safe to share.
func captionFont() (*opentype.Font, error) {
	regularOnce.Do(func() {
		regular, regularErr = opentype.Parse(goregular.TTF)
	})
	return regular, regularErr
}

// captionFace returns a face sized relative to the raster height.
func captionFace(height int) (font.Face, error) {
	f, err := captionFont()
	if err != nil {
		return nil, fmt.Errorf("failed to parse font: %w", err)
	}
	size := max(float64(height)/16, 8)

	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create font face: %w", err)
	}
	return face, nil
}

// drawCaption writes text in black along the bottom-left edge, truncating
// runes that would run past the right margin.
func drawCaption(r *raster.Raster, text string) error {
	face, err := captionFace(r.Height)
	if err != nil {
		return err
	}
	defer face.Close()

	maxWidth := r.Width - 2*captionMargin
	runes := []rune(text)
	for len(runes) > 0 && font.MeasureString(face, string(runes)).Ceil() > maxWidth {
		runes = runes[:len(runes)-1]
	}

	drawer := &font.Drawer{
		Dst:  r.Image(),
		Src:  image.NewUniform(color.NRGBA{A: 255}),
		Face: face,
		Dot:  fixed.P(captionMargin, r.Height-captionMargin),
	}
	drawer.DrawString(string(runes))
	return nil
}
