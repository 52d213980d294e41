// color.go - Background colour parsing.
package carrier

import (
	"fmt"
	"strconv"
	"strings"
)

var white = [3]uint8{255, 255, 255}

// ParseColor parses "#rrggbb" or "random". Random colours are drawn from
// rng; nil uses math/rand/v2.
func ParseColor(s string, rng Rand) (r, g, b uint8, err error) {
	if s == "random" {
		if rng == nil {
			rng = globalRand{}
		}
		return uint8(rng.IntN(256)), uint8(rng.IntN(256)), uint8(rng.IntN(256)), nil
	}

	hex, ok := strings.CutPrefix(s, "#")
	if !ok || len(hex) != 6 {
		return 0, 0, 0, fmt.Errorf("invalid color %q: want #rrggbb or random", s)
	}
	v, err := strconv.ParseUint(hex, 16, 24)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return uint8(v >> 16), uint8(v >> 8), uint8(v), nil
}

// parseBackground resolves Config.Background; empty means white.
func parseBackground(s string, rng Rand) ([3]uint8, error) {
	if s == "" {
		return white, nil
	}
	r, g, b, err := ParseColor(s, rng)
	if err != nil {
		return [3]uint8{}, fmt.Errorf("background: %w", err)
	}
	return [3]uint8{r, g, b}, nil
}
