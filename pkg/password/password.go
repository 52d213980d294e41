// Package password generates random passwords for embedding.
package password

import (
	"crypto/rand"
	"fmt"
	"io"
	"math/big"
	"strconv"
	"strings"
)

const (
	DefaultLength = 16
	MinLength     = 1
	MaxLength     = 100
)

// Charset is ASCII letters, digits and punctuation.
const Charset = "abcdefghijklmnopqrstuvwxyz" +
	"ABCDEFGHIJKLMNOPQRSTUVWXYZ" +
	"0123456789" +
	"!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"

// Clamp limits length to [MinLength, MaxLength].
func Clamp(length int) int {
	return min(max(length, MinLength), MaxLength)
}

// ParseLength parses a requested length, falling back to DefaultLength on
// blank or malformed input. The result is clamped.
func ParseLength(s string) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return DefaultLength
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return DefaultLength
	}
	return Clamp(n)
}

// Generate returns a password of Clamp(length) characters drawn uniformly
// from Charset using entropy from src. A nil src uses crypto/rand.Reader.
func Generate(src io.Reader, length int) (string, error) {
	if src == nil {
		src = rand.Reader
	}
	length = Clamp(length)
	n := big.NewInt(int64(len(Charset)))

	b := make([]byte, length)
	for i := range b {
		idx, err := rand.Int(src, n)
		if err != nil {
			return "", fmt.Errorf("read entropy: %w", err)
		}
		b[i] = Charset[idx.Int64()]
	}
	return string(b), nil
}
