package stego

import (
	"slices"
	"strings"
)

// Bits is an ordered bit sequence, one bit (0 or 1) per element.
type Bits []uint8

// TerminatorLen is the length in bits of the end-of-payload marker.
const TerminatorLen = 16

var terminator = Bits{1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 0}

// Terminator returns a copy of the end-of-payload marker 1111111111111110.
func Terminator() Bits { return slices.Clone(terminator) }

// TextToBits encodes each character of text as its 8-bit code point,
// most significant bit first. Characters above U+00FF are rejected.
func TextToBits(text string) (Bits, error) {
	bits := make(Bits, 0, 8*len(text))
	i := 0
	for _, r := range text {
		if r < 0 || r > 0xFF {
			return nil, encodingError(r, i)
		}
		for shift := 7; shift >= 0; shift-- {
			bits = append(bits, uint8(r>>shift)&1)
		}
		i++
	}
	return bits, nil
}

// BitsToText decodes consecutive 8-bit MSB-first chunks into characters
// U+0000..U+00FF. A trailing partial chunk is discarded.
func BitsToText(bits Bits) string {
	var b strings.Builder
	for i := 0; i+8 <= len(bits); i += 8 {
		var c rune
		for _, bit := range bits[i : i+8] {
			c = c<<1 | rune(bit&1)
		}
		b.WriteRune(c)
	}
	return b.String()
}

// String renders bits as '0'/'1' characters.
func (b Bits) String() string {
	var s strings.Builder
	s.Grow(len(b))
	for _, bit := range b {
		s.WriteByte('0' + bit&1)
	}
	return s.String()
}

// ParseBits parses a string of '0' and '1' characters; any other
// character is skipped, so "0100 0001" is accepted.
func ParseBits(s string) Bits {
	bits := make(Bits, 0, len(s))
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '0':
			bits = append(bits, 0)
		case '1':
			bits = append(bits, 1)
		}
	}
	return bits
}
