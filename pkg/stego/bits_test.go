package stego

import (
	"errors"
	"testing"

	"github.com/xob0t/PixelVault/pkg/raster"
)

func TestTextToBits(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"empty", "", ""},
		{"A", "A", "01000001"},
		{"Ab1!", "Ab1!", "01000001011000100011000100100001"},
		{"nul", "\x00", "00000000"},
		{"latin1", "é", "11101001"},
		{"ff", "ÿ", "11111111"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bits, err := TextToBits(tt.text)
			if err != nil {
				t.Fatalf("TextToBits: %v", err)
			}
			if got := bits.String(); got != tt.want {
				t.Errorf("TextToBits(%q) = %s, want %s", tt.text, got, tt.want)
			}
			if len(bits) != 8*len([]rune(tt.text)) {
				t.Errorf("len = %d, want 8 per character", len(bits))
			}
		})
	}
}

func TestTextToBits_RejectsWideRunes(t *testing.T) {
	_, err := TextToBits("ab€c")
	if err == nil {
		t.Fatalf("expected error")
	}
	if !errors.Is(err, ErrInvalidChar) {
		t.Fatalf("expected ErrInvalidChar, got %v", err)
	}
	var e *Error
	if !errors.As(err, &e) {
		t.Fatalf("expected *Error, got %T", err)
	}
	if e.Rune != '€' || e.Index != 2 {
		t.Errorf("Rune = %q Index = %d, want '€' 2", e.Rune, e.Index)
	}
}

func TestBitsToText(t *testing.T) {
	tests := []struct {
		name string
		bits string
		want string
	}{
		{"empty", "", ""},
		{"A", "01000001", "A"},
		{"partial only", "0100000", ""},
		{"trailing partial discarded", "01000001 0110", "A"},
		{"latin1", "11101001", "é"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := BitsToText(ParseBits(tt.bits)); got != tt.want {
				t.Errorf("BitsToText(%s) = %q, want %q", tt.bits, got, tt.want)
			}
		})
	}
}

func TestBitsRoundTrip_AllSingleByteValues(t *testing.T) {
	runes := make([]rune, 256)
	for i := range runes {
		runes[i] = rune(i)
	}
	text := string(runes)
	bits, err := TextToBits(text)
	if err != nil {
		t.Fatalf("TextToBits: %v", err)
	}
	if got := BitsToText(bits); got != text {
		t.Fatalf("round trip mismatch")
	}
}

func TestTerminator(t *testing.T) {
	if got := Terminator().String(); got != "1111111111111110" {
		t.Fatalf("Terminator = %s", got)
	}
	if len(Terminator()) != TerminatorLen {
		t.Fatalf("len(Terminator()) = %d, want %d", len(Terminator()), TerminatorLen)
	}
}

func TestTerminator_ReturnsCopy(t *testing.T) {
	mark := Terminator()
	mark[15] = 1

	if got := Terminator().String(); got != "1111111111111110" {
		t.Fatalf("caller mutation leaked: Terminator = %s", got)
	}
	r := raster.New(4, 4)
	if err := EmbedText(r, "ok"); err != nil {
		t.Fatalf("EmbedText: %v", err)
	}
	if got, err := ExtractRaster(r); err != nil || got != "ok" {
		t.Fatalf("ExtractRaster = %q, %v; want ok", got, err)
	}
}
