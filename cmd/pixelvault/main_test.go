package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xob0t/PixelVault/pkg/raster"
	"github.com/xob0t/PixelVault/pkg/stego"
)

func TestEmbedExtract(t *testing.T) {
	for _, ext := range []string{".png", ".tiff"} {
		t.Run(ext, func(t *testing.T) {
			out := filepath.Join(t.TempDir(), "vault"+ext)
			var stdout bytes.Buffer
			err := runEmbed([]string{"-password", "hunter2", "-o", out, "-w", "32", "-h", "24", "-seed", "7"}, &stdout)
			if err != nil {
				t.Fatalf("runEmbed: %v", err)
			}
			if !strings.Contains(stdout.String(), "Password: hunter2") {
				t.Errorf("stdout = %q", stdout.String())
			}

			stdout.Reset()
			if err := runExtract([]string{out}, &stdout); err != nil {
				t.Fatalf("runExtract: %v", err)
			}
			if got := strings.TrimSpace(stdout.String()); got != "hunter2" {
				t.Errorf("extract = %q, want hunter2", got)
			}
		})
	}
}

func TestEmbed_SeedIsReproducible(t *testing.T) {
	dir := t.TempDir()
	a, b := filepath.Join(dir, "a.png"), filepath.Join(dir, "b.png")
	args := []string{"-password", "x", "-w", "40", "-h", "40", "-seed", "99"}
	if err := runEmbed(append(args, "-o", a), &bytes.Buffer{}); err != nil {
		t.Fatal(err)
	}
	if err := runEmbed(append(args, "-o", b), &bytes.Buffer{}); err != nil {
		t.Fatal(err)
	}
	da, _ := os.ReadFile(a)
	db, _ := os.ReadFile(b)
	if !bytes.Equal(da, db) {
		t.Errorf("same seed produced different images")
	}
}

func TestEmbed_GeneratedPassword(t *testing.T) {
	out := filepath.Join(t.TempDir(), "gen.png")
	var stdout bytes.Buffer
	if err := runEmbed([]string{"-length", "24", "-o", out}, &stdout); err != nil {
		t.Fatalf("runEmbed: %v", err)
	}
	line, _, _ := strings.Cut(stdout.String(), "\n")
	pw := strings.TrimPrefix(line, "Password: ")
	if len(pw) != 24 {
		t.Fatalf("generated %q, want 24 characters", pw)
	}

	data, _ := os.ReadFile(out)
	got, err := stego.Extract(data)
	if err != nil || got != pw {
		t.Errorf("Extract = %q, %v; want %q", got, err, pw)
	}
}

func TestEmbed_Errors(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name string
		args []string
	}{
		{"bad format", []string{"-o", filepath.Join(dir, "x.jpg")}},
		{"too long", []string{"-password", "toolong", "-w", "4", "-h", "4", "-o", filepath.Join(dir, "y.png")}},
		{"wide rune", []string{"-password", "€", "-o", filepath.Join(dir, "z.png")}},
		{"zero size", []string{"-w", "0", "-o", filepath.Join(dir, "w.png")}},
		{"overflowing size", []string{"-w", "1099511627776", "-h", "1099511627776", "-o", filepath.Join(dir, "v.png")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := runEmbed(tt.args, &bytes.Buffer{}); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
	if _, err := os.Stat(filepath.Join(dir, "y.png")); !os.IsNotExist(err) {
		t.Errorf("failed embed left output behind")
	}
}

func TestExtract_NotFound(t *testing.T) {
	r := raster.New(8, 8)
	data, err := raster.EncodeBytes(r, raster.PNG)
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "blank.png")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	if err := runExtract([]string{path}, &bytes.Buffer{}); err == nil {
		t.Errorf("expected not-found error")
	}

	var stdout bytes.Buffer
	if err := runExtract([]string{"-json", path}, &stdout); err != nil {
		t.Fatalf("runExtract -json: %v", err)
	}
	if got := strings.TrimSpace(stdout.String()); got != `{"found":false,"password":""}` {
		t.Errorf("json = %s", got)
	}
}

func TestExtract_Args(t *testing.T) {
	if err := runExtract(nil, &bytes.Buffer{}); err == nil {
		t.Errorf("expected error without path")
	}
	if err := runExtract([]string{filepath.Join(t.TempDir(), "missing.png")}, &bytes.Buffer{}); err == nil {
		t.Errorf("expected error for missing file")
	}
}

func TestPassword(t *testing.T) {
	var stdout bytes.Buffer
	if err := runPassword([]string{"-length", "500"}, &stdout); err != nil {
		t.Fatal(err)
	}
	if got := strings.TrimSpace(stdout.String()); len(got) != 100 {
		t.Errorf("length = %d, want 100", len(got))
	}
}

func TestCapacity(t *testing.T) {
	var stdout bytes.Buffer
	if err := runCapacity(nil, &stdout); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(stdout.String(), "160,000 bits") || !strings.Contains(stdout.String(), "19,998 characters") {
		t.Errorf("stdout = %q", stdout.String())
	}

	stdout.Reset()
	if err := runCapacity([]string{"-w", "10", "-h", "10", "-json"}, &stdout); err != nil {
		t.Fatal(err)
	}
	want := `{"width":10,"height":10,"bits":400,"max_chars":48}`
	if got := strings.TrimSpace(stdout.String()); got != want {
		t.Errorf("json = %s, want %s", got, want)
	}

	if err := runCapacity([]string{"-w", "-1"}, &bytes.Buffer{}); err == nil {
		t.Errorf("expected error for negative width")
	}

	stdout.Reset()
	err := runCapacity([]string{"-w", "1099511627776", "-h", "1099511627776"}, &stdout)
	if !errors.Is(err, raster.ErrTooLarge) {
		t.Fatalf("expected ErrTooLarge for overflowing size, got %v", err)
	}
	if stdout.Len() != 0 {
		t.Errorf("overflowing size printed %q", stdout.String())
	}
}
