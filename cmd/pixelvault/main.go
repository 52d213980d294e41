// PixelVault: hide passwords in generated pixel art.
//
// Usage:
//
//	pixelvault embed [-password P | -length N] [-o out.png] [options]
//	pixelvault extract [-json] <image>
//	pixelvault password [-length 16]
//	pixelvault capacity [-w 200] [-h 200] [-json]
//	pixelvault serve [-addr :8080] [-debug]
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/dustin/go-humanize"
	jsoniter "github.com/json-iterator/go"
	"go.uber.org/zap"

	"github.com/xob0t/PixelVault/clients/server"
	"github.com/xob0t/PixelVault/pkg/carrier"
	"github.com/xob0t/PixelVault/pkg/password"
	"github.com/xob0t/PixelVault/pkg/raster"
	"github.com/xob0t/PixelVault/pkg/stego"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func main() {
	if len(os.Args) < 2 {
		printUsage(os.Stderr)
		os.Exit(1)
	}

	var err error
	switch os.Args[1] {
	case "embed":
		err = runEmbed(os.Args[2:], os.Stdout)
	case "extract":
		err = runExtract(os.Args[2:], os.Stdout)
	case "password":
		err = runPassword(os.Args[2:], os.Stdout)
	case "capacity":
		err = runCapacity(os.Args[2:], os.Stdout)
	case "serve":
		err = runServe(os.Args[2:])
	case "help", "-h", "--help":
		printUsage(os.Stdout)
	default:
		printUsage(os.Stderr)
		err = fmt.Errorf("unknown command %q", os.Args[1])
	}
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		fatal(err)
	}
}

func runEmbed(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("embed", flag.ContinueOnError)

	var (
		pw         string
		length     int
		output     string
		width      int
		height     int
		blocks     int
		caption    string
		background string
		seed       uint64
	)

	fs.StringVar(&pw, "password", "", "Password to embed (default: generate one)")
	fs.IntVar(&length, "length", password.DefaultLength, "Generated password length (1-100)")
	fs.StringVar(&output, "o", "pixelvault.png", "Output file path (.png or .tiff)")
	fs.IntVar(&width, "w", carrier.DefaultWidth, "Width in pixels")
	fs.IntVar(&height, "h", carrier.DefaultHeight, "Height in pixels")
	fs.IntVar(&blocks, "blocks", carrier.DefaultBlocks, "Number of colour blocks (negative for none)")
	fs.StringVar(&caption, "caption", "", "Caption drawn along the bottom edge")
	fs.StringVar(&background, "background", "", "Background color: #rrggbb or 'random' (default: white)")
	fs.Uint64Var(&seed, "seed", 0, "Seed for block placement (0: random)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if err := raster.CheckSize(width, height); err != nil {
		return err
	}
	format, err := raster.FormatFromExt(filepath.Ext(output))
	if err != nil {
		return err
	}

	if pw == "" {
		pw, err = password.Generate(nil, length)
		if err != nil {
			return fmt.Errorf("generate password: %w", err)
		}
	}

	cfg := carrier.Config{
		Width:      width,
		Height:     height,
		Blocks:     blocks,
		Background: background,
		Caption:    caption,
	}
	if seed != 0 {
		cfg.Rand = rand.New(rand.NewPCG(seed, seed))
	}

	f, err := os.Create(output)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	if err := stego.EmbedTo(f, pw, cfg, format); err != nil {
		f.Close()
		os.Remove(output)
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close output: %w", err)
	}

	info, err := os.Stat(output)
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "Password: %s\n", pw)
	fmt.Fprintf(stdout, "Wrote %s (%d×%d %s, %s, %s of %s bits used)\n",
		output, width, height, format, humanize.Bytes(uint64(info.Size())),
		humanize.Comma(int64(8*len([]rune(pw))+stego.TerminatorLen)),
		humanize.Comma(int64(stego.Capacity(width, height))))
	return nil
}

type extractResult struct {
	Found    bool   `json:"found"`
	Password string `json:"password"`
}

func runExtract(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("extract", flag.ContinueOnError)
	var asJSON bool
	fs.BoolVar(&asJSON, "json", false, "Print {found, password} as JSON")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("extract takes exactly one image path")
	}

	f, err := os.Open(fs.Arg(0))
	if err != nil {
		return err
	}
	defer f.Close()

	pw, err := stego.ExtractFrom(f)
	found := err == nil
	if err != nil && !stego.IsNotFound(err) {
		return err
	}

	if asJSON {
		return json.NewEncoder(stdout).Encode(extractResult{Found: found, Password: pw})
	}
	if !found {
		return fmt.Errorf("no password found in %s", fs.Arg(0))
	}
	fmt.Fprintln(stdout, pw)
	return nil
}

func runPassword(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("password", flag.ContinueOnError)
	var length int
	fs.IntVar(&length, "length", password.DefaultLength, "Password length (1-100)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	pw, err := password.Generate(nil, length)
	if err != nil {
		return err
	}
	fmt.Fprintln(stdout, pw)
	return nil
}

type capacityReport struct {
	Width    int `json:"width"`
	Height   int `json:"height"`
	Bits     int `json:"bits"`
	MaxChars int `json:"max_chars"`
}

func runCapacity(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("capacity", flag.ContinueOnError)
	var (
		width, height int
		asJSON        bool
	)
	fs.IntVar(&width, "w", carrier.DefaultWidth, "Width in pixels")
	fs.IntVar(&height, "h", carrier.DefaultHeight, "Height in pixels")
	fs.BoolVar(&asJSON, "json", false, "Print as JSON")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := raster.CheckSize(width, height); err != nil {
		return err
	}

	r := capacityReport{
		Width:    width,
		Height:   height,
		Bits:     stego.Capacity(width, height),
		MaxChars: stego.MaxPayload(width, height),
	}
	if asJSON {
		return json.NewEncoder(stdout).Encode(r)
	}
	fmt.Fprintf(stdout, "A %d×%d carrier holds %s bits: up to %s characters (~ %s).\n",
		width, height, humanize.Comma(int64(r.Bits)),
		humanize.Comma(int64(r.MaxChars)), humanize.Bytes(uint64(r.MaxChars)))
	return nil
}

func runServe(args []string) error {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	var (
		opts      server.Options
		maxUpload string
		maxPixels int
		debug     bool
	)
	fs.StringVar(&opts.Addr, "addr", "", "Listen address (default: $PIXELVAULT_ADDR or :8080)")
	fs.IntVar(&opts.Width, "w", carrier.DefaultWidth, "Carrier width in pixels")
	fs.IntVar(&opts.Height, "h", carrier.DefaultHeight, "Carrier height in pixels")
	fs.StringVar(&maxUpload, "max-upload", "10 MiB", "Upload size limit")
	fs.IntVar(&maxPixels, "max-pixels", raster.DefaultMaxPixels, "Largest uploaded image, in pixels")
	fs.BoolVar(&debug, "debug", false, "Development logging and gin debug mode")
	if err := fs.Parse(args); err != nil {
		return err
	}

	n, err := humanize.ParseBytes(maxUpload)
	if err != nil {
		return fmt.Errorf("max-upload: %w", err)
	}
	opts.MaxUpload = int64(n)
	opts.MaxPixels = maxPixels

	log, err := newLogger(debug)
	if err != nil {
		return err
	}
	defer log.Sync()
	server.SetLogger(log)

	opts.Mode = "release"
	if debug {
		opts.Mode = "debug"
	}
	s, err := server.New(opts)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	log.Info("PixelVault UI", zap.String("url", "http://localhost"+s.Options().Addr))
	return s.Run(ctx)
}

func newLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}

func printUsage(w io.Writer) {
	fmt.Fprint(w, `PixelVault: hide passwords in generated pixel art

USAGE:
    pixelvault embed [options]
    pixelvault extract [-json] <image>
    pixelvault password [-length 16]
    pixelvault capacity [-w 200] [-h 200] [-json]
    pixelvault serve [-addr :8080] [-debug]

EMBED:
    -password <text>       Password to embed (default: generate one)
    -length <n>            Generated password length, 1-100 (default: 16)
    -o <path>              Output file, .png or .tiff (default: pixelvault.png)
    -w, -h <px>            Carrier size (default: 200x200)
    -blocks <n>            Colour blocks (default: 20)
    -caption <text>        Caption drawn along the bottom edge
    -background <#rrggbb>  Background color or 'random' (default: white)
    -seed <n>              Seed for reproducible block placement

SERVE:
    -addr <addr>           Listen address (default: $PIXELVAULT_ADDR or :8080)
    -max-upload <size>     Upload limit (default: 10 MiB)
    -max-pixels <n>        Largest uploaded image in pixels (default: 67108864)
    -debug                 Development logging

EXAMPLES:
    pixelvault embed -o vault.png
    pixelvault embed -password hunter2 -o vault.tiff -seed 42
    pixelvault extract vault.png
    pixelvault capacity -w 64 -h 64
`)
}
