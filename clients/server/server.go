// Package server provides the PixelVault web UI and HTTP API.
package server

import (
	"context"
	"embed"
	"encoding/base64"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/xob0t/PixelVault/pkg/carrier"
	"github.com/xob0t/PixelVault/pkg/password"
	"github.com/xob0t/PixelVault/pkg/raster"
	"github.com/xob0t/PixelVault/pkg/stego"
)

//go:embed web/*
var webContent embed.FS

const (
	DefaultAddr      = ":8080"
	DefaultMaxUpload = 10 << 20
	addrEnv          = "PIXELVAULT_ADDR"
)

// Options configures the server.
type Options struct {
	Addr      string // Listen address (default: $PIXELVAULT_ADDR or ":8080")
	Width     int    // Carrier width (default: 200)
	Height    int    // Carrier height (default: 200)
	MaxUpload int64  // Upload limit in bytes (default: 10 MiB)
	MaxPixels int    // Largest decoded upload in pixels (default: raster.DefaultMaxPixels)
	Mode      string // gin mode: "debug", "release" or "test"; "" keeps the current mode
}

// DefaultOptions returns Options with every field at its default.
func DefaultOptions() Options {
	return Options{}.withDefaults()
}

func (o Options) withDefaults() Options {
	if o.Addr == "" {
		o.Addr = os.Getenv(addrEnv)
	}
	if o.Addr == "" {
		o.Addr = DefaultAddr
	}
	if o.Width <= 0 {
		o.Width = carrier.DefaultWidth
	}
	if o.Height <= 0 {
		o.Height = carrier.DefaultHeight
	}
	if o.MaxUpload <= 0 {
		o.MaxUpload = DefaultMaxUpload
	}
	if o.MaxPixels <= 0 {
		o.MaxPixels = raster.DefaultMaxPixels
	}
	return o
}

// Server serves the embed and decode pages.
type Server struct {
	opts   Options
	engine *gin.Engine
}

// New builds a Server with its routes registered.
func New(opts Options) (*Server, error) {
	opts = opts.withDefaults()
	if err := raster.CheckSize(opts.Width, opts.Height); err != nil {
		return nil, fmt.Errorf("carrier size: %w", err)
	}
	if opts.Mode != "" {
		gin.SetMode(opts.Mode)
	}

	tmpl, err := template.ParseFS(webContent, "web/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	s := &Server{opts: opts, engine: gin.New()}
	s.engine.Use(gin.Recovery(), requestLogger())
	s.engine.SetHTMLTemplate(tmpl)
	s.engine.MaxMultipartMemory = opts.MaxUpload

	s.engine.GET("/", s.handleIndex)
	s.engine.POST("/", s.handleGenerate)
	s.engine.GET("/image", s.handleImage)
	s.engine.GET("/decode", s.handleDecodeForm)
	s.engine.POST("/decode", s.limitUpload, s.handleDecode)
	s.engine.POST("/api/extract", s.limitUpload, s.handleAPIExtract)
	s.engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	return s, nil
}

// Handler returns the HTTP handler for all routes.
func (s *Server) Handler() http.Handler { return s.engine }

// Options returns the effective options.
func (s *Server) Options() Options { return s.opts }

// Run listens on the configured address until ctx is cancelled, then shuts
// down gracefully.
func (s *Server) Run(ctx context.Context) error {
	hs := &http.Server{
		Addr:              s.opts.Addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		Logger().Info("listening",
			zap.String("addr", s.opts.Addr),
			zap.Int("width", s.opts.Width),
			zap.Int("height", s.opts.Height))
		errc <- hs.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	Logger().Info("shutting down")
	if err := hs.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// ── Embed ──

type indexPage struct {
	Password  string
	Image     template.URL
	Length    int
	MaxLength int
	Width     int
	Height    int
	Capacity  string
	Error     string
}

func (s *Server) page() indexPage {
	return indexPage{
		Length:    password.DefaultLength,
		MaxLength: password.MaxLength,
		Width:     s.opts.Width,
		Height:    s.opts.Height,
		Capacity:  humanize.Comma(int64(stego.MaxPayload(s.opts.Width, s.opts.Height))),
	}
}

func (s *Server) carrierConfig() carrier.Config {
	return carrier.Config{Width: s.opts.Width, Height: s.opts.Height}
}

func (s *Server) handleIndex(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", s.page())
}

func (s *Server) handleGenerate(c *gin.Context) {
	p := s.page()
	p.Length = password.ParseLength(c.PostForm("length"))

	pw := c.PostForm("password")
	if pw == "" {
		var err error
		pw, err = password.Generate(nil, p.Length)
		if err != nil {
			c.Error(err)
			p.Error = "Error: " + err.Error()
			c.HTML(http.StatusInternalServerError, "index.html", p)
			return
		}
	}

	data, err := s.embed(pw)
	if err != nil {
		c.Error(err)
		p.Error = "Error: " + err.Error()
		c.HTML(statusFor(err), "index.html", p)
		return
	}

	p.Password = pw
	p.Image = template.URL("data:image/png;base64," + base64.StdEncoding.EncodeToString(data))
	c.HTML(http.StatusOK, "index.html", p)
}

func (s *Server) handleImage(c *gin.Context) {
	data, err := s.embed(c.Query("password"))
	if err != nil {
		c.Error(err)
		c.String(statusFor(err), "Error: %s", err)
		return
	}
	c.Data(http.StatusOK, "image/png", data)
}

func (s *Server) embed(pw string) ([]byte, error) {
	data, err := stego.Embed(pw, s.carrierConfig())
	if err != nil {
		Logger().Info("embed failed",
			zap.Int("chars", len([]rune(pw))),
			zap.Int("capacity", stego.Capacity(s.opts.Width, s.opts.Height)),
			zap.Error(err))
		return nil, err
	}
	Logger().Info("embedded",
		zap.Int("bits", 8*len([]rune(pw))+stego.TerminatorLen),
		zap.Int("capacity", stego.Capacity(s.opts.Width, s.opts.Height)),
		zap.String("size", humanize.Bytes(uint64(len(data)))))
	return data, nil
}

// ── Decode ──

type decodePage struct {
	Submitted bool
	Found     bool
	Password  string
	Error     string
}

type extractResponse struct {
	Found    bool   `json:"found"`
	Password string `json:"password"`
	Error    string `json:"error,omitempty"`
}

// limitUpload rejects bodies larger than MaxUpload.
func (s *Server) limitUpload(c *gin.Context) {
	if c.Request.ContentLength > s.opts.MaxUpload {
		c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, extractResponse{
			Error: fmt.Sprintf("upload exceeds %s", humanize.IBytes(uint64(s.opts.MaxUpload))),
		})
		return
	}
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, s.opts.MaxUpload)
	c.Next()
}

func (s *Server) handleDecodeForm(c *gin.Context) {
	c.HTML(http.StatusOK, "decode.html", decodePage{})
}

func (s *Server) handleDecode(c *gin.Context) {
	pw, err := s.extract(c)
	switch {
	case errors.Is(err, errNoUpload):
		c.HTML(http.StatusBadRequest, "decode.html", decodePage{Submitted: true, Error: "No image uploaded"})
	case stego.IsNotFound(err):
		c.HTML(http.StatusOK, "decode.html", decodePage{Submitted: true})
	case err != nil:
		c.Error(err)
		c.HTML(statusFor(err), "decode.html", decodePage{Submitted: true, Error: "Error: " + err.Error()})
	default:
		c.HTML(http.StatusOK, "decode.html", decodePage{Submitted: true, Found: true, Password: pw})
	}
}

func (s *Server) handleAPIExtract(c *gin.Context) {
	pw, err := s.extract(c)
	switch {
	case errors.Is(err, errNoUpload):
		c.JSON(http.StatusBadRequest, extractResponse{Error: err.Error()})
	case stego.IsNotFound(err):
		c.JSON(http.StatusOK, extractResponse{})
	case err != nil:
		c.Error(err)
		c.JSON(statusFor(err), extractResponse{Error: err.Error()})
	default:
		c.JSON(http.StatusOK, extractResponse{Found: true, Password: pw})
	}
}

var errNoUpload = errors.New("no image uploaded")

func (s *Server) extract(c *gin.Context) (string, error) {
	fh, err := c.FormFile("image")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return "", err
		}
		return "", errNoUpload
	}
	f, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer f.Close()

	pw, err := stego.ExtractFromLimit(f, s.opts.MaxPixels)
	switch {
	case stego.IsNotFound(err):
		Logger().Info("no payload", zap.String("file", fh.Filename), zap.Int64("size", fh.Size))
	case err != nil:
		Logger().Info("extract failed", zap.String("file", fh.Filename), zap.Error(err))
	default:
		Logger().Info("extracted", zap.String("file", fh.Filename), zap.Int("chars", len([]rune(pw))))
	}
	return pw, err
}

// statusFor maps codec error kinds to HTTP status codes.
func statusFor(err error) int {
	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &tooLarge), errors.Is(err, raster.ErrTooLarge):
		return http.StatusRequestEntityTooLarge
	case stego.IsKind(err, stego.KindCapacity),
		stego.IsKind(err, stego.KindEncoding),
		stego.IsKind(err, stego.KindDecode):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
