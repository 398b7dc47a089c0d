package app

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"favicon-gen/internal/config"
	"favicon-gen/internal/ico"
	"favicon-gen/internal/icon"
	"favicon-gen/internal/logging"
	"favicon-gen/internal/pngenc"
	"favicon-gen/internal/raster"
)

const (
	EncoderManual  = "manual"
	EncoderLibrary = "library"
)

// Generator renders one configured icon and writes it to disk.
type Generator struct {
	cfg       config.GenerateConfig
	style     icon.Style
	palette   icon.Palette
	resampler raster.Resampler
	encoder   pngenc.Encoder
	logger    *logging.Logger
	summary   io.Writer
}

// Result describes a written icon.
type Result struct {
	Path    string
	Bytes   int
	Entries []EntryInfo
	Elapsed time.Duration
}

// NewGenerator resolves the style, palette, resampler and encoder named by
// cfg. When summary is non-nil a per-size table is written to it after every
// successful run.
func NewGenerator(cfg config.GenerateConfig, logger *logging.Logger, summary io.Writer) (*Generator, error) {
	if logger == nil {
		panic("app.NewGenerator: logger must not be nil")
	}
	if err := config.Validate(cfg); err != nil {
		return nil, err
	}
	style, err := icon.Lookup(cfg.Style)
	if err != nil {
		return nil, err
	}
	palette, err := style.DefaultPalette().WithOverrides(cfg.Palette)
	if err != nil {
		return nil, err
	}
	resampler, err := raster.ParseResampler(cfg.Resampler)
	if err != nil {
		return nil, err
	}
	encoder, err := newEncoder(cfg.Encoder, cfg.Compression)
	if err != nil {
		return nil, err
	}
	return &Generator{
		cfg:       cfg,
		style:     style,
		palette:   palette,
		resampler: resampler,
		encoder:   encoder,
		logger:    logger,
		summary:   summary,
	}, nil
}

func newEncoder(name string, level int) (pngenc.Encoder, error) {
	switch name {
	case "", EncoderManual:
		return pngenc.Manual{Level: level}, nil
	case EncoderLibrary:
		return pngenc.Library{}, nil
	default:
		return nil, fmt.Errorf("%w %q (want manual or library)", ErrUnknownEncoder, name)
	}
}

// Build renders and encodes every size and returns the ICO bytes plus the
// largest canvas for previews.
func (g *Generator) Build(ctx context.Context) ([]byte, *raster.Canvas, error) {
	g.logger.Debug("rendering icon",
		logging.Field("style", g.style.Name),
		logging.Field("sizes", g.cfg.Sizes),
		logging.Field("base_size", g.cfg.BaseSize),
		logging.Field("resampler", string(g.resampler)),
	)
	canvases, err := g.style.Render(icon.RenderOptions{
		Sizes:     g.cfg.Sizes,
		BaseSize:  g.cfg.BaseSize,
		Palette:   g.palette,
		Resampler: g.resampler,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("render %s: %w", g.style.Name, err)
	}

	images := make([]ico.Image, 0, len(canvases))
	var largest *raster.Canvas
	for _, canvas := range canvases {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}
		data, err := pngenc.EncodeBytes(g.encoder, canvas.Pix, canvas.N, canvas.N)
		if err != nil {
			return nil, nil, fmt.Errorf("encode %dpx png: %w", canvas.N, err)
		}
		g.logger.Debug("encoded image", logging.Field("size", canvas.N), logging.Field("bytes", len(data)))
		images = append(images, ico.Square(canvas.N, data))
		if largest == nil || canvas.N > largest.N {
			largest = canvas
		}
	}

	container, err := ico.Encode(images)
	if err != nil {
		return nil, nil, fmt.Errorf("build ico: %w", err)
	}
	return container, largest, nil
}

// Generate builds the icon, writes it under an output lock, writes the
// optional preview and reports the result.
func (g *Generator) Generate(ctx context.Context) (Result, error) {
	started := time.Now()
	container, largest, err := g.Build(ctx)
	if err != nil {
		return Result{}, err
	}
	entries, err := describeContainer(container)
	if err != nil {
		return Result{}, fmt.Errorf("verify generated icon: %w", err)
	}

	outPath, err := filepath.Abs(g.cfg.Out)
	if err != nil {
		return Result{}, err
	}
	lock, err := acquireOutputLock(outPath)
	if err != nil {
		return Result{}, err
	}
	defer func() {
		if releaseErr := lock.Release(); releaseErr != nil {
			g.logger.Warn("failed to release output lock", logging.Field("error", releaseErr))
		}
	}()

	if err := writeFileAtomic(outPath, container); err != nil {
		return Result{}, fmt.Errorf("write %s: %w", outPath, err)
	}
	if g.cfg.Preview != "" {
		if err := g.writePreview(largest); err != nil {
			return Result{}, err
		}
	}

	result := Result{Path: outPath, Bytes: len(container), Entries: entries, Elapsed: time.Since(started)}
	g.logger.Info(fmt.Sprintf("Wrote %s (%d bytes)", outPath, len(container)),
		logging.Field("images", len(entries)),
		logging.Field("style", g.style.Name),
		logging.Field("elapsed", result.Elapsed.Round(time.Millisecond)),
	)
	if g.summary != nil {
		if _, err := io.WriteString(g.summary, RenderSummary(filepath.Base(outPath), entries)); err != nil {
			return result, err
		}
	}
	return result, nil
}

func (g *Generator) writePreview(canvas *raster.Canvas) error {
	if canvas == nil {
		return errors.New("no image to preview")
	}
	var buf bytes.Buffer
	if err := g.encoder.Encode(&buf, canvas.Pix, canvas.N, canvas.N); err != nil {
		return fmt.Errorf("encode preview: %w", err)
	}
	if dir := filepath.Dir(g.cfg.Preview); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create preview directory: %w", err)
		}
	}
	if err := writeFileAtomic(g.cfg.Preview, buf.Bytes()); err != nil {
		return fmt.Errorf("write preview %s: %w", g.cfg.Preview, err)
	}
	g.logger.Info("wrote preview", logging.Field("path", g.cfg.Preview), logging.Field("size", canvas.N))
	return nil
}
