package app

import (
	"bytes"
	"context"
	"errors"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"favicon-gen/internal/config"
	"favicon-gen/internal/ico"
	"favicon-gen/internal/logging"
)

func testLogger() *logging.Logger {
	return logging.NewWriter(io.Discard, true)
}

func testConfig(t *testing.T, mutate func(*config.GenerateConfig)) config.GenerateConfig {
	t.Helper()
	cfg, err := config.ResolveGenerate(config.GenerateOptions{Out: filepath.Join(t.TempDir(), "favicon.ico")}, config.GeneratorSettings{})
	if err != nil {
		t.Fatalf("ResolveGenerate() error = %v", err)
	}
	if mutate != nil {
		mutate(&cfg)
	}
	return cfg
}

func TestGenerateWritesVerifiedIcon(t *testing.T) {
	for _, style := range []string{"glow", "badge"} {
		for _, encoder := range []string{EncoderManual, EncoderLibrary} {
			t.Run(style+"/"+encoder, func(t *testing.T) {
				cfg := testConfig(t, func(c *config.GenerateConfig) {
					c.Style = style
					c.Encoder = encoder
				})
				var summary bytes.Buffer
				gen, err := NewGenerator(cfg, testLogger(), &summary)
				if err != nil {
					t.Fatalf("NewGenerator() error = %v", err)
				}
				result, err := gen.Generate(context.Background())
				if err != nil {
					t.Fatalf("Generate() error = %v", err)
				}

				data, err := os.ReadFile(cfg.Out)
				if err != nil {
					t.Fatalf("ReadFile() error = %v", err)
				}
				if len(data) != result.Bytes {
					t.Fatalf("result bytes = %d, file has %d", result.Bytes, len(data))
				}
				entries, err := ico.Parse(data)
				if err != nil {
					t.Fatalf("ico.Parse() error = %v", err)
				}
				wantSizes := []int{256, 128, 64, 48, 32, 16}
				if len(entries) != len(wantSizes) {
					t.Fatalf("entries = %d", len(entries))
				}
				for i, e := range entries {
					if e.Width != wantSizes[i] || e.Height != wantSizes[i] {
						t.Fatalf("entry %d = %dx%d, want %d", i, e.Width, e.Height, wantSizes[i])
					}
					img, err := png.Decode(bytes.NewReader(e.Data))
					if err != nil {
						t.Fatalf("entry %d png.Decode() error = %v", i, err)
					}
					if img.Bounds().Dx() != wantSizes[i] {
						t.Fatalf("entry %d decoded width = %d", i, img.Bounds().Dx())
					}
				}
				if !strings.Contains(summary.String(), "favicon.ico") || !strings.Contains(summary.String(), "6 images") {
					t.Fatalf("summary = %q", summary.String())
				}
			})
		}
	}
}

func TestGenerateIsReproducible(t *testing.T) {
	cfg := testConfig(t, func(c *config.GenerateConfig) { c.Sizes = []int{32, 16} })
	gen, err := NewGenerator(cfg, testLogger(), nil)
	if err != nil {
		t.Fatalf("NewGenerator() error = %v", err)
	}
	first, _, err := gen.Build(context.Background())
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	second, _, err := gen.Build(context.Background())
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Fatalf("two builds of the same config differ")
	}
}

func TestGenerateWritesPreview(t *testing.T) {
	preview := filepath.Join(t.TempDir(), "previews", "favicon-preview.png")
	cfg := testConfig(t, func(c *config.GenerateConfig) {
		c.Style = "badge"
		c.Sizes = []int{16, 64, 32}
		c.Preview = preview
	})
	gen, err := NewGenerator(cfg, testLogger(), nil)
	if err != nil {
		t.Fatalf("NewGenerator() error = %v", err)
	}
	if _, err := gen.Generate(context.Background()); err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	f, err := os.Open(preview)
	if err != nil {
		t.Fatalf("Open(preview) error = %v", err)
	}
	defer f.Close()
	pcfg, err := png.DecodeConfig(f)
	if err != nil {
		t.Fatalf("DecodeConfig() error = %v", err)
	}
	if pcfg.Width != 64 || pcfg.Height != 64 {
		t.Fatalf("preview = %dx%d, want largest size 64", pcfg.Width, pcfg.Height)
	}
}

func TestNewGeneratorRejectsBadConfig(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.GenerateConfig)
		want   error
	}{
		{name: "encoder", mutate: func(c *config.GenerateConfig) { c.Encoder = "bmp" }, want: ErrUnknownEncoder},
		{name: "style", mutate: func(c *config.GenerateConfig) { c.Style = "neon" }},
		{name: "resampler", mutate: func(c *config.GenerateConfig) { c.Resampler = "lanczos" }},
		{name: "palette name", mutate: func(c *config.GenerateConfig) { c.Palette = map[string]string{"top": "#000000"} }},
		{name: "size", mutate: func(c *config.GenerateConfig) { c.Sizes = []int{300} }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewGenerator(testConfig(t, tt.mutate), testLogger(), nil)
			if err == nil {
				t.Fatalf("expected error")
			}
			if tt.want != nil && !errors.Is(err, tt.want) {
				t.Fatalf("error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestGenerateHonorsCanceledContext(t *testing.T) {
	cfg := testConfig(t, nil)
	gen, err := NewGenerator(cfg, testLogger(), nil)
	if err != nil {
		t.Fatalf("NewGenerator() error = %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := gen.Generate(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("Generate() error = %v, want context.Canceled", err)
	}
	if _, statErr := os.Stat(cfg.Out); !errors.Is(statErr, os.ErrNotExist) {
		t.Fatalf("output should not exist after cancel, stat error = %v", statErr)
	}
}

func TestGenerateFailsWhenOutputLocked(t *testing.T) {
	cfg := testConfig(t, func(c *config.GenerateConfig) { c.Sizes = []int{16} })
	abs, err := filepath.Abs(cfg.Out)
	if err != nil {
		t.Fatalf("Abs() error = %v", err)
	}
	held, err := acquireOutputLock(abs)
	if err != nil {
		t.Fatalf("acquireOutputLock() error = %v", err)
	}
	defer held.Release()

	gen, err := NewGenerator(cfg, testLogger(), nil)
	if err != nil {
		t.Fatalf("NewGenerator() error = %v", err)
	}
	if _, err := gen.Generate(context.Background()); !errors.Is(err, ErrOutputLocked) {
		t.Fatalf("Generate() error = %v, want ErrOutputLocked", err)
	}
}

func TestWriteFileAtomicReplaces(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.ico")
	if err := os.WriteFile(path, []byte("old"), 0o600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	if err := writeFileAtomic(path, []byte("new")); err != nil {
		t.Fatalf("writeFileAtomic() error = %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil || string(data) != "new" {
		t.Fatalf("ReadFile() = %q, %v", data, err)
	}
	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatalf("ReadDir() error = %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("temp files left behind: %d entries", len(entries))
	}
}
