package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	flags "github.com/jessevdk/go-flags"
	"github.com/joho/godotenv"

	"favicon-gen/internal/icon"
)

const (
	CommandGenerate = "generate"
	CommandInspect  = "inspect"
)

type Options struct {
	Debug      bool   `long:"debug" env:"FAVICON_DEBUG" description:"Enable verbose debug output"`
	LogPersist bool   `long:"log-persist" env:"FAVICON_LOG_PERSIST" description:"Also write JSONL logs to disk"`
	LogDir     string `long:"log-dir" env:"FAVICON_LOG_DIR" description:"Directory for persisted logs (default: user cache directory)"`
	Settings   string `long:"settings" env:"FAVICON_SETTINGS" description:"Settings JSON file (default: user config directory)"`

	Generate GenerateOptions `command:"generate" alias:"gen" description:"Render the icon and write the .ico file (default command)"`
	Inspect  InspectOptions  `command:"inspect" description:"List and verify the images inside an .ico file"`

	Command string `no-flag:"true"`
}

type GenerateOptions struct {
	Out          string   `short:"o" long:"out" env:"FAVICON_OUT" description:"Output .ico path (default favicon.ico)"`
	Style        string   `long:"style" env:"FAVICON_STYLE" description:"Icon design: glow or badge"`
	Sizes        string   `long:"sizes" env:"FAVICON_SIZES" description:"Comma-separated sizes, largest first (default 256,128,64,48,32,16)"`
	BaseSize     int      `long:"base-size" env:"FAVICON_BASE_SIZE" description:"Canvas size drawn before downsampling (default 256)"`
	Resampler    string   `long:"resampler" env:"FAVICON_RESAMPLER" description:"Downsampling: box, nearest, bilinear or catmullrom"`
	Encoder      string   `long:"encoder" env:"FAVICON_ENCODER" description:"PNG encoder: manual or library"`
	Compression  int      `long:"compression" env:"FAVICON_COMPRESSION" description:"zlib level 1-9 for the manual encoder (default 9)"`
	Preview      string   `long:"preview" env:"FAVICON_PREVIEW" description:"Also write the largest image as a PNG file"`
	Colors       []string `long:"color" env:"FAVICON_COLORS" env-delim:"," description:"Override a palette color as name=#rrggbb[aa] (repeatable)"`
	Watch        bool     `long:"watch" env:"FAVICON_WATCH" description:"Regenerate whenever the settings file changes"`
	SaveSettings bool     `long:"save-settings" env:"FAVICON_SAVE_SETTINGS" description:"Store the effective generate options in the settings file"`
}

type InspectOptions struct {
	Args struct {
		Path string `positional-arg-name:"ICO" required:"yes"`
	} `positional-args:"yes"`
}

const (
	DefaultOut         = "favicon.ico"
	DefaultStyle       = icon.StyleGlow
	DefaultBaseSize    = 256
	DefaultResampler   = "box"
	DefaultEncoder     = "manual"
	DefaultCompression = 9

	maxIconSize = 256
	maxBaseSize = 4096
)

func DefaultSizes() []int {
	return []int{256, 128, 64, 48, 32, 16}
}

// GenerateConfig is the fully resolved generate request.
type GenerateConfig struct {
	Out         string            `json:"out"`
	Style       string            `json:"style"`
	Sizes       []int             `json:"sizes"`
	BaseSize    int               `json:"base_size"`
	Resampler   string            `json:"resampler"`
	Encoder     string            `json:"encoder"`
	Compression int               `json:"compression"`
	Preview     string            `json:"preview,omitempty"`
	Palette     map[string]string `json:"palette,omitempty"`
}

// ParseOptions loads .env, then parses args. With no command the generate
// command runs with its flags unset.
func ParseOptions(args []string) (Options, error) {
	_ = godotenv.Load()
	opts := Options{}
	parser := flags.NewParser(&opts, flags.Default)
	parser.SubcommandsOptional = true
	describeStyles(parser)
	if _, err := parser.ParseArgs(args); err != nil {
		return Options{}, err
	}
	opts.Command = CommandGenerate
	if parser.Active != nil {
		opts.Command = parser.Active.Name
	}
	return opts, nil
}

// describeStyles replaces the static --style help with the registered styles.
func describeStyles(parser *flags.Parser) {
	cmd := parser.Find(CommandGenerate)
	if cmd == nil {
		return
	}
	if opt := cmd.FindOptionByLongName("style"); opt != nil {
		opt.Description = styleHelp()
	}
}

func styleHelp() string {
	names := icon.StyleNames()
	parts := make([]string, 0, len(names))
	for _, name := range names {
		style, err := icon.Lookup(name)
		if err != nil {
			continue
		}
		parts = append(parts, fmt.Sprintf("%s (%s)", style.Name, style.Description))
	}
	return "Icon design: " + strings.Join(parts, "; ")
}

// ResolveGenerate layers CLI values over saved settings, then fills defaults.
func ResolveGenerate(cli GenerateOptions, saved GeneratorSettings) (GenerateConfig, error) {
	cfg := GenerateConfig{
		Out:         firstNonEmpty(cli.Out, saved.Out, DefaultOut),
		Style:       strings.ToLower(firstNonEmpty(cli.Style, saved.Style, DefaultStyle)),
		BaseSize:    firstNonZero(cli.BaseSize, saved.BaseSize, DefaultBaseSize),
		Resampler:   strings.ToLower(firstNonEmpty(cli.Resampler, saved.Resampler, DefaultResampler)),
		Encoder:     strings.ToLower(firstNonEmpty(cli.Encoder, saved.Encoder, DefaultEncoder)),
		Compression: firstNonZero(cli.Compression, saved.Compression, DefaultCompression),
		Preview:     firstNonEmpty(cli.Preview, saved.Preview),
	}

	switch {
	case strings.TrimSpace(cli.Sizes) != "":
		sizes, err := ParseSizes(cli.Sizes)
		if err != nil {
			return GenerateConfig{}, err
		}
		cfg.Sizes = sizes
	case len(saved.Sizes) > 0:
		cfg.Sizes = append([]int(nil), saved.Sizes...)
	default:
		cfg.Sizes = DefaultSizes()
	}

	palette := map[string]string{}
	for name, value := range saved.Palette {
		palette[strings.ToLower(strings.TrimSpace(name))] = strings.TrimSpace(value)
	}
	cliColors, err := ParseColorFlags(cli.Colors)
	if err != nil {
		return GenerateConfig{}, err
	}
	for name, value := range cliColors {
		palette[name] = value
	}
	if len(palette) > 0 {
		cfg.Palette = palette
	}

	if err := Validate(cfg); err != nil {
		return GenerateConfig{}, err
	}
	return cfg, nil
}

func Validate(cfg GenerateConfig) error {
	if strings.TrimSpace(cfg.Out) == "" {
		return errors.New("output path is required")
	}
	if len(cfg.Sizes) == 0 {
		return errors.New("at least one size is required")
	}
	seen := map[int]bool{}
	for _, size := range cfg.Sizes {
		if size < 1 || size > maxIconSize {
			return fmt.Errorf("sizes must be between 1 and %d, got %d", maxIconSize, size)
		}
		if seen[size] {
			return fmt.Errorf("size %d listed twice", size)
		}
		seen[size] = true
	}
	if cfg.BaseSize < 1 || cfg.BaseSize > maxBaseSize {
		return fmt.Errorf("base size must be between 1 and %d, got %d", maxBaseSize, cfg.BaseSize)
	}
	if cfg.Compression < 1 || cfg.Compression > 9 {
		return fmt.Errorf("compression must be between 1 and 9, got %d", cfg.Compression)
	}
	return nil
}

func ParseSizes(raw string) ([]int, error) {
	fields := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || r == ' ' || r == ';'
	})
	if len(fields) == 0 {
		return nil, errors.New("no sizes given")
	}
	sizes := make([]int, 0, len(fields))
	for _, field := range fields {
		size, err := strconv.Atoi(strings.TrimSpace(field))
		if err != nil {
			return nil, fmt.Errorf("invalid size %q", field)
		}
		sizes = append(sizes, size)
	}
	return sizes, nil
}

// ParseColorFlags turns name=#hex pairs into a palette override map.
func ParseColorFlags(values []string) (map[string]string, error) {
	out := map[string]string{}
	for _, value := range values {
		name, hex, ok := strings.Cut(value, "=")
		name = strings.ToLower(strings.TrimSpace(name))
		hex = strings.TrimSpace(hex)
		if !ok || name == "" || hex == "" {
			return nil, fmt.Errorf("invalid color override %q (want name=#rrggbb)", value)
		}
		out[name] = hex
	}
	return out, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			return trimmed
		}
	}
	return ""
}

// firstNonZero treats 0 as unset. Negative values are kept so Validate
// rejects them.
func firstNonZero(values ...int) int {
	for _, v := range values {
		if v != 0 {
			return v
		}
	}
	return 0
}
