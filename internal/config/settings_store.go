package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
)

// GeneratorSettings is the JSON settings file. Zero values mean "unset".
type GeneratorSettings struct {
	Out         string            `json:"out,omitempty"`
	Style       string            `json:"style,omitempty"`
	Sizes       []int             `json:"sizes,omitempty"`
	BaseSize    int               `json:"base_size,omitempty"`
	Resampler   string            `json:"resampler,omitempty"`
	Encoder     string            `json:"encoder,omitempty"`
	Compression int               `json:"compression,omitempty"`
	Preview     string            `json:"preview,omitempty"`
	Palette     map[string]string `json:"palette,omitempty"`
}

// SettingsPath returns override when set, else the per-user default.
func SettingsPath(override string) (string, error) {
	if trimmed := strings.TrimSpace(override); trimmed != "" {
		return filepath.Clean(trimmed), nil
	}
	root, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(root, "favicon-gen", "settings.json"), nil
}

func LoadSettings(path string) (GeneratorSettings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return GeneratorSettings{}, err
	}
	var settings GeneratorSettings
	if err := json.Unmarshal(data, &settings); err != nil {
		return GeneratorSettings{}, err
	}
	return settings, nil
}

func SaveSettings(path string, settings GeneratorSettings) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	payload, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(payload, '\n'), 0o644)
}

func SettingsFromConfig(cfg GenerateConfig) GeneratorSettings {
	settings := GeneratorSettings{
		Out:         strings.TrimSpace(cfg.Out),
		Style:       cfg.Style,
		Sizes:       append([]int(nil), cfg.Sizes...),
		BaseSize:    cfg.BaseSize,
		Resampler:   cfg.Resampler,
		Encoder:     cfg.Encoder,
		Compression: cfg.Compression,
		Preview:     strings.TrimSpace(cfg.Preview),
	}
	if len(cfg.Palette) > 0 {
		settings.Palette = make(map[string]string, len(cfg.Palette))
		for k, v := range cfg.Palette {
			settings.Palette[k] = v
		}
	}
	return settings
}
