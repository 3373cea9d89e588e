// Package config loads the optional TOML configuration file. Flags always
// win over config values; the file only supplies defaults for settings that
// rarely change between runs.
package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Output configures where anonymized files and the manifest land.
type Output struct {
	Dir          string `toml:"dir"`
	ManifestFile string `toml:"manifest_file"`
}

// Deid configures the de-identification pipeline.
type Deid struct {
	ScriptFile          string `toml:"script_file"`
	ExtractBasicProfile bool   `toml:"extract_basic_profile"`
	PixelCheck          bool   `toml:"pixel_check"`
}

// OCR configures the burned-in-text detector.
type OCR struct {
	Language      string  `toml:"language"`
	MinConfidence float64 `toml:"min_confidence"`
}

// Config is the root configuration.
type Config struct {
	Output Output `toml:"output"`
	Deid   Deid   `toml:"deid"`
	OCR    OCR    `toml:"ocr"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Output: Output{
			ManifestFile: "manifest.json",
		},
		Deid: Deid{
			ExtractBasicProfile: true,
		},
		OCR: OCR{
			Language:      "eng",
			MinConfidence: 30,
		},
	}
}

// Load reads a TOML config file over the defaults. A missing file is not an
// error; a malformed one is.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("could not read config: %w", err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("could not parse config %s: %w", path, err)
	}
	return cfg, nil
}
