// Package config loads the optional subwriter.toml settings file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	toml "github.com/pelletier/go-toml/v2"
)

// Config holds tool-level defaults a cue document does not carry.
type Config struct {
	// OutputSuffix is appended to the movie name when no output path is
	// given.
	OutputSuffix string `toml:"output_suffix"`
	// Language is the fallback language code for documents without a
	// language header.
	Language string `toml:"language"`
	// FFmpegPath overrides binary discovery for the remux step.
	FFmpegPath string `toml:"ffmpeg_path"`
	// FFprobePath overrides binary discovery for the probe step.
	FFprobePath string `toml:"ffprobe_path"`
}

func Default() *Config {
	return &Config{
		OutputSuffix: "-subtitled",
	}
}

// Load reads path when it exists and overlays it on the defaults. An empty
// path or a missing file yields the defaults; a malformed file is an error.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}
