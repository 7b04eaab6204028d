// Package config loads tool configuration for the lmx commands from
// YAML files.
package config

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Config holds the settings shared by the lmx command-line tools.
type Config struct {
	// Matrix dimensions in pixels.
	Width  int `yaml:"width"`
	Height int `yaml:"height"`

	// FrameCount is the pattern timeline length.
	FrameCount int `yaml:"frame_count"`

	// FPS is the preview and export playback rate.
	FPS int `yaml:"fps"`

	// Scale is the integer upscale factor for image exports.
	Scale int `yaml:"scale"`

	// Listen is the preview server bind address, e.g. ":8089".
	Listen string `yaml:"listen"`

	// Advertise announces the preview server on the LAN via mDNS.
	Advertise bool `yaml:"advertise"`
}

// Default returns the configuration used when no file is given:
// a 32x16 matrix at 20 fps.
func Default() *Config {
	return &Config{
		Width:      32,
		Height:     16,
		FrameCount: 60,
		FPS:        20,
		Scale:      8,
		Listen:     ":8089",
		Advertise:  true,
	}
}

// Load reads a YAML config file. Fields missing from the file keep
// their defaults; a validation failure rejects the whole file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "reading config")
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrap(err, "parsing config")
	}
	if err := cfg.validate(); err != nil {
		return nil, errors.Wrapf(err, "invalid config %s", path)
	}
	return cfg, nil
}

// Save writes the configuration as YAML.
func Save(cfg *Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return errors.Wrap(err, "encoding config")
	}
	return errors.Wrap(os.WriteFile(path, data, 0o644), "writing config")
}

func (c *Config) validate() error {
	if c.Width < 1 || c.Height < 1 {
		return errors.Errorf("matrix dimensions %dx%d must be positive", c.Width, c.Height)
	}
	if c.FrameCount < 1 {
		return errors.Errorf("frame_count %d must be positive", c.FrameCount)
	}
	if c.FPS < 1 {
		return errors.Errorf("fps %d must be positive", c.FPS)
	}
	if c.Scale < 1 {
		return errors.Errorf("scale %d must be positive", c.Scale)
	}
	return nil
}
