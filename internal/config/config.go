// Package config loads the pngme configuration file
// (~/.config/pngme/config.yaml). Pointer fields distinguish "not set" from
// zero values so command-line flags can fall back to them selectively.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/samcharles93/pngme/pkg/png"
)

type Config struct {
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`

	// Codec
	DefaultChunkType *png.ChunkType     `yaml:"default_chunk_type"`
	CRCOrder         *png.ChecksumOrder `yaml:"crc_order"`
	MaxMessageBytes  *int               `yaml:"max_message_bytes"`

	Server Server `yaml:"server"`
}

type Server struct {
	Address      string         `yaml:"address"`
	ReadTimeout  *time.Duration `yaml:"read_timeout"`
	MaxBodyBytes *int64         `yaml:"max_body_bytes"`
}

// DefaultPath returns the per-user config location, or "" if the user
// config directory cannot be determined.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "pngme", "config.yaml")
}

// Load reads the config at path. An empty path means DefaultPath, and a
// missing default file yields a zero Config. An explicit path must exist.
func Load(path string) (Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultPath()
		if path == "" {
			return Config{}, nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return Config{}, nil
		}
		return Config{}, err
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML config data. Unknown keys are rejected.
func Parse(data []byte) (Config, error) {
	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.MaxMessageBytes != nil && *c.MaxMessageBytes < 0 {
		return fmt.Errorf("max_message_bytes must not be negative")
	}
	if c.Server.MaxBodyBytes != nil && *c.Server.MaxBodyBytes <= 0 {
		return fmt.Errorf("server.max_body_bytes must be positive")
	}
	if c.Server.ReadTimeout != nil && *c.Server.ReadTimeout < 0 {
		return fmt.Errorf("server.read_timeout must not be negative")
	}
	return nil
}

// Codec returns the chunk codec selected by crc_order.
func (c Config) Codec() png.Codec {
	if c.CRCOrder == nil {
		return png.DefaultCodec
	}
	return png.Codec{Order: *c.CRCOrder}
}
