package utils

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// ErrUnsupportedConfigFormat is returned for config files with an unknown extension.
var ErrUnsupportedConfigFormat = errors.New("unsupported config format")

// LoadConfig reads a YAML, TOML or JSON file on top of DefaultConfig and validates the result.
// An empty path returns the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := DecodeConfig(data, filepath.Ext(path), &cfg); err != nil {
		return cfg, fmt.Errorf("decoding config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// DecodeConfig overlays the encoded document onto cfg. Fields absent from the
// document keep their current values.
func DecodeConfig(data []byte, ext string, cfg *Config) error {
	switch strings.ToLower(strings.TrimPrefix(ext, ".")) {
	case "yaml", "yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return err
		}
	case "toml":
		if _, err := toml.Decode(string(data), cfg); err != nil {
			return err
		}
	case "json":
		decoder := json.NewDecoder(bytes.NewReader(data))
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(cfg); err != nil {
			return err
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedConfigFormat, ext)
	}
	return nil
}

// EncodeConfig renders cfg in the format named by ext.
func EncodeConfig(cfg Config, ext string) ([]byte, error) {
	switch strings.ToLower(strings.TrimPrefix(ext, ".")) {
	case "yaml", "yml":
		return yaml.Marshal(cfg)
	case "toml":
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	case "json":
		return json.MarshalIndent(cfg, "", "  ")
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedConfigFormat, ext)
	}
}
