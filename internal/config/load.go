package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/dshills/tessera/internal/config/loader"
)

// EnvPrefix prefixes the environment variables read by Load.
const EnvPrefix = "TESSERA_"

// sections lists the top-level keys the environment may set.
var sections = []string{"snap", "history", "pointer", "viewport", "style", "log"}

// DefaultPath returns the per-user config file location,
// e.g. ~/.config/tessera/config.toml.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "tessera", "config.toml")
}

// Load reads the configuration: defaults, then the file at path (a
// missing file is not an error), then the environment. The result is
// validated.
func Load(path string) (Config, error) {
	return LoadFrom(loader.NewFileLoader(path), loader.NewEnvLoader(EnvPrefix, sections...))
}

// LoadFrom layers the given sources over the defaults in order. Later
// sources override earlier ones.
func LoadFrom(sources ...loader.Loader) (Config, error) {
	var merged map[string]any
	for _, src := range sources {
		m, err := src.Load()
		if err != nil {
			return Config{}, err
		}
		merged = loader.DeepMerge(merged, m)
	}
	cfg, err := Decode(merged)
	if err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Parse decodes and validates a single document.
func Parse(data []byte, format loader.Format) (Config, error) {
	m, err := loader.Parse("<input>", data, format)
	if err != nil {
		return Config{}, err
	}
	cfg, err := Decode(m)
	if err != nil {
		return Config{}, err
	}
	return cfg, cfg.Validate()
}

// Decode applies a generic settings map over the defaults. Keys that do
// not name a setting are an error.
func Decode(m map[string]any) (Config, error) {
	cfg := Default()
	if len(m) == 0 {
		return cfg, nil
	}

	// Round-trip through YAML to reuse its typed decoding.
	data, err := yaml.Marshal(m)
	if err != nil {
		return Config{}, fmt.Errorf("encode settings: %w", err)
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode settings: %w", err)
	}
	return cfg, nil
}
