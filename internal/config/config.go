// Package config loads server and generator settings from YAML.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"svw.info/supoke/internal/compat"
	"svw.info/supoke/internal/domain"
)

// Config holds every tunable of the supoke binary.
type Config struct {
	Addr        string   `yaml:"addr"`
	PersistPath string   `yaml:"persist_path"`
	Storage     string   `yaml:"storage"` // "fs" | "sqlite"
	LogLevel    string   `yaml:"log_level"`
	Elements    []string `yaml:"elements"`
	Generator   string   `yaml:"generator"` // "deterministic" | "randomized"
	Lookup      string   `yaml:"lookup"`    // "lenient" | "strict"
	// TablePath names an optional YAML chart consulted before the built-in charts.
	TablePath string `yaml:"table_path,omitempty"`
}

// ValidStorage lists the accepted storage backends.
var ValidStorage = []string{"fs", "sqlite"}

// Default returns the settings used when no file is given.
func Default() Config {
	return Config{
		Addr:        ":8080",
		PersistPath: "./data",
		Storage:     "fs",
		LogLevel:    "info",
		Elements:    []string{"grass", "fire", "water"},
		Generator:   "randomized",
		Lookup:      "lenient",
	}
}

// Load reads path over the defaults. An empty path returns Default().
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML over the defaults, rejecting unknown fields.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Validate checks enumerated fields and the element list.
func (c Config) Validate() error {
	if !contains(ValidStorage, strings.ToLower(c.Storage)) {
		return fmt.Errorf("storage %q: must be one of %v", c.Storage, ValidStorage)
	}
	switch strings.ToLower(c.Lookup) {
	case "lenient", "strict":
	default:
		return fmt.Errorf("lookup %q: must be lenient or strict", c.Lookup)
	}
	switch strings.ToLower(c.Generator) {
	case "deterministic", "randomized":
	default:
		return fmt.Errorf("generator %q: must be deterministic or randomized", c.Generator)
	}
	return domain.ValidateElements(c.ElementSet())
}

// ElementSet parses the configured element names.
func (c Config) ElementSet() []domain.Element {
	out := make([]domain.Element, 0, len(c.Elements))
	for _, e := range c.Elements {
		out = append(out, domain.ParseElement(e))
	}
	return out
}

// Kind is the configured generator kind.
func (c Config) Kind() domain.GeneratorKind { return domain.ParseGeneratorKind(c.Generator) }

// Table builds the compatibility table: the custom chart (if any), then
// the simplified and full charts.
func (c Config) Table() (*compat.Table, error) {
	mode := domain.ParseLookupMode(c.Lookup)
	sources := []compat.Source{}
	if c.TablePath != "" {
		chart, err := compat.LoadYAMLFile(c.TablePath)
		if err != nil {
			return nil, err
		}
		sources = append(sources, chart)
	}
	sources = append(sources, compat.Simplified(), compat.Full())
	return compat.New(mode, sources...), nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
