package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/camelgen/camelgen/internal/domain"
	"gopkg.in/yaml.v3"
)

// FileName is the config file looked up in the working directory.
const FileName = ".camelgen.yaml"

// YAMLLoader implements domain.ConfigLoader by reading .camelgen.yaml.
type YAMLLoader struct{}

// New creates a YAMLLoader.
func New() *YAMLLoader { return &YAMLLoader{} }

// Load reads explicitPath, or .camelgen.yaml in dir when explicitPath is empty.
// A missing .camelgen.yaml yields DefaultConfig; a missing explicit file is an
// error.
func (l *YAMLLoader) Load(dir, explicitPath string) (domain.GeneratorConfig, error) {
	path := explicitPath
	if path == "" {
		path = filepath.Join(dir, FileName)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && explicitPath == "" {
			return domain.DefaultConfig(), nil
		}
		return domain.GeneratorConfig{}, fmt.Errorf("reading config: %w", err)
	}

	var cfg domain.GeneratorConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return domain.GeneratorConfig{}, fmt.Errorf("parsing %s: %w", filepath.Base(path), err)
	}

	// Validate before merging so typos in the user's file are reported as written.
	if err := cfg.Validate(); err != nil {
		return domain.GeneratorConfig{}, fmt.Errorf("invalid %s: %w", filepath.Base(path), err)
	}

	if d, ok := domain.ParseDSL(cfg.DSL); ok {
		cfg.DSL = string(d)
	}

	// Relative directories are relative to the config file.
	base := filepath.Dir(path)
	cfg.ConverterDir = resolve(base, cfg.ConverterDir)
	cfg.TemplatesDir = resolve(base, cfg.TemplatesDir)

	return domain.MergeConfig(domain.DefaultConfig(), cfg), nil
}

func resolve(base, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(base, p)
}
