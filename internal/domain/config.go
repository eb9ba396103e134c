package domain

import (
	"fmt"
	"time"
)

const (
	DefaultCamelVersion     = "2.22.2"
	DefaultDSL              = DSLSpring
	DefaultJavaCommand      = "java"
	DefaultConverterTimeout = 5 * time.Minute
)

// GeneratorConfig holds user defaults loaded from .camelgen.yaml.
type GeneratorConfig struct {
	CamelVersion  string `yaml:"camel_version"  json:"camel_version,omitempty"`
	DSL           string `yaml:"dsl"            json:"dsl,omitempty"`
	PackagePrefix string `yaml:"package_prefix" json:"package_prefix,omitempty"`
	ConverterDir  string `yaml:"converter_dir"  json:"converter_dir,omitempty"`
	Java          string `yaml:"java"           json:"java,omitempty"`
	Timeout       string `yaml:"timeout"        json:"timeout,omitempty"`
	TemplatesDir  string `yaml:"templates_dir"  json:"templates_dir,omitempty"`
	GitInit       bool   `yaml:"git_init"       json:"git_init,omitempty"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() GeneratorConfig {
	return GeneratorConfig{
		CamelVersion:  DefaultCamelVersion,
		DSL:           string(DefaultDSL),
		PackagePrefix: "com",
		Java:          DefaultJavaCommand,
		Timeout:       DefaultConverterTimeout.String(),
	}
}

// Validate checks the config for invalid values and returns a descriptive error.
func (c GeneratorConfig) Validate() error {
	if c.DSL != "" {
		if _, ok := ParseDSL(c.DSL); !ok {
			return fmt.Errorf("unknown dsl %q (valid: %s)", c.DSL, dslNames())
		}
	}
	if c.CamelVersion != "" {
		if err := ValidateCamelVersion(c.CamelVersion); err != nil {
			return err
		}
	}
	if c.PackagePrefix != "" && !ValidatePackage(c.PackagePrefix) {
		return fmt.Errorf("package_prefix %q is not a valid Java package", c.PackagePrefix)
	}
	if c.Timeout != "" {
		d, err := time.ParseDuration(c.Timeout)
		if err != nil {
			return fmt.Errorf("timeout %q: %w", c.Timeout, err)
		}
		if d <= 0 {
			return fmt.Errorf("timeout must be positive, got %s", c.Timeout)
		}
	}
	return nil
}

// ConverterTimeout returns the parsed timeout, falling back to the default.
func (c GeneratorConfig) ConverterTimeout() time.Duration {
	if d, err := time.ParseDuration(c.Timeout); err == nil && d > 0 {
		return d
	}
	return DefaultConverterTimeout
}

// MergeConfig overlays explicit (non-zero) values from override onto base.
func MergeConfig(base, override GeneratorConfig) GeneratorConfig {
	result := base
	if override.CamelVersion != "" {
		result.CamelVersion = override.CamelVersion
	}
	if override.DSL != "" {
		result.DSL = override.DSL
	}
	if override.PackagePrefix != "" {
		result.PackagePrefix = override.PackagePrefix
	}
	if override.ConverterDir != "" {
		result.ConverterDir = override.ConverterDir
	}
	if override.Java != "" {
		result.Java = override.Java
	}
	if override.Timeout != "" {
		result.Timeout = override.Timeout
	}
	if override.TemplatesDir != "" {
		result.TemplatesDir = override.TemplatesDir
	}
	result.GitInit = base.GitInit || override.GitInit
	return result
}
