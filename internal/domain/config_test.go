package domain_test

import (
	"testing"
	"time"

	"github.com/camelgen/camelgen/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig_IsValid(t *testing.T) {
	cfg := domain.DefaultConfig()
	assert.NoError(t, cfg.Validate())
	assert.Equal(t, "2.22.2", cfg.CamelVersion)
	assert.Equal(t, "spring", cfg.DSL)
	assert.Equal(t, "java", cfg.Java)
	assert.Equal(t, domain.DefaultConverterTimeout, cfg.ConverterTimeout())
}

func TestValidate_UnknownDSL(t *testing.T) {
	cfg := domain.GeneratorConfig{DSL: "groovy"}
	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unknown dsl")
}

func TestValidate_BadVersion(t *testing.T) {
	cfg := domain.GeneratorConfig{CamelVersion: "next"}
	assert.Error(t, cfg.Validate())
}

func TestValidate_BadPackagePrefix(t *testing.T) {
	cfg := domain.GeneratorConfig{PackagePrefix: "com.package"}
	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "package_prefix")
}

func TestValidate_Timeout(t *testing.T) {
	assert.Error(t, domain.GeneratorConfig{Timeout: "soon"}.Validate())
	assert.Error(t, domain.GeneratorConfig{Timeout: "-1s"}.Validate())
	assert.NoError(t, domain.GeneratorConfig{Timeout: "90s"}.Validate())
}

func TestConverterTimeout_FallsBack(t *testing.T) {
	assert.Equal(t, 90*time.Second, domain.GeneratorConfig{Timeout: "90s"}.ConverterTimeout())
	assert.Equal(t, domain.DefaultConverterTimeout, domain.GeneratorConfig{}.ConverterTimeout())
}

func TestMergeConfig_ExplicitValuesWin(t *testing.T) {
	merged := domain.MergeConfig(domain.DefaultConfig(), domain.GeneratorConfig{
		CamelVersion: "3.4.0",
		DSL:          "blueprint",
		ConverterDir: "/opt/wsdl2rest",
	})
	assert.Equal(t, "3.4.0", merged.CamelVersion)
	assert.Equal(t, "blueprint", merged.DSL)
	assert.Equal(t, "/opt/wsdl2rest", merged.ConverterDir)
	assert.Equal(t, "java", merged.Java, "unset values keep the default")
	assert.Equal(t, "com", merged.PackagePrefix)
}
