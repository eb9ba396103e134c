package domain_test

import (
	"errors"
	"testing"

	"github.com/camelgen/camelgen/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestValidatePackage_Valid(t *testing.T) {
	for _, pkg := range []string{
		"com.valid",
		"com.generator.mock",
		"org.example.my_app",
		"a",
		"com.example.v2",
		"$dollar.pkg",
	} {
		assert.True(t, domain.ValidatePackage(pkg), pkg)
	}
}

func TestValidatePackage_InvalidCharacters(t *testing.T) {
	assert.False(t, domain.ValidatePackage("invalid@.pkg.name"))
	assert.False(t, domain.ValidatePackage("com.my-app"))
	assert.False(t, domain.ValidatePackage("com. spaced"))
}

func TestValidatePackage_JavaKeyword(t *testing.T) {
	assert.False(t, domain.ValidatePackage("a.name.with.package"))
	assert.False(t, domain.ValidatePackage("com.class"))
	assert.False(t, domain.ValidatePackage("null.pkg"))
}

func TestValidatePackage_EmptySegments(t *testing.T) {
	assert.False(t, domain.ValidatePackage(""))
	assert.False(t, domain.ValidatePackage("com..example"))
	assert.False(t, domain.ValidatePackage(".com"))
	assert.False(t, domain.ValidatePackage("com."))
}

func TestValidatePackage_LeadingDigit(t *testing.T) {
	assert.False(t, domain.ValidatePackage("com.1st"))
}

func TestValidateCamelDSL_WithoutWsdl2Rest(t *testing.T) {
	for _, dsl := range []string{"spring", "blueprint", "java"} {
		assert.True(t, domain.ValidateCamelDSL(dsl, false).OK(), dsl)
	}
}

func TestValidateCamelDSL_WithWsdl2Rest(t *testing.T) {
	assert.True(t, domain.ValidateCamelDSL("spring", true).OK())
	assert.True(t, domain.ValidateCamelDSL("blueprint", true).OK())
}

func TestValidateCamelDSL_JavaRejectedForWsdl2Rest(t *testing.T) {
	check := domain.ValidateCamelDSL("java", true)
	assert.False(t, check.OK())
	assert.Equal(t, "When using wsdl2rest, the Camel DSL must be either 'spring' or 'blueprint'.", check.Message)

	err := check.Err()
	assert.True(t, errors.Is(err, domain.ErrIncompatibleDSL))
	assert.Contains(t, err.Error(), check.Message)
}

func TestValidateCamelDSL_CaseInsensitive(t *testing.T) {
	assert.True(t, domain.ValidateCamelDSL("Spring", true).OK())
	assert.True(t, domain.ValidateCamelDSL(" JAVA ", false).OK())
}

func TestValidateCamelDSL_Unknown(t *testing.T) {
	check := domain.ValidateCamelDSL("groovy", false)
	assert.False(t, check.OK())
	assert.Contains(t, check.Message, "groovy")
	assert.Contains(t, check.Message, "spring, blueprint, java")
}

func TestDSLCheck_SuccessHasNoError(t *testing.T) {
	assert.NoError(t, domain.DSLCheck{}.Err())
}

func TestValidateCamelVersion(t *testing.T) {
	assert.NoError(t, domain.ValidateCamelVersion("2.22.2"))
	assert.NoError(t, domain.ValidateCamelVersion("3.20.1"))
	assert.Error(t, domain.ValidateCamelVersion(""))
	assert.Error(t, domain.ValidateCamelVersion("latest"))
}
