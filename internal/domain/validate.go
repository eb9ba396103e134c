package domain

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/Masterminds/semver/v3"
)

// javaReserved holds the Java keywords and literals that cannot appear as a
// package segment.
var javaReserved = map[string]bool{
	"abstract": true, "assert": true, "boolean": true, "break": true,
	"byte": true, "case": true, "catch": true, "char": true,
	"class": true, "const": true, "continue": true, "default": true,
	"do": true, "double": true, "else": true, "enum": true,
	"extends": true, "final": true, "finally": true, "float": true,
	"for": true, "goto": true, "if": true, "implements": true,
	"import": true, "instanceof": true, "int": true, "interface": true,
	"long": true, "native": true, "new": true, "package": true,
	"private": true, "protected": true, "public": true, "return": true,
	"short": true, "static": true, "strictfp": true, "super": true,
	"switch": true, "synchronized": true, "this": true, "throw": true,
	"throws": true, "transient": true, "try": true, "void": true,
	"volatile": true, "while": true, "_": true,
	"true": true, "false": true, "null": true,
}

// IsJavaReserved reports whether word is a Java keyword or literal.
func IsJavaReserved(word string) bool {
	return javaReserved[word]
}

// ValidatePackage reports whether name is a legal Java package name.
func ValidatePackage(name string) bool {
	if name == "" {
		return false
	}
	for _, segment := range strings.Split(name, ".") {
		if !isJavaIdentifier(segment) || javaReserved[segment] {
			return false
		}
	}
	return true
}

func isJavaIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_' || r == '$' || unicode.IsLetter(r):
		case i > 0 && unicode.IsDigit(r):
		default:
			return false
		}
	}
	return true
}

// Wsdl2RestDSLMessage is reported when the java DSL is combined with wsdl2rest.
const Wsdl2RestDSLMessage = "When using wsdl2rest, the Camel DSL must be either 'spring' or 'blueprint'."

// DSLCheck is the outcome of ValidateCamelDSL. The zero value is a success.
type DSLCheck struct {
	Message string
}

// OK reports whether the DSL was accepted.
func (c DSLCheck) OK() bool { return c.Message == "" }

// Err returns nil on success, otherwise an error wrapping ErrIncompatibleDSL.
func (c DSLCheck) Err() error {
	if c.OK() {
		return nil
	}
	return fmt.Errorf("%w: %s", ErrIncompatibleDSL, c.Message)
}

// ValidateCamelDSL checks dsl against the DSLs allowed for the requested mode.
func ValidateCamelDSL(dsl string, wsdl2rest bool) DSLCheck {
	d, ok := ParseDSL(dsl)
	if !ok {
		return DSLCheck{Message: fmt.Sprintf("Unknown Camel DSL %q (valid: %s).", dsl, dslNames())}
	}
	if wsdl2rest && !d.SupportsWsdl2Rest() {
		return DSLCheck{Message: Wsdl2RestDSLMessage}
	}
	return DSLCheck{}
}

// ValidateCamelVersion checks that v is a semantic version.
func ValidateCamelVersion(v string) error {
	if strings.TrimSpace(v) == "" {
		return fmt.Errorf("%w: camel version is required", ErrInvalidRequest)
	}
	if _, err := semver.NewVersion(v); err != nil {
		return fmt.Errorf("%w: camel version %q is not a semantic version", ErrInvalidRequest, v)
	}
	return nil
}

func dslNames() string {
	names := make([]string, len(ValidDSLs))
	for i, d := range ValidDSLs {
		names[i] = string(d)
	}
	return strings.Join(names, ", ")
}
