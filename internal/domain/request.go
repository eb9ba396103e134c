package domain

import (
	"fmt"
	"net/url"
	"path"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/fatih/camelcase"
	"github.com/iancoleman/strcase"
)

// DSL identifies the configuration style of the generated Camel routes.
type DSL string

const (
	DSLSpring    DSL = "spring"
	DSLBlueprint DSL = "blueprint"
	DSLJava      DSL = "java"
)

// ValidDSLs enumerates all supported route DSLs.
var ValidDSLs = []DSL{DSLSpring, DSLBlueprint, DSLJava}

// ParseDSL matches s case-insensitively against the supported DSLs.
func ParseDSL(s string) (DSL, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, d := range ValidDSLs {
		if string(d) == s {
			return d, true
		}
	}
	return "", false
}

// SupportsWsdl2Rest reports whether the wsdl2rest bridge can target d.
func (d DSL) SupportsWsdl2Rest() bool {
	return d == DSLSpring || d == DSLBlueprint
}

// ResourceFile returns the XML route file for d relative to the project root,
// or "" for the java DSL.
func (d DSL) ResourceFile() string {
	switch d {
	case DSLSpring:
		return "src/main/resources/META-INF/spring/camel-context.xml"
	case DSLBlueprint:
		return "src/main/resources/OSGI-INF/blueprint/blueprint.xml"
	}
	return ""
}

// DefaultOutDirectory is where generated Java sources land when no output
// directory is requested.
const DefaultOutDirectory = "src/main/java"

// ScaffoldRequest carries everything one scaffold run needs. It is built once
// and not modified afterwards.
type ScaffoldRequest struct {
	Name         string `json:"name"`
	Package      string `json:"package"`
	CamelVersion string `json:"camel_version"`
	DSL          DSL    `json:"dsl"`
	Wsdl2Rest    bool   `json:"wsdl2rest"`
	Debug        bool   `json:"debug,omitempty"`
	WSDL         string `json:"wsdl,omitempty"`
	OutDirectory string `json:"out_directory,omitempty"`
	JaxWSURL     string `json:"jaxws_url,omitempty"`
	JaxRSURL     string `json:"jaxrs_url,omitempty"`
	Destination  string `json:"destination"`
	Force        bool   `json:"force,omitempty"`
	GitInit      bool   `json:"git_init,omitempty"`
}

var artifactIDPattern = regexp.MustCompile(`^[A-Za-z0-9_.\-]+$`)

// Validate checks the request before anything touches the filesystem.
func (r ScaffoldRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return fmt.Errorf("%w: project name is required", ErrInvalidRequest)
	}
	if !artifactIDPattern.MatchString(r.Name) {
		return fmt.Errorf("%w: project name %q is not a valid Maven artifactId", ErrInvalidRequest, r.Name)
	}
	if !ValidatePackage(r.Package) {
		return fmt.Errorf("%w: %q", ErrInvalidPackageName, r.Package)
	}
	if err := ValidateCamelVersion(r.CamelVersion); err != nil {
		return err
	}
	if err := ValidateCamelDSL(string(r.DSL), r.Wsdl2Rest).Err(); err != nil {
		return err
	}
	if r.Destination == "" {
		return fmt.Errorf("%w: destination directory is required", ErrInvalidRequest)
	}
	if !r.Wsdl2Rest {
		return nil
	}
	if strings.TrimSpace(r.WSDL) == "" {
		return fmt.Errorf("%w: a WSDL file or URL is required with wsdl2rest", ErrInvalidRequest)
	}
	for _, ep := range []struct{ flag, raw string }{{"jaxws", r.JaxWSURL}, {"jaxrs", r.JaxRSURL}} {
		flag, raw := ep.flag, ep.raw
		if raw == "" {
			continue
		}
		u, err := url.Parse(raw)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("%w: %s URL %q must be an absolute http(s) URL", ErrInvalidRequest, flag, raw)
		}
	}
	return nil
}

// PackagePath returns the package as a slash-separated directory path.
func (r ScaffoldRequest) PackagePath() string {
	return PackagePath(r.Package)
}

// PackagePath converts a dotted package name into a directory path.
func PackagePath(pkg string) string {
	return path.Join(strings.Split(pkg, ".")...)
}

// Title splits the camel-cased project name into words, e.g. MyAppMock
// becomes "My App Mock".
func (r ScaffoldRequest) Title() string {
	return Title(r.Name)
}

// Title splits a camel-cased or dashed name into space-separated words.
func Title(name string) string {
	var words []string
	for _, part := range strings.FieldsFunc(name, func(r rune) bool {
		return r == '-' || r == '_' || r == '.' || r == ' '
	}) {
		words = append(words, camelcase.Split(part)...)
	}
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}

// RouteID returns the kebab-cased route id used in the generated routes.
func (r ScaffoldRequest) RouteID() string {
	return RouteID(r.Name)
}

// RouteID derives a kebab-cased route id from a project name.
func RouteID(name string) string {
	return strcase.ToKebab(name) + "-route"
}

// ClassPrefix returns the project name as an upper camel-case Java identifier.
func (r ScaffoldRequest) ClassPrefix() string {
	return strcase.ToCamel(r.Name)
}

// ResourceFile returns the route file for the requested DSL.
func (r ScaffoldRequest) ResourceFile() string {
	return r.DSL.ResourceFile()
}

// ResolvedOutDirectory returns the converter output directory. Relative
// directories are taken relative to the destination.
func (r ScaffoldRequest) ResolvedOutDirectory() string {
	out := r.OutDirectory
	if out == "" {
		out = DefaultOutDirectory
	}
	if filepath.IsAbs(out) {
		return out
	}
	return filepath.Join(r.Destination, filepath.FromSlash(out))
}

// DefaultPackage derives a package from prefix and the project name, e.g.
// ("com", "My-App") becomes "com.myapp".
func DefaultPackage(prefix, name string) string {
	seg := strings.Map(func(r rune) rune {
		if r == '_' || ('a' <= r && r <= 'z') || ('0' <= r && r <= '9') {
			return r
		}
		return -1
	}, strings.ToLower(name))
	if seg == "" || ('0' <= seg[0] && seg[0] <= '9') || IsJavaReserved(seg) {
		seg = "app" + seg
	}
	if prefix == "" {
		return seg
	}
	return prefix + "." + seg
}
