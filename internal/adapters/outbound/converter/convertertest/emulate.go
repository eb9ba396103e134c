// Package convertertest emulates the wsdl2rest converter so scaffold runs can
// be tested without a JVM.
package convertertest

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/iancoleman/strcase"
)

type wsdlDocument struct {
	TargetNamespace string `xml:"targetNamespace,attr"`
	PortTypes       []struct {
		Name string `xml:"name,attr"`
	} `xml:"portType"`
	Types struct {
		Schemas []struct {
			ComplexTypes []struct {
				Name string `xml:"name,attr"`
			} `xml:"complexType"`
		} `xml:"schema"`
	} `xml:"types"`
}

// Invocation is a parsed converter command line.
type Invocation struct {
	Jar         string
	WSDL        string
	Out         string
	ContextFlag string
	ContextPath string
	JaxWS       string
	JaxRS       string
}

// ParseArgs reads the arguments camelgen passes to the converter jar.
func ParseArgs(args []string) (Invocation, error) {
	var inv Invocation
	for i := 0; i < len(args); i++ {
		flag := args[i]
		if i+1 >= len(args) {
			return inv, fmt.Errorf("missing value for %s", flag)
		}
		value := args[i+1]
		i++
		switch flag {
		case "-jar":
			inv.Jar = value
		case "--wsdl":
			inv.WSDL = value
		case "--out":
			inv.Out = value
		case "--camel-context", "--blueprint-context":
			inv.ContextFlag, inv.ContextPath = flag, value
		case "--jaxws":
			inv.JaxWS = value
		case "--jaxrs":
			inv.JaxRS = value
		default:
			return inv, fmt.Errorf("unknown option %s", flag)
		}
	}
	if inv.WSDL == "" || inv.Out == "" {
		return inv, errors.New("--wsdl and --out are required")
	}
	return inv, nil
}

// Emulate does what the converter would for args: it resolves the WSDL, writes
// one Java source per port type and named complex type, and writes the REST
// route context. It returns the sources it wrote.
func Emulate(args []string) ([]string, error) {
	inv, err := ParseArgs(args)
	if err != nil {
		return nil, err
	}

	data, err := fetch(inv.WSDL)
	if err != nil {
		return nil, fmt.Errorf("reading WSDL %s: %w", inv.WSDL, err)
	}
	var doc wsdlDocument
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing WSDL: %w", err)
	}

	pkg := NamespacePackage(doc.TargetNamespace)
	dir := filepath.Join(inv.Out, filepath.FromSlash(strings.ReplaceAll(pkg, ".", "/")))
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	var names []string
	for _, pt := range doc.PortTypes {
		names = append(names, pt.Name)
	}
	for _, s := range doc.Types.Schemas {
		for _, ct := range s.ComplexTypes {
			if ct.Name != "" {
				names = append(names, ct.Name)
			}
		}
	}

	var written []string
	seen := map[string]bool{}
	for _, n := range names {
		class := strcase.ToCamel(n)
		if seen[class] {
			continue
		}
		seen[class] = true
		path := filepath.Join(dir, class+".java")
		src := fmt.Sprintf("package %s;\n\npublic class %s {\n}\n", pkg, class)
		if err := os.WriteFile(path, []byte(src), 0644); err != nil {
			return nil, err
		}
		written = append(written, path)
	}

	if inv.ContextPath != "" {
		if err := writeContext(inv, pkg); err != nil {
			return nil, err
		}
	}
	return written, nil
}

func writeContext(inv Invocation, pkg string) error {
	jaxrs := inv.JaxRS
	if jaxrs == "" {
		jaxrs = "http://localhost:8081/jaxrs"
	}
	root := "beans"
	if inv.ContextFlag == "--blueprint-context" {
		root = "blueprint"
	}
	body := fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<%s>
  <camelContext id="camel">
    <restConfiguration component="jetty" host="%s"/>
    <!-- generated from %s for %s -->
  </camelContext>
</%s>
`, root, jaxrs, inv.WSDL, pkg, root)
	if err := os.MkdirAll(filepath.Dir(inv.ContextPath), 0755); err != nil {
		return err
	}
	return os.WriteFile(inv.ContextPath, []byte(body), 0644)
}

func fetch(src string) ([]byte, error) {
	u, err := url.Parse(src)
	if err != nil {
		return nil, err
	}
	switch u.Scheme {
	case "http", "https":
		resp, err := http.Get(src)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("received response code %d", resp.StatusCode)
		}
		return io.ReadAll(resp.Body)
	case "file":
		return os.ReadFile(filepath.FromSlash(u.Path))
	}
	return os.ReadFile(src)
}

// NamespacePackage maps an XML namespace to a Java package the way JAXB does:
// reversed host labels followed by the path segments.
func NamespacePackage(ns string) string {
	u, err := url.Parse(ns)
	if err != nil || u.Host == "" {
		return "generated"
	}
	labels := strings.Split(strings.ToLower(u.Hostname()), ".")
	if len(labels) > 0 && labels[0] == "www" {
		labels = labels[1:]
	}
	var parts []string
	for i := len(labels) - 1; i >= 0; i-- {
		parts = append(parts, labels[i])
	}
	for _, seg := range strings.Split(u.Path, "/") {
		if seg != "" {
			parts = append(parts, strings.ToLower(seg))
		}
	}
	return strings.Join(parts, ".")
}
