package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"path/filepath"
	"strings"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/camelgen/camelgen/internal/adapters/outbound/artifact"
	"github.com/camelgen/camelgen/internal/adapters/outbound/config"
	"github.com/camelgen/camelgen/internal/adapters/outbound/converter"
	"github.com/camelgen/camelgen/internal/adapters/outbound/gitinfo"
	"github.com/camelgen/camelgen/internal/adapters/outbound/reconciler"
	"github.com/camelgen/camelgen/internal/adapters/outbound/templates"
	"github.com/camelgen/camelgen/internal/application"
	"github.com/camelgen/camelgen/internal/domain"
)

// validation is the result shape of the validate tools.
type validation struct {
	Value   string `json:"value"`
	Valid   bool   `json:"valid"`
	Message string `json:"message,omitempty"`
}

// registerTools registers all camelgen MCP tools on the given server.
func registerTools(s *server.MCPServer, workDir string) {
	s.AddTool(
		mcplib.NewTool("camelgen_validate_package",
			mcplib.WithDescription("Check whether a name is a legal Java package (dot-separated identifiers that are not reserved words)."),
			mcplib.WithString("package",
				mcplib.Required(),
				mcplib.Description("Package name, e.g. com.acme.orders"),
			),
		),
		handleValidatePackage(),
	)

	s.AddTool(
		mcplib.NewTool("camelgen_validate_dsl",
			mcplib.WithDescription("Check a Camel DSL choice. With wsdl2rest only spring and blueprint are allowed."),
			mcplib.WithString("dsl",
				mcplib.Required(),
				mcplib.Description("Camel DSL: spring, blueprint or java"),
			),
			mcplib.WithBoolean("wsdl2rest",
				mcplib.Description("Validate for a project generated with wsdl2rest"),
			),
		),
		handleValidateDSL(),
	)

	s.AddTool(
		mcplib.NewTool("camelgen_find_converter",
			mcplib.WithDescription("Locate the wsdl2rest fat jar used for SOAP to REST bridging."),
			mcplib.WithString("dir",
				mcplib.Description("Directory to search. Defaults to converter_dir from .camelgen.yaml or wsdl2rest/target."),
			),
		),
		handleFindConverter(workDir),
	)

	s.AddTool(
		mcplib.NewTool("camelgen_scaffold",
			mcplib.WithDescription("Generate a Maven project for an Apache Camel integration, optionally bridging a WSDL to REST with wsdl2rest."),
			mcplib.WithString("name",
				mcplib.Required(),
				mcplib.Description("Project name, used as the Maven artifactId"),
			),
			mcplib.WithString("package",
				mcplib.Description("Java package. Defaults to the configured prefix plus the name."),
			),
			mcplib.WithString("camel_version",
				mcplib.Description("Apache Camel version"),
			),
			mcplib.WithString("dsl",
				mcplib.Description("Camel DSL: spring, blueprint or java"),
			),
			mcplib.WithBoolean("wsdl2rest",
				mcplib.Description("Run wsdl2rest against the WSDL"),
			),
			mcplib.WithString("wsdl",
				mcplib.Description("WSDL file or URL, required with wsdl2rest"),
			),
			mcplib.WithString("out_directory",
				mcplib.Description("Output directory for generated Java sources"),
			),
			mcplib.WithString("jaxws",
				mcplib.Description("JAX-WS endpoint URL"),
			),
			mcplib.WithString("jaxrs",
				mcplib.Description("JAX-RS endpoint URL"),
			),
			mcplib.WithString("destination",
				mcplib.Description("Destination directory. Defaults to the name under the working directory."),
			),
			mcplib.WithBoolean("force",
				mcplib.Description("Overwrite files in an existing project"),
			),
			mcplib.WithBoolean("git",
				mcplib.Description("Initialize a git repository with an initial commit"),
			),
		),
		handleScaffold(workDir),
	)
}

func handleValidatePackage() server.ToolHandlerFunc {
	return func(_ context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		pkg, err := request.RequireString("package")
		if err != nil {
			return errorResult("missing required parameter: package"), nil
		}
		res := validation{Value: pkg, Valid: domain.ValidatePackage(pkg)}
		if !res.Valid {
			res.Message = fmt.Sprintf("%q is not a valid Java package", pkg)
		}
		return jsonResult(res)
	}
}

func handleValidateDSL() server.ToolHandlerFunc {
	return func(_ context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		dsl, err := request.RequireString("dsl")
		if err != nil {
			return errorResult("missing required parameter: dsl"), nil
		}
		wsdl2rest, _ := request.GetArguments()["wsdl2rest"].(bool)

		check := domain.ValidateCamelDSL(dsl, wsdl2rest)
		return jsonResult(validation{Value: dsl, Valid: check.OK(), Message: check.Message})
	}
}

func handleFindConverter(workDir string) server.ToolHandlerFunc {
	return func(_ context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		root := stringArg(request, "dir")
		if root == "" {
			cfg, err := config.New().Load(workDir, "")
			if err != nil {
				return errorResult(fmt.Sprintf("loading config: %v", err)), nil
			}
			root = artifact.DefaultSearchRoot(cfg.ConverterDir)
		}
		root = resolve(workDir, root)

		jar, err := artifact.New().Find(root)
		if err != nil {
			return errorResult(err.Error()), nil
		}
		return jsonResult(map[string]string{"search_root": root, "jar": jar})
	}
}

func handleScaffold(workDir string) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		name, err := request.RequireString("name")
		if err != nil {
			return errorResult("missing required parameter: name"), nil
		}

		cfg, err := config.New().Load(workDir, "")
		if err != nil {
			return errorResult(fmt.Sprintf("loading config: %v", err)), nil
		}

		req := domain.ScaffoldRequest{
			Name:         name,
			Package:      stringArg(request, "package"),
			CamelVersion: stringArg(request, "camel_version"),
			DSL:          domain.DSL(stringArg(request, "dsl")),
			Wsdl2Rest:    boolArg(request, "wsdl2rest"),
			WSDL:         stringArg(request, "wsdl"),
			OutDirectory: stringArg(request, "out_directory"),
			JaxWSURL:     stringArg(request, "jaxws"),
			JaxRSURL:     stringArg(request, "jaxrs"),
			Destination:  stringArg(request, "destination"),
			Force:        boolArg(request, "force"),
			GitInit:      boolArg(request, "git") || cfg.GitInit,
		}
		if req.Package == "" {
			req.Package = domain.DefaultPackage(cfg.PackagePrefix, name)
		}
		if req.CamelVersion == "" {
			req.CamelVersion = cfg.CamelVersion
		}
		if req.DSL == "" {
			req.DSL = domain.DSL(cfg.DSL)
		}
		if parsed, ok := domain.ParseDSL(string(req.DSL)); ok {
			req.DSL = parsed
		}
		if req.Destination == "" {
			req.Destination = name
		}
		req.Destination = resolve(workDir, req.Destination)
		if req.WSDL != "" && !isURL(req.WSDL) {
			req.WSDL = resolve(workDir, req.WSDL)
		}

		// stdio carries the protocol, so converter diagnostics are dropped
		logger := slog.New(slog.NewTextHandler(io.Discard, nil))
		svc := application.NewScaffoldService(
			templates.New(templates.NewSource(resolveOptional(workDir, cfg.TemplatesDir))),
			artifact.New(),
			converter.New(converter.NewExecRunner(), cfg.Java, cfg.ConverterTimeout(), logger),
			reconciler.New(),
			gitinfo.New(),
			artifact.DefaultSearchRoot(resolveOptional(workDir, cfg.ConverterDir)),
			logger,
		)

		result, err := svc.Scaffold(ctx, req)
		if err != nil {
			return errorResult(fmt.Sprintf("scaffold failed: %v", err)), nil
		}
		return jsonResult(result)
	}
}

func stringArg(request mcplib.CallToolRequest, key string) string {
	v, _ := request.GetArguments()[key].(string)
	return v
}

func boolArg(request mcplib.CallToolRequest, key string) bool {
	v, _ := request.GetArguments()[key].(bool)
	return v
}

func resolve(workDir, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(workDir, path)
}

func resolveOptional(workDir, path string) string {
	if path == "" {
		return ""
	}
	return resolve(workDir, path)
}

func isURL(s string) bool {
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	switch strings.ToLower(u.Scheme) {
	case "http", "https", "file":
		return true
	}
	return false
}

// jsonResult marshals v to JSON and returns it as a text content result.
func jsonResult(v interface{}) (*mcplib.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling result: %w", err)
	}
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(string(data))},
	}, nil
}

// errorResult returns an error content result.
func errorResult(msg string) *mcplib.CallToolResult {
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(msg)},
		IsError: true,
	}
}
