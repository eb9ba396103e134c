package cli

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/camelgen/camelgen/internal/adapters/outbound/artifact"
	"github.com/camelgen/camelgen/internal/adapters/outbound/config"
	"github.com/camelgen/camelgen/internal/adapters/outbound/converter"
	"github.com/camelgen/camelgen/internal/adapters/outbound/gitinfo"
	"github.com/camelgen/camelgen/internal/adapters/outbound/reconciler"
	"github.com/camelgen/camelgen/internal/adapters/outbound/templates"
	"github.com/camelgen/camelgen/internal/adapters/outbound/tui"
	"github.com/camelgen/camelgen/internal/application"
	"github.com/camelgen/camelgen/internal/domain"
)

// Argument token keys, lowercased.
const (
	keyAppName      = "appname"
	keyCamelVersion = "camelversion"
	keyCamelDSL     = "cameldsl"
	keyPackage      = "package"
	keyWSDL         = "wsdl"
	keyOutDirectory = "outdirectory"
	keyJaxWS        = "jaxws"
	keyJaxRS        = "jaxrs"
)

var tokenKeys = map[string]bool{
	keyAppName: true, keyCamelVersion: true, keyCamelDSL: true, keyPackage: true,
	keyWSDL: true, keyOutDirectory: true, keyJaxWS: true, keyJaxRS: true,
}

type newOptions struct {
	name         string
	pkg          string
	camelVersion string
	dsl          string
	wsdl2rest    bool
	wsdl         string
	outDirectory string
	jaxws        string
	jaxrs        string
	debug        bool
	dest         string
	force        bool
	gitInit      bool
	interactive  bool
	java         string
	converterDir string
	timeout      time.Duration
	jsonOutput   bool
	configPath   string
}

func newNewCmd() *cobra.Command {
	var opts newOptions

	cmd := &cobra.Command{
		Use:   "new [key=value ...]",
		Short: "Generate a new Camel project",
		Long: `Generate a Maven project for an Apache Camel integration.

Values can be given as flags or as key=value arguments (appname, camelVersion,
camelDSL, package, wsdl, outdirectory, jaxws, jaxrs). Flags win over arguments,
arguments over prompts (--interactive), prompts over .camelgen.yaml defaults.

With --wsdl2rest the wsdl2rest converter turns a WSDL into Java sources and a
REST route, and its build fragment is merged into pom.xml.`,
		Example: `  camelgen new appname=Orders package=com.acme.orders camelDSL=blueprint
  camelgen new --name Address --wsdl2rest --wsdl ./address.wsdl --jaxws http://localhost:9090/AddressPort`,
		RunE: func(cmd *cobra.Command, args []string) error {
			tokens, err := parseTokens(args)
			if err != nil {
				return err
			}

			cwd, err := os.Getwd()
			if err != nil {
				return err
			}
			cfg, err := config.New().Load(cwd, opts.configPath)
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}

			req, err := resolveRequest(cmd, opts, tokens, cfg)
			if err != nil {
				return err
			}

			logger := newLogger(cmd.ErrOrStderr(), req.Debug)
			svc := newScaffoldService(opts, cfg, logger)

			result, err := svc.Scaffold(cmd.Context(), req)
			if err != nil {
				return err
			}

			if opts.jsonOutput {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(result)
			}
			fmt.Fprint(cmd.OutOrStdout(), tui.RenderScaffold(result))
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.name, "name", "", "Project name, used as the Maven artifactId")
	f.StringVar(&opts.pkg, "package", "", "Java package, used as the Maven groupId (default com.<name>)")
	f.StringVar(&opts.camelVersion, "camel-version", "", "Apache Camel version (default "+domain.DefaultCamelVersion+")")
	f.StringVar(&opts.dsl, "dsl", "", "Camel DSL: spring, blueprint or java (default spring)")
	f.BoolVar(&opts.wsdl2rest, "wsdl2rest", false, "Generate a REST bridge for a WSDL with wsdl2rest")
	f.StringVar(&opts.wsdl, "wsdl", "", "WSDL file or URL (with --wsdl2rest)")
	f.StringVar(&opts.outDirectory, "out-directory", "", "Output directory for generated Java sources (default "+domain.DefaultOutDirectory+")")
	f.StringVar(&opts.jaxws, "jaxws", "", "JAX-WS endpoint URL (with --wsdl2rest)")
	f.StringVar(&opts.jaxrs, "jaxrs", "", "JAX-RS endpoint URL (with --wsdl2rest)")
	f.BoolVar(&opts.debug, "debug", false, "Log converter command lines and output")
	f.StringVar(&opts.dest, "dest", "", "Destination directory (default ./<name>)")
	f.BoolVar(&opts.force, "force", false, "Overwrite files in an existing project")
	f.BoolVar(&opts.gitInit, "git", false, "Initialize a git repository with an initial commit")
	f.BoolVarP(&opts.interactive, "interactive", "i", false, "Prompt for values not given as flags or arguments")
	f.StringVar(&opts.java, "java", "", "Java executable used to run wsdl2rest")
	f.StringVar(&opts.converterDir, "converter-dir", "", "Directory searched for the wsdl2rest fat jar")
	f.DurationVar(&opts.timeout, "timeout", 0, "Converter timeout (default 5m)")
	f.BoolVar(&opts.jsonOutput, "json", false, "Output the result as JSON")
	f.StringVar(&opts.configPath, "config", "", "Path to a config file (default ./"+config.FileName+")")

	return cmd
}

// parseTokens reads key=value arguments. Keys are case-insensitive.
func parseTokens(args []string) (map[string]string, error) {
	tokens := map[string]string{}
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		if !ok {
			return nil, fmt.Errorf("%w: argument %q is not key=value", domain.ErrInvalidRequest, arg)
		}
		key = strings.ToLower(strings.TrimSpace(key))
		if !tokenKeys[key] {
			return nil, fmt.Errorf("%w: unknown argument %q (valid keys: appname, camelVersion, camelDSL, package, wsdl, outdirectory, jaxws, jaxrs)", domain.ErrInvalidRequest, key)
		}
		tokens[key] = strings.TrimSpace(value)
	}
	return tokens, nil
}

// resolveRequest layers flags over tokens over prompts over config defaults.
func resolveRequest(cmd *cobra.Command, opts newOptions, tokens map[string]string, cfg domain.GeneratorConfig) (domain.ScaffoldRequest, error) {
	if !opts.wsdl2rest {
		if err := rejectBridgeValues(cmd, tokens); err != nil {
			return domain.ScaffoldRequest{}, err
		}
	}

	var p *prompter
	if opts.interactive {
		p = newPrompter(cmd.InOrStdin(), cmd.ErrOrStderr())
	}

	pick := func(flag, flagValue, key string, ask func() (string, error)) (string, error) {
		if cmd.Flags().Changed(flag) {
			return flagValue, nil
		}
		if v, ok := tokens[key]; ok {
			return v, nil
		}
		if p != nil && ask != nil {
			return ask()
		}
		return "", nil
	}

	req := domain.ScaffoldRequest{
		Wsdl2Rest: opts.wsdl2rest,
		Debug:     opts.debug,
		Force:     opts.force,
		GitInit:   opts.gitInit || cfg.GitInit,
	}

	var err error
	if req.Name, err = pick("name", opts.name, keyAppName, func() (string, error) {
		return p.ask("Project name", "", validateName)
	}); err != nil {
		return req, err
	}

	if req.CamelVersion, err = pick("camel-version", opts.camelVersion, keyCamelVersion, func() (string, error) {
		return p.ask("Camel version", cfg.CamelVersion, domain.ValidateCamelVersion)
	}); err != nil {
		return req, err
	}
	if req.CamelVersion == "" {
		req.CamelVersion = cfg.CamelVersion
	}

	dsl, err := pick("dsl", opts.dsl, keyCamelDSL, func() (string, error) {
		return p.askChoice("Camel DSL", cfg.DSL, req.Wsdl2Rest)
	})
	if err != nil {
		return req, err
	}
	if dsl == "" {
		dsl = cfg.DSL
	}
	if parsed, ok := domain.ParseDSL(dsl); ok {
		req.DSL = parsed
	} else {
		req.DSL = domain.DSL(dsl) // rejected by Validate with the list of valid DSLs
	}

	defaultPkg := ""
	if req.Name != "" {
		defaultPkg = domain.DefaultPackage(cfg.PackagePrefix, req.Name)
	}
	if req.Package, err = pick("package", opts.pkg, keyPackage, func() (string, error) {
		return p.ask("Java package", defaultPkg, validatePackage)
	}); err != nil {
		return req, err
	}
	if req.Package == "" {
		req.Package = defaultPkg
	}

	if req.Wsdl2Rest {
		if req.WSDL, err = pick("wsdl", opts.wsdl, keyWSDL, func() (string, error) {
			return p.ask("WSDL file or URL", "", required("a WSDL file or URL"))
		}); err != nil {
			return req, err
		}
		if req.OutDirectory, err = pick("out-directory", opts.outDirectory, keyOutDirectory, func() (string, error) {
			return p.ask("Output directory for generated sources", domain.DefaultOutDirectory, nil)
		}); err != nil {
			return req, err
		}
		if req.JaxWSURL, err = pick("jaxws", opts.jaxws, keyJaxWS, func() (string, error) {
			return p.ask("JAX-WS endpoint URL (blank for the WSDL address)", "", nil)
		}); err != nil {
			return req, err
		}
		if req.JaxRSURL, err = pick("jaxrs", opts.jaxrs, keyJaxRS, func() (string, error) {
			return p.ask("JAX-RS endpoint URL (blank for the default)", "", nil)
		}); err != nil {
			return req, err
		}
	}

	req.Destination = opts.dest
	if req.Destination == "" && req.Name != "" {
		req.Destination = req.Name
	}
	return req, nil
}

// bridgeValues pairs each wsdl2rest-only flag with its token key.
var bridgeValues = []struct{ flag, key string }{
	{"wsdl", keyWSDL},
	{"out-directory", keyOutDirectory},
	{"jaxws", keyJaxWS},
	{"jaxrs", keyJaxRS},
}

// rejectBridgeValues fails when values that only apply to the wsdl2rest
// bridge are given without --wsdl2rest.
func rejectBridgeValues(cmd *cobra.Command, tokens map[string]string) error {
	var given []string
	for _, v := range bridgeValues {
		if cmd.Flags().Changed(v.flag) {
			given = append(given, "--"+v.flag)
		}
		if _, ok := tokens[v.key]; ok {
			given = append(given, v.key)
		}
	}
	if len(given) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %s only apply with --wsdl2rest", domain.ErrInvalidRequest, strings.Join(given, ", "))
}

func newScaffoldService(opts newOptions, cfg domain.GeneratorConfig, logger *slog.Logger) *application.ScaffoldService {
	java := cfg.Java
	if opts.java != "" {
		java = opts.java
	}
	timeout := cfg.ConverterTimeout()
	if opts.timeout > 0 {
		timeout = opts.timeout
	}
	searchRoot := cfg.ConverterDir
	if opts.converterDir != "" {
		searchRoot = opts.converterDir
	}

	return application.NewScaffoldService(
		templates.New(templates.NewSource(cfg.TemplatesDir)),
		artifact.New(),
		converter.New(converter.NewExecRunner(), java, timeout, logger),
		reconciler.New(),
		gitinfo.New(),
		artifact.DefaultSearchRoot(searchRoot),
		logger,
	)
}

func validateName(s string) error {
	return domain.ScaffoldRequest{
		Name: s, Package: "com.check", CamelVersion: domain.DefaultCamelVersion, DSL: domain.DSLSpring, Destination: ".",
	}.Validate()
}

func validatePackage(s string) error {
	if !domain.ValidatePackage(s) {
		return fmt.Errorf("%w: %q", domain.ErrInvalidPackageName, s)
	}
	return nil
}

func required(what string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", what)
		}
		return nil
	}
}
