package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/camelgen/camelgen/internal/adapters/outbound/config"
	"github.com/camelgen/camelgen/internal/domain"
)

func newInitCmd() *cobra.Command {
	var (
		cfg   domain.GeneratorConfig
		force bool
	)

	cmd := &cobra.Command{
		Use:   "init [dir]",
		Short: "Generate a .camelgen.yaml configuration file",
		Long:  "Create a .camelgen.yaml holding the defaults camelgen new uses when a value is not given.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "."
			if len(args) > 0 {
				path = args[0]
			}

			absPath, err := filepath.Abs(path)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			dest := filepath.Join(absPath, config.FileName)

			if !force {
				if _, err := os.Stat(dest); err == nil {
					return fmt.Errorf("%s already exists (use --force to overwrite)", config.FileName)
				}
			}

			if err := cfg.Validate(); err != nil {
				return err
			}

			content := generateConfig(domain.MergeConfig(domain.DefaultConfig(), cfg))

			if err := os.WriteFile(dest, []byte(content), 0644); err != nil {
				return fmt.Errorf("writing config: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", config.FileName)
			return nil
		},
	}

	cmd.Flags().StringVar(&cfg.CamelVersion, "camel-version", "", "Default Camel version")
	cmd.Flags().StringVar(&cfg.DSL, "dsl", "", "Default Camel DSL (spring, blueprint, java)")
	cmd.Flags().StringVar(&cfg.PackagePrefix, "package-prefix", "", "Prefix for derived package names")
	cmd.Flags().StringVar(&cfg.ConverterDir, "converter-dir", "", "Directory searched for the wsdl2rest fat jar")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing .camelgen.yaml")

	return cmd
}

func generateConfig(cfg domain.GeneratorConfig) string {
	result := fmt.Sprintf(`# camelgen configuration

camel_version: %s
dsl: %s
package_prefix: %s
timeout: %s
`, cfg.CamelVersion, cfg.DSL, cfg.PackagePrefix, cfg.Timeout)

	if cfg.ConverterDir != "" {
		result += fmt.Sprintf("converter_dir: %s\n", cfg.ConverterDir)
	} else {
		result += "\n# converter_dir: wsdl2rest/target\n"
	}

	result += `# java: /usr/lib/jvm/java-8-openjdk/bin/java
# templates_dir: ./camel-templates
# git_init: true
`

	return result
}
