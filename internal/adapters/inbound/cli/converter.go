package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/camelgen/camelgen/internal/adapters/outbound/artifact"
	"github.com/camelgen/camelgen/internal/adapters/outbound/config"
	"github.com/camelgen/camelgen/internal/adapters/outbound/tui"
)

func newConverterCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "converter",
		Short: "wsdl2rest converter commands",
	}
	cmd.AddCommand(newConverterFindCmd())
	return cmd
}

func newConverterFindCmd() *cobra.Command {
	var (
		jsonOutput bool
		configPath string
	)

	cmd := &cobra.Command{
		Use:   "find [dir]",
		Short: "Locate the wsdl2rest fat jar",
		Long:  "Search dir (default: converter_dir from .camelgen.yaml, $" + artifact.EnvSearchDir + ", or wsdl2rest/target next to the executable) for the wsdl2rest fat jar.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := ""
			if len(args) > 0 {
				root = args[0]
			} else {
				cwd, err := os.Getwd()
				if err != nil {
					return err
				}
				cfg, err := config.New().Load(cwd, configPath)
				if err != nil {
					return fmt.Errorf("loading config: %w", err)
				}
				root = artifact.DefaultSearchRoot(cfg.ConverterDir)
			}

			jar, err := artifact.New().Find(root)
			if err != nil {
				return err
			}

			if jsonOutput {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(map[string]string{"search_root": root, "jar": jar})
			}
			fmt.Fprint(cmd.OutOrStdout(), tui.RenderConverter(root, jar))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	cmd.Flags().StringVar(&configPath, "config", "", "Path to a config file (default ./"+config.FileName+")")
	return cmd
}
