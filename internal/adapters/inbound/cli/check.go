package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/camelgen/camelgen/internal/adapters/outbound/tui"
	"github.com/camelgen/camelgen/internal/domain"
)

// checkResult is the JSON form of a single validation.
type checkResult struct {
	Subject string `json:"subject"`
	Value   string `json:"value"`
	Valid   bool   `json:"valid"`
	Message string `json:"message,omitempty"`
}

var errCheckFailed = errors.New("check failed")

func newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Validate project parameters",
		Long:  "Validate a Java package name, a Camel DSL choice or a Camel version without generating anything.",
	}
	cmd.AddCommand(newCheckPackageCmd())
	cmd.AddCommand(newCheckDSLCmd())
	cmd.AddCommand(newCheckCamelVersionCmd())
	return cmd
}

func newCheckPackageCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "package <name>",
		Short: "Check a Java package name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res := checkResult{Subject: "package", Value: args[0], Valid: domain.ValidatePackage(args[0])}
			if !res.Valid {
				res.Message = fmt.Sprintf("%q is not a valid Java package: segments must be Java identifiers and not reserved words.", args[0])
			}
			return renderCheck(cmd, res, jsonOutput)
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	return cmd
}

func newCheckDSLCmd() *cobra.Command {
	var (
		wsdl2rest  bool
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "dsl <dsl>",
		Short: "Check a Camel DSL choice",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			check := domain.ValidateCamelDSL(args[0], wsdl2rest)
			res := checkResult{Subject: "dsl", Value: args[0], Valid: check.OK(), Message: check.Message}
			return renderCheck(cmd, res, jsonOutput)
		},
	}

	cmd.Flags().BoolVar(&wsdl2rest, "wsdl2rest", false, "Check against the DSLs wsdl2rest supports")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	return cmd
}

func newCheckCamelVersionCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "camel-version <version>",
		Short: "Check a Camel version string",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res := checkResult{Subject: "camel-version", Value: args[0], Valid: true}
			if err := domain.ValidateCamelVersion(args[0]); err != nil {
				res.Valid = false
				res.Message = err.Error()
			}
			return renderCheck(cmd, res, jsonOutput)
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	return cmd
}

// renderCheck prints res and turns a failed check into a non-zero exit.
func renderCheck(cmd *cobra.Command, res checkResult, jsonOutput bool) error {
	if jsonOutput {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		if err := enc.Encode(res); err != nil {
			return err
		}
	} else {
		fmt.Fprint(cmd.OutOrStdout(), tui.RenderCheck(res.Subject, res.Value, res.Valid, res.Message))
	}
	if !res.Valid {
		return fmt.Errorf("%w: %s %q", errCheckFailed, res.Subject, res.Value)
	}
	return nil
}
