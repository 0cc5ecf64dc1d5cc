package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wiretype/wiretype/internal/ir"
)

// ValidateOptions holds flags for the validate command.
type ValidateOptions struct {
	*RootOptions
}

// ValidationReport summarizes validation for JSON output.
type ValidationReport struct {
	Modules    int      `json:"modules"`
	Violations []string `json:"violations,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ValidateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "validate <defs-dir>",
		Short: "Validate type definitions without generating code",
		Long: `Compile the CUE definition files and check the module invariants:
unique identifiers, bound type variables, and tagged-union wire keys.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(opts, args[0], cmd)
		},
	}

	return cmd
}

func runValidate(opts *ValidateOptions, defsDir string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	loadResult, loadErrs := LoadDefinitions(defsDir)
	if len(loadErrs) > 0 {
		return outputLoadErrors(formatter, loadErrs)
	}

	report := ValidationReport{Modules: len(loadResult.Modules)}
	for _, mod := range loadResult.Modules {
		formatter.VerboseLog("Validating module: %s", mod.Name)
		for _, violation := range ir.Validate(mod) {
			report.Violations = append(report.Violations, fmt.Sprintf("%s: %v", mod.Name, violation))
		}
	}

	if len(report.Violations) > 0 {
		if formatter.Format == "json" {
			_ = formatter.Error(ErrCodeGeneric, "validation failed", report)
		} else {
			fmt.Fprintln(formatter.Writer, "✗ Validation failed")
			for _, violation := range report.Violations {
				fmt.Fprintf(formatter.Writer, "  %s\n", violation)
			}
		}
		return NewExitError(ExitFailure, fmt.Sprintf("validation failed with %d violation(s)", len(report.Violations)))
	}

	if formatter.Format == "json" {
		return formatter.Success(report)
	}
	fmt.Fprintf(formatter.Writer, "✓ %d module(s) valid\n", report.Modules)
	return nil
}
