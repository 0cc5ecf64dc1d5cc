package cli

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/wiretype/wiretype/internal/emit"
	"github.com/wiretype/wiretype/internal/ir"
	"github.com/wiretype/wiretype/internal/language/reasonml"
	"github.com/wiretype/wiretype/internal/language/typescript"
)

// GenerateOptions holds flags for the generate command.
type GenerateOptions struct {
	*RootOptions
	Language        string // target backend name
	Output          string // output directory; stdout when empty
	Config          string // YAML config path
	NoVersionHeader bool
}

// GeneratedModule summarizes one emitted module for JSON output.
type GeneratedModule struct {
	Module string `json:"module"`
	Path   string `json:"path,omitempty"`
	Bytes  int    `json:"bytes"`
}

// NewGenerateCommand creates the generate command.
func NewGenerateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &GenerateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "generate <defs-dir>",
		Short: "Generate target-language declarations from type definitions",
		Long: `Generate type declarations for one target language.

The generator compiles the CUE definition files, validates the IR, and
emits one source file per module. Declarations keep their source order;
re-running on identical definitions and configuration yields identical
output.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true, // Errors go through our own output path
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Language, "lang", "l", "", "target language (reasonml|typescript)")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "output directory (stdout when omitted)")
	cmd.Flags().StringVarP(&opts.Config, "config", "c", "", "YAML config file")
	cmd.Flags().BoolVar(&opts.NoVersionHeader, "no-version-header", false, "suppress the version banner")
	_ = cmd.MarkFlagRequired("lang")

	return cmd
}

func runGenerate(opts *GenerateOptions, defsDir string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	cfg, err := LoadConfig(opts.Config)
	if err != nil {
		return outputCommandError(formatter, ErrCodeGeneric, err.Error())
	}

	backend, ext, err := newBackend(opts.Language, cfg, opts.NoVersionHeader || cfg.NoVersionHeader)
	if err != nil {
		return outputCommandError(formatter, ErrCodeBadLanguage, err.Error())
	}

	loadResult, loadErrs := LoadDefinitions(defsDir)
	if len(loadErrs) > 0 {
		return outputLoadErrors(formatter, loadErrs)
	}
	formatter.VerboseLog("Found %d definition file(s) in %s", loadResult.FileCount, defsDir)

	// Refuse to emit from invalid IR; emission errors downstream would
	// be harder to act on than the violations themselves.
	var violations []error
	for _, mod := range loadResult.Modules {
		violations = append(violations, ir.Validate(mod)...)
	}
	if len(violations) > 0 {
		return outputViolations(formatter, violations)
	}

	generator := emit.NewGenerator(backend)
	var generated []GeneratedModule

	for _, mod := range loadResult.Modules {
		formatter.VerboseLog("Generating module: %s", mod.Name)

		var buf bytes.Buffer
		if err := generator.GenerateModule(&buf, mod); err != nil {
			return outputCommandError(formatter, ErrCodeEmitFailed, err.Error())
		}

		entry := GeneratedModule{Module: mod.Name, Bytes: buf.Len()}
		if opts.Output == "" {
			if _, err := buf.WriteTo(cmd.OutOrStdout()); err != nil {
				return outputCommandError(formatter, ErrCodeWriteFailed, err.Error())
			}
		} else {
			entry.Path = filepath.Join(opts.Output, mod.Name+ext)
			if err := writeModuleFile(entry.Path, buf.Bytes()); err != nil {
				return outputCommandError(formatter, ErrCodeWriteFailed, err.Error())
			}
		}
		generated = append(generated, entry)
	}

	return outputGenerateSuccess(formatter, opts, generated)
}

// newBackend builds the configured backend and its file extension.
func newBackend(lang string, cfg *Config, noHeader bool) (emit.Backend, string, error) {
	switch lang {
	case "reasonml":
		return &reasonml.Backend{
			TypeMappings:    cfg.MappingsFor("reasonml"),
			NoVersionHeader: noHeader,
		}, ".re", nil
	case "typescript":
		return &typescript.Backend{
			TypeMappings:    cfg.MappingsFor("typescript"),
			NoVersionHeader: noHeader,
		}, ".ts", nil
	default:
		return nil, "", fmt.Errorf("unknown target language %q (want reasonml or typescript)", lang)
	}
}

func writeModuleFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing file: %w", err)
	}
	return nil
}

func outputGenerateSuccess(formatter *OutputFormatter, opts *GenerateOptions, generated []GeneratedModule) error {
	if formatter.Format == "json" {
		return formatter.Success(generated)
	}

	if opts.Output == "" {
		// Emitted source already went to stdout; stay quiet.
		return nil
	}

	fmt.Fprintf(formatter.Writer, "✓ Generated %d module(s) for %s\n", len(generated), opts.Language)
	for _, entry := range generated {
		fmt.Fprintf(formatter.Writer, "  %s → %s\n", entry.Module, entry.Path)
	}
	return nil
}

// outputCommandError reports a command-level error (exit code 2).
func outputCommandError(formatter *OutputFormatter, code, message string) error {
	_ = formatter.Error(code, message, nil)
	return NewExitError(ExitCommandError, fmt.Sprintf("%s: %s", code, message))
}

// outputLoadErrors reports definition loading/compile errors.
func outputLoadErrors(formatter *OutputFormatter, errs []error) error {
	for _, err := range errs {
		_ = formatter.Error(ErrCodeCompileFailed, err.Error(), nil)
	}
	return NewExitError(ExitCommandError, fmt.Sprintf("loading definitions failed with %d error(s)", len(errs)))
}

// outputViolations reports IR invariant violations (exit code 1).
func outputViolations(formatter *OutputFormatter, violations []error) error {
	for _, err := range violations {
		_ = formatter.Error(ErrCodeGeneric, err.Error(), nil)
	}
	return NewExitError(ExitFailure, fmt.Sprintf("validation failed with %d violation(s)", len(violations)))
}
