package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/goliatone/go-formengine/pkg/orchestrator"
	"github.com/goliatone/go-formengine/pkg/render"
)

var (
	// Flags
	formID         string
	descriptorFile string
	openAPIFile    string
	component      string
	outputFormat   string
	verbose        bool

	// Logger
	logger *zap.Logger
)

var (
	red  = color.New(color.FgRed).SprintFunc()
	cyan = color.New(color.FgCyan).SprintFunc()
	bold = color.New(color.Bold).SprintFunc()
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "formengine",
	Short: "Fill and validate declarative forms from the terminal",
	Long: `formengine drives a form definition (the bundled personal details form,
a YAML/JSON descriptor file or an OpenAPI component schema) through the form
engine: prompt for values, derive computed fields and validate the result.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if logger != nil {
			return nil
		}
		config := zap.NewProductionConfig()
		if verbose {
			config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = config.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&formID, "form", "f", orchestrator.DefaultFormID, "Form id (bundled descriptors or --descriptor file)")
	flags.StringVar(&descriptorFile, "descriptor", "", "YAML or JSON descriptor file")
	flags.StringVar(&openAPIFile, "openapi", "", "OpenAPI document to build the form from")
	flags.StringVar(&component, "component", "", "Component schema name used with --openapi")
	flags.StringVarP(&outputFormat, "output", "o", string(render.FormatJSON), "Output format: json, form or pretty")
	flags.BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")

	rootCmd.AddCommand(fillCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(fieldsCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, red(err.Error()))
		os.Exit(1)
	}
}

// buildRequest translates the source flags into an orchestrator request.
func buildRequest(values map[string]any) (orchestrator.Request, error) {
	req := orchestrator.Request{
		FormID:         strings.TrimSpace(formID),
		DescriptorFile: strings.TrimSpace(descriptorFile),
		Values:         values,
	}
	if openAPIFile == "" {
		if req.DescriptorFile != "" && formID == orchestrator.DefaultFormID {
			// let single-form descriptor files resolve without --form
			req.FormID = ""
		}
		return req, nil
	}
	if strings.TrimSpace(component) == "" {
		return orchestrator.Request{}, errors.New("--component is required with --openapi")
	}
	raw, err := os.ReadFile(openAPIFile)
	if err != nil {
		return orchestrator.Request{}, fmt.Errorf("read openapi document: %w", err)
	}
	req.OpenAPI = raw
	req.Component = strings.TrimSpace(component)
	return req, nil
}

func newOrchestrator() *orchestrator.Orchestrator {
	return orchestrator.New(orchestrator.WithLogger(logger))
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
