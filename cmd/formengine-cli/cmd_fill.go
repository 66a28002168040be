package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goliatone/go-formengine/pkg/render"
	"github.com/goliatone/go-formengine/pkg/renderers/tui"
)

var (
	maxAttempts int
	errorsFile  string

	// promptDriver overrides the survey driver; tests script answers with it.
	promptDriver tui.PromptDriver
)

// fillCmd walks the form interactively
var fillCmd = &cobra.Command{
	Use:   "fill",
	Short: "Fill a form interactively and print the accepted values",
	Long: `Prompts for every editable field in order, echoes derived fields as
they change and submits. Fields that fail validation are asked again, up to
--max-attempts rounds.

--errors takes a JSON or YAML document of earlier errors, such as the output of
a rejected validate run, and shows each message as help on its field during the
first round.`,
	Args: cobra.NoArgs,
	RunE: runFill,
}

func init() {
	fillCmd.Flags().IntVar(&maxAttempts, "max-attempts", tui.DefaultMaxAttempts, "Rounds before giving up on an invalid form")
	fillCmd.Flags().StringVar(&errorsFile, "errors", "", "Error document to seed the session with (validate output)")
}

func runFill(cmd *cobra.Command, args []string) error {
	format, err := render.ParseFormat(outputFormat)
	if err != nil {
		return err
	}
	req, err := buildRequest(nil)
	if err != nil {
		return err
	}
	seed, err := readFeedback(errorsFile)
	if err != nil {
		return err
	}

	renderer, err := tui.New(
		tui.WithErrors(seed),
		tui.WithPromptDriver(promptDriver),
		tui.WithOutputFormat(format),
		tui.WithMaxAttempts(maxAttempts),
		tui.WithLogger(logger),
		tui.WithTheme(tui.Theme{
			InfoPrefix:  cyan("> "),
			ErrorPrefix: red("x "),
		}),
	)
	if err != nil {
		return err
	}

	out, err := newOrchestrator().Generate(commandContext(cmd), req, renderer)
	if errors.Is(err, tui.ErrAborted) {
		return errors.New("aborted")
	}
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return err
}

func readFeedback(path string) (map[string][]string, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read errors: %w", err)
	}
	payload, err := render.DecodeFeedback(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	logger.Debug("seed errors loaded", zap.String("file", path), zap.Int("keys", len(payload)))
	return payload, nil
}
