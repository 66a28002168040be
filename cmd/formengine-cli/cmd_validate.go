package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goliatone/go-formengine/pkg/render"
)

var errValidationFailed = errors.New("validation failed")

// validateCmd submits values read from a JSON file
var validateCmd = &cobra.Command{
	Use:   "validate [values.json|-]",
	Short: "Validate a JSON object of field values",
	Long: `Reads a JSON object mapping field names to values (from a file or, with
"-" or no argument, from stdin), prefills the form and submits it once.
Accepted values are printed in --output format; violations are printed as a
JSON object of field messages and the command exits with status 1.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runValidate,
}

func runValidate(cmd *cobra.Command, args []string) error {
	format, err := render.ParseFormat(outputFormat)
	if err != nil {
		return err
	}

	raw, err := readValues(cmd, args)
	if err != nil {
		return err
	}
	values, err := decodeValues(raw)
	if err != nil {
		return err
	}

	req, err := buildRequest(values)
	if err != nil {
		return err
	}

	result, err := newOrchestrator().Validate(commandContext(cmd), req)
	if err != nil {
		return err
	}

	if !result.OK() {
		logger.Debug("values rejected", zap.Strings("fields", result.Errors.Fields()))
		payload, err := json.MarshalIndent(map[string]any{"errors": result.Errors}, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(payload))
		return errValidationFailed
	}

	out, err := render.Serialize(result.Values, format)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return err
}

func readValues(cmd *cobra.Command, args []string) ([]byte, error) {
	if len(args) == 0 || args[0] == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return nil, fmt.Errorf("read values: %w", err)
	}
	return data, nil
}

// decodeValues keeps numbers as json.Number so integer fields see the exact
// literal.
func decodeValues(raw []byte) (map[string]any, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return map[string]any{}, nil
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var values map[string]any
	if err := dec.Decode(&values); err != nil {
		return nil, fmt.Errorf("decode values: %w", err)
	}
	return values, nil
}
