package main

import (
	"fmt"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formengine/pkg/model"
)

// fieldsCmd prints the descriptor list
var fieldsCmd = &cobra.Command{
	Use:   "fields",
	Short: "List the fields of a form with their type and rules",
	Args:  cobra.NoArgs,
	RunE:  runFields,
}

func runFields(cmd *cobra.Command, args []string) error {
	req, err := buildRequest(nil)
	if err != nil {
		return err
	}
	form, err := newOrchestrator().Form(commandContext(cmd), req)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	title := form.Title
	if title == "" {
		title = form.ID
	}
	fmt.Fprintln(out, bold(title))

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tTYPE\tREQUIRED\tRULES\tDERIVED FROM")
	for _, field := range form.Fields {
		fmt.Fprintf(w, "%s\t%s\t%t\t%s\t%s\n",
			field.Name,
			field.Type,
			field.Required,
			describeRules(field),
			describeDerivation(field),
		)
	}
	return w.Flush()
}

func describeRules(field model.Field) string {
	var parts []string
	for _, rule := range field.Validations {
		part := rule.Kind
		if len(rule.Params) > 0 {
			part += "(" + strings.Join(sortedParams(rule.Params), ",") + ")"
		}
		if rule.Kind == model.ValidationRuleOneOf && len(field.Enum) > 0 {
			part += "(" + joinEnum(field.Enum) + ")"
		}
		parts = append(parts, part)
	}
	if len(parts) == 0 {
		return "-"
	}
	return strings.Join(parts, " ")
}

func describeDerivation(field model.Field) string {
	if !field.IsDerived() {
		return "-"
	}
	return field.Derived.Source
}

func joinEnum(values []any) string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		out = append(out, fmt.Sprint(v))
	}
	return strings.Join(out, "|")
}

func sortedParams(params map[string]string) []string {
	out := make([]string, 0, len(params))
	for key, value := range params {
		out = append(out, key+"="+value)
	}
	sort.Strings(out)
	return out
}
