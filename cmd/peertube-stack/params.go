package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	wetwire "github.com/lex00/wetwire-peertube-go"
	"github.com/lex00/wetwire-peertube-go/internal/plan"
)

func newParamsCmd(o *rootOptions) *cobra.Command {
	var outputFormat string

	cmd := &cobra.Command{
		Use:   "params",
		Short: "Show the operator configuration form",
		Long: `Params prints the parameter groups and labels presented by the
CloudFormation console, in form order, with each parameter's default.

Examples:
    peertube-stack params
    peertube-stack params --format json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, _, err := o.buildPlan(cmd.Context())
			if err != nil {
				return err
			}
			return outputParams(cmd.OutOrStdout(), p, outputFormat)
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "text", "Output format: text or json")

	return cmd
}

func outputParams(w io.Writer, p *plan.Plan, format string) error {
	iface := p.Interface()
	params := p.Template().Parameters

	switch format {
	case "json":
		data, err := json.MarshalIndent(iface.Metadata(), "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(w, string(data))

	case "text":
		for _, g := range iface.ParameterGroups {
			fmt.Fprintf(w, "%s\n", g.Label)
			for _, id := range g.Parameters {
				fmt.Fprintf(w, "  %-32s %s%s\n", id, iface.ParameterLabels[id], describeDefault(params[id]))
			}
		}

	default:
		return fmt.Errorf("unknown format: %s", format)
	}
	return nil
}

func describeDefault(p wetwire.Parameter) string {
	switch {
	case p.Default == nil:
		return " (required)"
	case p.Default == "":
		return ""
	default:
		return fmt.Sprintf(" (default %v)", p.Default)
	}
}
