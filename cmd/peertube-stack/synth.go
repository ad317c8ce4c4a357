package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/lex00/wetwire-peertube-go/internal/plan"
)

func newSynthCmd(o *rootOptions) *cobra.Command {
	var (
		outputFormat string
		outputFile   string
	)

	cmd := &cobra.Command{
		Use:   "synth",
		Short: "Render the CloudFormation template",
		Long: `Synth builds the stack for the selected variant and writes the template.

Examples:
    peertube-stack synth
    peertube-stack synth -o peertube.json
    peertube-stack synth --variant regional -c peertube-stack.yaml --format yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, _, err := o.buildPlan(cmd.Context())
			if err != nil {
				return fmt.Errorf("build failed: %w", err)
			}
			return writeTemplate(cmd.OutOrStdout(), p, outputFormat, outputFile)
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "json", "Output format: json or yaml")
	cmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output file (default: stdout)")

	return cmd
}

// renderTemplate renders the plan in the given format.
func renderTemplate(p *plan.Plan, format string) ([]byte, error) {
	switch format {
	case "json":
		return p.JSON()
	case "yaml":
		return p.YAML()
	default:
		return nil, fmt.Errorf("unknown format: %s", format)
	}
}

// writeTemplate writes the rendered plan to outputFile, or to w when empty.
func writeTemplate(w io.Writer, p *plan.Plan, format, outputFile string) error {
	data, err := renderTemplate(p, format)
	if err != nil {
		return err
	}

	if outputFile == "" {
		_, err := fmt.Fprintln(w, string(data))
		return err
	}
	return os.WriteFile(outputFile, data, 0o644)
}
