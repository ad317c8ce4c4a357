package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	wetwire "github.com/lex00/wetwire-peertube-go"
	"github.com/lex00/wetwire-peertube-go/internal/plan"
)

func newListCmd(o *rootOptions) *cobra.Command {
	var outputFormat string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the resources of the template",
		Long: `List shows every resource of the selected variant in provisioning order.

Examples:
    peertube-stack list
    peertube-stack list --variant regional --format json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, _, err := o.buildPlan(cmd.Context())
			if err != nil {
				return err
			}
			return outputListResult(cmd.OutOrStdout(), listResources(p), outputFormat)
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "text", "Output format: text or json")

	return cmd
}

func listResources(p *plan.Plan) wetwire.ListResult {
	result := wetwire.ListResult{Resources: make([]wetwire.ListResource, 0, len(p.Resources()))}
	for _, id := range p.Resources() {
		def, _ := p.Resource(id)
		result.Resources = append(result.Resources, wetwire.ListResource{
			Name:      id,
			Type:      def.Type,
			Condition: def.Condition,
			DependsOn: def.DependsOn,
		})
	}
	return result
}

func outputListResult(w io.Writer, result wetwire.ListResult, format string) error {
	switch format {
	case "json":
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(w, string(data))

	case "text":
		if len(result.Resources) == 0 {
			fmt.Fprintln(w, "No resources found.")
			return nil
		}

		fmt.Fprintf(w, "Resources (%d):\n\n", len(result.Resources))
		for _, res := range result.Resources {
			line := fmt.Sprintf("  %s: %s", res.Name, res.Type)
			if res.Condition != "" {
				line += fmt.Sprintf(" [if %s]", res.Condition)
			}
			if len(res.DependsOn) > 0 {
				line += fmt.Sprintf(" (depends on %v)", res.DependsOn)
			}
			fmt.Fprintln(w, line)
		}

	default:
		return fmt.Errorf("unknown format: %s", format)
	}

	return nil
}
