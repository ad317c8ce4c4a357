package main

import (
	"github.com/spf13/cobra"

	"github.com/lex00/wetwire-peertube-go/internal/graph"
)

func newGraphCmd(o *rootOptions) *cobra.Command {
	var (
		outputFormat      string
		includeParameters bool
		includeIngress    bool
		clusterByType     bool
	)

	cmd := &cobra.Command{
		Use:   "graph",
		Short: "Generate DOT graph of resource dependencies",
		Long: `Generate a DOT or Mermaid format graph showing resource dependencies.

The output can be rendered with Graphviz:
    peertube-stack graph | dot -Tpng -o deps.png

Or used in GitHub markdown (Mermaid format):
    peertube-stack graph -f mermaid

Examples:
    peertube-stack graph -p              # include parameters
    peertube-stack graph -i              # include security group ingress
    peertube-stack graph -C              # cluster by service`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := graph.ParseFormat(outputFormat)
			if err != nil {
				return err
			}
			p, _, err := o.buildPlan(cmd.Context())
			if err != nil {
				return err
			}
			gen := &graph.Generator{
				Format:            format,
				IncludeParameters: includeParameters,
				IncludeIngress:    includeIngress,
				ClusterByType:     clusterByType,
			}
			return gen.Generate(p, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "dot", "Output format: dot or mermaid")
	cmd.Flags().BoolVarP(&includeParameters, "include-parameters", "p", false, "Include parameter nodes in the graph")
	cmd.Flags().BoolVarP(&includeIngress, "include-ingress", "i", false, "Include security group ingress grants")
	cmd.Flags().BoolVarP(&clusterByType, "cluster", "C", false, "Cluster resources by AWS service")

	return cmd
}
