package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	wetwire "github.com/lex00/wetwire-peertube-go"
	"github.com/lex00/wetwire-peertube-go/internal/differ"
)

func newDiffCmd(o *rootOptions) *cobra.Command {
	var (
		outputFormat string
		ignoreOrder  bool
	)

	cmd := &cobra.Command{
		Use:   "diff <template> [template]",
		Short: "Compare templates",
		Long: `Diff compares two templates semantically. With one argument the file is
compared with a fresh render of the selected variant.

Examples:
    peertube-stack diff deployed.json
    peertube-stack diff cdn.json regional.yaml --ignore-order`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := differ.Options{IgnoreOrder: ignoreOrder}

			var result *differ.Result
			if len(args) == 2 {
				r, err := differ.CompareFiles(args[0], args[1], opts)
				if err != nil {
					return err
				}
				result = r
			} else {
				before, err := differ.LoadTemplate(args[0])
				if err != nil {
					return fmt.Errorf("failed to load %s: %w", args[0], err)
				}
				p, _, err := o.buildPlan(cmd.Context())
				if err != nil {
					return err
				}
				after := p.Template()
				result = differ.Compare(before, &after, opts)
			}
			return outputDiff(cmd.OutOrStdout(), result, outputFormat)
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "text", "Output format: text or json")
	cmd.Flags().BoolVar(&ignoreOrder, "ignore-order", false, "Ignore array element order")

	return cmd
}

func outputDiff(w io.Writer, result *differ.Result, format string) error {
	switch format {
	case "json":
		data, err := json.MarshalIndent(struct {
			Diff    wetwire.TemplateDiff `json:"diff"`
			Summary wetwire.DiffSummary  `json:"summary"`
		}{result.Diff, result.Summary}, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(w, string(data))

	case "text":
		if result.Empty() {
			fmt.Fprintln(w, "No differences.")
			return nil
		}
		printEntries := func(mark string, entries []wetwire.DiffEntry) {
			for _, e := range entries {
				fmt.Fprintf(w, "%s %s/%s", mark, e.Section, e.Resource)
				if e.Type != "" {
					fmt.Fprintf(w, " (%s)", e.Type)
				}
				fmt.Fprintln(w)
				for _, c := range e.Changes {
					fmt.Fprintf(w, "    %s\n", c)
				}
			}
		}
		printEntries("+", result.Diff.Added)
		printEntries("-", result.Diff.Removed)
		printEntries("~", result.Diff.Modified)
		s := result.Summary
		fmt.Fprintf(w, "\n%d added, %d removed, %d modified\n", s.Added, s.Removed, s.Modified)

	default:
		return fmt.Errorf("unknown format: %s", format)
	}
	return nil
}
