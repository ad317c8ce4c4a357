package main

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lex00/wetwire-peertube-go/internal/preflight"
)

func newPreflightCmd(o *rootOptions) *cobra.Command {
	var (
		region       string
		outputFormat string
	)

	cmd := &cobra.Command{
		Use:   "preflight",
		Short: "Check AWS credentials and the image for the target region",
		Long: `Preflight checks that AWS credentials resolve to an identity and that the
selected variant has an AMI for the target region.

Examples:
    peertube-stack preflight --region eu-west-1
    AWS_PROFILE=ops peertube-stack preflight --variant regional`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, profile, err := o.profile()
			if err != nil {
				return err
			}
			checker, err := preflight.New(cmd.Context(), preflight.WithRegion(region), preflight.WithLogger(o.log))
			if err != nil {
				return err
			}
			report, err := checker.Run(cmd.Context(), profile)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			switch outputFormat {
			case "json":
				data, err := json.MarshalIndent(report, "", "  ")
				if err != nil {
					return err
				}
				fmt.Fprintln(w, string(data))
			case "text":
				fmt.Fprintf(w, "Account: %s\nIdentity: %s\nRegion: %s\nAMI: %s\n", report.Account, report.Arn, report.Region, report.AmiID)
				for _, warn := range report.Warnings {
					fmt.Fprintf(w, "  WARNING: %s\n", warn)
				}
				for _, e := range report.Errors {
					fmt.Fprintf(w, "  ERROR: %s\n", e)
				}
			default:
				return fmt.Errorf("unknown format: %s", outputFormat)
			}

			if !report.OK() {
				return errors.New("preflight failed")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&region, "region", "", "AWS region (default: from the AWS configuration)")
	cmd.Flags().StringVarP(&outputFormat, "format", "f", "text", "Output format: text or json")

	return cmd
}
