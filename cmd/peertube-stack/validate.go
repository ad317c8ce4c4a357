package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	wetwire "github.com/lex00/wetwire-peertube-go"
	"github.com/lex00/wetwire-peertube-go/internal/validation"
)

var errValidationFailed = errors.New("validation failed")

// newValidateCmd creates the "validate" subcommand.
func newValidateCmd(o *rootOptions) *cobra.Command {
	var (
		outputFormat string
		skipCfnLint  bool
		strict       bool
	)

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Verify the stack wiring and lint the template",
		Long: `Validate builds the template and checks it.

Checks performed:
  - Singleton group: one auto scaling group with explicit dependencies on the
    database primary instance and the SMTP password custom resource
  - Network ingress: the instance security group reaches exactly Redis and the database
  - Load balancer: the target group is the one the group registers with
  - CDN: present with the bucket origin only in the cdn variant
  - Configuration form: every parameter listed once
  - cfn-lint-go rules on the rendered template

Examples:
    peertube-stack validate
    peertube-stack validate --variant regional --format json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, profile, err := o.buildPlan(cmd.Context())
			if err != nil {
				return err
			}
			result, err := validation.Validate(p, profile, validation.Options{
				SkipCfnLint: skipCfnLint,
				Strict:      strict,
				Logger:      o.log,
			})
			if err != nil {
				return err
			}
			if err := outputValidateResult(cmd.OutOrStdout(), *result, outputFormat); err != nil {
				return err
			}
			if !result.Success {
				return errValidationFailed
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "text", "Output format: text or json")
	cmd.Flags().BoolVar(&skipCfnLint, "skip-cfn-lint", false, "Only run the structural checks")
	cmd.Flags().BoolVar(&strict, "strict", false, "Treat cfn-lint warnings as errors")

	return cmd
}

func outputValidateResult(w io.Writer, result wetwire.ValidateResult, format string) error {
	switch format {
	case "json":
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(w, string(data))

	case "text":
		if result.Success {
			fmt.Fprintf(w, "Validation passed: %s variant, %d resources OK\n", result.Variant, result.Resources)
		} else {
			fmt.Fprintln(w, "Validation FAILED:")
			for _, errMsg := range result.Errors {
				fmt.Fprintf(w, "  ERROR: %s\n", errMsg)
			}
		}
		for _, warnMsg := range result.Warnings {
			fmt.Fprintf(w, "  WARNING: %s\n", warnMsg)
		}

	default:
		return fmt.Errorf("unknown format: %s", format)
	}

	return nil
}
