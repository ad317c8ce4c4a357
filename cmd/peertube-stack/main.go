// Command peertube-stack renders the PeerTube CloudFormation template.
//
// Usage:
//
//	peertube-stack synth                      Render the template (cdn variant)
//	peertube-stack synth --variant regional   Render the regional variant
//	peertube-stack validate                   Verify wiring and run cfn-lint
//	peertube-stack diff old.json              Compare a template with a fresh render
//	peertube-stack version                    Show version
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/lex00/wetwire-peertube-go/internal/config"
	"github.com/lex00/wetwire-peertube-go/internal/logging"
	"github.com/lex00/wetwire-peertube-go/internal/plan"
	"github.com/lex00/wetwire-peertube-go/internal/stack"
	"github.com/lex00/wetwire-peertube-go/internal/version"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// rootOptions are the persistent flags shared by every command.
type rootOptions struct {
	configFile   string
	envFile      string
	variant      string
	userDataFile string
	verbose      bool

	log *zap.Logger
}

func newRootCmd() *cobra.Command {
	o := &rootOptions{log: zap.NewNop()}

	rootCmd := &cobra.Command{
		Use:   "peertube-stack",
		Short: "Render the PeerTube CloudFormation template",
		Long: `peertube-stack composes the PeerTube stack (VPC, ALB, singleton EC2 instance,
Aurora Postgres, ElastiCache Redis, S3, SES and optionally CloudFront) and renders
it as a CloudFormation template.

Two variants are available:

    cdn        CloudFront in front of the assets bucket, single Graviton AMI
    regional   no CDN, per-region AMI map from the configuration file

Render the template:

    peertube-stack synth -o peertube.json`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			log, err := logging.New(o.verbose)
			if err != nil {
				return fmt.Errorf("creating logger: %w", err)
			}
			o.log = log
			return nil
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&o.configFile, "config", "c", "", "Configuration file (default: "+config.DefaultFile+" if present)")
	flags.StringVar(&o.envFile, "env-file", config.DefaultEnvFile, "Dotenv file loaded before resolving TEMPLATE_VERSION")
	flags.StringVar(&o.variant, "variant", "", "Template variant: cdn or regional (default: from config, else cdn)")
	flags.StringVar(&o.userDataFile, "user-data", "", "Boot script replacing the embedded one")
	flags.BoolVarP(&o.verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(
		newSynthCmd(o),
		newListCmd(o),
		newParamsCmd(o),
		newGraphCmd(o),
		newValidateCmd(o),
		newDiffCmd(o),
		newWatchCmd(o),
		newPreflightCmd(o),
		newVersionCmd(o),
	)
	return rootCmd
}

// profile loads the configuration and returns the selected profile.
func (o *rootOptions) profile() (*config.Config, stack.Profile, error) {
	cfg, err := config.Load(o.configFile)
	if err != nil {
		return nil, stack.Profile{}, err
	}
	p, err := cfg.Profile(o.variant)
	if err != nil {
		return nil, stack.Profile{}, err
	}
	return cfg, p, nil
}

// templateVersion reads the env file and resolves the template version.
func (o *rootOptions) templateVersion(ctx context.Context) (string, error) {
	env, err := config.ReadEnv(o.envFile)
	if err != nil {
		return "", err
	}
	return version.Resolver{LookupEnv: env.LookupEnv, Logger: o.log}.Resolve(ctx), nil
}

// buildPlan renders the stack for the selected profile.
func (o *rootOptions) buildPlan(ctx context.Context) (*plan.Plan, stack.Profile, error) {
	cfg, profile, err := o.profile()
	if err != nil {
		return nil, stack.Profile{}, err
	}
	userData, err := cfg.UserData(o.userDataFile)
	if err != nil {
		return nil, stack.Profile{}, err
	}
	templateVersion, err := o.templateVersion(ctx)
	if err != nil {
		return nil, stack.Profile{}, err
	}

	o.log.Debug("building stack",
		zap.String("variant", string(profile.Variant)),
		zap.String("template_version", templateVersion),
	)
	p, err := stack.Build(stack.Options{
		Profile:         profile,
		TemplateVersion: templateVersion,
		UserData:        userData,
		Logger:          o.log,
	})
	if err != nil {
		return nil, stack.Profile{}, err
	}
	return p, profile, nil
}

func newVersionCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		RunE: func(cmd *cobra.Command, args []string) error {
			templateVersion, err := o.templateVersion(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "peertube-stack %s\n", getVersion())
			fmt.Fprintf(cmd.OutOrStdout(), "template version %s\n", templateVersion)
			return nil
		},
	}
}
