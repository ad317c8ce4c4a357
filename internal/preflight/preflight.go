// Package preflight checks that an AWS account and region can run the stack
// before a template is handed to CloudFormation.
package preflight

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	"go.uber.org/zap"

	"github.com/lex00/wetwire-peertube-go/internal/stack"
)

// ErrNoRegion is returned when neither the options nor the AWS configuration name a region.
var ErrNoRegion = errors.New("preflight: no AWS region configured")

type identityAPI interface {
	GetCallerIdentity(
		ctx context.Context,
		params *sts.GetCallerIdentityInput,
		optFns ...func(*sts.Options),
	) (*sts.GetCallerIdentityOutput, error)
}

// Report is the outcome of a preflight run.
type Report struct {
	Account  string   `json:"account"`
	Arn      string   `json:"arn"`
	Region   string   `json:"region"`
	AmiID    string   `json:"ami_id,omitempty"`
	Warnings []string `json:"warnings,omitempty"`
	Errors   []string `json:"errors,omitempty"`
}

// OK reports whether the stack can be created.
func (r *Report) OK() bool {
	return len(r.Errors) == 0
}

// Checker runs the preflight checks.
type Checker struct {
	api    identityAPI
	region string
	log    *zap.Logger
}

type options struct {
	api    identityAPI
	awsCfg *aws.Config
	region string
	log    *zap.Logger
}

// Option configures a Checker.
type Option func(*options)

// WithAWSConfig uses cfg instead of the default credential chain.
func WithAWSConfig(cfg aws.Config) Option {
	return func(o *options) {
		c := cfg
		o.awsCfg = &c
	}
}

// WithRegion overrides the configured region.
func WithRegion(region string) Option {
	return func(o *options) { o.region = region }
}

// WithLogger sets the logger.
func WithLogger(log *zap.Logger) Option {
	return func(o *options) { o.log = log }
}

// withAPI replaces the STS client.
func withAPI(api identityAPI) Option {
	return func(o *options) { o.api = api }
}

// New returns a Checker using the default AWS configuration chain unless an
// STS client or config is supplied.
func New(ctx context.Context, opts ...Option) (*Checker, error) {
	o := &options{log: zap.NewNop()}
	for _, opt := range opts {
		opt(o)
	}

	c := &Checker{api: o.api, region: o.region, log: o.log}
	if c.api != nil {
		return c, nil
	}

	var cfg aws.Config
	if o.awsCfg != nil {
		cfg = *o.awsCfg
	} else {
		var loadOpts []func(*awsconfig.LoadOptions) error
		if o.region != "" {
			loadOpts = append(loadOpts, awsconfig.WithRegion(o.region))
		}
		loaded, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
		if err != nil {
			return nil, fmt.Errorf("loading AWS config: %w", err)
		}
		cfg = loaded
	}
	if c.region == "" {
		c.region = cfg.Region
	}
	c.api = sts.NewFromConfig(cfg)
	return c, nil
}

// Run checks the caller identity and that the profile has an image for the region.
func (c *Checker) Run(ctx context.Context, profile stack.Profile) (*Report, error) {
	if c.region == "" {
		return nil, ErrNoRegion
	}
	r := &Report{Region: c.region}

	out, err := c.api.GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{})
	if err != nil {
		r.Errors = append(r.Errors, fmt.Sprintf("credentials: %v", err))
	} else {
		r.Account = aws.ToString(out.Account)
		r.Arn = aws.ToString(out.Arn)
		c.log.Debug("caller identity", zap.String("account", r.Account), zap.String("arn", r.Arn))
	}

	c.checkImage(r, profile)
	return r, nil
}

func (c *Checker) checkImage(r *Report, profile stack.Profile) {
	switch profile.Variant {
	case stack.VariantRegional:
		ami, ok := profile.AmiRegionMap[c.region]
		if !ok {
			r.Errors = append(r.Errors, fmt.Sprintf("no AMI for region %s in %s (have %v)",
				c.region, stack.AmiMappingName, slices.Sorted(maps.Keys(profile.AmiRegionMap))))
			return
		}
		r.AmiID = ami
	default:
		r.AmiID = profile.AmiID
		r.Warnings = append(r.Warnings, fmt.Sprintf(
			"the %s variant uses the single image %s; it must be available in %s", profile.Variant, profile.AmiID, c.region))
	}
}
