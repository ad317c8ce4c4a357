// Package stack assembles the PeerTube CloudFormation template from the patterns constructs.
package stack

import (
	_ "embed"
	"fmt"

	"go.uber.org/zap"

	wetwire "github.com/lex00/wetwire-peertube-go"
	"github.com/lex00/wetwire-peertube-go/internal/plan"
	. "github.com/lex00/wetwire-peertube-go/intrinsics"
	"github.com/lex00/wetwire-peertube-go/patterns"
	"github.com/lex00/wetwire-peertube-go/resources/cloudfront"
	"github.com/lex00/wetwire-peertube-go/resources/iam"
	"github.com/lex00/wetwire-peertube-go/resources/secretsmanager"
)

//go:embed user_data.sh
var defaultUserData string

// DefaultUserData returns the embedded boot script.
func DefaultUserData() string { return defaultUserData }

// Logical IDs the rest of the tooling relies on.
const (
	AdminEmailParameter      = "AdminEmail"
	PriceClassParameter      = "CloudFrontPriceClass"
	DistributionID           = "CloudFrontDistribution"
	FirstUseInstructionsID   = "FirstUseInstructions"
	InstanceSecretID         = "InstanceSecret"
	TemplateVersionMetadata  = "OE::Patterns::TemplateVersion"
	InstanceSecretNameSuffix = "/instance/credentials"
)

// Description is the template description.
const Description = "PeerTube is a free, decentralized and federated video platform. This template creates a singleton EC2 instance behind an ALB, backed by Aurora Postgres, ElastiCache Redis, S3 and SES."

// Options configures Build.
type Options struct {
	Profile Profile
	// TemplateVersion is written to the OE::Patterns::TemplateVersion metadata.
	TemplateVersion string
	// UserData overrides the embedded boot script.
	UserData string
	Logger   *zap.Logger
}

// Build declares the PeerTube stack and returns its plan.
func Build(opts Options) (*plan.Plan, error) {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	profile := opts.Profile
	if err := profile.Validate(); err != nil {
		return nil, fmt.Errorf("invalid profile: %w", err)
	}
	userData := opts.UserData
	if userData == "" {
		userData = defaultUserData
	}
	log.Debug("building stack",
		zap.String("variant", string(profile.Variant)),
		zap.String("instance_type", profile.InstanceType),
		zap.String("template_version", opts.TemplateVersion),
	)

	b := plan.NewBuilder(plan.WithLogger(log), plan.WithDescription(Description))

	vpc := patterns.NewVpc(b, "Vpc")

	adminEmail := b.Parameter(AdminEmailParameter, wetwire.Parameter{
		Default:     "",
		Description: "Optional: The email address to use for the PeerTube administrator account. If not specified, 'admin@{DnsHostname}' will be used.",
	})
	app := plan.Surface{
		Groups: []plan.ParameterGroup{{Label: "Application Config", Parameters: []string{adminEmail.ID()}}},
		Labels: map[string]string{adminEmail.ID(): "PeerTube Admin Email"},
	}
	var priceClass plan.Handle
	if profile.CDN() {
		priceClass = b.Parameter(PriceClassParameter, wetwire.Parameter{
			AllowedValues: []any{"PriceClass_All", "PriceClass_200", "PriceClass_100"},
			Default:       "PriceClass_All",
			Description:   "Required: Price class to use for CloudFront CDN.",
		})
		app.Groups = append(app.Groups, plan.ParameterGroup{Label: "CloudFront Config", Parameters: []string{priceClass.ID()}})
		app.Labels[priceClass.ID()] = "CloudFront Price Class"
	}

	dns := patterns.NewDns(b, "Dns")

	bucket := patterns.NewAssetsBucket(b, "AssetsBucket", patterns.AssetsBucketProps{
		AllowOpenCors:           true,
		ObjectOwnership:         "ObjectWriter",
		RemovePublicAccessBlock: true,
	})

	ses := patterns.NewSes(b, "Ses", patterns.SesProps{
		HostedZoneName:         dns.HostedZoneName(),
		AdditionalUserPolicies: []plan.Handle{bucket.UserPolicy()},
	})

	dbSecret := patterns.NewDbSecret(b, "DbSecret", "peertube")

	redis := patterns.NewElasticacheRedis(b, "Redis", vpc)

	var ami any = profile.AmiID
	if profile.Variant == VariantRegional {
		mapping := make(Mapping, len(profile.AmiRegionMap))
		for region, id := range profile.AmiRegionMap {
			mapping[region] = map[string]any{"AMI": id}
		}
		b.Mapping(AmiMappingName, mapping)
		ami = FindInMap{MapName: AmiMappingName, TopKey: AWS_REGION, SecondKey: "AMI"}
	}
	instanceSecretName := Sub{String: "${AWS::StackName}" + InstanceSecretNameSuffix}
	// The boot script overwrites the value with the generated root password.
	instanceSecret := b.Resource(InstanceSecretID, secretsmanager.Secret{
		Description:  "PeerTube root user credentials",
		Name:         instanceSecretName,
		SecretString: "{}",
	})
	asg, err := patterns.NewAsg(b, "Asg", patterns.AsgProps{
		AmiID:               ami,
		DefaultInstanceType: profile.InstanceType,
		UseGraviton:         profile.UseGraviton,
		RootVolumeSize:      profile.RootVolumeSize,
		UseDataVolume:       profile.UseDataVolume,
		UserDataContents:    userData,
		UserDataVariables: map[string]any{
			"AssetsBucketName":   bucket.BucketName(),
			"DbSecretArn":        dbSecret.SecretArn(),
			"Hostname":           dns.Hostname(),
			"HostedZoneName":     dns.HostedZoneName(),
			"InstanceSecretName": instanceSecretName,
		},
		SecretArns: []any{dbSecret.SecretArn(), ses.SecretArn()},
		AdditionalRolePolicies: []iam.Policy{{
			PolicyName: "AllowUpdateInstanceSecret",
			PolicyDocument: NewPolicyDocument(Allow(
				Any("secretsmanager:UpdateSecret"),
				StackScopedArn("secretsmanager", "secret:${AWS::StackName}"+InstanceSecretNameSuffix+"-*"),
			)),
		}},
		Vpc: vpc,
	})
	if err != nil {
		return nil, err
	}

	alb := patterns.NewAlb(b, "Alb", patterns.AlbProps{
		Asg:             asg,
		HealthCheckPath: profile.HealthCheckPath,
		Vpc:             vpc,
	})

	if profile.CDN() {
		b.Resource(DistributionID, cloudfront.Distribution{
			DistributionConfig: &cloudfront.Distribution_DistributionConfig{
				Comment: AWS_STACK_NAME,
				DefaultCacheBehavior: &cloudfront.Distribution_DefaultCacheBehavior{
					AllowedMethods: Any("GET", "HEAD", "OPTIONS"),
					Compress:       true,
					DefaultTTL:     86400,
					ForwardedValues: &cloudfront.Distribution_ForwardedValues{
						QueryString: true,
					},
					MinTTL:               0,
					MaxTTL:               31536000,
					TargetOriginId:       "s3-origin",
					ViewerProtocolPolicy: "redirect-to-https",
				},
				Enabled: true,
				Origins: Any(cloudfront.Distribution_Origin{
					DomainName:     BucketDomainName(bucket),
					Id:             "s3-origin",
					S3OriginConfig: &cloudfront.Distribution_S3OriginConfig{OriginAccessIdentity: ""},
				}),
				PriceClass: priceClass.Ref(),
			},
		})
	}

	db := patterns.NewAuroraPostgresql(b, "Db", patterns.AuroraProps{
		DatabaseName: "peertube",
		DbSecret:     dbSecret,
		Vpc:          vpc,
	})
	b.DependsOn(asg.Group(), db.PrimaryInstance(), ses.GenerateSmtpPassword(), instanceSecret)

	patterns.AddSgIngress(b, redis, asg.SecurityGroup())
	patterns.AddSgIngress(b, db, asg.SecurityGroup())

	dns.AddAlb(alb)

	b.Output(FirstUseInstructionsID, wetwire.Output{
		Description: "Instructions for getting started",
		Value:       Sub{String: "Click on the DnsSiteUrlOutput link and log in with 'root' and the value of 'root_password' in the ${AWS::StackName}" + InstanceSecretNameSuffix + " secret in Secrets Manager."},
	})

	b.Metadata(TemplateVersionMetadata, opts.TemplateVersion)
	for _, s := range []plan.ConfigSurface{app, alb, bucket, dbSecret, db, dns, redis, asg, ses, vpc} {
		b.Surface(s)
	}

	return b.Build()
}

// BucketDomainName is the regional S3 domain of the assets bucket.
func BucketDomainName(bucket *patterns.AssetsBucket) SubWithMap {
	return SubWithMap{
		String:    "${BucketName}.s3.${AWS::Region}.amazonaws.com",
		Variables: map[string]any{"BucketName": bucket.BucketName()},
	}
}
