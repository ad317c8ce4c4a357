package patterns

import (
	_ "embed"

	wetwire "github.com/lex00/wetwire-peertube-go"
	"github.com/lex00/wetwire-peertube-go/internal/plan"
	. "github.com/lex00/wetwire-peertube-go/intrinsics"
	"github.com/lex00/wetwire-peertube-go/resources/cloudformation"
	"github.com/lex00/wetwire-peertube-go/resources/iam"
	"github.com/lex00/wetwire-peertube-go/resources/lambda"
	"github.com/lex00/wetwire-peertube-go/resources/route53"
	"github.com/lex00/wetwire-peertube-go/resources/secretsmanager"
	"github.com/lex00/wetwire-peertube-go/resources/ses"
)

//go:embed smtp_password.py
var smtpPasswordSource string

// SesProps configures the SES construct.
type SesProps struct {
	// HostedZoneName is the domain used for the SES identity.
	HostedZoneName any
	// AdditionalUserPolicies are managed policies attached to the SES IAM user.
	AdditionalUserPolicies []plan.Handle
}

// Ses is an SES domain identity plus an IAM user whose credentials and derived
// SMTP password are stored in a secret.
type Ses struct {
	groups

	secret         plan.Handle
	customResource plan.Handle

	// CreateDomainIdentityCondition holds when the stack creates the SES identity.
	CreateDomainIdentityCondition string
}

// NewSes declares the SES construct under the given prefix, e.g. "Ses".
func NewSes(b *plan.Builder, prefix string, props SesProps) *Ses {
	s := &Ses{}
	create := b.Parameter(prefix+"CreateDomainIdentity", wetwire.Parameter{
		AllowedValues: []any{"true", "false"},
		Default:       "true",
		Description:   "Required: Whether to create a SES Domain Identity. If 'false', the identity must already exist and be verified.",
	})
	s.CreateDomainIdentityCondition = b.Condition(prefix+"CreateDomainIdentityCondition", Equals{Value1: create.Ref(), Value2: "true"})

	identity := b.Resource(prefix+"DomainIdentity", ses.EmailIdentity{
		DkimAttributes: &ses.EmailIdentity_DkimAttributes{SigningEnabled: true},
		EmailIdentity:  props.HostedZoneName,
	}, plan.WithCondition(s.CreateDomainIdentityCondition))

	records := make([]any, 0, 3)
	for _, n := range []string{"1", "2", "3"} {
		records = append(records, route53.RecordSetGroup_RecordSet{
			Name:            identity.Att("DkimDNSTokenName" + n),
			ResourceRecords: Any(identity.Att("DkimDNSTokenValue" + n)),
			TTL:             "3600",
			Type:            "CNAME",
		})
	}
	b.Resource(prefix+"DkimRecordSetGroup", route53.RecordSetGroup{
		Comment:        "SES DKIM records",
		HostedZoneName: Join{Delimiter: "", Values: []any{props.HostedZoneName, "."}},
		RecordSets:     records,
	}, plan.WithCondition(s.CreateDomainIdentityCondition))

	managed := make([]any, 0, len(props.AdditionalUserPolicies))
	for _, p := range props.AdditionalUserPolicies {
		managed = append(managed, p.Ref())
	}
	user := b.Resource(prefix+"InstanceUser", iam.User{
		ManagedPolicyArns: managed,
		Policies: Any(iam.Policy{
			PolicyName:     "AllowSendEmail",
			PolicyDocument: NewPolicyDocument(Allow(Any("ses:SendEmail", "ses:SendRawEmail"), "*")),
		}),
	})
	key := b.Resource(prefix+"InstanceUserAccessKey", iam.AccessKey{
		Serial:   1,
		Status:   "Active",
		UserName: user.Ref(),
	})
	s.secret = b.Resource(prefix+"InstanceUserSecret", secretsmanager.Secret{
		Description: Sub{String: "${AWS::StackName}/instance/ses"},
	})

	role := b.Resource(prefix+"GenerateSmtpPasswordLambdaRole", iam.Role{
		AssumeRolePolicyDocument: AssumeRoleBy("lambda.amazonaws.com"),
		ManagedPolicyArns:        Any(ManagedPolicyArn("service-role/AWSLambdaBasicExecutionRole")),
		Policies: Any(iam.Policy{
			PolicyName:     "AllowUpdateSesSecret",
			PolicyDocument: NewPolicyDocument(Allow(Any("secretsmanager:UpdateSecret"), s.secret.Ref())),
		}),
	})
	fn := b.Resource(prefix+"GenerateSmtpPasswordLambda", lambda.Function{
		Code:        &lambda.Function_Code{ZipFile: smtpPasswordSource},
		Description: "Derives the SES SMTP password from the instance user's secret access key",
		Handler:     "index.handler",
		Role:        role.Att("Arn"),
		Runtime:     "python3.12",
		Timeout:     30,
	})
	s.customResource = b.Resource(prefix+"GenerateSmtpPasswordCustomResource", cloudformation.CustomResource{
		Name:         "GenerateSmtpPassword",
		ServiceToken: fn.Att("Arn"),
		Properties: map[string]any{
			"AccessKeyId":     key.Ref(),
			"SecretAccessKey": key.Att("SecretAccessKey"),
			"Region":          AWS_REGION,
			"SecretArn":       s.secret.Ref(),
		},
	})

	s.groups = groups{
		label:  "SES",
		params: []string{create.ID()},
		labels: map[string]string{create.ID(): "Create SES Domain Identity"},
	}
	return s
}

// SecretArn returns the ARN of the secret holding the SMTP credentials.
func (s *Ses) SecretArn() Ref {
	return s.secret.Ref()
}

// GenerateSmtpPassword returns the custom resource that fills the SMTP secret.
func (s *Ses) GenerateSmtpPassword() plan.Handle {
	return s.customResource
}
