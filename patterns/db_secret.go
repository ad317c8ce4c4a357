package patterns

import (
	"encoding/json"

	wetwire "github.com/lex00/wetwire-peertube-go"
	"github.com/lex00/wetwire-peertube-go/internal/plan"
	. "github.com/lex00/wetwire-peertube-go/intrinsics"
	"github.com/lex00/wetwire-peertube-go/resources/secretsmanager"
)

// DbSecret holds the database credentials, generated unless an existing secret ARN is passed.
type DbSecret struct {
	groups

	arn    plan.Handle
	secret plan.Handle

	// BlankCondition holds when the secret is created by the stack.
	BlankCondition string
}

// NewDbSecret declares the database secret with a fixed username.
func NewDbSecret(b *plan.Builder, prefix, username string) *DbSecret {
	d := &DbSecret{}
	d.arn = b.Parameter(prefix+"Arn", wetwire.Parameter{
		Default:     "",
		Description: "Optional: SecretsManager secret ARN used to store database credentials and other configuration. If not specified, a secret will be created.",
	})
	d.BlankCondition = blank(b, prefix+"ArnBlankCondition", d.arn.ID())

	template, _ := json.Marshal(map[string]string{"username": username})
	d.secret = b.Resource(prefix, secretsmanager.Secret{
		Description: Sub{String: "${AWS::StackName}/db/credentials"},
		GenerateSecretString: &secretsmanager.Secret_GenerateSecretString{
			ExcludeCharacters:    "\"@/\\\"'\\",
			GenerateStringKey:    "password",
			PasswordLength:       32,
			SecretStringTemplate: string(template),
		},
	}, plan.WithCondition(d.BlankCondition))

	d.groups = groups{
		label:  "Database Secret",
		params: []string{d.arn.ID()},
		labels: map[string]string{d.arn.ID(): "Database Secret ARN"},
	}
	return d
}

// SecretArn returns the ARN of the given or created secret.
func (d *DbSecret) SecretArn() If {
	return IfCondition(d.BlankCondition, d.secret.Ref(), d.arn.Ref())
}
