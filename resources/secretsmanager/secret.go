// Package secretsmanager provides CloudFormation resource types for AWS::SecretsManager.
package secretsmanager

// Secret represents an AWS::SecretsManager::Secret resource.
// See: https://docs.aws.amazon.com/AWSCloudFormation/latest/UserGuide/aws-resource-secretsmanager-secret.html
type Secret struct {
	Description          any                          `json:"Description,omitempty"`
	GenerateSecretString *Secret_GenerateSecretString `json:"GenerateSecretString,omitempty"`
	Name                 any                          `json:"Name,omitempty"`
	SecretString         any                          `json:"SecretString,omitempty"`
	Tags                 []any                        `json:"Tags,omitempty"`
}

// ResourceType returns the CloudFormation resource type.
func (r Secret) ResourceType() string { return "AWS::SecretsManager::Secret" }

// Secret_GenerateSecretString generates a random secret value.
type Secret_GenerateSecretString struct {
	ExcludeCharacters    any `json:"ExcludeCharacters,omitempty"`
	ExcludePunctuation   any `json:"ExcludePunctuation,omitempty"`
	GenerateStringKey    any `json:"GenerateStringKey,omitempty"`
	PasswordLength       any `json:"PasswordLength,omitempty"`
	SecretStringTemplate any `json:"SecretStringTemplate,omitempty"`
}
