// Package ses provides CloudFormation resource types for AWS::SES.
package ses

// EmailIdentity represents an AWS::SES::EmailIdentity resource.
// See: https://docs.aws.amazon.com/AWSCloudFormation/latest/UserGuide/aws-resource-ses-emailidentity.html
type EmailIdentity struct {
	DkimAttributes *EmailIdentity_DkimAttributes `json:"DkimAttributes,omitempty"`
	EmailIdentity  any                           `json:"EmailIdentity,omitempty"`
}

// ResourceType returns the CloudFormation resource type.
func (r EmailIdentity) ResourceType() string { return "AWS::SES::EmailIdentity" }

// EmailIdentity_DkimAttributes toggles DKIM signing.
type EmailIdentity_DkimAttributes struct {
	SigningEnabled any `json:"SigningEnabled,omitempty"`
}
