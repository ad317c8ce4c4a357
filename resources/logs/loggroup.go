// Package logs provides CloudFormation resource types for AWS::Logs.
package logs

// LogGroup represents an AWS::Logs::LogGroup resource.
type LogGroup struct {
	LogGroupName    any `json:"LogGroupName,omitempty"`
	RetentionInDays any `json:"RetentionInDays,omitempty"`
}

// ResourceType returns the CloudFormation resource type.
func (r LogGroup) ResourceType() string { return "AWS::Logs::LogGroup" }
