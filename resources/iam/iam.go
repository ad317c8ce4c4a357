// Package iam provides CloudFormation resource types for AWS::IAM.
package iam

// Policy is an inline policy attached to a role or user.
type Policy struct {
	PolicyDocument any `json:"PolicyDocument,omitempty"`
	PolicyName     any `json:"PolicyName,omitempty"`
}

// Role represents an AWS::IAM::Role resource.
// See: https://docs.aws.amazon.com/AWSCloudFormation/latest/UserGuide/aws-resource-iam-role.html
type Role struct {
	AssumeRolePolicyDocument any   `json:"AssumeRolePolicyDocument,omitempty"`
	Description              any   `json:"Description,omitempty"`
	ManagedPolicyArns        []any `json:"ManagedPolicyArns,omitempty"`
	Path                     any   `json:"Path,omitempty"`
	Policies                 []any `json:"Policies,omitempty"`
	Tags                     []any `json:"Tags,omitempty"`
}

// ResourceType returns the CloudFormation resource type.
func (r Role) ResourceType() string { return "AWS::IAM::Role" }

// InstanceProfile represents an AWS::IAM::InstanceProfile resource.
type InstanceProfile struct {
	Path  any   `json:"Path,omitempty"`
	Roles []any `json:"Roles,omitempty"`
}

// ResourceType returns the CloudFormation resource type.
func (r InstanceProfile) ResourceType() string { return "AWS::IAM::InstanceProfile" }

// ManagedPolicy represents an AWS::IAM::ManagedPolicy resource.
type ManagedPolicy struct {
	Description    any   `json:"Description,omitempty"`
	PolicyDocument any   `json:"PolicyDocument,omitempty"`
	Roles          []any `json:"Roles,omitempty"`
	Users          []any `json:"Users,omitempty"`
}

// ResourceType returns the CloudFormation resource type.
func (r ManagedPolicy) ResourceType() string { return "AWS::IAM::ManagedPolicy" }

// User represents an AWS::IAM::User resource.
type User struct {
	ManagedPolicyArns []any `json:"ManagedPolicyArns,omitempty"`
	Path              any   `json:"Path,omitempty"`
	Policies          []any `json:"Policies,omitempty"`
	Tags              []any `json:"Tags,omitempty"`
}

// ResourceType returns the CloudFormation resource type.
func (r User) ResourceType() string { return "AWS::IAM::User" }

// AccessKey represents an AWS::IAM::AccessKey resource.
type AccessKey struct {
	Serial   any `json:"Serial,omitempty"`
	Status   any `json:"Status,omitempty"`
	UserName any `json:"UserName,omitempty"`
}

// ResourceType returns the CloudFormation resource type.
func (r AccessKey) ResourceType() string { return "AWS::IAM::AccessKey" }
