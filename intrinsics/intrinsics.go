// Package intrinsics provides CloudFormation intrinsic functions.
//
// This package re-exports the core intrinsic types from cloudformation-schema-go
// and adds the helpers the PeerTube constructs share.
//
// Core intrinsic functions:
//
//	Ref{LogicalName: "AssetsBucket"} → {"Ref": "AssetsBucket"}
//	Sub{String: "${AWS::StackName}/instance/credentials"} → {"Fn::Sub": "..."}
//	Join{Delimiter: "", Values: []any{"https://", Hostname}} → {"Fn::Join": ["", [...]]}
//
// Pseudo-parameters:
//
//	AWS_REGION, AWS_ACCOUNT_ID, AWS_STACK_NAME, etc.
package intrinsics

import (
	"fmt"

	"github.com/lex00/cloudformation-schema-go/intrinsics"
)

type (
	// Ref represents a CloudFormation Ref intrinsic function.
	Ref = intrinsics.Ref

	// GetAtt represents a CloudFormation Fn::GetAtt intrinsic function.
	GetAtt = intrinsics.GetAtt

	// Sub represents a CloudFormation Fn::Sub intrinsic function.
	Sub = intrinsics.Sub

	// SubWithMap is Fn::Sub with a variable map.
	SubWithMap = intrinsics.SubWithMap

	// Join represents a CloudFormation Fn::Join intrinsic function.
	Join = intrinsics.Join

	// Select represents a CloudFormation Fn::Select intrinsic function.
	Select = intrinsics.Select

	// GetAZs represents a CloudFormation Fn::GetAZs intrinsic function.
	GetAZs = intrinsics.GetAZs

	// If represents a CloudFormation Fn::If intrinsic function.
	If = intrinsics.If

	// Equals represents a CloudFormation Fn::Equals condition function.
	Equals = intrinsics.Equals

	// And represents a CloudFormation Fn::And condition function.
	And = intrinsics.And

	// Or represents a CloudFormation Fn::Or condition function.
	Or = intrinsics.Or

	// Not represents a CloudFormation Fn::Not condition function.
	Not = intrinsics.Not

	// Base64 represents a CloudFormation Fn::Base64 intrinsic function.
	Base64 = intrinsics.Base64

	// FindInMap represents a CloudFormation Fn::FindInMap intrinsic function.
	FindInMap = intrinsics.FindInMap

	// Cidr represents a CloudFormation Fn::Cidr intrinsic function.
	Cidr = intrinsics.Cidr

	// Tag represents a CloudFormation resource tag.
	Tag = intrinsics.Tag
)

// Pseudo-parameters are predefined by CloudFormation and available in every template.
var (
	// AWS_ACCOUNT_ID returns the AWS account ID of the account in which the stack is created.
	AWS_ACCOUNT_ID = intrinsics.AWS_ACCOUNT_ID

	// AWS_NO_VALUE removes the resource property when used with Fn::If.
	AWS_NO_VALUE = intrinsics.AWS_NO_VALUE

	// AWS_PARTITION returns the partition the resource is in (aws, aws-cn, aws-us-gov).
	AWS_PARTITION = intrinsics.AWS_PARTITION

	// AWS_REGION returns the AWS Region in which the stack is created.
	AWS_REGION = intrinsics.AWS_REGION

	// AWS_STACK_NAME returns the name of the stack.
	AWS_STACK_NAME = intrinsics.AWS_STACK_NAME

	// AWS_URL_SUFFIX returns the suffix for a domain (usually amazonaws.com).
	AWS_URL_SUFFIX = intrinsics.AWS_URL_SUFFIX
)

// Mapping represents a CloudFormation Mappings table.
// It maps a top-level key to a second-level key to values.
//
// Example:
//
//	var RegionAMI = Mapping{
//	    "us-east-1": {"AMI": "ami-12345"},
//	    "us-west-2": {"AMI": "ami-67890"},
//	}
type Mapping map[string]map[string]any

// RefTo returns a Ref to a parameter or resource logical ID.
func RefTo(logicalID string) Ref {
	return Ref{LogicalName: logicalID}
}

// IsBlank returns the condition expression `logicalID == ""`.
func IsBlank(logicalID string) Equals {
	return Equals{Value1: RefTo(logicalID), Value2: ""}
}

// IsNotBlank returns the condition expression `logicalID != ""`.
func IsNotBlank(logicalID string) Not {
	return Not{Condition: IsBlank(logicalID)}
}

// IfCondition selects between two values on a named condition.
func IfCondition(condition string, whenTrue, whenFalse any) If {
	return If{Condition: condition, ValueIfTrue: whenTrue, ValueIfFalse: whenFalse}
}

// ResolveSecret builds a dynamic reference to a key of a Secrets Manager secret.
//
//	{{resolve:secretsmanager:${SecretArn}:SecretString:password}}
func ResolveSecret(secretArn any, key string) SubWithMap {
	return SubWithMap{
		String:    fmt.Sprintf("{{resolve:secretsmanager:${SecretArn}:SecretString:%s}}", key),
		Variables: map[string]any{"SecretArn": secretArn},
	}
}

// StackScopedArn builds an ARN in the current partition, region and account.
//
//	StackScopedArn("secretsmanager", "secret:${AWS::StackName}/instance/credentials-*")
func StackScopedArn(service, resource string) Sub {
	return Sub{String: fmt.Sprintf("arn:${AWS::Partition}:%s:${AWS::Region}:${AWS::AccountId}:%s", service, resource)}
}
