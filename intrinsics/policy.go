// Package intrinsics provides CloudFormation intrinsic functions.
// This file contains IAM policy document types and helpers.
package intrinsics

import (
	"encoding/json"
)

// Json is a shorthand for map[string]any.
// Used for inline JSON objects like Condition blocks.
type Json = map[string]any

// Any creates a []any slice from the given items.
// Use for fields typed as []any that accept mixed types or intrinsics.
//
// Example:
//
//	SecurityGroupIds: Any(AsgSecurityGroup.Att("GroupId")),
func Any(items ...any) []any {
	return items
}

// PolicyDocument represents an IAM policy document.
type PolicyDocument struct {
	Version   string `json:"Version,omitempty"`
	Statement []any  `json:"Statement"`
}

// NewPolicyDocument creates a PolicyDocument with the default version.
func NewPolicyDocument(statements ...any) PolicyDocument {
	return PolicyDocument{Version: "2012-10-17", Statement: statements}
}

// PolicyStatement represents an IAM policy statement.
//
// Example:
//
//	PolicyStatement{
//	    Effect:    "Allow",
//	    Principal: ServicePrincipal{"ec2.amazonaws.com"},
//	    Action:    []any{"sts:AssumeRole"},
//	}
type PolicyStatement struct {
	Sid       string `json:"Sid,omitempty"`
	Effect    string `json:"Effect"`
	Principal any    `json:"Principal,omitempty"`
	Action    any    `json:"Action,omitempty"`
	Resource  any    `json:"Resource,omitempty"`
	Condition Json   `json:"Condition,omitempty"`
}

// Allow creates an Allow statement for the given actions and resources.
func Allow(actions []any, resources ...any) PolicyStatement {
	return PolicyStatement{Effect: "Allow", Action: actions, Resource: resources}
}

// AssumeRoleBy returns a trust policy letting the given service assume a role.
func AssumeRoleBy(service string) PolicyDocument {
	return NewPolicyDocument(PolicyStatement{
		Effect:    "Allow",
		Principal: ServicePrincipal{service},
		Action:    []any{"sts:AssumeRole"},
	})
}

// ServicePrincipal represents a service principal (e.g., ec2.amazonaws.com).
// Serializes to {"Service": ...} format.
type ServicePrincipal []any

// MarshalJSON serializes to {"Service": ...} format.
func (p ServicePrincipal) MarshalJSON() ([]byte, error) {
	if len(p) == 1 {
		return json.Marshal(map[string]any{"Service": p[0]})
	}
	return json.Marshal(map[string]any{"Service": []any(p)})
}

// ManagedPolicyArn returns the ARN of an AWS managed policy in the current partition.
func ManagedPolicyArn(name string) Sub {
	return Sub{String: "arn:${AWS::Partition}:iam::aws:policy/" + name}
}
