// Package lambda provides CloudFormation resource types for AWS::Lambda.
package lambda

// Function represents an AWS::Lambda::Function resource.
// See: https://docs.aws.amazon.com/AWSCloudFormation/latest/UserGuide/aws-resource-lambda-function.html
type Function struct {
	Code        *Function_Code        `json:"Code,omitempty"`
	Description any                   `json:"Description,omitempty"`
	Environment *Function_Environment `json:"Environment,omitempty"`
	Handler     any                   `json:"Handler,omitempty"`
	MemorySize  any                   `json:"MemorySize,omitempty"`
	Role        any                   `json:"Role,omitempty"`
	Runtime     any                   `json:"Runtime,omitempty"`
	Timeout     any                   `json:"Timeout,omitempty"`
}

// ResourceType returns the CloudFormation resource type.
func (r Function) ResourceType() string { return "AWS::Lambda::Function" }

// Function_Code holds inline function source.
type Function_Code struct {
	ZipFile any `json:"ZipFile,omitempty"`
}

// Function_Environment holds environment variables.
type Function_Environment struct {
	Variables map[string]any `json:"Variables,omitempty"`
}
