// Package autoscaling provides CloudFormation resource types for AWS::AutoScaling.
package autoscaling

// AutoScalingGroup represents an AWS::AutoScaling::AutoScalingGroup resource.
// See: https://docs.aws.amazon.com/AWSCloudFormation/latest/UserGuide/aws-resource-autoscaling-autoscalinggroup.html
type AutoScalingGroup struct {
	DesiredCapacity        any                                           `json:"DesiredCapacity,omitempty"`
	HealthCheckGracePeriod any                                           `json:"HealthCheckGracePeriod,omitempty"`
	HealthCheckType        any                                           `json:"HealthCheckType,omitempty"`
	LaunchTemplate         *AutoScalingGroup_LaunchTemplateSpecification `json:"LaunchTemplate,omitempty"`
	MaxSize                any                                           `json:"MaxSize,omitempty"`
	MinSize                any                                           `json:"MinSize,omitempty"`
	TargetGroupARNs        []any                                         `json:"TargetGroupARNs,omitempty"`
	VPCZoneIdentifier      []any                                         `json:"VPCZoneIdentifier,omitempty"`
	Tags                   []any                                         `json:"Tags,omitempty"`
}

// ResourceType returns the CloudFormation resource type.
func (r AutoScalingGroup) ResourceType() string { return "AWS::AutoScaling::AutoScalingGroup" }

// AutoScalingGroup_LaunchTemplateSpecification selects a launch template version.
type AutoScalingGroup_LaunchTemplateSpecification struct {
	LaunchTemplateId any `json:"LaunchTemplateId,omitempty"`
	Version          any `json:"Version,omitempty"`
}

// AutoScalingGroup_TagProperty is a tag that may propagate to instances.
type AutoScalingGroup_TagProperty struct {
	Key               any `json:"Key"`
	PropagateAtLaunch any `json:"PropagateAtLaunch"`
	Value             any `json:"Value"`
}
