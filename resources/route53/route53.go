// Package route53 provides CloudFormation resource types for AWS::Route53.
package route53

// RecordSet represents an AWS::Route53::RecordSet resource.
// See: https://docs.aws.amazon.com/AWSCloudFormation/latest/UserGuide/aws-resource-route53-recordset.html
type RecordSet struct {
	AliasTarget     *RecordSet_AliasTarget `json:"AliasTarget,omitempty"`
	Comment         any                    `json:"Comment,omitempty"`
	HostedZoneId    any                    `json:"HostedZoneId,omitempty"`
	HostedZoneName  any                    `json:"HostedZoneName,omitempty"`
	Name            any                    `json:"Name,omitempty"`
	ResourceRecords []any                  `json:"ResourceRecords,omitempty"`
	TTL             any                    `json:"TTL,omitempty"`
	Type            any                    `json:"Type,omitempty"`
}

// ResourceType returns the CloudFormation resource type.
func (r RecordSet) ResourceType() string { return "AWS::Route53::RecordSet" }

// RecordSet_AliasTarget points an alias record at an AWS resource.
type RecordSet_AliasTarget struct {
	DNSName              any `json:"DNSName,omitempty"`
	EvaluateTargetHealth any `json:"EvaluateTargetHealth,omitempty"`
	HostedZoneId         any `json:"HostedZoneId,omitempty"`
}

// RecordSetGroup represents an AWS::Route53::RecordSetGroup resource.
type RecordSetGroup struct {
	Comment        any   `json:"Comment,omitempty"`
	HostedZoneName any   `json:"HostedZoneName,omitempty"`
	RecordSets     []any `json:"RecordSets,omitempty"`
}

// ResourceType returns the CloudFormation resource type.
func (r RecordSetGroup) ResourceType() string { return "AWS::Route53::RecordSetGroup" }

// RecordSetGroup_RecordSet is one record inside a RecordSetGroup.
type RecordSetGroup_RecordSet struct {
	Name            any   `json:"Name,omitempty"`
	ResourceRecords []any `json:"ResourceRecords,omitempty"`
	TTL             any   `json:"TTL,omitempty"`
	Type            any   `json:"Type,omitempty"`
}
