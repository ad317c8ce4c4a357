package ec2

// SecurityGroup represents an AWS::EC2::SecurityGroup resource.
// See: https://docs.aws.amazon.com/AWSCloudFormation/latest/UserGuide/aws-resource-ec2-securitygroup.html
type SecurityGroup struct {
	GroupDescription     any   `json:"GroupDescription,omitempty"`
	GroupName            any   `json:"GroupName,omitempty"`
	SecurityGroupEgress  []any `json:"SecurityGroupEgress,omitempty"`
	SecurityGroupIngress []any `json:"SecurityGroupIngress,omitempty"`
	VpcId                any   `json:"VpcId,omitempty"`
	Tags                 []any `json:"Tags,omitempty"`
}

// ResourceType returns the CloudFormation resource type.
func (r SecurityGroup) ResourceType() string { return "AWS::EC2::SecurityGroup" }

// SecurityGroup_Rule is an inline ingress or egress rule of a SecurityGroup.
type SecurityGroup_Rule struct {
	CidrIp                any `json:"CidrIp,omitempty"`
	Description           any `json:"Description,omitempty"`
	FromPort              any `json:"FromPort,omitempty"`
	IpProtocol            any `json:"IpProtocol,omitempty"`
	SourceSecurityGroupId any `json:"SourceSecurityGroupId,omitempty"`
	ToPort                any `json:"ToPort,omitempty"`
}

// SecurityGroupIngress represents an AWS::EC2::SecurityGroupIngress resource.
type SecurityGroupIngress struct {
	Description           any `json:"Description,omitempty"`
	FromPort              any `json:"FromPort,omitempty"`
	GroupId               any `json:"GroupId,omitempty"`
	IpProtocol            any `json:"IpProtocol,omitempty"`
	SourceSecurityGroupId any `json:"SourceSecurityGroupId,omitempty"`
	ToPort                any `json:"ToPort,omitempty"`
}

// ResourceType returns the CloudFormation resource type.
func (r SecurityGroupIngress) ResourceType() string { return "AWS::EC2::SecurityGroupIngress" }
