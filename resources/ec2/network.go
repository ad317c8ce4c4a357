// Package ec2 provides CloudFormation resource types for AWS::EC2.
package ec2

// VPC represents an AWS::EC2::VPC resource.
// See: https://docs.aws.amazon.com/AWSCloudFormation/latest/UserGuide/aws-resource-ec2-vpc.html
type VPC struct {
	CidrBlock          any   `json:"CidrBlock,omitempty"`
	EnableDnsHostnames any   `json:"EnableDnsHostnames,omitempty"`
	EnableDnsSupport   any   `json:"EnableDnsSupport,omitempty"`
	InstanceTenancy    any   `json:"InstanceTenancy,omitempty"`
	Tags               []any `json:"Tags,omitempty"`
}

// ResourceType returns the CloudFormation resource type.
func (r VPC) ResourceType() string { return "AWS::EC2::VPC" }

// InternetGateway represents an AWS::EC2::InternetGateway resource.
type InternetGateway struct {
	Tags []any `json:"Tags,omitempty"`
}

// ResourceType returns the CloudFormation resource type.
func (r InternetGateway) ResourceType() string { return "AWS::EC2::InternetGateway" }

// VPCGatewayAttachment represents an AWS::EC2::VPCGatewayAttachment resource.
type VPCGatewayAttachment struct {
	InternetGatewayId any `json:"InternetGatewayId,omitempty"`
	VpcId             any `json:"VpcId,omitempty"`
}

// ResourceType returns the CloudFormation resource type.
func (r VPCGatewayAttachment) ResourceType() string { return "AWS::EC2::VPCGatewayAttachment" }

// Subnet represents an AWS::EC2::Subnet resource.
type Subnet struct {
	AvailabilityZone    any   `json:"AvailabilityZone,omitempty"`
	CidrBlock           any   `json:"CidrBlock,omitempty"`
	MapPublicIpOnLaunch any   `json:"MapPublicIpOnLaunch,omitempty"`
	VpcId               any   `json:"VpcId,omitempty"`
	Tags                []any `json:"Tags,omitempty"`
}

// ResourceType returns the CloudFormation resource type.
func (r Subnet) ResourceType() string { return "AWS::EC2::Subnet" }

// RouteTable represents an AWS::EC2::RouteTable resource.
type RouteTable struct {
	VpcId any   `json:"VpcId,omitempty"`
	Tags  []any `json:"Tags,omitempty"`
}

// ResourceType returns the CloudFormation resource type.
func (r RouteTable) ResourceType() string { return "AWS::EC2::RouteTable" }

// Route represents an AWS::EC2::Route resource.
type Route struct {
	DestinationCidrBlock any `json:"DestinationCidrBlock,omitempty"`
	GatewayId            any `json:"GatewayId,omitempty"`
	NatGatewayId         any `json:"NatGatewayId,omitempty"`
	RouteTableId         any `json:"RouteTableId,omitempty"`
}

// ResourceType returns the CloudFormation resource type.
func (r Route) ResourceType() string { return "AWS::EC2::Route" }

// SubnetRouteTableAssociation represents an AWS::EC2::SubnetRouteTableAssociation resource.
type SubnetRouteTableAssociation struct {
	RouteTableId any `json:"RouteTableId,omitempty"`
	SubnetId     any `json:"SubnetId,omitempty"`
}

// ResourceType returns the CloudFormation resource type.
func (r SubnetRouteTableAssociation) ResourceType() string {
	return "AWS::EC2::SubnetRouteTableAssociation"
}

// EIP represents an AWS::EC2::EIP resource.
type EIP struct {
	Domain any   `json:"Domain,omitempty"`
	Tags   []any `json:"Tags,omitempty"`
}

// ResourceType returns the CloudFormation resource type.
func (r EIP) ResourceType() string { return "AWS::EC2::EIP" }

// NatGateway represents an AWS::EC2::NatGateway resource.
type NatGateway struct {
	AllocationId any   `json:"AllocationId,omitempty"`
	SubnetId     any   `json:"SubnetId,omitempty"`
	Tags         []any `json:"Tags,omitempty"`
}

// ResourceType returns the CloudFormation resource type.
func (r NatGateway) ResourceType() string { return "AWS::EC2::NatGateway" }
