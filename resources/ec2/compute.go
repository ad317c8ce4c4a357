package ec2

// Volume represents an AWS::EC2::Volume resource.
type Volume struct {
	AvailabilityZone any   `json:"AvailabilityZone,omitempty"`
	Encrypted        any   `json:"Encrypted,omitempty"`
	Size             any   `json:"Size,omitempty"`
	SnapshotId       any   `json:"SnapshotId,omitempty"`
	VolumeType       any   `json:"VolumeType,omitempty"`
	Tags             []any `json:"Tags,omitempty"`
}

// ResourceType returns the CloudFormation resource type.
func (r Volume) ResourceType() string { return "AWS::EC2::Volume" }

// LaunchTemplate represents an AWS::EC2::LaunchTemplate resource.
// See: https://docs.aws.amazon.com/AWSCloudFormation/latest/UserGuide/aws-resource-ec2-launchtemplate.html
type LaunchTemplate struct {
	LaunchTemplateData *LaunchTemplate_LaunchTemplateData `json:"LaunchTemplateData,omitempty"`
	LaunchTemplateName any                                `json:"LaunchTemplateName,omitempty"`
}

// ResourceType returns the CloudFormation resource type.
func (r LaunchTemplate) ResourceType() string { return "AWS::EC2::LaunchTemplate" }

// LaunchTemplate_LaunchTemplateData is the instance configuration of a LaunchTemplate.
type LaunchTemplate_LaunchTemplateData struct {
	BlockDeviceMappings []any                              `json:"BlockDeviceMappings,omitempty"`
	IamInstanceProfile  *LaunchTemplate_IamInstanceProfile `json:"IamInstanceProfile,omitempty"`
	ImageId             any                                `json:"ImageId,omitempty"`
	InstanceType        any                                `json:"InstanceType,omitempty"`
	KeyName             any                                `json:"KeyName,omitempty"`
	MetadataOptions     *LaunchTemplate_MetadataOptions    `json:"MetadataOptions,omitempty"`
	SecurityGroupIds    []any                              `json:"SecurityGroupIds,omitempty"`
	TagSpecifications   []any                              `json:"TagSpecifications,omitempty"`
	UserData            any                                `json:"UserData,omitempty"`
}

// LaunchTemplate_BlockDeviceMapping maps a device name to an EBS volume.
type LaunchTemplate_BlockDeviceMapping struct {
	DeviceName any                 `json:"DeviceName,omitempty"`
	Ebs        *LaunchTemplate_Ebs `json:"Ebs,omitempty"`
}

// LaunchTemplate_Ebs configures an EBS block device.
type LaunchTemplate_Ebs struct {
	DeleteOnTermination any `json:"DeleteOnTermination,omitempty"`
	Encrypted           any `json:"Encrypted,omitempty"`
	VolumeSize          any `json:"VolumeSize,omitempty"`
	VolumeType          any `json:"VolumeType,omitempty"`
}

// LaunchTemplate_IamInstanceProfile references an instance profile.
type LaunchTemplate_IamInstanceProfile struct {
	Arn  any `json:"Arn,omitempty"`
	Name any `json:"Name,omitempty"`
}

// LaunchTemplate_MetadataOptions configures the instance metadata service.
type LaunchTemplate_MetadataOptions struct {
	HttpEndpoint            any `json:"HttpEndpoint,omitempty"`
	HttpPutResponseHopLimit any `json:"HttpPutResponseHopLimit,omitempty"`
	HttpTokens              any `json:"HttpTokens,omitempty"`
}

// LaunchTemplate_TagSpecification tags resources created from the template.
type LaunchTemplate_TagSpecification struct {
	ResourceType any   `json:"ResourceType,omitempty"`
	Tags         []any `json:"Tags,omitempty"`
}
