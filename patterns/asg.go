package patterns

import (
	"fmt"
	"maps"
	"slices"

	wetwire "github.com/lex00/wetwire-peertube-go"
	"github.com/lex00/wetwire-peertube-go/internal/plan"
	. "github.com/lex00/wetwire-peertube-go/intrinsics"
	"github.com/lex00/wetwire-peertube-go/resources/autoscaling"
	"github.com/lex00/wetwire-peertube-go/resources/ec2"
	"github.com/lex00/wetwire-peertube-go/resources/iam"
	"github.com/lex00/wetwire-peertube-go/resources/logs"
)

// Instance type choices offered by the AsgInstanceType parameter.
var (
	GravitonInstanceTypes = []any{
		"c7g.medium", "c7g.large", "c7g.xlarge", "c7g.2xlarge",
		"m7g.medium", "m7g.large", "m7g.xlarge", "m7g.2xlarge",
		"r7g.medium", "r7g.large", "r7g.xlarge",
		"t4g.small", "t4g.medium", "t4g.large", "t4g.xlarge",
	}
	X86InstanceTypes = []any{
		"c6i.large", "c6i.xlarge", "c6i.2xlarge",
		"m6i.large", "m6i.xlarge", "m6i.2xlarge",
		"r6i.large", "r6i.xlarge",
		"t3.small", "t3.medium", "t3.large", "t3.xlarge", "t3.2xlarge",
	}
)

// AsgProps configures the auto scaling group construct.
type AsgProps struct {
	// AmiID is the image of the instance: a literal ID or an intrinsic such as Fn::FindInMap.
	AmiID               any
	DefaultInstanceType string
	UseGraviton         bool
	RootVolumeSize      int
	UseDataVolume       bool
	// UserDataContents is the boot script, with ${Name} placeholders.
	UserDataContents string
	// UserDataVariables are substituted into the boot script.
	UserDataVariables map[string]any
	// SecretArns are the secrets the instance may read.
	SecretArns []any
	// AdditionalRolePolicies are inline policies added to the instance role.
	AdditionalRolePolicies []iam.Policy
	Vpc                    *Vpc
}

// Asg is a singleton auto scaling group: Min=Max=Desired=1.
type Asg struct {
	groups

	sg    plan.Handle
	role  plan.Handle
	group plan.Handle
}

// NewAsg declares the auto scaling group construct under the given prefix, e.g. "Asg".
func NewAsg(b *plan.Builder, prefix string, props AsgProps) (*Asg, error) {
	if props.AmiID == nil {
		return nil, fmt.Errorf("%s: AmiID is required", prefix)
	}
	if props.Vpc == nil {
		return nil, fmt.Errorf("%s: Vpc is required", prefix)
	}
	allowed := X86InstanceTypes
	if props.UseGraviton {
		allowed = GravitonInstanceTypes
	}
	if !slices.Contains(allowed, any(props.DefaultInstanceType)) {
		return nil, fmt.Errorf("%s: instance type %q is not offered for this architecture", prefix, props.DefaultInstanceType)
	}

	a := &Asg{}
	instanceType := b.Parameter(prefix+"InstanceType", wetwire.Parameter{
		AllowedValues: allowed,
		Default:       props.DefaultInstanceType,
		Description:   "Required: The EC2 instance type for the application Auto Scaling Group.",
	})
	keyName := b.Parameter(prefix+"KeyName", wetwire.Parameter{
		Default:     "",
		Description: "Optional: The EC2 key pair name for SSH access to the instance. If blank, SSH is only possible through Session Manager.",
	})
	reprovision := b.Parameter(prefix+"ReprovisionString", wetwire.Parameter{
		Default:     "",
		Description: "Optional: Changes to this parameter will force instance reprovision on stack update.",
	})
	params := []string{instanceType.ID(), keyName.ID(), reprovision.ID()}
	labels := map[string]string{
		instanceType.ID(): "Instance Type",
		keyName.ID():      "EC2 Key Name",
		reprovision.ID():  "ASG Reprovision String",
	}
	keyCondition := notBlank(b, prefix+"KeyNameCondition", keyName.ID())

	a.sg = b.Resource(prefix+"Sg", ec2.SecurityGroup{
		GroupDescription: Sub{String: "${AWS::StackName}/asg"},
		SecurityGroupEgress: Any(ec2.SecurityGroup_Rule{
			CidrIp:      "0.0.0.0/0",
			Description: "all IPv4 egress traffic allowed",
			IpProtocol:  "-1",
		}),
		VpcId: props.Vpc.VpcID(),
		Tags:  Any(nameTag("asg")),
	})

	logGroup := b.Resource(prefix+"AppLogGroup", logs.LogGroup{
		LogGroupName:    Sub{String: "/aws/ec2/${AWS::StackName}/app"},
		RetentionInDays: 731,
	}, plan.Retain())

	policies := []any{
		iam.Policy{
			PolicyName: "AllowStreamLogs",
			PolicyDocument: NewPolicyDocument(Allow(
				Any("logs:CreateLogStream", "logs:DescribeLogStreams", "logs:PutLogEvents"),
				logGroup.Att("Arn"),
			)),
		},
	}
	if len(props.SecretArns) > 0 {
		policies = append(policies, iam.Policy{
			PolicyName:     "AllowReadSecrets",
			PolicyDocument: NewPolicyDocument(Allow(Any("secretsmanager:GetSecretValue"), props.SecretArns...)),
		})
	}

	vars := maps.Clone(props.UserDataVariables)
	if vars == nil {
		vars = make(map[string]any)
	}
	subnets := props.Vpc.PrivateSubnetIDs()
	if props.UseDataVolume {
		minSize := 10.0
		size := b.Parameter(prefix+"DataVolumeSize", wetwire.Parameter{
			Type:        "Number",
			Default:     100,
			MinValue:    &minSize,
			Description: "Required: The size in GiB of the data volume attached to the instance. Data is retained when the instance is replaced.",
		})
		params = append(params, size.ID())
		labels[size.ID()] = "Data Volume Size"

		// The volume lives in one AZ; pin the group to the matching subnet.
		volume := b.Resource(prefix+"DataVolume", ec2.Volume{
			AvailabilityZone: props.Vpc.PrivateSubnet1AvailabilityZone(),
			Encrypted:        true,
			Size:             size.Ref(),
			VolumeType:       "gp3",
			Tags:             Any(nameTag("data")),
		}, plan.Snapshot())
		subnets = subnets[:1]
		vars["AsgDataVolumeId"] = volume.Ref()
		policies = append(policies, iam.Policy{
			PolicyName: "AllowAttachDataVolume",
			PolicyDocument: NewPolicyDocument(
				Allow(Any("ec2:AttachVolume"),
					StackScopedArn("ec2", "volume/${"+volume.ID()+"}"),
					StackScopedArn("ec2", "instance/*"),
				),
				Allow(Any("ec2:DescribeVolumes"), "*"),
			),
		})
	}
	if !props.UseDataVolume {
		vars["AsgDataVolumeId"] = ""
	}
	for _, p := range props.AdditionalRolePolicies {
		policies = append(policies, p)
	}
	vars["AsgAppLogGroup"] = logGroup.Ref()

	a.role = b.Resource(prefix+"InstanceRole", iam.Role{
		AssumeRolePolicyDocument: AssumeRoleBy("ec2.amazonaws.com"),
		ManagedPolicyArns: Any(
			ManagedPolicyArn("AmazonSSMManagedInstanceCore"),
			ManagedPolicyArn("CloudWatchAgentServerPolicy"),
		),
		Policies: policies,
	})
	profile := b.Resource(prefix+"InstanceProfile", iam.InstanceProfile{Roles: Any(a.role.Ref())})

	lt := b.Resource(prefix+"LaunchTemplate", ec2.LaunchTemplate{
		LaunchTemplateData: &ec2.LaunchTemplate_LaunchTemplateData{
			BlockDeviceMappings: Any(ec2.LaunchTemplate_BlockDeviceMapping{
				DeviceName: "/dev/sda1",
				Ebs: &ec2.LaunchTemplate_Ebs{
					DeleteOnTermination: true,
					Encrypted:           true,
					VolumeSize:          props.RootVolumeSize,
					VolumeType:          "gp3",
				},
			}),
			IamInstanceProfile: &ec2.LaunchTemplate_IamInstanceProfile{Arn: profile.Att("Arn")},
			ImageId:            props.AmiID,
			InstanceType:       instanceType.Ref(),
			KeyName:            IfCondition(keyCondition, keyName.Ref(), AWS_NO_VALUE),
			MetadataOptions:    &ec2.LaunchTemplate_MetadataOptions{HttpTokens: "required"},
			SecurityGroupIds:   Any(a.sg.Att("GroupId")),
			TagSpecifications: Any(ec2.LaunchTemplate_TagSpecification{
				ResourceType: "instance",
				Tags:         Any(nameTag("instance"), Tag{Key: "ReprovisionString", Value: reprovision.Ref()}),
			}),
			UserData: Base64{Value: SubWithMap{String: props.UserDataContents, Variables: vars}},
		},
	})

	a.group = b.Resource(prefix+"AutoScalingGroup", autoscaling.AutoScalingGroup{
		DesiredCapacity: "1",
		LaunchTemplate: &autoscaling.AutoScalingGroup_LaunchTemplateSpecification{
			LaunchTemplateId: lt.Ref(),
			Version:          lt.Att("LatestVersionNumber"),
		},
		MaxSize:           "1",
		MinSize:           "1",
		VPCZoneIdentifier: subnets,
		Tags: Any(autoscaling.AutoScalingGroup_TagProperty{
			Key:               "Name",
			PropagateAtLaunch: true,
			Value:             Sub{String: "${AWS::StackName}/asg"},
		}),
	},
		plan.WithCreationPolicy(map[string]any{
			"ResourceSignal": map[string]any{"Count": 1, "Timeout": signalTimeout},
		}),
		plan.WithUpdatePolicy(updatePolicy(props.UseDataVolume)),
	)

	a.groups = groups{label: "ASG", params: params, labels: labels}
	return a, nil
}

// signalTimeout bounds how long CloudFormation waits for cfn-signal from
// the instance bootstrap.
const signalTimeout = "PT20M"

// updatePolicy replaces the instance when the launch template changes.
// The data volume attaches to one instance at a time, so the old instance
// must be gone before its replacement boots.
func updatePolicy(dataVolume bool) map[string]any {
	if dataVolume {
		return map[string]any{"AutoScalingRollingUpdate": map[string]any{
			"MaxBatchSize":          1,
			"MinInstancesInService": 0,
			"PauseTime":             signalTimeout,
			"WaitOnResourceSignals": true,
		}}
	}
	return map[string]any{"AutoScalingReplacingUpdate": map[string]any{"WillReplace": true}}
}

// SecurityGroup returns the instance security group.
func (a *Asg) SecurityGroup() plan.Handle { return a.sg }

// Group returns the auto scaling group.
func (a *Asg) Group() plan.Handle { return a.group }

// Role returns the instance role.
func (a *Asg) Role() plan.Handle { return a.role }
