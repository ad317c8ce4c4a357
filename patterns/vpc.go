package patterns

import (
	"fmt"
	"strconv"

	wetwire "github.com/lex00/wetwire-peertube-go"
	"github.com/lex00/wetwire-peertube-go/internal/plan"
	. "github.com/lex00/wetwire-peertube-go/intrinsics"
	"github.com/lex00/wetwire-peertube-go/resources/ec2"
)

// Vpc either uses an existing VPC and subnets passed as parameters or creates
// a two-AZ VPC with public and private subnets and a NAT gateway.
type Vpc struct {
	groups

	id           plan.Handle
	cidr         plan.Handle
	publicIDs    [2]plan.Handle
	publicCidrs  [2]plan.Handle
	privateIDs   [2]plan.Handle
	privateCidrs [2]plan.Handle

	// GivenCondition holds when an existing VPC ID was passed.
	GivenCondition string
	// NotGivenCondition holds when the VPC is created by the stack.
	NotGivenCondition string

	vpc            plan.Handle
	publicSubnets  [2]plan.Handle
	privateSubnets [2]plan.Handle
}

// NewVpc declares the VPC construct under the given prefix, e.g. "Vpc".
func NewVpc(b *plan.Builder, prefix string) *Vpc {
	v := &Vpc{}
	param := func(suffix, description string, def any) plan.Handle {
		return b.Parameter(prefix+suffix, wetwire.Parameter{Description: description, Default: def})
	}

	v.id = param("Id", "Optional: Specify the VPC ID. If not specified, a VPC will be created.", "")
	v.cidr = param("IPv4CidrBlock", "Optional: VPC IPv4 CIDR block if no VPC provided.", "10.0.0.0/16")
	for i := range 2 {
		n := strconv.Itoa(i + 1)
		v.publicIDs[i] = param("PublicSubnet"+n+"Id", "Optional: Specify Subnet ID for public subnet "+n+".", "")
		v.publicCidrs[i] = param("PublicSubnet"+n+"CidrBlock", "Optional: Specify subnet CIDR block if no VPC provided.", fmt.Sprintf("10.0.%d.0/24", i))
		desc := "Optional: Specify Subnet ID for private subnet " + n + "."
		if i == 0 {
			desc += " Must be in the region's first availability zone when a data volume is used."
		}
		v.privateIDs[i] = param("PrivateSubnet"+n+"Id", desc, "")
		v.privateCidrs[i] = param("PrivateSubnet"+n+"CidrBlock", "Optional: Specify subnet CIDR block if no VPC provided.", fmt.Sprintf("10.0.%d.0/24", i+2))
	}

	v.GivenCondition = notBlank(b, prefix+"GivenCondition", v.id.ID())
	v.NotGivenCondition = blank(b, prefix+"NotGivenCondition", v.id.ID())
	create := plan.WithCondition(v.NotGivenCondition)

	v.vpc = b.Resource(prefix, ec2.VPC{
		CidrBlock:          v.cidr.Ref(),
		EnableDnsHostnames: true,
		EnableDnsSupport:   true,
		Tags:               Any(nameTag("vpc")),
	}, create)
	igw := b.Resource(prefix+"InternetGateway", ec2.InternetGateway{Tags: Any(nameTag("vpc"))}, create)
	attachment := b.Resource(prefix+"InternetGatewayAttachment", ec2.VPCGatewayAttachment{
		InternetGatewayId: igw.Ref(),
		VpcId:             v.vpc.Ref(),
	}, create)

	publicRT := b.Resource(prefix+"PublicRouteTable", ec2.RouteTable{VpcId: v.vpc.Ref(), Tags: Any(nameTag("vpc/public"))}, create)
	b.Resource(prefix+"PublicRoute", ec2.Route{
		DestinationCidrBlock: "0.0.0.0/0",
		GatewayId:            igw.Ref(),
		RouteTableId:         publicRT.Ref(),
	}, create, plan.WithDependsOn(attachment))

	for i := range 2 {
		n := strconv.Itoa(i + 1)
		az := Select{Index: i, List: GetAZs{}}
		v.publicSubnets[i] = b.Resource(prefix+"PublicSubnet"+n, ec2.Subnet{
			AvailabilityZone:    az,
			CidrBlock:           v.publicCidrs[i].Ref(),
			MapPublicIpOnLaunch: true,
			VpcId:               v.vpc.Ref(),
			Tags:                Any(nameTag("vpc/public" + n)),
		}, create)
		b.Resource(prefix+"PublicSubnet"+n+"RouteTableAssociation", ec2.SubnetRouteTableAssociation{
			RouteTableId: publicRT.Ref(),
			SubnetId:     v.publicSubnets[i].Ref(),
		}, create)
	}

	eip := b.Resource(prefix+"NatEIP", ec2.EIP{Domain: "vpc"}, create, plan.WithDependsOn(attachment))
	nat := b.Resource(prefix+"NatGateway", ec2.NatGateway{
		AllocationId: eip.Att("AllocationId"),
		SubnetId:     v.publicSubnets[0].Ref(),
		Tags:         Any(nameTag("vpc")),
	}, create)
	privateRT := b.Resource(prefix+"PrivateRouteTable", ec2.RouteTable{VpcId: v.vpc.Ref(), Tags: Any(nameTag("vpc/private"))}, create)
	b.Resource(prefix+"PrivateRoute", ec2.Route{
		DestinationCidrBlock: "0.0.0.0/0",
		NatGatewayId:         nat.Ref(),
		RouteTableId:         privateRT.Ref(),
	}, create)

	for i := range 2 {
		n := strconv.Itoa(i + 1)
		v.privateSubnets[i] = b.Resource(prefix+"PrivateSubnet"+n, ec2.Subnet{
			AvailabilityZone: Select{Index: i, List: GetAZs{}},
			CidrBlock:        v.privateCidrs[i].Ref(),
			VpcId:            v.vpc.Ref(),
			Tags:             Any(nameTag("vpc/private" + n)),
		}, create)
		b.Resource(prefix+"PrivateSubnet"+n+"RouteTableAssociation", ec2.SubnetRouteTableAssociation{
			RouteTableId: privateRT.Ref(),
			SubnetId:     v.privateSubnets[i].Ref(),
		}, create)
	}

	v.groups = groups{
		label: "VPC",
		params: []string{
			v.id.ID(), v.cidr.ID(),
			v.publicIDs[0].ID(), v.publicCidrs[0].ID(), v.publicIDs[1].ID(), v.publicCidrs[1].ID(),
			v.privateIDs[0].ID(), v.privateCidrs[0].ID(), v.privateIDs[1].ID(), v.privateCidrs[1].ID(),
		},
		labels: map[string]string{
			v.id.ID():              "VPC ID",
			v.cidr.ID():            "VPC IPv4 CIDR Block",
			v.publicIDs[0].ID():    "Public Subnet 1 ID",
			v.publicCidrs[0].ID():  "Public Subnet 1 CIDR Block",
			v.publicIDs[1].ID():    "Public Subnet 2 ID",
			v.publicCidrs[1].ID():  "Public Subnet 2 CIDR Block",
			v.privateIDs[0].ID():   "Private Subnet 1 ID",
			v.privateCidrs[0].ID(): "Private Subnet 1 CIDR Block",
			v.privateIDs[1].ID():   "Private Subnet 2 ID",
			v.privateCidrs[1].ID(): "Private Subnet 2 CIDR Block",
		},
	}
	return v
}

func (v *Vpc) pick(given, created plan.Handle) If {
	return IfCondition(v.GivenCondition, given.Ref(), created.Ref())
}

// VpcID returns the ID of the given or created VPC.
func (v *Vpc) VpcID() If {
	return v.pick(v.id, v.vpc)
}

// PublicSubnetIDs returns the IDs of both public subnets.
func (v *Vpc) PublicSubnetIDs() []any {
	return Any(v.pick(v.publicIDs[0], v.publicSubnets[0]), v.pick(v.publicIDs[1], v.publicSubnets[1]))
}

// PrivateSubnetIDs returns the IDs of both private subnets.
func (v *Vpc) PrivateSubnetIDs() []any {
	return Any(v.pick(v.privateIDs[0], v.privateSubnets[0]), v.pick(v.privateIDs[1], v.privateSubnets[1]))
}

// PrivateSubnet1AvailabilityZone returns the availability zone of the first
// private subnet. A given subnet cannot be resolved by the template, so it is
// assumed to be in the region's first zone.
func (v *Vpc) PrivateSubnet1AvailabilityZone() If {
	return IfCondition(v.GivenCondition, Select{Index: 0, List: GetAZs{}}, v.privateSubnets[0].Att("AvailabilityZone"))
}
