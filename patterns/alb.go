package patterns

import (
	wetwire "github.com/lex00/wetwire-peertube-go"
	"github.com/lex00/wetwire-peertube-go/internal/plan"
	. "github.com/lex00/wetwire-peertube-go/intrinsics"
	"github.com/lex00/wetwire-peertube-go/resources/ec2"
	elbv2 "github.com/lex00/wetwire-peertube-go/resources/elasticloadbalancingv2"
)

// AlbTargetPort is the instance port the load balancer forwards to.
const AlbTargetPort = 80

// AlbProps configures the load balancer construct.
type AlbProps struct {
	Asg             *Asg
	HealthCheckPath string
	Vpc             *Vpc
}

// Alb is an internet-facing application load balancer terminating HTTPS in
// front of an Asg.
type Alb struct {
	groups

	sg          plan.Handle
	lb          plan.Handle
	targetGroup plan.Handle
	ingress     plan.Handle
}

// NewAlb declares the load balancer construct under the given prefix, e.g. "Alb".
func NewAlb(b *plan.Builder, prefix string, props AlbProps) *Alb {
	a := &Alb{}
	cert := b.Parameter(prefix+"CertificateArn", wetwire.Parameter{
		Description: "Required: Specify the ARN of a ACM Certificate to configure HTTPS.",
	})
	cidr := b.Parameter(prefix+"IngressCidrIp", wetwire.Parameter{
		AllowedPattern:        `^((\d{1,3})\.){3}\d{1,3}/\d{1,2}$`,
		ConstraintDescription: "must be a valid IPv4 CIDR block, e.g. 0.0.0.0/0",
		Default:               "0.0.0.0/0",
		Description:           "Required: VPC IPv4 CIDR block to restrict public access to the load balancer.",
	})

	healthCheckPath := props.HealthCheckPath
	if healthCheckPath == "" {
		healthCheckPath = "/"
	}

	a.sg = b.Resource(prefix+"Sg", ec2.SecurityGroup{
		GroupDescription: Sub{String: "${AWS::StackName}/alb"},
		SecurityGroupEgress: Any(ec2.SecurityGroup_Rule{
			CidrIp:      "0.0.0.0/0",
			Description: "all IPv4 egress traffic allowed",
			IpProtocol:  "-1",
		}),
		SecurityGroupIngress: Any(
			ec2.SecurityGroup_Rule{CidrIp: cidr.Ref(), Description: "Allow HTTP traffic to alb", FromPort: 80, IpProtocol: "tcp", ToPort: 80},
			ec2.SecurityGroup_Rule{CidrIp: cidr.Ref(), Description: "Allow HTTPS traffic to alb", FromPort: 443, IpProtocol: "tcp", ToPort: 443},
		),
		VpcId: props.Vpc.VpcID(),
		Tags:  Any(nameTag("alb")),
	})
	a.lb = b.Resource(prefix+"LoadBalancer", elbv2.LoadBalancer{
		LoadBalancerAttributes: Any(elbv2.Attribute{Key: "routing.http2.enabled", Value: "false"}),
		Scheme:                 "internet-facing",
		SecurityGroups:         Any(a.sg.Att("GroupId")),
		Subnets:                props.Vpc.PublicSubnetIDs(),
		Type:                   "application",
		Tags:                   Any(nameTag("alb")),
	})
	a.targetGroup = b.Resource(prefix+"TargetGroup", elbv2.TargetGroup{
		HealthCheckEnabled:      true,
		HealthCheckPath:         healthCheckPath,
		HealthCheckProtocol:     "HTTP",
		HealthyThresholdCount:   2,
		Port:                    AlbTargetPort,
		Protocol:                "HTTP",
		TargetGroupAttributes:   Any(elbv2.Attribute{Key: "deregistration_delay.timeout_seconds", Value: "10"}),
		TargetType:              "instance",
		UnhealthyThresholdCount: 5,
		VpcId:                   props.Vpc.VpcID(),
	})
	b.Resource(prefix+"HttpRedirectListener", elbv2.Listener{
		DefaultActions: Any(elbv2.Listener_Action{
			RedirectConfig: &elbv2.Listener_RedirectConfig{Port: "443", Protocol: "HTTPS", StatusCode: "HTTP_301"},
			Type:           "redirect",
		}),
		LoadBalancerArn: a.lb.Ref(),
		Port:            80,
		Protocol:        "HTTP",
	})
	b.Resource(prefix+"HttpsListener", elbv2.Listener{
		Certificates:    Any(elbv2.Listener_Certificate{CertificateArn: cert.Ref()}),
		DefaultActions:  Any(elbv2.Listener_Action{TargetGroupArn: a.targetGroup.Ref(), Type: "forward"}),
		LoadBalancerArn: a.lb.Ref(),
		Port:            443,
		Protocol:        "HTTPS",
	})

	a.ingress = b.GrantIngress(plan.NetworkIngress{
		Name:        props.Asg.SecurityGroup().ID() + "IngressFrom" + a.sg.ID(),
		From:        a.sg,
		To:          props.Asg.SecurityGroup(),
		Port:        AlbTargetPort,
		Declarer:    plan.DeclarerAlb,
		Description: "Allow traffic from the load balancer",
	})
	b.RegisterTargets(plan.TargetRegistration{TargetGroup: a.targetGroup, Group: props.Asg.Group()})

	a.groups = groups{
		label:  "ALB",
		params: []string{cert.ID(), cidr.ID()},
		labels: map[string]string{
			cert.ID(): "ALB Certificate ARN",
			cidr.ID(): "ALB Ingress Location CIDR IPv4",
		},
	}
	return a
}

// LoadBalancer returns the load balancer.
func (a *Alb) LoadBalancer() plan.Handle { return a.lb }

// TargetGroup returns the target group the Asg is registered with.
func (a *Alb) TargetGroup() plan.Handle { return a.targetGroup }

// SecurityGroup returns the load balancer security group.
func (a *Alb) SecurityGroup() plan.Handle { return a.sg }
