// Package elasticloadbalancingv2 provides CloudFormation resource types for AWS::ElasticLoadBalancingV2.
package elasticloadbalancingv2

// LoadBalancer represents an AWS::ElasticLoadBalancingV2::LoadBalancer resource.
type LoadBalancer struct {
	LoadBalancerAttributes []any `json:"LoadBalancerAttributes,omitempty"`
	Scheme                 any   `json:"Scheme,omitempty"`
	SecurityGroups         []any `json:"SecurityGroups,omitempty"`
	Subnets                []any `json:"Subnets,omitempty"`
	Type                   any   `json:"Type,omitempty"`
	Tags                   []any `json:"Tags,omitempty"`
}

// ResourceType returns the CloudFormation resource type.
func (r LoadBalancer) ResourceType() string { return "AWS::ElasticLoadBalancingV2::LoadBalancer" }

// Attribute is a key/value attribute of a load balancer or target group.
type Attribute struct {
	Key   any `json:"Key,omitempty"`
	Value any `json:"Value,omitempty"`
}

// TargetGroup represents an AWS::ElasticLoadBalancingV2::TargetGroup resource.
type TargetGroup struct {
	HealthCheckEnabled      any   `json:"HealthCheckEnabled,omitempty"`
	HealthCheckPath         any   `json:"HealthCheckPath,omitempty"`
	HealthCheckProtocol     any   `json:"HealthCheckProtocol,omitempty"`
	HealthyThresholdCount   any   `json:"HealthyThresholdCount,omitempty"`
	Port                    any   `json:"Port,omitempty"`
	Protocol                any   `json:"Protocol,omitempty"`
	TargetGroupAttributes   []any `json:"TargetGroupAttributes,omitempty"`
	TargetType              any   `json:"TargetType,omitempty"`
	UnhealthyThresholdCount any   `json:"UnhealthyThresholdCount,omitempty"`
	VpcId                   any   `json:"VpcId,omitempty"`
	Tags                    []any `json:"Tags,omitempty"`
}

// ResourceType returns the CloudFormation resource type.
func (r TargetGroup) ResourceType() string { return "AWS::ElasticLoadBalancingV2::TargetGroup" }

// Listener represents an AWS::ElasticLoadBalancingV2::Listener resource.
type Listener struct {
	Certificates    []any `json:"Certificates,omitempty"`
	DefaultActions  []any `json:"DefaultActions,omitempty"`
	LoadBalancerArn any   `json:"LoadBalancerArn,omitempty"`
	Port            any   `json:"Port,omitempty"`
	Protocol        any   `json:"Protocol,omitempty"`
	SslPolicy       any   `json:"SslPolicy,omitempty"`
}

// ResourceType returns the CloudFormation resource type.
func (r Listener) ResourceType() string { return "AWS::ElasticLoadBalancingV2::Listener" }

// Listener_Action is a listener default action.
type Listener_Action struct {
	RedirectConfig *Listener_RedirectConfig `json:"RedirectConfig,omitempty"`
	TargetGroupArn any                      `json:"TargetGroupArn,omitempty"`
	Type           any                      `json:"Type,omitempty"`
}

// Listener_RedirectConfig configures a redirect action.
type Listener_RedirectConfig struct {
	Host       any `json:"Host,omitempty"`
	Path       any `json:"Path,omitempty"`
	Port       any `json:"Port,omitempty"`
	Protocol   any `json:"Protocol,omitempty"`
	Query      any `json:"Query,omitempty"`
	StatusCode any `json:"StatusCode,omitempty"`
}

// Listener_Certificate references an ACM certificate.
type Listener_Certificate struct {
	CertificateArn any `json:"CertificateArn,omitempty"`
}
