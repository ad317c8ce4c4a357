// Package patterns provides the reusable constructs the PeerTube stack is composed of.
//
// Each construct declares its parameters, conditions and resources on a
// *plan.Builder under an ID prefix, exposes the handles other constructs wire
// into, and implements plan.ConfigSurface for the operator configuration form.
//
//	vpc := patterns.NewVpc(b, "Vpc")
//	redis := patterns.NewElasticacheRedis(b, "Redis", vpc)
//	patterns.AddSgIngress(b, redis, asg.SecurityGroup())
package patterns

import (
	"fmt"

	"github.com/lex00/wetwire-peertube-go/internal/plan"
	"github.com/lex00/wetwire-peertube-go/intrinsics"
)

// IngressTarget is a construct that accepts TCP traffic on its own security group.
type IngressTarget interface {
	SecurityGroupID() plan.Handle
	IngressPort() int
}

// AddSgIngress grants the source security group access to the target's port.
// The rule is declared by the stack itself.
func AddSgIngress(b *plan.Builder, target IngressTarget, source plan.Handle) plan.Handle {
	to := target.SecurityGroupID()
	return b.GrantIngress(plan.NetworkIngress{
		Name:        fmt.Sprintf("%sIngressFrom%s", to, source),
		From:        source,
		To:          to,
		Port:        target.IngressPort(),
		Declarer:    plan.DeclarerStack,
		Description: fmt.Sprintf("Allow %s to reach %s", source, to),
	})
}

// nameTag returns a Name tag of "<stack name>/<suffix>".
func nameTag(suffix string) intrinsics.Tag {
	return intrinsics.Tag{Key: "Name", Value: intrinsics.Sub{String: "${AWS::StackName}/" + suffix}}
}

func notBlank(b *plan.Builder, name, param string) string {
	return b.Condition(name, intrinsics.IsNotBlank(param))
}

func blank(b *plan.Builder, name, param string) string {
	return b.Condition(name, intrinsics.IsBlank(param))
}

// groups is the ConfigSurface shared by all constructs.
type groups struct {
	label  string
	params []string
	labels map[string]string
}

func (g groups) ParameterGroups() []plan.ParameterGroup {
	return []plan.ParameterGroup{{Label: g.label, Parameters: g.params}}
}

func (g groups) ParameterLabels() map[string]string { return g.labels }
