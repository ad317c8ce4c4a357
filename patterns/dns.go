package patterns

import (
	wetwire "github.com/lex00/wetwire-peertube-go"
	"github.com/lex00/wetwire-peertube-go/internal/plan"
	. "github.com/lex00/wetwire-peertube-go/intrinsics"
	"github.com/lex00/wetwire-peertube-go/resources/route53"
)

// Dns owns the hostname of the site inside an existing Route 53 hosted zone.
type Dns struct {
	groups

	b        *plan.Builder
	zoneName plan.Handle
	hostname plan.Handle

	// HostnameBlankCondition holds when no hostname was passed.
	HostnameBlankCondition string
}

// NewDns declares the DNS construct under the given prefix, e.g. "Dns".
func NewDns(b *plan.Builder, prefix string) *Dns {
	d := &Dns{b: b}
	d.zoneName = b.Parameter(prefix+"Route53HostedZoneName", wetwire.Parameter{
		Description: "Required: Route 53 Hosted Zone name in which a DNS record will be created by this template. Must already exist and be the domain part of the Hostname parameter, if not blank.",
	})
	d.hostname = b.Parameter(prefix+"Hostname", wetwire.Parameter{
		Default:     "",
		Description: "Optional: The hostname to access the service. E.g. 'app.domain.com'. If not blank, must be a subdomain of the Route 53 Hosted Zone name. If blank, '<stack name>.<hosted zone name>' is used.",
	})
	d.HostnameBlankCondition = blank(b, prefix+"HostnameBlankCondition", d.hostname.ID())

	d.groups = groups{
		label:  "DNS",
		params: []string{d.zoneName.ID(), d.hostname.ID()},
		labels: map[string]string{
			d.zoneName.ID(): "Route 53 Hosted Zone Name",
			d.hostname.ID(): "Hostname",
		},
	}
	return d
}

// HostedZoneName returns the Ref to the hosted zone name parameter.
func (d *Dns) HostedZoneName() Ref {
	return d.zoneName.Ref()
}

// Hostname returns the site hostname, defaulting to <stack name>.<hosted zone name>.
func (d *Dns) Hostname() If {
	return IfCondition(d.HostnameBlankCondition,
		Sub{String: "${AWS::StackName}.${" + d.zoneName.ID() + "}"},
		d.hostname.Ref(),
	)
}

// AddAlb points the hostname at the load balancer and emits the site URL output.
func (d *Dns) AddAlb(alb *Alb) plan.Handle {
	lb := alb.LoadBalancer()
	record := d.b.Resource("DnsSiteRecordSet", route53.RecordSet{
		AliasTarget: &route53.RecordSet_AliasTarget{
			DNSName:      lb.Att("DNSName"),
			HostedZoneId: lb.Att("CanonicalHostedZoneID"),
		},
		HostedZoneName: Sub{String: "${" + d.zoneName.ID() + "}."},
		Name:           d.Hostname(),
		Type:           "A",
	})
	d.b.Output("DnsSiteUrlOutput", wetwire.Output{
		Description: "The URL Endpoint",
		Value:       Join{Delimiter: "", Values: []any{"https://", d.Hostname()}},
	})
	return record
}
