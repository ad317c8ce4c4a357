package stack

import (
	"errors"
	"fmt"
	"maps"
	"slices"

	"go.uber.org/multierr"

	wetwire "github.com/lex00/wetwire-peertube-go"
	"github.com/lex00/wetwire-peertube-go/internal/plan"
)

// ErrStructure is wrapped by every structural check failure.
var ErrStructure = errors.New("stack structure")

const (
	typeASG          = "AWS::AutoScaling::AutoScalingGroup"
	typeCacheCluster = "AWS::ElastiCache::CacheCluster"
	typeDBCluster    = "AWS::RDS::DBCluster"
	typeDBInstance   = "AWS::RDS::DBInstance"
	typeDistribution = "AWS::CloudFront::Distribution"
	typeListener     = "AWS::ElasticLoadBalancingV2::Listener"
	typeBucket       = "AWS::S3::Bucket"
	typeCustomSMTP   = "Custom::GenerateSmtpPassword"
)

// Verify checks the structural properties every PeerTube plan must have:
// a single singleton group that waits for its bootstrap signal, the database
// primary instance and the SMTP password generator, stack-declared ingress from the group to exactly the
// cache and database, the load balancer forwarding to the group's target group,
// the CDN presence matching the variant, and a duplicate-free configuration form.
func Verify(p *plan.Plan, profile Profile) error {
	t := p.Template()
	v := verifier{p: p, t: t}

	groups := p.ResourcesOfType(typeASG)
	if len(groups) != 1 {
		v.failf("want exactly one auto scaling group, got %d", len(groups))
	} else {
		v.group(groups[0])
	}
	v.cdn(profile)
	v.form()
	return v.errs
}

type verifier struct {
	p    *plan.Plan
	t    wetwire.Template
	errs error
}

func (v *verifier) failf(format string, args ...any) {
	v.errs = multierr.Append(v.errs, fmt.Errorf("%w: %s", ErrStructure, fmt.Sprintf(format, args...)))
}

func (v *verifier) group(id string) {
	def := v.t.Resources[id]
	for _, key := range []string{"MinSize", "MaxSize", "DesiredCapacity"} {
		if def.Properties[key] != "1" {
			v.failf("%s %s is %v, want 1", id, key, def.Properties[key])
		}
	}

	if def.CreationPolicy["ResourceSignal"] == nil {
		v.failf("%s does not wait for the instance bootstrap signal", id)
	}

	for _, want := range []string{typeDBInstance, typeCustomSMTP} {
		found := false
		for _, dep := range v.p.DependsOn(id) {
			if v.p.ResourceType(dep) == want {
				found = true
			}
		}
		if !found {
			v.failf("%s has no explicit dependency on a %s", id, want)
		}
	}

	sg, err := v.groupSecurityGroup(def)
	if err != nil {
		v.failf("%s: %v", id, err)
		return
	}

	want := make(map[string]bool)
	for _, typ := range []string{typeCacheCluster, typeDBCluster} {
		for _, cluster := range v.p.ResourcesOfType(typ) {
			refs, _ := plan.References(v.t.Resources[cluster].Properties["VpcSecurityGroupIds"])
			for _, r := range refs {
				want[r] = true
			}
		}
	}
	got := make(map[string]bool)
	for _, g := range v.p.Ingress() {
		if g.Declarer != plan.DeclarerStack {
			continue
		}
		if g.From.ID() != sg {
			v.failf("stack-declared ingress %s comes from %s, not the group security group %s", g.Name, g.From, sg)
			continue
		}
		got[g.To.ID()] = true
	}
	if !maps.Equal(want, got) {
		v.failf("stack-declared ingress from %s reaches %v, want %v", sg, slices.Sorted(maps.Keys(got)), slices.Sorted(maps.Keys(want)))
	}

	registered := make(map[string]bool)
	for _, r := range v.p.Registrations() {
		if r.Group.ID() == id {
			registered[r.TargetGroup.ID()] = true
		}
	}
	arns, _ := plan.References(def.Properties["TargetGroupARNs"])
	forwarded := v.forwardedTargetGroups()
	if len(registered) != 1 || !maps.Equal(registered, toSet(arns)) || !maps.Equal(registered, forwarded) {
		v.failf("load balancer forwards to %v, %s is registered with %v and lists %v",
			slices.Sorted(maps.Keys(forwarded)), id, slices.Sorted(maps.Keys(registered)), arns)
	}
}

// groupSecurityGroup follows the group's launch template to its security group.
func (v *verifier) groupSecurityGroup(def wetwire.ResourceDef) (string, error) {
	ltSpec, _ := def.Properties["LaunchTemplate"].(map[string]any)
	ltRefs, _ := plan.References(ltSpec["LaunchTemplateId"])
	if len(ltRefs) != 1 {
		return "", fmt.Errorf("launch template reference %v", ltRefs)
	}
	lt := v.t.Resources[ltRefs[0]]
	data, _ := lt.Properties["LaunchTemplateData"].(map[string]any)
	sgRefs, _ := plan.References(data["SecurityGroupIds"])
	if len(sgRefs) != 1 {
		return "", fmt.Errorf("launch template %s security groups %v", ltRefs[0], sgRefs)
	}
	return sgRefs[0], nil
}

func (v *verifier) forwardedTargetGroups() map[string]bool {
	forwarded := make(map[string]bool)
	for _, id := range v.p.ResourcesOfType(typeListener) {
		actions, _ := v.t.Resources[id].Properties["DefaultActions"].([]any)
		for _, a := range actions {
			action, _ := a.(map[string]any)
			if action["Type"] != "forward" {
				continue
			}
			refs, _ := plan.References(action["TargetGroupArn"])
			for _, r := range refs {
				forwarded[r] = true
			}
		}
	}
	return forwarded
}

func (v *verifier) cdn(profile Profile) {
	distributions := v.p.ResourcesOfType(typeDistribution)
	_, hasPriceClass := v.t.Parameters[PriceClassParameter]
	if !profile.CDN() {
		if len(distributions) != 0 {
			v.failf("%s variant declares %d CloudFront distributions", profile.Variant, len(distributions))
		}
		if hasPriceClass {
			v.failf("%s variant declares %s", profile.Variant, PriceClassParameter)
		}
		return
	}
	if len(distributions) != 1 {
		v.failf("%s variant declares %d CloudFront distributions, want 1", profile.Variant, len(distributions))
		return
	}
	if !hasPriceClass {
		v.failf("%s variant is missing %s", profile.Variant, PriceClassParameter)
	}
	config, _ := v.t.Resources[distributions[0]].Properties["DistributionConfig"].(map[string]any)
	origins, _ := config["Origins"].([]any)
	if len(origins) != 1 {
		v.failf("distribution has %d origins, want 1", len(origins))
		return
	}
	origin, _ := origins[0].(map[string]any)
	refs, _ := plan.References(origin["DomainName"])
	buckets := v.p.ResourcesOfType(typeBucket)
	if len(buckets) != 1 || !slices.Contains(refs, buckets[0]) {
		v.failf("distribution origin %v does not point at the assets bucket %v", origin["DomainName"], buckets)
	}
}

func (v *verifier) form() {
	seen := make(map[string]bool)
	for _, id := range v.p.Interface().Parameters() {
		if seen[id] {
			v.failf("parameter %s appears twice in the configuration form", id)
		}
		seen[id] = true
	}
	for id := range v.t.Parameters {
		if !seen[id] {
			v.failf("parameter %s is missing from the configuration form", id)
		}
	}
}

func toSet(ids []string) map[string]bool {
	s := make(map[string]bool, len(ids))
	for _, id := range ids {
		s[id] = true
	}
	return s
}
