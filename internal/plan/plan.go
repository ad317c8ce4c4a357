// Package plan assembles declared CloudFormation resources into an immutable plan.
//
// A Builder accumulates parameters, conditions, mappings, resources, outputs and the
// typed edges between resources (explicit DependsOn, NetworkIngress grants and
// TargetRegistration bindings). Build validates the declarations and returns a Plan
// whose resources are ordered by dependency.
package plan

import (
	"encoding/json"
	"fmt"
	"slices"

	"gopkg.in/yaml.v3"

	wetwire "github.com/lex00/wetwire-peertube-go"
	"github.com/lex00/wetwire-peertube-go/intrinsics"
)

// Handle is the logical ID of a declared parameter or resource.
type Handle string

// ID returns the logical ID.
func (h Handle) ID() string { return string(h) }

// Ref returns a Ref to the handle.
func (h Handle) Ref() intrinsics.Ref { return intrinsics.Ref{LogicalName: string(h)} }

// Att returns a Fn::GetAtt of the named attribute.
func (h Handle) Att(attribute string) intrinsics.GetAtt {
	return intrinsics.GetAtt{LogicalName: string(h), Attribute: attribute}
}

// Declarers of network ingress grants.
const (
	DeclarerStack = "Stack"
	DeclarerAlb   = "Alb"
)

// NetworkIngress grants TCP access on Port from one security group to another.
// It is rendered as an AWS::EC2::SecurityGroupIngress resource named Name.
type NetworkIngress struct {
	Name        string
	From        Handle
	To          Handle
	Port        int
	Declarer    string
	Description string
}

// TargetRegistration binds an auto scaling group to a target group.
// It is rendered into the group's TargetGroupARNs.
type TargetRegistration struct {
	TargetGroup Handle
	Group       Handle
}

// EdgeKind classifies a dependency between two resources.
type EdgeKind string

const (
	EdgeReference    EdgeKind = "reference"
	EdgeDependsOn    EdgeKind = "depends_on"
	EdgeRegistration EdgeKind = "registration"
)

// Edge is a dependency: From must be provisioned after To.
type Edge struct {
	From string
	To   string
	Kind EdgeKind
}

// Plan is the validated result of Builder.Build.
type Plan struct {
	rendered      []byte
	order         []string
	types         map[string]string
	dependsOn     map[string][]string
	dependencies  map[string][]string
	edges         []Edge
	ingress       []NetworkIngress
	registrations []TargetRegistration
	iface         Interface
}

// Template returns a copy of the rendered CloudFormation template.
func (p *Plan) Template() wetwire.Template {
	var t wetwire.Template
	if err := json.Unmarshal(p.rendered, &t); err != nil {
		panic(fmt.Sprintf("plan: rendered template does not round-trip: %v", err))
	}
	return t
}

// JSON renders the template as indented JSON.
func (p *Plan) JSON() ([]byte, error) {
	return ToJSON(p.Template())
}

// YAML renders the template as YAML.
func (p *Plan) YAML() ([]byte, error) {
	return ToYAML(p.Template())
}

// Resources returns the logical IDs of all resources in dependency order.
func (p *Plan) Resources() []string {
	return slices.Clone(p.order)
}

// Resource returns the rendered definition of a resource.
func (p *Plan) Resource(id string) (wetwire.ResourceDef, bool) {
	t := p.Template()
	def, ok := t.Resources[id]
	return def, ok
}

// ResourceType returns the CloudFormation type of a resource, or "" if unknown.
func (p *Plan) ResourceType(id string) string {
	return p.types[id]
}

// ResourcesOfType returns the logical IDs of resources of the given type, in dependency order.
func (p *Plan) ResourcesOfType(resourceType string) []string {
	var ids []string
	for _, id := range p.order {
		if p.types[id] == resourceType {
			ids = append(ids, id)
		}
	}
	return ids
}

// DependsOn returns the explicit provisioning-order dependencies of a resource.
func (p *Plan) DependsOn(id string) []string {
	return slices.Clone(p.dependsOn[id])
}

// Dependencies returns every resource the given resource depends on, explicit or implied.
func (p *Plan) Dependencies(id string) []string {
	return slices.Clone(p.dependencies[id])
}

// Edges returns all dependency edges.
func (p *Plan) Edges() []Edge {
	return slices.Clone(p.edges)
}

// Ingress returns the network ingress grants.
func (p *Plan) Ingress() []NetworkIngress {
	return slices.Clone(p.ingress)
}

// Registrations returns the target group registrations.
func (p *Plan) Registrations() []TargetRegistration {
	return slices.Clone(p.registrations)
}

// Interface returns the aggregated operator configuration form.
func (p *Plan) Interface() Interface {
	return p.iface.clone()
}

// ToJSON serializes a template to indented JSON.
func ToJSON(t wetwire.Template) ([]byte, error) {
	return json.MarshalIndent(t, "", "  ")
}

// ToYAML serializes a template to YAML.
func ToYAML(t wetwire.Template) ([]byte, error) {
	return yaml.Marshal(t)
}
