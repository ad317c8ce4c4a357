package plan

import (
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"slices"

	"github.com/dominikbraun/graph"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	wetwire "github.com/lex00/wetwire-peertube-go"
	"github.com/lex00/wetwire-peertube-go/internal/serialize"
	"github.com/lex00/wetwire-peertube-go/intrinsics"
	"github.com/lex00/wetwire-peertube-go/resources/ec2"
)

// TemplateFormatVersion is the only CloudFormation template format version.
const TemplateFormatVersion = "2010-09-09"

var (
	// ErrDuplicateID is returned when a logical ID is declared twice.
	ErrDuplicateID = errors.New("duplicate logical ID")

	// ErrUnknownReference is returned when a reference names nothing declared.
	ErrUnknownReference = errors.New("unknown reference")

	// ErrCycle is returned when resources depend on each other in a cycle.
	ErrCycle = errors.New("dependency cycle")

	// ErrInvalidGrant is returned for a grant or registration between resources of the wrong type.
	ErrInvalidGrant = errors.New("invalid grant")
)

// PropertySource is implemented by resources that render their own properties.
type PropertySource interface {
	CloudFormationProperties() (map[string]any, error)
}

type resourceDecl struct {
	id             string
	value          wetwire.Resource
	condition      string
	dependsOn      []string
	deletionPolicy string
	creation       map[string]any
	update         map[string]any
}

// ResourceOption configures a declared resource.
type ResourceOption func(*resourceDecl)

// WithCondition creates the resource only when the named condition holds.
func WithCondition(name string) ResourceOption {
	return func(d *resourceDecl) { d.condition = name }
}

// WithDependsOn adds explicit provisioning-order dependencies.
func WithDependsOn(ids ...Handle) ResourceOption {
	return func(d *resourceDecl) {
		for _, id := range ids {
			d.dependsOn = append(d.dependsOn, id.ID())
		}
	}
}

// WithDeletionPolicy sets both DeletionPolicy and UpdateReplacePolicy.
func WithDeletionPolicy(policy string) ResourceOption {
	return func(d *resourceDecl) { d.deletionPolicy = policy }
}

// WithCreationPolicy makes CloudFormation wait for the given signals
// before marking the resource complete.
func WithCreationPolicy(policy map[string]any) ResourceOption {
	return func(d *resourceDecl) { d.creation = policy }
}

// WithUpdatePolicy controls how CloudFormation replaces or rolls the
// resource on stack update.
func WithUpdatePolicy(policy map[string]any) ResourceOption {
	return func(d *resourceDecl) { d.update = policy }
}

// Retain keeps the resource when it is removed from the stack.
func Retain() ResourceOption { return WithDeletionPolicy("Retain") }

// Snapshot snapshots the resource when it is removed from the stack.
func Snapshot() ResourceOption { return WithDeletionPolicy("Snapshot") }

// Option configures a Builder.
type Option func(*Builder)

// WithLogger sets the logger used during Build.
func WithLogger(log *zap.Logger) Option {
	return func(b *Builder) {
		if log != nil {
			b.log = log
		}
	}
}

// WithDescription sets the template description.
func WithDescription(description string) Option {
	return func(b *Builder) { b.description = description }
}

// Builder accumulates declarations. It is not safe for concurrent use.
type Builder struct {
	log         *zap.Logger
	description string

	parameters    map[string]wetwire.Parameter
	conditions    map[string]any
	mappings      map[string]any
	resources     []*resourceDecl
	index         map[string]int
	outputs       map[string]wetwire.Output
	metadata      map[string]any
	ingress       []NetworkIngress
	registrations []TargetRegistration
	surfaces      []ConfigSurface

	errs error
}

// NewBuilder returns an empty Builder.
func NewBuilder(opts ...Option) *Builder {
	b := &Builder{
		log:        zap.NewNop(),
		parameters: make(map[string]wetwire.Parameter),
		conditions: make(map[string]any),
		mappings:   make(map[string]any),
		index:      make(map[string]int),
		outputs:    make(map[string]wetwire.Output),
		metadata:   make(map[string]any),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

func (b *Builder) fail(err error) {
	b.errs = multierr.Append(b.errs, err)
}

func (b *Builder) claim(kind, id string) bool {
	if id == "" {
		b.fail(fmt.Errorf("%s: empty logical ID", kind))
		return false
	}
	_, isParam := b.parameters[id]
	_, isResource := b.index[id]
	if isParam || isResource {
		b.fail(fmt.Errorf("%w: %s %s", ErrDuplicateID, kind, id))
		return false
	}
	return true
}

// Parameter declares a template parameter.
func (b *Builder) Parameter(id string, p wetwire.Parameter) Handle {
	if b.claim("parameter", id) {
		if p.Type == "" {
			p.Type = "String"
		}
		b.parameters[id] = p
	}
	return Handle(id)
}

// Condition declares a named condition.
func (b *Builder) Condition(name string, expr any) string {
	if _, ok := b.conditions[name]; ok {
		b.fail(fmt.Errorf("%w: condition %s", ErrDuplicateID, name))
		return name
	}
	b.conditions[name] = expr
	return name
}

// Mapping declares a Mappings table.
func (b *Builder) Mapping(name string, m intrinsics.Mapping) string {
	if _, ok := b.mappings[name]; ok {
		b.fail(fmt.Errorf("%w: mapping %s", ErrDuplicateID, name))
		return name
	}
	b.mappings[name] = m
	return name
}

// Resource declares a resource.
func (b *Builder) Resource(id string, r wetwire.Resource, opts ...ResourceOption) Handle {
	if r == nil {
		b.fail(fmt.Errorf("resource %s: nil value", id))
		return Handle(id)
	}
	if !b.claim("resource", id) {
		return Handle(id)
	}
	d := &resourceDecl{id: id, value: r}
	for _, opt := range opts {
		opt(d)
	}
	b.index[id] = len(b.resources)
	b.resources = append(b.resources, d)
	return Handle(id)
}

// Output declares a template output.
func (b *Builder) Output(name string, o wetwire.Output) {
	if _, ok := b.outputs[name]; ok {
		b.fail(fmt.Errorf("%w: output %s", ErrDuplicateID, name))
		return
	}
	b.outputs[name] = o
}

// Metadata sets a top-level template metadata key.
func (b *Builder) Metadata(key string, v any) {
	b.metadata[key] = v
}

// DependsOn records that from must be provisioned after every one of to.
func (b *Builder) DependsOn(from Handle, to ...Handle) {
	i, ok := b.index[from.ID()]
	if !ok {
		b.fail(fmt.Errorf("%w: DependsOn from %s", ErrUnknownReference, from))
		return
	}
	for _, t := range to {
		if !slices.Contains(b.resources[i].dependsOn, t.ID()) {
			b.resources[i].dependsOn = append(b.resources[i].dependsOn, t.ID())
		}
	}
}

// GrantIngress declares a NetworkIngress grant and the security group rule that realizes it.
func (b *Builder) GrantIngress(g NetworkIngress) Handle {
	if g.Declarer == "" {
		g.Declarer = DeclarerStack
	}
	if g.Port <= 0 || g.Port > 65535 {
		b.fail(fmt.Errorf("%w: %s port %d", ErrInvalidGrant, g.Name, g.Port))
	}
	h := b.Resource(g.Name, ingressRule(g))
	b.ingress = append(b.ingress, g)
	return h
}

// RegisterTargets binds an auto scaling group to a target group.
func (b *Builder) RegisterTargets(r TargetRegistration) {
	b.registrations = append(b.registrations, r)
}

// Surface adds a component's configuration form. Surfaces are aggregated in order.
func (b *Builder) Surface(s ConfigSurface) {
	b.surfaces = append(b.surfaces, s)
}

// Has reports whether a parameter or resource with the logical ID is declared.
func (b *Builder) Has(id string) bool {
	_, isParam := b.parameters[id]
	_, isResource := b.index[id]
	return isParam || isResource
}

// Build validates the declarations and returns the plan.
func (b *Builder) Build() (*Plan, error) {
	errs := b.errs

	props := make(map[string]map[string]any, len(b.resources))
	for _, d := range b.resources {
		p, err := properties(d.value)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("serializing %s: %w", d.id, err))
			continue
		}
		props[d.id] = p
	}

	errs = multierr.Append(errs, b.applyRegistrations(props))
	errs = multierr.Append(errs, b.checkGrants())

	g := graph.New(graph.StringHash, graph.Directed(), graph.PreventCycles())
	for _, d := range b.resources {
		_ = g.AddVertex(d.id)
	}

	dependencies := make(map[string][]string)
	var edges []Edge
	addEdge := func(from, to string, kind EdgeKind) {
		err := g.AddEdge(to, from)
		switch {
		case err == nil:
			dependencies[from] = append(dependencies[from], to)
			edges = append(edges, Edge{From: from, To: to, Kind: kind})
		case errors.Is(err, graph.ErrEdgeAlreadyExists):
		case errors.Is(err, graph.ErrEdgeCreatesCycle):
			errs = multierr.Append(errs, fmt.Errorf("%w: %s -> %s", ErrCycle, from, to))
		default:
			errs = multierr.Append(errs, fmt.Errorf("edge %s -> %s: %w", from, to, err))
		}
	}

	registered := make(map[[2]string]bool)
	for _, r := range b.registrations {
		registered[[2]string{r.Group.ID(), r.TargetGroup.ID()}] = true
	}

	for _, d := range b.resources {
		for _, dep := range d.dependsOn {
			if _, ok := b.index[dep]; !ok {
				errs = multierr.Append(errs, fmt.Errorf("%w: %s DependsOn %s", ErrUnknownReference, d.id, dep))
				continue
			}
			addEdge(d.id, dep, EdgeDependsOn)
		}
		if d.condition != "" {
			if _, ok := b.conditions[d.condition]; !ok {
				errs = multierr.Append(errs, fmt.Errorf("%w: %s condition %s", ErrUnknownReference, d.id, d.condition))
			}
		}

		p, ok := props[d.id]
		if !ok {
			continue
		}
		errs = multierr.Append(errs, b.checkConditions(d.id, p))
		refs := make(map[string]bool)
		references(p, refs)
		for _, ref := range slices.Sorted(maps.Keys(refs)) {
			if _, isParam := b.parameters[ref]; isParam {
				continue
			}
			if _, isResource := b.index[ref]; !isResource {
				errs = multierr.Append(errs, fmt.Errorf("%w: %s references %s", ErrUnknownReference, d.id, ref))
				continue
			}
			kind := EdgeReference
			if registered[[2]string{d.id, ref}] {
				kind = EdgeRegistration
			}
			addEdge(d.id, ref, kind)
		}
	}

	template := wetwire.Template{
		AWSTemplateFormatVersion: TemplateFormatVersion,
		Description:              b.description,
		Resources:                make(map[string]wetwire.ResourceDef, len(b.resources)),
	}

	if len(b.parameters) > 0 {
		template.Parameters = maps.Clone(b.parameters)
	}
	if len(b.mappings) > 0 {
		template.Mappings = maps.Clone(b.mappings)
	}
	if len(b.conditions) > 0 {
		template.Conditions = maps.Clone(b.conditions)
		for name, expr := range b.conditions {
			errs = multierr.Append(errs, b.checkRefs("condition "+name, expr))
		}
	}
	if len(b.outputs) > 0 {
		template.Outputs = maps.Clone(b.outputs)
		for name, o := range b.outputs {
			errs = multierr.Append(errs, b.checkRefs("output "+name, o.Value))
			if o.Condition != "" {
				if _, ok := b.conditions[o.Condition]; !ok {
					errs = multierr.Append(errs, fmt.Errorf("%w: output %s condition %s", ErrUnknownReference, name, o.Condition))
				}
			}
		}
	}

	iface, err := Aggregate(b.surfaces...)
	errs = multierr.Append(errs, err)
	for _, id := range iface.Parameters() {
		if _, ok := b.parameters[id]; !ok {
			errs = multierr.Append(errs, fmt.Errorf("%w: %s", ErrUnknownParameter, id))
		}
	}
	if len(b.metadata) > 0 || len(b.surfaces) > 0 {
		template.Metadata = maps.Clone(b.metadata)
		if template.Metadata == nil {
			template.Metadata = make(map[string]any)
		}
		if len(b.surfaces) > 0 {
			template.Metadata["AWS::CloudFormation::Interface"] = iface.Metadata()
		}
	}

	if errs != nil {
		return nil, errs
	}

	order, err := graph.StableTopologicalSort(g, func(a, c string) bool {
		return b.index[a] < b.index[c]
	})
	if err != nil {
		return nil, fmt.Errorf("ordering resources: %w", err)
	}

	dependsOn := make(map[string][]string)
	types := make(map[string]string, len(b.resources))
	for _, d := range b.resources {
		types[d.id] = d.value.ResourceType()
		def := wetwire.ResourceDef{
			Type:       d.value.ResourceType(),
			Condition:  d.condition,
			DependsOn:  slices.Clone(d.dependsOn),
			Properties: props[d.id],
		}
		if d.deletionPolicy != "" {
			def.DeletionPolicy = d.deletionPolicy
			def.UpdateReplacePolicy = d.deletionPolicy
		}
		if len(d.creation) > 0 {
			def.CreationPolicy = maps.Clone(d.creation)
		}
		if len(d.update) > 0 {
			def.UpdatePolicy = maps.Clone(d.update)
		}
		if len(d.dependsOn) > 0 {
			dependsOn[d.id] = slices.Clone(d.dependsOn)
		}
		template.Resources[d.id] = def
	}

	rendered, err := json.Marshal(template)
	if err != nil {
		return nil, fmt.Errorf("rendering template: %w", err)
	}

	b.log.Debug("plan built",
		zap.Int("resources", len(order)),
		zap.Int("parameters", len(b.parameters)),
		zap.Int("edges", len(edges)),
		zap.Int("ingress", len(b.ingress)),
	)

	return &Plan{
		rendered:      rendered,
		order:         order,
		types:         types,
		dependsOn:     dependsOn,
		dependencies:  dependencies,
		edges:         edges,
		ingress:       slices.Clone(b.ingress),
		registrations: slices.Clone(b.registrations),
		iface:         iface,
	}, nil
}

func properties(r wetwire.Resource) (map[string]any, error) {
	if src, ok := r.(PropertySource); ok {
		return src.CloudFormationProperties()
	}
	p, err := serialize.Resource(r)
	if err != nil {
		return nil, err
	}
	return serialize.NormalizeMap(p)
}

func (b *Builder) applyRegistrations(props map[string]map[string]any) error {
	var errs error
	for _, r := range b.registrations {
		if err := b.expectType(r.Group.ID(), "AWS::AutoScaling::AutoScalingGroup"); err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		if err := b.expectType(r.TargetGroup.ID(), "AWS::ElasticLoadBalancingV2::TargetGroup"); err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		p := props[r.Group.ID()]
		if p == nil {
			continue
		}
		arns, _ := p["TargetGroupARNs"].([]any)
		p["TargetGroupARNs"] = append(arns, map[string]any{"Ref": r.TargetGroup.ID()})
	}
	return errs
}

func (b *Builder) checkGrants() error {
	var errs error
	for _, g := range b.ingress {
		errs = multierr.Append(errs, b.expectType(g.From.ID(), "AWS::EC2::SecurityGroup"))
		errs = multierr.Append(errs, b.expectType(g.To.ID(), "AWS::EC2::SecurityGroup"))
	}
	return errs
}

func (b *Builder) expectType(id, resourceType string) error {
	i, ok := b.index[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownReference, id)
	}
	if got := b.resources[i].value.ResourceType(); got != resourceType {
		return fmt.Errorf("%w: %s is %s, want %s", ErrInvalidGrant, id, got, resourceType)
	}
	return nil
}

func (b *Builder) checkConditions(owner string, v any) error {
	names := make(map[string]bool)
	conditionReferences(v, names)
	var errs error
	for _, name := range slices.Sorted(maps.Keys(names)) {
		if _, ok := b.conditions[name]; !ok {
			errs = multierr.Append(errs, fmt.Errorf("%w: %s uses condition %s", ErrUnknownReference, owner, name))
		}
	}
	return errs
}

func (b *Builder) checkRefs(owner string, v any) error {
	n, err := serialize.Normalize(v)
	if err != nil {
		return fmt.Errorf("serializing %s: %w", owner, err)
	}
	refs := make(map[string]bool)
	references(n, refs)
	errs := b.checkConditions(owner, n)
	for _, ref := range slices.Sorted(maps.Keys(refs)) {
		if !b.Has(ref) {
			errs = multierr.Append(errs, fmt.Errorf("%w: %s references %s", ErrUnknownReference, owner, ref))
		}
	}
	return errs
}

func ingressRule(g NetworkIngress) ec2.SecurityGroupIngress {
	return ec2.SecurityGroupIngress{
		Description:           g.Description,
		FromPort:              g.Port,
		GroupId:               g.To.Att("GroupId"),
		IpProtocol:            "tcp",
		SourceSecurityGroupId: g.From.Att("GroupId"),
		ToPort:                g.Port,
	}
}
