// Package graph renders the resource dependency graph of a plan in DOT or Mermaid format.
package graph

import (
	"fmt"
	"io"
	"strings"

	"github.com/emicklei/dot"

	"github.com/lex00/wetwire-peertube-go/internal/plan"
)

// Format specifies the output format for the graph.
type Format string

const (
	// FormatDOT outputs Graphviz DOT format.
	FormatDOT Format = "dot"
	// FormatMermaid outputs Mermaid format for GitHub/markdown rendering.
	FormatMermaid Format = "mermaid"
)

// ParseFormat converts a flag value to a Format.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatDOT, FormatMermaid:
		return Format(s), nil
	}
	return "", fmt.Errorf("unknown format: %s (use 'dot' or 'mermaid')", s)
}

// Generator creates dependency graphs from a built plan.
type Generator struct {
	// IncludeParameters adds parameter nodes and the resources that reference them.
	IncludeParameters bool

	// IncludeIngress adds security group ingress grants as dotted edges.
	IncludeIngress bool

	// Format specifies the output format (dot or mermaid). Defaults to dot.
	Format Format

	// ClusterByType groups resources by AWS service.
	ClusterByType bool
}

// Generate creates a dependency graph and writes it to w.
func (g *Generator) Generate(p *plan.Plan, w io.Writer) error {
	graph, err := g.buildGraph(p)
	if err != nil {
		return err
	}

	format := g.Format
	if format == "" {
		format = FormatDOT
	}

	var output string
	if format == FormatMermaid {
		output = dot.MermaidGraph(graph, dot.MermaidTopToBottom)
	} else {
		output = graph.String()
	}

	_, err = io.WriteString(w, output)
	return err
}

// GenerateString is a convenience method that returns the graph as a string.
func (g *Generator) GenerateString(p *plan.Plan) (string, error) {
	var sb strings.Builder
	if err := g.Generate(p, &sb); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func (g *Generator) buildGraph(p *plan.Plan) (*dot.Graph, error) {
	graph := dot.NewGraph(dot.Directed)
	graph.Attr("rankdir", "TB")

	graph.NodeInitializer(func(n dot.Node) {
		n.Attr("shape", "box")
		n.Attr("fontname", "Arial")
	})
	graph.EdgeInitializer(func(e dot.Edge) {
		e.Attr("fontname", "Arial")
		e.Attr("fontsize", "10")
	})

	if g.ClusterByType {
		g.addClusteredNodes(graph, p)
	} else {
		for _, id := range p.Resources() {
			graph.Node(id).Label(nodeLabel(id, p.ResourceType(id)))
		}
	}

	for _, e := range p.Edges() {
		edge := graph.Edge(graph.Node(e.From), graph.Node(e.To))
		switch e.Kind {
		case plan.EdgeDependsOn:
			edge.Attr("color", "red")
			edge.Attr("style", "dashed")
			edge.Label("DependsOn")
		case plan.EdgeRegistration:
			edge.Attr("color", "darkgreen")
			edge.Attr("style", "bold")
			edge.Label("targets")
		}
	}

	if g.IncludeIngress {
		for _, grant := range p.Ingress() {
			edge := graph.Edge(graph.Node(grant.From.ID()), graph.Node(grant.To.ID()))
			edge.Attr("color", "blue")
			edge.Attr("style", "dotted")
			edge.Label(fmt.Sprintf("tcp/%d", grant.Port))
		}
	}

	if g.IncludeParameters {
		params := p.Template().Parameters
		for _, id := range p.Resources() {
			def, _ := p.Resource(id)
			refs, err := plan.References(def.Properties)
			if err != nil {
				return nil, fmt.Errorf("collecting references of %s: %w", id, err)
			}
			for _, ref := range refs {
				if _, ok := params[ref]; !ok {
					continue
				}
				n := graph.Node(ref)
				n.Attr("shape", "ellipse")
				n.Attr("style", "dashed")
				n.Label(ref)
				graph.Edge(graph.Node(id), n).Attr("style", "dashed")
			}
		}
	}

	return graph, nil
}

// addClusteredNodes adds resource nodes grouped by AWS service.
func (g *Generator) addClusteredNodes(graph *dot.Graph, p *plan.Plan) {
	var services []string
	byService := make(map[string][]string)
	for _, id := range p.Resources() {
		service := extractService(p.ResourceType(id))
		if _, ok := byService[service]; !ok {
			services = append(services, service)
		}
		byService[service] = append(byService[service], id)
	}

	for _, service := range services {
		ids := byService[service]
		parent := graph
		if len(ids) > 1 {
			parent = graph.Subgraph("cluster_"+service, dot.ClusterOption{})
			parent.Attr("label", service)
			parent.Attr("style", "rounded")
			parent.Attr("bgcolor", "lightyellow")
		}
		for _, id := range ids {
			parent.Node(id).Label(nodeLabel(id, p.ResourceType(id)))
		}
	}
}

func nodeLabel(id, resourceType string) string {
	return id + "\\n[" + resourceType + "]"
}

// extractService returns the service part of a CloudFormation type.
// e.g., "AWS::S3::Bucket" -> "S3", "Custom::GenerateSmtpPassword" -> "Custom"
func extractService(resourceType string) string {
	parts := strings.Split(resourceType, "::")
	switch {
	case len(parts) >= 3:
		return parts[1]
	case len(parts) == 2:
		return parts[0]
	}
	return "Other"
}
