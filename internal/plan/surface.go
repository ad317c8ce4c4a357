package plan

import (
	"errors"
	"fmt"
	"maps"
	"slices"

	"go.uber.org/multierr"
)

var (
	// ErrDuplicateParameter is returned when a parameter appears in more than one group.
	ErrDuplicateParameter = errors.New("parameter declared in more than one group")

	// ErrLabelCollision is returned when a parameter label is declared twice.
	ErrLabelCollision = errors.New("parameter label declared twice")

	// ErrUnknownParameter is returned when a grouped parameter is not declared.
	ErrUnknownParameter = errors.New("grouped parameter is not declared")
)

// ParameterGroup is a labelled group of parameters in the operator configuration form.
type ParameterGroup struct {
	Label      string
	Parameters []string
}

// ConfigSurface is implemented by every component that contributes to the
// operator configuration form.
type ConfigSurface interface {
	ParameterGroups() []ParameterGroup
	ParameterLabels() map[string]string
}

// Interface is the aggregated configuration form rendered as
// AWS::CloudFormation::Interface metadata.
type Interface struct {
	ParameterGroups []ParameterGroup
	ParameterLabels map[string]string
}

// Aggregate concatenates the parameter groups of all surfaces in order and merges
// their labels. A parameter appearing in two groups or a label declared twice is
// an error; all collisions are reported together.
func Aggregate(surfaces ...ConfigSurface) (Interface, error) {
	iface := Interface{ParameterLabels: make(map[string]string)}
	groupOf := make(map[string]string)
	var errs error

	for _, s := range surfaces {
		for _, g := range s.ParameterGroups() {
			for _, id := range g.Parameters {
				if prev, ok := groupOf[id]; ok {
					errs = multierr.Append(errs, fmt.Errorf("%w: %s in %q and %q", ErrDuplicateParameter, id, prev, g.Label))
					continue
				}
				groupOf[id] = g.Label
			}
			iface.ParameterGroups = append(iface.ParameterGroups, ParameterGroup{
				Label:      g.Label,
				Parameters: slices.Clone(g.Parameters),
			})
		}

		labels := s.ParameterLabels()
		for _, id := range slices.Sorted(maps.Keys(labels)) {
			if prev, ok := iface.ParameterLabels[id]; ok {
				errs = multierr.Append(errs, fmt.Errorf("%w: %s (%q and %q)", ErrLabelCollision, id, prev, labels[id]))
				continue
			}
			iface.ParameterLabels[id] = labels[id]
		}
	}

	if errs != nil {
		return Interface{}, errs
	}
	return iface, nil
}

// Parameters returns every grouped parameter ID in form order.
func (i Interface) Parameters() []string {
	var ids []string
	for _, g := range i.ParameterGroups {
		ids = append(ids, g.Parameters...)
	}
	return ids
}

// Metadata renders the form in the AWS::CloudFormation::Interface shape.
func (i Interface) Metadata() map[string]any {
	groups := make([]any, 0, len(i.ParameterGroups))
	for _, g := range i.ParameterGroups {
		params := make([]any, len(g.Parameters))
		for n, id := range g.Parameters {
			params[n] = id
		}
		groups = append(groups, map[string]any{
			"Label":      map[string]any{"default": g.Label},
			"Parameters": params,
		})
	}
	labels := make(map[string]any, len(i.ParameterLabels))
	for id, label := range i.ParameterLabels {
		labels[id] = map[string]any{"default": label}
	}
	return map[string]any{
		"ParameterGroups": groups,
		"ParameterLabels": labels,
	}
}

func (i Interface) clone() Interface {
	c := Interface{ParameterLabels: maps.Clone(i.ParameterLabels)}
	for _, g := range i.ParameterGroups {
		c.ParameterGroups = append(c.ParameterGroups, ParameterGroup{Label: g.Label, Parameters: slices.Clone(g.Parameters)})
	}
	return c
}

// Surface is a static ConfigSurface.
type Surface struct {
	Groups []ParameterGroup
	Labels map[string]string
}

// ParameterGroups implements ConfigSurface.
func (s Surface) ParameterGroups() []ParameterGroup { return s.Groups }

// ParameterLabels implements ConfigSurface.
func (s Surface) ParameterLabels() map[string]string { return s.Labels }
