// Package cloudformation provides CloudFormation resource types for custom resources.
package cloudformation

import (
	"fmt"
	"strings"

	"github.com/lex00/wetwire-peertube-go/internal/serialize"
)

// CustomResource represents a Custom::<Name> resource backed by a Lambda function.
// Properties are passed through to the function as-is.
type CustomResource struct {
	// Name is the suffix of the resource type, e.g. "GenerateSmtpPassword".
	Name         string
	ServiceToken any
	Properties   map[string]any
}

// ResourceType returns the CloudFormation resource type.
func (r CustomResource) ResourceType() string {
	return "Custom::" + strings.TrimPrefix(r.Name, "Custom::")
}

// CloudFormationProperties flattens ServiceToken and Properties into one map.
func (r CustomResource) CloudFormationProperties() (map[string]any, error) {
	if r.ServiceToken == nil {
		return nil, fmt.Errorf("custom resource %s: ServiceToken is required", r.ResourceType())
	}
	props := map[string]any{"ServiceToken": r.ServiceToken}
	for k, v := range r.Properties {
		if k == "ServiceToken" {
			return nil, fmt.Errorf("custom resource %s: ServiceToken must not be set in Properties", r.ResourceType())
		}
		props[k] = v
	}
	return serialize.NormalizeMap(props)
}
