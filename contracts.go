// Package wetwire_peertube provides the shared contracts for the PeerTube stack composer.
//
// The stack is declared in Go and rendered to a CloudFormation template:
//
//	p, err := stack.Build(stack.Options{Profile: stack.DefaultProfile(stack.VariantCDN)})
//	tmpl := p.Template()
//
// Resource types under resources/ implement Resource; the plan builder turns them
// into ResourceDef entries of a Template.
package wetwire_peertube

// Resource represents a CloudFormation resource.
// All resource types (s3.Bucket, iam.Role, etc.) implement this interface.
type Resource interface {
	// ResourceType returns the CloudFormation type (e.g., "AWS::S3::Bucket")
	ResourceType() string
}

// Template represents a CloudFormation template.
type Template struct {
	AWSTemplateFormatVersion string                 `json:"AWSTemplateFormatVersion" yaml:"AWSTemplateFormatVersion"`
	Description              string                 `json:"Description,omitempty" yaml:"Description,omitempty"`
	Metadata                 map[string]any         `json:"Metadata,omitempty" yaml:"Metadata,omitempty"`
	Parameters               map[string]Parameter   `json:"Parameters,omitempty" yaml:"Parameters,omitempty"`
	Mappings                 map[string]any         `json:"Mappings,omitempty" yaml:"Mappings,omitempty"`
	Conditions               map[string]any         `json:"Conditions,omitempty" yaml:"Conditions,omitempty"`
	Resources                map[string]ResourceDef `json:"Resources" yaml:"Resources"`
	Outputs                  map[string]Output      `json:"Outputs,omitempty" yaml:"Outputs,omitempty"`
}

// ResourceDef is a single resource in the CloudFormation template.
type ResourceDef struct {
	Type                string         `json:"Type" yaml:"Type"`
	Condition           string         `json:"Condition,omitempty" yaml:"Condition,omitempty"`
	DependsOn           []string       `json:"DependsOn,omitempty" yaml:"DependsOn,omitempty"`
	DeletionPolicy      string         `json:"DeletionPolicy,omitempty" yaml:"DeletionPolicy,omitempty"`
	UpdateReplacePolicy string         `json:"UpdateReplacePolicy,omitempty" yaml:"UpdateReplacePolicy,omitempty"`
	CreationPolicy      map[string]any `json:"CreationPolicy,omitempty" yaml:"CreationPolicy,omitempty"`
	UpdatePolicy        map[string]any `json:"UpdatePolicy,omitempty" yaml:"UpdatePolicy,omitempty"`
	Properties          map[string]any `json:"Properties,omitempty" yaml:"Properties,omitempty"`
}

// Parameter is a CloudFormation template parameter.
type Parameter struct {
	Type                  string   `json:"Type" yaml:"Type"`
	Description           string   `json:"Description,omitempty" yaml:"Description,omitempty"`
	Default               any      `json:"Default,omitempty" yaml:"Default,omitempty"`
	AllowedValues         []any    `json:"AllowedValues,omitempty" yaml:"AllowedValues,omitempty"`
	AllowedPattern        string   `json:"AllowedPattern,omitempty" yaml:"AllowedPattern,omitempty"`
	ConstraintDescription string   `json:"ConstraintDescription,omitempty" yaml:"ConstraintDescription,omitempty"`
	MinValue              *float64 `json:"MinValue,omitempty" yaml:"MinValue,omitempty"`
	MaxValue              *float64 `json:"MaxValue,omitempty" yaml:"MaxValue,omitempty"`
	NoEcho                bool     `json:"NoEcho,omitempty" yaml:"NoEcho,omitempty"`
}

// Output is a CloudFormation template output.
type Output struct {
	Description string  `json:"Description,omitempty" yaml:"Description,omitempty"`
	Condition   string  `json:"Condition,omitempty" yaml:"Condition,omitempty"`
	Value       any     `json:"Value" yaml:"Value"`
	Export      *Export `json:"Export,omitempty" yaml:"Export,omitempty"`
}

// Export names an output for cross-stack references.
type Export struct {
	Name any `json:"Name" yaml:"Name"`
}

// ValidateResult is the JSON output from `peertube-stack validate`.
type ValidateResult struct {
	Success   bool     `json:"success"`
	Variant   string   `json:"variant"`
	Resources int      `json:"resources"`
	Errors    []string `json:"errors,omitempty"`
	Warnings  []string `json:"warnings,omitempty"`
}

// ListResult is the JSON output from `peertube-stack list`.
type ListResult struct {
	Resources []ListResource `json:"resources"`
}

// ListResource is a single resource in the list output.
type ListResource struct {
	Name      string   `json:"name"`
	Type      string   `json:"type"`
	Condition string   `json:"condition,omitempty"`
	DependsOn []string `json:"depends_on,omitempty"`
}

// DiffEntry describes a single difference between two templates.
type DiffEntry struct {
	// Section is the template section: Resources, Parameters or Outputs.
	Section  string   `json:"section"`
	Resource string   `json:"resource"`
	Type     string   `json:"type,omitempty"`
	Changes  []string `json:"changes,omitempty"`
}

// TemplateDiff groups template differences by kind.
type TemplateDiff struct {
	Added    []DiffEntry `json:"added,omitempty"`
	Removed  []DiffEntry `json:"removed,omitempty"`
	Modified []DiffEntry `json:"modified,omitempty"`
}

// DiffSummary counts the differences.
type DiffSummary struct {
	Added    int `json:"added"`
	Removed  int `json:"removed"`
	Modified int `json:"modified"`
	Total    int `json:"total"`
}
