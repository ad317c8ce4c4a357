// Package differ provides semantic comparison of CloudFormation templates.
//
// It is used to review what a profile change or a new stack revision does to
// the rendered template before the change set is created.
package differ

import (
	"encoding/json"
	"fmt"
	"maps"
	"os"
	"reflect"
	"slices"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	wetwire "github.com/lex00/wetwire-peertube-go"
	"github.com/lex00/wetwire-peertube-go/internal/serialize"
)

// Template sections compared by Compare.
const (
	SectionResources  = "Resources"
	SectionParameters = "Parameters"
	SectionOutputs    = "Outputs"
)

// Options configures the differ.
type Options struct {
	// IgnoreOrder ignores array element order in comparisons
	IgnoreOrder bool
}

// Result contains the difference between two templates.
type Result struct {
	Diff    wetwire.TemplateDiff
	Summary wetwire.DiffSummary
}

// Empty reports whether the templates are equivalent.
func (r *Result) Empty() bool {
	return r.Summary.Total == 0
}

// Compare compares two CloudFormation templates and returns differences.
func Compare(before, after *wetwire.Template, opts Options) *Result {
	result := &Result{}
	d := &result.Diff

	diffSection(d, SectionResources, before.Resources, after.Resources,
		func(r wetwire.ResourceDef) string { return r.Type },
		func(a, b wetwire.ResourceDef) []string { return compareResources(a, b, opts) },
	)
	diffSection(d, SectionParameters, before.Parameters, after.Parameters,
		func(p wetwire.Parameter) string { return p.Type },
		func(a, b wetwire.Parameter) []string { return compareValues(a, b, opts) },
	)
	diffSection(d, SectionOutputs, before.Outputs, after.Outputs,
		func(wetwire.Output) string { return "" },
		func(a, b wetwire.Output) []string { return compareValues(a, b, opts) },
	)

	sortEntries(d.Added)
	sortEntries(d.Removed)
	sortEntries(d.Modified)

	result.Summary = wetwire.DiffSummary{
		Added:    len(d.Added),
		Removed:  len(d.Removed),
		Modified: len(d.Modified),
	}
	result.Summary.Total = result.Summary.Added + result.Summary.Removed + result.Summary.Modified
	return result
}

func diffSection[T any](d *wetwire.TemplateDiff, section string, before, after map[string]T, typeOf func(T) string, compare func(a, b T) []string) {
	for name, v := range after {
		if _, exists := before[name]; !exists {
			d.Added = append(d.Added, wetwire.DiffEntry{Section: section, Resource: name, Type: typeOf(v)})
		}
	}
	for name, v1 := range before {
		v2, exists := after[name]
		if !exists {
			d.Removed = append(d.Removed, wetwire.DiffEntry{Section: section, Resource: name, Type: typeOf(v1)})
			continue
		}
		if changes := compare(v1, v2); len(changes) > 0 {
			d.Modified = append(d.Modified, wetwire.DiffEntry{
				Section:  section,
				Resource: name,
				Type:     typeOf(v1),
				Changes:  changes,
			})
		}
	}
}

// CompareFiles compares two template files.
func CompareFiles(file1, file2 string, opts Options) (*Result, error) {
	t1, err := LoadTemplate(file1)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", file1, err)
	}

	t2, err := LoadTemplate(file2)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", file2, err)
	}

	return Compare(t1, t2, opts), nil
}

// LoadTemplate loads a CloudFormation template from a JSON or YAML file.
func LoadTemplate(path string) (*wetwire.Template, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseTemplate(data)
}

// ParseTemplate parses a JSON or YAML template. Property values are
// normalized to their JSON forms so templates from either format compare equal.
func ParseTemplate(data []byte) (*wetwire.Template, error) {
	var template wetwire.Template

	if err := json.Unmarshal(data, &template); err != nil {
		template = wetwire.Template{}
		if err := yaml.Unmarshal(data, &template); err != nil {
			return nil, fmt.Errorf("failed to parse as JSON or YAML: %w", err)
		}
	}

	for name, def := range template.Resources {
		props, err := serialize.NormalizeMap(def.Properties)
		if err != nil {
			return nil, fmt.Errorf("normalizing %s: %w", name, err)
		}
		def.Properties = props
		template.Resources[name] = def
	}
	return &template, nil
}

// compareResources compares two resource definitions and returns changes.
func compareResources(def1, def2 wetwire.ResourceDef, opts Options) []string {
	var changes []string

	if def1.Type != def2.Type {
		changes = append(changes, fmt.Sprintf("Type changed: %s → %s", def1.Type, def2.Type))
	}
	if def1.Condition != def2.Condition {
		changes = append(changes, fmt.Sprintf("Condition changed: %q → %q", def1.Condition, def2.Condition))
	}
	if def1.DeletionPolicy != def2.DeletionPolicy {
		changes = append(changes, fmt.Sprintf("DeletionPolicy changed: %q → %q", def1.DeletionPolicy, def2.DeletionPolicy))
	}
	if !reflect.DeepEqual(def1.CreationPolicy, def2.CreationPolicy) {
		changes = append(changes, "CreationPolicy changed")
	}
	if !reflect.DeepEqual(def1.UpdatePolicy, def2.UpdatePolicy) {
		changes = append(changes, "UpdatePolicy changed")
	}
	if !slices.Equal(sorted(def1.DependsOn), sorted(def2.DependsOn)) {
		changes = append(changes, "DependsOn changed")
	}

	return append(changes, compareProperties("", def1.Properties, def2.Properties, opts)...)
}

// compareProperties recursively compares property maps, reporting the
// deepest path at which the values differ.
func compareProperties(prefix string, props1, props2 map[string]any, opts Options) []string {
	var changes []string

	for _, key := range slices.Sorted(maps.Keys(props2)) {
		path := joinPath(prefix, key)
		val1, exists := props1[key]
		if !exists {
			changes = append(changes, path+" added")
			continue
		}
		val2 := props2[key]
		m1, ok1 := val1.(map[string]any)
		m2, ok2 := val2.(map[string]any)
		if ok1 && ok2 && !isIntrinsic(m1) && !isIntrinsic(m2) {
			changes = append(changes, compareProperties(path, m1, m2, opts)...)
			continue
		}
		if !deepEqual(val1, val2, opts) {
			changes = append(changes, path+" modified")
		}
	}

	for key := range props1 {
		if _, exists := props2[key]; !exists {
			changes = append(changes, joinPath(prefix, key)+" removed")
		}
	}

	sort.Strings(changes)
	return changes
}

// compareValues reports a single change when two section entries differ.
func compareValues(a, b any, opts Options) []string {
	na, errA := serialize.Normalize(a)
	nb, errB := serialize.Normalize(b)
	if errA != nil || errB != nil {
		if reflect.DeepEqual(a, b) {
			return nil
		}
		return []string{"modified"}
	}
	m1, ok1 := na.(map[string]any)
	m2, ok2 := nb.(map[string]any)
	if ok1 && ok2 {
		return compareProperties("", m1, m2, opts)
	}
	if !deepEqual(na, nb, opts) {
		return []string{"modified"}
	}
	return nil
}

func joinPath(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + "." + key
}

// isIntrinsic reports whether m is a single-key intrinsic function such as
// {"Ref": ...} or {"Fn::Sub": ...}; those are compared as a whole.
func isIntrinsic(m map[string]any) bool {
	if len(m) != 1 {
		return false
	}
	for k := range m {
		return k == "Ref" || k == "Condition" || strings.HasPrefix(k, "Fn::")
	}
	return false
}

// deepEqual compares two values deeply, optionally ignoring order.
func deepEqual(a, b any, opts Options) bool {
	if opts.IgnoreOrder {
		a = normalizeValue(a)
		b = normalizeValue(b)
	}
	return reflect.DeepEqual(a, b)
}

// normalizeValue sorts arrays by their JSON encoding, recursively.
func normalizeValue(v any) any {
	switch val := v.(type) {
	case []any:
		result := make([]any, len(val))
		keys := make([]string, len(val))
		for i, x := range val {
			result[i] = normalizeValue(x)
			b, _ := json.Marshal(result[i])
			keys[i] = string(b)
		}
		sort.Sort(byKey{keys: keys, values: result})
		return result
	case map[string]any:
		result := make(map[string]any, len(val))
		for k, x := range val {
			result[k] = normalizeValue(x)
		}
		return result
	default:
		return v
	}
}

type byKey struct {
	keys   []string
	values []any
}

func (s byKey) Len() int           { return len(s.keys) }
func (s byKey) Less(i, j int) bool { return s.keys[i] < s.keys[j] }
func (s byKey) Swap(i, j int) {
	s.keys[i], s.keys[j] = s.keys[j], s.keys[i]
	s.values[i], s.values[j] = s.values[j], s.values[i]
}

func sorted(s []string) []string {
	return slices.Sorted(slices.Values(s))
}

// sortEntries sorts diff entries by section then name.
func sortEntries(entries []wetwire.DiffEntry) {
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Section != entries[j].Section {
			return entries[i].Section < entries[j].Section
		}
		return entries[i].Resource < entries[j].Resource
	})
}
