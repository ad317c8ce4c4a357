package plan

import (
	"maps"
	"slices"
	"strings"

	"github.com/lex00/wetwire-peertube-go/internal/serialize"
)

// references collects the logical IDs referenced by Ref, Fn::GetAtt and Fn::Sub
// in a JSON-normalized value. Pseudo-parameters are skipped.
func references(v any, into map[string]bool) {
	switch val := v.(type) {
	case map[string]any:
		if len(val) == 1 {
			if ref, ok := val["Ref"].(string); ok {
				addRef(ref, into)
				return
			}
			if att, ok := val["Fn::GetAtt"]; ok {
				switch a := att.(type) {
				case []any:
					if len(a) > 0 {
						if id, ok := a[0].(string); ok {
							addRef(id, into)
						}
					}
					for _, x := range a[1:] {
						references(x, into)
					}
				case string:
					id, _, _ := strings.Cut(a, ".")
					addRef(id, into)
				}
				return
			}
			if sub, ok := val["Fn::Sub"]; ok {
				subReferences(sub, into)
				return
			}
		}
		for _, x := range val {
			references(x, into)
		}
	case []any:
		for _, x := range val {
			references(x, into)
		}
	}
}

func subReferences(sub any, into map[string]bool) {
	switch s := sub.(type) {
	case string:
		for _, name := range subVariables(s) {
			addRef(name, into)
		}
	case []any:
		if len(s) == 0 {
			return
		}
		str, _ := s[0].(string)
		var vars map[string]any
		if len(s) > 1 {
			vars, _ = s[1].(map[string]any)
			references(vars, into)
		}
		for _, name := range subVariables(str) {
			if _, local := vars[name]; local {
				continue
			}
			addRef(name, into)
		}
	}
}

// subVariables returns the logical IDs named by ${...} placeholders.
// ${Name.Attr} yields Name; ${!Literal} is skipped.
func subVariables(s string) []string {
	var names []string
	for {
		start := strings.Index(s, "${")
		if start < 0 {
			return names
		}
		s = s[start+2:]
		end := strings.IndexByte(s, '}')
		if end < 0 {
			return names
		}
		name := s[:end]
		s = s[end+1:]
		if name == "" || strings.HasPrefix(name, "!") {
			continue
		}
		if !strings.Contains(name, "::") {
			name, _, _ = strings.Cut(name, ".")
		}
		names = append(names, name)
	}
}

func addRef(id string, into map[string]bool) {
	if id == "" || strings.HasPrefix(id, "AWS::") {
		return
	}
	into[id] = true
}

// conditionReferences collects condition names used by Fn::If and Condition keys.
func conditionReferences(v any, into map[string]bool) {
	switch val := v.(type) {
	case map[string]any:
		if args, ok := val["Fn::If"].([]any); ok && len(args) > 0 {
			if name, ok := args[0].(string); ok {
				into[name] = true
			}
		}
		if name, ok := val["Condition"].(string); ok && len(val) == 1 {
			into[name] = true
		}
		for _, x := range val {
			conditionReferences(x, into)
		}
	case []any:
		for _, x := range val {
			conditionReferences(x, into)
		}
	}
}

// References returns the logical IDs referenced by v, sorted.
func References(v any) ([]string, error) {
	n, err := serialize.Normalize(v)
	if err != nil {
		return nil, err
	}
	refs := make(map[string]bool)
	references(n, refs)
	return slices.Sorted(maps.Keys(refs)), nil
}
