package plan

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestAggregate_PreservesOrder(t *testing.T) {
	iface, err := Aggregate(
		Surface{
			Groups: []ParameterGroup{{Label: "Application Config", Parameters: []string{"AdminEmail"}}},
			Labels: map[string]string{"AdminEmail": "Administrator Email address"},
		},
		Surface{
			Groups: []ParameterGroup{
				{Label: "VPC", Parameters: []string{"VpcId", "VpcIPv4CidrBlock"}},
				{Label: "DNS", Parameters: []string{"DnsHostname"}},
			},
			Labels: map[string]string{"VpcId": "VPC ID", "DnsHostname": "Hostname"},
		},
	)
	require.NoError(t, err)

	labels := make([]string, 0, len(iface.ParameterGroups))
	for _, g := range iface.ParameterGroups {
		labels = append(labels, g.Label)
	}
	assert.Equal(t, []string{"Application Config", "VPC", "DNS"}, labels)
	assert.Equal(t, []string{"AdminEmail", "VpcId", "VpcIPv4CidrBlock", "DnsHostname"}, iface.Parameters())
	assert.Len(t, iface.ParameterLabels, 3)
}

func TestAggregate_DuplicateParameter(t *testing.T) {
	_, err := Aggregate(
		Surface{Groups: []ParameterGroup{{Label: "A", Parameters: []string{"VpcId"}}}},
		Surface{Groups: []ParameterGroup{{Label: "B", Parameters: []string{"VpcId"}}}},
	)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDuplicateParameter)
	assert.Contains(t, err.Error(), `VpcId in "A" and "B"`)
}

func TestAggregate_LabelCollision(t *testing.T) {
	_, err := Aggregate(
		Surface{Labels: map[string]string{"AdminEmail": "one"}},
		Surface{Labels: map[string]string{"AdminEmail": "two"}},
	)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrLabelCollision)
}

func TestAggregate_ReportsAllCollisions(t *testing.T) {
	_, err := Aggregate(
		Surface{
			Groups: []ParameterGroup{{Label: "A", Parameters: []string{"X", "Y"}}},
			Labels: map[string]string{"X": "x"},
		},
		Surface{
			Groups: []ParameterGroup{{Label: "B", Parameters: []string{"X", "Y"}}},
			Labels: map[string]string{"X": "x"},
		},
	)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDuplicateParameter)
	assert.ErrorIs(t, err, ErrLabelCollision)
	assert.Contains(t, err.Error(), "Y in")
}

func TestAggregate_Empty(t *testing.T) {
	iface, err := Aggregate()
	require.NoError(t, err)
	assert.Empty(t, iface.ParameterGroups)
	assert.Empty(t, iface.Parameters())

	metadata := iface.Metadata()
	assert.Equal(t, []any{}, metadata["ParameterGroups"])
}

func TestInterface_CloneIsIndependent(t *testing.T) {
	iface, err := Aggregate(Surface{
		Groups: []ParameterGroup{{Label: "A", Parameters: []string{"X"}}},
		Labels: map[string]string{"X": "x"},
	})
	require.NoError(t, err)

	c := iface.clone()
	c.ParameterGroups[0].Parameters[0] = "changed"
	c.ParameterLabels["X"] = "changed"

	assert.Equal(t, "X", iface.ParameterGroups[0].Parameters[0])
	assert.Equal(t, "x", iface.ParameterLabels["X"])
}

// Aggregation succeeds exactly when every parameter ID is unique across all
// groups, and then yields every ID once, in order.
func TestAggregate_Property_UniqueIDs(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		nSurfaces := rapid.IntRange(0, 5).Draw(t, "surfaces")
		var surfaces []ConfigSurface
		var all []string
		for s := 0; s < nSurfaces; s++ {
			nGroups := rapid.IntRange(0, 3).Draw(t, fmt.Sprintf("groups%d", s))
			var groups []ParameterGroup
			for g := 0; g < nGroups; g++ {
				ids := rapid.SliceOfN(rapid.StringMatching(`P[0-9]{1,2}`), 0, 4).Draw(t, fmt.Sprintf("ids%d_%d", s, g))
				groups = append(groups, ParameterGroup{Label: fmt.Sprintf("G%d_%d", s, g), Parameters: ids})
				all = append(all, ids...)
			}
			surfaces = append(surfaces, Surface{Groups: groups})
		}

		seen := make(map[string]bool)
		unique := true
		for _, id := range all {
			if seen[id] {
				unique = false
			}
			seen[id] = true
		}

		iface, err := Aggregate(surfaces...)
		if unique {
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			got := iface.Parameters()
			if len(got) != len(all) {
				t.Fatalf("got %d parameters, want %d", len(got), len(all))
			}
			for i := range all {
				if got[i] != all[i] {
					t.Fatalf("parameter %d: got %s, want %s", i, got[i], all[i])
				}
			}
			return
		}
		if err == nil {
			t.Fatalf("expected duplicate error for %v", all)
		}
	})
}
