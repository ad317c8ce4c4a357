package patterns

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func toMap(t *testing.T, v any) map[string]any {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	var m map[string]any
	require.NoError(t, json.Unmarshal(data, &m))
	return m
}
