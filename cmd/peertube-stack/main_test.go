package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	wetwire "github.com/lex00/wetwire-peertube-go"
	"github.com/lex00/wetwire-peertube-go/internal/stack"
)

const regionalConfig = `variant: regional
ami_region_map:
  us-east-1: ami-0123456789abcdef0
  eu-west-1: ami-0fedcba9876543210
`

// setup isolates a test in an empty directory with a fixed template version.
func setup(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("TEMPLATE_VERSION", "v9")
	return dir
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestSynth_JSON(t *testing.T) {
	setup(t)

	out, err := run(t, "synth")
	require.NoError(t, err)

	var tmpl wetwire.Template
	require.NoError(t, json.Unmarshal([]byte(out), &tmpl))
	assert.Equal(t, "v9", tmpl.Metadata[stack.TemplateVersionMetadata])
	assert.Contains(t, tmpl.Resources, stack.DistributionID)
	assert.Contains(t, tmpl.Parameters, stack.PriceClassParameter)
}

func TestSynth_RegionalYAMLToFile(t *testing.T) {
	dir := setup(t)
	writeFile(t, filepath.Join(dir, "peertube-stack.yaml"), regionalConfig)
	outFile := filepath.Join(dir, "regional.yaml")

	_, err := run(t, "synth", "--format", "yaml", "-o", outFile)
	require.NoError(t, err)

	data, err := os.ReadFile(outFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), stack.AmiMappingName)
	assert.NotContains(t, string(data), stack.DistributionID)
}

func TestSynth_VariantFlagOverridesConfig(t *testing.T) {
	dir := setup(t)
	writeFile(t, filepath.Join(dir, "peertube-stack.yaml"), regionalConfig)

	out, err := run(t, "synth", "--variant", "cdn")
	require.NoError(t, err)
	assert.Contains(t, out, stack.DistributionID)
}

func TestSynth_RegionalWithoutImagesFails(t *testing.T) {
	setup(t)

	_, err := run(t, "synth", "--variant", "regional")
	assert.ErrorContains(t, err, "ami_region_map")
}

func TestSynth_UserDataFlag(t *testing.T) {
	dir := setup(t)
	script := filepath.Join(dir, "boot.sh")
	writeFile(t, script, "#!/bin/bash\necho custom-boot\n")

	out, err := run(t, "synth", "--user-data", script)
	require.NoError(t, err)
	assert.Contains(t, out, "custom-boot")
}

func TestSynth_EnvFile(t *testing.T) {
	dir := setup(t)
	os.Unsetenv("TEMPLATE_VERSION")
	writeFile(t, filepath.Join(dir, ".env"), "TEMPLATE_VERSION=from-dotenv\n")

	out, err := run(t, "synth")
	require.NoError(t, err)
	assert.Contains(t, out, "from-dotenv")
}

func TestSynth_UnknownFormat(t *testing.T) {
	setup(t)

	_, err := run(t, "synth", "--format", "toml")
	assert.ErrorContains(t, err, "unknown format")
}

func TestList(t *testing.T) {
	setup(t)

	out, err := run(t, "list", "--format", "json")
	require.NoError(t, err)

	var result wetwire.ListResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))

	index := make(map[string]wetwire.ListResource)
	for _, r := range result.Resources {
		index[r.Name] = r
	}
	assert.Subset(t, index["AsgAutoScalingGroup"].DependsOn, []string{"DbPrimaryInstance", "SesGenerateSmtpPasswordCustomResource"})
	assert.Equal(t, "VpcNotGivenCondition", index["Vpc"].Condition)

	text, err := run(t, "list")
	require.NoError(t, err)
	assert.Contains(t, text, "AsgAutoScalingGroup: AWS::AutoScaling::AutoScalingGroup")
}

func TestParams(t *testing.T) {
	setup(t)

	out, err := run(t, "params")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "Application Config\n"), out)
	assert.Contains(t, out, "AdminEmail")
	assert.Contains(t, out, "PeerTube Admin Email")
	assert.Contains(t, out, "(required)")

	jsonOut, err := run(t, "params", "-f", "json")
	require.NoError(t, err)
	var meta map[string]any
	require.NoError(t, json.Unmarshal([]byte(jsonOut), &meta))
	assert.Contains(t, meta, "ParameterGroups")
	assert.Contains(t, meta, "ParameterLabels")
}

func TestGraph(t *testing.T) {
	setup(t)

	out, err := run(t, "graph", "-f", "mermaid", "-i")
	require.NoError(t, err)
	assert.Contains(t, out, "AsgAutoScalingGroup")

	_, err = run(t, "graph", "-f", "svg")
	assert.ErrorContains(t, err, "unknown format")
}

func TestValidate(t *testing.T) {
	setup(t)

	out, err := run(t, "validate", "--skip-cfn-lint")
	require.NoError(t, err)
	assert.Contains(t, out, "Validation passed: cdn variant")

	out, err = run(t, "validate", "--skip-cfn-lint", "-f", "json")
	require.NoError(t, err)
	var result wetwire.ValidateResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.True(t, result.Success)
}

func TestDiff(t *testing.T) {
	dir := setup(t)
	cdnFile := filepath.Join(dir, "cdn.json")
	_, err := run(t, "synth", "-o", cdnFile)
	require.NoError(t, err)

	out, err := run(t, "diff", cdnFile)
	require.NoError(t, err)
	assert.Contains(t, out, "No differences.")

	cfg := filepath.Join(dir, "regional.yaml")
	writeFile(t, cfg, regionalConfig)
	regionalFile := filepath.Join(dir, "regional.json")
	_, err = run(t, "synth", "-c", cfg, "-o", regionalFile)
	require.NoError(t, err)

	out, err = run(t, "diff", cdnFile, regionalFile)
	require.NoError(t, err)
	assert.Contains(t, out, "- Resources/CloudFrontDistribution (AWS::CloudFront::Distribution)")
	assert.Contains(t, out, "- Parameters/CloudFrontPriceClass")
}

func TestVersion(t *testing.T) {
	setup(t)

	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "peertube-stack ")
	assert.Contains(t, out, "template version v9")
}

func TestGetVersion(t *testing.T) {
	v := getVersion()
	assert.NotEmpty(t, v)
	if v != "dev" {
		assert.True(t, strings.HasPrefix(v, "v"), "getVersion() = %q, want 'dev' or 'vX.Y.Z'", v)
	}
}

func TestRootCmd_Commands(t *testing.T) {
	cmd := newRootCmd()
	var names []string
	for _, c := range cmd.Commands() {
		names = append(names, c.Name())
	}
	for _, want := range []string{"synth", "list", "params", "graph", "validate", "diff", "watch", "preflight", "version"} {
		assert.Contains(t, names, want)
	}
}
