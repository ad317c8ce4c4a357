package validation

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/lex00/cfn-lint-go/pkg/lint"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	wetwire "github.com/lex00/wetwire-peertube-go"
	"github.com/lex00/wetwire-peertube-go/internal/plan"
	"github.com/lex00/wetwire-peertube-go/internal/stack"
	"github.com/lex00/wetwire-peertube-go/resources/s3"
)

func TestCfnLintResult_TotalIssues(t *testing.T) {
	tests := []struct {
		name     string
		result   CfnLintResult
		expected int
	}{
		{name: "empty result", result: CfnLintResult{}, expected: 0},
		{name: "errors only", result: CfnLintResult{Errors: []string{"error1", "error2"}}, expected: 2},
		{
			name: "mixed issues",
			result: CfnLintResult{
				Errors:        []string{"error1"},
				Warnings:      []string{"warning1", "warning2"},
				Informational: []string{"info1"},
			},
			expected: 4,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.result.TotalIssues())
		})
	}
}

func TestAddLint(t *testing.T) {
	lintResult := &CfnLintResult{Errors: []string{"E3002 bad property"}, Warnings: []string{"W1020 unneeded Fn::Sub"}}

	result := &wetwire.ValidateResult{Errors: []string{"stack structure: x"}}
	addLint(result, lintResult, false)
	assert.Equal(t, []string{"stack structure: x", "E3002 bad property"}, result.Errors)
	assert.Equal(t, []string{"W1020 unneeded Fn::Sub"}, result.Warnings)

	strict := &wetwire.ValidateResult{}
	addLint(strict, lintResult, true)
	assert.Equal(t, []string{"E3002 bad property", "W1020 unneeded Fn::Sub"}, strict.Errors)
	assert.Empty(t, strict.Warnings)
}

func TestFormatMatch(t *testing.T) {
	tests := []struct {
		name     string
		match    lint.Match
		expected string
	}{
		{
			name: "simple match",
			match: lint.Match{
				Rule:    lint.MatchRule{ID: "E1234"},
				Message: "Something is wrong",
			},
			expected: "E1234: Something is wrong",
		},
		{
			name: "match with path",
			match: lint.Match{
				Rule:    lint.MatchRule{ID: "W5678"},
				Message: "Warning message",
				Location: lint.MatchLocation{
					Path: []any{"Resources", "AsgLaunchTemplate", "Properties", 0},
				},
			},
			expected: "W5678: Warning message (at Resources/AsgLaunchTemplate/Properties/0)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, formatMatch(tt.match))
		})
	}
}

func TestRunCfnLint_FileNotFound(t *testing.T) {
	result, err := RunCfnLint("/nonexistent/template.yaml")
	require.NoError(t, err)
	assert.False(t, result.Passed)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "Template file not found")
}

func TestRunCfnLint_ValidTemplate(t *testing.T) {
	templatePath := filepath.Join(t.TempDir(), "template.yaml")
	validTemplate := `AWSTemplateFormatVersion: '2010-09-09'
Description: Test template
Resources:
  AssetsBucket:
    Type: AWS::S3::Bucket
    Properties:
      BucketName: peertube-assets
`
	require.NoError(t, os.WriteFile(templatePath, []byte(validTemplate), 0o644))

	result, err := RunCfnLint(templatePath)
	require.NoError(t, err)
	assert.NotNil(t, result)
}

func TestLintPlan(t *testing.T) {
	b := plan.NewBuilder()
	b.Resource("AssetsBucket", s3.Bucket{BucketName: "peertube-assets"})
	p, err := b.Build()
	require.NoError(t, err)

	result, err := LintPlan(p)
	require.NoError(t, err)
	assert.NotNil(t, result.Errors)
}

func TestValidate_StructuralOnly(t *testing.T) {
	profile := stack.DefaultProfile(stack.VariantCDN)
	p, err := stack.Build(stack.Options{Profile: profile, TemplateVersion: "test"})
	require.NoError(t, err)

	result, err := Validate(p, profile, Options{SkipCfnLint: true})
	require.NoError(t, err)
	assert.True(t, result.Success, "errors: %v", result.Errors)
	assert.Equal(t, "cdn", result.Variant)
	assert.Equal(t, len(p.Resources()), result.Resources)
}

func TestValidate_VariantMismatch(t *testing.T) {
	cdn := stack.DefaultProfile(stack.VariantCDN)
	p, err := stack.Build(stack.Options{Profile: cdn, TemplateVersion: "test"})
	require.NoError(t, err)

	regional := stack.DefaultProfile(stack.VariantRegional)
	regional.AmiRegionMap = map[string]string{"us-east-1": "ami-0123456789abcdef0"}
	result, err := Validate(p, regional, Options{SkipCfnLint: true})
	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.NotEmpty(t, result.Errors)
}
