package differ

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	wetwire "github.com/lex00/wetwire-peertube-go"
	"github.com/lex00/wetwire-peertube-go/internal/plan"
	"github.com/lex00/wetwire-peertube-go/internal/stack"
)

func TestCompare(t *testing.T) {
	t1 := &wetwire.Template{
		Resources: map[string]wetwire.ResourceDef{
			"Bucket1": {Type: "AWS::S3::Bucket", Properties: map[string]any{"BucketName": "bucket1"}},
			"Bucket2": {Type: "AWS::S3::Bucket", Properties: map[string]any{"BucketName": "bucket2"}},
		},
	}
	t2 := &wetwire.Template{
		Resources: map[string]wetwire.ResourceDef{
			"Bucket1": {Type: "AWS::S3::Bucket", Properties: map[string]any{"BucketName": "bucket1-modified"}},
			"Bucket3": {Type: "AWS::S3::Bucket", Properties: map[string]any{"BucketName": "bucket3"}},
		},
	}

	result := Compare(t1, t2, Options{})

	require.Len(t, result.Diff.Removed, 1)
	assert.Equal(t, "Bucket2", result.Diff.Removed[0].Resource)
	assert.Equal(t, SectionResources, result.Diff.Removed[0].Section)
	require.Len(t, result.Diff.Added, 1)
	assert.Equal(t, "Bucket3", result.Diff.Added[0].Resource)
	require.Len(t, result.Diff.Modified, 1)
	assert.Equal(t, []string{"BucketName modified"}, result.Diff.Modified[0].Changes)
	assert.Equal(t, 3, result.Summary.Total)
	assert.False(t, result.Empty())
}

func TestCompareIdentical(t *testing.T) {
	template := &wetwire.Template{
		Resources: map[string]wetwire.ResourceDef{
			"Bucket": {Type: "AWS::S3::Bucket", Properties: map[string]any{"BucketName": "test"}},
		},
	}
	assert.True(t, Compare(template, template, Options{}).Empty())
}

func TestCompareResourceAttributes(t *testing.T) {
	t1 := &wetwire.Template{Resources: map[string]wetwire.ResourceDef{
		"Asg": {Type: "AWS::S3::Bucket", DependsOn: []string{"A", "B"}},
	}}
	t2 := &wetwire.Template{Resources: map[string]wetwire.ResourceDef{
		"Asg": {Type: "AWS::S3::AccessPoint", Condition: "C", DeletionPolicy: "Retain", DependsOn: []string{"B"}},
	}}

	changes := Compare(t1, t2, Options{}).Diff.Modified[0].Changes
	assert.Contains(t, changes, "Type changed: AWS::S3::Bucket → AWS::S3::AccessPoint")
	assert.Contains(t, changes, `Condition changed: "" → "C"`)
	assert.Contains(t, changes, `DeletionPolicy changed: "" → "Retain"`)
	assert.Contains(t, changes, "DependsOn changed")
}

func TestCompareResourcePolicies(t *testing.T) {
	t1 := &wetwire.Template{Resources: map[string]wetwire.ResourceDef{
		"Asg": {Type: "T", UpdatePolicy: map[string]any{"AutoScalingReplacingUpdate": map[string]any{"WillReplace": true}}},
	}}
	t2 := &wetwire.Template{Resources: map[string]wetwire.ResourceDef{
		"Asg": {Type: "T", CreationPolicy: map[string]any{"ResourceSignal": map[string]any{"Count": 1}}},
	}}

	changes := Compare(t1, t2, Options{}).Diff.Modified[0].Changes
	assert.Contains(t, changes, "CreationPolicy changed")
	assert.Contains(t, changes, "UpdatePolicy changed")
}

func TestCompareDependsOnOrder(t *testing.T) {
	t1 := &wetwire.Template{Resources: map[string]wetwire.ResourceDef{"X": {Type: "T", DependsOn: []string{"A", "B"}}}}
	t2 := &wetwire.Template{Resources: map[string]wetwire.ResourceDef{"X": {Type: "T", DependsOn: []string{"B", "A"}}}}
	assert.True(t, Compare(t1, t2, Options{}).Empty())
}

func TestCompareParametersAndOutputs(t *testing.T) {
	t1 := &wetwire.Template{
		Parameters: map[string]wetwire.Parameter{
			"CloudFrontPriceClass": {Type: "String", Default: "PriceClass_All"},
			"AdminEmail":           {Type: "String", Default: ""},
		},
		Outputs: map[string]wetwire.Output{"Url": {Value: "a"}},
	}
	t2 := &wetwire.Template{
		Parameters: map[string]wetwire.Parameter{"AdminEmail": {Type: "String", Default: "admin@example.com"}},
		Outputs:    map[string]wetwire.Output{"Url": {Value: "a"}, "Extra": {Value: "b"}},
	}

	result := Compare(t1, t2, Options{})
	assert.Equal(t, []wetwire.DiffEntry{{Section: SectionParameters, Resource: "CloudFrontPriceClass", Type: "String"}}, result.Diff.Removed)
	assert.Equal(t, []wetwire.DiffEntry{{Section: SectionOutputs, Resource: "Extra"}}, result.Diff.Added)
	require.Len(t, result.Diff.Modified, 1)
	assert.Equal(t, "AdminEmail", result.Diff.Modified[0].Resource)
	assert.Equal(t, []string{"Default modified"}, result.Diff.Modified[0].Changes)
}

func TestCompareProperties(t *testing.T) {
	tests := []struct {
		name   string
		props1 map[string]any
		props2 map[string]any
		want   []string
	}{
		{
			name:   "identical",
			props1: map[string]any{"Key": "value"},
			props2: map[string]any{"Key": "value"},
		},
		{
			name:   "added property",
			props1: map[string]any{},
			props2: map[string]any{"Key": "value"},
			want:   []string{"Key added"},
		},
		{
			name:   "removed property",
			props1: map[string]any{"Key": "value"},
			props2: map[string]any{},
			want:   []string{"Key removed"},
		},
		{
			name:   "nested property",
			props1: map[string]any{"DistributionConfig": map[string]any{"PriceClass": "PriceClass_All", "Enabled": true}},
			props2: map[string]any{"DistributionConfig": map[string]any{"PriceClass": "PriceClass_100", "Enabled": true}},
			want:   []string{"DistributionConfig.PriceClass modified"},
		},
		{
			name:   "intrinsic compared whole",
			props1: map[string]any{"VpcId": map[string]any{"Ref": "Vpc"}},
			props2: map[string]any{"VpcId": map[string]any{"Ref": "VpcId"}},
			want:   []string{"VpcId modified"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, compareProperties("", tt.props1, tt.props2, Options{}))
		})
	}
}

func TestCompareIgnoreOrder(t *testing.T) {
	p1 := map[string]any{"AllowedMethods": []any{"GET", "HEAD", "OPTIONS"}}
	p2 := map[string]any{"AllowedMethods": []any{"OPTIONS", "GET", "HEAD"}}

	assert.Equal(t, []string{"AllowedMethods modified"}, compareProperties("", p1, p2, Options{}))
	assert.Empty(t, compareProperties("", p1, p2, Options{IgnoreOrder: true}))
}

func TestParseTemplate_YAMLMatchesJSON(t *testing.T) {
	jsonTmpl, err := ParseTemplate([]byte(`{"AWSTemplateFormatVersion":"2010-09-09","Resources":{"Redis":{"Type":"AWS::ElastiCache::CacheCluster","Properties":{"Port":6379}}}}`))
	require.NoError(t, err)
	yamlTmpl, err := ParseTemplate([]byte("AWSTemplateFormatVersion: '2010-09-09'\nResources:\n  Redis:\n    Type: AWS::ElastiCache::CacheCluster\n    Properties:\n      Port: 6379\n"))
	require.NoError(t, err)

	assert.True(t, Compare(jsonTmpl, yamlTmpl, Options{}).Empty())
}

func TestParseTemplate_Invalid(t *testing.T) {
	_, err := ParseTemplate([]byte("{not: [valid"))
	assert.Error(t, err)
}

func buildVariant(t *testing.T, v stack.Variant) *plan.Plan {
	t.Helper()
	profile := stack.DefaultProfile(v)
	if v == stack.VariantRegional {
		profile.AmiRegionMap = map[string]string{"us-east-1": "ami-0123456789abcdef0"}
	}
	p, err := stack.Build(stack.Options{Profile: profile, TemplateVersion: "test"})
	require.NoError(t, err)
	return p
}

func TestCompareFiles_Variants(t *testing.T) {
	dir := t.TempDir()
	cdnFile := filepath.Join(dir, "cdn.json")
	regionalFile := filepath.Join(dir, "regional.yaml")

	cdnData, err := buildVariant(t, stack.VariantCDN).JSON()
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(cdnFile, cdnData, 0o644))
	regionalData, err := buildVariant(t, stack.VariantRegional).YAML()
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(regionalFile, regionalData, 0o644))

	result, err := CompareFiles(cdnFile, regionalFile, Options{})
	require.NoError(t, err)

	assert.Contains(t, result.Diff.Removed, wetwire.DiffEntry{
		Section: SectionResources, Resource: stack.DistributionID, Type: "AWS::CloudFront::Distribution",
	})
	assert.Contains(t, result.Diff.Removed, wetwire.DiffEntry{
		Section: SectionParameters, Resource: stack.PriceClassParameter, Type: "String",
	})

	var launchTemplate *wetwire.DiffEntry
	for i, e := range result.Diff.Modified {
		if e.Resource == "AsgLaunchTemplate" {
			launchTemplate = &result.Diff.Modified[i]
		}
	}
	require.NotNil(t, launchTemplate, "image and volume size differ between variants")
	assert.Contains(t, launchTemplate.Changes, "LaunchTemplateData.ImageId modified")

	same, err := CompareFiles(cdnFile, cdnFile, Options{})
	require.NoError(t, err)
	assert.True(t, same.Empty())
}

func TestCompareFiles_Missing(t *testing.T) {
	_, err := CompareFiles(filepath.Join(t.TempDir(), "nope.json"), "other.json", Options{})
	assert.ErrorContains(t, err, "failed to load")
}
