package wetwire_peertube

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestTemplate_JSON(t *testing.T) {
	template := Template{
		AWSTemplateFormatVersion: "2010-09-09",
		Description:              "Test template",
		Resources: map[string]ResourceDef{
			"AssetsBucket": {
				Type:           "AWS::S3::Bucket",
				Condition:      "AssetsBucketNameNotProvided",
				DeletionPolicy: "Retain",
				Properties: map[string]any{
					"OwnershipControls": map[string]any{"Rules": []any{map[string]any{"ObjectOwnership": "ObjectWriter"}}},
				},
			},
		},
		Parameters: map[string]Parameter{
			"CloudFrontPriceClass": {
				Type:          "String",
				Default:       "PriceClass_All",
				AllowedValues: []any{"PriceClass_All", "PriceClass_200", "PriceClass_100"},
			},
		},
		Outputs: map[string]Output{
			"FirstUseInstructions": {
				Description: "Instructions for getting started",
				Value:       map[string]any{"Fn::Sub": "${AWS::StackName}/instance/credentials"},
			},
		},
	}

	data, err := json.Marshal(template)
	require.NoError(t, err)

	var parsed map[string]any
	require.NoError(t, json.Unmarshal(data, &parsed))

	assert.Equal(t, "2010-09-09", parsed["AWSTemplateFormatVersion"])
	assert.NotContains(t, parsed, "Mappings")
	assert.NotContains(t, parsed, "Conditions")

	resources := parsed["Resources"].(map[string]any)
	bucket := resources["AssetsBucket"].(map[string]any)
	assert.Equal(t, "AWS::S3::Bucket", bucket["Type"])
	assert.Equal(t, "AssetsBucketNameNotProvided", bucket["Condition"])
	assert.Equal(t, "Retain", bucket["DeletionPolicy"])
	assert.NotContains(t, bucket, "DependsOn")
	assert.NotContains(t, bucket, "UpdateReplacePolicy")

	params := parsed["Parameters"].(map[string]any)
	priceClass := params["CloudFrontPriceClass"].(map[string]any)
	assert.Len(t, priceClass["AllowedValues"], 3)
	assert.NotContains(t, priceClass, "NoEcho")
}

func TestTemplate_YAML(t *testing.T) {
	template := Template{
		AWSTemplateFormatVersion: "2010-09-09",
		Resources: map[string]ResourceDef{
			"AsgAutoScalingGroup": {
				Type:      "AWS::AutoScaling::AutoScalingGroup",
				DependsOn: []string{"DbPrimaryInstance"},
			},
		},
	}

	data, err := yaml.Marshal(template)
	require.NoError(t, err)

	var parsed map[string]any
	require.NoError(t, yaml.Unmarshal(data, &parsed))

	resources := parsed["Resources"].(map[string]any)
	asg := resources["AsgAutoScalingGroup"].(map[string]any)
	assert.Equal(t, []any{"DbPrimaryInstance"}, asg["DependsOn"])
	assert.NotContains(t, parsed, "Outputs")
}

func TestOutput_Export(t *testing.T) {
	output := Output{
		Value:  map[string]any{"Ref": "AssetsBucket"},
		Export: &Export{Name: "peertube-assets"},
	}

	data, err := json.Marshal(output)
	require.NoError(t, err)
	assert.JSONEq(t, `{"Value":{"Ref":"AssetsBucket"},"Export":{"Name":"peertube-assets"}}`, string(data))
}
