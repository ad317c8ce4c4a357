package cloudformation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCustomResource_ResourceType(t *testing.T) {
	assert.Equal(t, "Custom::GenerateSmtpPassword", CustomResource{Name: "GenerateSmtpPassword"}.ResourceType())
	assert.Equal(t, "Custom::GenerateSmtpPassword", CustomResource{Name: "Custom::GenerateSmtpPassword"}.ResourceType())
}

func TestCustomResource_Properties(t *testing.T) {
	r := CustomResource{
		Name:         "GenerateSmtpPassword",
		ServiceToken: map[string]any{"Fn::GetAtt": []any{"SesFunction", "Arn"}},
		Properties:   map[string]any{"AccessKeyId": map[string]any{"Ref": "SesAccessKey"}, "Port": 587},
	}

	props, err := r.CloudFormationProperties()
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"Fn::GetAtt": []any{"SesFunction", "Arn"}}, props["ServiceToken"])
	assert.Equal(t, map[string]any{"Ref": "SesAccessKey"}, props["AccessKeyId"])
	assert.Equal(t, float64(587), props["Port"])
}

func TestCustomResource_Errors(t *testing.T) {
	_, err := CustomResource{Name: "X"}.CloudFormationProperties()
	assert.ErrorContains(t, err, "ServiceToken is required")

	_, err = CustomResource{
		Name:         "X",
		ServiceToken: "arn",
		Properties:   map[string]any{"ServiceToken": "other"},
	}.CloudFormationProperties()
	assert.ErrorContains(t, err, "must not be set")
}
