package intrinsics

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRefTo_MarshalJSON(t *testing.T) {
	data, err := json.Marshal(RefTo("AssetsBucket"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"Ref": "AssetsBucket"}`, string(data))
}

func TestIsBlank_MarshalJSON(t *testing.T) {
	data, err := json.Marshal(IsBlank("VpcId"))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"Fn::Equals"`)
	assert.Contains(t, string(data), `"VpcId"`)
}

func TestIsNotBlank_MarshalJSON(t *testing.T) {
	data, err := json.Marshal(IsNotBlank("DbSecretArn"))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"Fn::Not"`)
	assert.Contains(t, string(data), `"Fn::Equals"`)
}

func TestIfCondition_MarshalJSON(t *testing.T) {
	data, err := json.Marshal(IfCondition("VpcGivenCondition", RefTo("VpcId"), RefTo("Vpc")))
	require.NoError(t, err)
	assert.JSONEq(t, `{"Fn::If": ["VpcGivenCondition", {"Ref": "VpcId"}, {"Ref": "Vpc"}]}`, string(data))
}

func TestResolveSecret(t *testing.T) {
	sub := ResolveSecret(RefTo("DbSecret"), "password")
	assert.Equal(t, "{{resolve:secretsmanager:${SecretArn}:SecretString:password}}", sub.String)
	assert.Equal(t, RefTo("DbSecret"), sub.Variables["SecretArn"])

	data, err := json.Marshal(sub)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"Fn::Sub"`)
}

func TestStackScopedArn(t *testing.T) {
	arn := StackScopedArn("secretsmanager", "secret:${AWS::StackName}/instance/credentials-*")
	assert.Equal(t,
		"arn:${AWS::Partition}:secretsmanager:${AWS::Region}:${AWS::AccountId}:secret:${AWS::StackName}/instance/credentials-*",
		arn.String)
}

func TestPseudoParameters(t *testing.T) {
	tests := []struct {
		name     string
		param    Ref
		expected string
	}{
		{"AWS_REGION", AWS_REGION, `{"Ref": "AWS::Region"}`},
		{"AWS_ACCOUNT_ID", AWS_ACCOUNT_ID, `{"Ref": "AWS::AccountId"}`},
		{"AWS_STACK_NAME", AWS_STACK_NAME, `{"Ref": "AWS::StackName"}`},
		{"AWS_PARTITION", AWS_PARTITION, `{"Ref": "AWS::Partition"}`},
		{"AWS_URL_SUFFIX", AWS_URL_SUFFIX, `{"Ref": "AWS::URLSuffix"}`},
		{"AWS_NO_VALUE", AWS_NO_VALUE, `{"Ref": "AWS::NoValue"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := json.Marshal(tt.param)
			require.NoError(t, err)
			assert.JSONEq(t, tt.expected, string(data))
		})
	}
}

func TestAssumeRoleBy(t *testing.T) {
	data, err := json.Marshal(AssumeRoleBy("ec2.amazonaws.com"))
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"Version": "2012-10-17",
		"Statement": [{
			"Effect": "Allow",
			"Principal": {"Service": "ec2.amazonaws.com"},
			"Action": ["sts:AssumeRole"]
		}]
	}`, string(data))
}

func TestServicePrincipal_Multiple(t *testing.T) {
	data, err := json.Marshal(ServicePrincipal{"ec2.amazonaws.com", "lambda.amazonaws.com"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"Service": ["ec2.amazonaws.com", "lambda.amazonaws.com"]}`, string(data))
}

func TestAllow(t *testing.T) {
	stmt := Allow([]any{"secretsmanager:UpdateSecret"}, "arn:aws:secretsmanager:::secret:x")
	assert.Equal(t, "Allow", stmt.Effect)
	assert.Equal(t, []any{"arn:aws:secretsmanager:::secret:x"}, stmt.Resource)
}
