package plan

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSubVariables(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"plain", nil},
		{"${AWS::StackName}/instance", []string{"AWS::StackName"}},
		{"${Bucket.Arn}/*", []string{"Bucket"}},
		{"${!Literal} ${Hostname}", []string{"Hostname"}},
		{"${Unterminated", nil},
		{"${}", nil},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, subVariables(tt.in))
		})
	}
}

func TestReferences(t *testing.T) {
	v := map[string]any{
		"A": map[string]any{"Ref": "Vpc"},
		"B": []any{map[string]any{"Fn::GetAtt": []any{"Db", "Endpoint.Address"}}},
		"C": map[string]any{"Fn::GetAtt": "Alb.DNSName"},
		"D": map[string]any{"Ref": "AWS::Region"},
		"E": map[string]any{"Fn::Sub": []any{"${X}${Local}", map[string]any{"Local": map[string]any{"Ref": "Secret"}}}},
	}
	refs := make(map[string]bool)
	references(v, refs)
	assert.Equal(t, map[string]bool{"Vpc": true, "Db": true, "Alb": true, "X": true, "Secret": true}, refs)
}

func TestConditionReferences(t *testing.T) {
	v := map[string]any{
		"Fn::And": []any{
			map[string]any{"Condition": "VpcGiven"},
			map[string]any{"Fn::If": []any{"UseCdn", "a", "b"}},
		},
		"Policy": map[string]any{"Condition": map[string]any{"StringEquals": "x"}},
	}
	names := make(map[string]bool)
	conditionReferences(v, names)
	assert.Equal(t, map[string]bool{"VpcGiven": true, "UseCdn": true}, names)
}

func TestReferences_Exported(t *testing.T) {
	refs, err := References(map[string]any{
		"Fn::Sub": []any{"${BucketName}.s3.${AWS::Region}.amazonaws.com", map[string]any{
			"BucketName": map[string]any{"Fn::If": []any{"Cond", map[string]any{"Ref": "AssetsBucket"}, map[string]any{"Ref": "AssetsBucketName"}}},
		}},
	})
	assert.NoError(t, err)
	assert.Equal(t, []string{"AssetsBucket", "AssetsBucketName"}, refs)
}
