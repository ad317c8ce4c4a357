package resources_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	wetwire "github.com/lex00/wetwire-peertube-go"
	"github.com/lex00/wetwire-peertube-go/resources/autoscaling"
	"github.com/lex00/wetwire-peertube-go/resources/cloudfront"
	"github.com/lex00/wetwire-peertube-go/resources/ec2"
	"github.com/lex00/wetwire-peertube-go/resources/elasticache"
	"github.com/lex00/wetwire-peertube-go/resources/elasticloadbalancingv2"
	"github.com/lex00/wetwire-peertube-go/resources/iam"
	"github.com/lex00/wetwire-peertube-go/resources/lambda"
	"github.com/lex00/wetwire-peertube-go/resources/logs"
	"github.com/lex00/wetwire-peertube-go/resources/rds"
	"github.com/lex00/wetwire-peertube-go/resources/route53"
	"github.com/lex00/wetwire-peertube-go/resources/s3"
	"github.com/lex00/wetwire-peertube-go/resources/secretsmanager"
	"github.com/lex00/wetwire-peertube-go/resources/ses"
)

func TestResourceTypes(t *testing.T) {
	tests := []struct {
		resource wetwire.Resource
		expected string
	}{
		{autoscaling.AutoScalingGroup{}, "AWS::AutoScaling::AutoScalingGroup"},
		{cloudfront.Distribution{}, "AWS::CloudFront::Distribution"},
		{ec2.LaunchTemplate{}, "AWS::EC2::LaunchTemplate"},
		{ec2.Volume{}, "AWS::EC2::Volume"},
		{ec2.VPC{}, "AWS::EC2::VPC"},
		{ec2.NatGateway{}, "AWS::EC2::NatGateway"},
		{ec2.SubnetRouteTableAssociation{}, "AWS::EC2::SubnetRouteTableAssociation"},
		{ec2.SecurityGroupIngress{}, "AWS::EC2::SecurityGroupIngress"},
		{elasticache.CacheCluster{}, "AWS::ElastiCache::CacheCluster"},
		{elasticloadbalancingv2.TargetGroup{}, "AWS::ElasticLoadBalancingV2::TargetGroup"},
		{iam.Role{}, "AWS::IAM::Role"},
		{iam.AccessKey{}, "AWS::IAM::AccessKey"},
		{lambda.Function{}, "AWS::Lambda::Function"},
		{logs.LogGroup{}, "AWS::Logs::LogGroup"},
		{rds.DBClusterParameterGroup{}, "AWS::RDS::DBClusterParameterGroup"},
		{rds.DBCluster{}, "AWS::RDS::DBCluster"},
		{route53.RecordSetGroup{}, "AWS::Route53::RecordSetGroup"},
		{s3.Bucket{}, "AWS::S3::Bucket"},
		{secretsmanager.Secret{}, "AWS::SecretsManager::Secret"},
		{ses.EmailIdentity{}, "AWS::SES::EmailIdentity"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.resource.ResourceType())
		})
	}
}

func TestBucketSerialization(t *testing.T) {
	bucket := s3.Bucket{
		BucketName: "peertube-assets",
		OwnershipControls: &s3.Bucket_OwnershipControls{
			Rules: []any{s3.Bucket_OwnershipControlsRule{ObjectOwnership: "ObjectWriter"}},
		},
	}

	data, err := json.Marshal(bucket)
	require.NoError(t, err)

	var result map[string]any
	require.NoError(t, json.Unmarshal(data, &result))
	assert.Equal(t, "peertube-assets", result["BucketName"])
	assert.NotContains(t, result, "CorsConfiguration")
	assert.NotContains(t, result, "Tags")
}
