// Package elasticache provides CloudFormation resource types for AWS::ElastiCache.
package elasticache

// SubnetGroup represents an AWS::ElastiCache::SubnetGroup resource.
type SubnetGroup struct {
	Description any   `json:"Description,omitempty"`
	SubnetIds   []any `json:"SubnetIds,omitempty"`
}

// ResourceType returns the CloudFormation resource type.
func (r SubnetGroup) ResourceType() string { return "AWS::ElastiCache::SubnetGroup" }

// CacheCluster represents an AWS::ElastiCache::CacheCluster resource.
// See: https://docs.aws.amazon.com/AWSCloudFormation/latest/UserGuide/aws-resource-elasticache-cachecluster.html
type CacheCluster struct {
	AutoMinorVersionUpgrade any   `json:"AutoMinorVersionUpgrade,omitempty"`
	CacheNodeType           any   `json:"CacheNodeType,omitempty"`
	CacheSubnetGroupName    any   `json:"CacheSubnetGroupName,omitempty"`
	Engine                  any   `json:"Engine,omitempty"`
	EngineVersion           any   `json:"EngineVersion,omitempty"`
	NumCacheNodes           any   `json:"NumCacheNodes,omitempty"`
	Port                    any   `json:"Port,omitempty"`
	VpcSecurityGroupIds     []any `json:"VpcSecurityGroupIds,omitempty"`
	Tags                    []any `json:"Tags,omitempty"`
}

// ResourceType returns the CloudFormation resource type.
func (r CacheCluster) ResourceType() string { return "AWS::ElastiCache::CacheCluster" }
