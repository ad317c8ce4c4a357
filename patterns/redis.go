package patterns

import (
	wetwire "github.com/lex00/wetwire-peertube-go"
	"github.com/lex00/wetwire-peertube-go/internal/plan"
	. "github.com/lex00/wetwire-peertube-go/intrinsics"
	"github.com/lex00/wetwire-peertube-go/resources/ec2"
	"github.com/lex00/wetwire-peertube-go/resources/elasticache"
)

// RedisPort is the port the cache cluster listens on.
const RedisPort = 6379

// ElasticacheRedis is a single-node Redis cluster in the private subnets.
type ElasticacheRedis struct {
	groups

	sg      plan.Handle
	cluster plan.Handle
}

// NewElasticacheRedis declares the Redis construct under the given prefix, e.g. "Redis".
func NewElasticacheRedis(b *plan.Builder, prefix string, vpc *Vpc) *ElasticacheRedis {
	r := &ElasticacheRedis{}
	nodeType := b.Parameter(prefix+"CacheNodeType", wetwire.Parameter{
		AllowedValues: []any{
			"cache.t3.micro", "cache.t3.small", "cache.t3.medium",
			"cache.t4g.micro", "cache.t4g.small", "cache.t4g.medium",
			"cache.m6g.large", "cache.m6g.xlarge", "cache.r6g.large", "cache.r6g.xlarge",
		},
		Default:     "cache.t3.micro",
		Description: "Required: Instance type for the Redis cache node.",
	})

	r.sg = b.Resource(prefix+"Sg", ec2.SecurityGroup{
		GroupDescription: Sub{String: "${AWS::StackName}/redis"},
		SecurityGroupEgress: Any(ec2.SecurityGroup_Rule{
			CidrIp:      "0.0.0.0/0",
			Description: "all IPv4 egress traffic allowed",
			IpProtocol:  "-1",
		}),
		VpcId: vpc.VpcID(),
		Tags:  Any(nameTag("redis")),
	})
	subnets := b.Resource(prefix+"SubnetGroup", elasticache.SubnetGroup{
		Description: Sub{String: "${AWS::StackName}/redis"},
		SubnetIds:   vpc.PrivateSubnetIDs(),
	})
	r.cluster = b.Resource(prefix+"Cluster", elasticache.CacheCluster{
		AutoMinorVersionUpgrade: true,
		CacheNodeType:           nodeType.Ref(),
		CacheSubnetGroupName:    subnets.Ref(),
		Engine:                  "redis",
		NumCacheNodes:           1,
		Port:                    RedisPort,
		VpcSecurityGroupIds:     Any(r.sg.Att("GroupId")),
	})

	r.groups = groups{
		label:  "Redis",
		params: []string{nodeType.ID()},
		labels: map[string]string{nodeType.ID(): "Redis Cache Node Type"},
	}
	return r
}

// SecurityGroupID implements IngressTarget.
func (r *ElasticacheRedis) SecurityGroupID() plan.Handle { return r.sg }

// IngressPort implements IngressTarget.
func (r *ElasticacheRedis) IngressPort() int { return RedisPort }

// Endpoint returns the address of the cache node.
func (r *ElasticacheRedis) Endpoint() GetAtt {
	return r.cluster.Att("RedisEndpoint.Address")
}
