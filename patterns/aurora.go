package patterns

import (
	wetwire "github.com/lex00/wetwire-peertube-go"
	"github.com/lex00/wetwire-peertube-go/internal/plan"
	. "github.com/lex00/wetwire-peertube-go/intrinsics"
	"github.com/lex00/wetwire-peertube-go/resources/ec2"
	"github.com/lex00/wetwire-peertube-go/resources/rds"
)

// PostgresPort is the port the database cluster listens on.
const PostgresPort = 5432

// AuroraProps configures the Aurora Postgres construct.
type AuroraProps struct {
	DatabaseName string
	DbSecret     *DbSecret
	Vpc          *Vpc
}

// AuroraPostgresql is an Aurora Postgres cluster with one primary instance,
// optionally restored from a snapshot.
type AuroraPostgresql struct {
	groups

	sg      plan.Handle
	cluster plan.Handle
	primary plan.Handle

	// SnapshotCondition holds when the cluster is restored from a snapshot.
	SnapshotCondition string
}

// NewAuroraPostgresql declares the database construct under the given prefix, e.g. "Db".
func NewAuroraPostgresql(b *plan.Builder, prefix string, props AuroraProps) *AuroraPostgresql {
	a := &AuroraPostgresql{}
	snapshot := b.Parameter(prefix+"SnapshotIdentifier", wetwire.Parameter{
		Default:     "",
		Description: "Optional: RDS snapshot ARN from which to restore. If specified, manually edit the secret values to specify the snapshot credentials for the application. WARNING: Changing this value will re-provision the database.",
	})
	class := b.Parameter(prefix+"InstanceClass", wetwire.Parameter{
		AllowedValues: []any{
			"db.r6g.large", "db.r6g.xlarge", "db.r6g.2xlarge",
			"db.r5.large", "db.r5.xlarge", "db.r5.2xlarge",
			"db.t4g.medium", "db.t3.medium",
		},
		Default:     "db.t4g.medium",
		Description: "Required: The class profile for memory and compute capacity for the database instance.",
	})
	minRetention, maxRetention := 1.0, 35.0
	retention := b.Parameter(prefix+"BackupRetentionPeriod", wetwire.Parameter{
		Type:        "Number",
		Default:     7,
		MinValue:    &minRetention,
		MaxValue:    &maxRetention,
		Description: "Required: The number of days to retain automated db backups.",
	})
	a.SnapshotCondition = notBlank(b, prefix+"SnapshotIdentifierExistsCondition", snapshot.ID())
	onSnapshot := func(v any) If { return IfCondition(a.SnapshotCondition, AWS_NO_VALUE, v) }

	a.sg = b.Resource(prefix+"Sg", ec2.SecurityGroup{
		GroupDescription: Sub{String: "${AWS::StackName}/db"},
		SecurityGroupEgress: Any(ec2.SecurityGroup_Rule{
			CidrIp:      "0.0.0.0/0",
			Description: "all IPv4 egress traffic allowed",
			IpProtocol:  "-1",
		}),
		VpcId: props.Vpc.VpcID(),
		Tags:  Any(nameTag("db")),
	})
	subnets := b.Resource(prefix+"SubnetGroup", rds.DBSubnetGroup{
		DBSubnetGroupDescription: "MultiAZ subnet group for the database",
		SubnetIds:                props.Vpc.PrivateSubnetIDs(),
	})
	params := b.Resource(prefix+"ClusterParameterGroup", rds.DBClusterParameterGroup{
		Description: Sub{String: "${AWS::StackName} database cluster parameter group"},
		Family:      "aurora-postgresql15",
		Parameters:  map[string]any{"client_encoding": "UTF8"},
	})
	a.cluster = b.Resource(prefix+"Cluster", rds.DBCluster{
		BackupRetentionPeriod:       retention.Ref(),
		DBClusterParameterGroupName: params.Ref(),
		DBSubnetGroupName:           subnets.Ref(),
		DatabaseName:                onSnapshot(props.DatabaseName),
		Engine:                      "aurora-postgresql",
		EngineVersion:               "15.4",
		MasterUserPassword:          onSnapshot(ResolveSecret(props.DbSecret.SecretArn(), "password")),
		MasterUsername:              onSnapshot(ResolveSecret(props.DbSecret.SecretArn(), "username")),
		Port:                        PostgresPort,
		SnapshotIdentifier:          IfCondition(a.SnapshotCondition, snapshot.Ref(), AWS_NO_VALUE),
		StorageEncrypted:            true,
		VpcSecurityGroupIds:         Any(a.sg.Att("GroupId")),
	}, plan.Snapshot())
	a.primary = b.Resource(prefix+"PrimaryInstance", rds.DBInstance{
		DBClusterIdentifier: a.cluster.Ref(),
		DBInstanceClass:     class.Ref(),
		DBSubnetGroupName:   subnets.Ref(),
		Engine:              "aurora-postgresql",
		PubliclyAccessible:  false,
	})

	a.groups = groups{
		label:  "Database",
		params: []string{class.ID(), retention.ID(), snapshot.ID()},
		labels: map[string]string{
			class.ID():     "Database Instance Class",
			retention.ID(): "Database Backup Retention Period",
			snapshot.ID():  "Database Snapshot Identifier",
		},
	}
	return a
}

// SecurityGroupID implements IngressTarget.
func (a *AuroraPostgresql) SecurityGroupID() plan.Handle { return a.sg }

// IngressPort implements IngressTarget.
func (a *AuroraPostgresql) IngressPort() int { return PostgresPort }

// PrimaryInstance returns the cluster's primary instance.
func (a *AuroraPostgresql) PrimaryInstance() plan.Handle { return a.primary }

// Endpoint returns the cluster writer endpoint address.
func (a *AuroraPostgresql) Endpoint() GetAtt {
	return a.cluster.Att("Endpoint.Address")
}
