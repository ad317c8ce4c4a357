// Package rds provides CloudFormation resource types for AWS::RDS.
package rds

// DBSubnetGroup represents an AWS::RDS::DBSubnetGroup resource.
type DBSubnetGroup struct {
	DBSubnetGroupDescription any   `json:"DBSubnetGroupDescription,omitempty"`
	SubnetIds                []any `json:"SubnetIds,omitempty"`
	Tags                     []any `json:"Tags,omitempty"`
}

// ResourceType returns the CloudFormation resource type.
func (r DBSubnetGroup) ResourceType() string { return "AWS::RDS::DBSubnetGroup" }

// DBClusterParameterGroup represents an AWS::RDS::DBClusterParameterGroup resource.
type DBClusterParameterGroup struct {
	Description any            `json:"Description,omitempty"`
	Family      any            `json:"Family,omitempty"`
	Parameters  map[string]any `json:"Parameters,omitempty"`
}

// ResourceType returns the CloudFormation resource type.
func (r DBClusterParameterGroup) ResourceType() string {
	return "AWS::RDS::DBClusterParameterGroup"
}

// DBCluster represents an AWS::RDS::DBCluster resource.
// See: https://docs.aws.amazon.com/AWSCloudFormation/latest/UserGuide/aws-resource-rds-dbcluster.html
type DBCluster struct {
	BackupRetentionPeriod       any   `json:"BackupRetentionPeriod,omitempty"`
	DBClusterParameterGroupName any   `json:"DBClusterParameterGroupName,omitempty"`
	DBSubnetGroupName           any   `json:"DBSubnetGroupName,omitempty"`
	DatabaseName                any   `json:"DatabaseName,omitempty"`
	Engine                      any   `json:"Engine,omitempty"`
	EngineVersion               any   `json:"EngineVersion,omitempty"`
	MasterUserPassword          any   `json:"MasterUserPassword,omitempty"`
	MasterUsername              any   `json:"MasterUsername,omitempty"`
	Port                        any   `json:"Port,omitempty"`
	SnapshotIdentifier          any   `json:"SnapshotIdentifier,omitempty"`
	StorageEncrypted            any   `json:"StorageEncrypted,omitempty"`
	VpcSecurityGroupIds         []any `json:"VpcSecurityGroupIds,omitempty"`
	Tags                        []any `json:"Tags,omitempty"`
}

// ResourceType returns the CloudFormation resource type.
func (r DBCluster) ResourceType() string { return "AWS::RDS::DBCluster" }

// DBInstance represents an AWS::RDS::DBInstance resource.
type DBInstance struct {
	DBClusterIdentifier any   `json:"DBClusterIdentifier,omitempty"`
	DBInstanceClass     any   `json:"DBInstanceClass,omitempty"`
	DBSubnetGroupName   any   `json:"DBSubnetGroupName,omitempty"`
	Engine              any   `json:"Engine,omitempty"`
	PubliclyAccessible  any   `json:"PubliclyAccessible,omitempty"`
	Tags                []any `json:"Tags,omitempty"`
}

// ResourceType returns the CloudFormation resource type.
func (r DBInstance) ResourceType() string { return "AWS::RDS::DBInstance" }
