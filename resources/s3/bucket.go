// Package s3 provides CloudFormation resource types for AWS::S3.
package s3

// Bucket represents an AWS::S3::Bucket resource.
// See: https://docs.aws.amazon.com/AWSCloudFormation/latest/UserGuide/aws-resource-s3-bucket.html
type Bucket struct {
	BucketEncryption               *Bucket_BucketEncryption               `json:"BucketEncryption,omitempty"`
	BucketName                     any                                    `json:"BucketName,omitempty"`
	CorsConfiguration              *Bucket_CorsConfiguration              `json:"CorsConfiguration,omitempty"`
	OwnershipControls              *Bucket_OwnershipControls              `json:"OwnershipControls,omitempty"`
	PublicAccessBlockConfiguration *Bucket_PublicAccessBlockConfiguration `json:"PublicAccessBlockConfiguration,omitempty"`
	VersioningConfiguration        *Bucket_VersioningConfiguration        `json:"VersioningConfiguration,omitempty"`
	Tags                           []any                                  `json:"Tags,omitempty"`
}

// ResourceType returns the CloudFormation resource type.
func (r Bucket) ResourceType() string { return "AWS::S3::Bucket" }

// Bucket_BucketEncryption configures default encryption.
type Bucket_BucketEncryption struct {
	ServerSideEncryptionConfiguration []any `json:"ServerSideEncryptionConfiguration,omitempty"`
}

// Bucket_ServerSideEncryptionRule is a single default encryption rule.
type Bucket_ServerSideEncryptionRule struct {
	ServerSideEncryptionByDefault *Bucket_ServerSideEncryptionByDefault `json:"ServerSideEncryptionByDefault,omitempty"`
}

// Bucket_ServerSideEncryptionByDefault selects the encryption algorithm.
type Bucket_ServerSideEncryptionByDefault struct {
	SSEAlgorithm any `json:"SSEAlgorithm,omitempty"`
}

// Bucket_CorsConfiguration holds the CORS rules of a bucket.
type Bucket_CorsConfiguration struct {
	CorsRules []any `json:"CorsRules,omitempty"`
}

// Bucket_CorsRule is a single CORS rule.
type Bucket_CorsRule struct {
	AllowedHeaders []any `json:"AllowedHeaders,omitempty"`
	AllowedMethods []any `json:"AllowedMethods,omitempty"`
	AllowedOrigins []any `json:"AllowedOrigins,omitempty"`
	ExposedHeaders []any `json:"ExposedHeaders,omitempty"`
	MaxAge         any   `json:"MaxAge,omitempty"`
}

// Bucket_OwnershipControls configures object ownership.
type Bucket_OwnershipControls struct {
	Rules []any `json:"Rules,omitempty"`
}

// Bucket_OwnershipControlsRule is a single object ownership rule.
type Bucket_OwnershipControlsRule struct {
	ObjectOwnership any `json:"ObjectOwnership,omitempty"`
}

// Bucket_PublicAccessBlockConfiguration configures the public access block.
type Bucket_PublicAccessBlockConfiguration struct {
	BlockPublicAcls       any `json:"BlockPublicAcls,omitempty"`
	BlockPublicPolicy     any `json:"BlockPublicPolicy,omitempty"`
	IgnorePublicAcls      any `json:"IgnorePublicAcls,omitempty"`
	RestrictPublicBuckets any `json:"RestrictPublicBuckets,omitempty"`
}

// Bucket_VersioningConfiguration enables versioning.
type Bucket_VersioningConfiguration struct {
	Status any `json:"Status,omitempty"`
}
