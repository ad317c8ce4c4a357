package patterns

import (
	wetwire "github.com/lex00/wetwire-peertube-go"
	"github.com/lex00/wetwire-peertube-go/internal/plan"
	. "github.com/lex00/wetwire-peertube-go/intrinsics"
	"github.com/lex00/wetwire-peertube-go/resources/iam"
	"github.com/lex00/wetwire-peertube-go/resources/s3"
)

// AssetsBucketProps configures the assets bucket.
type AssetsBucketProps struct {
	// AllowOpenCors allows cross-origin reads and writes from any origin.
	AllowOpenCors bool
	// ObjectOwnership is the S3 object ownership setting, e.g. "ObjectWriter".
	ObjectOwnership string
	// RemovePublicAccessBlock turns off all four public access block settings.
	RemovePublicAccessBlock bool
}

// AssetsBucket is an S3 bucket for user uploaded assets, created unless an
// existing bucket name is passed.
type AssetsBucket struct {
	groups

	name   plan.Handle
	bucket plan.Handle
	policy plan.Handle

	// NotProvidedCondition holds when the bucket is created by the stack.
	NotProvidedCondition string
}

// NewAssetsBucket declares the assets bucket under the given prefix, e.g. "AssetsBucket".
func NewAssetsBucket(b *plan.Builder, prefix string, props AssetsBucketProps) *AssetsBucket {
	a := &AssetsBucket{}
	a.name = b.Parameter(prefix+"Name", wetwire.Parameter{
		Default:     "",
		Description: "Optional: The name of the S3 bucket to use for assets. If empty, a bucket will be created.",
	})
	a.NotProvidedCondition = blank(b, prefix+"NameNotProvidedCondition", a.name.ID())

	bucket := s3.Bucket{
		BucketEncryption: &s3.Bucket_BucketEncryption{
			ServerSideEncryptionConfiguration: Any(s3.Bucket_ServerSideEncryptionRule{
				ServerSideEncryptionByDefault: &s3.Bucket_ServerSideEncryptionByDefault{SSEAlgorithm: "AES256"},
			}),
		},
		PublicAccessBlockConfiguration: &s3.Bucket_PublicAccessBlockConfiguration{
			BlockPublicAcls:       !props.RemovePublicAccessBlock,
			BlockPublicPolicy:     !props.RemovePublicAccessBlock,
			IgnorePublicAcls:      !props.RemovePublicAccessBlock,
			RestrictPublicBuckets: !props.RemovePublicAccessBlock,
		},
		Tags: Any(nameTag("assets")),
	}
	if props.AllowOpenCors {
		bucket.CorsConfiguration = &s3.Bucket_CorsConfiguration{
			CorsRules: Any(s3.Bucket_CorsRule{
				AllowedHeaders: Any("*"),
				AllowedMethods: Any("GET", "HEAD", "PUT", "POST", "DELETE"),
				AllowedOrigins: Any("*"),
				ExposedHeaders: Any("ETag"),
				MaxAge:         3000,
			}),
		}
	}
	if props.ObjectOwnership != "" {
		bucket.OwnershipControls = &s3.Bucket_OwnershipControls{
			Rules: Any(s3.Bucket_OwnershipControlsRule{ObjectOwnership: props.ObjectOwnership}),
		}
	}
	a.bucket = b.Resource(prefix, bucket, plan.WithCondition(a.NotProvidedCondition), plan.Retain())

	a.policy = b.Resource(prefix+"UserPolicy", iam.ManagedPolicy{
		Description: "Read and write access to the assets bucket",
		PolicyDocument: NewPolicyDocument(
			Allow(Any("s3:ListBucket", "s3:GetBucketLocation"), a.Arn()),
			Allow(Any("s3:GetObject", "s3:GetObjectAcl", "s3:PutObject", "s3:PutObjectAcl", "s3:DeleteObject"),
				Join{Delimiter: "", Values: []any{a.Arn(), "/*"}}),
		),
	})

	a.groups = groups{
		label:  "Assets Bucket",
		params: []string{a.name.ID()},
		labels: map[string]string{a.name.ID(): "Assets Bucket Name"},
	}
	return a
}

// BucketName returns the name of the given or created bucket.
func (a *AssetsBucket) BucketName() If {
	return IfCondition(a.NotProvidedCondition, a.bucket.Ref(), a.name.Ref())
}

// Arn returns the ARN of the bucket.
func (a *AssetsBucket) Arn() SubWithMap {
	return SubWithMap{
		String:    "arn:${AWS::Partition}:s3:::${BucketName}",
		Variables: map[string]any{"BucketName": a.BucketName()},
	}
}

// UserPolicy returns the managed policy granting access to the bucket.
func (a *AssetsBucket) UserPolicy() plan.Handle {
	return a.policy
}
