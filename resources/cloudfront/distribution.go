// Package cloudfront provides CloudFormation resource types for AWS::CloudFront.
package cloudfront

// Distribution represents an AWS::CloudFront::Distribution resource.
// See: https://docs.aws.amazon.com/AWSCloudFormation/latest/UserGuide/aws-resource-cloudfront-distribution.html
type Distribution struct {
	DistributionConfig *Distribution_DistributionConfig `json:"DistributionConfig,omitempty"`
	Tags               []any                            `json:"Tags,omitempty"`
}

// ResourceType returns the CloudFormation resource type.
func (r Distribution) ResourceType() string { return "AWS::CloudFront::Distribution" }

// Distribution_DistributionConfig is the distribution configuration.
type Distribution_DistributionConfig struct {
	Comment              any                                `json:"Comment,omitempty"`
	DefaultCacheBehavior *Distribution_DefaultCacheBehavior `json:"DefaultCacheBehavior,omitempty"`
	Enabled              any                                `json:"Enabled,omitempty"`
	Origins              []any                              `json:"Origins,omitempty"`
	PriceClass           any                                `json:"PriceClass,omitempty"`
}

// Distribution_DefaultCacheBehavior configures the default cache behavior.
type Distribution_DefaultCacheBehavior struct {
	AllowedMethods       []any                         `json:"AllowedMethods,omitempty"`
	Compress             any                           `json:"Compress,omitempty"`
	DefaultTTL           any                           `json:"DefaultTTL,omitempty"`
	ForwardedValues      *Distribution_ForwardedValues `json:"ForwardedValues,omitempty"`
	MaxTTL               any                           `json:"MaxTTL,omitempty"`
	MinTTL               any                           `json:"MinTTL,omitempty"`
	TargetOriginId       any                           `json:"TargetOriginId,omitempty"`
	ViewerProtocolPolicy any                           `json:"ViewerProtocolPolicy,omitempty"`
}

// Distribution_ForwardedValues selects what is forwarded to the origin.
type Distribution_ForwardedValues struct {
	Cookies     *Distribution_Cookies `json:"Cookies,omitempty"`
	Headers     []any                 `json:"Headers,omitempty"`
	QueryString any                   `json:"QueryString,omitempty"`
}

// Distribution_Cookies selects which cookies are forwarded.
type Distribution_Cookies struct {
	Forward any `json:"Forward,omitempty"`
}

// Distribution_Origin is an origin of a distribution.
type Distribution_Origin struct {
	DomainName     any                          `json:"DomainName,omitempty"`
	Id             any                          `json:"Id,omitempty"`
	S3OriginConfig *Distribution_S3OriginConfig `json:"S3OriginConfig,omitempty"`
}

// Distribution_S3OriginConfig configures an S3 origin.
type Distribution_S3OriginConfig struct {
	OriginAccessIdentity any `json:"OriginAccessIdentity"`
}
