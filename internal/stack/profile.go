package stack

import (
	"errors"
	"fmt"
	"regexp"
	"slices"

	"go.uber.org/multierr"

	"github.com/lex00/wetwire-peertube-go/patterns"
)

// Variant selects one of the two template revisions.
type Variant string

const (
	// VariantCDN fronts the assets bucket with CloudFront and runs a single Graviton AMI.
	VariantCDN Variant = "cdn"
	// VariantRegional has no CDN and looks the AMI up per region.
	VariantRegional Variant = "regional"
)

// AmiID is the PeerTube image used by the cdn variant.
const AmiID = "ami-0fb6c6f280aca48dc"

// AmiMappingName is the Mappings table of the regional variant.
const AmiMappingName = "AWSAMIRegionMap"

var amiPattern = regexp.MustCompile(`^ami-[0-9a-f]{8,17}$`)

// ParseVariant parses a variant name.
func ParseVariant(s string) (Variant, error) {
	switch v := Variant(s); v {
	case VariantCDN, VariantRegional:
		return v, nil
	default:
		return "", fmt.Errorf("unknown variant %q (want %q or %q)", s, VariantCDN, VariantRegional)
	}
}

// Profile holds the build-time choices of a variant.
type Profile struct {
	Variant Variant `yaml:"variant"`
	// AmiID is the single image of the cdn variant.
	AmiID string `yaml:"ami_id,omitempty"`
	// AmiRegionMap maps regions to images for the regional variant.
	AmiRegionMap    map[string]string `yaml:"ami_region_map,omitempty"`
	InstanceType    string            `yaml:"instance_type"`
	UseGraviton     bool              `yaml:"use_graviton"`
	RootVolumeSize  int               `yaml:"root_volume_size"`
	UseDataVolume   bool              `yaml:"use_data_volume"`
	HealthCheckPath string            `yaml:"health_check_path"`
}

// DefaultProfile returns the defaults of a variant. The regional variant has
// no built-in AMI map; it must come from configuration.
func DefaultProfile(v Variant) Profile {
	switch v {
	case VariantRegional:
		return Profile{
			Variant:         VariantRegional,
			InstanceType:    "t3.large",
			UseGraviton:     false,
			RootVolumeSize:  50,
			UseDataVolume:   true,
			HealthCheckPath: "/elb-check",
		}
	default:
		return Profile{
			Variant:         VariantCDN,
			AmiID:           AmiID,
			InstanceType:    "c7g.medium",
			UseGraviton:     true,
			RootVolumeSize:  100,
			UseDataVolume:   true,
			HealthCheckPath: "/elb-check",
		}
	}
}

// CDN reports whether the variant includes the CloudFront distribution.
func (p Profile) CDN() bool {
	return p.Variant == VariantCDN
}

// Validate checks the profile for consistency.
func (p Profile) Validate() error {
	var errs []error
	if _, err := ParseVariant(string(p.Variant)); err != nil {
		errs = append(errs, err)
	}
	switch p.Variant {
	case VariantCDN:
		if !amiPattern.MatchString(p.AmiID) {
			errs = append(errs, fmt.Errorf("ami_id %q is not an AMI ID", p.AmiID))
		}
	case VariantRegional:
		if len(p.AmiRegionMap) == 0 {
			errs = append(errs, errors.New("regional variant requires ami_region_map"))
		}
		for region, ami := range p.AmiRegionMap {
			if !amiPattern.MatchString(ami) {
				errs = append(errs, fmt.Errorf("ami_region_map[%s]: %q is not an AMI ID", region, ami))
			}
		}
	}
	allowed := patterns.X86InstanceTypes
	if p.UseGraviton {
		allowed = patterns.GravitonInstanceTypes
	}
	if !slices.Contains(allowed, any(p.InstanceType)) {
		errs = append(errs, fmt.Errorf("instance_type %q does not match use_graviton=%t", p.InstanceType, p.UseGraviton))
	}
	if p.RootVolumeSize < 8 {
		errs = append(errs, fmt.Errorf("root_volume_size %d is below 8 GiB", p.RootVolumeSize))
	}
	return multierr.Combine(errs...)
}
