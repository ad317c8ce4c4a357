package stack

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseVariant(t *testing.T) {
	v, err := ParseVariant("cdn")
	require.NoError(t, err)
	assert.Equal(t, VariantCDN, v)

	v, err = ParseVariant("regional")
	require.NoError(t, err)
	assert.Equal(t, VariantRegional, v)

	_, err = ParseVariant("edge")
	assert.Error(t, err)
}

func TestDefaultProfile(t *testing.T) {
	cdn := DefaultProfile(VariantCDN)
	assert.Equal(t, AmiID, cdn.AmiID)
	assert.Equal(t, "c7g.medium", cdn.InstanceType)
	assert.True(t, cdn.UseGraviton)
	assert.Equal(t, 100, cdn.RootVolumeSize)
	assert.True(t, cdn.UseDataVolume)
	assert.Equal(t, "/elb-check", cdn.HealthCheckPath)
	assert.True(t, cdn.CDN())
	assert.NoError(t, cdn.Validate())

	regional := DefaultProfile(VariantRegional)
	assert.Equal(t, "t3.large", regional.InstanceType)
	assert.False(t, regional.UseGraviton)
	assert.Equal(t, 50, regional.RootVolumeSize)
	assert.False(t, regional.CDN())
}

func TestProfile_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Profile)
		variant Variant
		wantErr string
	}{
		{"valid regional", func(p *Profile) { p.AmiRegionMap = map[string]string{"us-east-1": "ami-0123456789abcdef0"} }, VariantRegional, ""},
		{"missing map", func(p *Profile) {}, VariantRegional, "requires ami_region_map"},
		{"bad map entry", func(p *Profile) { p.AmiRegionMap = map[string]string{"us-east-1": "image"} }, VariantRegional, "ami_region_map[us-east-1]"},
		{"bad ami", func(p *Profile) { p.AmiID = "nope" }, VariantCDN, "is not an AMI ID"},
		{"arch mismatch", func(p *Profile) { p.InstanceType = "t3.large" }, VariantCDN, "does not match use_graviton=true"},
		{"tiny root", func(p *Profile) { p.RootVolumeSize = 4 }, VariantCDN, "below 8 GiB"},
		{"unknown variant", func(p *Profile) { p.Variant = "edge" }, VariantCDN, "unknown variant"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := DefaultProfile(tt.variant)
			tt.mutate(&p)
			err := p.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
