package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lex00/wetwire-peertube-go/internal/stack"
)

func TestLoad_MissingDefault(t *testing.T) {
	t.Chdir(t.TempDir())

	c, err := Load("")
	require.NoError(t, err)

	p, err := c.Profile("")
	require.NoError(t, err)
	assert.Equal(t, stack.DefaultProfile(stack.VariantCDN), p)
}

func TestLoad_MissingExplicit(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorContains(t, err, "reading config")
}

func TestProfile_Overrides(t *testing.T) {
	c, err := Parse([]byte(`
variant: regional
instance_type: t3.xlarge
root_volume_size: 80
use_data_volume: false
ami_region_map:
  us-east-1: ami-0123456789abcdef0
  eu-west-1: ami-0fedcba9876543210
`), ".")
	require.NoError(t, err)

	p, err := c.Profile("")
	require.NoError(t, err)
	assert.Equal(t, stack.VariantRegional, p.Variant)
	assert.Equal(t, "t3.xlarge", p.InstanceType)
	assert.Equal(t, 80, p.RootVolumeSize)
	assert.False(t, p.UseDataVolume)
	assert.False(t, p.UseGraviton)
	assert.Len(t, p.AmiRegionMap, 2)
	assert.Equal(t, "/elb-check", p.HealthCheckPath)
}

func TestProfile_FlagWins(t *testing.T) {
	c, err := Parse([]byte("variant: regional\n"), ".")
	require.NoError(t, err)

	p, err := c.Profile("cdn")
	require.NoError(t, err)
	assert.Equal(t, stack.VariantCDN, p.Variant)
}

func TestProfile_Invalid(t *testing.T) {
	tests := map[string]string{
		"regional without map": "variant: regional\n",
		"unknown variant":      "variant: edge\n",
		"arch mismatch":        "instance_type: t3.large\n",
	}
	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			c, err := Parse([]byte(doc), ".")
			require.NoError(t, err)
			_, err = c.Profile("")
			assert.Error(t, err)
		})
	}
}

func TestParse_Invalid(t *testing.T) {
	_, err := Parse([]byte("variant: [cdn"), ".")
	assert.ErrorContains(t, err, "parsing config")
}

func TestUserData(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "boot.sh"), []byte("#!/bin/bash\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.sh"), []byte("#!/bin/sh\n"), 0o644))
	cfgPath := filepath.Join(dir, "peertube-stack.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("user_data_file: boot.sh\n"), 0o644))

	c, err := Load(cfgPath)
	require.NoError(t, err)

	script, err := c.UserData("")
	require.NoError(t, err)
	assert.Equal(t, "#!/bin/bash\n", script)

	script, err = c.UserData(filepath.Join(dir, "other.sh"))
	require.NoError(t, err)
	assert.Equal(t, "#!/bin/sh\n", script)

	script, err = (&Config{}).UserData("")
	require.NoError(t, err)
	assert.Empty(t, script)
}

func TestReadEnv(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	otherFile := filepath.Join(dir, "other.env")
	require.NoError(t, os.WriteFile(envFile, []byte("TEMPLATE_VERSION=v9\nPEERTUBE_STACK_TEST=kept\n"), 0o644))
	require.NoError(t, os.WriteFile(otherFile, []byte("TEMPLATE_VERSION=v10\nPEERTUBE_STACK_OTHER=x\n"), 0o644))
	t.Setenv("PEERTUBE_STACK_TEST", "preset")
	t.Setenv("TEMPLATE_VERSION", "")
	os.Unsetenv("TEMPLATE_VERSION")

	env, err := ReadEnv(envFile, filepath.Join(dir, "missing.env"), otherFile)
	require.NoError(t, err)
	assert.Equal(t, Env{"TEMPLATE_VERSION": "v9", "PEERTUBE_STACK_TEST": "kept", "PEERTUBE_STACK_OTHER": "x"}, env)

	v, ok := env.LookupEnv("TEMPLATE_VERSION")
	assert.True(t, ok)
	assert.Equal(t, "v9", v)
	v, _ = env.LookupEnv("PEERTUBE_STACK_TEST")
	assert.Equal(t, "preset", v)
	_, ok = env.LookupEnv("PEERTUBE_STACK_MISSING")
	assert.False(t, ok)

	_, present := os.LookupEnv("TEMPLATE_VERSION")
	assert.False(t, present, "process environment is left untouched")

	require.NoError(t, os.WriteFile(envFile, []byte("TEMPLATE_VERSION=v11\n"), 0o644))
	env, err = ReadEnv(envFile)
	require.NoError(t, err)
	v, _ = env.LookupEnv("TEMPLATE_VERSION")
	assert.Equal(t, "v11", v)
}
