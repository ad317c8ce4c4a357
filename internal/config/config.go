// Package config loads the peertube-stack configuration file and .env files.
//
// A configuration file selects the variant and overrides its profile:
//
//	variant: regional
//	instance_type: t3.xlarge
//	ami_region_map:
//	  us-east-1: ami-0123456789abcdef0
//	  eu-west-1: ami-0fedcba9876543210
//	user_data_file: ./user_data.sh
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/lex00/wetwire-peertube-go/internal/stack"
)

// DefaultFile is the configuration file read when none is given and it exists.
const DefaultFile = "peertube-stack.yaml"

// DefaultEnvFile is the dotenv file read before version resolution.
const DefaultEnvFile = ".env"

// Config is the on-disk configuration. Unset fields keep the variant defaults.
type Config struct {
	Variant         string            `yaml:"variant"`
	AmiID           string            `yaml:"ami_id"`
	AmiRegionMap    map[string]string `yaml:"ami_region_map"`
	InstanceType    string            `yaml:"instance_type"`
	UseGraviton     *bool             `yaml:"use_graviton"`
	RootVolumeSize  int               `yaml:"root_volume_size"`
	UseDataVolume   *bool             `yaml:"use_data_volume"`
	HealthCheckPath string            `yaml:"health_check_path"`
	// UserDataFile replaces the embedded boot script. Relative paths are
	// resolved against the directory of the configuration file.
	UserDataFile string `yaml:"user_data_file"`

	dir string
}

// Load reads a configuration file. An empty path reads DefaultFile when it
// exists and otherwise returns an empty configuration.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}
	return Parse(data, filepath.Dir(path))
}

// Parse decodes a configuration document. dir anchors relative paths.
func Parse(data []byte, dir string) (*Config, error) {
	var c Config
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	c.dir = dir
	return &c, nil
}

// Profile returns the profile of the selected variant with the configuration
// overrides applied. A non-empty variant argument takes precedence over the file.
func (c *Config) Profile(variant string) (stack.Profile, error) {
	if variant == "" {
		variant = c.Variant
	}
	if variant == "" {
		variant = string(stack.VariantCDN)
	}
	v, err := stack.ParseVariant(variant)
	if err != nil {
		return stack.Profile{}, err
	}

	p := stack.DefaultProfile(v)
	if c.AmiID != "" {
		p.AmiID = c.AmiID
	}
	if len(c.AmiRegionMap) > 0 {
		p.AmiRegionMap = c.AmiRegionMap
	}
	if c.InstanceType != "" {
		p.InstanceType = c.InstanceType
	}
	if c.UseGraviton != nil {
		p.UseGraviton = *c.UseGraviton
	}
	if c.RootVolumeSize != 0 {
		p.RootVolumeSize = c.RootVolumeSize
	}
	if c.UseDataVolume != nil {
		p.UseDataVolume = *c.UseDataVolume
	}
	if c.HealthCheckPath != "" {
		p.HealthCheckPath = c.HealthCheckPath
	}

	if err := p.Validate(); err != nil {
		return stack.Profile{}, fmt.Errorf("profile %s: %w", v, err)
	}
	return p, nil
}

// UserData returns the configured boot script, or "" for the embedded one.
// A non-empty override path takes precedence over the file setting.
func (c *Config) UserData(override string) (string, error) {
	path := override
	if path == "" && c.UserDataFile != "" {
		path = c.UserDataFile
		if !filepath.IsAbs(path) {
			path = filepath.Join(c.dir, path)
		}
	}
	if path == "" {
		return "", nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading user data: %w", err)
	}
	return string(data), nil
}

// Env holds dotenv values. They never override the process environment.
type Env map[string]string

// ReadEnv reads dotenv files without modifying the process environment, so
// repeated calls pick up edits. Missing files are skipped and earlier files
// take precedence over later ones.
func ReadEnv(files ...string) (Env, error) {
	env := make(Env)
	for _, f := range files {
		if _, err := os.Stat(f); errors.Is(err, fs.ErrNotExist) {
			continue
		}
		values, err := godotenv.Read(f)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", f, err)
		}
		for k, v := range values {
			if _, ok := env[k]; !ok {
				env[k] = v
			}
		}
	}
	return env, nil
}

// LookupEnv returns the process environment value for key if set, else the
// dotenv value.
func (e Env) LookupEnv(key string) (string, bool) {
	if v, ok := os.LookupEnv(key); ok {
		return v, true
	}
	v, ok := e[key]
	return v, ok
}
