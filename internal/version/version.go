// Package version resolves the template version written to the template metadata.
package version

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"strings"

	"go.uber.org/zap"
)

const (
	// EnvVar overrides the version when set, even to an empty value.
	EnvVar = "TEMPLATE_VERSION"
	// Fallback is used when neither the environment nor git yields a version.
	Fallback = "CICD"
)

// Resolver resolves the template version. The zero value uses the process
// environment and the git binary on PATH.
type Resolver struct {
	// LookupEnv defaults to os.LookupEnv.
	LookupEnv func(key string) (string, bool)
	// Describe defaults to running `git describe --always` in Dir.
	Describe func(ctx context.Context) (string, error)
	// Dir is the working directory of the git command.
	Dir    string
	Logger *zap.Logger
}

// Resolve returns the TEMPLATE_VERSION environment variable if set, else the
// trimmed output of `git describe --always`, else Fallback. It never fails.
func (r Resolver) Resolve(ctx context.Context) string {
	log := r.Logger
	if log == nil {
		log = zap.NewNop()
	}
	lookup := r.LookupEnv
	if lookup == nil {
		lookup = os.LookupEnv
	}
	if v, ok := lookup(EnvVar); ok {
		return v
	}

	describe := r.Describe
	if describe == nil {
		describe = r.gitDescribe
	}
	out, err := describe(ctx)
	if err != nil {
		log.Debug("git describe failed, using fallback version", zap.Error(err), zap.String("fallback", Fallback))
		return Fallback
	}
	v := strings.TrimSpace(out)
	if v == "" {
		return Fallback
	}
	return v
}

func (r Resolver) gitDescribe(ctx context.Context) (string, error) {
	cmd := exec.CommandContext(ctx, "git", "describe", "--always")
	cmd.Dir = r.Dir
	var stdout bytes.Buffer
	cmd.Stdout = &stdout
	if err := cmd.Run(); err != nil {
		return "", err
	}
	return stdout.String(), nil
}

// Resolve resolves the version with the default Resolver.
func Resolve(ctx context.Context) string {
	return Resolver{}.Resolve(ctx)
}
