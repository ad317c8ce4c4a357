package version

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func env(values map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := values[key]
		return v, ok
	}
}

func TestResolve_EnvVar(t *testing.T) {
	r := Resolver{
		LookupEnv: env(map[string]string{EnvVar: "v9"}),
		Describe: func(context.Context) (string, error) {
			t.Fatal("git should not run when TEMPLATE_VERSION is set")
			return "", nil
		},
	}
	assert.Equal(t, "v9", r.Resolve(context.Background()))
}

func TestResolve_EmptyEnvVarWins(t *testing.T) {
	r := Resolver{
		LookupEnv: env(map[string]string{EnvVar: ""}),
		Describe:  func(context.Context) (string, error) { return "abc1234", nil },
	}
	assert.Equal(t, "", r.Resolve(context.Background()))
}

func TestResolve_GitDescribe(t *testing.T) {
	r := Resolver{
		LookupEnv: env(nil),
		Describe:  func(context.Context) (string, error) { return "2.1.0-1-g17c38cd\n", nil },
	}
	assert.Equal(t, "2.1.0-1-g17c38cd", r.Resolve(context.Background()))
}

func TestResolve_Fallback(t *testing.T) {
	tests := map[string]func(context.Context) (string, error){
		"git fails":    func(context.Context) (string, error) { return "", errors.New("not a git repository") },
		"empty output": func(context.Context) (string, error) { return "  \n", nil },
	}
	for name, describe := range tests {
		t.Run(name, func(t *testing.T) {
			r := Resolver{LookupEnv: env(nil), Describe: describe}
			assert.Equal(t, Fallback, r.Resolve(context.Background()))
		})
	}
}

func TestResolve_MissingGitDir(t *testing.T) {
	r := Resolver{LookupEnv: env(nil), Dir: t.TempDir()}
	// An empty directory is not a repository, or git is absent.
	assert.Equal(t, Fallback, r.Resolve(context.Background()))
}

func TestResolve_Property_EnvAlwaysWins(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		v := rapid.String().Draw(t, "version")
		r := Resolver{
			LookupEnv: env(map[string]string{EnvVar: v}),
			Describe:  func(context.Context) (string, error) { return "from-git", nil },
		}
		if got := r.Resolve(context.Background()); got != v {
			t.Fatalf("Resolve() = %q, want %q", got, v)
		}
	})
}
