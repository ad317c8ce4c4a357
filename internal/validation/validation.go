// Package validation checks a built PeerTube plan.
//
// Two passes run over the plan:
//   - structural verification: the wiring checks of stack.Verify
//   - cfn-lint-go: CloudFormation schema and best-practice rules on the rendered template
package validation

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/lex00/cfn-lint-go/pkg/lint"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	wetwire "github.com/lex00/wetwire-peertube-go"
	"github.com/lex00/wetwire-peertube-go/internal/plan"
	"github.com/lex00/wetwire-peertube-go/internal/stack"
)

// CfnLintResult contains the result of running cfn-lint.
type CfnLintResult struct {
	Passed        bool     `json:"passed"`
	Errors        []string `json:"errors"`
	Warnings      []string `json:"warnings"`
	Informational []string `json:"informational"`
}

// TotalIssues returns the total number of issues found.
func (r CfnLintResult) TotalIssues() int {
	return len(r.Errors) + len(r.Warnings) + len(r.Informational)
}

// Options configures Validate.
type Options struct {
	// SkipCfnLint runs only the structural checks.
	SkipCfnLint bool
	// Strict fails validation on cfn-lint warnings.
	Strict bool
	Logger *zap.Logger
}

// RunCfnLint runs cfn-lint-go on the given template file.
func RunCfnLint(templatePath string) (*CfnLintResult, error) {
	if _, err := os.Stat(templatePath); err != nil {
		return &CfnLintResult{
			Passed: false,
			Errors: []string{fmt.Sprintf("Template file not found: %s", templatePath)},
		}, nil
	}

	linter := lint.New(lint.Options{})
	matches, err := linter.LintFile(templatePath)
	if err != nil {
		return nil, fmt.Errorf("linting %s: %w", templatePath, err)
	}

	result := &CfnLintResult{
		Errors:        []string{},
		Warnings:      []string{},
		Informational: []string{},
	}
	for _, match := range matches {
		formatted := formatMatch(match)

		switch match.Level {
		case "Error":
			result.Errors = append(result.Errors, formatted)
		case "Warning":
			result.Warnings = append(result.Warnings, formatted)
		default:
			result.Informational = append(result.Informational, formatted)
		}
	}

	// Warnings are acceptable unless the caller asks otherwise.
	result.Passed = len(result.Errors) == 0
	return result, nil
}

// LintPlan renders the plan to a temporary JSON file and runs cfn-lint on it.
func LintPlan(p *plan.Plan) (*CfnLintResult, error) {
	data, err := p.JSON()
	if err != nil {
		return nil, fmt.Errorf("rendering template: %w", err)
	}

	dir, err := os.MkdirTemp("", "peertube-validate-")
	if err != nil {
		return nil, fmt.Errorf("creating temp dir: %w", err)
	}
	defer func() {
		_ = os.RemoveAll(dir)
	}()

	path := filepath.Join(dir, "template.json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return nil, fmt.Errorf("writing template: %w", err)
	}
	return RunCfnLint(path)
}

// formatMatch formats a cfn-lint-go match for display.
func formatMatch(match lint.Match) string {
	pathStr := ""
	if len(match.Location.Path) > 0 {
		parts := make([]string, len(match.Location.Path))
		for i, p := range match.Location.Path {
			parts[i] = fmt.Sprintf("%v", p)
		}
		pathStr = strings.Join(parts, "/")
	}

	if pathStr != "" {
		return fmt.Sprintf("%s: %s (at %s)", match.Rule.ID, match.Message, pathStr)
	}
	return fmt.Sprintf("%s: %s", match.Rule.ID, match.Message)
}

// addLint merges cfn-lint findings into the result. Strict reports warnings
// as errors.
func addLint(result *wetwire.ValidateResult, found *CfnLintResult, strict bool) {
	result.Errors = append(result.Errors, found.Errors...)
	if strict {
		result.Errors = append(result.Errors, found.Warnings...)
		return
	}
	result.Warnings = append(result.Warnings, found.Warnings...)
}

// Validate runs structural verification and cfn-lint over a built plan.
// Findings are reported in the result; the error is for failures to run.
func Validate(p *plan.Plan, profile stack.Profile, opts Options) (*wetwire.ValidateResult, error) {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	result := &wetwire.ValidateResult{
		Variant:   string(profile.Variant),
		Resources: len(p.Resources()),
	}

	for _, err := range multierr.Errors(stack.Verify(p, profile)) {
		result.Errors = append(result.Errors, err.Error())
	}
	log.Debug("structural verification done", zap.Int("errors", len(result.Errors)))

	if !opts.SkipCfnLint {
		lintResult, err := LintPlan(p)
		if err != nil {
			return nil, err
		}
		log.Debug("cfn-lint done",
			zap.Int("errors", len(lintResult.Errors)),
			zap.Int("warnings", len(lintResult.Warnings)),
		)
		addLint(result, lintResult, opts.Strict)
	}

	result.Success = len(result.Errors) == 0
	return result, nil
}
