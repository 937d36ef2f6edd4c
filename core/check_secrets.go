package core

import (
	"context"
	"fmt"

	"github.com/huangsam/repoguard/core/scan"
	"github.com/huangsam/repoguard/internal/contract"
	"github.com/huangsam/repoguard/schema"
)

// SecretsCheck runs the external secret scanner over the repository history
// and fails on any finding. Missing scanner binaries skip the rule rather
// than fail the audit, so CI environments without the tool still pass.
type SecretsCheck struct{}

// Name returns the check identifier.
func (c *SecretsCheck) Name() schema.CheckName { return schema.CheckSecrets }

// Summary returns a one-line description.
func (c *SecretsCheck) Summary() string {
	return "The secret scanner reports zero findings"
}

// Run shells out to the scanner and parses its JSON report.
func (c *SecretsCheck) Run(ctx context.Context, input *contract.CheckInput) (schema.CheckOutcome, error) {
	if input.Scanner == nil || !input.Scanner.Available() {
		return skipOutcome(fmt.Sprintf("scanner %q not found on PATH", input.Cfg.Scanner))
	}

	out, err := input.Scanner.Scan(ctx, input.Cfg.RepoPath)
	if err != nil {
		return schema.CheckOutcome{}, fmt.Errorf("scanner failed: %w", err)
	}

	findings, err := scan.ParseFindings(out)
	if err != nil {
		return schema.CheckOutcome{}, fmt.Errorf("failed to parse scanner report: %w", err)
	}

	var violations []schema.Violation
	for _, f := range findings {
		violations = append(violations, schema.Violation{
			Path:   f.File,
			Commit: f.Commit,
			Detail: fmt.Sprintf("%s at %s:%d (%s)", f.RuleID, f.File, f.StartLine, f.Description),
		})
	}

	if len(violations) > 0 {
		return failOutcome(violations)
	}
	return passOutcome()
}
