package core

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"github.com/huangsam/repoguard/internal/contract"
	"github.com/huangsam/repoguard/schema"
)

// hashPattern matches full SHA-1 and SHA-256 object names in lowercase hex.
var hashPattern = regexp.MustCompile(`^([0-9a-f]{40}|[0-9a-f]{64})$`)

// signoffPattern matches a DCO trailer at the start of a message line.
var signoffPattern = regexp.MustCompile(`(?m)^Signed-off-by: .+ <.+>`)

// CommitHashesCheck verifies every commit hash is well-formed lowercase hex
// of SHA-1 or SHA-256 length, and that no hash appears twice in the window.
type CommitHashesCheck struct{}

// Name returns the check identifier.
func (c *CommitHashesCheck) Name() schema.CheckName { return schema.CheckCommitHashes }

// Summary returns a one-line description.
func (c *CommitHashesCheck) Summary() string {
	return "Commit hashes are well-formed hex object names with no duplicates"
}

// Run evaluates the rule over the commit snapshot.
func (c *CommitHashesCheck) Run(_ context.Context, input *contract.CheckInput) (schema.CheckOutcome, error) {
	var violations []schema.Violation
	seen := make(map[string]bool, len(input.Commits))

	for _, commit := range input.Commits {
		if !hashPattern.MatchString(commit.Hash) {
			violations = append(violations, schema.Violation{
				Commit: commit.Hash,
				Detail: fmt.Sprintf("hash %q is not a 40- or 64-char lowercase hex object name", commit.Hash),
			})
			continue
		}
		if seen[commit.Hash] {
			violations = append(violations, schema.Violation{
				Commit: commit.Hash,
				Detail: fmt.Sprintf("hash %s appears more than once in the log", schema.ShortHash(commit.Hash)),
			})
		}
		seen[commit.Hash] = true
	}

	if len(violations) > 0 {
		return failOutcome(violations)
	}
	return passOutcome()
}

// AuthorDatesCheck verifies every author date parses under strict ISO-8601
// with a numeric UTC offset, as git emits for %aI.
type AuthorDatesCheck struct{}

// Name returns the check identifier.
func (c *AuthorDatesCheck) Name() schema.CheckName { return schema.CheckAuthorDates }

// Summary returns a one-line description.
func (c *AuthorDatesCheck) Summary() string {
	return "Author dates parse under strict ISO-8601"
}

// Run evaluates the rule over the commit snapshot.
func (c *AuthorDatesCheck) Run(_ context.Context, input *contract.CheckInput) (schema.CheckOutcome, error) {
	var violations []schema.Violation

	for _, commit := range input.Commits {
		if _, err := time.Parse(time.RFC3339, commit.AuthorDate); err != nil {
			violations = append(violations, schema.Violation{
				Commit: commit.Hash,
				Detail: fmt.Sprintf("author date %q is not strict ISO-8601", commit.AuthorDate),
			})
		}
	}

	if len(violations) > 0 {
		return failOutcome(violations)
	}
	return passOutcome()
}

// MessagesCheck verifies every commit message is non-empty and keeps its
// subject line within the configured length limit.
type MessagesCheck struct{}

// Name returns the check identifier.
func (c *MessagesCheck) Name() schema.CheckName { return schema.CheckMessages }

// Summary returns a one-line description.
func (c *MessagesCheck) Summary() string {
	return "Commit messages are non-empty with bounded subject lines"
}

// Run evaluates the rule over the commit snapshot.
func (c *MessagesCheck) Run(_ context.Context, input *contract.CheckInput) (schema.CheckOutcome, error) {
	var violations []schema.Violation
	limit := input.Cfg.SubjectLimit

	for _, commit := range input.Commits {
		if commit.Message == "" {
			violations = append(violations, schema.Violation{
				Commit: commit.Hash,
				Detail: "commit message is empty",
			})
			continue
		}
		subject := schema.Subject(commit.Message)
		if n := len([]rune(subject)); n > limit {
			violations = append(violations, schema.Violation{
				Commit: commit.Hash,
				Detail: fmt.Sprintf("subject is %d chars, limit is %d", n, limit),
			})
		}
	}

	if len(violations) > 0 {
		return failOutcome(violations)
	}
	return passOutcome()
}

// SignoffsCheck verifies every commit message carries a Signed-off-by
// trailer. The rule only applies when sign-off enforcement is enabled.
type SignoffsCheck struct{}

// Name returns the check identifier.
func (c *SignoffsCheck) Name() schema.CheckName { return schema.CheckSignoffs }

// Summary returns a one-line description.
func (c *SignoffsCheck) Summary() string {
	return "Commit messages carry a Signed-off-by trailer (when enforced)"
}

// Run evaluates the rule over the commit snapshot.
func (c *SignoffsCheck) Run(_ context.Context, input *contract.CheckInput) (schema.CheckOutcome, error) {
	if !input.Cfg.RequireSignoff {
		return skipOutcome("sign-off enforcement is disabled. Enable with --require-signoff")
	}

	var violations []schema.Violation
	for _, commit := range input.Commits {
		if !signoffPattern.MatchString(commit.Message) {
			violations = append(violations, schema.Violation{
				Commit: commit.Hash,
				Detail: fmt.Sprintf("commit %s has no Signed-off-by trailer", schema.ShortHash(commit.Hash)),
			})
		}
	}

	if len(violations) > 0 {
		return failOutcome(violations)
	}
	return passOutcome()
}
