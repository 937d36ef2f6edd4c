package core

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/huangsam/repoguard/internal/contract"
	"github.com/huangsam/repoguard/schema"
)

// licenseCandidates are the tracked paths accepted as the project license,
// checked in order.
var licenseCandidates = []string{"LICENSE", "LICENSE.md", "LICENSE.txt"}

// findTrackedFile returns the first candidate present in the tracked file
// list, or an empty string when none is tracked.
func findTrackedFile(trackedFiles []string, candidates ...string) string {
	tracked := make(map[string]bool, len(trackedFiles))
	for _, f := range trackedFiles {
		tracked[f] = true
	}
	for _, c := range candidates {
		if tracked[c] {
			return c
		}
	}
	return ""
}

// fileAtHead reads the content of a tracked file as committed at HEAD, so
// the audit reflects repository state rather than dirty working tree edits.
func fileAtHead(ctx context.Context, input *contract.CheckInput, path string) (string, error) {
	out, err := input.Client.Run(ctx, input.Cfg.RepoPath, "show", "HEAD:"+path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s at HEAD: %w", path, err)
	}
	return string(out), nil
}

// LicenseFileCheck verifies a license file is tracked, non-empty, and
// matches the configured content pattern.
type LicenseFileCheck struct{}

// Name returns the check identifier.
func (c *LicenseFileCheck) Name() schema.CheckName { return schema.CheckLicenseFile }

// Summary returns a one-line description.
func (c *LicenseFileCheck) Summary() string {
	return "A license file is tracked and matches the expected content pattern"
}

// Run evaluates the rule against the tracked file snapshot.
func (c *LicenseFileCheck) Run(ctx context.Context, input *contract.CheckInput) (schema.CheckOutcome, error) {
	path := findTrackedFile(input.TrackedFiles, licenseCandidates...)
	if path == "" {
		return failOutcome([]schema.Violation{{
			Detail: fmt.Sprintf("no license file tracked. Expected one of %s", strings.Join(licenseCandidates, ", ")),
		}})
	}

	content, err := fileAtHead(ctx, input, path)
	if err != nil {
		return schema.CheckOutcome{}, err
	}
	if strings.TrimSpace(content) == "" {
		return failOutcome([]schema.Violation{{
			Path:   path,
			Detail: fmt.Sprintf("%s is empty", path),
		}})
	}

	pattern, err := regexp.Compile(input.Cfg.LicensePattern)
	if err != nil {
		return schema.CheckOutcome{}, fmt.Errorf("invalid license-pattern %q: %w", input.Cfg.LicensePattern, err)
	}
	if !pattern.MatchString(content) {
		return failOutcome([]schema.Violation{{
			Path:   path,
			Detail: fmt.Sprintf("%s does not match pattern %q", path, input.Cfg.LicensePattern),
		}})
	}

	return passOutcome()
}

// packageManifest is the subset of package.json fields the audit requires.
type packageManifest struct {
	Name    string `json:"name"`
	Version string `json:"version"`
	License string `json:"license"`
}

// PackageJSONCheck verifies a tracked package.json parses as JSON and
// carries the name, version, and license fields. Repositories without a
// tracked package.json skip this rule rather than fail it.
type PackageJSONCheck struct{}

// Name returns the check identifier.
func (c *PackageJSONCheck) Name() schema.CheckName { return schema.CheckPackageJSON }

// Summary returns a one-line description.
func (c *PackageJSONCheck) Summary() string {
	return "package.json parses and carries name, version, and license"
}

// Run evaluates the rule against the tracked file snapshot.
func (c *PackageJSONCheck) Run(ctx context.Context, input *contract.CheckInput) (schema.CheckOutcome, error) {
	path := findTrackedFile(input.TrackedFiles, "package.json")
	if path == "" {
		return skipOutcome("no package.json is tracked")
	}

	content, err := fileAtHead(ctx, input, path)
	if err != nil {
		return schema.CheckOutcome{}, err
	}

	var manifest packageManifest
	if err := json.Unmarshal([]byte(content), &manifest); err != nil {
		return failOutcome([]schema.Violation{{
			Path:   path,
			Detail: fmt.Sprintf("package.json is not valid JSON: %v", err),
		}})
	}

	var violations []schema.Violation
	required := []struct {
		field string
		value string
	}{
		{"name", manifest.Name},
		{"version", manifest.Version},
		{"license", manifest.License},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			violations = append(violations, schema.Violation{
				Path:   path,
				Detail: fmt.Sprintf("package.json is missing the %q field", r.field),
			})
		}
	}

	if len(violations) > 0 {
		return failOutcome(violations)
	}
	return passOutcome()
}

// GitignoreCheck verifies a .gitignore is tracked and contains every
// required entry as a literal line.
type GitignoreCheck struct{}

// Name returns the check identifier.
func (c *GitignoreCheck) Name() schema.CheckName { return schema.CheckGitignore }

// Summary returns a one-line description.
func (c *GitignoreCheck) Summary() string {
	return ".gitignore is tracked and contains the required entries"
}

// Run evaluates the rule against the tracked file snapshot.
func (c *GitignoreCheck) Run(ctx context.Context, input *contract.CheckInput) (schema.CheckOutcome, error) {
	path := findTrackedFile(input.TrackedFiles, ".gitignore")
	if path == "" {
		return failOutcome([]schema.Violation{{
			Detail: "no .gitignore is tracked",
		}})
	}

	if len(input.Cfg.RequiredIgnores) == 0 {
		return passOutcome()
	}

	content, err := fileAtHead(ctx, input, path)
	if err != nil {
		return schema.CheckOutcome{}, err
	}

	present := make(map[string]bool)
	for line := range strings.SplitSeq(content, "\n") {
		present[strings.TrimSpace(line)] = true
	}

	var violations []schema.Violation
	for _, entry := range input.Cfg.RequiredIgnores {
		if !present[entry] {
			violations = append(violations, schema.Violation{
				Path:   path,
				Detail: fmt.Sprintf(".gitignore is missing required entry %q", entry),
			})
		}
	}

	if len(violations) > 0 {
		return failOutcome(violations)
	}
	return passOutcome()
}
