package schema

import "time"

// CheckInfo describes a registered check for listings.
type CheckInfo struct {
	Name    CheckName `json:"name"`
	Summary string    `json:"summary"`
}

// Violation describes a single policy violation found by a check.
type Violation struct {
	Path   string `json:"path,omitempty"`   // File path involved, when applicable
	Commit string `json:"commit,omitempty"` // Commit hash involved, when applicable
	Detail string `json:"detail"`           // Human-readable description of the violation
}

// CheckOutcome holds the result of a single audit check.
type CheckOutcome struct {
	Name       CheckName     `json:"name"`
	Status     CheckStatus   `json:"status"`
	Violations []Violation   `json:"violations,omitempty"`
	Note       string        `json:"note,omitempty"` // Set for skipped checks to explain why
	Duration   time.Duration `json:"duration_ms"`
}

// AuditResult holds the results of a full audit run.
type AuditResult struct {
	RepoPath     string         `json:"repo_path"`
	Passed       bool           `json:"passed"`
	Outcomes     []CheckOutcome `json:"outcomes"`
	TotalCommits int            `json:"total_commits"`
	WindowSince  time.Time      `json:"window_since,omitempty"`
	WindowUntil  time.Time      `json:"window_until,omitempty"`
	Duration     time.Duration  `json:"duration_ms"`
}

// FailedChecks returns the outcomes that failed, in report order.
func (r *AuditResult) FailedChecks() []CheckOutcome {
	var failed []CheckOutcome
	for _, o := range r.Outcomes {
		if o.Status == StatusFail {
			failed = append(failed, o)
		}
	}
	return failed
}

// TotalViolations returns the number of violations across all outcomes.
func (r *AuditResult) TotalViolations() int {
	total := 0
	for _, o := range r.Outcomes {
		total += len(o.Violations)
	}
	return total
}
