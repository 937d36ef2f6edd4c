package schema

import "time"

// AuditRunRecord represents a row from the repoguard_audit_runs table.
type AuditRunRecord struct {
	AuditID       int64
	RepoPath      string
	StartTime     time.Time
	EndTime       *time.Time
	RunDurationMs *int32
	TotalCommits  int32
	Passed        bool
	ConfigParams  *string
}

// CheckResultRecord represents a row from the repoguard_check_results table.
type CheckResultRecord struct {
	AuditID    int64
	CheckName  string
	Status     string
	Violations int32
	Note       *string
	RecordedAt time.Time
}
