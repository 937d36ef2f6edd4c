// Package schema has configs, models and constants for all parts of repoguard.
package schema

// CommitRecord represents one commit decoded from the formatted log stream.
// Records are constructed fresh on every parse and never mutated afterwards.
type CommitRecord struct {
	Hash       string `json:"hash"`        // Full commit hash as emitted by %H
	Author     string `json:"author"`      // Author name as emitted by %an
	Committer  string `json:"committer"`   // Committer name as emitted by %cn
	AuthorDate string `json:"author_date"` // Strict ISO-8601 author date as emitted by %aI
	Message    string `json:"message"`     // Full message body as emitted by %B, outer whitespace trimmed
}

// SecretFinding represents one finding object from the secret scanner's JSON
// report. The fields mirror the gitleaks report shape; unknown fields in the
// report are ignored rather than rejected.
type SecretFinding struct {
	RuleID      string `json:"RuleID"`
	Description string `json:"Description"`
	File        string `json:"File"`
	StartLine   int    `json:"StartLine"`
	EndLine     int    `json:"EndLine"`
	Match       string `json:"Match"`
	Secret      string `json:"Secret"`
	Commit      string `json:"Commit"`
	Author      string `json:"Author"`
	Date        string `json:"Date"`
}
