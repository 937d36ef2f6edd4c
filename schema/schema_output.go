package schema

// EnrichedCommitRecord adds presentation data to a CommitRecord.
type EnrichedCommitRecord struct {
	Rank    int    `json:"rank"`
	Subject string `json:"subject"`
	CommitRecord
}

// EnrichedCheckOutcome adds presentation data to a CheckOutcome.
type EnrichedCheckOutcome struct {
	Rank  int    `json:"rank"`
	Label string `json:"label"`
	CheckOutcome
}

// GetStatusLabel returns a plain text label for a check status.
func GetStatusLabel(status CheckStatus) string {
	switch status {
	case StatusPass:
		return "PASS"
	case StatusFail:
		return "FAIL"
	case StatusSkip:
		return "SKIP"
	default:
		return "UNKNOWN"
	}
}

// EnrichCommits adds rank and subject to a list of commit records.
func EnrichCommits(commits []CommitRecord) []EnrichedCommitRecord {
	output := make([]EnrichedCommitRecord, len(commits))
	for i, c := range commits {
		output[i] = EnrichedCommitRecord{
			Rank:         i + 1,
			Subject:      Subject(c.Message),
			CommitRecord: c,
		}
	}
	return output
}

// EnrichOutcomes adds rank and label to a list of check outcomes.
func EnrichOutcomes(outcomes []CheckOutcome) []EnrichedCheckOutcome {
	output := make([]EnrichedCheckOutcome, len(outcomes))
	for i, o := range outcomes {
		output[i] = EnrichedCheckOutcome{
			Rank:         i + 1,
			Label:        GetStatusLabel(o.Status),
			CheckOutcome: o,
		}
	}
	return output
}
