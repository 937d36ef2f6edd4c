// Package scan decodes secret scanner reports.
package scan

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/huangsam/repoguard/schema"
)

// ParseFindings converts a scanner's raw report into findings. An empty or
// whitespace-only report means a clean scan and yields an empty slice;
// anything else must be a JSON array of finding objects. Malformed JSON is a
// hard error because a half-read report could hide real findings.
func ParseFindings(out []byte) ([]schema.SecretFinding, error) {
	if strings.TrimSpace(string(out)) == "" {
		return []schema.SecretFinding{}, nil
	}

	var findings []schema.SecretFinding
	if err := json.Unmarshal(out, &findings); err != nil {
		return nil, fmt.Errorf("parse scanner report: %w", err)
	}
	return findings, nil
}
