package core

import (
	"github.com/huangsam/repoguard/internal/contract"
	"github.com/huangsam/repoguard/schema"
)

// AllChecks returns every registered check, in canonical report order.
func AllChecks() []contract.Check {
	return []contract.Check{
		&CommitHashesCheck{},
		&AuthorDatesCheck{},
		&MessagesCheck{},
		&SignoffsCheck{},
		&LicenseFileCheck{},
		&PackageJSONCheck{},
		&GitignoreCheck{},
		&ForbiddenPathsCheck{},
		&SecretsCheck{},
	}
}

// SelectChecks filters the registry down to the configured rule set,
// preserving report order regardless of how the selection was written.
func SelectChecks(cfg *contract.Config) []contract.Check {
	wanted := make(map[schema.CheckName]bool, len(cfg.Checks))
	for _, name := range cfg.Checks {
		wanted[name] = true
	}

	selected := make([]contract.Check, 0, len(cfg.Checks))
	for _, check := range AllChecks() {
		if wanted[check.Name()] {
			selected = append(selected, check)
		}
	}
	return selected
}

// passOutcome is a shorthand for a clean result.
func passOutcome() (schema.CheckOutcome, error) {
	return schema.CheckOutcome{Status: schema.StatusPass}, nil
}

// failOutcome wraps the collected violations into a failing result.
func failOutcome(violations []schema.Violation) (schema.CheckOutcome, error) {
	return schema.CheckOutcome{Status: schema.StatusFail, Violations: violations}, nil
}

// skipOutcome records a result that did not apply, with the reason.
func skipOutcome(note string) (schema.CheckOutcome, error) {
	return schema.CheckOutcome{Status: schema.StatusSkip, Note: note}, nil
}
