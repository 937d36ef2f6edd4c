package core

import (
	"context"
	"fmt"
	"sync"

	"github.com/huangsam/repoguard/internal/contract"
	"github.com/huangsam/repoguard/schema"
)

// ForbiddenPathsCheck verifies no commit in the window touches a path
// matching the configured forbidden patterns. File lists are fetched per
// commit with a bounded worker pool since each one shells out to git.
type ForbiddenPathsCheck struct{}

// Name returns the check identifier.
func (c *ForbiddenPathsCheck) Name() schema.CheckName { return schema.CheckForbiddenPaths }

// Summary returns a one-line description.
func (c *ForbiddenPathsCheck) Summary() string {
	return "No commit touches a path matching the forbidden patterns"
}

// Run evaluates the rule over the commit snapshot.
func (c *ForbiddenPathsCheck) Run(ctx context.Context, input *contract.CheckInput) (schema.CheckOutcome, error) {
	patterns := input.Cfg.ForbiddenPaths
	if len(patterns) == 0 {
		return skipOutcome("no forbidden path patterns configured")
	}

	workers := input.Cfg.Workers
	if workers <= 0 {
		workers = 1
	}

	// Results are indexed by commit position so report order stays stable
	// regardless of worker scheduling.
	perCommit := make([][]schema.Violation, len(input.Commits))
	perCommitErr := make([]error, len(input.Commits))

	jobs := make(chan int, len(input.Commits))
	for i := range input.Commits {
		jobs <- i
	}
	close(jobs)

	var wg sync.WaitGroup
	for range workers {
		wg.Go(func() {
			for i := range jobs {
				commit := input.Commits[i]
				files, err := input.Client.ListCommitFiles(ctx, input.Cfg.RepoPath, commit.Hash)
				if err != nil {
					perCommitErr[i] = fmt.Errorf("failed to list files for commit %s: %w", schema.ShortHash(commit.Hash), err)
					continue
				}
				for _, file := range files {
					if contract.MatchesAny(file, patterns) {
						perCommit[i] = append(perCommit[i], schema.Violation{
							Path:   file,
							Commit: commit.Hash,
							Detail: fmt.Sprintf("commit %s touches forbidden path %s", schema.ShortHash(commit.Hash), file),
						})
					}
				}
			}
		})
	}
	wg.Wait()

	var violations []schema.Violation
	for i := range input.Commits {
		if perCommitErr[i] != nil {
			return schema.CheckOutcome{}, perCommitErr[i]
		}
		violations = append(violations, perCommit[i]...)
	}

	if len(violations) > 0 {
		return failOutcome(violations)
	}
	return passOutcome()
}
