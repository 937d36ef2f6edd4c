package core

import (
	"context"
	"errors"
	"testing"

	"github.com/huangsam/repoguard/internal/contract"
	"github.com/huangsam/repoguard/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pathsInput(client contract.GitClient, commits []schema.CommitRecord, patterns []string) *contract.CheckInput {
	return &contract.CheckInput{
		Cfg: &contract.Config{
			RepoPath:       "/repo",
			Workers:        2,
			ForbiddenPaths: patterns,
		},
		Client:  client,
		Commits: commits,
	}
}

func TestForbiddenPathsCheck(t *testing.T) {
	check := &ForbiddenPathsCheck{}
	ctx := context.Background()
	commits := []schema.CommitRecord{
		{Hash: goodSHA1},
		{Hash: otherSHA1},
	}

	t.Run("skips without patterns", func(t *testing.T) {
		client := &contract.MockGitClient{}
		outcome, err := check.Run(ctx, pathsInput(client, commits, nil))
		require.NoError(t, err)
		assert.Equal(t, schema.StatusSkip, outcome.Status)
	})

	t.Run("clean commits pass", func(t *testing.T) {
		client := &contract.MockGitClient{}
		client.On("ListCommitFiles", ctx, "/repo", goodSHA1).Return([]string{"main.go"}, nil)
		client.On("ListCommitFiles", ctx, "/repo", otherSHA1).Return([]string{"README.md"}, nil)

		outcome, err := check.Run(ctx, pathsInput(client, commits, []string{".env", "*.pem"}))
		require.NoError(t, err)
		assert.Equal(t, schema.StatusPass, outcome.Status)
		client.AssertExpectations(t)
	})

	t.Run("violations keep commit order", func(t *testing.T) {
		client := &contract.MockGitClient{}
		client.On("ListCommitFiles", ctx, "/repo", goodSHA1).Return([]string{"config/.env"}, nil)
		client.On("ListCommitFiles", ctx, "/repo", otherSHA1).Return([]string{"certs/server.pem", "main.go"}, nil)

		outcome, err := check.Run(ctx, pathsInput(client, commits, []string{".env", "*.pem"}))
		require.NoError(t, err)
		assert.Equal(t, schema.StatusFail, outcome.Status)
		require.Len(t, outcome.Violations, 2)
		assert.Equal(t, goodSHA1, outcome.Violations[0].Commit)
		assert.Equal(t, "config/.env", outcome.Violations[0].Path)
		assert.Equal(t, otherSHA1, outcome.Violations[1].Commit)
		assert.Equal(t, "certs/server.pem", outcome.Violations[1].Path)
	})

	t.Run("git failure is a hard error", func(t *testing.T) {
		client := &contract.MockGitClient{}
		client.On("ListCommitFiles", ctx, "/repo", goodSHA1).Return(nil, errors.New("object not found"))
		client.On("ListCommitFiles", ctx, "/repo", otherSHA1).Return([]string{"main.go"}, nil)

		_, err := check.Run(ctx, pathsInput(client, commits, []string{".env"}))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to list files")
	})

	t.Run("single worker still covers all commits", func(t *testing.T) {
		client := &contract.MockGitClient{}
		client.On("ListCommitFiles", ctx, "/repo", goodSHA1).Return([]string{"id_rsa"}, nil)
		client.On("ListCommitFiles", ctx, "/repo", otherSHA1).Return([]string{"main.go"}, nil)

		input := pathsInput(client, commits, []string{"id_rsa"})
		input.Cfg.Workers = 1
		outcome, err := check.Run(ctx, input)
		require.NoError(t, err)
		assert.Equal(t, schema.StatusFail, outcome.Status)
		assert.Len(t, outcome.Violations, 1)
	})
}
