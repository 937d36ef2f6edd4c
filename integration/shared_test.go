//go:build basic || database

package integration

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"testing"
)

var (
	// sharedRepoguardPath holds the path to a shared repoguard binary built once for all tests.
	sharedRepoguardPath string

	// buildOnce ensures we only build the binary once.
	buildOnce sync.Once

	// buildMutex protects the shared binary path.
	buildMutex sync.Mutex

	// tempDir holds the temp directory for cleanup.
	tempDir string
)

// TestMain handles setup and cleanup for all integration tests.
func TestMain(m *testing.M) {
	// Run all tests
	code := m.Run()

	// Cleanup the shared binary after all tests
	if tempDir != "" {
		_ = os.RemoveAll(tempDir)
	}

	os.Exit(code)
}

// getRepoguardBinary returns the path to the repoguard binary, building it once if needed.
func getRepoguardBinary() string {
	buildMutex.Lock()
	defer buildMutex.Unlock()

	buildOnce.Do(func() {
		// Create a temp directory for the binary
		var err error
		tempDir, err = os.MkdirTemp("", "repoguard-integration-*")
		if err != nil {
			panic(fmt.Sprintf("failed to create temp dir: %v", err))
		}

		repoguardPath := filepath.Join(tempDir, "repoguard")
		buildCmd := exec.Command("go", "build", "-o", repoguardPath, ".")
		buildCmd.Dir = ".." // Build from parent directory (project root)
		err = buildCmd.Run()
		if err != nil {
			panic(fmt.Sprintf("failed to build repoguard: %v", err))
		}

		sharedRepoguardPath = repoguardPath
	})

	return sharedRepoguardPath
}

// runRepoguard runs the shared repoguard binary inside dir with extra
// environment variables, returning combined output and the exit error.
func runRepoguard(t *testing.T, dir string, env []string, args ...string) (string, error) {
	t.Helper()
	cmd := exec.Command(getRepoguardBinary(), args...)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(), env...)
	output, err := cmd.CombinedOutput()
	return string(output), err
}

// runGit runs a git command inside dir and fails the test on error.
func runGit(t *testing.T, dir string, args ...string) {
	t.Helper()
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	if output, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("git %v failed: %v\nOutput: %s", args, err, string(output))
	}
}

// commitFile writes a file and commits it with the given message.
func commitFile(t *testing.T, dir, name, content, message string) {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("failed to create dir for %s: %v", name, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	runGit(t, dir, "add", name)
	runGit(t, dir, "commit", "-m", message)
}

// newFixtureRepo creates a throwaway git repository with a compliant baseline:
// a LICENSE, a .gitignore, and a package.json with all required fields.
func newFixtureRepo(t *testing.T) string {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not available")
	}

	dir := t.TempDir()
	runGit(t, dir, "init", "-q")
	runGit(t, dir, "config", "user.name", "Integration Bot")
	runGit(t, dir, "config", "user.email", "bot@example.com")
	runGit(t, dir, "config", "commit.gpgsign", "false")

	commitFile(t, dir, "LICENSE", "Copyright (c) 2026 Integration Bot\n", "Add license")
	commitFile(t, dir, ".gitignore", "node_modules/\n*.log\n", "Add gitignore")
	commitFile(t, dir, "package.json",
		`{"name":"fixture","version":"1.0.0","license":"MIT"}`,
		"Add package manifest")

	return dir
}
