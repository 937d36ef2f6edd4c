//go:build database

package integration

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// TestRepoguardWithMySQL tests the repoguard CLI with a MySQL backend.
func TestRepoguardWithMySQL(t *testing.T) {
	ctx := context.Background()

	// Start MySQL container
	req := testcontainers.ContainerRequest{
		Image:        "mysql:8",
		ExposedPorts: []string{"3306:3306/tcp"},
		Env: map[string]string{
			"MYSQL_ROOT_PASSWORD": "secret123",
			"MYSQL_DATABASE":      "repoguard",
		},
		WaitingFor: wait.ForLog("port: 3306  MySQL Community Server").WithStartupTimeout(30 * time.Second),
	}
	mysqlC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	defer func() { _ = mysqlC.Terminate(ctx) }()

	// Get connection details
	host, err := mysqlC.Host(ctx)
	require.NoError(t, err)
	port, err := mysqlC.MappedPort(ctx, "3306")
	require.NoError(t, err)

	connStr := fmt.Sprintf("root:secret123@tcp(%s:%s)/repoguard?parseTime=true", host, port.Port())

	runBackendSuite(t, "mysql", connStr)
}

// TestRepoguardWithPostgres tests the repoguard CLI with a PostgreSQL backend.
func TestRepoguardWithPostgres(t *testing.T) {
	ctx := context.Background()

	// Start Postgres container
	req := testcontainers.ContainerRequest{
		Image:        "postgres:18-alpine",
		ExposedPorts: []string{"5432:5432/tcp"},
		Env: map[string]string{
			"POSTGRES_HOST_AUTH_METHOD": "trust",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").WithStartupTimeout(30 * time.Second),
	}
	pgC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	defer func() { _ = pgC.Terminate(ctx) }()
	time.Sleep(5 * time.Second)

	// Get connection details
	host, err := pgC.Host(ctx)
	require.NoError(t, err)
	port, err := pgC.MappedPort(ctx, "5432")
	require.NoError(t, err)

	connStr := fmt.Sprintf("host=%s port=%s user=postgres dbname=postgres", host, port.Port())

	runBackendSuite(t, "postgresql", connStr)
}

// runBackendSuite exercises the cache and history lifecycle against one
// database backend: clear, migrate, audit, and status.
func runBackendSuite(t *testing.T, backend, connStr string) {
	t.Helper()

	env := []string{
		"REPOGUARD_CACHE_BACKEND=" + backend,
		"REPOGUARD_CACHE_DB_CONNECT=" + connStr,
		"REPOGUARD_HISTORY_BACKEND=" + backend,
		"REPOGUARD_HISTORY_DB_CONNECT=" + connStr,
	}
	repo := newFixtureRepo(t)

	// Reset both stores, then bring the history schema to the latest version
	output, err := runRepoguard(t, repo, env, "cache", "clear")
	require.NoError(t, err, "Output: %s", output)
	output, err = runRepoguard(t, repo, env, "history", "clear")
	require.NoError(t, err, "Output: %s", output)
	output, err = runRepoguard(t, repo, env, "history", "migrate")
	require.NoError(t, err, "Output: %s", output)

	// Populate the cache and record an audit run
	output, err = runRepoguard(t, repo, env, "commits", "--limit", "5")
	require.NoError(t, err, "Output: %s", output)
	output, err = runRepoguard(t, repo, env, "audit", "--skip", "secrets")
	require.NoError(t, err, "Output: %s", output)

	// Both stores should report their state without error
	output, err = runRepoguard(t, repo, env, "cache", "status")
	require.NoError(t, err, "Output: %s", output)
	output, err = runRepoguard(t, repo, env, "history", "status")
	require.NoError(t, err, "Output: %s", output)
}
