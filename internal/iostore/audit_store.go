package iostore

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/huangsam/repoguard/internal/contract"
	"github.com/huangsam/repoguard/schema"
)

// Table names for audit history tracking.
const (
	auditRunsTable    = "repoguard_audit_runs"
	checkResultsTable = "repoguard_check_results"
)

// AuditStoreImpl implements the AuditStore interface.
type AuditStoreImpl struct {
	db         *sql.DB
	backend    schema.DatabaseBackend
	driverName string
}

var _ contract.AuditStore = &AuditStoreImpl{} // Compile-time check

// NewAuditStore creates a new AuditStore with the specified backend.
func NewAuditStore(backend schema.DatabaseBackend, connStr string) (contract.AuditStore, error) {
	var db *sql.DB
	var err error
	var driverName string

	switch backend {
	case schema.SQLiteBackend:
		driverName = "sqlite"
		dbPath := connStr
		if dbPath == "" {
			dbPath = GetHistoryDBFilePath()
		}
		db, err = sql.Open(driverName, dbPath)
		if err != nil {
			return nil, fmt.Errorf("failed to open SQLite database at %q: %w. Check that the directory is writable", dbPath, err)
		}
		// Limit SQLite to a single open connection to avoid "database is locked" errors
		db.SetMaxOpenConns(1)

	case schema.MySQLBackend:
		driverName = "mysql"
		db, err = sql.Open(driverName, connStr)
		if err != nil {
			return nil, fmt.Errorf("failed to open MySQL database: %w. Check connection string format: user:password@tcp(host:port)/dbname", err)
		}

	case schema.PostgreSQLBackend:
		driverName = "pgx"
		db, err = sql.Open(driverName, connStr)
		if err != nil {
			return nil, fmt.Errorf("failed to open PostgreSQL database: %w. Check connection string format: host=localhost port=5432 user=postgres dbname=mydb", err)
		}

	case schema.NoneBackend:
		// Return a no-op store for disabled tracking
		return &AuditStoreImpl{
			db:         nil,
			backend:    backend,
			driverName: "",
		}, nil

	default:
		return nil, fmt.Errorf("unsupported backend: %s", backend)
	}

	// Ping to verify connection
	if err := db.Ping(); err != nil {
		_ = db.Close()
		var connDetail string
		switch backend {
		case schema.MySQLBackend:
			connDetail = "Check that MySQL is running and the connection string is correct. Ensure user/password are valid."
		case schema.PostgreSQLBackend:
			connDetail = "Check that PostgreSQL is running and the connection string is correct. Ensure user/password are valid."
		default:
			connDetail = "Verify the database server is running and accessible."
		}
		return nil, fmt.Errorf("failed to connect to %s database: %w. %s", backend, err, connDetail)
	}

	// Create the table schemas
	if err := createAuditTables(db, backend); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create audit tables: %w", err)
	}

	return &AuditStoreImpl{
		db:         db,
		backend:    backend,
		driverName: driverName,
	}, nil
}

// createAuditTables creates the audit history tables.
func createAuditTables(db *sql.DB, backend schema.DatabaseBackend) error {
	tables := []struct {
		name  string
		query string
	}{
		{auditRunsTable, getCreateAuditRunsQuery(backend)},
		{checkResultsTable, getCreateCheckResultsQuery(backend)},
	}

	for _, table := range tables {
		if _, err := db.Exec(table.query); err != nil {
			return fmt.Errorf("failed to create table %s: %w", table.name, err)
		}
	}

	return nil
}

// getCreateAuditRunsQuery returns the CREATE TABLE query for repoguard_audit_runs.
func getCreateAuditRunsQuery(backend schema.DatabaseBackend) string {
	quotedTableName := quoteTableName(auditRunsTable, backend)

	switch backend {
	case schema.MySQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				audit_id BIGINT AUTO_INCREMENT PRIMARY KEY,
				repo_path VARCHAR(512),
				start_time DATETIME(6) NOT NULL,
				end_time DATETIME(6),
				run_duration_ms INT,
				total_commits INT,
				passed BOOLEAN,
				config_params TEXT
			);
		`, quotedTableName)

	case schema.PostgreSQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				audit_id BIGSERIAL PRIMARY KEY,
				repo_path TEXT,
				start_time TIMESTAMPTZ NOT NULL,
				end_time TIMESTAMPTZ,
				run_duration_ms INT,
				total_commits INT,
				passed BOOLEAN,
				config_params TEXT
			);
		`, quotedTableName)

	default: // SQLite
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				audit_id INTEGER PRIMARY KEY AUTOINCREMENT,
				repo_path TEXT,
				start_time TEXT NOT NULL,
				end_time TEXT,
				run_duration_ms INTEGER,
				total_commits INTEGER,
				passed INTEGER,
				config_params TEXT
			);
		`, quotedTableName)
	}
}

// getCreateCheckResultsQuery returns the CREATE TABLE query for repoguard_check_results.
func getCreateCheckResultsQuery(backend schema.DatabaseBackend) string {
	quotedTableName := quoteTableName(checkResultsTable, backend)

	switch backend {
	case schema.MySQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				audit_id BIGINT NOT NULL,
				check_name VARCHAR(100) NOT NULL,
				status VARCHAR(10) NOT NULL,
				violations INT NOT NULL,
				note TEXT,
				recorded_at DATETIME(6) NOT NULL,
				PRIMARY KEY (audit_id, check_name)
			);
		`, quotedTableName)

	case schema.PostgreSQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				audit_id BIGINT NOT NULL,
				check_name TEXT NOT NULL,
				status TEXT NOT NULL,
				violations INT NOT NULL,
				note TEXT,
				recorded_at TIMESTAMPTZ NOT NULL,
				PRIMARY KEY (audit_id, check_name)
			);
		`, quotedTableName)

	default: // SQLite
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				audit_id INTEGER NOT NULL,
				check_name TEXT NOT NULL,
				status TEXT NOT NULL,
				violations INTEGER NOT NULL,
				note TEXT,
				recorded_at TEXT NOT NULL,
				PRIMARY KEY (audit_id, check_name)
			);
		`, quotedTableName)
	}
}

// BeginAudit creates a new audit run and returns its unique ID.
func (as *AuditStoreImpl) BeginAudit(startTime time.Time, configParams map[string]any) (int64, error) {
	// Skip for NoneBackend
	if as.backend == schema.NoneBackend || as.db == nil {
		return 0, nil
	}

	// Serialize config params to JSON
	configJSON, err := json.Marshal(configParams)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal config params: %w", err)
	}

	repoPath, _ := configParams["repo_path"].(string)
	quotedTableName := quoteTableName(auditRunsTable, as.backend)

	var auditID int64
	switch as.backend {
	case schema.PostgreSQLBackend:
		query := fmt.Sprintf(`INSERT INTO %s (repo_path, start_time, config_params) VALUES ($1, $2, $3) RETURNING audit_id`, quotedTableName)
		err = as.db.QueryRow(query, repoPath, startTime, string(configJSON)).Scan(&auditID)
	default: // SQLite and MySQL
		query := fmt.Sprintf(`INSERT INTO %s (repo_path, start_time, config_params) VALUES (?, ?, ?)`, quotedTableName)
		var result sql.Result
		result, err = as.db.Exec(query, repoPath, formatTime(startTime, as.backend), string(configJSON))
		if err != nil {
			return 0, err
		}
		auditID, err = result.LastInsertId()
	}

	if err != nil {
		return 0, fmt.Errorf("failed to insert audit run: %w", err)
	}

	return auditID, nil
}

// EndAudit updates the audit run with completion data.
func (as *AuditStoreImpl) EndAudit(auditID int64, endTime time.Time, totalCommits int, passed bool) error {
	// Skip for NoneBackend
	if as.backend == schema.NoneBackend || as.db == nil {
		return nil
	}

	// First, get the start_time to calculate duration
	quotedTableName := quoteTableName(auditRunsTable, as.backend)
	var startTime time.Time

	var query string
	switch as.backend {
	case schema.PostgreSQLBackend:
		query = fmt.Sprintf(`SELECT start_time FROM %s WHERE audit_id = $1`, quotedTableName)
	default: // SQLite and MySQL
		query = fmt.Sprintf(`SELECT start_time FROM %s WHERE audit_id = ?`, quotedTableName)
	}

	row := as.db.QueryRow(query, auditID)

	// Handle different time storage formats per backend
	switch as.backend {
	case schema.SQLiteBackend:
		var startTimeStr string
		if err := row.Scan(&startTimeStr); err != nil {
			return fmt.Errorf("failed to get start_time for audit %d: %w", auditID, err)
		}
		var err error
		startTime, err = time.Parse(time.RFC3339Nano, startTimeStr)
		if err != nil {
			return fmt.Errorf("failed to parse start_time: %w", err)
		}
	default: // MySQL and PostgreSQL store as native datetime
		if err := row.Scan(&startTime); err != nil {
			return fmt.Errorf("failed to get start_time for audit %d: %w", auditID, err)
		}
	}

	// Calculate duration in milliseconds
	durationMs := endTime.Sub(startTime).Milliseconds()

	// Update the audit run with completion data
	var updateQuery string
	var args []any

	switch as.backend {
	case schema.PostgreSQLBackend:
		updateQuery = fmt.Sprintf(`UPDATE %s SET end_time = $1, run_duration_ms = $2, total_commits = $3, passed = $4 WHERE audit_id = $5`, quotedTableName)
		args = []any{endTime, durationMs, totalCommits, passed, auditID}
	default: // SQLite and MySQL
		updateQuery = fmt.Sprintf(`UPDATE %s SET end_time = ?, run_duration_ms = ?, total_commits = ?, passed = ? WHERE audit_id = ?`, quotedTableName)
		args = []any{formatTime(endTime, as.backend), durationMs, totalCommits, passed, auditID}
	}

	_, err := as.db.Exec(updateQuery, args...)
	if err != nil {
		return fmt.Errorf("failed to update audit run: %w", err)
	}

	return nil
}

// RecordCheckOutcome stores the outcome of a single check for a run.
func (as *AuditStoreImpl) RecordCheckOutcome(auditID int64, outcome schema.CheckOutcome) error {
	// Skip for NoneBackend
	if as.backend == schema.NoneBackend || as.db == nil {
		return nil
	}

	quotedTableName := quoteTableName(checkResultsTable, as.backend)

	var note *string
	if outcome.Note != "" {
		note = &outcome.Note
	}
	recordedAt := formatTime(time.Now(), as.backend)

	var query string
	switch as.backend {
	case schema.PostgreSQLBackend:
		query = fmt.Sprintf(`
			INSERT INTO %s (audit_id, check_name, status, violations, note, recorded_at)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, quotedTableName)
	default: // SQLite and MySQL
		query = fmt.Sprintf(`
			INSERT INTO %s (audit_id, check_name, status, violations, note, recorded_at)
			VALUES (?, ?, ?, ?, ?, ?)
		`, quotedTableName)
	}

	_, err := as.db.Exec(query, auditID, string(outcome.Name), string(outcome.Status), len(outcome.Violations), note, recordedAt)
	if err != nil {
		return fmt.Errorf("failed to insert check outcome: %w", err)
	}

	return nil
}

// Close closes the underlying connection.
func (as *AuditStoreImpl) Close() error {
	if as.db != nil {
		return as.db.Close()
	}
	return nil
}

// GetStatus returns status information about the audit store.
func (as *AuditStoreImpl) GetStatus() (schema.AuditStatus, error) {
	status := schema.AuditStatus{
		Backend:    string(as.backend),
		Connected:  as.db != nil,
		TableSizes: make(map[string]int64),
	}

	if as.backend == schema.NoneBackend || as.db == nil {
		return status, nil
	}

	// Get total runs
	runsQuery := fmt.Sprintf("SELECT COUNT(*) FROM %s", quoteTableName(auditRunsTable, as.backend))
	row := as.db.QueryRow(runsQuery)
	if err := row.Scan(&status.TotalRuns); err != nil {
		return status, fmt.Errorf("failed to get total runs: %w", err)
	}

	if status.TotalRuns > 0 {
		// Get last run info
		lastRunQuery := fmt.Sprintf("SELECT audit_id, start_time FROM %s ORDER BY audit_id DESC LIMIT 1", quoteTableName(auditRunsTable, as.backend))
		row = as.db.QueryRow(lastRunQuery)

		switch as.backend {
		case schema.SQLiteBackend:
			var lastRunID int64
			var lastRunTimeStr string
			if err := row.Scan(&lastRunID, &lastRunTimeStr); err != nil {
				return status, fmt.Errorf("failed to get last run info: %w", err)
			}
			status.LastRunID = lastRunID
			lastRunTime, err := time.Parse(time.RFC3339Nano, lastRunTimeStr)
			if err != nil {
				return status, fmt.Errorf("failed to parse last run time: %w", err)
			}
			status.LastRunTime = lastRunTime
		default: // MySQL and PostgreSQL store as native datetime
			if err := row.Scan(&status.LastRunID, &status.LastRunTime); err != nil {
				return status, fmt.Errorf("failed to get last run info: %w", err)
			}
		}

		// Get oldest run time
		oldestRunQuery := fmt.Sprintf("SELECT start_time FROM %s ORDER BY audit_id ASC LIMIT 1", quoteTableName(auditRunsTable, as.backend))
		row = as.db.QueryRow(oldestRunQuery)

		switch as.backend {
		case schema.SQLiteBackend:
			var oldestRunTimeStr string
			if err := row.Scan(&oldestRunTimeStr); err != nil {
				return status, fmt.Errorf("failed to get oldest run time: %w", err)
			}
			oldestRunTime, err := time.Parse(time.RFC3339Nano, oldestRunTimeStr)
			if err != nil {
				return status, fmt.Errorf("failed to parse oldest run time: %w", err)
			}
			status.OldestRunTime = oldestRunTime
		default: // MySQL and PostgreSQL store as native datetime
			if err := row.Scan(&status.OldestRunTime); err != nil {
				return status, fmt.Errorf("failed to get oldest run time: %w", err)
			}
		}

		// Get total checks recorded across all runs
		checksQuery := fmt.Sprintf("SELECT COUNT(*) FROM %s", quoteTableName(checkResultsTable, as.backend))
		row = as.db.QueryRow(checksQuery)
		if err := row.Scan(&status.TotalChecksRun); err != nil {
			return status, fmt.Errorf("failed to get total checks run: %w", err)
		}
	}

	// Get table sizes
	tables := []string{auditRunsTable, checkResultsTable}
	for _, table := range tables {
		quotedTable := quoteTableName(table, as.backend)
		countQuery := fmt.Sprintf("SELECT COUNT(*) FROM %s", quotedTable)
		row = as.db.QueryRow(countQuery)
		var count int64
		if err := row.Scan(&count); err != nil {
			return status, fmt.Errorf("failed to get count for table %s: %w", table, err)
		}
		status.TableSizes[table] = count
	}

	return status, nil
}

// GetAllAuditRuns retrieves all audit runs from the store.
func (as *AuditStoreImpl) GetAllAuditRuns() ([]schema.AuditRunRecord, error) {
	// Skip for NoneBackend
	if as.backend == schema.NoneBackend || as.db == nil {
		return nil, nil
	}

	quotedTableName := quoteTableName(auditRunsTable, as.backend)
	query := fmt.Sprintf("SELECT audit_id, repo_path, start_time, end_time, run_duration_ms, total_commits, passed, config_params FROM %s ORDER BY audit_id", quotedTableName)

	rows, err := as.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query audit runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []schema.AuditRunRecord

	for rows.Next() {
		var record schema.AuditRunRecord

		switch as.backend {
		case schema.SQLiteBackend:
			var startTimeStr string
			var endTimeStr *string
			if err := rows.Scan(&record.AuditID, &record.RepoPath, &startTimeStr, &endTimeStr, &record.RunDurationMs, &record.TotalCommits, &record.Passed, &record.ConfigParams); err != nil {
				return nil, fmt.Errorf("failed to scan audit run: %w", err)
			}
			// Parse start time
			startTime, err := time.Parse(time.RFC3339Nano, startTimeStr)
			if err != nil {
				return nil, fmt.Errorf("failed to parse start_time: %w", err)
			}
			record.StartTime = startTime
			// Parse end time if present
			if endTimeStr != nil {
				endTime, err := time.Parse(time.RFC3339Nano, *endTimeStr)
				if err != nil {
					return nil, fmt.Errorf("failed to parse end_time: %w", err)
				}
				record.EndTime = &endTime
			}
		default: // MySQL and PostgreSQL
			if err := rows.Scan(&record.AuditID, &record.RepoPath, &record.StartTime, &record.EndTime, &record.RunDurationMs, &record.TotalCommits, &record.Passed, &record.ConfigParams); err != nil {
				return nil, fmt.Errorf("failed to scan audit run: %w", err)
			}
		}

		results = append(results, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating audit runs: %w", err)
	}

	return results, nil
}

// GetAllCheckResults retrieves all per-check results from the store.
func (as *AuditStoreImpl) GetAllCheckResults() ([]schema.CheckResultRecord, error) {
	// Skip for NoneBackend
	if as.backend == schema.NoneBackend || as.db == nil {
		return nil, nil
	}

	quotedTableName := quoteTableName(checkResultsTable, as.backend)
	query := fmt.Sprintf(`SELECT audit_id, check_name, status, violations, note, recorded_at
    FROM %s ORDER BY audit_id, check_name`, quotedTableName)

	rows, err := as.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query check results: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []schema.CheckResultRecord

	for rows.Next() {
		var record schema.CheckResultRecord

		switch as.backend {
		case schema.SQLiteBackend:
			var recordedAtStr string
			if err := rows.Scan(&record.AuditID, &record.CheckName, &record.Status, &record.Violations, &record.Note, &recordedAtStr); err != nil {
				return nil, fmt.Errorf("failed to scan check result: %w", err)
			}
			// Parse recorded time
			recordedAt, err := time.Parse(time.RFC3339Nano, recordedAtStr)
			if err != nil {
				return nil, fmt.Errorf("failed to parse recorded_at: %w", err)
			}
			record.RecordedAt = recordedAt
		default: // MySQL and PostgreSQL
			if err := rows.Scan(&record.AuditID, &record.CheckName, &record.Status, &record.Violations, &record.Note, &record.RecordedAt); err != nil {
				return nil, fmt.Errorf("failed to scan check result: %w", err)
			}
		}

		results = append(results, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating check results: %w", err)
	}

	return results, nil
}
