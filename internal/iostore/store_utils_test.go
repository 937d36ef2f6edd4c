package iostore

import (
	"testing"
	"time"

	"github.com/huangsam/repoguard/schema"
	"github.com/stretchr/testify/assert"
)

func TestValidateTableName(t *testing.T) {
	tests := []struct {
		name    string
		table   string
		wantErr bool
	}{
		{name: "valid simple name", table: "repoguard_log_cache", wantErr: false},
		{name: "valid with leading underscore", table: "_cache", wantErr: false},
		{name: "empty name", table: "", wantErr: true},
		{name: "leading digit", table: "1cache", wantErr: true},
		{name: "injection attempt", table: "cache; DROP TABLE users", wantErr: true},
		{name: "hyphenated", table: "log-cache", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateTableName(tt.table)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestQuoteTableName(t *testing.T) {
	assert.Equal(t, `"runs"`, quoteTableName("runs", schema.SQLiteBackend))
	assert.Equal(t, "`runs`", quoteTableName("runs", schema.MySQLBackend))
	assert.Equal(t, `"runs"`, quoteTableName("runs", schema.PostgreSQLBackend))
}

func TestFormatTime(t *testing.T) {
	ts := time.Date(2026, 8, 24, 10, 30, 0, 0, time.UTC)

	// SQLite stores text
	formatted := formatTime(ts, schema.SQLiteBackend)
	str, ok := formatted.(string)
	assert.True(t, ok)
	assert.Equal(t, ts.Format(time.RFC3339Nano), str)

	// SQL servers take native time values
	native := formatTime(ts, schema.PostgreSQLBackend)
	assert.Equal(t, ts, native)
}
