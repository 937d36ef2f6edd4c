package schema

// Custom string types for type safety.
type (
	// CheckName identifies a registered audit check.
	CheckName string

	// CheckStatus represents the outcome status of a check.
	CheckStatus string

	// OutputMode represents the format of the output.
	OutputMode string

	// DatabaseBackend represents the database backend for storage.
	DatabaseBackend string
)

// All registered audit checks.
const (
	CheckCommitHashes   CheckName = "commit-hashes"   // hashes are well-formed hex and unique
	CheckAuthorDates    CheckName = "author-dates"    // author dates parse under strict ISO-8601
	CheckMessages       CheckName = "messages"        // messages are non-empty with bounded subjects
	CheckSignoffs       CheckName = "signoffs"        // messages carry a Signed-off-by trailer
	CheckLicenseFile    CheckName = "license-file"    // LICENSE exists and matches the expected pattern
	CheckPackageJSON    CheckName = "package-json"    // package.json parses and carries required fields
	CheckGitignore      CheckName = "gitignore"       // .gitignore exists with the required entries
	CheckForbiddenPaths CheckName = "forbidden-paths" // no commit touches a forbidden path
	CheckSecrets        CheckName = "secrets"         // secret scanner reports zero findings
)

// All check statuses supported.
const (
	StatusPass CheckStatus = "pass"
	StatusFail CheckStatus = "fail"
	StatusSkip CheckStatus = "skip"
)

// All output modes supported.
const (
	CSVOut     OutputMode = "csv"
	TextOut    OutputMode = "text" // default
	JSONOut    OutputMode = "json"
	ParquetOut OutputMode = "parquet"
)

// All database backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none"
)

// AllCheckNames lists every registered check, in report order.
var AllCheckNames = []CheckName{
	CheckCommitHashes,
	CheckAuthorDates,
	CheckMessages,
	CheckSignoffs,
	CheckLicenseFile,
	CheckPackageJSON,
	CheckGitignore,
	CheckForbiddenPaths,
	CheckSecrets,
}

// ValidCheckNames lists all valid check names.
var ValidCheckNames = map[CheckName]struct{}{
	CheckCommitHashes:   {},
	CheckAuthorDates:    {},
	CheckMessages:       {},
	CheckSignoffs:       {},
	CheckLicenseFile:    {},
	CheckPackageJSON:    {},
	CheckGitignore:      {},
	CheckForbiddenPaths: {},
	CheckSecrets:        {},
}

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	CSVOut:     {},
	TextOut:    {},
	JSONOut:    {},
	ParquetOut: {},
}

// ValidDatabaseBackends lists all valid database backends.
var ValidDatabaseBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}
