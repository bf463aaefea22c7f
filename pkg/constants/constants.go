// Package constants provides shared constants for the deposit-calculator application.
package constants

import "time"

// DateLayout is the canonical (ISO) civil date format used for storage and
// form input.
const DateLayout = "2006-01-02"

// DisplayDateLayout is the short date format shown in tables (es-ES).
const DisplayDateLayout = "02/01/2006"

// Financial constants
const (
	// DaysPerYear is the day-count basis used to derive the daily rate from
	// an effective annual rate.
	DaysPerYear = 360

	// TransactionTaxRate is the Colombian financial-transaction tax (4x1000).
	TransactionTaxRate = 0.004

	// DefaultWithholdingRate is the default withholding tax percentage
	// applied to investment yields.
	DefaultWithholdingRate = 4.0

	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100.0
)

// Storage keys, one per record collection.
const (
	InvestmentsKey    = "investments"
	TaxCalcsKey       = "transactionTaxCalcs"
	DateOffsetCalcKey = "dateOffsetCalcs"
)

// Storage backends
const (
	StorageBackendMemory   = "memory"
	StorageBackendFile     = "file"
	StorageBackendSQLite   = "sqlite"
	StorageBackendPostgres = "postgres"

	// DefaultStorageBackend is used when the configuration omits one.
	DefaultStorageBackend = StorageBackendFile

	// DefaultStoragePath is the directory used by the file backend when the
	// configuration omits one.
	DefaultStoragePath = "data"

	// DefaultSQLitePath is the database file used by the sqlite backend when
	// the configuration omits one.
	DefaultSQLitePath = "data/deposit-calculator.db"

	// DefaultStorageTimeout bounds each call to a networked backend.
	DefaultStorageTimeout = 5 * time.Second
)

// Identifier strategies
const (
	// IDStrategyTimestamp assigns the creation time in milliseconds. Two
	// records created within the same millisecond share an identifier.
	IDStrategyTimestamp = "timestamp"

	// IDStrategyMonotonic assigns the creation time in milliseconds, bumped
	// so every identifier is strictly greater than the previous one.
	IDStrategyMonotonic = "monotonic"
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"

	// OutputFormatMarkdown renders a markdown table through glamour
	OutputFormatMarkdown = "markdown"

	// DefaultMarkdownStyle is the glamour style used for markdown output.
	DefaultMarkdownStyle = "notty"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "config.yaml"

	// DefaultServerConfigFile is the default server configuration file name
	DefaultServerConfigFile = "server-config.yaml"

	// EnvPrefix prefixes environment overrides, e.g. CDT_STORAGE_BACKEND.
	EnvPrefix = "CDT"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address for the web UI
	DefaultServerAddress = ":8080"

	// DefaultMaxBodySizeBytes is the default maximum JSON request body size (64 KB)
	DefaultMaxBodySizeBytes int64 = 64 * 1024
)

// Presentation constants
const (
	// TotalsLabel marks the totals row of the investments table.
	TotalsLabel = "TOTALES"

	// EmptyCell is shown where a value does not apply or is absent.
	EmptyCell = "--"
)
