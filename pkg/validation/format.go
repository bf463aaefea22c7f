// Package validation provides common validation utilities.
package validation

import (
	"fmt"

	"github.com/iwvelando/deposit-calculator/pkg/constants"
)

// ValidateOutputFormat checks if the output format is one of the supported formats.
func ValidateOutputFormat(format string) error {
	switch format {
	case constants.OutputFormatPretty, constants.OutputFormatCSV, constants.OutputFormatMarkdown:
		return nil
	}
	return fmt.Errorf("expected output format of %s, %s or %s, got %s",
		constants.OutputFormatPretty, constants.OutputFormatCSV, constants.OutputFormatMarkdown, format)
}

// ValidateStorageBackend checks if the storage backend is one of the supported backends.
func ValidateStorageBackend(backend string) error {
	switch backend {
	case constants.StorageBackendMemory, constants.StorageBackendFile,
		constants.StorageBackendSQLite, constants.StorageBackendPostgres:
		return nil
	}
	return fmt.Errorf("expected storage backend of %s, %s, %s or %s, got %s",
		constants.StorageBackendMemory, constants.StorageBackendFile,
		constants.StorageBackendSQLite, constants.StorageBackendPostgres, backend)
}

// ValidateIDStrategy checks if the record identifier strategy is supported.
func ValidateIDStrategy(strategy string) error {
	if strategy != constants.IDStrategyTimestamp && strategy != constants.IDStrategyMonotonic {
		return fmt.Errorf("expected id strategy of %s or %s, got %s",
			constants.IDStrategyTimestamp, constants.IDStrategyMonotonic, strategy)
	}
	return nil
}
