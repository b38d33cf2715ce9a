package errcode

import (
	"github.com/gnames/gn"
)

const (
	UnknownError gn.ErrorCode = iota

	// File System errors
	CreateDirError
	CopyFileError
	ReadFileError

	// Logging errors
	CreateLogFileError

	// Ingestion errors
	ConfigurationError
	SchemaError
	RecordDecodeError
	ReferentialWarning

	// Manifest errors
	ManifestConfigError

	// Batch errors
	BatchCancelledError
	BatchAllInputsFailedError

	// Export errors
	ExportCSVError
	ExportSQLiteError
	ExportMetricsError

	// pol.hash conversion errors
	PolHashNoFilesError
	PolHashParseError
)
