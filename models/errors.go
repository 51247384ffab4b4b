package models

import "errors"

// Stage errors for the query pipeline. Each stage wraps the matching
// sentinel so callers can route failures without string matching.
var (
	// ErrSchemaUnavailable is fatal at startup: the database could not be
	// opened or introspected.
	ErrSchemaUnavailable = errors.New("schema unavailable")

	// ErrTranslationUnavailable covers transport failures talking to the
	// completion service during SQL generation.
	ErrTranslationUnavailable = errors.New("translation unavailable")

	// ErrGenerationFailed means the model answered but the candidate was
	// not an acceptable SELECT statement. It is never executed.
	ErrGenerationFailed = errors.New("sql generation failed")

	// ErrExecutionFailed wraps any database error while running the
	// generated statement.
	ErrExecutionFailed = errors.New("query execution failed")

	// ErrNarrationFailed covers transport or missing-content failures
	// while phrasing results back into prose.
	ErrNarrationFailed = errors.New("narration failed")

	// ErrUnsupportedFormat is returned for export formats other than json.
	ErrUnsupportedFormat = errors.New("unsupported export format")
)
