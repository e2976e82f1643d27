// Package logging provides a structured logging wrapper around charmbracelet/log.
package logging

// Field name constants for structured logging.
// Using constants prevents typos and enables IDE autocomplete.
const (
	// Common fields.
	FieldError = "error"
	FieldPath  = "path"
	FieldVault = "vault"

	// Request fields.
	FieldMethod   = "method"
	FieldStatus   = "status"
	FieldDuration = "duration"
	FieldRemote   = "remote"
	FieldSession  = "session"

	// Patch fields.
	FieldOperation  = "operation"
	FieldTargetType = "target_type"
	FieldTarget     = "target"

	// Periodic note fields.
	FieldPeriod   = "period"
	FieldOffset   = "offset"
	FieldTemplate = "template"

	// Search fields.
	FieldQuery   = "query"
	FieldResults = "results"

	// Command fields.
	FieldCommand = "command"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)
