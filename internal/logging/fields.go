// Package logging provides a structured logging wrapper around charmbracelet/log.
package logging

// Field name constants for structured logging.
// Using constants prevents typos and enables IDE autocomplete.
const (
	// Common fields.
	FieldError  = "error"
	FieldPath   = "path"
	FieldInput  = "input"
	FieldOutput = "output"
	FieldFormat = "format"

	// Parse fields.
	FieldBytes     = "bytes"
	FieldLines     = "lines"
	FieldBlocks    = "blocks"
	FieldRefs      = "refs"
	FieldMaxDepth  = "max_depth"
	FieldLanguage  = "language"
	FieldFenceInfo = "fence_info"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)
