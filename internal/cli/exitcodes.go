package cli

import (
	"errors"
	"io/fs"

	"github.com/yaklabco/mdtree/pkg/parser"
)

// Exit codes for mdtree.
const (
	// ExitSuccess indicates successful execution.
	ExitSuccess = 0

	// ExitParseError indicates the document could not be parsed.
	ExitParseError = 1

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitConfigError indicates configuration file errors.
	ExitConfigError = 65

	// ExitInternalError indicates an internal error.
	ExitInternalError = 70

	// ExitIOError indicates file I/O errors.
	ExitIOError = 74
)

// errConfig wraps configuration loading failures so the exit code can
// distinguish them from parse failures.
type errConfig struct{ err error }

func (e *errConfig) Error() string { return e.err.Error() }
func (e *errConfig) Unwrap() error { return e.err }

// ExitCodeFromError maps a command error to a process exit code.
func ExitCodeFromError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var cfgErr *errConfig
	switch {
	case errors.As(err, &cfgErr):
		return ExitConfigError
	case errors.Is(err, parser.ErrTooDeeplyNested),
		errors.Is(err, parser.ErrMalformedDelimiterState):
		return ExitParseError
	case errors.Is(err, fs.ErrNotExist), errors.Is(err, fs.ErrPermission):
		return ExitIOError
	default:
		return ExitInternalError
	}
}
