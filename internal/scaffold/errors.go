package scaffold

import "fmt"

// ValidationError reports a configuration field that failed validation.
// Its message is safe to show to callers.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Reason)
}

// WriteError reports a filesystem failure while materializing a
// scaffold tree. Path names the file or directory that failed and is
// for operator logs only; it must not be surfaced to callers.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("writing scaffold at %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }
