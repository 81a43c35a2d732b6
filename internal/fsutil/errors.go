package fsutil

import "fmt"

// WriteError represents a failed filesystem write.
type WriteError struct {
	// Message is the error message.
	Message string
	// Path is the file or directory being written.
	Path string
	// Cause is the underlying error.
	Cause error
}

// Error implements the error interface.
func (e *WriteError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Message, e.Path, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Message, e.Path)
}

// Unwrap returns the underlying cause error.
func (e *WriteError) Unwrap() error {
	return e.Cause
}

func newWriteError(message, path string, cause error) *WriteError {
	return &WriteError{
		Message: message,
		Path:    path,
		Cause:   cause,
	}
}
