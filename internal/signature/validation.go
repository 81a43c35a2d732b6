package signature

import (
	"fmt"
	"strings"
)

// ValidationError reports a rejected argument value.
type ValidationError struct {
	// Field is the flag or field name that failed.
	Field string
	// Message describes the failure.
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// NonEmpty trims value and rejects it if nothing is left.
func NonEmpty(field, value string) (string, error) {
	v := strings.TrimSpace(value)
	if v == "" {
		return "", &ValidationError{Field: field, Message: "empty string"}
	}
	return v, nil
}

// Attestation trims value and requires it to read RequiredPhrase, ignoring case.
// The trimmed value is returned as given, not upper-cased.
func Attestation(field, value string) (string, error) {
	v, err := NonEmpty(field, value)
	if err != nil {
		return "", err
	}
	if strings.ToUpper(v) != RequiredPhrase {
		return "", &ValidationError{
			Field:   field,
			Message: fmt.Sprintf("attestation must be %q", RequiredPhrase),
		}
	}
	return v, nil
}
