package domain

import (
	"errors"
	"fmt"
)

var (
	ErrBatchNotFound   = errors.New("import batch not found")
	ErrDuplicateImport = errors.New("duplicate import in progress")
)

// ValidationKind tags a validation failure with the domain concept that
// rejected the input.
type ValidationKind string

const (
	KindInvalidInput       ValidationKind = "invalid_input"
	KindInvalidIban        ValidationKind = "invalid_iban"
	KindInvalidAmount      ValidationKind = "invalid_amount"
	KindInvalidTransaction ValidationKind = "invalid_transaction"
	KindInvalidTransition  ValidationKind = "invalid_transition"
)

// ValidationError is the single error type for domain validation failures.
// Callers that need to distinguish variants match on Kind.
type ValidationError struct {
	Kind    ValidationKind
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func newValidationError(kind ValidationKind, format string, args ...interface{}) *ValidationError {
	return &ValidationError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is a domain validation failure,
// optionally of a specific kind.
func IsValidation(err error, kinds ...ValidationKind) bool {
	var verr *ValidationError
	if !errors.As(err, &verr) {
		return false
	}
	if len(kinds) == 0 {
		return true
	}
	for _, kind := range kinds {
		if verr.Kind == kind {
			return true
		}
	}
	return false
}
