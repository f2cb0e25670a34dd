package model

import "fmt"

// Error codes surfaced to API clients. Keep these values stable.
const (
	ErrCodeInvalidInput   = "INVALID_INPUT"
	ErrCodeDivisionByZero = "DIVISION_BY_ZERO"
)

// InvalidInputError is the deterministic validation failure for a simulation
// run. Code defaults to INVALID_INPUT; the margin-floor denominator case
// carries DIVISION_BY_ZERO.
type InvalidInputError struct {
	Field  string
	Reason string
	Code   string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid input: %s %s", e.Field, e.Reason)
}

// ErrorCode returns the API error code for this failure.
func (e *InvalidInputError) ErrorCode() string {
	if e.Code == "" {
		return ErrCodeInvalidInput
	}
	return e.Code
}
