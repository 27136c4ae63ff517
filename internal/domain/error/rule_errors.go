package error

import "errors"

// Tag rule domain errors.
var (
	// ErrRuleNotFound is returned when a rule is not found for the user.
	ErrRuleNotFound = errors.New("rule not found")

	// ErrRuleExpressionRequired is returned when a rule has an empty expression.
	ErrRuleExpressionRequired = errors.New("rule expression is required")

	// ErrRuleExpressionTooLong is returned when a rule expression exceeds the maximum length.
	ErrRuleExpressionTooLong = errors.New("rule expression must be at most 255 characters")
)

// RuleErrorCode defines error codes for tag rule errors.
type RuleErrorCode string

const (
	ErrCodeRuleExpressionRequired RuleErrorCode = "RUL-010001"
	ErrCodeRuleExpressionTooLong  RuleErrorCode = "RUL-010002"
	ErrCodeRuleTagNotFound        RuleErrorCode = "RUL-010003"
	ErrCodeRuleNotFound           RuleErrorCode = "RUL-020001"
)

// RuleError represents a tag rule error with code and message.
type RuleError struct {
	Code    RuleErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *RuleError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *RuleError) Unwrap() error {
	return e.Err
}

// NewRuleError creates a new RuleError with the given code and message.
func NewRuleError(code RuleErrorCode, message string, err error) *RuleError {
	return &RuleError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
