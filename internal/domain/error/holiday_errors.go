package error

import "errors"

// Holiday domain errors.
var (
	// ErrHolidayNotFound is returned when a holiday is not found for the user.
	ErrHolidayNotFound = errors.New("holiday not found")

	// ErrHolidayNameRequired is returned when a holiday has no name.
	ErrHolidayNameRequired = errors.New("holiday name is required")

	// ErrHolidayInvalidRange is returned when a holiday ends before it starts.
	ErrHolidayInvalidRange = errors.New("holiday end date must not be before start date")
)

// HolidayErrorCode defines error codes for holiday errors.
type HolidayErrorCode string

const (
	ErrCodeHolidayNameRequired HolidayErrorCode = "HOL-010001"
	ErrCodeHolidayInvalidRange HolidayErrorCode = "HOL-010002"
	ErrCodeHolidayNotFound     HolidayErrorCode = "HOL-020001"
)

// HolidayError represents a holiday error with code and message.
type HolidayError struct {
	Code    HolidayErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *HolidayError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *HolidayError) Unwrap() error {
	return e.Err
}

// NewHolidayError creates a new HolidayError with the given code and message.
func NewHolidayError(code HolidayErrorCode, message string, err error) *HolidayError {
	return &HolidayError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
