package error

import "errors"

// Link domain errors.
var (
	// ErrDuplicateLink is returned when either leg of a new link already belongs to a link.
	ErrDuplicateLink = errors.New("transaction is already linked")

	// ErrLinkNotFound is returned when a link is not found.
	ErrLinkNotFound = errors.New("link not found")

	// ErrResolverBusy is returned when another resolver run holds the user's lock.
	ErrResolverBusy = errors.New("link resolution already running for user")
)

// LinkErrorCode defines error codes for link errors.
type LinkErrorCode string

const (
	ErrCodeDuplicateLink LinkErrorCode = "LNK-010001"
	ErrCodeLinkNotFound  LinkErrorCode = "LNK-010002"
	ErrCodeResolverBusy  LinkErrorCode = "LNK-020001"
)

// LinkError represents a link error with code and message.
type LinkError struct {
	Code    LinkErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *LinkError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *LinkError) Unwrap() error {
	return e.Err
}

// NewLinkError creates a new LinkError with the given code and message.
func NewLinkError(code LinkErrorCode, message string, err error) *LinkError {
	return &LinkError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
