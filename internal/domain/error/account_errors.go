package error

import "errors"

// Account, institution and import domain errors.
var (
	// ErrAccountNotFound is returned when an account is not found.
	ErrAccountNotFound = errors.New("account not found")

	// ErrInstitutionNotFound is returned when an institution is not found.
	ErrInstitutionNotFound = errors.New("institution not found")

	// ErrRequisitionNotFound is returned when a requisition is not found for the user.
	ErrRequisitionNotFound = errors.New("requisition not found")

	// ErrRequisitionNotLinked is returned when syncing accounts for a requisition the user has not completed.
	ErrRequisitionNotLinked = errors.New("requisition has not been linked yet")

	// ErrBankingProvider is returned when the open-banking provider call fails.
	ErrBankingProvider = errors.New("banking provider request failed")

	// ErrImportInProgress is returned when an import for the user is already running.
	ErrImportInProgress = errors.New("import already in progress")
)

// AccountErrorCode defines error codes for account errors.
// Format: ACC-XXYYYY where XX is category and YYYY is specific error.
type AccountErrorCode string

const (
	// Lookup errors (01XXXX)
	ErrCodeAccountNotFound       AccountErrorCode = "ACC-010001"
	ErrCodeInstitutionNotFound   AccountErrorCode = "ACC-010002"
	ErrCodeRequisitionNotFound   AccountErrorCode = "ACC-010003"
	ErrCodeRequisitionNotLinked  AccountErrorCode = "ACC-010004"
	ErrCodeMissingAccountFields  AccountErrorCode = "ACC-010005"

	// Provider and import errors (02XXXX)
	ErrCodeBankingProvider  AccountErrorCode = "ACC-020001"
	ErrCodeImportInProgress AccountErrorCode = "ACC-020002"
)

// AccountError represents an account error with code and message.
type AccountError struct {
	Code    AccountErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *AccountError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *AccountError) Unwrap() error {
	return e.Err
}

// NewAccountError creates a new AccountError with the given code and message.
func NewAccountError(code AccountErrorCode, message string, err error) *AccountError {
	return &AccountError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
