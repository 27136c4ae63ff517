package error

import "errors"

// Tag domain errors.
var (
	// ErrTagNotFound is returned when a tag is not found or not visible to the user.
	ErrTagNotFound = errors.New("tag not found")

	// ErrTagNameRequired is returned when a tag is created without a name.
	ErrTagNameRequired = errors.New("tag name is required")

	// ErrTagNameTooLong is returned when a tag name exceeds the maximum length.
	ErrTagNameTooLong = errors.New("tag name must be at most 50 characters")

	// ErrTagReadOnly is returned when a user tries to modify a global or foreign tag.
	ErrTagReadOnly = errors.New("tag cannot be modified by this user")

	// ErrTagNestingTooDeep is returned when a parent tag is itself a child tag.
	ErrTagNestingTooDeep = errors.New("tags can only be nested one level deep")

	// ErrChildTagCategory is returned when a child tag is given its own category.
	ErrChildTagCategory = errors.New("child tags inherit their parent's category")

	// ErrTagHasChildren is returned when deleting a tag that still has child tags.
	ErrTagHasChildren = errors.New("tag has child tags")

	// ErrCategoryNotFound is returned when a category code is unknown.
	ErrCategoryNotFound = errors.New("category not found")
)

// TagErrorCode defines error codes for tag errors.
// Format: TAG-XXYYYY where XX is category and YYYY is specific error.
type TagErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeTagNameRequired    TagErrorCode = "TAG-010001"
	ErrCodeTagNameTooLong     TagErrorCode = "TAG-010002"
	ErrCodeTagNestingTooDeep  TagErrorCode = "TAG-010003"
	ErrCodeChildTagCategory   TagErrorCode = "TAG-010004"
	ErrCodeTagCategoryUnknown TagErrorCode = "TAG-010005"

	// Lookup and permission errors (02XXXX)
	ErrCodeTagNotFound    TagErrorCode = "TAG-020001"
	ErrCodeTagReadOnly    TagErrorCode = "TAG-020002"
	ErrCodeTagHasChildren TagErrorCode = "TAG-020003"
)

// TagError represents a tag error with code and message.
type TagError struct {
	Code    TagErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *TagError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *TagError) Unwrap() error {
	return e.Err
}

// NewTagError creates a new TagError with the given code and message.
func NewTagError(code TagErrorCode, message string, err error) *TagError {
	return &TagError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
