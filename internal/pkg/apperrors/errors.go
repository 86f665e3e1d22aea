package apperrors

import "errors"

// Common errors
var (
	// Resource errors
	ErrResourceNotFound = errors.New("resource not found")
	ErrIdentifierExists = errors.New("identifier already exists")
	ErrConflict         = errors.New("conflict")

	// Authentication errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountNotApproved = errors.New("account not approved")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("invalid token")

	// Authorization errors
	ErrPermissionDenied = errors.New("permission denied")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")

	// Upstream errors
	ErrUpstream        = errors.New("upstream service error")
	ErrUpstreamTimeout = errors.New("upstream service timeout")
)

// Student errors
var (
	ErrStudentNotFound = wrapSentinel(ErrResourceNotFound, "student not found")
	ErrTCNoExists      = wrapSentinel(ErrIdentifierExists, "a student with this TC number already exists")
	ErrInvalidStatus   = wrapSentinel(ErrConflict, "status transition not allowed")
)

// Record errors
var (
	ErrGradeNotFound      = wrapSentinel(ErrResourceNotFound, "grade not found")
	ErrAttendanceNotFound = wrapSentinel(ErrResourceNotFound, "attendance record not found")
	ErrZeroTotalHours     = wrapSentinel(ErrValidationFailed, "total hours must be greater than zero")
	ErrAttendedExceeds    = wrapSentinel(ErrValidationFailed, "attended hours cannot exceed total hours")
)

// Staff user errors
var (
	ErrUserNotFound        = wrapSentinel(ErrResourceNotFound, "user not found")
	ErrUsernameExists      = wrapSentinel(ErrIdentifierExists, "username already exists")
	ErrEmailAlreadyExists  = wrapSentinel(ErrIdentifierExists, "email already exists")
	ErrSeedAdminImmutable  = wrapSentinel(ErrPermissionDenied, "default admin user cannot be modified")
	ErrSelfDeleteForbidden = wrapSentinel(ErrPermissionDenied, "cannot delete your own account")
	ErrAdminRequired       = wrapSentinel(ErrPermissionDenied, "admin access required")
)

func wrapSentinel(base error, message string) error {
	return &CustomError{Err: base, Message: message}
}

// NewResourceNotFoundError creates a new custom error for resource not found with a message
func NewResourceNotFoundError(message string) error {
	return &CustomError{
		Err:     ErrResourceNotFound,
		Message: message,
	}
}

// NewConflictError creates a new custom error for conflict situations with a message
func NewConflictError(message string) error {
	return &CustomError{
		Err:     ErrConflict,
		Message: message,
	}
}

// NewForbiddenError creates a new custom error for permission denied with a message
func NewForbiddenError(message string) error {
	return &CustomError{
		Err:     ErrPermissionDenied,
		Message: message,
	}
}

// NewValidationError creates a new custom error for invalid input with a message
func NewValidationError(message string) error {
	return &CustomError{
		Err:     ErrValidationFailed,
		Message: message,
	}
}

// Is returns whether target matches any of the errors in errList
func Is(err, target error, errList ...error) bool {
	if errors.Is(err, target) {
		return true
	}

	for _, e := range errList {
		if errors.Is(err, e) {
			return true
		}
	}

	return false
}

// Message returns the user-facing message of the first CustomError in the chain, or fallback.
func Message(err error, fallback string) string {
	var ce *CustomError
	if errors.As(err, &ce) && ce.Message != "" {
		return ce.Message
	}
	return fallback
}

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err     error
	Message string
	Details map[string]interface{}
}

// Error implements error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap interface
func (e *CustomError) Unwrap() error {
	return e.Err
}

// WithDetails adds context details to the error
func (e *CustomError) WithDetails(details map[string]interface{}) *CustomError {
	e.Details = details
	return e
}
