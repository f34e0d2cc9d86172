package dto

// ErrorCode represents standardized error codes
type ErrorCode string

// Standard error codes for the application. The API maps every recoverable
// repository error kind to a distinct, stable code.
const (
	// Resource errors
	ErrorCodeUserNotFound         ErrorCode = "RES_001"
	ErrorCodeActivityNotFound     ErrorCode = "RES_002"
	ErrorCodeRegistrationNotFound ErrorCode = "RES_003"

	// Conflict errors
	ErrorCodeEmailAlreadyExists    ErrorCode = "CON_001"
	ErrorCodeActivityAlreadyExists ErrorCode = "CON_002"
	ErrorCodeAlreadyRegistered     ErrorCode = "CON_003"
	ErrorCodeActivityFull          ErrorCode = "CON_004"

	// Validation errors
	ErrorCodeValidationFailed ErrorCode = "VAL_001"
	ErrorCodeInvalidCapacity  ErrorCode = "VAL_002"

	// Server errors
	ErrorCodeInternalServer ErrorCode = "SRV_001"
	ErrorCodeDatabaseError  ErrorCode = "SRV_002"
)

// ErrorSeverity represents the severity level of an error
type ErrorSeverity string

// Severity levels
const (
	ErrorSeverityInfo     ErrorSeverity = "INFO"
	ErrorSeverityWarning  ErrorSeverity = "WARNING"
	ErrorSeverityError    ErrorSeverity = "ERROR"
	ErrorSeverityCritical ErrorSeverity = "CRITICAL"
)

// ErrorDetail represents detailed error information
type ErrorDetail struct {
	Code     ErrorCode     `json:"code" example:"CON_004"`
	Message  string        `json:"message" example:"Activity has reached its maximum number of participants"`
	Field    string        `json:"field,omitempty" example:"email"`
	Severity ErrorSeverity `json:"severity" example:"ERROR"`
	Details  interface{}   `json:"details,omitempty"`
}

// NewErrorDetail creates a new error detail
func NewErrorDetail(code ErrorCode, message string) *ErrorDetail {
	return &ErrorDetail{
		Code:     code,
		Message:  message,
		Severity: ErrorSeverityError,
	}
}

// WithField adds a field name to the error detail
func (e *ErrorDetail) WithField(field string) *ErrorDetail {
	e.Field = field
	return e
}

// WithSeverity sets the severity level of the error
func (e *ErrorDetail) WithSeverity(severity ErrorSeverity) *ErrorDetail {
	e.Severity = severity
	return e
}

// WithDetails adds additional details to the error
func (e *ErrorDetail) WithDetails(details interface{}) *ErrorDetail {
	e.Details = details
	return e
}
