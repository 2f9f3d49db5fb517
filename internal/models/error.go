package models

// APIError is the standardized error envelope returned by the API
type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// Error code constants
const (
	// General errors
	ErrBadRequest       = "BAD_REQUEST"
	ErrUnauthorized     = "UNAUTHORIZED"
	ErrForbidden        = "FORBIDDEN"
	ErrNotFound         = "NOT_FOUND"
	ErrConflict         = "CONFLICT"
	ErrInternalServer   = "INTERNAL_SERVER_ERROR"
	ErrValidationFailed = "VALIDATION_FAILED"

	// Resource-specific errors
	ErrMenuItemNotFound = "MENU_ITEM_NOT_FOUND"
	ErrBookingNotFound  = "BOOKING_NOT_FOUND"

	// OAuth/Auth errors (maintain RFC 6749 compatibility)
	ErrInvalidRequest       = "invalid_request"
	ErrInvalidClient        = "invalid_client"
	ErrInvalidGrant         = "invalid_grant"
	ErrUnauthorizedClient   = "unauthorized_client"
	ErrUnsupportedGrantType = "unsupported_grant_type"
	ErrInvalidScope         = "invalid_scope"
)

// NewAPIError creates a new API error with the given code and message
func NewAPIError(code, message string, details ...map[string]interface{}) APIError {
	err := APIError{
		Code:    code,
		Message: message,
	}
	if len(details) > 0 {
		err.Details = details[0]
	}
	return err
}

// NewValidationError builds a VALIDATION_FAILED error naming the offending fields
func NewValidationError(fields map[string]interface{}) APIError {
	return APIError{
		Code:    ErrValidationFailed,
		Message: "one or more fields failed validation",
		Details: fields,
	}
}

// OAuth2Error represents an OAuth2 error response (RFC 6749)
type OAuth2Error struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description,omitempty"`
}

// NewOAuth2Error creates a new OAuth2 error response
func NewOAuth2Error(code, description string) OAuth2Error {
	return OAuth2Error{
		Error:            code,
		ErrorDescription: description,
	}
}
