package model

// ErrorResponse is the consistent JSON structure for all API error responses.
type ErrorResponse struct {
	Error     string `json:"error"`
	Code      string `json:"code,omitempty"`
	RequestID string `json:"requestId,omitempty"`
}

// Error codes returned in ErrorResponse.Code
const (
	CodeInvalidArgument        = "INVALID_ARGUMENT"
	CodeAccountExists          = "ACCOUNT_EXISTS"
	CodeAccountNotFound        = "ACCOUNT_NOT_FOUND"
	CodeAuthenticationRequired = "AUTHENTICATION_REQUIRED"
	CodeAuthenticationFailed   = "AUTHENTICATION_FAILED"
	CodeAuthenticationCanceled = "AUTHENTICATION_CANCELLED"
	CodeAuthenticationError    = "AUTHENTICATION_ERROR"
	CodeInternal               = "INTERNAL"
)
