package constants

// OAuthErrorCode represents OAuth error codes
type OAuthErrorCode string

const (
	// returned by the provider on the callback
	OAuthErrorAccessDenied       OAuthErrorCode = "access_denied"
	OAuthErrorInvalidRequest     OAuthErrorCode = "invalid_request"
	OAuthErrorUnauthorizedClient OAuthErrorCode = "unauthorized_client"
	OAuthErrorServerError        OAuthErrorCode = "server_error"

	// raised by the callback handler itself
	OAuthErrorMissingCode    OAuthErrorCode = "missing_code"
	OAuthErrorMissingState   OAuthErrorCode = "missing_state"
	OAuthErrorInvalidState   OAuthErrorCode = "invalid_state"
	OAuthErrorExchangeFailed OAuthErrorCode = "exchange_failed"
	OAuthErrorProfileFailed  OAuthErrorCode = "profile_failed"
)

// OAuthErrorMessages maps error codes to user-facing messages
var OAuthErrorMessages = map[OAuthErrorCode]string{
	OAuthErrorAccessDenied:       "You denied the authorization request. Please try again if you wish to continue.",
	OAuthErrorInvalidRequest:     "Invalid OAuth request. Please try logging in again.",
	OAuthErrorUnauthorizedClient: "This application is not authorized with the identity provider.",
	OAuthErrorServerError:        "The identity provider encountered an error. Please try again later.",

	OAuthErrorMissingCode:    "Authorization code is missing. Please try logging in again.",
	OAuthErrorMissingState:   "Security validation failed. Please try logging in again.",
	OAuthErrorInvalidState:   "Invalid or expired login attempt. Please try logging in again.",
	OAuthErrorExchangeFailed: "Failed to complete authentication. Please try again.",
	OAuthErrorProfileFailed:  "Failed to retrieve your profile. Please try again.",
}

// GetOAuthErrorMessage returns a user-facing message for code
func GetOAuthErrorMessage(code OAuthErrorCode) string {
	if msg, ok := OAuthErrorMessages[code]; ok {
		return msg
	}
	return "An unexpected error occurred during authentication. Please try again."
}

// GetOAuthErrorMessageFromString is GetOAuthErrorMessage for raw query values
func GetOAuthErrorMessageFromString(code string) string {
	return GetOAuthErrorMessage(OAuthErrorCode(code))
}
