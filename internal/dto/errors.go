package dto

// ErrorDetails is the body of every error response.
type ErrorDetails struct {
	StatusCode int      `json:"statusCode"`
	Message    []string `json:"message"`
}

func NewErrorDetails(status int, messages ...string) ErrorDetails {
	return ErrorDetails{StatusCode: status, Message: messages}
}
