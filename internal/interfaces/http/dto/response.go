package dto

// ErrorResponse is the body of every failed request
type ErrorResponse struct {
	Error string `json:"error"`
}

// NewErrorResponse creates an error response
func NewErrorResponse(message string) ErrorResponse {
	return ErrorResponse{Error: message}
}

// MessageResponse carries a human-readable confirmation
type MessageResponse struct {
	Message string `json:"message"`
}
