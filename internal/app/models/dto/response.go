package dto

// APIResponse is the envelope of every successful JSON response
type APIResponse struct {
	Success bool        `json:"success" example:"true"`
	Count   *int        `json:"count,omitempty" example:"2"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty" example:"PDF deleted successfully"`
}

// ErrorResponse is the envelope of every failed request
type ErrorResponse struct {
	Success bool   `json:"success" example:"false"`
	Message string `json:"message" example:"Not authorized to access this route"`
}

// NewDataResponse wraps a single resource
func NewDataResponse(data interface{}) APIResponse {
	return APIResponse{Success: true, Data: data}
}

// NewListResponse wraps a collection together with its size
func NewListResponse(data interface{}, count int) APIResponse {
	return APIResponse{Success: true, Count: &count, Data: data}
}

// NewMessageResponse builds a message-only success response
func NewMessageResponse(message string) APIResponse {
	return APIResponse{Success: true, Message: message}
}

// NewErrorResponse builds a failure envelope
func NewErrorResponse(message string) ErrorResponse {
	return ErrorResponse{Success: false, Message: message}
}
