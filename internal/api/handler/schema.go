package handler

// errorResponse documents the error envelope rendered by the API error handler.
type errorResponse struct {
	Message string `json:"message" example:"order not found"`
}
