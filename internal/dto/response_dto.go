package dto

// ErrorResponse is the uniform failure envelope of every endpoint.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type HealthResponse struct {
	Success  bool   `json:"success"`
	Database string `json:"database"`
}
