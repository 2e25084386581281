package models

// ErrorResponse is the JSON body of every API error.
type ErrorResponse struct {
	Status string `json:"status"`
	Error  string `json:"error"`
}

// HealthResponse is the JSON body of the health check.
type HealthResponse struct {
	Status string `json:"status"`
}
