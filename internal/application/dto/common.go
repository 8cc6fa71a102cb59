package dto

import "time"

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// HealthResponse estado del servicio.
type HealthResponse struct {
	Status           string    `json:"status"`
	ImportInProgress bool      `json:"importInProgress"`
	Time             time.Time `json:"time"`
}
