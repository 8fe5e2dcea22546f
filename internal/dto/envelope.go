package dto

// Envelope is the response shape the frontend expects from every endpoint.
type Envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data"`
	Message string `json:"message"`
}
