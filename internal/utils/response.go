package utils

import (
	"encoding/json"
	"net/http"
)

type Payload struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

type ErrorPayload struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// JSONResponse sends body as JSON with the given status.
func JSONResponse(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// ErrorResponse sends {"success":false,"error":message}.
func ErrorResponse(w http.ResponseWriter, status int, message string) {
	JSONResponse(w, status, ErrorPayload{Success: false, Error: message})
}
