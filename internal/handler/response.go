// Package handler provides HTTP handlers for the Roster API.
package handler

import (
	"encoding/json"
	"net/http"
)

// Response messages surfaced to API clients.
const (
	msgUserNotFound      = "User not found"
	msgAllFieldsRequired = "All fields are required"
	msgEmailInvalid      = "Email is invalid"
	msgEmailTaken        = "Email is already in use"
	msgInvalidBody       = "Invalid request body"
	msgInternalError     = "Internal server error"
)

// messageBody is the JSON error envelope: {"message": "..."}.
type messageBody struct {
	Message string `json:"message"`
}

// writeJSON encodes v as the response body with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeMessage writes a {"message": ...} body with the given status.
func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, messageBody{Message: msg})
}
