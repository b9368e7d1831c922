// Package httpx holds small helpers shared by handlers and middleware.
package httpx

import (
	"encoding/json"
	"net/http"
)

// Response is the JSON envelope returned by every admin operation. Failures
// are reported inside the envelope with HTTP 200; the HTTP status does not
// distinguish error classes.
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// WriteJSON writes v as an application/json response.
func WriteJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

// OK writes a success envelope.
func OK(w http.ResponseWriter) {
	WriteJSON(w, Response{Success: true})
}

// Fail writes a failure envelope with the given human-readable message.
func Fail(w http.ResponseWriter, message string) {
	WriteJSON(w, Response{Success: false, Message: message})
}

// DecodeJSON decodes the request body into v.
func DecodeJSON(r *http.Request, v interface{}) error {
	return json.NewDecoder(r.Body).Decode(v)
}
