// Package httputil provides shared HTTP response helpers.
//
// Two response dialects are served: plain JSON for the engine's own
// endpoints (health, status, request history) and the AWS JSON 1.1 dialect
// for the emulated API, whose errors use the {"__type","message"} envelope.
package httputil

import (
	"encoding/json"
	"net/http"
)

// AWSJSONContentType is the content type of the emulated API.
const AWSJSONContentType = "application/x-amz-json-1.1"

// RequestIDHeader carries the per-request identifier on every API response.
const RequestIDHeader = "x-amzn-RequestId"

// WriteJSON writes a JSON response with the given status code.
// It sets the Content-Type header to application/json.
func WriteJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

// WriteError writes an engine error response: {"error": code, "message": msg}.
func WriteError(w http.ResponseWriter, status int, errCode, message string) {
	WriteJSON(w, status, map[string]string{
		"error":   errCode,
		"message": message,
	})
}

// WriteAWSJSON writes an already-encoded AWS JSON 1.1 body.
func WriteAWSJSON(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", AWSJSONContentType)
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

// WriteNoContent writes a 204 No Content response.
func WriteNoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

// WriteOK writes a 200 OK response with data.
func WriteOK(w http.ResponseWriter, data any) {
	WriteJSON(w, http.StatusOK, data)
}

