// Package utils holds small helpers shared by the HTTP handlers.
package utils

import (
	"encoding/json"
	"log"
	"net/http"
)

// RespondJSON writes payload as the JSON body for the given status. The
// payload is encoded before the status line goes out, so an encoding
// failure still produces a well-formed 500 instead of a truncated body.
func RespondJSON(w http.ResponseWriter, status int, payload any) {
	body, err := json.Marshal(payload)
	if err != nil {
		log.Printf("[http] failed to encode response payload: %v", err)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":"failed to encode response"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil {
		log.Printf("[http] failed to write response: %v", err)
	}
}

// RespondError writes the backend's uniform error document.
func RespondError(w http.ResponseWriter, status int, message string) {
	RespondJSON(w, status, map[string]string{"error": message})
}
