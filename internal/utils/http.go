package utils

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// WriteJSON writes data as an application/json response with statusCode and
// returns the number of body bytes written. When data cannot be encoded
// nothing but a plain 500 is sent.
func WriteJSON(w http.ResponseWriter, data any, statusCode int) (int, error) {
	body, err := json.Marshal(data)
	if err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return 0, fmt.Errorf("encode json response: %w", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(statusCode)

	return w.Write(body)
}
