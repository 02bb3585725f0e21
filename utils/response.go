package utils

import (
	"encoding/json"
	"net/http"
)

// RespondWithJSON sends a JSON response with the given status.
func RespondWithJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

// RespondWithError sends {"message": msg} with the given status. Clients
// surface this message verbatim, so keep it user-readable.
func RespondWithError(w http.ResponseWriter, code int, msg string) {
	RespondWithJSON(w, code, map[string]string{"message": msg})
}

type M map[string]interface{}
