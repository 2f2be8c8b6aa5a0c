package common

import (
	"encoding/json"
	"net/http"

	"skill_tracker/internal/platform/logger"
)

const genericServerError = "Internal server error"

type ErrorResponse struct {
	Error string `json:"error"`
}

func RespondWithError(w http.ResponseWriter, code int, message string) {
	RespondWithJSON(w, code, ErrorResponse{Error: message})
}

// RespondWithServiceError writes the status mapped from err. Client errors
// carry ClientMessage(err); server errors are logged and answered generically.
func RespondWithServiceError(w http.ResponseWriter, r *http.Request, log *logger.Logger, err error) {
	code := HTTPStatusFromError(err)
	if code >= http.StatusInternalServerError {
		log.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		RespondWithError(w, code, genericServerError)
		return
	}
	RespondWithError(w, code, ClientMessage(err))
}

func RespondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error": "Failed to marshal JSON response"}`))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}
