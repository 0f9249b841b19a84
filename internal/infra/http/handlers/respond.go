package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/dealdesk/dealdesk-backend/internal/usecase"
)

func respondJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// respondUseCaseError maps use-case error kinds to HTTP statuses, keeping the
// underlying message in the body.
func respondUseCaseError(w http.ResponseWriter, err error) {
	status := http.StatusBadGateway

	switch usecase.KindOf(err) {
	case usecase.KindValidation:
		status = http.StatusBadRequest
	case usecase.KindNotFound:
		status = http.StatusNotFound
	case usecase.KindUnauthenticated:
		status = http.StatusUnauthorized
	case usecase.KindForbidden:
		status = http.StatusForbidden
	case usecase.KindUnavailable:
		status = http.StatusServiceUnavailable
	}

	respondError(w, status, err.Error())
}
