package controllers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"parche_server/services"

	"github.com/go-playground/validator/v10"
)

// actingUser extracts the acting identity installed by the identity-aware
// proxy in front of this service. Empty means the caller is anonymous.
func actingUser(r *http.Request) string {
	return r.Header.Get("X-User-Id")
}

// writeJSON writes a JSON response with the given status.
func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

// writeError maps a service error onto an HTTP status and a plain-language
// message. Store permission failures get their own message so a
// misconfigured rule set is distinguishable from an outage.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	message := err.Error()

	var validationErrs validator.ValidationErrors
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError

	switch {
	case errors.Is(err, services.ErrUnauthenticated):
		status = http.StatusUnauthorized
	case errors.Is(err, services.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, services.ErrDuplicateConnection):
		status = http.StatusConflict
	case errors.Is(err, services.ErrSelfConnection),
		errors.Is(err, services.ErrInvalidMatchStatus),
		errors.As(err, &validationErrs),
		errors.As(err, &syntaxErr),
		errors.As(err, &typeErr):
		status = http.StatusBadRequest
	case errors.Is(err, services.ErrUserNotFound),
		errors.Is(err, services.ErrPINNotFound),
		errors.Is(err, services.ErrConnectionNotFound),
		errors.Is(err, services.ErrPlanNotFound),
		errors.Is(err, services.ErrMatchNotFound):
		status = http.StatusNotFound
	case services.IsPermissionDenied(err):
		message = "The store rejected the request: check your access configuration."
	}

	if status == http.StatusInternalServerError {
		log.Printf("request failed: %v", err)
	}
	writeJSON(w, status, map[string]string{"error": message})
}

// decodeBody decodes a JSON request body into dst, answering 400 itself on
// failure.
func decodeBody(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return false
	}
	return true
}

// HealthCheckHandler provides a basic health check.
func HealthCheckHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

// WelcomeHandler provides a welcome message.
func WelcomeHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"message": "Welcome to the Arma tu Parche API."})
}
