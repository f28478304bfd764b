package server

import (
	"errors"
	"net/http"

	"github.com/goccy/go-json"

	"pressroom/internal/auth"
	"pressroom/internal/logging"
	"pressroom/internal/models"
)

// respondJSON writes the uniform {status, ...} envelope. Handlers pass
// a map with "status" plus resource-specific keys.
func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	data, err := json.Marshal(payload)
	if err != nil {
		logging.Error().Err(err).Msg("marshaling response")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		logging.Error().Err(err).Msg("writing response")
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]any{"status": "error", "error": message})
}

// respondInternal logs the underlying failure and returns a generic
// message; storage details never reach the client.
func respondInternal(w http.ResponseWriter, err error, context string) {
	logging.Error().Err(err).Msg(context)
	respondError(w, http.StatusInternalServerError, "Internal server error")
}

// respondAuthError keeps 401 and 403 distinguishable.
func respondAuthError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, auth.ErrForbidden):
		respondError(w, http.StatusForbidden, "Insufficient role for this operation")
	default:
		respondError(w, http.StatusUnauthorized, "Authentication required")
	}
}

// respondDomainError maps sentinel errors from the models layer onto
// the HTTP taxonomy; anything unrecognized is an internal failure.
func respondDomainError(w http.ResponseWriter, err error, context string) {
	switch {
	case errors.Is(err, models.ErrNotFound):
		respondError(w, http.StatusNotFound, "Resource not found")
	case errors.Is(err, models.ErrDuplicateUsername):
		respondError(w, http.StatusConflict, "Username already exists")
	case errors.Is(err, models.ErrInvalidStatus):
		respondError(w, http.StatusBadRequest, "Invalid status value")
	case errors.Is(err, models.ErrInvalidCredentials):
		respondError(w, http.StatusUnauthorized, "Invalid username or password")
	default:
		respondInternal(w, err, context)
	}
}

func decodeJSON(r *http.Request, dst any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(dst)
}
