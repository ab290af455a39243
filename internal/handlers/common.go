package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/sbilibin2017/pocket-wallet/internal/jwt"
	"github.com/sbilibin2017/pocket-wallet/internal/logger"
	"github.com/sbilibin2017/pocket-wallet/internal/models"
)

// ErrorResponse represents an error response
// swagger:model ErrorResponse
type ErrorResponse struct {
	// Error message
	// default: pocket is archived
	Error string `json:"error"`
}

// MessageResponse represents a plain success message
// swagger:model MessageResponse
type MessageResponse struct {
	// Success message
	Message string `json:"message"`
}

// CodeRequest carries a confirmation code
// swagger:model CodeRequest
type CodeRequest struct {
	// Numeric confirmation code from the email
	// required: true
	// default: 12345
	Code string `json:"code"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// statusFor maps domain errors to HTTP statuses.
func statusFor(err error) int {
	switch {
	case errors.Is(err, models.ErrValidation), errors.Is(err, models.ErrInvalidCode):
		return http.StatusBadRequest
	case errors.Is(err, models.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, models.ErrPocketNotFound), errors.Is(err, models.ErrTransactionNotFound):
		return http.StatusNotFound
	case errors.Is(err, models.ErrArchivedPocket),
		errors.Is(err, models.ErrInvalidState),
		errors.Is(err, models.ErrInsufficientFunds),
		errors.Is(err, models.ErrRefundFailed),
		errors.Is(err, models.ErrAlreadyCancelled),
		errors.Is(err, models.ErrAlreadyFinished):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

// writeError writes err as an ErrorResponse. Unexpected errors are logged and
// hidden behind a generic message.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	msg := err.Error()
	switch {
	case status == http.StatusInternalServerError:
		logger.Log.Errorw("request failed", "method", r.Method, "uri", r.RequestURI, "error", err)
		msg = "Internal server error"
	case errors.Is(err, models.ErrInvalidCode):
		msg = models.ErrInvalidCode.Error()
	}
	writeJSON(w, status, ErrorResponse{Error: msg})
}

// userIDFromRequest returns the authenticated user id. It writes a 401 and
// returns false when the request carries no claims.
func userIDFromRequest(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	claims, ok := jwt.ClaimsFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return uuid.Nil, false
	}
	return claims.UserID, true
}

// idFromPath parses the {id} route parameter. It writes a 400 and returns
// false when the parameter is not a UUID.
func idFromPath(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
		return uuid.Nil, false
	}
	return id, true
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		logger.Log.Warnw("failed to decode request body", "uri", r.RequestURI, "error", err)
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return false
	}
	return true
}
