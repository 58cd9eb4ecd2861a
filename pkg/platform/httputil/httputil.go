// Package httputil centralizes JSON encoding and domain-error translation
// for HTTP handlers.
package httputil

import (
	"encoding/json"
	"errors"
	"net/http"

	dErrors "certledger/pkg/domain-errors"
)

// Validatable is implemented by request types that validate and normalize
// themselves after decoding.
type Validatable interface {
	Validate() error
}

// WriteJSON writes v as a JSON response with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError translates a domain error into an HTTP error response. The
// error code becomes the "error" field; the message is exposed as
// "error_description" except for internal errors, which never leak detail.
func WriteError(w http.ResponseWriter, err error) {
	code := dErrors.CodeOf(err)
	body := map[string]string{"error": string(code)}

	if code != dErrors.CodeInternal {
		var dErr *dErrors.Error
		if errors.As(err, &dErr) && dErr.Message != "" {
			body["error_description"] = dErr.Message
		}
	}

	WriteJSON(w, StatusOf(code), body)
}

// StatusOf maps a domain error code to an HTTP status.
func StatusOf(code dErrors.Code) int {
	switch code {
	case dErrors.CodeInvalidArgument, dErrors.CodeBadRequest:
		return http.StatusBadRequest
	case dErrors.CodeUnauthenticated:
		return http.StatusUnauthorized
	case dErrors.CodeUnauthorized:
		return http.StatusForbidden
	case dErrors.CodeNotFound:
		return http.StatusNotFound
	case dErrors.CodeAlreadyVerified, dErrors.CodeAlreadyRevoked,
		dErrors.CodeAlreadyAuthorized, dErrors.CodeNotAuthorized,
		dErrors.CodeTransfersDisabled, dErrors.CodeNotTransferable:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// DecodeJSON decodes the request body into dst and validates it. On failure
// it writes the error response and returns false.
func DecodeJSON(w http.ResponseWriter, r *http.Request, dst Validatable) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return false
	}
	if err := dst.Validate(); err != nil {
		WriteError(w, err)
		return false
	}
	return true
}
