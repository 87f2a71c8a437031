package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// ErrorKind classifies a failure so handlers can map it to one HTTP status
// and clients can show the right transient notification.
type ErrorKind string

const (
	KindUnauthenticated ErrorKind = "unauthenticated"
	KindUnscoped        ErrorKind = "unscoped"
	KindForbidden       ErrorKind = "forbidden"
	KindNotFound        ErrorKind = "not_found"
	KindValidation      ErrorKind = "validation"
	KindConflict        ErrorKind = "conflict"
	KindRemote          ErrorKind = "remote"
)

// Error carries a kind plus a user-facing message.
type Error struct {
	Kind    ErrorKind `json:"kind"`
	Message string    `json:"message"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func Errorf(kind ErrorKind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// KindOf extracts the kind from an error chain, defaulting to remote for
// anything untyped (network and database failures end up here).
func KindOf(err error) ErrorKind {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Kind
	}
	return KindRemote
}

func statusFor(kind ErrorKind) int {
	switch kind {
	case KindUnauthenticated:
		return http.StatusUnauthorized
	case KindUnscoped, KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindValidation:
		return http.StatusBadRequest
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// WriteError renders an error as a JSON envelope with the status its
// kind maps to. Untyped errors become opaque 500s so internal detail
// does not leak to clients.
func WriteError(w http.ResponseWriter, err error) {
	kind := KindOf(err)

	msg := "internal error"
	var apiErr *Error
	if errors.As(err, &apiErr) {
		msg = apiErr.Message
	}

	WriteJSON(w, statusFor(kind), Error{Kind: kind, Message: msg})
}

// WriteJSON renders v as a JSON response body.
func WriteJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func BadRequest(w http.ResponseWriter, message string) {
	WriteJSON(w, http.StatusBadRequest, Error{Kind: KindValidation, Message: message})
}
