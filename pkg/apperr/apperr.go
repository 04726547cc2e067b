package apperr

import "net/http"

// Error is an application error carrying the HTTP status it should map to.
// Services raise it for expected conditions (not found, conflict, bad
// input); the error-handler middleware is the only place that turns it
// into a response envelope.
type Error struct {
	Status  int
	Message string
	Details any
}

func (e *Error) Error() string { return e.Message }

func New(status int, message string, details any) *Error {
	return &Error{Status: status, Message: message, Details: details}
}

func NotFound(message string) *Error {
	return &Error{Status: http.StatusNotFound, Message: message}
}

func Conflict(message string, details any) *Error {
	return &Error{Status: http.StatusConflict, Message: message, Details: details}
}

func Unauthorized(message string) *Error {
	return &Error{Status: http.StatusUnauthorized, Message: message}
}

func BadRequest(message string, details any) *Error {
	return &Error{Status: http.StatusBadRequest, Message: message, Details: details}
}

// Validation wraps the per-field detail list produced by pkg/validation.
func Validation(details any) *Error {
	return &Error{Status: http.StatusBadRequest, Message: "Erreur de validation des données", Details: details}
}
